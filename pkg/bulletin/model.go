package bulletin

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// FieldType is the tag carried by every field of a bulletin template
type FieldType string

const (
	FieldTypeText             FieldType = "text"
	FieldTypeTextWithIcon     FieldType = "text_with_icon"
	FieldTypeSelectWithIcons  FieldType = "select_with_icons"
	FieldTypeSelectBackground FieldType = "select_background"
	FieldTypeDate             FieldType = "date"
	FieldTypeDateRange        FieldType = "date_range"
	FieldTypePageNumber       FieldType = "page_number"
	FieldTypeList             FieldType = "list"
	FieldTypeClimateData      FieldType = "climate_data_puntual"
	FieldTypeImage            FieldType = "image"
	FieldTypeCard             FieldType = "card"
)

// Dimension is a CSS length. Editors store lengths either as plain numbers
// (pixels) or as strings with an explicit unit.
type Dimension string

// UnmarshalJSON accepts both numbers and strings
func (d *Dimension) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*d = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = Dimension(strings.TrimSpace(s))
		return nil
	}
	n, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		// Anything else is not a length; leave it unset rather than failing the whole document
		*d = ""
		return nil
	}
	*d = Dimension(strconv.FormatFloat(n, 'f', -1, 64) + "px")
	return nil
}

// CSS returns the value as a CSS length, adding px to bare numbers
func (d Dimension) CSS() string {
	s := strings.TrimSpace(string(d))
	if s == "" {
		return ""
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return s + "px"
	}
	return s
}

// FlexString decodes a JSON string, number or boolean into its textual form.
// Used for style values such as font_weight that editors store either way.
type FlexString string

// UnmarshalJSON accepts any scalar
func (f *FlexString) UnmarshalJSON(data []byte) error {
	res := gjson.ParseBytes(data)
	switch res.Type {
	case gjson.String, gjson.Number, gjson.True, gjson.False:
		*f = FlexString(res.String())
	default:
		*f = ""
	}
	return nil
}

// StyleConfig is the style vocabulary shared by documents, sections, blocks,
// fields, headers, footers and cards
type StyleConfig struct {
	Font                 string     `json:"font,omitempty"`
	PrimaryColor         string     `json:"primary_color,omitempty"`
	SecondaryColor       string     `json:"secondary_color,omitempty"`
	BackgroundColor      string     `json:"background_color,omitempty"`
	BackgroundImage      string     `json:"background_image,omitempty"`
	FontSize             Dimension  `json:"font_size,omitempty"`
	FontWeight           FlexString `json:"font_weight,omitempty"`
	FontStyle            string     `json:"font_style,omitempty"`
	TextDecoration       string     `json:"text_decoration,omitempty"`
	TextAlign            string     `json:"text_align,omitempty"`
	Padding              Dimension  `json:"padding,omitempty"`
	Margin               Dimension  `json:"margin,omitempty"`
	Gap                  Dimension  `json:"gap,omitempty"`
	BorderColor          string     `json:"border_color,omitempty"`
	BorderWidth          Dimension  `json:"border_width,omitempty"`
	BorderStyle          string     `json:"border_style,omitempty"`
	BorderRadius         Dimension  `json:"border_radius,omitempty"`
	BorderSides          string     `json:"border_sides,omitempty"`
	IconSize             Dimension  `json:"icon_size,omitempty"`
	IconUseOriginalColor *bool      `json:"icon_use_original_color,omitempty"`
	ListStyleType        string     `json:"list_style_type,omitempty"`
	ListItemsLayout      string     `json:"list_items_layout,omitempty"`
	BulletinWidth        Dimension  `json:"bulletin_width,omitempty"`
	BulletinHeight       Dimension  `json:"bulletin_height,omitempty"`
}

// Merge returns a copy of s with every set property of override applied on top
func (s StyleConfig) Merge(override *StyleConfig) StyleConfig {
	if override == nil {
		return s
	}
	o := *override
	pick := func(base, over string) string {
		if over != "" {
			return over
		}
		return base
	}
	pickDim := func(base, over Dimension) Dimension {
		if over != "" {
			return over
		}
		return base
	}

	s.Font = pick(s.Font, o.Font)
	s.PrimaryColor = pick(s.PrimaryColor, o.PrimaryColor)
	s.SecondaryColor = pick(s.SecondaryColor, o.SecondaryColor)
	s.BackgroundColor = pick(s.BackgroundColor, o.BackgroundColor)
	s.BackgroundImage = pick(s.BackgroundImage, o.BackgroundImage)
	s.FontSize = pickDim(s.FontSize, o.FontSize)
	s.FontWeight = FlexString(pick(string(s.FontWeight), string(o.FontWeight)))
	s.FontStyle = pick(s.FontStyle, o.FontStyle)
	s.TextDecoration = pick(s.TextDecoration, o.TextDecoration)
	s.TextAlign = pick(s.TextAlign, o.TextAlign)
	s.Padding = pickDim(s.Padding, o.Padding)
	s.Margin = pickDim(s.Margin, o.Margin)
	s.Gap = pickDim(s.Gap, o.Gap)
	s.BorderColor = pick(s.BorderColor, o.BorderColor)
	s.BorderWidth = pickDim(s.BorderWidth, o.BorderWidth)
	s.BorderStyle = pick(s.BorderStyle, o.BorderStyle)
	s.BorderRadius = pickDim(s.BorderRadius, o.BorderRadius)
	s.BorderSides = pick(s.BorderSides, o.BorderSides)
	s.IconSize = pickDim(s.IconSize, o.IconSize)
	if o.IconUseOriginalColor != nil {
		v := *o.IconUseOriginalColor
		s.IconUseOriginalColor = &v
	}
	s.ListStyleType = pick(s.ListStyleType, o.ListStyleType)
	s.ListItemsLayout = pick(s.ListItemsLayout, o.ListItemsLayout)
	s.BulletinWidth = pickDim(s.BulletinWidth, o.BulletinWidth)
	s.BulletinHeight = pickDim(s.BulletinHeight, o.BulletinHeight)
	return s
}

// CreateTemplateData is the document value handed to the renderer
type CreateTemplateData struct {
	Master  TemplateMaster  `json:"master"`
	Version TemplateVersion `json:"version"`
}

// TemplateMaster holds display metadata; it never affects layout
type TemplateMaster struct {
	TemplateName string       `json:"template_name,omitempty"`
	Description  string       `json:"description,omitempty"`
	Status       string       `json:"status,omitempty"`
	AccessConfig AccessConfig `json:"access_config"`
}

type AccessConfig struct {
	IsPublic      bool     `json:"is_public"`
	AllowedGroups []string `json:"allowed_groups,omitempty"`
}

type TemplateVersion struct {
	VersionNum    int             `json:"version_num,omitempty"`
	CommitMessage string          `json:"commit_message,omitempty"`
	Content       TemplateContent `json:"content"`
}

// TemplateContent is the renderable payload of a document
type TemplateContent struct {
	StyleConfig  StyleConfig         `json:"style_config"`
	HeaderConfig *HeaderFooterConfig `json:"header_config,omitempty"`
	FooterConfig *HeaderFooterConfig `json:"footer_config,omitempty"`
	Sections     []Section           `json:"sections"`
}

// HeaderFooterConfig describes a header or a footer strip
type HeaderFooterConfig struct {
	Fields      []Field     `json:"fields"`
	StyleConfig StyleConfig `json:"style_config"`
}

// IsEmpty reports whether the config is missing or has no fields
func (h *HeaderFooterConfig) IsEmpty() bool {
	return h == nil || len(h.Fields) == 0
}

type Section struct {
	SectionID    string              `json:"section_id,omitempty"`
	DisplayName  string              `json:"display_name,omitempty"`
	Order        int                 `json:"order,omitempty"`
	StyleConfig  *StyleConfig        `json:"style_config,omitempty"`
	HeaderConfig *HeaderFooterConfig `json:"header_config,omitempty"`
	FooterConfig *HeaderFooterConfig `json:"footer_config,omitempty"`
	Blocks       []Block             `json:"blocks"`
}

type Block struct {
	BlockID     string       `json:"block_id,omitempty"`
	DisplayName string       `json:"display_name,omitempty"`
	StyleConfig *StyleConfig `json:"style_config,omitempty"`
	Fields      []Field      `json:"fields"`
}

// HasCardField reports whether any field of the block is card-typed
func (b Block) HasCardField() bool {
	for _, f := range b.Fields {
		if f.Type == FieldTypeCard {
			return true
		}
	}
	return false
}

// Field is the atomic renderable unit. FieldConfig and Value stay raw until
// Variant decodes them for the field's type.
type Field struct {
	FieldID     string          `json:"field_id"`
	DisplayName string          `json:"display_name,omitempty"`
	Label       string          `json:"label,omitempty"`
	Description string          `json:"description,omitempty"`
	Type        FieldType       `json:"type"`
	Form        bool            `json:"form"`
	Bulletin    *bool           `json:"bulletin,omitempty"`
	Validation  json.RawMessage `json:"validation,omitempty"`
	FieldConfig json.RawMessage `json:"field_config,omitempty"`
	StyleConfig *StyleConfig    `json:"style_config,omitempty"`
	Value       json.RawMessage `json:"value,omitempty"`
}

// InBulletin reports whether a section field is part of the rendered output.
// Section fields must opt in explicitly.
func (f Field) InBulletin() bool {
	return f.Bulletin != nil && *f.Bulletin
}

// notExcluded is the looser rule used for header, footer and card fields:
// they render unless explicitly marked bulletin=false.
func (f Field) notExcluded() bool {
	return f.Bulletin == nil || *f.Bulletin
}

// Name returns the human name of the field, preferring display_name
func (f Field) Name() string {
	if f.DisplayName != "" {
		return f.DisplayName
	}
	if f.Label != "" {
		return f.Label
	}
	return f.FieldID
}

func (f Field) config() gjson.Result {
	return gjson.ParseBytes(f.FieldConfig)
}

func (f Field) value() gjson.Result {
	return gjson.ParseBytes(f.Value)
}

// HasValue reports whether the field carries a non-empty value
func (f Field) HasValue() bool {
	return present(f.value())
}

// WithValue returns a copy of the field with its value replaced
func (f Field) WithValue(raw json.RawMessage) Field {
	f.Value = raw
	return f
}

func present(v gjson.Result) bool {
	switch v.Type {
	case gjson.Null:
		return false
	case gjson.String:
		return v.Str != ""
	case gjson.JSON:
		if v.IsArray() {
			return len(v.Array()) > 0
		}
		return len(v.Map()) > 0
	default:
		return true
	}
}

// Card is an externally managed content fragment referenced by card fields
type Card struct {
	ID       string      `json:"id"`
	Name     string      `json:"name,omitempty"`
	CardType string      `json:"card_type,omitempty"`
	Content  CardContent `json:"content"`
}

type CardContent struct {
	Blocks          []Block             `json:"blocks"`
	BackgroundColor string              `json:"background_color,omitempty"`
	BackgroundURL   string              `json:"background_url,omitempty"`
	HeaderConfig    *HeaderFooterConfig `json:"header_config,omitempty"`
	FooterConfig    *HeaderFooterConfig `json:"footer_config,omitempty"`
	StyleConfig     *StyleConfig        `json:"style_config,omitempty"`
}

// CardResolver looks up cards already fetched by the caller
type CardResolver interface {
	Card(id string) (*Card, bool)
}

// CardSet is a map based CardResolver
type CardSet map[string]*Card

// NewCardSet indexes cards by id
func NewCardSet(cards []Card) CardSet {
	set := make(CardSet, len(cards))
	for i := range cards {
		set[cards[i].ID] = &cards[i]
	}
	return set
}

func (s CardSet) Card(id string) (*Card, bool) {
	if s == nil {
		return nil, false
	}
	c, ok := s[id]
	return c, ok && c != nil
}

// ParseDocument decodes a document from JSON
func ParseDocument(data []byte) (*CreateTemplateData, error) {
	var doc CreateTemplateData
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// CollectCardIDs returns, in document order and without duplicates, every
// card id a card field of the document may need: its value and its available
// cards. Header and footer configs are walked as well as section blocks.
// Cards referenced from inside cards are found with CardReferences.
func CollectCardIDs(doc *CreateTemplateData) []string {
	if doc == nil {
		return nil
	}
	var c cardIDCollector
	content := doc.Version.Content
	c.headerFooter(content.HeaderConfig)
	for _, section := range content.Sections {
		c.headerFooter(section.HeaderConfig)
		c.blocks(section.Blocks)
		c.headerFooter(section.FooterConfig)
	}
	c.headerFooter(content.FooterConfig)
	return c.ids
}

// CardReferences returns the card ids referenced by the card fields of a card
func CardReferences(card *Card) []string {
	if card == nil {
		return nil
	}
	var c cardIDCollector
	c.headerFooter(card.Content.HeaderConfig)
	c.blocks(card.Content.Blocks)
	c.headerFooter(card.Content.FooterConfig)
	return c.ids
}

type cardIDCollector struct {
	seen map[string]bool
	ids  []string
}

func (c *cardIDCollector) add(id string) {
	if id == "" || c.seen[id] {
		return
	}
	if c.seen == nil {
		c.seen = make(map[string]bool)
	}
	c.seen[id] = true
	c.ids = append(c.ids, id)
}

func (c *cardIDCollector) fields(fields []Field) {
	for _, field := range fields {
		if field.Type != FieldTypeCard {
			continue
		}
		card := field.Variant().(CardField)
		c.add(card.Value)
		for _, id := range card.AvailableCards {
			c.add(id)
		}
	}
}

func (c *cardIDCollector) blocks(blocks []Block) {
	for _, block := range blocks {
		c.fields(block.Fields)
	}
}

func (c *cardIDCollector) headerFooter(config *HeaderFooterConfig) {
	if config != nil {
		c.fields(config.Fields)
	}
}
