package bulletin

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// FieldVariant is the typed view of a field: one implementation per field
// type, each carrying its own decoded config and value
type FieldVariant interface {
	FieldType() FieldType
}

type TextField struct {
	Value string
}

type TextWithIconField struct {
	Value     string
	Icon      string
	ShowLabel bool
}

type SelectWithIconsField struct {
	Value     string
	Options   []string
	IconsURL  []string
	ShowLabel bool
}

type SelectBackgroundField struct {
	Value          string
	Options        []string
	BackgroundsURL []string
}

type DateField struct {
	Value  string
	Format string
}

type DateRangeField struct {
	StartDate string
	EndDate   string
	Format    string
}

type PageNumberField struct {
	Format string
}

// SchemaEntry is one sub-field of a list item, in configuration order
type SchemaEntry struct {
	Key   string
	Field Field
}

type ListField struct {
	Items           []gjson.Result
	ItemSchema      []SchemaEntry
	MaxItemsPerPage int
	Paginated       bool
	ListStyleType   string
	ItemsLayout     string
}

// ClimateParameter is one configured row of a climate data field
type ClimateParameter struct {
	Key         string
	Label       string
	Unit        string
	Type        string
	StyleConfig *StyleConfig
	ShowName    bool
}

type ClimateDataField struct {
	Values     gjson.Result
	Parameters []ClimateParameter
}

type ImageField struct {
	URL string
}

type CardField struct {
	Value          string
	AvailableCards []string
}

// ActiveCardID is the value when set, else the first available card
func (c CardField) ActiveCardID() (string, bool) {
	if c.Value != "" {
		return c.Value, true
	}
	if len(c.AvailableCards) > 0 && c.AvailableCards[0] != "" {
		return c.AvailableCards[0], true
	}
	return "", false
}

// UnknownField covers any type without a dedicated rule
type UnknownField struct {
	Type  FieldType
	Value gjson.Result
}

func (TextField) FieldType() FieldType             { return FieldTypeText }
func (TextWithIconField) FieldType() FieldType     { return FieldTypeTextWithIcon }
func (SelectWithIconsField) FieldType() FieldType  { return FieldTypeSelectWithIcons }
func (SelectBackgroundField) FieldType() FieldType { return FieldTypeSelectBackground }
func (DateField) FieldType() FieldType             { return FieldTypeDate }
func (DateRangeField) FieldType() FieldType        { return FieldTypeDateRange }
func (PageNumberField) FieldType() FieldType       { return FieldTypePageNumber }
func (ListField) FieldType() FieldType             { return FieldTypeList }
func (ClimateDataField) FieldType() FieldType      { return FieldTypeClimateData }
func (ImageField) FieldType() FieldType            { return FieldTypeImage }
func (CardField) FieldType() FieldType             { return FieldTypeCard }
func (u UnknownField) FieldType() FieldType        { return u.Type }

// Variant decodes the field into its typed form. Decoding is total:
// malformed config or values produce zero values, never errors.
func (f Field) Variant() FieldVariant {
	cfg := f.config()
	val := f.value()

	switch f.Type {
	case FieldTypeText:
		return TextField{Value: scalarString(val)}
	case FieldTypeTextWithIcon:
		icon := cfg.Get("selected_icon").String()
		if icon == "" {
			icon = cfg.Get("icon_options.0").String()
		}
		return TextWithIconField{
			Value:     scalarString(val),
			Icon:      icon,
			ShowLabel: cfg.Get("showLabel").Bool(),
		}
	case FieldTypeSelectWithIcons:
		showLabel := true
		if sl := cfg.Get("show_label"); sl.Exists() && sl.Type == gjson.False {
			showLabel = false
		}
		return SelectWithIconsField{
			Value:     scalarString(val),
			Options:   stringArray(cfg.Get("options")),
			IconsURL:  stringArray(cfg.Get("icons_url")),
			ShowLabel: showLabel,
		}
	case FieldTypeSelectBackground:
		return SelectBackgroundField{
			Value:          scalarString(val),
			Options:        stringArray(cfg.Get("options")),
			BackgroundsURL: stringArray(cfg.Get("backgrounds_url")),
		}
	case FieldTypeDate:
		return DateField{Value: scalarString(val), Format: cfg.Get("date_format").String()}
	case FieldTypeDateRange:
		return DateRangeField{
			StartDate: val.Get("start_date").String(),
			EndDate:   val.Get("end_date").String(),
			Format:    cfg.Get("date_format").String(),
		}
	case FieldTypePageNumber:
		return PageNumberField{Format: cfg.Get("format").String()}
	case FieldTypeList:
		lf := ListField{
			Items:         listItems(val),
			ItemSchema:    itemSchema(cfg.Get("item_schema")),
			ListStyleType: cfg.Get("list_style_type").String(),
			ItemsLayout:   cfg.Get("list_items_layout").String(),
		}
		if maxItems := cfg.Get("max_items_per_page"); maxItems.Type == gjson.Number && maxItems.Int() > 0 {
			lf.MaxItemsPerPage = int(maxItems.Int())
			lf.Paginated = true
		}
		return lf
	case FieldTypeClimateData:
		return ClimateDataField{Values: val, Parameters: climateParameters(cfg.Get("available_parameters"))}
	case FieldTypeImage:
		return ImageField{URL: scalarString(val)}
	case FieldTypeCard:
		return CardField{Value: scalarString(val), AvailableCards: stringArray(cfg.Get("available_cards"))}
	default:
		return UnknownField{Type: f.Type, Value: val}
	}
}

func scalarString(v gjson.Result) string {
	switch v.Type {
	case gjson.String, gjson.Number, gjson.True, gjson.False:
		return v.String()
	}
	return ""
}

func stringArray(v gjson.Result) []string {
	if !v.IsArray() {
		return nil
	}
	var out []string
	v.ForEach(func(_, item gjson.Result) bool {
		out = append(out, item.String())
		return true
	})
	return out
}

// listItems accepts either a bare array or an object holding an items array
func listItems(v gjson.Result) []gjson.Result {
	if v.IsArray() {
		return v.Array()
	}
	if items := v.Get("items"); items.IsArray() {
		return items.Array()
	}
	return nil
}

// itemSchema keeps the configured key order, which a Go map would lose
func itemSchema(v gjson.Result) []SchemaEntry {
	if !v.IsObject() {
		return nil
	}
	var entries []SchemaEntry
	v.ForEach(func(key, def gjson.Result) bool {
		var sub Field
		if err := json.Unmarshal([]byte(def.Raw), &sub); err != nil {
			return true
		}
		if sub.FieldID == "" {
			sub.FieldID = key.String()
		}
		if sub.Type == "" {
			sub.Type = FieldTypeText
		}
		entries = append(entries, SchemaEntry{Key: key.String(), Field: sub})
		return true
	})
	return entries
}

func climateParameters(v gjson.Result) []ClimateParameter {
	if !v.IsObject() {
		return nil
	}
	var params []ClimateParameter
	v.ForEach(func(key, def gjson.Result) bool {
		p := ClimateParameter{
			Key:      key.String(),
			Label:    def.Get("label").String(),
			Unit:     def.Get("unit").String(),
			Type:     def.Get("type").String(),
			ShowName: def.Get("showName").Type != gjson.False,
		}
		if p.Label == "" {
			p.Label = p.Key
		}
		if sc := def.Get("style_config"); sc.IsObject() {
			var style StyleConfig
			if err := json.Unmarshal([]byte(sc.Raw), &style); err == nil {
				p.StyleConfig = &style
			}
		}
		params = append(params, p)
		return true
	})
	return params
}
