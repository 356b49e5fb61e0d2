package bulletin

import (
	"strconv"
)

// DefaultImageFallback replaces images whose URL fails to load
const DefaultImageFallback = "/assets/img/imageNotFound.png"

// Options configure a Renderer. Zero values select the defaults.
type Options struct {
	// ForceGlobalHeader makes the document header and footer win over section
	// ones. A header or footer coming from a resolved card still wins.
	ForceGlobalHeader bool
	Cards             CardResolver
	Locale            string
	Calendar          Calendar
	Translate         Translator
	// TemplateData enables Liquid markup in text values when set
	TemplateData  map[string]interface{}
	ImageFallback string
}

// Renderer turns documents into render trees. It holds no state besides its
// options and is safe for concurrent use.
type Renderer struct {
	opts   Options
	dates  DateFormatter
	liquid *LiquidEngine
}

// NewRenderer creates a renderer
func NewRenderer(opts Options) *Renderer {
	if opts.Locale == "" {
		opts.Locale = DefaultLocale
	}
	if opts.Calendar == nil {
		opts.Calendar = LocaleCalendar{}
	}
	if opts.Translate == nil {
		opts.Translate = DefaultTranslator
	}
	if opts.ImageFallback == "" {
		opts.ImageFallback = DefaultImageFallback
	}
	r := &Renderer{
		opts:  opts,
		dates: DateFormatter{Locale: opts.Locale, Calendar: opts.Calendar},
	}
	if opts.TemplateData != nil {
		r.liquid = NewLiquidEngine()
	}
	return r
}

// RenderDocument renders one page of one section of a document
func RenderDocument(doc *CreateTemplateData, sectionIndex, pageIndex int, opts Options) *Node {
	return NewRenderer(opts).RenderDocument(doc, sectionIndex, pageIndex)
}

// RenderDocument renders the page pageIndex of the section at sectionIndex.
// Both indexes are clamped into range. A document without sections renders
// its global header and footer around an empty state.
func (r *Renderer) RenderDocument(doc *CreateTemplateData, sectionIndex, pageIndex int) *Node {
	var content TemplateContent
	if doc != nil {
		content = doc.Version.Content
	}
	global := content.StyleConfig
	page := r.pageNode(global)

	if len(content.Sections) == 0 {
		if !content.HeaderConfig.IsEmpty() {
			page.Append(r.renderHeaderFooter("bulletin-header", content.HeaderConfig, global))
		}
		empty := Text("div", "bulletin-empty bulletin-placeholder", r.t(MsgEmptyDocument, nil))
		empty.SetStyle("flex", "1").
			SetStyle("display", "flex").
			SetStyle("align-items", "center").
			SetStyle("justify-content", "center")
		page.Append(empty)
		if !content.FooterConfig.IsEmpty() {
			page.Append(r.renderHeaderFooter("bulletin-footer", content.FooterConfig, global))
		}
		return page
	}

	sectionIndex = max(0, min(sectionIndex, len(content.Sections)-1))
	section := content.Sections[sectionIndex]
	if pagination := GetSectionPagination(section); pagination.Field != nil {
		section = SliceForPage(section, pagination.Field, pageIndex)
	}

	background, hasBackground := ResolveSectionBackground(section)
	active := ResolveHeaderFooter(HeaderFooterInput{
		Section:      section,
		GlobalHeader: content.HeaderConfig,
		GlobalFooter: content.FooterConfig,
		Cards:        r.opts.Cards,
		ForceGlobal:  r.opts.ForceGlobalHeader,
	})

	if hasBackground {
		page.SetStyle("background-image", cssURL(background)).
			SetStyle("background-size", "cover").
			SetStyle("background-position", "center").
			SetStyle("background-repeat", "no-repeat")
	}
	page.SetAttr("data-section-index", strconv.Itoa(sectionIndex))

	if active.Header != nil {
		page.Append(r.renderHeaderFooter("bulletin-header", active.Header, global).
			SetAttr("data-source", string(active.HeaderSource)))
	}
	page.Append(r.renderSection(section, global))
	if active.Footer != nil {
		page.Append(r.renderHeaderFooter("bulletin-footer", active.Footer, global).
			SetAttr("data-source", string(active.FooterSource)))
	}
	return page
}

func (r *Renderer) pageNode(global StyleConfig) *Node {
	width := global.BulletinWidth.CSS()
	if width == "" {
		width = DefaultBulletinWidth
	}
	height := global.BulletinHeight.CSS()
	if height == "" {
		height = DefaultBulletinHeight
	}
	fontSize := global.FontSize.CSS()
	if fontSize == "" {
		fontSize = DefaultFontSize
	}
	color := global.PrimaryColor
	if color == "" {
		color = DefaultColor
	}

	page := El("div", "bulletin-page")
	page.SetStyle("width", width).
		SetStyle("height", height).
		SetStyle("display", "flex").
		SetStyle("flex-direction", "column").
		SetStyle("font-size", fontSize).
		SetStyle("color", color).
		SetStyle("font-family", global.Font).
		SetStyle("background-color", global.BackgroundColor)
	if global.BackgroundImage != "" {
		page.SetStyle("background-image", cssURL(global.BackgroundImage)).
			SetStyle("background-size", "cover").
			SetStyle("background-position", "center")
	}
	return page
}

func (r *Renderer) renderSection(section Section, global StyleConfig) *Node {
	node := El("div", "bulletin-section")
	node.SetStyles(ContainerCSS(section.StyleConfig)).
		SetStyle("flex", "1").
		SetStyle("display", "flex").
		SetStyle("flex-direction", "column")
	node.SetAttr("data-section-id", section.SectionID)

	container := section.StyleConfig
	for _, block := range section.Blocks {
		blockStyle := r.blockContainer(container, block.StyleConfig)
		blockNode := El("div", "bulletin-block")
		blockNode.SetStyles(ContainerCSS(block.StyleConfig)).
			SetStyle("display", "flex").
			SetStyle("flex-direction", "column")
		blockNode.SetAttr("data-block-id", block.BlockID)
		if block.HasCardField() {
			blockNode.SetStyle("flex", "1")
		}
		for _, field := range block.Fields {
			if !field.InBulletin() {
				continue
			}
			blockNode.Append(r.renderField(field, blockStyle, scope{global: global}))
		}
		node.Append(blockNode)
	}
	return node
}

// blockContainer is the style a block's fields inherit from: the block's own
// style over the section's
func (r *Renderer) blockContainer(section, block *StyleConfig) *StyleConfig {
	var merged StyleConfig
	if section != nil {
		merged = *section
	}
	merged = merged.Merge(block)
	// Box properties belong to the containers, not to every field inside them
	merged.BackgroundColor = ""
	merged.BackgroundImage = ""
	merged.Padding = ""
	merged.Margin = ""
	merged.Gap = ""
	merged.BorderWidth = ""
	merged.BorderRadius = ""
	return &merged
}

func (r *Renderer) renderHeaderFooter(class string, config *HeaderFooterConfig, global StyleConfig) *Node {
	node := El("div", class)
	style := config.StyleConfig
	node.SetStyles(ContainerCSS(&style)).
		SetStyle("display", "flex").
		SetStyle("flex-direction", "row").
		SetStyle("align-items", "center").
		SetStyle("justify-content", "space-between")
	if style.BackgroundImage != "" {
		node.SetStyle("background-image", cssURL(style.BackgroundImage)).
			SetStyle("background-size", "cover")
	}

	container := r.blockContainer(nil, &style)
	for _, field := range config.Fields {
		if !field.notExcluded() {
			continue
		}
		node.Append(r.renderField(field, container, scope{global: global}))
	}
	return node
}

func (r *Renderer) t(key string, params map[string]string) string {
	return r.opts.Translate(key, params)
}
