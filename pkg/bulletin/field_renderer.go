package bulletin

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Layouts a list can give its items
const (
	LayoutVertical   = "vertical"
	LayoutHorizontal = "horizontal"
	LayoutGrid2      = "grid-2"
	LayoutGrid3      = "grid-3"
)

// Fallbacks shown when an icon is not configured
const (
	DefaultTextIcon   = "📄"
	DefaultSelectIcon = "❓"
	DefaultPageFormat = "Página {page} de {total}"
)

// MaxCardDepth bounds cards nested inside cards. A card field deeper than
// this renders the loading placeholder.
const MaxCardDepth = 3

// scope carries document level context down the field tree
type scope struct {
	global    StyleConfig
	layout    string
	cardDepth int
}

// RenderField renders a single field against its container style. Layout is
// the list layout the field is rendered in, empty outside lists. The result
// is nil for fields with no visual output.
func (r *Renderer) RenderField(field Field, container *StyleConfig, layout string) *Node {
	return r.renderField(field, container, scope{layout: layout})
}

func (r *Renderer) renderField(field Field, container *StyleConfig, sc scope) *Node {
	style := ResolveStyle(field.StyleConfig, container, sc.global)
	direction := "column"

	var children []*Node
	switch v := field.Variant().(type) {
	case SelectBackgroundField:
		return nil
	case TextField:
		children = []*Node{r.valueOrPlaceholder(r.expand(v.Value), field)}
	case TextWithIconField:
		direction = "row"
		children = r.renderTextWithIcon(field, v, style)
	case SelectWithIconsField:
		direction = "row"
		children = r.renderSelectWithIcons(v, style)
	case DateField:
		children = []*Node{r.renderDate(v)}
	case DateRangeField:
		children = []*Node{r.renderDateRange(v)}
	case PageNumberField:
		format := v.Format
		if format == "" {
			format = DefaultPageFormat
		}
		children = []*Node{Text("span", "bulletin-page-number", substitute(format, map[string]string{"page": "1", "total": "1"}))}
	case ListField:
		children = []*Node{r.renderList(field, v, container, style, sc)}
	case ClimateDataField:
		children = r.renderClimateData(v)
	case ImageField:
		children = []*Node{r.renderImage(field, v)}
	case CardField:
		children = []*Node{r.renderCard(v, sc)}
	case UnknownField:
		children = []*Node{r.renderUnknown(field, v)}
	}

	node := El("div", "bulletin-field bulletin-field-"+string(field.Type), children...)
	node.SetAttr("data-field-id", field.FieldID)
	node.SetStyles(style.CSS()).
		SetStyles(BorderDeclarations(field.StyleConfig)).
		SetStyle("display", "flex").
		SetStyle("flex-direction", direction)
	if direction == "row" {
		node.SetStyle("align-items", "center").
			SetStyle("justify-content", flexAlign(style.TextAlign))
		if style.Gap == "" {
			node.SetStyle("gap", "6px")
		}
	}
	if sc.layout == LayoutHorizontal {
		node.SetStyle("flex", "0 1 auto")
	}
	return node
}

func (r *Renderer) valueOrPlaceholder(value string, field Field) *Node {
	if value == "" {
		return Text("span", "bulletin-value bulletin-placeholder", field.Name())
	}
	return Text("span", "bulletin-value", value)
}

// expand renders Liquid markup when template data was supplied. Broken
// markup leaves the value untouched.
func (r *Renderer) expand(value string) string {
	if r.liquid == nil || !HasMarkup(value) {
		return value
	}
	out, err := r.liquid.Render(value, r.opts.TemplateData)
	if err != nil {
		return value
	}
	return out
}

func (r *Renderer) renderTextWithIcon(field Field, v TextWithIconField, style EffectiveStyle) []*Node {
	icon := r.renderIcon(v.Icon, DefaultTextIcon, style)
	value := r.expand(v.Value)

	if v.ShowLabel && field.Form {
		if value == "" {
			value = field.Name()
		}
		return []*Node{icon, Text("span", "bulletin-value", field.Label+": "+value)}
	}

	nodes := []*Node{icon}
	if field.Label != "" {
		nodes = append(nodes, Text("span", "bulletin-label", field.Label))
	}
	return append(nodes, r.valueOrPlaceholder(value, field))
}

func (r *Renderer) renderSelectWithIcons(v SelectWithIconsField, style EffectiveStyle) []*Node {
	index := 0
	label := ""
	if v.Value != "" {
		index = indexOf(v.Options, v.Value)
		label = v.Value
	} else if len(v.Options) > 0 {
		label = v.Options[0]
	}

	iconURL := ""
	if index >= 0 && index < len(v.IconsURL) {
		iconURL = v.IconsURL[index]
	}
	nodes := []*Node{r.renderIcon(iconURL, DefaultSelectIcon, style)}
	if v.ShowLabel && label != "" {
		nodes = append(nodes, Text("span", "bulletin-label", label))
	}
	return nodes
}

// renderIcon renders an icon URL, tinting it with the text color through a
// CSS mask unless the original colors are kept. Values that are not URLs are
// shown as text, which covers emoji icons.
func (r *Renderer) renderIcon(src, fallback string, style EffectiveStyle) *Node {
	if src == "" {
		src = fallback
	}
	if !isURL(src) {
		return Text("span", "bulletin-icon bulletin-icon-emoji", src).
			SetStyle("font-size", style.IconSize).
			SetStyle("line-height", "1")
	}
	if style.IconUseOriginalColor {
		img := &Node{Tag: "img", Class: "bulletin-icon"}
		return img.SetAttr("src", src).
			SetAttr("alt", "").
			SetStyle("width", style.IconSize).
			SetStyle("height", style.IconSize).
			SetStyle("object-fit", "contain")
	}
	mask := cssURL(src)
	return El("span", "bulletin-icon bulletin-icon-mask").
		SetStyle("display", "inline-block").
		SetStyle("width", style.IconSize).
		SetStyle("height", style.IconSize).
		SetStyle("background-color", style.Color).
		SetStyle("mask-image", mask).
		SetStyle("-webkit-mask-image", mask).
		SetStyle("mask-size", "contain").
		SetStyle("-webkit-mask-size", "contain").
		SetStyle("mask-repeat", "no-repeat").
		SetStyle("-webkit-mask-repeat", "no-repeat").
		SetStyle("mask-position", "center")
}

func (r *Renderer) renderDate(v DateField) *Node {
	if _, ok := ParseLocalDate(v.Value); !ok {
		return Text("span", "bulletin-date bulletin-placeholder", r.dates.Format("", v.Format))
	}
	return Text("span", "bulletin-date", r.dates.Format(v.Value, v.Format))
}

func (r *Renderer) renderDateRange(v DateRangeField) *Node {
	_, okStart := ParseLocalDate(v.StartDate)
	_, okEnd := ParseLocalDate(v.EndDate)
	class := "bulletin-date-range"
	if !okStart && !okEnd {
		class += " bulletin-placeholder"
	}
	format := v.Format
	if format == "" {
		format = DateFormatISO
	}
	return Text("span", class, r.dates.FormatRange(v.StartDate, v.EndDate, format))
}

func (r *Renderer) renderList(field Field, v ListField, container *StyleConfig, style EffectiveStyle, sc scope) *Node {
	listStyle := style.ListStyleType
	if !styleSets(field.StyleConfig, container, func(s *StyleConfig) string { return s.ListStyleType }) && v.ListStyleType != "" {
		listStyle = v.ListStyleType
	}
	layout := style.ListItemsLayout
	if !styleSets(field.StyleConfig, container, func(s *StyleConfig) string { return s.ListItemsLayout }) && v.ItemsLayout != "" {
		layout = v.ItemsLayout
	}
	columns := gridColumns(layout)

	list := El("ul", "bulletin-list bulletin-list-"+layout)
	list.SetStyle("list-style", "none").
		SetStyle("margin", "0").
		SetStyle("padding", "0").
		SetStyle("gap", firstNonBlank(style.Gap, "4px"))
	switch {
	case columns > 0:
		list.SetStyle("display", "grid").
			SetStyle("grid-template-columns", "repeat("+strconv.Itoa(columns)+", 1fr)")
	case layout == LayoutHorizontal:
		list.SetStyle("display", "flex").
			SetStyle("flex-direction", "row").
			SetStyle("flex-wrap", "wrap")
	default:
		list.SetStyle("display", "flex").
			SetStyle("flex-direction", "column")
	}

	items := v.Items
	if len(items) == 0 {
		items = []gjson.Result{{}}
	}

	var inherited StyleConfig
	if container != nil {
		inherited = *container
	}
	inherited = inherited.Merge(field.StyleConfig)
	inherited.BorderWidth = ""
	inherited.BorderRadius = ""
	inherited.BackgroundColor = ""
	inherited.Padding = ""
	inherited.Margin = ""
	inherited.Gap = ""
	itemScope := scope{global: sc.global, layout: layout, cardDepth: sc.cardDepth}

	for i, item := range items {
		li := El("li", "bulletin-list-item")
		li.SetStyle("display", "flex").
			SetStyle("align-items", "flex-start").
			SetStyle("gap", "6px")
		if columns > 0 {
			align := columnAlign(i%columns, columns)
			li.SetStyle("text-align", align).
				SetStyle("justify-content", flexAlign(align))
		}
		if marker := bulletMarker(listStyle, i); marker != "" {
			li.Append(Text("span", "bulletin-list-marker", marker).
				SetStyle("color", firstNonBlank(style.SecondaryColor, style.Color)))
		}

		body := El("div", "bulletin-list-item-content")
		body.SetStyle("display", "flex")
		if layout == LayoutHorizontal {
			body.SetStyle("flex-direction", "row").SetStyle("gap", "8px")
		} else {
			body.SetStyle("flex-direction", "column")
		}

		if len(v.ItemSchema) == 0 {
			body.Append(r.valueOrPlaceholder(scalarString(item), field))
		} else {
			values := objectValues(item)
			for _, entry := range v.ItemSchema {
				if !entry.Field.notExcluded() {
					continue
				}
				sub := entry.Field.WithValue(rawValue(values[entry.Key]))
				body.Append(r.renderField(sub, &inherited, itemScope))
			}
		}
		list.Append(li.Append(body))
	}
	return list
}

func (r *Renderer) renderClimateData(v ClimateDataField) []*Node {
	params := v.Parameters
	values := objectValues(v.Values)
	if len(params) == 0 {
		params = []ClimateParameter{
			{Key: "temp_max", Label: "Temp Max", Unit: "°C", ShowName: true},
			{Key: "temp_min", Label: "Temp Min", Unit: "°C", ShowName: true},
		}
	}

	rows := make([]*Node, 0, len(params))
	for _, p := range params {
		value := scalarString(values[p.Key])
		if value == "" {
			value = "-"
		}
		line := strings.TrimSpace(value + " " + p.Unit)
		if p.ShowName {
			line = p.Label + ": " + line
		}
		row := Text("div", "bulletin-climate-row", line)
		row.SetAttr("data-parameter", p.Key)
		row.SetStyles(ContainerCSS(p.StyleConfig))
		if p.StyleConfig != nil {
			row.SetStyle("font-weight", string(p.StyleConfig.FontWeight))
		}
		rows = append(rows, row)
	}
	return rows
}

func (r *Renderer) renderImage(field Field, v ImageField) *Node {
	if v.URL == "" {
		return Text("div", "bulletin-image-empty bulletin-placeholder", r.t(MsgNoImage, nil)).
			SetStyle("display", "flex").
			SetStyle("align-items", "center").
			SetStyle("justify-content", "center").
			SetStyle("min-height", "80px").
			SetStyle("border", "1px dashed #bdbdbd")
	}
	img := &Node{Tag: "img", Class: "bulletin-image"}
	return img.SetAttr("src", v.URL).
		SetAttr("alt", field.Name()).
		SetAttr("onerror", "this.onerror=null;this.src='"+r.opts.ImageFallback+"'").
		SetStyle("max-width", "100%").
		SetStyle("max-height", "100%").
		SetStyle("object-fit", "contain")
}

// renderCard renders the active card inline. The card's own header and footer
// are not rendered here; they only take part in header/footer resolution.
func (r *Renderer) renderCard(v CardField, sc scope) *Node {
	id, ok := v.ActiveCardID()
	if !ok {
		return Text("div", "bulletin-card-empty bulletin-placeholder", r.t(MsgNoCards, nil))
	}
	var card *Card
	if r.opts.Cards != nil && sc.cardDepth < MaxCardDepth {
		card, _ = r.opts.Cards.Card(id)
	}
	if card == nil {
		return Text("div", "bulletin-card-loading bulletin-placeholder", r.t(MsgLoadingCard, nil)).
			SetAttr("data-card-id", id)
	}

	node := El("div", "bulletin-card")
	node.SetAttr("data-card-id", card.ID).
		SetStyles(ContainerCSS(card.Content.StyleConfig)).
		SetStyle("display", "flex").
		SetStyle("flex-direction", "column").
		SetStyle("flex", "1").
		SetStyle("background-color", card.Content.BackgroundColor)
	if card.Content.BackgroundURL != "" {
		node.SetStyle("background-image", cssURL(card.Content.BackgroundURL)).
			SetStyle("background-size", "cover").
			SetStyle("background-position", "center")
	}

	inner := scope{global: sc.global, cardDepth: sc.cardDepth + 1}
	for _, block := range card.Content.Blocks {
		container := r.blockContainer(card.Content.StyleConfig, block.StyleConfig)
		blockNode := El("div", "bulletin-card-block")
		blockNode.SetStyles(ContainerCSS(block.StyleConfig)).
			SetStyle("display", "flex").
			SetStyle("flex-direction", "column")
		for _, field := range block.Fields {
			if !field.notExcluded() {
				continue
			}
			blockNode.Append(r.renderField(field, container, inner))
		}
		node.Append(blockNode)
	}
	return node
}

func (r *Renderer) renderUnknown(field Field, v UnknownField) *Node {
	if !field.Form && field.HasValue() {
		raw := scalarString(v.Value)
		if raw == "" {
			raw = v.Value.Raw
		}
		return Text("span", "bulletin-value", raw)
	}
	return Text("span", "bulletin-unknown bulletin-placeholder", "["+string(field.Type)+"] "+field.DisplayName)
}

func bulletMarker(listStyle string, index int) string {
	switch listStyle {
	case "none":
		return ""
	case "circle":
		return "○"
	case "square":
		return "■"
	case "decimal":
		return strconv.Itoa(index+1) + "."
	default:
		return "•"
	}
}

func gridColumns(layout string) int {
	switch layout {
	case LayoutGrid2:
		return 2
	case LayoutGrid3:
		return 3
	}
	return 0
}

// columnAlign aligns the first grid column left, the last right and any
// middle column centered
func columnAlign(column, columns int) string {
	switch column {
	case 0:
		return "left"
	case columns - 1:
		return "right"
	default:
		return "center"
	}
}

func flexAlign(textAlign string) string {
	switch textAlign {
	case "center":
		return "center"
	case "right":
		return "flex-end"
	default:
		return "flex-start"
	}
}

func styleSets(field, container *StyleConfig, get func(*StyleConfig) string) bool {
	return (field != nil && get(field) != "") || (container != nil && get(container) != "")
}

func objectValues(v gjson.Result) map[string]gjson.Result {
	if !v.IsObject() {
		return nil
	}
	values := make(map[string]gjson.Result)
	v.ForEach(func(key, value gjson.Result) bool {
		values[key.String()] = value
		return true
	})
	return values
}

func rawValue(v gjson.Result) []byte {
	if !v.Exists() {
		return nil
	}
	return []byte(v.Raw)
}

func indexOf(values []string, target string) int {
	for i, v := range values {
		if v == target {
			return i
		}
	}
	return -1
}

func isURL(s string) bool {
	for _, prefix := range []string{"http://", "https://", "//", "/", "data:", "blob:", "./"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
