package bulletin

import (
	"strings"
)

// Defaults applied when neither the field nor its container set a property
const (
	DefaultColor           = "#000000"
	DefaultFontSize        = "16px"
	DefaultBackgroundColor = "transparent"
	DefaultTextAlign       = "left"
	DefaultIconSize        = "24px"
	DefaultListStyleType   = "disc"
	DefaultListItemsLayout = "vertical"
	DefaultBorderStyle     = "solid"
	DefaultBorderColor     = "#000000"
	DefaultBulletinWidth   = "794px"
	DefaultBulletinHeight  = "1123px"
)

// EffectiveStyle is the fully resolved style of a rendered node
type EffectiveStyle struct {
	Color                string
	SecondaryColor       string
	FontFamily           string
	FontSize             string
	FontWeight           string
	FontStyle            string
	TextDecoration       string
	TextAlign            string
	BackgroundColor      string
	BackgroundImage      string
	Padding              string
	Margin               string
	Gap                  string
	IconSize             string
	IconUseOriginalColor bool
	ListStyleType        string
	ListItemsLayout      string
}

// ResolveStyle merges a field's style over its container's. The field wins on
// every axis; anything unset on both sides falls back to the document style
// or to the package defaults.
func ResolveStyle(field, container *StyleConfig, global StyleConfig) EffectiveStyle {
	var merged StyleConfig
	if container != nil {
		merged = *container
	}
	merged = merged.Merge(field)

	first := func(values ...string) string {
		for _, v := range values {
			if v != "" {
				return v
			}
		}
		return ""
	}

	style := EffectiveStyle{
		Color:           first(merged.PrimaryColor, DefaultColor),
		SecondaryColor:  merged.SecondaryColor,
		FontFamily:      first(merged.Font, global.Font),
		FontSize:        first(merged.FontSize.CSS(), global.FontSize.CSS(), DefaultFontSize),
		FontWeight:      string(merged.FontWeight),
		FontStyle:       merged.FontStyle,
		TextDecoration:  merged.TextDecoration,
		TextAlign:       first(merged.TextAlign, global.TextAlign, DefaultTextAlign),
		BackgroundColor: first(merged.BackgroundColor, DefaultBackgroundColor),
		BackgroundImage: merged.BackgroundImage,
		Padding:         merged.Padding.CSS(),
		Margin:          merged.Margin.CSS(),
		Gap:             merged.Gap.CSS(),
		IconSize:        first(merged.IconSize.CSS(), DefaultIconSize),
		ListStyleType:   first(merged.ListStyleType, DefaultListStyleType),
		ListItemsLayout: first(merged.ListItemsLayout, DefaultListItemsLayout),
	}
	style.IconUseOriginalColor = merged.IconUseOriginalColor == nil || *merged.IconUseOriginalColor
	return style
}

// CSS returns the text and box declarations of the style
func (s EffectiveStyle) CSS() map[string]string {
	css := map[string]string{
		"color":            s.Color,
		"font-size":        s.FontSize,
		"text-align":       s.TextAlign,
		"background-color": s.BackgroundColor,
	}
	set := func(key, value string) {
		if value != "" {
			css[key] = value
		}
	}
	set("font-family", s.FontFamily)
	set("font-weight", s.FontWeight)
	set("font-style", s.FontStyle)
	set("text-decoration", s.TextDecoration)
	set("padding", s.Padding)
	set("margin", s.Margin)
	set("gap", s.Gap)
	if s.BackgroundImage != "" {
		css["background-image"] = cssURL(s.BackgroundImage)
		css["background-size"] = "cover"
		css["background-position"] = "center"
	}
	return css
}

// BorderDeclarations computes the border rule of a style config. Without a
// border width only the radius applies. Sides is either "all" or a comma
// separated subset of top, bottom, left and right.
func BorderDeclarations(style *StyleConfig) map[string]string {
	css := map[string]string{}
	if style == nil {
		return css
	}
	radius := style.BorderRadius.CSS()
	if radius != "" {
		css["border-radius"] = radius
	}
	width := style.BorderWidth.CSS()
	if width == "" {
		return css
	}

	borderStyle := style.BorderStyle
	if borderStyle == "" {
		borderStyle = DefaultBorderStyle
	}
	color := style.BorderColor
	if color == "" {
		color = DefaultBorderColor
	}
	declaration := width + " " + borderStyle + " " + color

	sides := strings.TrimSpace(style.BorderSides)
	if sides == "" || sides == "all" {
		css["border"] = declaration
		return css
	}
	for _, side := range strings.Split(sides, ",") {
		switch side = strings.TrimSpace(side); side {
		case "top", "bottom", "left", "right":
			css["border-"+side] = declaration
		}
	}
	return css
}

// ContainerCSS returns the box declarations of a section, block, header,
// footer or card container
func ContainerCSS(style *StyleConfig) map[string]string {
	css := BorderDeclarations(style)
	if style == nil {
		return css
	}
	set := func(key, value string) {
		if value != "" {
			css[key] = value
		}
	}
	set("background-color", style.BackgroundColor)
	set("padding", style.Padding.CSS())
	set("margin", style.Margin.CSS())
	set("gap", style.Gap.CSS())
	set("color", style.PrimaryColor)
	set("font-family", style.Font)
	set("font-size", style.FontSize.CSS())
	set("text-align", style.TextAlign)
	return css
}

func cssURL(u string) string {
	return "url('" + strings.ReplaceAll(u, "'", "%27") + "')"
}

func mergeCSS(dst map[string]string, src map[string]string) map[string]string {
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
