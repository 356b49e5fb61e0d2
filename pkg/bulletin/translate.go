package bulletin

import (
	"sort"
	"strings"
)

// Translator returns user facing copy for a key. Params replace {name}
// placeholders in the resulting string.
type Translator func(key string, params map[string]string) string

// Keys of the copy the renderer asks for
const (
	MsgEmptyDocument    = "bulletin.empty_document"
	MsgNoImage          = "bulletin.no_image"
	MsgNoCards          = "bulletin.no_cards"
	MsgLoadingCard      = "bulletin.loading_card"
	MsgSectionIndicator = "bulletin.section_indicator"
	MsgPageIndicator    = "bulletin.page_indicator"
	MsgUntitledSection  = "bulletin.untitled_section"
)

var spanishCopy = map[string]string{
	MsgEmptyDocument:    "Esta plantilla no tiene secciones",
	MsgNoImage:          "Sin imagen",
	MsgNoCards:          "No hay tarjetas disponibles",
	MsgLoadingCard:      "Cargando tarjeta...",
	MsgSectionIndicator: "Sección {current} de {total}",
	MsgPageIndicator:    "Página {current} de {total}",
	MsgUntitledSection:  "Sección {number}",
}

// DefaultTranslator serves the built-in Spanish copy, falling back to the key
func DefaultTranslator(key string, params map[string]string) string {
	text, ok := spanishCopy[key]
	if !ok {
		text = key
	}
	return substitute(text, params)
}

// substitute replaces every placeholder in a single pass, so a value that
// itself contains "{name}" is left as is.
func substitute(text string, params map[string]string) string {
	if len(params) == 0 {
		return text
	}
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	pairs := make([]string, 0, len(names)*2)
	for _, name := range names {
		pairs = append(pairs, "{"+name+"}", params[name])
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
