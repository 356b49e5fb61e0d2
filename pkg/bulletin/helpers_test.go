package bulletin

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool {
	return &b
}

func mustField(t *testing.T, raw string) Field {
	t.Helper()
	var f Field
	require.NoError(t, json.Unmarshal([]byte(raw), &f))
	return f
}

func mustDocument(t *testing.T, raw string) *CreateTemplateData {
	t.Helper()
	doc, err := ParseDocument([]byte(raw))
	require.NoError(t, err)
	return doc
}

func mustQuery(t *testing.T, node *Node) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(node.HTML()))
	require.NoError(t, err)
	return doc
}

// listDocument builds a one section document holding a list of n string items
func listDocument(t *testing.T, n, perPage int) *CreateTemplateData {
	t.Helper()
	items := make([]string, n)
	for i := range items {
		items[i] = "item-" + string(rune('a'+i))
	}
	value, err := json.Marshal(items)
	require.NoError(t, err)
	config, err := json.Marshal(map[string]interface{}{"max_items_per_page": perPage})
	require.NoError(t, err)

	return &CreateTemplateData{
		Version: TemplateVersion{Content: TemplateContent{
			Sections: []Section{{
				DisplayName: "Pronóstico",
				Blocks: []Block{{Fields: []Field{{
					FieldID:     "alerts",
					Type:        FieldTypeList,
					Bulletin:    boolPtr(true),
					FieldConfig: config,
					Value:       value,
				}}}},
			}},
		}},
	}
}

type goquerySelection = goquery.Selection

// styleOf reads one declaration from a selection's inline style
func styleOf(s *goquery.Selection, property string) string {
	style, _ := s.Attr("style")
	for _, decl := range strings.Split(style, ";") {
		parts := strings.SplitN(decl, ":", 2)
		if len(parts) == 2 && strings.TrimSpace(parts[0]) == property {
			return strings.TrimSpace(parts[1])
		}
	}
	return ""
}
