package bulletin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const weeklyBulletin = `{
  "master": {"template_name": "Boletín agroclimático", "status": "active", "access_config": {"is_public": true}},
  "version": {"version_num": 2, "content": {
    "style_config": {"font": "Roboto", "font_size": 14, "primary_color": "#1b5e20", "bulletin_width": 800, "bulletin_height": 1100},
    "header_config": {"fields": [{"field_id": "gh", "type": "text", "value": "Cabecera global"}], "style_config": {"background_color": "#e8f5e9"}},
    "footer_config": {"fields": [{"field_id": "gf", "type": "page_number"}], "style_config": {}},
    "sections": [
      {
        "section_id": "s1",
        "display_name": "Portada",
        "style_config": {"background_image": "/bg/portada.png"},
        "header_config": {"fields": [{"field_id": "sh", "type": "text", "value": "Cabecera de sección"}], "style_config": {}},
        "blocks": [
          {"block_id": "b1", "fields": [
            {"field_id": "title", "type": "text", "bulletin": true, "value": "Semana 16"},
            {"field_id": "secret", "type": "text", "bulletin": false, "value": "NO-MOSTRAR"},
            {"field_id": "draft", "type": "text", "value": "BORRADOR"},
            {"field_id": "fecha", "type": "date", "bulletin": true, "value": "2025-04-15", "field_config": {"date_format": "DD/MM/YYYY"}}
          ]}
        ]
      },
      {
        "section_id": "s2",
        "display_name": "Recomendaciones",
        "blocks": [
          {"block_id": "b2", "fields": [
            {"field_id": "tips", "type": "list", "bulletin": true, "value": ["uno","dos","tres","cuatro","cinco","seis","siete"], "field_config": {"max_items_per_page": 3}}
          ]},
          {"block_id": "b3", "fields": [
            {"field_id": "card", "type": "card", "bulletin": true, "field_config": {"available_cards": ["c1", "c2"]}}
          ]}
        ]
      }
    ]
  }}
}`

func weeklyCards() CardSet {
	return NewCardSet([]Card{
		{ID: "c1", Content: CardContent{
			HeaderConfig: headerWith("card-header"),
			Blocks:       []Block{{Fields: []Field{{FieldID: "aviso", Type: FieldTypeText, Value: []byte(`"Heladas"`)}}}},
		}},
		{ID: "c2"},
	})
}

func TestRenderDocument_FiltersFieldsNotInBulletin(t *testing.T) {
	doc := mustDocument(t, weeklyBulletin)
	node := RenderDocument(doc, 0, 0, Options{})

	html := node.HTML()
	assert.Contains(t, html, "Semana 16")
	assert.Contains(t, html, "15/04/2025")
	assert.NotContains(t, html, "NO-MOSTRAR")
	assert.NotContains(t, html, "BORRADOR")
}

func TestRenderDocument_FiltersHeaderFooterFieldsNotInBulletin(t *testing.T) {
	body := []Block{{Fields: []Field{{FieldID: "body", Type: FieldTypeText, Value: []byte(`"Cuerpo"`)}}}}

	t.Run("global header and footer", func(t *testing.T) {
		doc := &CreateTemplateData{Version: TemplateVersion{Content: TemplateContent{
			HeaderConfig: &HeaderFooterConfig{Fields: []Field{
				{FieldID: "shown", Type: FieldTypeText, Value: []byte(`"Cabecera visible"`)},
				{FieldID: "hidden", Type: FieldTypeText, Bulletin: boolPtr(false), Value: []byte(`"CABECERA-OCULTA"`)},
			}},
			FooterConfig: &HeaderFooterConfig{Fields: []Field{
				{FieldID: "pie", Type: FieldTypeText, Value: []byte(`"Pie visible"`)},
				{FieldID: "note", Type: FieldTypeText, Bulletin: boolPtr(false), Value: []byte(`"PIE-OCULTO"`)},
			}},
			Sections: []Section{{Blocks: body}},
		}}}

		html := RenderDocument(doc, 0, 0, Options{}).HTML()
		assert.Contains(t, html, "Cabecera visible")
		assert.Contains(t, html, "Pie visible")
		assert.Contains(t, html, "Cuerpo")
		assert.NotContains(t, html, "CABECERA-OCULTA")
		assert.NotContains(t, html, "PIE-OCULTO")
	})

	t.Run("section header", func(t *testing.T) {
		doc := &CreateTemplateData{Version: TemplateVersion{Content: TemplateContent{
			Sections: []Section{{
				HeaderConfig: &HeaderFooterConfig{Fields: []Field{
					{FieldID: "sh", Type: FieldTypeText, Value: []byte(`"Sección visible"`)},
					{FieldID: "hidden", Type: FieldTypeText, Bulletin: boolPtr(false), Value: []byte(`"SECCION-OCULTA"`)},
				}},
				Blocks: body,
			}},
		}}}

		html := RenderDocument(doc, 0, 0, Options{}).HTML()
		assert.Contains(t, html, "Sección visible")
		assert.NotContains(t, html, "SECCION-OCULTA")
	})
}

func TestRenderDocument_SectionAssembly(t *testing.T) {
	doc := mustDocument(t, weeklyBulletin)
	query := mustQuery(t, RenderDocument(doc, 0, 0, Options{}))

	page := query.Find("div.bulletin-page")
	require.Equal(t, 1, page.Length())
	assert.Equal(t, "800px", styleOf(page, "width"))
	assert.Equal(t, "1100px", styleOf(page, "height"))
	assert.Equal(t, "url('/bg/portada.png')", styleOf(page, "background-image"))

	header := query.Find("div.bulletin-header")
	assert.Equal(t, "section", header.AttrOr("data-source", ""))
	assert.Contains(t, header.Text(), "Cabecera de sección")

	footer := query.Find("div.bulletin-footer")
	assert.Equal(t, "global", footer.AttrOr("data-source", ""))
	assert.Contains(t, footer.Text(), "Página 1 de 1")

	children := page.Children()
	require.Equal(t, 3, children.Length())
	assert.True(t, children.Eq(0).HasClass("bulletin-header"))
	assert.True(t, children.Eq(1).HasClass("bulletin-section"))
	assert.True(t, children.Eq(2).HasClass("bulletin-footer"))
}

func TestRenderDocument_ForceGlobalHeader(t *testing.T) {
	doc := mustDocument(t, weeklyBulletin)
	query := mustQuery(t, RenderDocument(doc, 0, 0, Options{ForceGlobalHeader: true}))

	header := query.Find("div.bulletin-header")
	assert.Equal(t, "global", header.AttrOr("data-source", ""))
	assert.Contains(t, header.Text(), "Cabecera global")
}

func TestRenderDocument_CardHeaderAndPagination(t *testing.T) {
	doc := mustDocument(t, weeklyBulletin)
	r := NewRenderer(Options{Cards: weeklyCards(), ForceGlobalHeader: true})

	expected := [][]string{{"uno", "dos", "tres"}, {"cuatro", "cinco", "seis"}, {"siete"}}
	for page, items := range expected {
		query := mustQuery(t, r.RenderDocument(doc, 1, page))

		var got []string
		query.Find("li.bulletin-list-item .bulletin-value").Each(func(_ int, s *goquerySelection) {
			got = append(got, s.Text())
		})
		assert.Equal(t, items, got, "page %d", page)

		header := query.Find("div.bulletin-header")
		assert.Equal(t, "card", header.AttrOr("data-source", ""), "card header beats force global")

		cardBlock := query.Find(`div.bulletin-block[data-block-id="b3"]`)
		assert.Equal(t, "1", styleOf(cardBlock, "flex"))
		assert.Contains(t, cardBlock.Text(), "Heladas")
	}

	assert.Equal(t, 3, PageCount(doc, 1))
}

func TestRenderDocument_Idempotent(t *testing.T) {
	doc := mustDocument(t, weeklyBulletin)
	r := NewRenderer(Options{Cards: weeklyCards()})

	for section := 0; section < 2; section++ {
		for page := 0; page < 3; page++ {
			first := r.RenderDocument(doc, section, page).HTML()
			second := r.RenderDocument(doc, section, page).HTML()
			assert.Equal(t, first, second)
		}
	}

	// the document itself is never mutated by page slicing
	assert.JSONEq(t, `["uno","dos","tres","cuatro","cinco","seis","siete"]`, string(doc.Version.Content.Sections[1].Blocks[0].Fields[0].Value))
}

func TestRenderDocument_EmptyDocument(t *testing.T) {
	doc := mustDocument(t, `{"version":{"content":{
		"header_config":{"fields":[{"field_id":"gh","type":"text","value":"Cabecera"}],"style_config":{}},
		"sections":[]}}}`)
	query := mustQuery(t, RenderDocument(doc, 3, 2, Options{}))

	assert.Equal(t, 1, query.Find("div.bulletin-header").Length())
	assert.Equal(t, 0, query.Find("div.bulletin-footer").Length())
	assert.Equal(t, "Esta plantilla no tiene secciones", query.Find("div.bulletin-empty").Text())

	assert.NotPanics(t, func() {
		RenderDocument(nil, 0, 0, Options{})
	})
}

func TestRenderDocument_ClampsSectionIndex(t *testing.T) {
	doc := mustDocument(t, weeklyBulletin)
	node := RenderDocument(doc, 99, 0, Options{})
	assert.Equal(t, "1", node.Attrs["data-section-index"])

	node = RenderDocument(doc, -1, 0, Options{})
	assert.Equal(t, "0", node.Attrs["data-section-index"])
}

func TestRenderDocument_CustomTranslator(t *testing.T) {
	translate := func(key string, params map[string]string) string {
		return "t:" + key
	}
	node := RenderDocument(&CreateTemplateData{}, 0, 0, Options{Translate: translate})
	assert.Equal(t, "t:"+MsgEmptyDocument, node.TextContent())
}
