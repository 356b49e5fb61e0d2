package bulletin

import (
	"fmt"
	"strconv"
)

// ViewMode selects how a multi-section document is presented
type ViewMode string

const (
	ViewCarousel ViewMode = "carousel"
	ViewScroll   ViewMode = "scroll"
	ViewGrid     ViewMode = "grid"
)

// ParseViewMode validates a view mode name; empty selects the carousel
func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(s) {
	case "", ViewCarousel:
		return ViewCarousel, nil
	case ViewScroll, ViewGrid:
		return ViewMode(s), nil
	}
	return "", fmt.Errorf("invalid view mode: %s", s)
}

// gridScale shrinks each page to a thumbnail in the grid view
const gridScale = "0.3"

// Navigator is the position of a view inside a document. Views own their
// navigator; the renderer only receives the indexes.
type Navigator struct {
	SectionIndex int `json:"section_index"`
	PageIndex    int `json:"page_index"`
}

// SectionCount returns the number of sections of a document
func SectionCount(doc *CreateTemplateData) int {
	if doc == nil {
		return 0
	}
	return len(doc.Version.Content.Sections)
}

// PageCount returns the number of pages the section at index spans
func PageCount(doc *CreateTemplateData, sectionIndex int) int {
	n := SectionCount(doc)
	if n == 0 {
		return 1
	}
	sectionIndex = max(0, min(sectionIndex, n-1))
	return GetSectionPagination(doc.Version.Content.Sections[sectionIndex]).TotalPages
}

// Clamp brings the navigator inside the document
func (n Navigator) Clamp(doc *CreateTemplateData) Navigator {
	sections := SectionCount(doc)
	if sections == 0 {
		return Navigator{}
	}
	n.SectionIndex = max(0, min(n.SectionIndex, sections-1))
	n.PageIndex = max(0, min(n.PageIndex, PageCount(doc, n.SectionIndex)-1))
	return n
}

// SetSection moves to a section; the page always restarts at 0
func (n Navigator) SetSection(doc *CreateTemplateData, sectionIndex int) Navigator {
	return Navigator{SectionIndex: sectionIndex}.Clamp(doc)
}

func (n Navigator) NextSection(doc *CreateTemplateData) Navigator {
	return n.SetSection(doc, n.SectionIndex+1)
}

func (n Navigator) PrevSection(doc *CreateTemplateData) Navigator {
	return n.SetSection(doc, n.SectionIndex-1)
}

func (n Navigator) NextPage(doc *CreateTemplateData) Navigator {
	n.PageIndex++
	return n.Clamp(doc)
}

func (n Navigator) PrevPage(doc *CreateTemplateData) Navigator {
	n.PageIndex--
	return n.Clamp(doc)
}

// RenderView renders a document in a view mode. The carousel shows the
// navigator's page with position indicators; scroll stacks every section and
// grid tiles them as thumbnails, both at page 0.
func (r *Renderer) RenderView(doc *CreateTemplateData, mode ViewMode, nav Navigator) *Node {
	nav = nav.Clamp(doc)
	view := El("div", "bulletin-view bulletin-view-"+string(mode))

	switch mode {
	case ViewScroll:
		view.SetStyle("display", "flex").
			SetStyle("flex-direction", "column").
			SetStyle("align-items", "center").
			SetStyle("gap", "24px")
		for i := 0; i < max(1, SectionCount(doc)); i++ {
			view.Append(r.labelled(doc, i, r.RenderDocument(doc, i, 0)))
		}
	case ViewGrid:
		view.SetStyle("display", "grid").
			SetStyle("grid-template-columns", "repeat(auto-fill, minmax(260px, 1fr))").
			SetStyle("gap", "16px")
		for i := 0; i < max(1, SectionCount(doc)); i++ {
			page := r.RenderDocument(doc, i, 0).
				SetStyle("transform", "scale("+gridScale+")").
				SetStyle("transform-origin", "top left")
			thumb := El("div", "bulletin-thumbnail", page).
				SetAttr("data-section-index", strconv.Itoa(i)).
				SetStyle("overflow", "hidden")
			view.Append(r.labelled(doc, i, thumb))
		}
	default:
		view.Append(r.RenderDocument(doc, nav.SectionIndex, nav.PageIndex))
		view.Append(r.indicators(doc, nav))
	}
	return view
}

func (r *Renderer) labelled(doc *CreateTemplateData, sectionIndex int, page *Node) *Node {
	name := ""
	if sectionIndex < SectionCount(doc) {
		name = doc.Version.Content.Sections[sectionIndex].DisplayName
	}
	if name == "" {
		name = r.t(MsgUntitledSection, map[string]string{"number": strconv.Itoa(sectionIndex + 1)})
	}
	return El("figure", "bulletin-view-item", page, Text("figcaption", "bulletin-view-caption", name))
}

func (r *Renderer) indicators(doc *CreateTemplateData, nav Navigator) *Node {
	sections := max(1, SectionCount(doc))
	node := El("div", "bulletin-indicators",
		Text("span", "bulletin-section-indicator", r.t(MsgSectionIndicator, map[string]string{
			"current": strconv.Itoa(nav.SectionIndex + 1),
			"total":   strconv.Itoa(sections),
		})),
	)
	if pages := PageCount(doc, nav.SectionIndex); pages > 1 {
		node.Append(Text("span", "bulletin-page-indicator", r.t(MsgPageIndicator, map[string]string{
			"current": strconv.Itoa(nav.PageIndex + 1),
			"total":   strconv.Itoa(pages),
		})))
	}
	return node
}

// PageRef identifies one rendered page of a document
type PageRef struct {
	SectionIndex int `json:"section_index"`
	PageIndex    int `json:"page_index"`
}

// Pages lists every page of every section in display order
func Pages(doc *CreateTemplateData) []PageRef {
	sections := SectionCount(doc)
	if sections == 0 {
		return []PageRef{{}}
	}
	var refs []PageRef
	for s := 0; s < sections; s++ {
		for p := 0; p < PageCount(doc, s); p++ {
			refs = append(refs, PageRef{SectionIndex: s, PageIndex: p})
		}
	}
	return refs
}

// RenderAllPages renders every page of the document, as handed to an export
// pipeline
func (r *Renderer) RenderAllPages(doc *CreateTemplateData) []*Node {
	refs := Pages(doc)
	pages := make([]*Node, 0, len(refs))
	for _, ref := range refs {
		pages = append(pages, r.RenderDocument(doc, ref.SectionIndex, ref.PageIndex).
			SetAttr("data-page-index", strconv.Itoa(ref.PageIndex)))
	}
	return pages
}
