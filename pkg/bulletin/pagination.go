package bulletin

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// PaginatedField locates the list that drives a section's pagination
type PaginatedField struct {
	BlockIndex      int
	FieldIndex      int
	FieldID         string
	MaxItemsPerPage int
	TotalItems      int
}

// SectionPagination describes how many pages a section spans
type SectionPagination struct {
	TotalPages int
	Field      *PaginatedField
}

// GetSectionPagination finds the first list field, in block then field order,
// that sets max_items_per_page and holds more items than that. Only that list
// is paginated; any other long list in the section renders in full.
func GetSectionPagination(section Section) SectionPagination {
	for bi, block := range section.Blocks {
		for fi, field := range block.Fields {
			if field.Type != FieldTypeList {
				continue
			}
			list := field.Variant().(ListField)
			if !list.Paginated || len(list.Items) <= list.MaxItemsPerPage {
				continue
			}
			total := len(list.Items)
			return SectionPagination{
				TotalPages: (total + list.MaxItemsPerPage - 1) / list.MaxItemsPerPage,
				Field: &PaginatedField{
					BlockIndex:      bi,
					FieldIndex:      fi,
					FieldID:         field.FieldID,
					MaxItemsPerPage: list.MaxItemsPerPage,
					TotalItems:      total,
				},
			}
		}
	}
	return SectionPagination{TotalPages: 1}
}

// PageWindow returns the [start, end) item range of a page. The page index is
// clamped into the valid range.
func (p PaginatedField) PageWindow(pageIndex int) (int, int) {
	if p.MaxItemsPerPage <= 0 {
		return 0, p.TotalItems
	}
	pages := (p.TotalItems + p.MaxItemsPerPage - 1) / p.MaxItemsPerPage
	pageIndex = max(0, min(pageIndex, pages-1))
	start := pageIndex * p.MaxItemsPerPage
	end := min(start+p.MaxItemsPerPage, p.TotalItems)
	return start, end
}

// SliceForPage derives a section whose paginated list holds only the items of
// the given page. Only the touched path is copied: the section, its blocks
// slice, the one block's fields slice and the field itself. Everything else
// is shared with the input, which is never modified.
func SliceForPage(section Section, paginated *PaginatedField, pageIndex int) Section {
	if paginated == nil ||
		paginated.BlockIndex < 0 || paginated.BlockIndex >= len(section.Blocks) ||
		paginated.FieldIndex < 0 || paginated.FieldIndex >= len(section.Blocks[paginated.BlockIndex].Fields) {
		return section
	}

	field := section.Blocks[paginated.BlockIndex].Fields[paginated.FieldIndex]
	start, end := paginated.PageWindow(pageIndex)
	sliced := field.WithValue(sliceListValue(field.Value, start, end))

	blocks := make([]Block, len(section.Blocks))
	copy(blocks, section.Blocks)
	block := blocks[paginated.BlockIndex]
	fields := make([]Field, len(block.Fields))
	copy(fields, block.Fields)
	fields[paginated.FieldIndex] = sliced
	block.Fields = fields
	blocks[paginated.BlockIndex] = block

	section.Blocks = blocks
	return section
}

// sliceListValue keeps the value's shape: a bare array stays an array and an
// object keeps its other keys with a shortened items array
func sliceListValue(raw json.RawMessage, start, end int) json.RawMessage {
	v := gjson.ParseBytes(raw)
	items := listItems(v)
	start = max(0, min(start, len(items)))
	end = max(start, min(end, len(items)))

	parts := make([]string, 0, end-start)
	for _, item := range items[start:end] {
		parts = append(parts, item.Raw)
	}
	window := json.RawMessage("[" + strings.Join(parts, ",") + "]")
	if v.IsArray() {
		return window
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return window
	}
	obj["items"] = window
	out, err := json.Marshal(obj)
	if err != nil {
		return window
	}
	return out
}
