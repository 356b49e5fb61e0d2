package bulletin

// ResolveSectionBackground returns the background image of a section.
//
// The first select_background field in block then field order owns the
// background slot: its selected option maps to the URL at the same index of
// backgrounds_url, an unset value defaults to the first URL, and a value with
// no matching option yields no background at all. Only when the section has no
// such field does the static style_config.background_image apply.
func ResolveSectionBackground(section Section) (string, bool) {
	for _, block := range section.Blocks {
		for _, field := range block.Fields {
			if field.Type != FieldTypeSelectBackground {
				continue
			}
			return selectedBackground(field.Variant().(SelectBackgroundField))
		}
	}
	if section.StyleConfig != nil && section.StyleConfig.BackgroundImage != "" {
		return section.StyleConfig.BackgroundImage, true
	}
	return "", false
}

func selectedBackground(f SelectBackgroundField) (string, bool) {
	if f.Value == "" {
		if len(f.BackgroundsURL) > 0 && f.BackgroundsURL[0] != "" {
			return f.BackgroundsURL[0], true
		}
		return "", false
	}
	for i, option := range f.Options {
		if option != f.Value {
			continue
		}
		if i < len(f.BackgroundsURL) && f.BackgroundsURL[i] != "" {
			return f.BackgroundsURL[i], true
		}
		return "", false
	}
	return "", false
}
