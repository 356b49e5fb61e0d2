package bulletin

// Source names where an active header or footer came from
type Source string

const (
	SourceNone    Source = "none"
	SourceCard    Source = "card"
	SourceSection Source = "section"
	SourceGlobal  Source = "global"
)

// HeaderFooterInput gathers everything header/footer resolution depends on
type HeaderFooterInput struct {
	Section      Section
	GlobalHeader *HeaderFooterConfig
	GlobalFooter *HeaderFooterConfig
	Cards        CardResolver
	ForceGlobal  bool
}

// ActiveHeaderFooter is the outcome of resolution. Header and Footer are nil
// when no candidate applies.
type ActiveHeaderFooter struct {
	Header       *HeaderFooterConfig
	Footer       *HeaderFooterConfig
	HeaderSource Source
	FooterSource Source
	Card         *Card
}

type candidate struct {
	source  Source
	config  *HeaderFooterConfig
	allowed bool
}

// firstNonEmpty evaluates candidates in priority order
func firstNonEmpty(candidates []candidate) (*HeaderFooterConfig, Source) {
	for _, c := range candidates {
		if c.allowed && !c.config.IsEmpty() {
			return c.config, c.source
		}
	}
	return nil, SourceNone
}

// slotCandidates lists the sources of one slot from highest to lowest
// priority: card, then section (unless forced global), then global
func slotCandidates(card, section, global *HeaderFooterConfig, forceGlobal bool) []candidate {
	return []candidate{
		{source: SourceCard, config: card, allowed: true},
		{source: SourceSection, config: section, allowed: !forceGlobal},
		{source: SourceGlobal, config: global, allowed: true},
	}
}

// FindActiveCard returns the card of the first card field of the section
// whose active card resolves. Later card fields are not considered.
func FindActiveCard(section Section, cards CardResolver) (*Card, bool) {
	if cards == nil {
		return nil, false
	}
	for _, block := range section.Blocks {
		for _, field := range block.Fields {
			if field.Type != FieldTypeCard {
				continue
			}
			id, ok := field.Variant().(CardField).ActiveCardID()
			if !ok {
				continue
			}
			if card, found := cards.Card(id); found {
				return card, true
			}
		}
	}
	return nil, false
}

// ResolveHeaderFooter picks the header and footer of a section. Each slot is
// resolved independently.
func ResolveHeaderFooter(in HeaderFooterInput) ActiveHeaderFooter {
	var cardHeader, cardFooter *HeaderFooterConfig
	card, _ := FindActiveCard(in.Section, in.Cards)
	if card != nil {
		cardHeader = card.Content.HeaderConfig
		cardFooter = card.Content.FooterConfig
	}

	var active ActiveHeaderFooter
	active.Card = card
	active.Header, active.HeaderSource = firstNonEmpty(slotCandidates(cardHeader, in.Section.HeaderConfig, in.GlobalHeader, in.ForceGlobal))
	active.Footer, active.FooterSource = firstNonEmpty(slotCandidates(cardFooter, in.Section.FooterConfig, in.GlobalFooter, in.ForceGlobal))
	return active
}
