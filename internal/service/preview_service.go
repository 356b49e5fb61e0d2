package service

import (
	"context"
	"fmt"
	"time"

	"github.com/asaskevich/govalidator"
	"golang.org/x/sync/errgroup"

	"github.com/agroclimatic/bulletins/config"
	"github.com/agroclimatic/bulletins/internal/domain"
	"github.com/agroclimatic/bulletins/pkg/bulletin"
	"github.com/agroclimatic/bulletins/pkg/cache"
	"github.com/agroclimatic/bulletins/pkg/logger"
	"github.com/agroclimatic/bulletins/pkg/tracing"
)

const defaultDocumentTitle = "Boletín agroclimático"

// PreviewService renders stored templates or inline documents. Cards the
// document references are loaded before rendering; the renderer itself never
// fetches.
type PreviewService struct {
	templates domain.TemplateRepository
	cards     domain.CardRepository
	cardCache cache.Cache[*domain.Card]
	cfg       config.RenderConfig
	logger    logger.Logger
}

func NewPreviewService(
	templates domain.TemplateRepository,
	cards domain.CardRepository,
	cardCache cache.Cache[*domain.Card],
	cfg config.RenderConfig,
	logger logger.Logger,
) *PreviewService {
	if cfg.MaxConcurrentCardFetches <= 0 {
		cfg.MaxConcurrentCardFetches = 1
	}
	return &PreviewService{
		templates: templates,
		cards:     cards,
		cardCache: cardCache,
		cfg:       cfg,
		logger:    logger,
	}
}

func (s *PreviewService) Preview(ctx context.Context, req domain.PreviewRequest) (resp *domain.PreviewResponse, err error) {
	ctx, span := tracing.StartServiceSpan(ctx, "PreviewService", "Preview")
	start := time.Now()
	mode := req.Mode
	defer func() {
		tracing.EndSpan(span, err)
		pages := 0
		if resp != nil {
			pages = 1
		}
		tracing.RecordRender(ctx, mode, pages, time.Since(start), err)
	}()

	viewMode, err := req.Validate()
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}
	mode = string(viewMode)

	doc, renderer, err := s.prepare(ctx, req.RenderSource)
	if err != nil {
		return nil, err
	}

	nav := bulletin.Navigator{SectionIndex: req.SectionIndex, PageIndex: req.PageIndex}.Clamp(doc)
	tracing.AddAttribute(ctx, "section_index", nav.SectionIndex)
	tracing.AddAttribute(ctx, "page_index", nav.PageIndex)

	return &domain.PreviewResponse{
		HTML:         renderer.RenderView(doc, viewMode, nav).HTML(),
		Mode:         mode,
		SectionCount: bulletin.SectionCount(doc),
		TotalPages:   bulletin.PageCount(doc, nav.SectionIndex),
		SectionIndex: nav.SectionIndex,
		PageIndex:    nav.PageIndex,
	}, nil
}

func (s *PreviewService) RenderPages(ctx context.Context, req domain.PagesRequest) (resp *domain.PagesResponse, err error) {
	ctx, span := tracing.StartServiceSpan(ctx, "PreviewService", "RenderPages")
	start := time.Now()
	defer func() {
		tracing.EndSpan(span, err)
		pages := 0
		if resp != nil {
			pages = len(resp.Pages)
		}
		tracing.RecordRender(ctx, "pages", pages, time.Since(start), err)
	}()

	if err := req.Validate(); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	doc, renderer, err := s.prepare(ctx, req.RenderSource)
	if err != nil {
		return nil, err
	}

	title := doc.Master.TemplateName
	if title == "" {
		title = defaultDocumentTitle
	}

	refs := bulletin.Pages(doc)
	nodes := renderer.RenderAllPages(doc)
	resp = &domain.PagesResponse{Pages: make([]domain.RenderedPage, len(nodes))}
	for i, node := range nodes {
		resp.Pages[i] = domain.RenderedPage{
			SectionIndex: refs[i].SectionIndex,
			PageIndex:    refs[i].PageIndex,
			HTML:         bulletin.HTMLDocument(title, node),
		}
	}
	return resp, nil
}

// prepare loads the document and the cards it references and builds a renderer
func (s *PreviewService) prepare(ctx context.Context, src domain.RenderSource) (*bulletin.CreateTemplateData, *bulletin.Renderer, error) {
	doc := src.Document
	if src.TemplateID != "" {
		template, err := s.templates.GetTemplateByID(ctx, src.TemplateID, src.Version)
		if err != nil {
			if _, ok := err.(*domain.ErrTemplateNotFound); ok {
				return nil, nil, err
			}
			s.logger.WithField("template_id", src.TemplateID).Error(fmt.Sprintf("Failed to load template for preview: %v", err))
			return nil, nil, fmt.Errorf("failed to get template: %w", err)
		}
		doc = template.Document()
	}

	cards, err := s.resolveCards(ctx, doc, src.Cards)
	if err != nil {
		return nil, nil, err
	}

	locale := src.Locale
	if locale == "" {
		locale = s.cfg.Locale
	}

	renderer := bulletin.NewRenderer(bulletin.Options{
		ForceGlobalHeader: src.ForceGlobalHeader,
		Cards:             cards,
		Locale:            locale,
		TemplateData:      src.TemplateData,
		ImageFallback:     s.cfg.ImageFallback,
	})
	return doc, renderer, nil
}

// resolveCards builds the card set a render needs. Inline cards win over
// stored ones. Each round fetches the cards referenced by the previous round,
// so nested cards resolve as deep as the renderer will draw them.
func (s *PreviewService) resolveCards(ctx context.Context, doc *bulletin.CreateTemplateData, inline []bulletin.Card) (bulletin.CardSet, error) {
	cards := bulletin.NewCardSet(inline)
	requested := make(map[string]bool)
	queue := func(next []string, ids []string) []string {
		for _, id := range ids {
			if _, ok := cards[id]; ok || requested[id] {
				continue
			}
			requested[id] = true
			next = append(next, id)
		}
		return next
	}

	pending := queue(nil, bulletin.CollectCardIDs(doc))
	for i := range inline {
		pending = queue(pending, bulletin.CardReferences(&inline[i]))
	}

	for depth := 0; depth < bulletin.MaxCardDepth && len(pending) > 0; depth++ {
		loaded, err := s.loadCards(ctx, pending)
		if err != nil {
			return nil, err
		}
		pending = nil
		for _, card := range loaded {
			resolved := card.ToBulletinCard()
			cards[card.ID] = resolved
			pending = queue(pending, bulletin.CardReferences(resolved))
		}
	}
	return cards, nil
}

// loadCards returns the cards found among ids. Cards that don't exist are
// skipped and render as loading placeholders.
func (s *PreviewService) loadCards(ctx context.Context, ids []string) ([]*domain.Card, error) {
	results := make([]*domain.Card, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxConcurrentCardFetches)

	for i, id := range ids {
		if !govalidator.IsUUID(id) {
			continue
		}
		if card, ok := s.cardCache.Get(id); ok {
			tracing.RecordCardLookup(ctx, true)
			results[i] = card
			continue
		}

		i, id := i, id
		g.Go(func() error {
			tracing.RecordCardLookup(gctx, false)

			card, err := s.cards.GetCard(gctx, id)
			if err != nil {
				if _, ok := err.(*domain.ErrCardNotFound); ok {
					s.logger.WithField("card_id", id).Warn("Referenced card not found")
					return nil
				}
				return fmt.Errorf("failed to get card %s: %w", id, err)
			}

			s.cardCache.Set(id, card, s.cfg.CardCacheTTL)
			results[i] = card
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error(fmt.Sprintf("Failed to load cards for preview: %v", err))
		return nil, err
	}

	found := make([]*domain.Card, 0, len(results))
	for _, card := range results {
		if card != nil {
			found = append(found, card)
		}
	}
	return found, nil
}
