package service

import (
	"context"
	"fmt"

	"github.com/agroclimatic/bulletins/internal/domain"
	"github.com/agroclimatic/bulletins/pkg/cache"
	"github.com/agroclimatic/bulletins/pkg/logger"
	"github.com/agroclimatic/bulletins/pkg/tracing"
)

// CardService manages cards and evicts them from the preview cache on change
type CardService struct {
	repo   domain.CardRepository
	cards  cache.Cache[*domain.Card]
	logger logger.Logger
}

func NewCardService(repo domain.CardRepository, cards cache.Cache[*domain.Card], logger logger.Logger) *CardService {
	return &CardService{
		repo:   repo,
		cards:  cards,
		logger: logger,
	}
}

func (s *CardService) CreateCard(ctx context.Context, card *domain.Card) (err error) {
	ctx, span := tracing.StartServiceSpan(ctx, "CardService", "CreateCard")
	defer func() { tracing.EndSpan(span, err) }()

	if err := card.Validate(); err != nil {
		return fmt.Errorf("invalid card: %w", err)
	}

	if err := s.repo.CreateCard(ctx, card); err != nil {
		s.logger.WithField("card_id", card.ID).Error(fmt.Sprintf("Failed to create card: %v", err))
		return fmt.Errorf("failed to create card: %w", err)
	}
	return nil
}

func (s *CardService) GetCard(ctx context.Context, id string) (*domain.Card, error) {
	return tracing.TraceMethodWithResult(ctx, "CardService", "GetCard", func(ctx context.Context) (*domain.Card, error) {
		tracing.AddAttribute(ctx, "card_id", id)

		card, err := s.repo.GetCard(ctx, id)
		if err != nil {
			if _, ok := err.(*domain.ErrCardNotFound); ok {
				return nil, err
			}
			s.logger.WithField("card_id", id).Error(fmt.Sprintf("Failed to get card: %v", err))
			return nil, fmt.Errorf("failed to get card: %w", err)
		}
		return card, nil
	})
}

func (s *CardService) GetCards(ctx context.Context, cardType string, ids []string) ([]*domain.Card, error) {
	return tracing.TraceMethodWithResult(ctx, "CardService", "GetCards", func(ctx context.Context) ([]*domain.Card, error) {
		var (
			cards []*domain.Card
			err   error
		)
		if len(ids) > 0 {
			cards, err = s.repo.GetCardsByIDs(ctx, ids)
		} else {
			cards, err = s.repo.GetCards(ctx, cardType)
		}
		if err != nil {
			s.logger.WithField("card_type", cardType).Error(fmt.Sprintf("Failed to get cards: %v", err))
			return nil, fmt.Errorf("failed to get cards: %w", err)
		}

		if len(ids) > 0 && cardType != "" {
			filtered := cards[:0]
			for _, card := range cards {
				if card.CardType == cardType {
					filtered = append(filtered, card)
				}
			}
			cards = filtered
		}
		return cards, nil
	})
}

func (s *CardService) UpdateCard(ctx context.Context, card *domain.Card) (err error) {
	ctx, span := tracing.StartServiceSpan(ctx, "CardService", "UpdateCard")
	defer func() { tracing.EndSpan(span, err) }()

	if err := card.Validate(); err != nil {
		return fmt.Errorf("invalid card: %w", err)
	}

	if err := s.repo.UpdateCard(ctx, card); err != nil {
		if _, ok := err.(*domain.ErrCardNotFound); ok {
			return err
		}
		s.logger.WithField("card_id", card.ID).Error(fmt.Sprintf("Failed to update card: %v", err))
		return fmt.Errorf("failed to update card: %w", err)
	}

	s.cards.Delete(card.ID)
	return nil
}

func (s *CardService) DeleteCard(ctx context.Context, id string) (err error) {
	ctx, span := tracing.StartServiceSpan(ctx, "CardService", "DeleteCard")
	defer func() { tracing.EndSpan(span, err) }()

	if err := s.repo.DeleteCard(ctx, id); err != nil {
		if _, ok := err.(*domain.ErrCardNotFound); ok {
			return err
		}
		s.logger.WithField("card_id", id).Error(fmt.Sprintf("Failed to delete card: %v", err))
		return fmt.Errorf("failed to delete card: %w", err)
	}

	s.cards.Delete(id)
	return nil
}
