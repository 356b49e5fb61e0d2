package domain

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"

	"github.com/agroclimatic/bulletins/pkg/bulletin"
)

//go:generate mockgen -destination mocks/mock_card_service.go -package mocks github.com/agroclimatic/bulletins/internal/domain CardService
//go:generate mockgen -destination mocks/mock_card_repository.go -package mocks github.com/agroclimatic/bulletins/internal/domain CardRepository

// Card is a reusable content unit that card fields embed by id
type Card struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	CardType  string               `json:"card_type"`
	Content   bulletin.CardContent `json:"content"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
	DeletedAt *time.Time           `json:"deleted_at,omitempty"`
}

func (c *Card) Validate() error {
	if !govalidator.IsUUID(c.ID) {
		return fmt.Errorf("invalid card: id must be a UUID")
	}
	if c.Name == "" {
		return fmt.Errorf("invalid card: name is required")
	}
	if !govalidator.InRangeInt(len(c.Name), 1, 255) {
		return fmt.Errorf("invalid card: name length must be between 1 and 255")
	}
	if c.CardType == "" {
		return fmt.Errorf("invalid card: card_type is required")
	}
	if len(c.CardType) > 50 {
		return fmt.Errorf("invalid card: card_type length must be between 1 and 50")
	}
	if color := c.Content.BackgroundColor; color != "" && color != "transparent" && !govalidator.IsHexcolor(color) && !govalidator.IsRGBcolor(color) {
		return fmt.Errorf("invalid card: background_color must be a hex or rgb color")
	}
	if u := c.Content.BackgroundURL; u != "" && !isResourceURL(u) {
		return fmt.Errorf("invalid card: background_url must be a URL or an absolute path")
	}
	for i, block := range c.Content.Blocks {
		if err := validateFields(fmt.Sprintf("blocks[%d]", i), block.Fields); err != nil {
			return fmt.Errorf("invalid card: %w", err)
		}
	}
	return nil
}

// ToBulletinCard returns the renderer view of the card
func (c *Card) ToBulletinCard() *bulletin.Card {
	return &bulletin.Card{
		ID:       c.ID,
		Name:     c.Name,
		CardType: c.CardType,
		Content:  c.Content,
	}
}

// isResourceURL accepts absolute URLs and server relative paths
func isResourceURL(value string) bool {
	if strings.HasPrefix(value, "/") && !strings.HasPrefix(value, "//") {
		return govalidator.IsRequestURI(value)
	}
	return govalidator.IsURL(value)
}

type CreateCardRequest struct {
	ID       string               `json:"id,omitempty"`
	Name     string               `json:"name"`
	CardType string               `json:"card_type"`
	Content  bulletin.CardContent `json:"content"`
}

func (r *CreateCardRequest) Validate() (*Card, error) {
	id := r.ID
	if id == "" {
		id = uuid.New().String()
	}

	card := &Card{ID: id, Name: r.Name, CardType: r.CardType, Content: r.Content}
	if err := card.Validate(); err != nil {
		return nil, fmt.Errorf("invalid create card request: %w", err)
	}
	return card, nil
}

type GetCardsRequest struct {
	CardType string   `json:"card_type,omitempty"`
	IDs      []string `json:"ids,omitempty"`
}

// FromURLParams reads card_type and a comma separated ids filter
func (r *GetCardsRequest) FromURLParams(queryParams url.Values) error {
	r.CardType = queryParams.Get("card_type")
	r.IDs = nil

	if ids := queryParams.Get("ids"); ids != "" {
		for _, id := range strings.Split(ids, ",") {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			if !govalidator.IsUUID(id) {
				return fmt.Errorf("invalid get cards request: ids must be UUIDs")
			}
			r.IDs = append(r.IDs, id)
		}
	}
	if len(r.CardType) > 50 {
		return fmt.Errorf("invalid get cards request: card_type length must be between 1 and 50")
	}
	return nil
}

type GetCardRequest struct {
	ID string `json:"id" valid:"required,uuid"`
}

func (r *GetCardRequest) FromURLParams(queryParams url.Values) error {
	r.ID = queryParams.Get("id")

	if _, err := govalidator.ValidateStruct(r); err != nil {
		return fmt.Errorf("invalid get card request: %w", err)
	}
	return nil
}

type UpdateCardRequest struct {
	ID       string               `json:"id"`
	Name     string               `json:"name"`
	CardType string               `json:"card_type"`
	Content  bulletin.CardContent `json:"content"`
}

func (r *UpdateCardRequest) Validate() (*Card, error) {
	card := &Card{ID: r.ID, Name: r.Name, CardType: r.CardType, Content: r.Content}
	if err := card.Validate(); err != nil {
		return nil, fmt.Errorf("invalid update card request: %w", err)
	}
	return card, nil
}

type DeleteCardRequest struct {
	ID string `json:"id" valid:"required,uuid"`
}

func (r *DeleteCardRequest) Validate() error {
	if _, err := govalidator.ValidateStruct(r); err != nil {
		return fmt.Errorf("invalid delete card request: %w", err)
	}
	return nil
}

// CardService provides operations for managing cards
type CardService interface {
	CreateCard(ctx context.Context, card *Card) error
	GetCard(ctx context.Context, id string) (*Card, error)

	// GetCards filters by type, and by ids when any are given
	GetCards(ctx context.Context, cardType string, ids []string) ([]*Card, error)

	UpdateCard(ctx context.Context, card *Card) error
	DeleteCard(ctx context.Context, id string) error
}

// CardRepository provides database operations for cards
type CardRepository interface {
	CreateCard(ctx context.Context, card *Card) error
	GetCard(ctx context.Context, id string) (*Card, error)
	GetCards(ctx context.Context, cardType string) ([]*Card, error)
	GetCardsByIDs(ctx context.Context, ids []string) ([]*Card, error)
	UpdateCard(ctx context.Context, card *Card) error
	DeleteCard(ctx context.Context, id string) error
}
