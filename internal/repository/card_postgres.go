package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/agroclimatic/bulletins/internal/domain"
)

var cardColumns = []string{"id", "name", "card_type", "content", "created_at", "updated_at", "deleted_at"}

type cardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new PostgreSQL card repository
func NewCardRepository(db *sql.DB) domain.CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) CreateCard(ctx context.Context, card *domain.Card) error {
	now := time.Now().UTC()
	card.CreatedAt = now
	card.UpdatedAt = now

	query, args, err := psql.Insert("cards").
		Columns(cardColumns[:6]...).
		Values(card.ID, card.Name, card.CardType, domain.AsJSON(&card.Content), card.CreatedAt, card.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create card: %w", err)
	}
	return nil
}

func (r *cardRepository) GetCard(ctx context.Context, id string) (*domain.Card, error) {
	query, args, err := psql.Select(cardColumns...).
		From("cards").
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	card, err := scanCard(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrCardNotFound{Message: "card not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	return card, nil
}

func (r *cardRepository) GetCards(ctx context.Context, cardType string) ([]*domain.Card, error) {
	builder := psql.Select(cardColumns...).
		From("cards").
		Where(sq.Eq{"deleted_at": nil}).
		OrderBy("name ASC")

	if cardType != "" {
		builder = builder.Where(sq.Eq{"card_type": cardType})
	}

	return r.list(ctx, builder)
}

// GetCardsByIDs returns the cards found, in no particular order
func (r *cardRepository) GetCardsByIDs(ctx context.Context, ids []string) ([]*domain.Card, error) {
	if len(ids) == 0 {
		return []*domain.Card{}, nil
	}

	builder := psql.Select(cardColumns...).
		From("cards").
		Where("id = ANY(?)", pq.Array(ids)).
		Where(sq.Eq{"deleted_at": nil})

	return r.list(ctx, builder)
}

func (r *cardRepository) list(ctx context.Context, builder sq.SelectBuilder) ([]*domain.Card, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get cards: %w", err)
	}
	defer rows.Close()

	cards := []*domain.Card{}
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating card rows: %w", err)
	}
	return cards, nil
}

func (r *cardRepository) UpdateCard(ctx context.Context, card *domain.Card) error {
	card.UpdatedAt = time.Now().UTC()

	query, args, err := psql.Update("cards").
		Set("name", card.Name).
		Set("card_type", card.CardType).
		Set("content", domain.AsJSON(&card.Content)).
		Set("updated_at", card.UpdatedAt).
		Where(sq.Eq{"id": card.ID, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	return r.execAffectingOne(ctx, "update", query, args)
}

func (r *cardRepository) DeleteCard(ctx context.Context, id string) error {
	query, args, err := psql.Update("cards").
		Set("deleted_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	return r.execAffectingOne(ctx, "delete", query, args)
}

func (r *cardRepository) execAffectingOne(ctx context.Context, action, query string, args []interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to %s card: %w", action, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return &domain.ErrCardNotFound{Message: "card not found"}
	}
	return nil
}

func scanCard(row scanner) (*domain.Card, error) {
	var (
		card      domain.Card
		deletedAt sql.NullTime
	)

	err := row.Scan(
		&card.ID,
		&card.Name,
		&card.CardType,
		domain.AsJSON(&card.Content),
		&card.CreatedAt,
		&card.UpdatedAt,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}

	if deletedAt.Valid {
		card.DeletedAt = &deletedAt.Time
	}
	return &card, nil
}
