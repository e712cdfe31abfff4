package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/omerfarukdemir/atlasbank-backend/internal/domain"
)

// cardRepository implements domain.CardRepository
type cardRepository struct {
	db *DB
}

// NewCardRepository creates a new card repository
func NewCardRepository(db *DB) domain.CardRepository {
	return &cardRepository{db: db}
}

// Create creates a new card
func (r *cardRepository) Create(ctx context.Context, card *domain.Card) error {
	query := `
		INSERT INTO cards (id, account_id, card_number, card_type, card_limit, status, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	var limit sql.NullString
	if card.Limit != nil {
		limit = sql.NullString{String: card.Limit.String(), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		card.ID,
		card.AccountID,
		card.CardNumber,
		string(card.CardType),
		limit,
		string(card.Status),
		card.CreatedAt,
		card.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create card: %w", err)
	}

	return nil
}

// ListByAccounts retrieves the cards issued against any of the given accounts
func (r *cardRepository) ListByAccounts(ctx context.Context, accountIDs []uuid.UUID) ([]*domain.Card, error) {
	if len(accountIDs) == 0 {
		return []*domain.Card{}, nil
	}

	query := `
		SELECT id, account_id, card_number, card_type, card_limit, status, created_at, expires_at
		FROM cards
		WHERE account_id = ANY($1)
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(accountIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	cards := make([]*domain.Card, 0)
	for rows.Next() {
		var card domain.Card
		var limit sql.NullString

		err := rows.Scan(
			&card.ID,
			&card.AccountID,
			&card.CardNumber,
			&card.CardType,
			&limit,
			&card.Status,
			&card.CreatedAt,
			&card.ExpiresAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}

		if limit.Valid {
			l, err := decimal.NewFromString(limit.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse card limit: %w", err)
			}
			card.Limit = &l
		}

		cards = append(cards, &card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cards: %w", err)
	}

	return cards, nil
}
