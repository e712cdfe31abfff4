package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/omerfarukdemir/atlasbank-backend/internal/domain"
)

// cardRepository implements domain.CardRepository
type cardRepository struct {
	s *Store
}

// NewCardRepository creates a new in-memory card repository
func NewCardRepository(s *Store) domain.CardRepository {
	return &cardRepository{s: s}
}

// Create creates a new card
func (r *cardRepository) Create(ctx context.Context, card *domain.Card) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.cards[card.ID] = *card
	return nil
}

// ListByAccounts retrieves all cards issued against the given accounts
func (r *cardRepository) ListByAccounts(ctx context.Context, accountIDs []uuid.UUID) ([]*domain.Card, error) {
	wanted := make(map[uuid.UUID]bool, len(accountIDs))
	for _, id := range accountIDs {
		wanted[id] = true
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.Card, 0)
	for _, c := range r.s.cards {
		if wanted[c.AccountID] {
			cp := c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
