package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/omerfarukdemir/atlasbank-backend/internal/domain"
)

// transactionRepository implements domain.TransactionRepository
type transactionRepository struct {
	s *Store
}

// NewTransactionRepository creates a new in-memory transaction repository
func NewTransactionRepository(s *Store) domain.TransactionRepository {
	return &transactionRepository{s: s}
}

// GetByID retrieves a transaction by its ID
func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	r.s.logMu.RLock()
	defer r.s.logMu.RUnlock()
	tx, ok := r.s.txs[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	cp := tx
	return &cp, nil
}

// ListForAccount retrieves transactions touching the account, newest first
func (r *transactionRepository) ListForAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]*domain.Transaction, error) {
	return r.ListForAccounts(ctx, []uuid.UUID{accountID}, limit)
}

// ListForAccounts retrieves transactions touching any of the accounts,
// newest first across all of them
func (r *transactionRepository) ListForAccounts(ctx context.Context, accountIDs []uuid.UUID, limit int) ([]*domain.Transaction, error) {
	wanted := make(map[uuid.UUID]bool, len(accountIDs))
	for _, id := range accountIDs {
		wanted[id] = true
	}

	r.s.logMu.RLock()
	defer r.s.logMu.RUnlock()

	out := make([]*domain.Transaction, 0)
	for i := len(r.s.txOrder) - 1; i >= 0 && len(out) < limit; i-- {
		tx := r.s.txs[r.s.txOrder[i]]
		from := tx.FromAccountID != nil && wanted[*tx.FromAccountID]
		to := tx.ToAccountID != nil && wanted[*tx.ToAccountID]
		if from || to {
			cp := tx
			out = append(out, &cp)
		}
	}
	return out, nil
}
