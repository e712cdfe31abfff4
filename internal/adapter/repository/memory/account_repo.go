package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/omerfarukdemir/atlasbank-backend/internal/domain"
)

// accountRepository implements domain.AccountRepository
type accountRepository struct {
	s *Store
}

// NewAccountRepository creates a new in-memory account repository
func NewAccountRepository(s *Store) domain.AccountRepository {
	return &accountRepository{s: s}
}

// Create creates a new account
func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.accounts[account.ID] = &accountSlot{acc: *account}
	r.s.ibans[account.IBAN] = account.ID
	return nil
}

// GetByID retrieves a snapshot of an account by its ID
func (r *accountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	slot, ok := r.s.slotByID(id)
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	cp := slot.snapshot()
	return &cp, nil
}

// GetByIBAN retrieves a snapshot of an account by its IBAN
func (r *accountRepository) GetByIBAN(ctx context.Context, iban string) (*domain.Account, error) {
	r.s.mu.RLock()
	id, ok := r.s.ibans[iban]
	r.s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return r.GetByID(ctx, id)
}

// ListByUser retrieves the active accounts of a user in creation order
func (r *accountRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Account, error) {
	r.s.mu.RLock()
	slots := make([]*accountSlot, 0, len(r.s.accounts))
	for _, slot := range r.s.accounts {
		slots = append(slots, slot)
	}
	r.s.mu.RUnlock()

	out := make([]*domain.Account, 0)
	for _, slot := range slots {
		acc := slot.snapshot()
		if acc.UserID == userID && acc.IsActive {
			cp := acc
			out = append(out, &cp)
		}
	}
	sortAccountsByCreation(out)
	return out, nil
}

// Deactivate soft-deletes an account; history keeps referencing it
func (r *accountRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	slot, ok := r.s.slotByID(id)
	if !ok {
		return domain.ErrAccountNotFound
	}
	slot.mu.Lock()
	slot.acc.IsActive = false
	slot.mu.Unlock()
	return nil
}
