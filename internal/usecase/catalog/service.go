// Package catalog owns the account and card inventory: creating,
// listing and deactivating catalog objects. It never touches balances;
// funds movement is the ledger package's monopoly.
package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omerfarukdemir/atlasbank-backend/internal/domain"
)

const cardValidity = 4 * 365 * 24 * time.Hour

// Service handles account and card catalog operations
type Service struct {
	AccountRepo domain.AccountRepository
	CardRepo    domain.CardRepository
}

// NewService creates a new catalog Service instance
func NewService(accountRepo domain.AccountRepository, cardRepo domain.CardRepository) *Service {
	return &Service{
		AccountRepo: accountRepo,
		CardRepo:    cardRepo,
	}
}

// CreateAccountInput represents the input for opening an account
type CreateAccountInput struct {
	UserID      uuid.UUID
	AccountType domain.AccountType
	Currency    string
}

// CreateAccount opens a new account with a zero balance. Opening
// balances (welcome bonuses, initial funding) are deposited through
// the ledger afterwards so every balance has a transaction behind it.
func (s *Service) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	currency := input.Currency
	if currency == "" {
		currency = domain.CurrencyTRY
	}

	acc := &domain.Account{
		ID:            uuid.New(),
		UserID:        input.UserID,
		AccountNumber: generateAccountNumber(),
		IBAN:          generateIBAN(),
		AccountType:   input.AccountType,
		Currency:      currency,
		Balance:       decimal.Zero,
		CreatedAt:     time.Now().UTC(),
		IsActive:      true,
	}
	if err := acc.Validate(); err != nil {
		return nil, err
	}

	if err := s.AccountRepo.Create(ctx, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

// ListAccounts returns the caller's active accounts.
func (s *Service) ListAccounts(ctx context.Context, userID uuid.UUID) ([]*domain.Account, error) {
	return s.AccountRepo.ListByUser(ctx, userID)
}

// CloseAccount soft-deactivates a caller-owned account. The row stays
// so the transaction log keeps resolving.
func (s *Service) CloseAccount(ctx context.Context, userID, accountID uuid.UUID) error {
	acc, err := s.AccountRepo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if !acc.IsOwnedBy(userID) {
		return domain.ErrAccountNotFound
	}
	return s.AccountRepo.Deactivate(ctx, accountID)
}

// CreateCardInput represents the input for issuing a card
type CreateCardInput struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
	CardType  domain.CardType
	Limit     *decimal.Decimal
}

// CreateCard issues a card against a caller-owned account.
func (s *Service) CreateCard(ctx context.Context, input CreateCardInput) (*domain.Card, error) {
	acc, err := s.AccountRepo.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}
	if !acc.IsOwnedBy(input.UserID) {
		return nil, domain.ErrAccountNotFound
	}
	if !acc.IsActive {
		return nil, domain.ErrAccountNotFound
	}

	if input.CardType == domain.CardTypeDebit && input.Limit != nil {
		return nil, errors.New("debit cards cannot carry a limit")
	}

	now := time.Now().UTC()
	card := &domain.Card{
		ID:         uuid.New(),
		AccountID:  input.AccountID,
		CardNumber: generateCardNumber(),
		CardType:   input.CardType,
		Limit:      input.Limit,
		Status:     domain.CardStatusActive,
		CreatedAt:  now,
		ExpiresAt:  now.Add(cardValidity),
	}
	if err := card.Validate(); err != nil {
		return nil, err
	}

	if err := s.CardRepo.Create(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

// ListCards returns every card issued against the caller's accounts.
func (s *Service) ListCards(ctx context.Context, userID uuid.UUID) ([]*domain.Card, error) {
	accounts, err := s.AccountRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(accounts))
	for i, acc := range accounts {
		ids[i] = acc.ID
	}
	return s.CardRepo.ListByAccounts(ctx, ids)
}
