package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omerfarukdemir/atlasbank-backend/internal/domain"
)

// recentLimit caps how many transactions the overview shows.
const recentLimit = 10

// Overview is the aggregated read model behind the dashboard
type Overview struct {
	User               *domain.User
	TotalBalance       decimal.Decimal
	Accounts           []*domain.Account
	RecentTransactions []*domain.Transaction
	Cards              []*domain.Card
}

// DashboardService composes read-only projections of ledger state.
// It never mutates anything.
type DashboardService struct {
	UserRepo        domain.UserRepository
	AccountRepo     domain.AccountRepository
	TransactionRepo domain.TransactionRepository
	CardRepo        domain.CardRepository
}

// NewDashboardService creates a new DashboardService instance
func NewDashboardService(
	userRepo domain.UserRepository,
	accountRepo domain.AccountRepository,
	transactionRepo domain.TransactionRepository,
	cardRepo domain.CardRepository,
) *DashboardService {
	return &DashboardService{
		UserRepo:        userRepo,
		AccountRepo:     accountRepo,
		TransactionRepo: transactionRepo,
		CardRepo:        cardRepo,
	}
}

// GetOverview aggregates the caller's accounts, total balance, recent
// transactions and cards into one view.
func (s *DashboardService) GetOverview(ctx context.Context, userID uuid.UUID) (*Overview, error) {
	user, err := s.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	accounts, err := s.AccountRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	total := decimal.Zero
	accountIDs := make([]uuid.UUID, len(accounts))
	for i, acc := range accounts {
		total = total.Add(acc.Balance)
		accountIDs[i] = acc.ID
	}

	recent, err := s.TransactionRepo.ListForAccounts(ctx, accountIDs, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent transactions: %w", err)
	}

	cards, err := s.CardRepo.ListByAccounts(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	return &Overview{
		User:               user,
		TotalBalance:       total,
		Accounts:           accounts,
		RecentTransactions: recent,
		Cards:              cards,
	}, nil
}
