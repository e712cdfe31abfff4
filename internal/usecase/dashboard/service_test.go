package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omerfarukdemir/atlasbank-backend/internal/adapter/repository/memory"
	"github.com/omerfarukdemir/atlasbank-backend/internal/domain"
	"github.com/omerfarukdemir/atlasbank-backend/internal/usecase/ledger"
)

func TestGetOverview(t *testing.T) {
	ctx := context.Background()

	store := memory.NewStore()
	userRepo := memory.NewUserRepository(store)
	accountRepo := memory.NewAccountRepository(store)
	txRepo := memory.NewTransactionRepository(store)
	cardRepo := memory.NewCardRepository(store)
	ledgerSvc := ledger.NewService(accountRepo, txRepo, memory.NewLedgerStore(store))

	user := &domain.User{
		ID:           uuid.New(),
		Email:        "mehmet@example.com",
		PasswordHash: "x",
		FirstName:    "Mehmet",
		LastName:     "Demir",
		CreatedAt:    time.Now().UTC(),
		IsActive:     true,
	}
	require.NoError(t, userRepo.Create(ctx, user))

	newAccount := func(iban string) *domain.Account {
		acc := &domain.Account{
			ID:            uuid.New(),
			UserID:        user.ID,
			AccountNumber: "1234567890",
			IBAN:          iban,
			AccountType:   domain.AccountTypeChecking,
			Currency:      domain.CurrencyTRY,
			Balance:       decimal.Zero,
			CreatedAt:     time.Now().UTC(),
			IsActive:      true,
		}
		require.NoError(t, accountRepo.Create(ctx, acc))
		return acc
	}
	a := newAccount("TR32 0001 0001 00000000001")
	b := newAccount("TR32 0001 0001 00000000002")

	_, err := ledgerSvc.Deposit(ctx, ledger.DepositInput{UserID: user.ID, AccountID: a.ID, Amount: decimal.NewFromInt(300)})
	require.NoError(t, err)
	_, err = ledgerSvc.Deposit(ctx, ledger.DepositInput{UserID: user.ID, AccountID: b.ID, Amount: decimal.NewFromFloat(120.50)})
	require.NoError(t, err)

	card := &domain.Card{
		ID:         uuid.New(),
		AccountID:  a.ID,
		CardNumber: "4*** **** **** 1234",
		CardType:   domain.CardTypeDebit,
		Status:     domain.CardStatusActive,
		CreatedAt:  time.Now().UTC(),
		ExpiresAt:  time.Now().UTC().AddDate(4, 0, 0),
	}
	require.NoError(t, cardRepo.Create(ctx, card))

	svc := NewDashboardService(userRepo, accountRepo, txRepo, cardRepo)
	overview, err := svc.GetOverview(ctx, user.ID)
	require.NoError(t, err)

	assert.Equal(t, user.ID, overview.User.ID)
	assert.True(t, overview.TotalBalance.Equal(decimal.NewFromFloat(420.50)))
	assert.Len(t, overview.Accounts, 2)
	assert.Len(t, overview.Cards, 1)
	require.Len(t, overview.RecentTransactions, 2)
	// Newest first across both accounts.
	assert.True(t, overview.RecentTransactions[0].Amount.Equal(decimal.NewFromFloat(120.50)))

	t.Run("Unknown user fails", func(t *testing.T) {
		_, err := svc.GetOverview(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}
