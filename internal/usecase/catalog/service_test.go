package catalog

import (
	"context"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omerfarukdemir/atlasbank-backend/internal/adapter/repository/memory"
	"github.com/omerfarukdemir/atlasbank-backend/internal/domain"
)

func newService(t *testing.T) *Service {
	t.Helper()
	store := memory.NewStore()
	return NewService(memory.NewAccountRepository(store), memory.NewCardRepository(store))
}

func TestCreateAccount(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	userID := uuid.New()

	acc, err := svc.CreateAccount(ctx, CreateAccountInput{
		UserID:      userID,
		AccountType: domain.AccountTypeSavings,
		Currency:    "",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.AccountTypeSavings, acc.AccountType)
	assert.Equal(t, domain.CurrencyTRY, acc.Currency, "currency defaults to TRY")
	assert.True(t, acc.Balance.IsZero(), "catalog never conjures balances")
	assert.True(t, acc.IsActive)
	assert.Regexp(t, regexp.MustCompile(`^\d{10}$`), acc.AccountNumber)
	assert.Regexp(t, regexp.MustCompile(`^TR\d{2} \d{4} \d{4} \d{11}$`), acc.IBAN)
}

func TestListAccounts(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	userID := uuid.New()

	first, err := svc.CreateAccount(ctx, CreateAccountInput{UserID: userID, AccountType: domain.AccountTypeChecking})
	require.NoError(t, err)
	_, err = svc.CreateAccount(ctx, CreateAccountInput{UserID: uuid.New(), AccountType: domain.AccountTypeChecking})
	require.NoError(t, err)

	accounts, err := svc.ListAccounts(ctx, userID)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, first.ID, accounts[0].ID)
}

func TestCloseAccount(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	userID := uuid.New()

	acc, err := svc.CreateAccount(ctx, CreateAccountInput{UserID: userID, AccountType: domain.AccountTypeChecking})
	require.NoError(t, err)

	t.Run("Owner can close; account drops from listings", func(t *testing.T) {
		require.NoError(t, svc.CloseAccount(ctx, userID, acc.ID))
		accounts, err := svc.ListAccounts(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, accounts)
	})

	t.Run("Non-owner sees not found", func(t *testing.T) {
		other, err := svc.CreateAccount(ctx, CreateAccountInput{UserID: uuid.New(), AccountType: domain.AccountTypeChecking})
		require.NoError(t, err)
		err = svc.CloseAccount(ctx, userID, other.ID)
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	})
}

func TestCreateCard(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	userID := uuid.New()

	acc, err := svc.CreateAccount(ctx, CreateAccountInput{UserID: userID, AccountType: domain.AccountTypeChecking})
	require.NoError(t, err)

	t.Run("Issues a masked debit card", func(t *testing.T) {
		card, err := svc.CreateCard(ctx, CreateCardInput{
			UserID:    userID,
			AccountID: acc.ID,
			CardType:  domain.CardTypeDebit,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.CardStatusActive, card.Status)
		assert.Regexp(t, regexp.MustCompile(`^4\*\*\* \*\*\*\* \*\*\*\* \d{4}$`), card.CardNumber)
		assert.True(t, card.ExpiresAt.After(card.CreatedAt))
		assert.Nil(t, card.Limit)
	})

	t.Run("Credit card carries its limit", func(t *testing.T) {
		limit := decimal.NewFromInt(5000)
		card, err := svc.CreateCard(ctx, CreateCardInput{
			UserID:    userID,
			AccountID: acc.ID,
			CardType:  domain.CardTypeCredit,
			Limit:     &limit,
		})
		require.NoError(t, err)
		require.NotNil(t, card.Limit)
		assert.True(t, card.Limit.Equal(limit))
	})

	t.Run("Debit card with a limit is rejected", func(t *testing.T) {
		limit := decimal.NewFromInt(5000)
		_, err := svc.CreateCard(ctx, CreateCardInput{
			UserID:    userID,
			AccountID: acc.ID,
			CardType:  domain.CardTypeDebit,
			Limit:     &limit,
		})
		assert.Error(t, err)
	})

	t.Run("Card against another user's account is rejected", func(t *testing.T) {
		_, err := svc.CreateCard(ctx, CreateCardInput{
			UserID:    uuid.New(),
			AccountID: acc.ID,
			CardType:  domain.CardTypeDebit,
		})
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	})
}

func TestListCards(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	userID := uuid.New()

	acc, err := svc.CreateAccount(ctx, CreateAccountInput{UserID: userID, AccountType: domain.AccountTypeChecking})
	require.NoError(t, err)
	_, err = svc.CreateCard(ctx, CreateCardInput{UserID: userID, AccountID: acc.ID, CardType: domain.CardTypeDebit})
	require.NoError(t, err)

	cards, err := svc.ListCards(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, cards, 1)

	cards, err = svc.ListCards(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, cards)
}
