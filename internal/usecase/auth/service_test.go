package auth

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
	"github.com/omerfarukdemir/atlasbank-backend/internal/usecase/catalog"
	"github.com/omerfarukdemir/atlasbank-backend/internal/usecase/ledger"
)

func newService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	accountRepo := memory.NewAccountRepository(store)
	catalogSvc := catalog.NewService(accountRepo, memory.NewCardRepository(store))
	ledgerSvc := ledger.NewService(accountRepo, memory.NewTransactionRepository(store), memory.NewLedgerStore(store))

	svc := NewService(memory.NewUserRepository(store), catalogSvc, ledgerSvc, Config{
		TokenSecret:  "test-secret",
		TokenTTL:     time.Hour,
		WelcomeBonus: decimal.NewFromInt(1000),
	})
	return svc, store
}

func registerInput() RegisterInput {
	return RegisterInput{
		Email:     "ayse@example.com",
		Password:  "correct-horse",
		FirstName: "Ayse",
		LastName:  "Yilmaz",
		Phone:     "+905551112233",
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates user, default account and welcome bonus", func(t *testing.T) {
		svc, store := newService(t)

		res, err := svc.Register(ctx, registerInput())
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, "ayse@example.com", res.User.Email)

		accounts, err := memory.NewAccountRepository(store).ListByUser(ctx, res.User.ID)
		require.NoError(t, err)
		require.Len(t, accounts, 1)
		acc := accounts[0]
		assert.Equal(t, domain.AccountTypeChecking, acc.AccountType)
		assert.Equal(t, domain.CurrencyTRY, acc.Currency)
		assert.True(t, acc.Balance.Equal(decimal.NewFromInt(1000)))
		assert.Contains(t, acc.IBAN, "TR")

		// The bonus is a real deposit, not a conjured balance.
		history, err := memory.NewTransactionRepository(store).ListForAccount(ctx, acc.ID, 10)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, domain.TransactionTypeDeposit, history[0].Type)
		assert.True(t, history[0].Amount.Equal(decimal.NewFromInt(1000)))
	})

	t.Run("Rejects duplicate email", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.Register(ctx, registerInput())
		require.NoError(t, err)

		_, err = svc.Register(ctx, registerInput())
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})

	t.Run("Rejects malformed email", func(t *testing.T) {
		svc, _ := newService(t)
		input := registerInput()
		input.Email = "not-an-email"
		_, err := svc.Register(ctx, input)
		assert.Error(t, err)
	})

	t.Run("Rejects short password", func(t *testing.T) {
		svc, _ := newService(t)
		input := registerInput()
		input.Password = "short"
		_, err := svc.Register(ctx, input)
		assert.Error(t, err)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid credentials issue a verifiable token", func(t *testing.T) {
		svc, _ := newService(t)
		reg, err := svc.Register(ctx, registerInput())
		require.NoError(t, err)

		res, err := svc.Login(ctx, LoginInput{Email: "ayse@example.com", Password: "correct-horse"})
		require.NoError(t, err)

		userID, err := svc.VerifyToken(ctx, res.Token)
		require.NoError(t, err)
		assert.Equal(t, reg.User.ID, userID)
	})

	t.Run("Wrong password fails", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.Register(ctx, registerInput())
		require.NoError(t, err)

		_, err = svc.Login(ctx, LoginInput{Email: "ayse@example.com", Password: "wrong-horse"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("Unknown email fails the same way as wrong password", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "whatever"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestVerifyToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Garbage token fails", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.VerifyToken(ctx, "not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Token signed with a different secret fails", func(t *testing.T) {
		svc, _ := newService(t)
		reg, err := svc.Register(ctx, registerInput())
		require.NoError(t, err)

		forged, err := NewTokenIssuer("other-secret", time.Hour).Issue(reg.User.ID)
		require.NoError(t, err)
		_, err = svc.VerifyToken(ctx, forged)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired token fails", func(t *testing.T) {
		issuer := NewTokenIssuer("test-secret", -time.Minute)
		token, err := issuer.Issue(uuid.New())
		require.NoError(t, err)
		_, err = issuer.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Token for a deleted user fails", func(t *testing.T) {
		svc, _ := newService(t)
		token, err := svc.Tokens.Issue(uuid.New())
		require.NoError(t, err)
		_, err = svc.VerifyToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
