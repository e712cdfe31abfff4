package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validAccount() Account {
	return Account{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		AccountNumber: "4512783960",
		IBAN:          "TR32 0001 0001 45127839601",
		AccountType:   AccountTypeChecking,
		Currency:      CurrencyTRY,
		Balance:       decimal.NewFromInt(1000),
		IsActive:      true,
	}
}

func TestAccount_Validate(t *testing.T) {
	t.Run("Valid account should pass", func(t *testing.T) {
		acc := validAccount()
		assert.NoError(t, acc.Validate())
	})

	t.Run("Missing user should fail", func(t *testing.T) {
		acc := validAccount()
		acc.UserID = uuid.Nil
		assert.EqualError(t, acc.Validate(), "account must belong to a user")
	})

	t.Run("Missing account number should fail", func(t *testing.T) {
		acc := validAccount()
		acc.AccountNumber = ""
		assert.Error(t, acc.Validate())
	})

	t.Run("Missing IBAN should fail", func(t *testing.T) {
		acc := validAccount()
		acc.IBAN = ""
		assert.Error(t, acc.Validate())
	})

	t.Run("Unknown account type should fail", func(t *testing.T) {
		acc := validAccount()
		acc.AccountType = AccountType("business")
		assert.Error(t, acc.Validate())
	})

	t.Run("Negative balance should fail", func(t *testing.T) {
		acc := validAccount()
		acc.Balance = decimal.NewFromFloat(-0.01)
		assert.EqualError(t, acc.Validate(), "account balance cannot be negative")
	})

	t.Run("Zero balance should pass", func(t *testing.T) {
		acc := validAccount()
		acc.Balance = decimal.Zero
		assert.NoError(t, acc.Validate())
	})
}

func TestAccount_IsOwnedBy(t *testing.T) {
	acc := validAccount()
	assert.True(t, acc.IsOwnedBy(acc.UserID))
	assert.False(t, acc.IsOwnedBy(uuid.New()))
}
