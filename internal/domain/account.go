package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType represents the product type of a bank account
type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeInvestment AccountType = "investment"
)

// Account represents a customer bank account in the domain layer.
// Balance is a fixed-point decimal and is mutated only through the
// ledger write path (LedgerStore.Apply), never directly.
type Account struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	AccountNumber string
	IBAN          string
	AccountType   AccountType
	Currency      string
	Balance       decimal.Decimal
	CreatedAt     time.Time
	IsActive      bool
}

// Validate ensures the account adheres to domain rules
// Returns an error if validation fails
func (a *Account) Validate() error {
	if a.UserID == uuid.Nil {
		return errors.New("account must belong to a user")
	}

	if a.AccountNumber == "" {
		return errors.New("account number cannot be empty")
	}

	if a.IBAN == "" {
		return errors.New("account IBAN cannot be empty")
	}

	switch a.AccountType {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeInvestment:
	default:
		return errors.New("account type must be checking, savings or investment")
	}

	if a.Currency == "" {
		return errors.New("account currency cannot be empty")
	}

	// Balances are never negative, not even at creation time
	if a.Balance.IsNegative() {
		return errors.New("account balance cannot be negative")
	}

	return nil
}

// IsOwnedBy reports whether the account belongs to the given user
func (a *Account) IsOwnedBy(userID uuid.UUID) bool {
	return a.UserID == userID
}
