package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserRepository defines the interface for user persistence operations
type UserRepository interface {
	// Create creates a new user; fails with ErrEmailTaken if the email
	// is already registered
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// AccountRepository defines the interface for account persistence operations.
// It is a read/catalog surface: balances are never written through it.
type AccountRepository interface {
	// Create creates a new account
	Create(ctx context.Context, account *Account) error

	// GetByID retrieves an account by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// GetByIBAN retrieves an account by its IBAN; used to decide whether
	// a transfer destination is internal
	GetByIBAN(ctx context.Context, iban string) (*Account, error)

	// ListByUser retrieves the active accounts owned by a user
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Account, error)

	// Deactivate soft-deletes an account; the row is kept so transaction
	// history stays referentially intact
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// CardRepository defines the interface for card persistence operations
type CardRepository interface {
	// Create creates a new card
	Create(ctx context.Context, card *Card) error

	// ListByAccounts retrieves all cards issued against the given accounts
	ListByAccounts(ctx context.Context, accountIDs []uuid.UUID) ([]*Card, error)
}

// TransactionRepository defines the read interface over the transaction log
type TransactionRepository interface {
	// GetByID retrieves a transaction by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error)

	// ListForAccount retrieves transactions where the account is either
	// source or destination, newest first, up to limit
	ListForAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]*Transaction, error)

	// ListForAccounts is ListForAccount across several accounts, newest
	// first overall; used by dashboard aggregation
	ListForAccounts(ctx context.Context, accountIDs []uuid.UUID, limit int) ([]*Transaction, error)
}

// BalanceDelta is a signed balance change for one account: negative for
// a debit, positive for a credit.
type BalanceDelta struct {
	AccountID uuid.UUID
	Amount    decimal.Decimal
}

// LedgerStore is the sole write path to balances and the transaction log.
//
// Apply commits every delta plus exactly one log record as a single
// atomic unit: either all balances change and the record is written, or
// nothing is. Implementations must hold per-account exclusivity for the
// whole read-modify-write and must acquire accounts in ascending ID
// order when an operation touches more than one. A delta that would
// leave any balance negative aborts the whole unit with
// ErrInsufficientFunds; an unknown account aborts it with
// ErrAccountNotFound. On success the new balance of every touched
// account is returned.
//
// Settle performs the bounded pending -> terminal status transition for
// a previously written record. When the terminal status is failed, the
// optional refund delta and refund record are committed in the same
// atomic unit, so a reversal can never be observed without its status
// change or vice versa.
type LedgerStore interface {
	Apply(ctx context.Context, deltas []BalanceDelta, record *Transaction) (map[uuid.UUID]decimal.Decimal, error)

	Settle(ctx context.Context, transactionID uuid.UUID, status TransactionStatus, refund *BalanceDelta, refundRecord *Transaction) error
}
