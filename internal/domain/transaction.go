package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the kind of funds movement
type TransactionType string

const (
	TransactionTypeDeposit     TransactionType = "deposit"
	TransactionTypeWithdrawal  TransactionType = "withdrawal"
	TransactionTypeTransfer    TransactionType = "transfer"
	TransactionTypeBillPayment TransactionType = "bill_payment"
)

// TransactionStatus represents the settlement state of a transaction
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// Transaction represents a single funds movement in the transaction log.
// Records are append-only: once written, the only field that may ever
// change is Status, and only from pending to a terminal state.
// Account references are optional because one leg of a movement can be
// external (a deposit source, a biller, an IBAN at another bank); the
// IBAN fields are recorded even when the account reference is absent.
type Transaction struct {
	ID            uuid.UUID
	FromAccountID *uuid.UUID
	ToAccountID   *uuid.UUID
	FromIBAN      string
	ToIBAN        string
	Amount        decimal.Decimal
	Type          TransactionType
	Description   string
	Category      string
	Status        TransactionStatus
	CreatedAt     time.Time
}

// Validate ensures the transaction adheres to domain rules
// Returns an error if validation fails
func (t *Transaction) Validate() error {
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("transaction amount must be positive")
	}

	switch t.Type {
	case TransactionTypeDeposit, TransactionTypeWithdrawal,
		TransactionTypeTransfer, TransactionTypeBillPayment:
	default:
		return errors.New("unknown transaction type")
	}

	switch t.Status {
	case TransactionStatusPending, TransactionStatusCompleted, TransactionStatusFailed:
	default:
		return errors.New("unknown transaction status")
	}

	// A referenced account always carries its IBAN so the log stays
	// meaningful even if the account is later deactivated
	if t.ToAccountID != nil && t.ToIBAN == "" {
		return errors.New("transaction with destination account must record its IBAN")
	}

	if t.FromAccountID != nil && t.FromIBAN == "" {
		return errors.New("transaction with source account must record its IBAN")
	}

	return nil
}

// IsTerminal reports whether the status permits no further transition
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionStatusCompleted || s == TransactionStatusFailed
}

// Transition moves the transaction from pending to a terminal status.
// This is the only legal mutation of a written transaction; completed
// and failed transactions are immutable.
func (t *Transaction) Transition(next TransactionStatus) error {
	if t.Status != TransactionStatusPending {
		return ErrTransactionNotPending
	}
	if !next.IsTerminal() {
		return errors.New("transaction can only transition to completed or failed")
	}
	t.Status = next
	return nil
}
