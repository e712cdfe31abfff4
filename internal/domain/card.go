package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CardType represents the kind of payment card
type CardType string

const (
	CardTypeDebit  CardType = "debit"
	CardTypeCredit CardType = "credit"
)

// CardStatus represents the lifecycle state of a card
type CardStatus string

const (
	CardStatusActive  CardStatus = "active"
	CardStatusBlocked CardStatus = "blocked"
	CardStatusExpired CardStatus = "expired"
)

// Card represents a payment card issued against an account.
// Cards are catalog objects: they never carry a balance of their own
// and never appear in the transaction log.
type Card struct {
	ID         uuid.UUID
	AccountID  uuid.UUID
	CardNumber string
	CardType   CardType
	Limit      *decimal.Decimal // nil for debit cards
	Status     CardStatus
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

// Validate ensures the card adheres to domain rules
// Returns an error if validation fails
func (c *Card) Validate() error {
	if c.AccountID == uuid.Nil {
		return errors.New("card must reference an account")
	}

	if c.CardNumber == "" {
		return errors.New("card number cannot be empty")
	}

	if c.CardType != CardTypeDebit && c.CardType != CardTypeCredit {
		return errors.New("card type must be debit or credit")
	}

	if c.Limit != nil && c.Limit.LessThanOrEqual(decimal.Zero) {
		return errors.New("card limit must be positive when set")
	}

	return nil
}
