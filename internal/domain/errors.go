package domain

import "errors"

// Domain errors surfaced by usecases. Precondition failures are always
// detected before any state change, so a caller that receives one of
// these can assume no balance or log mutation happened.
var (
	// ErrInvalidAmount means the amount was non-positive or carried
	// sub-cent precision.
	ErrInvalidAmount = errors.New("amount must be a positive value with at most two decimal places")

	// ErrAccountNotFound covers both unknown accounts and accounts not
	// owned by the caller; ownership failures are deliberately
	// indistinguishable from missing accounts.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInsufficientFunds means the operation would drive a balance
	// below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrSameAccount means a transfer named its own source as the
	// destination.
	ErrSameAccount = errors.New("source and destination accounts are the same")

	// ErrCurrencyMismatch means a transfer crossed currencies; FX
	// conversion is not offered.
	ErrCurrencyMismatch = errors.New("accounts have different currencies")

	// ErrTransactionNotFound means the referenced transaction does not
	// exist in the log.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrTransactionNotPending means a settlement was attempted on a
	// transaction already in a terminal state.
	ErrTransactionNotPending = errors.New("transaction is not pending")

	// ErrUserNotFound means no user matches the given identifier.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken means a registration reused an existing email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials means login failed; it never reveals whether
	// the email exists.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
