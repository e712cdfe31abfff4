// Package ledger implements the funds-movement engine: deposits,
// withdrawals, transfers and bill payments. It is the only component
// that mutates balances, and every mutation goes through the atomic
// LedgerStore write path.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omerfarukdemir/atlasbank-backend/internal/domain"
)

// DefaultHistoryLimit caps transaction listings when the caller does
// not ask for a specific page size.
const DefaultHistoryLimit = 100

// Service orchestrates all balance-affecting operations
type Service struct {
	AccountRepo     domain.AccountRepository
	TransactionRepo domain.TransactionRepository
	Ledger          domain.LedgerStore
}

// NewService creates a new ledger Service instance
func NewService(
	accountRepo domain.AccountRepository,
	transactionRepo domain.TransactionRepository,
	ledgerStore domain.LedgerStore,
) *Service {
	return &Service{
		AccountRepo:     accountRepo,
		TransactionRepo: transactionRepo,
		Ledger:          ledgerStore,
	}
}

// DepositInput represents the input for a deposit
type DepositInput struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
	Amount    decimal.Decimal
}

// MovementResult is the outcome of a single-account funds movement
type MovementResult struct {
	Transaction *domain.Transaction
	NewBalance  decimal.Decimal
}

// Deposit credits an account and records a completed deposit
// transaction in the same atomic unit.
func (s *Service) Deposit(ctx context.Context, input DepositInput) (*MovementResult, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	acc, err := s.ownedActiveAccount(ctx, input.UserID, input.AccountID)
	if err != nil {
		return nil, err
	}

	record := &domain.Transaction{
		ID:          uuid.New(),
		ToAccountID: &acc.ID,
		ToIBAN:      acc.IBAN,
		Amount:      input.Amount,
		Type:        domain.TransactionTypeDeposit,
		Description: "Account deposit",
		Category:    "deposit",
		Status:      domain.TransactionStatusCompleted,
		CreatedAt:   time.Now().UTC(),
	}
	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("invalid deposit record: %w", err)
	}

	balances, err := s.Ledger.Apply(ctx,
		[]domain.BalanceDelta{{AccountID: acc.ID, Amount: input.Amount}}, record)
	if err != nil {
		return nil, err
	}

	return &MovementResult{Transaction: record, NewBalance: balances[acc.ID]}, nil
}

// WithdrawInput represents the input for a withdrawal
type WithdrawInput struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
	Amount    decimal.Decimal
}

// Withdraw debits an account and records a completed withdrawal
// transaction in the same atomic unit.
func (s *Service) Withdraw(ctx context.Context, input WithdrawInput) (*MovementResult, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	acc, err := s.ownedActiveAccount(ctx, input.UserID, input.AccountID)
	if err != nil {
		return nil, err
	}

	record := &domain.Transaction{
		ID:            uuid.New(),
		FromAccountID: &acc.ID,
		FromIBAN:      acc.IBAN,
		Amount:        input.Amount,
		Type:          domain.TransactionTypeWithdrawal,
		Description:   "Cash withdrawal",
		Category:      "withdrawal",
		Status:        domain.TransactionStatusCompleted,
		CreatedAt:     time.Now().UTC(),
	}
	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("invalid withdrawal record: %w", err)
	}

	balances, err := s.Ledger.Apply(ctx,
		[]domain.BalanceDelta{{AccountID: acc.ID, Amount: input.Amount.Neg()}}, record)
	if err != nil {
		return nil, err
	}

	return &MovementResult{Transaction: record, NewBalance: balances[acc.ID]}, nil
}

// TransferInput represents the input for a transfer
type TransferInput struct {
	UserID      uuid.UUID
	AccountID   uuid.UUID
	ToIBAN      string
	Amount      decimal.Decimal
	Description string
}

// TransferResult is the outcome of a transfer
type TransferResult struct {
	Transaction *domain.Transaction
}

// Transfer moves funds from a caller-owned account to the account
// behind the destination IBAN.
//
// When the IBAN resolves to an internal account, debit and credit
// commit atomically and the transaction is completed. When it does
// not resolve, the debit still commits and the transaction is written
// pending: the sender's funds leave at transfer time regardless of
// destination resolution, and an external settlement process later
// drives the record to its terminal state via SettleTransfer.
func (s *Service) Transfer(ctx context.Context, input TransferInput) (*TransferResult, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	src, err := s.ownedActiveAccount(ctx, input.UserID, input.AccountID)
	if err != nil {
		return nil, err
	}

	record := &domain.Transaction{
		ID:            uuid.New(),
		FromAccountID: &src.ID,
		FromIBAN:      src.IBAN,
		ToIBAN:        input.ToIBAN,
		Amount:        input.Amount,
		Type:          domain.TransactionTypeTransfer,
		Description:   input.Description,
		Category:      "transfer",
		CreatedAt:     time.Now().UTC(),
	}

	deltas := []domain.BalanceDelta{{AccountID: src.ID, Amount: input.Amount.Neg()}}

	dst, err := s.AccountRepo.GetByIBAN(ctx, input.ToIBAN)
	switch {
	case err == nil:
		if dst.ID == src.ID {
			return nil, domain.ErrSameAccount
		}
		if dst.Currency != src.Currency {
			return nil, domain.ErrCurrencyMismatch
		}
		record.ToAccountID = &dst.ID
		record.ToIBAN = dst.IBAN
		record.Status = domain.TransactionStatusCompleted
		deltas = append(deltas, domain.BalanceDelta{AccountID: dst.ID, Amount: input.Amount})
	case errors.Is(err, domain.ErrAccountNotFound):
		// Unresolved destination: the debit happens now, settlement of
		// the receiving side is someone else's problem.
		record.Status = domain.TransactionStatusPending
	default:
		return nil, err
	}

	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("invalid transfer record: %w", err)
	}

	if _, err := s.Ledger.Apply(ctx, deltas, record); err != nil {
		return nil, err
	}

	return &TransferResult{Transaction: record}, nil
}

// PayBillInput represents the input for a bill payment
type PayBillInput struct {
	UserID          uuid.UUID
	AccountID       uuid.UUID
	BillType        string
	Provider        string
	ReferenceNumber string
	Amount          decimal.Decimal
}

// PayBill debits an account for an external biller. The biller is not
// a ledger account, so the destination fields stay empty.
func (s *Service) PayBill(ctx context.Context, input PayBillInput) (*MovementResult, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	acc, err := s.ownedActiveAccount(ctx, input.UserID, input.AccountID)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("%s bill payment to %s", input.BillType, input.Provider)
	if input.ReferenceNumber != "" {
		description = fmt.Sprintf("%s (ref %s)", description, input.ReferenceNumber)
	}

	record := &domain.Transaction{
		ID:            uuid.New(),
		FromAccountID: &acc.ID,
		FromIBAN:      acc.IBAN,
		Amount:        input.Amount,
		Type:          domain.TransactionTypeBillPayment,
		Description:   description,
		Category:      input.BillType,
		Status:        domain.TransactionStatusCompleted,
		CreatedAt:     time.Now().UTC(),
	}
	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("invalid bill payment record: %w", err)
	}

	balances, err := s.Ledger.Apply(ctx,
		[]domain.BalanceDelta{{AccountID: acc.ID, Amount: input.Amount.Neg()}}, record)
	if err != nil {
		return nil, err
	}

	return &MovementResult{Transaction: record, NewBalance: balances[acc.ID]}, nil
}

// BalanceResult is the read-only balance view of an account
type BalanceResult struct {
	Balance  decimal.Decimal
	Currency string
}

// GetBalance returns the current balance of a caller-owned account.
func (s *Service) GetBalance(ctx context.Context, userID, accountID uuid.UUID) (*BalanceResult, error) {
	acc, err := s.ownedAccount(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}
	return &BalanceResult{Balance: acc.Balance, Currency: acc.Currency}, nil
}

// ListTransactions returns the account's history, newest first.
func (s *Service) ListTransactions(ctx context.Context, userID, accountID uuid.UUID, limit int) ([]*domain.Transaction, error) {
	if _, err := s.ownedAccount(ctx, userID, accountID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > DefaultHistoryLimit {
		limit = DefaultHistoryLimit
	}
	return s.TransactionRepo.ListForAccount(ctx, accountID, limit)
}

// SettleTransfer is the reconciliation entry point for transfers whose
// destination did not resolve at transfer time. A completed outcome
// transitions the record and nothing else; a failed outcome credits
// the amount back to the source as a new completed transaction in the
// same atomic unit. The original record is never rewritten beyond its
// status.
func (s *Service) SettleTransfer(ctx context.Context, transactionID uuid.UUID, outcome domain.TransactionStatus) error {
	if !outcome.IsTerminal() {
		return fmt.Errorf("settlement outcome must be completed or failed")
	}

	record, err := s.TransactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return err
	}
	if record.Type != domain.TransactionTypeTransfer {
		return domain.ErrTransactionNotPending
	}
	if record.Status != domain.TransactionStatusPending {
		return domain.ErrTransactionNotPending
	}

	if outcome == domain.TransactionStatusCompleted {
		return s.Ledger.Settle(ctx, transactionID, outcome, nil, nil)
	}

	if record.FromAccountID == nil {
		return fmt.Errorf("pending transfer %s has no source account to refund", transactionID)
	}

	refund := &domain.BalanceDelta{AccountID: *record.FromAccountID, Amount: record.Amount}
	refundRecord := &domain.Transaction{
		ID:          uuid.New(),
		ToAccountID: record.FromAccountID,
		ToIBAN:      record.FromIBAN,
		FromIBAN:    record.ToIBAN,
		Amount:      record.Amount,
		Type:        domain.TransactionTypeTransfer,
		Description: fmt.Sprintf("Reversal of failed transfer %s", record.ID),
		Category:    "reversal",
		Status:      domain.TransactionStatusCompleted,
		CreatedAt:   time.Now().UTC(),
	}

	return s.Ledger.Settle(ctx, transactionID, outcome, refund, refundRecord)
}

// ownedAccount fetches an account and enforces caller ownership. An
// account owned by someone else is reported as not found.
func (s *Service) ownedAccount(ctx context.Context, userID, accountID uuid.UUID) (*domain.Account, error) {
	acc, err := s.AccountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !acc.IsOwnedBy(userID) {
		return nil, domain.ErrAccountNotFound
	}
	return acc, nil
}

// ownedActiveAccount is ownedAccount plus the active check required by
// every mutation path; deactivated accounts remain readable.
func (s *Service) ownedActiveAccount(ctx context.Context, userID, accountID uuid.UUID) (*domain.Account, error) {
	acc, err := s.ownedAccount(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}
	if !acc.IsActive {
		return nil, domain.ErrAccountNotFound
	}
	return acc, nil
}
