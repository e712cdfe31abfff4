package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omerfarukdemir/atlasbank-backend/internal/domain"
)

// ledgerStore implements domain.LedgerStore on top of a single SQL
// transaction per unit. Row locks are taken with SELECT ... FOR UPDATE
// in ascending account-ID order so two concurrent units can never
// deadlock on each other's accounts.
type ledgerStore struct {
	db *DB
}

// NewLedgerStore creates a new ledger store
func NewLedgerStore(db *DB) domain.LedgerStore {
	return &ledgerStore{db: db}
}

// Apply commits all balance deltas plus the log record atomically
func (s *ledgerStore) Apply(ctx context.Context, deltas []domain.BalanceDelta, record *domain.Transaction) (map[uuid.UUID]decimal.Decimal, error) {
	if len(deltas) == 0 || record == nil {
		return nil, errors.New("ledger apply requires deltas and a record")
	}

	ordered := make([]domain.BalanceDelta, len(deltas))
	copy(ordered, deltas)
	sort.Slice(ordered, func(i, j int) bool {
		return bytes.Compare(ordered[i].AccountID[:], ordered[j].AccountID[:]) < 0
	})

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	balances := make(map[uuid.UUID]decimal.Decimal, len(ordered))
	for _, d := range ordered {
		current, err := lockBalance(ctx, tx, d.AccountID)
		if err != nil {
			return nil, err
		}

		next := current.Add(d.Amount)
		if next.IsNegative() {
			return nil, domain.ErrInsufficientFunds
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE accounts SET balance = $1 WHERE id = $2`,
			next.String(), d.AccountID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to update balance: %w", err)
		}

		balances[d.AccountID] = next
	}

	if err := insertTransaction(ctx, tx, record); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return balances, nil
}

// Settle moves a pending record to a terminal status, committing the
// optional refund in the same unit
func (s *ledgerStore) Settle(ctx context.Context, transactionID uuid.UUID, status domain.TransactionStatus, refund *domain.BalanceDelta, refundRecord *domain.Transaction) error {
	if !status.IsTerminal() {
		return domain.ErrTransactionNotPending
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var current domain.TransactionStatus
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM transactions WHERE id = $1 FOR UPDATE`,
		transactionID,
	).Scan(&current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrTransactionNotFound
		}
		return fmt.Errorf("failed to lock transaction: %w", err)
	}
	if current != domain.TransactionStatusPending {
		return domain.ErrTransactionNotPending
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE transactions SET status = $1 WHERE id = $2`,
		string(status), transactionID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction status: %w", err)
	}

	if refund != nil {
		balance, err := lockBalance(ctx, tx, refund.AccountID)
		if err != nil {
			return err
		}

		next := balance.Add(refund.Amount)
		if next.IsNegative() {
			return domain.ErrInsufficientFunds
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE accounts SET balance = $1 WHERE id = $2`,
			next.String(), refund.AccountID,
		)
		if err != nil {
			return fmt.Errorf("failed to apply refund: %w", err)
		}
	}

	if refundRecord != nil {
		if err := insertTransaction(ctx, tx, refundRecord); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// lockBalance takes the row lock on an account and returns its balance
func lockBalance(ctx context.Context, tx *sql.Tx, accountID uuid.UUID) (decimal.Decimal, error) {
	var balanceStr string
	err := tx.QueryRowContext(ctx,
		`SELECT balance FROM accounts WHERE id = $1 FOR UPDATE`,
		accountID,
	).Scan(&balanceStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Decimal{}, domain.ErrAccountNotFound
		}
		return decimal.Decimal{}, fmt.Errorf("failed to lock account: %w", err)
	}

	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to parse balance: %w", err)
	}

	return balance, nil
}

func insertTransaction(ctx context.Context, tx *sql.Tx, record *domain.Transaction) error {
	var fromID, toID uuid.NullUUID
	if record.FromAccountID != nil {
		fromID = uuid.NullUUID{UUID: *record.FromAccountID, Valid: true}
	}
	if record.ToAccountID != nil {
		toID = uuid.NullUUID{UUID: *record.ToAccountID, Valid: true}
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO transactions (id, from_account_id, to_account_id, from_iban, to_iban, amount, type, description, category, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		record.ID,
		fromID,
		toID,
		record.FromIBAN,
		record.ToIBAN,
		record.Amount.String(),
		string(record.Type),
		record.Description,
		record.Category,
		string(record.Status),
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}
