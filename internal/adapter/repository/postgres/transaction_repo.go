package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/omerfarukdemir/atlasbank-backend/internal/domain"
)

// transactionRepository implements domain.TransactionRepository.
// It is read-only: writes to the log go through the ledger store.
type transactionRepository struct {
	db *DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *DB) domain.TransactionRepository {
	return &transactionRepository{db: db}
}

const transactionColumns = `id, from_account_id, to_account_id, from_iban, to_iban, amount, type, description, category, status, created_at`

func scanTransaction(row interface{ Scan(...interface{}) error }) (*domain.Transaction, error) {
	var tx domain.Transaction
	var fromID, toID uuid.NullUUID
	var amountStr string

	err := row.Scan(
		&tx.ID,
		&fromID,
		&toID,
		&tx.FromIBAN,
		&tx.ToIBAN,
		&amountStr,
		&tx.Type,
		&tx.Description,
		&tx.Category,
		&tx.Status,
		&tx.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if fromID.Valid {
		id := fromID.UUID
		tx.FromAccountID = &id
	}
	if toID.Valid {
		id := toID.UUID
		tx.ToAccountID = &id
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount: %w", err)
	}
	tx.Amount = amount

	return &tx, nil
}

// GetByID retrieves a transaction by its ID
func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	tx, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction by ID: %w", err)
	}

	return tx, nil
}

// ListForAccount retrieves transactions touching an account, newest first
func (r *transactionRepository) ListForAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE from_account_id = $1 OR to_account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	return r.list(ctx, query, accountID, limit)
}

// ListForAccounts retrieves transactions touching any of the accounts, newest first
func (r *transactionRepository) ListForAccounts(ctx context.Context, accountIDs []uuid.UUID, limit int) ([]*domain.Transaction, error) {
	if len(accountIDs) == 0 {
		return []*domain.Transaction{}, nil
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE from_account_id = ANY($1) OR to_account_id = ANY($1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	return r.list(ctx, query, pq.Array(accountIDs), limit)
}

func (r *transactionRepository) list(ctx context.Context, query string, scope interface{}, limit int) ([]*domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, scope, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	txs := make([]*domain.Transaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return txs, nil
}
