package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omerfarukdemir/atlasbank-backend/internal/domain"
)

// ledgerStore implements domain.LedgerStore
type ledgerStore struct {
	s *Store
}

// NewLedgerStore creates the in-memory ledger write path
func NewLedgerStore(s *Store) domain.LedgerStore {
	return &ledgerStore{s: s}
}

// Apply commits the balance deltas and the transaction record as one
// atomic unit. All touched accounts are locked in ascending ID order
// and held until the record is in the log, so no observer can see one
// half of the operation without the other.
func (l *ledgerStore) Apply(ctx context.Context, deltas []domain.BalanceDelta, record *domain.Transaction) (map[uuid.UUID]decimal.Decimal, error) {
	ordered := make([]domain.BalanceDelta, len(deltas))
	copy(ordered, deltas)
	sort.Slice(ordered, func(i, j int) bool {
		return uuidLess(ordered[i].AccountID, ordered[j].AccountID)
	})

	slots := make([]*accountSlot, len(ordered))
	for i, d := range ordered {
		slot, ok := l.s.slotByID(d.AccountID)
		if !ok {
			return nil, domain.ErrAccountNotFound
		}
		slots[i] = slot
	}

	for _, slot := range slots {
		slot.mu.Lock()
	}
	defer func() {
		for i := len(slots) - 1; i >= 0; i-- {
			slots[i].mu.Unlock()
		}
	}()

	// Reject before touching anything; a refused unit leaves every
	// balance exactly as it was.
	for i, d := range ordered {
		if slots[i].acc.Balance.Add(d.Amount).IsNegative() {
			return nil, domain.ErrInsufficientFunds
		}
	}

	balances := make(map[uuid.UUID]decimal.Decimal, len(ordered))
	for i, d := range ordered {
		slots[i].acc.Balance = slots[i].acc.Balance.Add(d.Amount)
		balances[d.AccountID] = slots[i].acc.Balance
	}

	l.s.appendRecord(record)
	return balances, nil
}

// Settle transitions a pending transaction to a terminal status,
// applying the optional refund in the same atomic unit.
func (l *ledgerStore) Settle(ctx context.Context, transactionID uuid.UUID, status domain.TransactionStatus, refund *domain.BalanceDelta, refundRecord *domain.Transaction) error {
	l.s.logMu.RLock()
	tx, ok := l.s.txs[transactionID]
	l.s.logMu.RUnlock()
	if !ok {
		return domain.ErrTransactionNotFound
	}
	if tx.Status != domain.TransactionStatusPending {
		return domain.ErrTransactionNotPending
	}

	var slot *accountSlot
	if refund != nil {
		slot, ok = l.s.slotByID(refund.AccountID)
		if !ok {
			return domain.ErrAccountNotFound
		}
		slot.mu.Lock()
		defer slot.mu.Unlock()
	}

	l.s.logMu.Lock()
	defer l.s.logMu.Unlock()

	// Re-check under the write lock: a concurrent Settle may have won.
	tx = l.s.txs[transactionID]
	if err := tx.Transition(status); err != nil {
		return err
	}
	l.s.txs[transactionID] = tx

	if refund != nil {
		slot.acc.Balance = slot.acc.Balance.Add(refund.Amount)
		if refundRecord != nil {
			l.s.txs[refundRecord.ID] = *refundRecord
			l.s.txOrder = append(l.s.txOrder, refundRecord.ID)
		}
	}
	return nil
}
