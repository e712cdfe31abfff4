// Package memory provides an in-memory implementation of every domain
// repository. It backs the unit and integration tests and is good
// enough for local runs without Postgres; production deployments use
// the postgres adapter.
//
// Locking hierarchy, outermost first: the store maps (mu), then
// individual account slots in ascending account-ID order, then the
// transaction log (logMu). Every code path acquires locks in that
// order, which is what makes opposite-direction transfers deadlock-free.
package memory

import (
	"bytes"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/omerfarukdemir/atlasbank-backend/internal/domain"
)

// accountSlot pairs an account with the mutex that serializes every
// read-modify-write of its balance.
type accountSlot struct {
	mu  sync.Mutex
	acc domain.Account
}

// Store holds all in-memory state shared by the repositories. The zero
// value is not usable; use NewStore.
type Store struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]domain.User
	emails   map[string]uuid.UUID
	accounts map[uuid.UUID]*accountSlot
	ibans    map[string]uuid.UUID
	cards    map[uuid.UUID]domain.Card

	logMu   sync.RWMutex
	txs     map[uuid.UUID]domain.Transaction
	txOrder []uuid.UUID // append order; listings walk it backwards
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:    make(map[uuid.UUID]domain.User),
		emails:   make(map[string]uuid.UUID),
		accounts: make(map[uuid.UUID]*accountSlot),
		ibans:    make(map[string]uuid.UUID),
		cards:    make(map[uuid.UUID]domain.Card),
		txs:      make(map[uuid.UUID]domain.Transaction),
	}
}

// slotByID resolves an account slot without copying the account.
func (s *Store) slotByID(id uuid.UUID) (*accountSlot, bool) {
	s.mu.RLock()
	slot, ok := s.accounts[id]
	s.mu.RUnlock()
	return slot, ok
}

// snapshotAccount returns a value copy of the slot's account.
func (slot *accountSlot) snapshot() domain.Account {
	slot.mu.Lock()
	cp := slot.acc
	slot.mu.Unlock()
	return cp
}

// appendRecord inserts a transaction into the log.
func (s *Store) appendRecord(record *domain.Transaction) {
	s.logMu.Lock()
	s.txs[record.ID] = *record
	s.txOrder = append(s.txOrder, record.ID)
	s.logMu.Unlock()
}

// uuidLess orders account IDs for lock acquisition.
func uuidLess(a, b uuid.UUID) bool {
	return bytes.Compare(a[:], b[:]) < 0
}

func sortAccountsByCreation(out []*domain.Account) {
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
}
