// Package store owns all session state: the four entity collections and
// their mutation operations. Nothing is persisted; the collections live for
// the lifetime of the process.
//
// Updates are whole-record replacement keyed by identifier. There is no
// cross-entity cascade: deleting a member leaves their transactions with a
// dangling reference, which the rendering layer tolerates.
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"familywallet/internal/core"
)

var (
	ErrNotFound = errors.New("entity not found")
	// ErrAdminProtected guards the Admin-role member record from deletion.
	// The protection keys on the role value, not on a specific identity.
	ErrAdminProtected = errors.New("a member with the Admin role cannot be deleted")
)

// Store holds the in-memory collections behind a single mutex. Insertion
// order is preserved; aggregation tie-breaks depend on it.
type Store struct {
	mu           sync.RWMutex
	transactions []core.Transaction
	bills        []core.Bill
	investments  []core.Investment
	members      []core.FamilyMember

	now func() time.Time
}

func New() *Store {
	return &Store{now: time.Now}
}

// NewWithClock injects the time source, for tests and seeding.
func NewWithClock(now func() time.Time) *Store {
	return &Store{now: now}
}

func newID() string {
	return uuid.NewString()
}

/* ---- Transactions ---- */

// PutTransaction adds the transaction when its ID is empty, assigning a
// fresh identifier, and otherwise replaces the stored record wholesale.
func (s *Store) PutTransaction(t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		t.ID = newID()
		s.transactions = append(s.transactions, t)
		return t, nil
	}
	for i := range s.transactions {
		if s.transactions[i].ID == t.ID {
			s.transactions[i] = t
			return t, nil
		}
	}
	return core.Transaction{}, ErrNotFound
}

// DeleteTransaction removes by identifier; deleting an absent ID is a no-op.
func (s *Store) DeleteTransaction(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = deleteByID(s.transactions, id, func(t core.Transaction) string { return t.ID })
}

// Transactions returns a copy of the collection in insertion order.
func (s *Store) Transactions() []core.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Transaction(nil), s.transactions...)
}

/* ---- Bills ---- */

// PutBill adds or replaces a bill. A new bill with a zero last-paid
// timestamp starts its recurrence clock at creation time.
func (s *Store) PutBill(b core.Bill) (core.Bill, error) {
	if err := b.Validate(); err != nil {
		return core.Bill{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID == "" {
		b.ID = newID()
		if b.LastPaid.IsZero() {
			b.LastPaid = s.now()
		}
		s.bills = append(s.bills, b)
		return b, nil
	}
	for i := range s.bills {
		if s.bills[i].ID == b.ID {
			if b.LastPaid.IsZero() {
				b.LastPaid = s.bills[i].LastPaid
			}
			s.bills[i] = b
			return b, nil
		}
	}
	return core.Bill{}, ErrNotFound
}

// MarkBillPaid resets the bill's recurrence clock to now.
func (s *Store) MarkBillPaid(id string) (core.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bills {
		if s.bills[i].ID == id {
			s.bills[i].LastPaid = s.now()
			return s.bills[i], nil
		}
	}
	return core.Bill{}, ErrNotFound
}

func (s *Store) DeleteBill(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bills = deleteByID(s.bills, id, func(b core.Bill) string { return b.ID })
}

func (s *Store) Bills() []core.Bill {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Bill(nil), s.bills...)
}

/* ---- Investments ---- */

func (s *Store) PutInvestment(inv core.Investment) (core.Investment, error) {
	if err := inv.Validate(); err != nil {
		return core.Investment{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if inv.ID == "" {
		inv.ID = newID()
		s.investments = append(s.investments, inv)
		return inv, nil
	}
	for i := range s.investments {
		if s.investments[i].ID == inv.ID {
			s.investments[i] = inv
			return inv, nil
		}
	}
	return core.Investment{}, ErrNotFound
}

// ReplaceInvestments swaps the whole collection, used by the market
// simulation which perturbs every holding at once.
func (s *Store) ReplaceInvestments(invs []core.Investment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.investments = append([]core.Investment(nil), invs...)
}

func (s *Store) DeleteInvestment(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.investments = deleteByID(s.investments, id, func(i core.Investment) string { return i.ID })
}

func (s *Store) Investments() []core.Investment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Investment(nil), s.investments...)
}

/* ---- Family members ---- */

// PutMember adds or replaces a member record. An existing Admin record's
// role is locked: an update may change name and avatar but keeps the role.
func (s *Store) PutMember(m core.FamilyMember) (core.FamilyMember, error) {
	if err := m.Validate(); err != nil {
		return core.FamilyMember{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == "" {
		m.ID = newID()
		s.members = append(s.members, m)
		return m, nil
	}
	for i := range s.members {
		if s.members[i].ID == m.ID {
			if s.members[i].Role == core.RoleAdmin {
				m.Role = core.RoleAdmin
			}
			s.members[i] = m
			return m, nil
		}
	}
	return core.FamilyMember{}, ErrNotFound
}

// DeleteMember removes a member unless their role is Admin. Transactions
// referencing the deleted member are left untouched. Absent IDs are a no-op.
func (s *Store) DeleteMember(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.members {
		if s.members[i].ID == id {
			if s.members[i].Role == core.RoleAdmin {
				return ErrAdminProtected
			}
			s.members = append(s.members[:i], s.members[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *Store) Members() []core.FamilyMember {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.FamilyMember(nil), s.members...)
}

func deleteByID[T any](xs []T, id string, idOf func(T) string) []T {
	for i := range xs {
		if idOf(xs[i]) == id {
			return append(xs[:i], xs[i+1:]...)
		}
	}
	return xs
}
