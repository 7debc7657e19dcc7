// Package memory keeps every repository in process memory. It backs the
// "memory" storage driver and the service tests.
package memory

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/workentry"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type txKey struct{}

// Store holds all tables behind one mutex. A transaction holds the mutex for
// its whole duration, so units of work are fully serialized.
type Store struct {
	mu sync.Mutex

	employees map[string]employee.Employee
	sessions  map[string]attendance.Session
	balances  map[string]leave.Balance
	records   map[string]leave.Record
	entries   map[string]workentry.WorkEntry
}

var _ database.Transactor = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		employees: make(map[string]employee.Employee),
		sessions:  make(map[string]attendance.Session),
		balances:  make(map[string]leave.Balance),
		records:   make(map[string]leave.Record),
		entries:   make(map[string]workentry.WorkEntry),
	}
}

type snapshot struct {
	employees map[string]employee.Employee
	sessions  map[string]attendance.Session
	balances  map[string]leave.Balance
	records   map[string]leave.Record
	entries   map[string]workentry.WorkEntry
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		employees: maps.Clone(s.employees),
		sessions:  maps.Clone(s.sessions),
		balances:  maps.Clone(s.balances),
		records:   maps.Clone(s.records),
		entries:   maps.Clone(s.entries),
	}
}

func (s *Store) restore(snap snapshot) {
	s.employees = snap.employees
	s.sessions = snap.sessions
	s.balances = snap.balances
	s.records = snap.records
	s.entries = snap.entries
}

// WithinTx implements database.Transactor. Every write made by fn is undone
// when fn returns an error or panics.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			s.restore(snap)
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, ok := ctx.Value(txKey{}).(*Store)
	return ok && owner == s
}

// lock takes the store mutex unless ctx already runs inside a transaction
// of this store.
func (s *Store) lock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return id.String(), nil
}

func paginate[T any](items []T, page, limit int) []T {
	if limit <= 0 {
		limit = 20
	}
	page = max(page, 1)
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := min(start+limit, len(items))
	return items[start:end]
}

var errDuplicateBalance = errors.New("leave balance already exists for this employee and leave type")
