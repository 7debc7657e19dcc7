package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/leave"
)

type balanceRepository struct {
	store *Store
}

func NewLeaveBalanceRepository(store *Store) leave.BalanceRepository {
	return &balanceRepository{store: store}
}

// Create implements leave.BalanceRepository.
func (r *balanceRepository) Create(ctx context.Context, balance leave.Balance) (leave.Balance, error) {
	defer r.store.lock(ctx)()

	if _, ok := r.find(balance.EmployeeID, balance.LeaveType); ok {
		return leave.Balance{}, errDuplicateBalance
	}

	id, err := newID()
	if err != nil {
		return leave.Balance{}, err
	}
	now := time.Now().UTC()
	balance.ID = id
	balance.CreatedAt = now
	balance.UpdatedAt = now
	r.store.balances[id] = balance
	return balance, nil
}

// Get implements leave.BalanceRepository.
func (r *balanceRepository) Get(ctx context.Context, employeeID string, leaveType leave.Type) (leave.Balance, error) {
	defer r.store.lock(ctx)()

	b, ok := r.find(employeeID, leaveType)
	if !ok {
		return leave.Balance{}, leave.ErrNoBalanceRecord
	}
	return b, nil
}

// GetForUpdate implements leave.BalanceRepository.
func (r *balanceRepository) GetForUpdate(ctx context.Context, employeeID string, leaveType leave.Type) (leave.Balance, error) {
	return r.Get(ctx, employeeID, leaveType)
}

func (r *balanceRepository) find(employeeID string, leaveType leave.Type) (leave.Balance, bool) {
	for _, b := range r.store.balances {
		if b.EmployeeID == employeeID && b.LeaveType == leaveType {
			return b, true
		}
	}
	return leave.Balance{}, false
}

// ListByEmployee implements leave.BalanceRepository.
func (r *balanceRepository) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Balance, error) {
	defer r.store.lock(ctx)()

	balances := make([]leave.Balance, 0)
	for _, b := range r.store.balances {
		if b.EmployeeID == employeeID {
			balances = append(balances, b)
		}
	}
	sort.Slice(balances, func(i, j int) bool { return balances[i].LeaveType < balances[j].LeaveType })
	return balances, nil
}

// IncrementUsed implements leave.BalanceRepository.
func (r *balanceRepository) IncrementUsed(ctx context.Context, id string, days int) error {
	defer r.store.lock(ctx)()

	b, ok := r.store.balances[id]
	if !ok || b.Used+days > b.TotalAllocated {
		return leave.ErrInsufficientLeaveBalance
	}
	b.Used += days
	b.UpdatedAt = time.Now().UTC()
	r.store.balances[id] = b
	return nil
}

// SetAllocation implements leave.BalanceRepository.
func (r *balanceRepository) SetAllocation(ctx context.Context, id string, totalAllocated int) error {
	defer r.store.lock(ctx)()

	b, ok := r.store.balances[id]
	if !ok {
		return leave.ErrNoBalanceRecord
	}
	if b.Used > totalAllocated {
		return leave.ErrAllocationBelowUsage
	}
	b.TotalAllocated = totalAllocated
	b.UpdatedAt = time.Now().UTC()
	r.store.balances[id] = b
	return nil
}

type recordRepository struct {
	store *Store
}

func NewLeaveRecordRepository(store *Store) leave.RecordRepository {
	return &recordRepository{store: store}
}

// Create implements leave.RecordRepository.
func (r *recordRepository) Create(ctx context.Context, record leave.Record) (leave.Record, error) {
	defer r.store.lock(ctx)()

	if record.StartDate.After(record.EndDate) {
		return leave.Record{}, leave.ErrInvalidRange
	}

	id, err := newID()
	if err != nil {
		return leave.Record{}, err
	}
	record.ID = id
	record.CreatedAt = time.Now().UTC()
	r.store.records[id] = record
	return record, nil
}

// GetByID implements leave.RecordRepository.
func (r *recordRepository) GetByID(ctx context.Context, id string) (leave.Record, error) {
	defer r.store.lock(ctx)()

	rec, ok := r.store.records[id]
	if !ok {
		return leave.Record{}, leave.ErrLeaveRecordNotFound
	}
	return rec, nil
}

// ExistsCovering implements leave.RecordRepository.
func (r *recordRepository) ExistsCovering(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	return r.ExistsOverlapping(ctx, employeeID, date, date)
}

// ExistsOverlapping implements leave.RecordRepository.
func (r *recordRepository) ExistsOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	defer r.store.lock(ctx)()

	for _, rec := range r.store.records {
		if rec.EmployeeID == employeeID && rec.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

// ListByEmployee implements leave.RecordRepository.
func (r *recordRepository) ListByEmployee(ctx context.Context, employeeID string, filter leave.RecordFilter) ([]leave.Record, error) {
	defer r.store.lock(ctx)()

	start, end, err := dateBounds(filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, err
	}

	records := make([]leave.Record, 0)
	for _, rec := range r.store.records {
		if rec.EmployeeID != employeeID {
			continue
		}
		if start != nil && rec.EndDate.Before(*start) {
			continue
		}
		if end != nil && rec.StartDate.After(*end) {
			continue
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].StartDate.Equal(records[j].StartDate) {
			return records[i].StartDate.After(records[j].StartDate)
		}
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}
