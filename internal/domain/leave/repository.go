package leave

import (
	"context"
	"time"
)

// BalanceRepository - interface for leave_balances table
type BalanceRepository interface {
	Create(ctx context.Context, balance Balance) (Balance, error)
	Get(ctx context.Context, employeeID string, leaveType Type) (Balance, error)
	// GetForUpdate reads the balance and locks the row until the transaction ends.
	GetForUpdate(ctx context.Context, employeeID string, leaveType Type) (Balance, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Balance, error)
	// IncrementUsed adds days to used only while used stays within the allocation.
	IncrementUsed(ctx context.Context, id string, days int) error
	SetAllocation(ctx context.Context, id string, totalAllocated int) error
}

// RecordRepository - interface for the append-only leave_records table
type RecordRepository interface {
	Create(ctx context.Context, record Record) (Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	ExistsCovering(ctx context.Context, employeeID string, date time.Time) (bool, error)
	ExistsOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error)
	ListByEmployee(ctx context.Context, employeeID string, filter RecordFilter) ([]Record, error)
}
