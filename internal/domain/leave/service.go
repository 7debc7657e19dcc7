package leave

import (
	"context"
	"time"
)

type LeaveService interface {
	// Ledger
	Consume(ctx context.Context, req ConsumeRequest) (Record, error)
	AdjustAllocation(ctx context.Context, req AdjustBalanceRequest) (BalanceResponse, error)
	Remaining(ctx context.Context, employeeID string, leaveType Type) (int, error)
	ListBalances(ctx context.Context, employeeID string) ([]BalanceResponse, error)
	// Journal
	ApplyLeave(ctx context.Context, req ApplyLeaveRequest) (RecordResponse, error)
	IsOnLeave(ctx context.Context, employeeID string, date time.Time) (bool, error)
	ListLeaveRecords(ctx context.Context, employeeID string, filter RecordFilter) ([]RecordResponse, error)
}
