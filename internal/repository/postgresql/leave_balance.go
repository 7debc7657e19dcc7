package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const balanceColumns = `id, employee_id, leave_type, total_allocated, used, created_at, updated_at`

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

func scanBalance(row pgx.Row) (leave.Balance, error) {
	var b leave.Balance
	err := row.Scan(&b.ID, &b.EmployeeID, &b.LeaveType, &b.TotalAllocated, &b.Used, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// Create implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) Create(ctx context.Context, balance leave.Balance) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return leave.Balance{}, err
	}

	query := `
		INSERT INTO leave_balances (
			id, employee_id, leave_type, total_allocated, used
		) VALUES (
			$1, $2, $3, $4, $5
		) RETURNING ` + balanceColumns

	created, err := scanBalance(q.QueryRow(ctx, query,
		id, balance.EmployeeID, balance.LeaveType, balance.TotalAllocated, balance.Used,
	))
	if err != nil {
		return leave.Balance{}, fmt.Errorf("failed to create leave balance: %w", err)
	}
	return created, nil
}

// Get implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) Get(ctx context.Context, employeeID string, leaveType leave.Type) (leave.Balance, error) {
	return r.get(ctx, employeeID, leaveType, "")
}

// GetForUpdate implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetForUpdate(ctx context.Context, employeeID string, leaveType leave.Type) (leave.Balance, error) {
	return r.get(ctx, employeeID, leaveType, "FOR UPDATE")
}

func (r *leaveBalanceRepositoryImpl) get(ctx context.Context, employeeID string, leaveType leave.Type, lock string) (leave.Balance, error) {
	if !isUUID(employeeID) {
		return leave.Balance{}, leave.ErrNoBalanceRecord
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + balanceColumns + `
		FROM leave_balances
		WHERE employee_id = $1 AND leave_type = $2
		` + lock

	b, err := scanBalance(q.QueryRow(ctx, query, employeeID, leaveType))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Balance{}, leave.ErrNoBalanceRecord
		}
		return leave.Balance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}
	return b, nil
}

// ListByEmployee implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Balance, error) {
	balances := make([]leave.Balance, 0)
	if !isUUID(employeeID) {
		return balances, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + balanceColumns + `
		FROM leave_balances
		WHERE employee_id = $1
		ORDER BY leave_type
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave balances: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave balance: %w", err)
		}
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return balances, nil
}

// IncrementUsed implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) IncrementUsed(ctx context.Context, id string, days int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET used = used + $2, updated_at = NOW()
		WHERE id = $1
		  AND used + $2 <= total_allocated
	`

	commandTag, err := q.Exec(ctx, query, id, days)
	if err != nil {
		return fmt.Errorf("failed to increment used leave: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrInsufficientLeaveBalance
	}
	return nil
}

// SetAllocation implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) SetAllocation(ctx context.Context, id string, totalAllocated int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET total_allocated = $2, updated_at = NOW()
		WHERE id = $1
		  AND used <= $2
	`

	commandTag, err := q.Exec(ctx, query, id, totalAllocated)
	if err != nil {
		return fmt.Errorf("failed to set leave allocation: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrAllocationBelowUsage
	}
	return nil
}
