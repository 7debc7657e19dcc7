package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const recordColumns = `id, employee_id, leave_type, start_date, end_date, total_days, reason, created_at`

type leaveRecordRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRecordRepository(db *database.DB) leave.RecordRepository {
	return &leaveRecordRepositoryImpl{db: db}
}

func scanRecord(row pgx.Row) (leave.Record, error) {
	var rec leave.Record
	err := row.Scan(&rec.ID, &rec.EmployeeID, &rec.LeaveType, &rec.StartDate, &rec.EndDate, &rec.TotalDays, &rec.Reason, &rec.CreatedAt)
	return rec, err
}

// Create implements leave.RecordRepository.
func (r *leaveRecordRepositoryImpl) Create(ctx context.Context, record leave.Record) (leave.Record, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return leave.Record{}, err
	}

	query := `
		INSERT INTO leave_records (
			id, employee_id, leave_type, start_date, end_date, total_days, reason
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING ` + recordColumns

	created, err := scanRecord(q.QueryRow(ctx, query,
		id,
		record.EmployeeID,
		record.LeaveType,
		record.StartDate,
		record.EndDate,
		record.TotalDays,
		record.Reason,
	))
	if err != nil {
		return leave.Record{}, fmt.Errorf("failed to create leave record: %w", err)
	}
	return created, nil
}

// GetByID implements leave.RecordRepository.
func (r *leaveRecordRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Record, error) {
	if !isUUID(id) {
		return leave.Record{}, leave.ErrLeaveRecordNotFound
	}
	q := GetQuerier(ctx, r.db)

	rec, err := scanRecord(q.QueryRow(ctx, `SELECT `+recordColumns+` FROM leave_records WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Record{}, leave.ErrLeaveRecordNotFound
		}
		return leave.Record{}, fmt.Errorf("failed to get leave record: %w", err)
	}
	return rec, nil
}

// ExistsCovering implements leave.RecordRepository.
func (r *leaveRecordRepositoryImpl) ExistsCovering(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	return r.ExistsOverlapping(ctx, employeeID, date, date)
}

// ExistsOverlapping implements leave.RecordRepository.
func (r *leaveRecordRepositoryImpl) ExistsOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	if !isUUID(employeeID) {
		return false, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_records
			WHERE employee_id = $1
			  AND start_date <= $3
			  AND end_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check leave records: %w", err)
	}
	return exists, nil
}

// ListByEmployee implements leave.RecordRepository.
func (r *leaveRecordRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, filter leave.RecordFilter) ([]leave.Record, error) {
	records := make([]leave.Record, 0)
	if !isUUID(employeeID) {
		return records, nil
	}
	q := GetQuerier(ctx, r.db)

	baseWhere := "employee_id = $1"
	args := []interface{}{employeeID}
	argIdx := 2

	// Records overlapping the requested window
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND end_date >= $%d::date", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND start_date <= $%d::date", argIdx)
		args = append(args, *filter.EndDate)
	}

	query := `
		SELECT ` + recordColumns + `
		FROM leave_records
		WHERE ` + baseWhere + `
		ORDER BY start_date DESC, created_at DESC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
