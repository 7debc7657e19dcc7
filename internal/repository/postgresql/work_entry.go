package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/workentry"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const workEntryColumns = `
	id, employee_id, session_id, leave_record_id, work_date, status,
	task_title, description,
	to_char(start_time, 'HH24:MI:SS'), to_char(end_time, 'HH24:MI:SS'),
	job_no, ship_name, location, leave_type, leave_reason,
	created_at, updated_at`

type workEntryRepositoryImpl struct {
	db *database.DB
}

func NewWorkEntryRepository(db *database.DB) workentry.WorkEntryRepository {
	return &workEntryRepositoryImpl{db: db}
}

func scanWorkEntry(row pgx.Row) (workentry.WorkEntry, error) {
	var (
		e         workentry.WorkEntry
		leaveType *string
	)
	err := row.Scan(
		&e.ID, &e.EmployeeID, &e.SessionID, &e.LeaveRecordID, &e.WorkDate, &e.Status,
		&e.TaskTitle, &e.Description,
		&e.StartTime, &e.EndTime,
		&e.JobNo, &e.ShipName, &e.Location, &leaveType, &e.LeaveReason,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return workentry.WorkEntry{}, err
	}
	if leaveType != nil {
		lt := leave.Type(*leaveType)
		e.LeaveType = &lt
	}
	return e, nil
}

// Create implements workentry.WorkEntryRepository.
func (r *workEntryRepositoryImpl) Create(ctx context.Context, entry workentry.WorkEntry) (workentry.WorkEntry, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return workentry.WorkEntry{}, err
	}

	var leaveType *string
	if entry.LeaveType != nil {
		lt := string(*entry.LeaveType)
		leaveType = &lt
	}

	query := `
		INSERT INTO work_entries (
			id, employee_id, session_id, leave_record_id, work_date, status,
			task_title, description, start_time, end_time,
			job_no, ship_name, location, leave_type, leave_reason
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9::time, $10::time,
			$11, $12, $13, $14, $15
		) RETURNING ` + workEntryColumns

	created, err := scanWorkEntry(q.QueryRow(ctx, query,
		id,
		entry.EmployeeID,
		entry.SessionID,
		entry.LeaveRecordID,
		entry.WorkDate,
		entry.Status,
		entry.TaskTitle,
		entry.Description,
		entry.StartTime,
		entry.EndTime,
		entry.JobNo,
		entry.ShipName,
		entry.Location,
		leaveType,
		entry.LeaveReason,
	))
	if err != nil {
		if isUniqueViolation(err, "work_entries_one_leave_per_day") {
			return workentry.WorkEntry{}, workentry.ErrConflictingStatusToday
		}
		return workentry.WorkEntry{}, fmt.Errorf("failed to create work entry: %w", err)
	}
	return created, nil
}

// GetByID implements workentry.WorkEntryRepository.
func (r *workEntryRepositoryImpl) GetByID(ctx context.Context, id string) (workentry.WorkEntry, error) {
	if !isUUID(id) {
		return workentry.WorkEntry{}, workentry.ErrWorkEntryNotFound
	}
	q := GetQuerier(ctx, r.db)

	e, err := scanWorkEntry(q.QueryRow(ctx, `SELECT `+workEntryColumns+` FROM work_entries WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return workentry.WorkEntry{}, workentry.ErrWorkEntryNotFound
		}
		return workentry.WorkEntry{}, fmt.Errorf("failed to get work entry: %w", err)
	}
	return e, nil
}

// Update implements workentry.WorkEntryRepository.
func (r *workEntryRepositoryImpl) Update(ctx context.Context, entry workentry.WorkEntry) (workentry.WorkEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE work_entries
		SET task_title = $2,
			description = $3,
			start_time = $4::time,
			end_time = $5::time,
			job_no = $6,
			ship_name = $7,
			location = $8,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + workEntryColumns

	updated, err := scanWorkEntry(q.QueryRow(ctx, query,
		entry.ID,
		entry.TaskTitle,
		entry.Description,
		entry.StartTime,
		entry.EndTime,
		entry.JobNo,
		entry.ShipName,
		entry.Location,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return workentry.WorkEntry{}, workentry.ErrWorkEntryNotFound
		}
		return workentry.WorkEntry{}, fmt.Errorf("failed to update work entry: %w", err)
	}
	return updated, nil
}

// Delete implements workentry.WorkEntryRepository.
func (r *workEntryRepositoryImpl) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return workentry.ErrWorkEntryNotFound
	}
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM work_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete work entry: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return workentry.ErrWorkEntryNotFound
	}
	return nil
}

// ExistsOnDate implements workentry.WorkEntryRepository.
func (r *workEntryRepositoryImpl) ExistsOnDate(ctx context.Context, employeeID string, workDate time.Time, status workentry.Status) (bool, error) {
	if !isUUID(employeeID) {
		return false, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM work_entries
			WHERE employee_id = $1
			  AND work_date = $2
			  AND status = $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, workDate, status).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check work entries: %w", err)
	}
	return exists, nil
}

// List implements workentry.WorkEntryRepository.
func (r *workEntryRepositoryImpl) List(ctx context.Context, filter workentry.WorkEntryFilter) ([]workentry.WorkEntry, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		if !isUUID(*filter.EmployeeID) {
			return []workentry.WorkEntry{}, 0, nil
		}
		baseWhere += fmt.Sprintf(" AND employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, strings.ToLower(*filter.Status))
		argIdx++
	}

	// Date range filters
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND work_date >= $%d::date", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND work_date <= $%d::date", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM work_entries WHERE `+baseWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count work entries: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM work_entries
		WHERE %s
		ORDER BY work_date DESC, created_at DESC
		LIMIT $%d OFFSET $%d
	`, workEntryColumns, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := max(filter.Page, 1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query work entries: %w", err)
	}
	defer rows.Close()

	entries := make([]workentry.WorkEntry, 0)
	for rows.Next() {
		e, err := scanWorkEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan work entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
