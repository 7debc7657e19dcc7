package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const sessionColumns = `
	id, employee_id, work_date, login_time,
	to_char(selected_time, 'HH24:MI:SS'), logout_time, duration_seconds,
	created_at, updated_at`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.SessionRepository {
	return &attendanceRepository{db: db}
}

func scanSession(row pgx.Row) (attendance.Session, error) {
	var (
		s               attendance.Session
		durationSeconds *int64
	)
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.WorkDate, &s.LoginTime,
		&s.SelectedTime, &s.LogoutTime, &durationSeconds,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return attendance.Session{}, err
	}
	if durationSeconds != nil {
		d := time.Duration(*durationSeconds) * time.Second
		s.Duration = &d
	}
	return s, nil
}

// Create implements attendance.SessionRepository.
func (a *attendanceRepository) Create(ctx context.Context, session attendance.Session) (attendance.Session, error) {
	q := GetQuerier(ctx, a.db)

	id, err := newID()
	if err != nil {
		return attendance.Session{}, err
	}

	query := `
		INSERT INTO attendance_sessions (
			id, employee_id, work_date, login_time, selected_time
		) VALUES (
			$1, $2, $3, $4, $5::time
		) RETURNING ` + sessionColumns

	created, err := scanSession(q.QueryRow(ctx, query,
		id,
		session.EmployeeID,
		session.WorkDate,
		session.LoginTime,
		session.SelectedTime,
	))
	if err != nil {
		if isUniqueViolation(err, "") {
			return attendance.Session{}, attendance.ErrSessionAlreadyOpen
		}
		return attendance.Session{}, fmt.Errorf("failed to create attendance session: %w", err)
	}

	return created, nil
}

// GetByID implements attendance.SessionRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Session, error) {
	if !isUUID(id) {
		return attendance.Session{}, attendance.ErrSessionNotFound
	}
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + sessionColumns + ` FROM attendance_sessions WHERE id = $1`

	s, err := scanSession(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Session{}, attendance.ErrSessionNotFound
		}
		return attendance.Session{}, fmt.Errorf("failed to get attendance session: %w", err)
	}
	return s, nil
}

// GetOpen implements attendance.SessionRepository.
func (a *attendanceRepository) GetOpen(ctx context.Context, employeeID string) (*attendance.Session, error) {
	if !isUUID(employeeID) {
		return nil, nil
	}
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions
		WHERE employee_id = $1
		  AND logout_time IS NULL
		ORDER BY created_at DESC
		LIMIT 1
	`

	s, err := scanSession(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open session: %w", err)
	}
	return &s, nil
}

// GetByEmployeeAndDate implements attendance.SessionRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time) (*attendance.Session, error) {
	if !isUUID(employeeID) {
		return nil, nil
	}
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions
		WHERE employee_id = $1
		  AND work_date = $2
		LIMIT 1
	`

	s, err := scanSession(q.QueryRow(ctx, query, employeeID, workDate))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // No session on that date
		}
		return nil, fmt.Errorf("failed to get session by employee and date: %w", err)
	}
	return &s, nil
}

// Close implements attendance.SessionRepository.
func (a *attendanceRepository) Close(ctx context.Context, id string, logoutTime time.Time, duration time.Duration) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_sessions
		SET logout_time = $2,
			duration_seconds = $3,
			updated_at = NOW()
		WHERE id = $1
		  AND logout_time IS NULL
	`

	commandTag, err := q.Exec(ctx, query, id, logoutTime, int64(duration/time.Second))
	if err != nil {
		return fmt.Errorf("failed to close attendance session: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return attendance.ErrNoActiveSession
	}
	return nil
}

// List implements attendance.SessionRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.SessionFilter) ([]attendance.Session, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		if !isUUID(*filter.EmployeeID) {
			return []attendance.Session{}, 0, nil
		}
		baseWhere += fmt.Sprintf(" AND employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
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

	if filter.OpenOnly {
		baseWhere += " AND logout_time IS NULL"
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM attendance_sessions WHERE `+baseWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance sessions: %w", err)
	}

	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM attendance_sessions
		WHERE %s
		ORDER BY login_time %s
		LIMIT $%d OFFSET $%d
	`, sessionColumns, baseWhere, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := max(filter.Page, 1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendance sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]attendance.Session, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return sessions, total, nil
}
