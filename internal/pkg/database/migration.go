package database

import (
	"context"
	"fmt"
	"log/slog"
)

// schema is applied in order; every statement is idempotent.
var schema = []struct {
	name string
	sql  string
}{
	{"employees", `
		CREATE TABLE IF NOT EXISTS employees (
			id           UUID PRIMARY KEY,
			emp_no       VARCHAR(50)  NOT NULL UNIQUE,
			full_name    VARCHAR(150) NOT NULL,
			mobile       VARCHAR(15),
			category     CHAR(1)      NOT NULL CHECK (category IN ('A', 'B', 'C')),
			designation  VARCHAR(100),
			department   VARCHAR(100),
			is_suspended BOOLEAN      NOT NULL DEFAULT FALSE,
			created_at   TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
			updated_at   TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		)`},
	{"attendance_sessions", `
		CREATE TABLE IF NOT EXISTS attendance_sessions (
			id               UUID PRIMARY KEY,
			employee_id      UUID        NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
			work_date        DATE        NOT NULL,
			login_time       TIMESTAMPTZ NOT NULL,
			selected_time    TIME,
			logout_time      TIMESTAMPTZ,
			duration_seconds BIGINT,
			created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CHECK (logout_time IS NULL OR logout_time >= login_time)
		)`},
	{"attendance_sessions_one_open", `
		CREATE UNIQUE INDEX IF NOT EXISTS attendance_sessions_one_open
			ON attendance_sessions (employee_id) WHERE logout_time IS NULL`},
	{"attendance_sessions_one_per_day", `
		CREATE UNIQUE INDEX IF NOT EXISTS attendance_sessions_one_per_day
			ON attendance_sessions (employee_id, work_date)`},
	{"leave_balances", `
		CREATE TABLE IF NOT EXISTS leave_balances (
			id              UUID PRIMARY KEY,
			employee_id     UUID        NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
			leave_type      VARCHAR(20) NOT NULL,
			total_allocated INTEGER     NOT NULL DEFAULT 0 CHECK (total_allocated >= 0),
			used            INTEGER     NOT NULL DEFAULT 0 CHECK (used >= 0),
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (employee_id, leave_type),
			CHECK (used <= total_allocated)
		)`},
	{"leave_records", `
		CREATE TABLE IF NOT EXISTS leave_records (
			id          UUID PRIMARY KEY,
			employee_id UUID        NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
			leave_type  VARCHAR(20) NOT NULL,
			start_date  DATE        NOT NULL,
			end_date    DATE        NOT NULL,
			total_days  INTEGER     NOT NULL CHECK (total_days > 0),
			reason      TEXT        NOT NULL DEFAULT '',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CHECK (start_date <= end_date)
		)`},
	{"leave_records_range", `
		CREATE INDEX IF NOT EXISTS leave_records_employee_range
			ON leave_records (employee_id, start_date, end_date)`},
	{"work_entries", `
		CREATE TABLE IF NOT EXISTS work_entries (
			id              UUID PRIMARY KEY,
			employee_id     UUID        NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
			session_id      UUID        REFERENCES attendance_sessions(id) ON DELETE CASCADE,
			leave_record_id UUID        REFERENCES leave_records(id) ON DELETE SET NULL,
			work_date       DATE        NOT NULL,
			status          VARCHAR(20) NOT NULL CHECK (status IN ('on_duty', 'leave')),
			task_title      VARCHAR(200),
			description     TEXT,
			start_time      TIME,
			end_time        TIME,
			job_no          VARCHAR(100),
			ship_name       VARCHAR(100),
			location        VARCHAR(100),
			leave_type      VARCHAR(20),
			leave_reason    TEXT,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CHECK (status <> 'on_duty' OR session_id IS NOT NULL),
			CHECK (status <> 'leave' OR leave_type IS NOT NULL)
		)`},
	{"work_entries_employee_day", `
		CREATE INDEX IF NOT EXISTS work_entries_employee_day
			ON work_entries (employee_id, work_date, status)`},
	{"work_entries_one_leave_per_day", `
		CREATE UNIQUE INDEX IF NOT EXISTS work_entries_one_leave_per_day
			ON work_entries (employee_id, work_date) WHERE status = 'leave'`},
}

// Migrate creates the timesheet schema if it does not exist yet.
func Migrate(ctx context.Context, db *DB) error {
	slog.Info("Running database migrations...")

	tx, err := db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, step := range schema {
		if _, err := tx.Exec(ctx, step.sql); err != nil {
			return fmt.Errorf("migration %s: %w", step.name, err)
		}
		slog.Debug("Migration applied", "name", step.name)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}

	slog.Info("Database migrations completed successfully", "steps", len(schema))
	return nil
}
