package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/config"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/workentry"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/workday"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/timesheet-backend-go/internal/service/attendance"
	employeeService "github.com/cmlabs-hris/timesheet-backend-go/internal/service/employee"
	leaveService "github.com/cmlabs-hris/timesheet-backend-go/internal/service/leave"
	workEntryService "github.com/cmlabs-hris/timesheet-backend-go/internal/service/workentry"
)

// Services is the wired service graph shared by the API server and timesheetctl.
type Services struct {
	Clock      *workday.Clock
	Attendance attendance.AttendanceService
	WorkEntry  workentry.WorkEntryService
	Leave      leave.LeaveService
	Employee   employee.EmployeeService
}

type repositories struct {
	tx        database.Transactor
	employees employee.EmployeeRepository
	sessions  attendance.SessionRepository
	balances  leave.BalanceRepository
	records   leave.RecordRepository
	entries   workentry.WorkEntryRepository
}

// OpenDatabase connects the pgx pool described by cfg.
func OpenDatabase(cfg *config.Config) (*database.DB, error) {
	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Build wires the services over the configured storage driver. The postgres
// driver migrates the schema first. Callers must invoke the returned cleanup.
func Build(ctx context.Context, cfg *config.Config) (*Services, func(), error) {
	var (
		repos   repositories
		cleanup = func() {}
	)

	switch cfg.Database.Driver {
	case config.StorageDriverMemory:
		slog.Warn("Using in-memory storage; data is lost on restart")
		store := memory.NewStore()
		repos = repositories{
			tx:        store,
			employees: memory.NewEmployeeRepository(store),
			sessions:  memory.NewAttendanceRepository(store),
			balances:  memory.NewLeaveBalanceRepository(store),
			records:   memory.NewLeaveRecordRepository(store),
			entries:   memory.NewWorkEntryRepository(store),
		}

	case config.StorageDriverPostgres:
		db, err := OpenDatabase(cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		cleanup = db.Close
		repos = repositories{
			tx:        postgresql.NewTransactor(db),
			employees: postgresql.NewEmployeeRepository(db),
			sessions:  postgresql.NewAttendanceRepository(db),
			balances:  postgresql.NewLeaveBalanceRepository(db),
			records:   postgresql.NewLeaveRecordRepository(db),
			entries:   postgresql.NewWorkEntryRepository(db),
		}

	default:
		return nil, nil, fmt.Errorf("unsupported storage driver: %s", cfg.Database.Driver)
	}

	clock := workday.NewClock(cfg.Location())
	return newServices(clock, repos), cleanup, nil
}

func newServices(clock *workday.Clock, r repositories) *Services {
	leaveSvc := leaveService.NewLeaveService(r.tx, clock, r.balances, r.records, r.employees, r.entries)

	return &Services{
		Clock:      clock,
		Leave:      leaveSvc,
		Attendance: attendanceService.NewAttendanceService(r.tx, clock, r.sessions, r.employees, r.records, r.entries),
		WorkEntry:  workEntryService.NewWorkEntryService(r.tx, clock, r.entries, r.sessions, r.employees, leaveSvc),
		Employee:   employeeService.NewEmployeeService(r.tx, r.employees),
	}
}
