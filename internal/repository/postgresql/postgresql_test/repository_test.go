package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/workentry"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

func createEmployee(t *testing.T, repo employee.EmployeeRepository, empNo string) employee.Employee {
	t.Helper()
	emp, err := repo.Create(context.Background(), employee.Employee{
		EmpNo:    empNo,
		FullName: "Test " + empNo,
		Category: employee.CategoryB,
	})
	require.NoError(t, err)
	return emp
}

func TestEmployeeRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(setup.DB)

	emp := createEmployee(t, repo, "EMP-001")
	assert.NotEmpty(t, emp.ID)

	_, err := repo.Create(ctx, employee.Employee{EmpNo: "EMP-001", FullName: "Dup", Category: employee.CategoryA})
	assert.ErrorIs(t, err, employee.ErrEmpNoExists)

	exists, err := repo.ExistsByEmpNo(ctx, "EMP-001")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.SetSuspended(ctx, emp.ID, true))
	got, err := repo.GetByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.True(t, got.IsSuspended)

	_, err = repo.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestAttendanceRepository_UniqueKeysAndClose(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	emp := createEmployee(t, postgresql.NewEmployeeRepository(setup.DB), "EMP-001")
	repo := postgresql.NewAttendanceRepository(setup.DB)

	login := testDay.Add(9 * time.Hour)
	selected := "09:00:00"
	session, err := repo.Create(ctx, attendance.Session{
		EmployeeID:   emp.ID,
		WorkDate:     testDay,
		LoginTime:    login,
		SelectedTime: &selected,
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, attendance.Session{EmployeeID: emp.ID, WorkDate: testDay.AddDate(0, 0, 1), LoginTime: login.Add(24 * time.Hour)})
	assert.ErrorIs(t, err, attendance.ErrSessionAlreadyOpen)

	open, err := repo.GetOpen(ctx, emp.ID)
	require.NoError(t, err)
	require.NotNil(t, open)
	assert.Equal(t, session.ID, open.ID)
	require.NotNil(t, open.SelectedTime)
	assert.Equal(t, "09:00:00", *open.SelectedTime)

	logout := login.Add(8*time.Hour + 15*time.Second)
	require.NoError(t, repo.Close(ctx, session.ID, logout, logout.Sub(login)))
	assert.ErrorIs(t, repo.Close(ctx, session.ID, logout, logout.Sub(login)), attendance.ErrNoActiveSession)

	closed, err := repo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, closed.Duration)
	assert.Equal(t, 8*time.Hour+15*time.Second, *closed.Duration)

	sameDay, err := repo.GetByEmployeeAndDate(ctx, emp.ID, testDay)
	require.NoError(t, err)
	require.NotNil(t, sameDay)
	assert.Equal(t, session.ID, sameDay.ID)
}

func TestLeaveBalanceRepository_Bounds(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	emp := createEmployee(t, postgresql.NewEmployeeRepository(setup.DB), "EMP-001")
	repo := postgresql.NewLeaveBalanceRepository(setup.DB)

	balance, err := repo.Create(ctx, leave.Balance{EmployeeID: emp.ID, LeaveType: leave.TypeAnnual, TotalAllocated: 4})
	require.NoError(t, err)

	assert.ErrorIs(t, repo.IncrementUsed(ctx, balance.ID, 5), leave.ErrInsufficientLeaveBalance)
	require.NoError(t, repo.IncrementUsed(ctx, balance.ID, 3))
	assert.ErrorIs(t, repo.SetAllocation(ctx, balance.ID, 2), leave.ErrAllocationBelowUsage)

	got, err := repo.Get(ctx, emp.ID, leave.TypeAnnual)
	require.NoError(t, err)
	assert.Equal(t, 4, got.TotalAllocated)
	assert.Equal(t, 3, got.Used)

	_, err = repo.Get(ctx, emp.ID, leave.TypeSick)
	assert.ErrorIs(t, err, leave.ErrNoBalanceRecord)
}

func TestTransactor_RollsBackBalanceAndRecord(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	emp := createEmployee(t, postgresql.NewEmployeeRepository(setup.DB), "EMP-001")
	balances := postgresql.NewLeaveBalanceRepository(setup.DB)
	records := postgresql.NewLeaveRecordRepository(setup.DB)
	tx := postgresql.NewTransactor(setup.DB)

	balance, err := balances.Create(ctx, leave.Balance{EmployeeID: emp.ID, LeaveType: leave.TypeAnnual, TotalAllocated: 5})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := balances.IncrementUsed(ctx, balance.ID, 2); err != nil {
			return err
		}
		if _, err := records.Create(ctx, leave.Record{
			EmployeeID: emp.ID, LeaveType: leave.TypeAnnual,
			StartDate: testDay, EndDate: testDay.AddDate(0, 0, 1), TotalDays: 2,
		}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := balances.Get(ctx, emp.ID, leave.TypeAnnual)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Used)

	covered, err := records.ExistsCovering(ctx, emp.ID, testDay)
	require.NoError(t, err)
	assert.False(t, covered)
}

func TestLeaveRecordRepository_Overlap(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	emp := createEmployee(t, postgresql.NewEmployeeRepository(setup.DB), "EMP-001")
	repo := postgresql.NewLeaveRecordRepository(setup.DB)

	_, err := repo.Create(ctx, leave.Record{
		EmployeeID: emp.ID, LeaveType: leave.TypeSick,
		StartDate: testDay, EndDate: testDay.AddDate(0, 0, 2), TotalDays: 3,
	})
	require.NoError(t, err)

	covered, err := repo.ExistsCovering(ctx, emp.ID, testDay.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.True(t, covered)

	overlap, err := repo.ExistsOverlapping(ctx, emp.ID, testDay.AddDate(0, 0, 2), testDay.AddDate(0, 0, 5))
	require.NoError(t, err)
	assert.True(t, overlap)

	overlap, err = repo.ExistsOverlapping(ctx, emp.ID, testDay.AddDate(0, 0, 3), testDay.AddDate(0, 0, 5))
	require.NoError(t, err)
	assert.False(t, overlap)
}

func TestWorkEntryRepository_OneLeavePerDay(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	emp := createEmployee(t, postgresql.NewEmployeeRepository(setup.DB), "EMP-001")
	repo := postgresql.NewWorkEntryRepository(setup.DB)

	sick := leave.TypeSick
	_, err := repo.Create(ctx, workentry.WorkEntry{EmployeeID: emp.ID, WorkDate: testDay, Status: workentry.StatusLeave, LeaveType: &sick})
	require.NoError(t, err)

	_, err = repo.Create(ctx, workentry.WorkEntry{EmployeeID: emp.ID, WorkDate: testDay, Status: workentry.StatusLeave, LeaveType: &sick})
	assert.ErrorIs(t, err, workentry.ErrConflictingStatusToday)

	hasLeave, err := repo.ExistsOnDate(ctx, emp.ID, testDay, workentry.StatusLeave)
	require.NoError(t, err)
	assert.True(t, hasLeave)

	onDuty, err := repo.ExistsOnDate(ctx, emp.ID, testDay, workentry.StatusOnDuty)
	require.NoError(t, err)
	assert.False(t, onDuty)
}
