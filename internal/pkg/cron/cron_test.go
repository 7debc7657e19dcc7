package cron

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/workday"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/repository/memory"
	attendanceService "github.com/cmlabs-hris/timesheet-backend-go/internal/service/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunsUntilCancelled(t *testing.T) {
	var runs, failures atomic.Int32
	s := NewScheduler()
	s.AddJob("count", 10*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})
	s.AddJob("fail", 10*time.Millisecond, func(ctx context.Context) error {
		failures.Add(1)
		return errors.New("boom")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.NoError(t, s.Run(ctx))
	assert.GreaterOrEqual(t, runs.Load(), int32(1))
	assert.GreaterOrEqual(t, failures.Load(), int32(1))
}

func TestReportStaleSessions(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	employees := memory.NewEmployeeRepository(store)

	var mu sync.Mutex
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	clock := workday.NewClock(time.UTC).WithNow(func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	})
	setNow := func(t time.Time) {
		mu.Lock()
		defer mu.Unlock()
		now = t
	}

	svc := attendanceService.NewAttendanceService(store, clock,
		memory.NewAttendanceRepository(store), employees,
		memory.NewLeaveRecordRepository(store), memory.NewWorkEntryRepository(store))

	forgetful, err := employees.Create(ctx, employee.Employee{EmpNo: "EMP-001", FullName: "Forgetful", Category: employee.CategoryB})
	require.NoError(t, err)
	punctual, err := employees.Create(ctx, employee.Employee{EmpNo: "EMP-002", FullName: "Punctual", Category: employee.CategoryB})
	require.NoError(t, err)

	_, err = svc.OpenSession(ctx, attendance.OpenSessionRequest{EmployeeID: forgetful.ID})
	require.NoError(t, err)

	setNow(time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC))
	_, err = svc.OpenSession(ctx, attendance.OpenSessionRequest{EmployeeID: punctual.ID})
	require.NoError(t, err)

	jobs := NewAttendanceJobs(svc, clock)
	stale, err := jobs.ReportStaleSessions(ctx)
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, forgetful.ID, stale[0].EmployeeID)
	assert.Equal(t, "2024-06-10", stale[0].WorkDate)

	_, err = svc.CloseSession(ctx, attendance.CloseSessionRequest{EmployeeID: forgetful.ID})
	require.NoError(t, err)

	stale, err = jobs.ReportStaleSessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, stale)
}
