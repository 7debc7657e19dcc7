package attendance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/workentry"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/workday"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type testEnv struct {
	service   attendance.AttendanceService
	employees employee.EmployeeRepository
	sessions  attendance.SessionRepository
	records   leave.RecordRepository
	entries   workentry.WorkEntryRepository

	mu  sync.Mutex
	now time.Time
}

func (e *testEnv) setNow(t time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.now = t
}

func newTestEnv(t *testing.T, start time.Time) *testEnv {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	store := memory.NewStore()
	env := &testEnv{
		employees: memory.NewEmployeeRepository(store),
		sessions:  memory.NewAttendanceRepository(store),
		records:   memory.NewLeaveRecordRepository(store),
		entries:   memory.NewWorkEntryRepository(store),
		now:       start,
	}
	clock := workday.NewClock(loc).WithNow(func() time.Time {
		env.mu.Lock()
		defer env.mu.Unlock()
		return env.now
	})
	env.service = NewAttendanceService(store, clock, env.sessions, env.employees, env.records, env.entries)
	return env
}

func createTestEmployee(t *testing.T, ctx context.Context, repo employee.EmployeeRepository, empNo string) employee.Employee {
	t.Helper()
	emp, err := repo.Create(ctx, employee.Employee{EmpNo: empNo, FullName: "Test " + empNo, Category: employee.CategoryB})
	require.NoError(t, err)
	return emp
}

// 2024-06-10 08:00 in Asia/Kolkata.
var mondayMorning = time.Date(2024, 6, 10, 2, 30, 0, 0, time.UTC)

func TestOpenSession_CreatesThenResumes(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, mondayMorning)
	emp := createTestEmployee(t, ctx, env.employees, "E-100")

	selected := "08:00"
	first, err := env.service.OpenSession(ctx, attendance.OpenSessionRequest{EmployeeID: emp.ID, SelectedTime: &selected})
	require.NoError(t, err)
	assert.True(t, first.IsOpen)
	assert.False(t, first.Resumed)
	assert.Equal(t, "2024-06-10", first.WorkDate)
	require.NotNil(t, first.SelectedTime)
	assert.Equal(t, "08:00:00", *first.SelectedTime)

	env.setNow(mondayMorning.Add(2 * time.Hour))
	second, err := env.service.OpenSession(ctx, attendance.OpenSessionRequest{EmployeeID: emp.ID})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.LoginTime, second.LoginTime)
	assert.True(t, second.Resumed)

	sessions, total, err := env.sessions.List(ctx, attendance.SessionFilter{EmployeeID: &emp.ID, Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, sessions, 1)
}

func TestCloseSession_DurationIsLogoutMinusLogin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, mondayMorning)
	emp := createTestEmployee(t, ctx, env.employees, "E-101")

	opened, err := env.service.OpenSession(ctx, attendance.OpenSessionRequest{EmployeeID: emp.ID})
	require.NoError(t, err)

	env.setNow(mondayMorning.Add(9*time.Hour + 30*time.Minute + 15*time.Second))
	closed, err := env.service.CloseSession(ctx, attendance.CloseSessionRequest{EmployeeID: emp.ID})
	require.NoError(t, err)

	assert.Equal(t, opened.ID, closed.ID)
	assert.False(t, closed.IsOpen)
	require.NotNil(t, closed.DurationSeconds)
	assert.Equal(t, int64(9*3600+30*60+15), *closed.DurationSeconds)
	require.NotNil(t, closed.Duration)
	assert.Equal(t, "9:30:15", *closed.Duration)

	stored, err := env.sessions.GetByID(ctx, closed.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LogoutTime)
	require.NotNil(t, stored.Duration)
	assert.Equal(t, stored.LogoutTime.Sub(stored.LoginTime), *stored.Duration)

	open, err := env.service.QueryOpenSession(ctx, emp.ID)
	require.NoError(t, err)
	assert.Nil(t, open)
}

func TestCloseSession_SubSecondInstantsMatchStoredDuration(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, mondayMorning.Add(900*time.Millisecond))
	emp := createTestEmployee(t, ctx, env.employees, "E-103")

	_, err := env.service.OpenSession(ctx, attendance.OpenSessionRequest{EmployeeID: emp.ID})
	require.NoError(t, err)

	env.setNow(mondayMorning.Add(3*time.Second + 100*time.Millisecond))
	closed, err := env.service.CloseSession(ctx, attendance.CloseSessionRequest{EmployeeID: emp.ID})
	require.NoError(t, err)

	stored, err := env.sessions.GetByID(ctx, closed.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LogoutTime)
	require.NotNil(t, stored.Duration)
	assert.Equal(t, stored.LogoutTime.Sub(stored.LoginTime), *stored.Duration)
	assert.Equal(t, 3*time.Second, *stored.Duration)

	// The rendered timestamps agree with the rendered duration.
	login, err := time.Parse(time.RFC3339, closed.LoginTime)
	require.NoError(t, err)
	require.NotNil(t, closed.LogoutTime)
	logout, err := time.Parse(time.RFC3339, *closed.LogoutTime)
	require.NoError(t, err)
	require.NotNil(t, closed.DurationSeconds)
	assert.Equal(t, int64(logout.Sub(login)/time.Second), *closed.DurationSeconds)
}

func TestCloseSession_SecondCallFails(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, mondayMorning)
	emp := createTestEmployee(t, ctx, env.employees, "E-102")

	_, err := env.service.CloseSession(ctx, attendance.CloseSessionRequest{EmployeeID: emp.ID})
	assert.ErrorIs(t, err, attendance.ErrNoActiveSession)

	_, err = env.service.OpenSession(ctx, attendance.OpenSessionRequest{EmployeeID: emp.ID})
	require.NoError(t, err)

	env.setNow(mondayMorning.Add(time.Hour))
	_, err = env.service.CloseSession(ctx, attendance.CloseSessionRequest{EmployeeID: emp.ID})
	require.NoError(t, err)

	_, err = env.service.CloseSession(ctx, attendance.CloseSessionRequest{EmployeeID: emp.ID})
	assert.ErrorIs(t, err, attendance.ErrNoActiveSession)
}

func TestOpenSession_AlreadyCompletedToday(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, mondayMorning)
	emp := createTestEmployee(t, ctx, env.employees, "E-103")

	_, err := env.service.OpenSession(ctx, attendance.OpenSessionRequest{EmployeeID: emp.ID})
	require.NoError(t, err)
	env.setNow(mondayMorning.Add(8 * time.Hour))
	_, err = env.service.CloseSession(ctx, attendance.CloseSessionRequest{EmployeeID: emp.ID})
	require.NoError(t, err)

	_, err = env.service.OpenSession(ctx, attendance.OpenSessionRequest{EmployeeID: emp.ID})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCompletedToday)

	// Next day in the business timezone opens a fresh session.
	env.setNow(mondayMorning.Add(24 * time.Hour))
	next, err := env.service.OpenSession(ctx, attendance.OpenSessionRequest{EmployeeID: emp.ID})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-11", next.WorkDate)
}

func TestOpenSession_OnLeaveToday(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, mondayMorning)
	emp := createTestEmployee(t, ctx, env.employees, "E-104")

	_, err := env.records.Create(ctx, leave.Record{
		EmployeeID: emp.ID,
		LeaveType:  leave.TypeAnnual,
		StartDate:  time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC),
		TotalDays:  3,
	})
	require.NoError(t, err)

	_, err = env.service.OpenSession(ctx, attendance.OpenSessionRequest{EmployeeID: emp.ID})
	assert.ErrorIs(t, err, attendance.ErrAlreadyOnLeaveToday)

	open, err := env.service.QueryOpenSession(ctx, emp.ID)
	require.NoError(t, err)
	assert.Nil(t, open)
}

func TestOpenSession_LeaveEntryToday(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, mondayMorning)
	emp := createTestEmployee(t, ctx, env.employees, "E-105")

	sick := leave.TypeSick
	_, err := env.entries.Create(ctx, workentry.WorkEntry{
		EmployeeID: emp.ID,
		WorkDate:   time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		Status:     workentry.StatusLeave,
		LeaveType:  &sick,
	})
	require.NoError(t, err)

	_, err = env.service.OpenSession(ctx, attendance.OpenSessionRequest{EmployeeID: emp.ID})
	assert.ErrorIs(t, err, attendance.ErrAlreadyOnLeaveToday)
}

func TestOpenSession_StaleSessionMustBeClosedFirst(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, mondayMorning)
	emp := createTestEmployee(t, ctx, env.employees, "E-106")

	_, err := env.service.OpenSession(ctx, attendance.OpenSessionRequest{EmployeeID: emp.ID})
	require.NoError(t, err)

	env.setNow(mondayMorning.Add(25 * time.Hour))
	_, err = env.service.OpenSession(ctx, attendance.OpenSessionRequest{EmployeeID: emp.ID})
	assert.ErrorIs(t, err, attendance.ErrOpenSessionPending)

	closed, err := env.service.CloseSession(ctx, attendance.CloseSessionRequest{EmployeeID: emp.ID})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-10", closed.WorkDate)

	reopened, err := env.service.OpenSession(ctx, attendance.OpenSessionRequest{EmployeeID: emp.ID})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-11", reopened.WorkDate)
}

func TestOpenSession_SuspendedEmployee(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, mondayMorning)
	emp := createTestEmployee(t, ctx, env.employees, "E-107")

	_, err := env.service.OpenSession(ctx, attendance.OpenSessionRequest{EmployeeID: emp.ID})
	require.NoError(t, err)
	require.NoError(t, env.employees.SetSuspended(ctx, emp.ID, true))

	// An already open session can still be closed.
	env.setNow(mondayMorning.Add(time.Hour))
	_, err = env.service.CloseSession(ctx, attendance.CloseSessionRequest{EmployeeID: emp.ID})
	require.NoError(t, err)

	env.setNow(mondayMorning.Add(24 * time.Hour))
	_, err = env.service.OpenSession(ctx, attendance.OpenSessionRequest{EmployeeID: emp.ID})
	assert.ErrorIs(t, err, employee.ErrEmployeeSuspended)
}

func TestOpenSession_UnknownEmployee(t *testing.T) {
	env := newTestEnv(t, mondayMorning)

	_, err := env.service.OpenSession(context.Background(), attendance.OpenSessionRequest{EmployeeID: "missing"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestOpenSession_ConcurrentCallsShareOneSession(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, mondayMorning)
	emp := createTestEmployee(t, ctx, env.employees, "E-108")

	const callers = 8
	ids := make([]string, callers)

	var g errgroup.Group
	for i := range callers {
		g.Go(func() error {
			resp, err := env.service.OpenSession(ctx, attendance.OpenSessionRequest{EmployeeID: emp.ID})
			ids[i] = resp.ID
			return err
		})
	}
	require.NoError(t, g.Wait())

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}

	openOnly, total, err := env.sessions.List(ctx, attendance.SessionFilter{EmployeeID: &emp.ID, OpenOnly: true, Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, openOnly, 1)
}

func TestListSessions_FiltersByEmployeeAndDate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, mondayMorning)
	a := createTestEmployee(t, ctx, env.employees, "E-109")
	b := createTestEmployee(t, ctx, env.employees, "E-110")

	for day := range 3 {
		env.setNow(mondayMorning.Add(time.Duration(day) * 24 * time.Hour))
		for _, emp := range []employee.Employee{a, b} {
			_, err := env.service.OpenSession(ctx, attendance.OpenSessionRequest{EmployeeID: emp.ID})
			require.NoError(t, err)
		}
		env.setNow(mondayMorning.Add(time.Duration(day)*24*time.Hour + 8*time.Hour))
		for _, emp := range []employee.Employee{a, b} {
			_, err := env.service.CloseSession(ctx, attendance.CloseSessionRequest{EmployeeID: emp.ID})
			require.NoError(t, err)
		}
	}

	start, end := "2024-06-11", "2024-06-12"
	resp, err := env.service.ListSessions(ctx, attendance.SessionFilter{EmployeeID: &a.ID, StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.TotalCount)
	assert.Equal(t, 1, resp.TotalPages)
	assert.Equal(t, "1-2 of 2", resp.Showing)
	require.Len(t, resp.Sessions, 2)
	// Newest first by default.
	assert.Equal(t, "2024-06-12", resp.Sessions[0].WorkDate)
	for _, s := range resp.Sessions {
		assert.Equal(t, a.ID, s.EmployeeID)
	}
}
