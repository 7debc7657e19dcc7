package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/workday"
)

const staleSessionPageSize = 100

type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	clock             *workday.Clock
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService, clock *workday.Clock) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
		clock:             clock,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("report_stale_sessions", 1*time.Hour, func(ctx context.Context) error {
		_, err := j.ReportStaleSessions(ctx)
		return err
	})
}

// ReportStaleSessions logs every session still open from an earlier work day.
// Such sessions block OpenSession until the employee closes them, so they are
// surfaced rather than closed automatically.
func (j *AttendanceJobs) ReportStaleSessions(ctx context.Context) ([]attendance.SessionResponse, error) {
	yesterday := workday.FormatDate(j.clock.Today().AddDate(0, 0, -1))

	var stale []attendance.SessionResponse
	for page := 1; ; page++ {
		result, err := j.attendanceService.ListSessions(ctx, attendance.SessionFilter{
			EndDate:   &yesterday,
			OpenOnly:  true,
			Page:      page,
			Limit:     staleSessionPageSize,
			SortOrder: "asc",
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list stale sessions: %w", err)
		}
		stale = append(stale, result.Sessions...)
		if page >= result.TotalPages {
			break
		}
	}

	for _, s := range stale {
		slog.Warn("Cron: session left open from an earlier day",
			"session_id", s.ID,
			"employee_id", s.EmployeeID,
			"work_date", s.WorkDate,
			"login_time", s.LoginTime,
		)
	}
	if len(stale) == 0 {
		slog.Debug("Cron: no stale sessions")
	}

	return stale, nil
}
