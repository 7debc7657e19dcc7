package attendance

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/workentry"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/workday"
)

type AttendanceServiceImpl struct {
	tx    database.Transactor
	clock *workday.Clock
	attendance.SessionRepository
	employee.EmployeeRepository
	leave.RecordRepository
	workentry.WorkEntryRepository
}

// OpenSession implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) OpenSession(ctx context.Context, req attendance.OpenSessionRequest) (attendance.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SessionResponse{}, err
	}

	var resp attendance.SessionResponse
	err := a.tx.WithinTx(ctx, func(ctx context.Context) error {
		emp, err := a.EmployeeRepository.LockForUpdate(ctx, req.EmployeeID)
		if err != nil {
			return err
		}
		if emp.IsSuspended {
			return employee.ErrEmployeeSuspended
		}

		// Instants are kept at the resolution durations are stored at.
		now := a.clock.Now().Truncate(time.Second)
		today := a.clock.DateOf(now)

		onLeave, err := a.RecordRepository.ExistsCovering(ctx, emp.ID, today)
		if err != nil {
			return fmt.Errorf("failed to check leave records: %w", err)
		}
		if !onLeave {
			onLeave, err = a.WorkEntryRepository.ExistsOnDate(ctx, emp.ID, today, workentry.StatusLeave)
			if err != nil {
				return fmt.Errorf("failed to check leave entries: %w", err)
			}
		}
		if onLeave {
			return attendance.ErrAlreadyOnLeaveToday
		}

		open, err := a.SessionRepository.GetOpen(ctx, emp.ID)
		if err != nil {
			return err
		}
		if open != nil {
			if !open.WorkDate.Equal(today) {
				return attendance.ErrOpenSessionPending
			}
			resp = mapSessionToResponse(*open)
			resp.Resumed = true
			return nil
		}

		existing, err := a.SessionRepository.GetByEmployeeAndDate(ctx, emp.ID, today)
		if err != nil {
			return err
		}
		if existing != nil {
			return attendance.ErrAlreadyCompletedToday
		}

		created, err := a.SessionRepository.Create(ctx, attendance.Session{
			EmployeeID:   emp.ID,
			WorkDate:     today,
			LoginTime:    now,
			SelectedTime: req.SelectedTime,
		})
		if err != nil {
			return err
		}
		resp = mapSessionToResponse(created)
		return nil
	})
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	return resp, nil
}

// CloseSession implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CloseSession(ctx context.Context, req attendance.CloseSessionRequest) (attendance.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SessionResponse{}, err
	}

	var resp attendance.SessionResponse
	err := a.tx.WithinTx(ctx, func(ctx context.Context) error {
		// Suspended employees may still close what they opened.
		if _, err := a.EmployeeRepository.LockForUpdate(ctx, req.EmployeeID); err != nil {
			return err
		}

		open, err := a.SessionRepository.GetOpen(ctx, req.EmployeeID)
		if err != nil {
			return err
		}
		if open == nil {
			return attendance.ErrNoActiveSession
		}

		logout := a.clock.Now().Truncate(time.Second)
		if logout.Before(open.LoginTime) {
			logout = open.LoginTime.UTC()
		}

		if err := a.SessionRepository.Close(ctx, open.ID, logout, attendance.WorkedDuration(open.LoginTime, logout)); err != nil {
			return err
		}

		// Answer with what was stored, not with what was computed here.
		stored, err := a.SessionRepository.GetByID(ctx, open.ID)
		if err != nil {
			return fmt.Errorf("failed to re-read closed session: %w", err)
		}
		if stored.Duration == nil || stored.LogoutTime == nil {
			return attendance.ErrDurationNotPersisted
		}
		resp = mapSessionToResponse(stored)
		return nil
	})
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	return resp, nil
}

// QueryOpenSession implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) QueryOpenSession(ctx context.Context, employeeID string) (*attendance.SessionResponse, error) {
	open, err := a.SessionRepository.GetOpen(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get open session: %w", err)
	}
	if open == nil {
		return nil, nil
	}
	resp := mapSessionToResponse(*open)
	return &resp, nil
}

// GetSession implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetSession(ctx context.Context, id string) (attendance.SessionResponse, error) {
	s, err := a.SessionRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.SessionResponse{}, err
	}
	return mapSessionToResponse(s), nil
}

// ListSessions implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListSessions(ctx context.Context, filter attendance.SessionFilter) (attendance.ListSessionResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListSessionResponse{}, err
	}

	sessions, total, err := a.SessionRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListSessionResponse{}, fmt.Errorf("failed to list sessions: %w", err)
	}

	// Map to response
	responses := make([]attendance.SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		responses = append(responses, mapSessionToResponse(s))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return attendance.ListSessionResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Sessions:   responses,
	}, nil
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.UTC().Format(time.RFC3339)
	return &format
}

// formatDuration renders d as H:MM:SS.
func formatDuration(d time.Duration) string {
	secs := int64(d / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", secs/3600, secs%3600/60, secs%60)
}

func mapSessionToResponse(s attendance.Session) attendance.SessionResponse {
	resp := attendance.SessionResponse{
		ID:           s.ID,
		EmployeeID:   s.EmployeeID,
		WorkDate:     workday.FormatDate(s.WorkDate),
		LoginTime:    s.LoginTime.UTC().Format(time.RFC3339),
		SelectedTime: s.SelectedTime,
		LogoutTime:   timePtrToString(s.LogoutTime),
		IsOpen:       s.IsOpen(),
		CreatedAt:    s.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    s.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if s.Duration != nil {
		secs := int64(*s.Duration / time.Second)
		text := formatDuration(*s.Duration)
		resp.DurationSeconds = &secs
		resp.Duration = &text
	}
	return resp
}

func NewAttendanceService(
	tx database.Transactor,
	clock *workday.Clock,
	sessionRepo attendance.SessionRepository,
	employeeRepo employee.EmployeeRepository,
	recordRepo leave.RecordRepository,
	workEntryRepo workentry.WorkEntryRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:                  tx,
		clock:               clock,
		SessionRepository:   sessionRepo,
		EmployeeRepository:  employeeRepo,
		RecordRepository:    recordRepo,
		WorkEntryRepository: workEntryRepo,
	}
}
