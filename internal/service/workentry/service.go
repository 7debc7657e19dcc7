package workentry

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/workentry"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/workday"
)

type WorkEntryServiceImpl struct {
	tx    database.Transactor
	clock *workday.Clock
	workentry.WorkEntryRepository
	attendance.SessionRepository
	employee.EmployeeRepository
	leaveService leave.LeaveService
}

// SubmitWorkEntry implements workentry.WorkEntryService.
func (w *WorkEntryServiceImpl) SubmitWorkEntry(ctx context.Context, req workentry.SubmitWorkEntryRequest) (workentry.WorkEntryResponse, error) {
	if err := req.Validate(); err != nil {
		return workentry.WorkEntryResponse{}, err
	}

	var resp workentry.WorkEntryResponse
	err := w.tx.WithinTx(ctx, func(ctx context.Context) error {
		emp, err := w.EmployeeRepository.LockForUpdate(ctx, req.EmployeeID)
		if err != nil {
			return err
		}
		if emp.IsSuspended {
			return employee.ErrEmployeeSuspended
		}

		today := w.clock.Today()

		onLeave, err := w.leaveService.IsOnLeave(ctx, emp.ID, today)
		if err != nil {
			return err
		}
		if onLeave {
			return workentry.ErrCannotActWhileOnLeave
		}

		entry := workentry.WorkEntry{
			EmployeeID: emp.ID,
			WorkDate:   today,
			Status:     workentry.Status(req.Status),
		}

		switch entry.Status {
		case workentry.StatusOnDuty:
			open, err := w.SessionRepository.GetOpen(ctx, emp.ID)
			if err != nil {
				return err
			}
			// A session left open since an earlier day does not cover today.
			if open == nil || !open.WorkDate.Equal(today) {
				return attendance.ErrNoActiveSession
			}

			if err := w.ensureNoEntry(ctx, emp.ID, today, workentry.StatusLeave); err != nil {
				return err
			}

			entry.SessionID = &open.ID
			entry.TaskTitle = trimmed(req.TaskTitle)
			entry.Description = trimmed(req.Description)
			entry.StartTime = req.StartTime
			entry.EndTime = req.EndTime
			entry.JobNo = trimmed(req.JobNo)
			entry.ShipName = trimmed(req.ShipName)
			entry.Location = trimmed(req.Location)

			if missing := workentry.MissingFields(emp.Category, entry); len(missing) > 0 {
				return &workentry.MissingFieldsError{Fields: missing}
			}

		case workentry.StatusLeave:
			if err := w.ensureNoEntry(ctx, emp.ID, today, workentry.StatusOnDuty); err != nil {
				return err
			}

			leaveType := leave.Type(*req.LeaveType)
			reason := ""
			if req.LeaveReason != nil {
				reason = *req.LeaveReason
			}

			record, err := w.leaveService.Consume(ctx, leave.ConsumeRequest{
				EmployeeID: emp.ID,
				LeaveType:  leaveType,
				Days:       1,
				StartDate:  today,
				EndDate:    today,
				Reason:     reason,
			})
			if err != nil {
				return err
			}

			entry.LeaveType = &leaveType
			entry.LeaveReason = trimmed(req.LeaveReason)
			entry.LeaveRecordID = &record.ID
		}

		created, err := w.WorkEntryRepository.Create(ctx, entry)
		if err != nil {
			return err
		}
		resp = mapWorkEntryToResponse(created, emp.Category)
		return nil
	})
	if err != nil {
		return workentry.WorkEntryResponse{}, err
	}

	return resp, nil
}

func (w *WorkEntryServiceImpl) ensureNoEntry(ctx context.Context, employeeID string, date time.Time, status workentry.Status) error {
	exists, err := w.WorkEntryRepository.ExistsOnDate(ctx, employeeID, date, status)
	if err != nil {
		return fmt.Errorf("failed to check today's entries: %w", err)
	}
	if exists {
		return workentry.ErrConflictingStatusToday
	}
	return nil
}

// GetWorkEntry implements workentry.WorkEntryService.
func (w *WorkEntryServiceImpl) GetWorkEntry(ctx context.Context, req workentry.AccessRequest) (workentry.WorkEntryResponse, error) {
	entry, err := w.authorizedEntry(ctx, req)
	if err != nil {
		return workentry.WorkEntryResponse{}, err
	}

	emp, err := w.EmployeeRepository.GetByID(ctx, entry.EmployeeID)
	if err != nil {
		return workentry.WorkEntryResponse{}, err
	}

	return mapWorkEntryToResponse(entry, emp.Category), nil
}

// ListWorkEntries implements workentry.WorkEntryService.
func (w *WorkEntryServiceImpl) ListWorkEntries(ctx context.Context, filter workentry.WorkEntryFilter) (workentry.ListWorkEntryResponse, error) {
	if err := filter.Validate(); err != nil {
		return workentry.ListWorkEntryResponse{}, err
	}

	entries, total, err := w.WorkEntryRepository.List(ctx, filter)
	if err != nil {
		return workentry.ListWorkEntryResponse{}, fmt.Errorf("failed to list work entries: %w", err)
	}

	categories := make(map[string]employee.Category)
	responses := make([]workentry.WorkEntryResponse, 0, len(entries))
	for _, e := range entries {
		category, ok := categories[e.EmployeeID]
		if !ok {
			emp, err := w.EmployeeRepository.GetByID(ctx, e.EmployeeID)
			if err != nil {
				return workentry.ListWorkEntryResponse{}, err
			}
			category = emp.Category
			categories[e.EmployeeID] = category
		}
		responses = append(responses, mapWorkEntryToResponse(e, category))
	}

	return workentry.ListWorkEntryResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Entries:    responses,
	}, nil
}

// UpdateWorkEntry implements workentry.WorkEntryService.
func (w *WorkEntryServiceImpl) UpdateWorkEntry(ctx context.Context, req workentry.UpdateWorkEntryRequest) (workentry.WorkEntryResponse, error) {
	if err := req.Validate(); err != nil {
		return workentry.WorkEntryResponse{}, err
	}

	var resp workentry.WorkEntryResponse
	err := w.tx.WithinTx(ctx, func(ctx context.Context) error {
		entry, err := w.authorizedEntry(ctx, workentry.AccessRequest{
			ID:           req.ID,
			EmployeeID:   req.EmployeeID,
			IsPrivileged: req.IsPrivileged,
		})
		if err != nil {
			return err
		}

		if req.Status != nil && workentry.Status(strings.ToLower(strings.TrimSpace(*req.Status))) != entry.Status {
			return workentry.ErrStatusImmutable
		}
		if entry.Status == workentry.StatusLeave {
			return workentry.ErrLeaveEntryReadOnly
		}

		emp, err := w.EmployeeRepository.LockForUpdate(ctx, entry.EmployeeID)
		if err != nil {
			return err
		}

		if req.TaskTitle != nil {
			entry.TaskTitle = trimmed(req.TaskTitle)
		}
		if req.Description != nil {
			entry.Description = trimmed(req.Description)
		}
		if req.StartTime != nil {
			entry.StartTime = trimmed(req.StartTime)
		}
		if req.EndTime != nil {
			entry.EndTime = trimmed(req.EndTime)
		}
		if req.JobNo != nil {
			entry.JobNo = trimmed(req.JobNo)
		}
		if req.ShipName != nil {
			entry.ShipName = trimmed(req.ShipName)
		}
		if req.Location != nil {
			entry.Location = trimmed(req.Location)
		}

		if missing := workentry.MissingFields(emp.Category, entry); len(missing) > 0 {
			return &workentry.MissingFieldsError{Fields: missing}
		}

		updated, err := w.WorkEntryRepository.Update(ctx, entry)
		if err != nil {
			return err
		}
		resp = mapWorkEntryToResponse(updated, emp.Category)
		return nil
	})
	if err != nil {
		return workentry.WorkEntryResponse{}, err
	}

	return resp, nil
}

// DeleteWorkEntry implements workentry.WorkEntryService. Leave consumed by a
// leave entry stays consumed and its journal row stays in place.
func (w *WorkEntryServiceImpl) DeleteWorkEntry(ctx context.Context, req workentry.AccessRequest) error {
	return w.tx.WithinTx(ctx, func(ctx context.Context) error {
		entry, err := w.authorizedEntry(ctx, req)
		if err != nil {
			return err
		}
		return w.WorkEntryRepository.Delete(ctx, entry.ID)
	})
}

func (w *WorkEntryServiceImpl) authorizedEntry(ctx context.Context, req workentry.AccessRequest) (workentry.WorkEntry, error) {
	entry, err := w.WorkEntryRepository.GetByID(ctx, req.ID)
	if err != nil {
		return workentry.WorkEntry{}, err
	}
	if !req.IsPrivileged && entry.EmployeeID != req.EmployeeID {
		return workentry.WorkEntry{}, workentry.ErrNotOwner
	}
	return entry, nil
}

// trimmed returns nil for blank values so they count as missing.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func mapWorkEntryToResponse(e workentry.WorkEntry, category employee.Category) workentry.WorkEntryResponse {
	resp := workentry.WorkEntryResponse{
		ID:            e.ID,
		EmployeeID:    e.EmployeeID,
		Category:      string(category),
		SessionID:     e.SessionID,
		LeaveRecordID: e.LeaveRecordID,
		WorkDate:      workday.FormatDate(e.WorkDate),
		Status:        string(e.Status),
		TaskTitle:     e.TaskTitle,
		Description:   e.Description,
		StartTime:     e.StartTime,
		EndTime:       e.EndTime,
		JobNo:         e.JobNo,
		ShipName:      e.ShipName,
		Location:      e.Location,
		LeaveReason:   e.LeaveReason,
		CreatedAt:     e.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     e.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if e.LeaveType != nil {
		lt := string(*e.LeaveType)
		label := e.LeaveType.Label()
		resp.LeaveType = &lt
		resp.LeaveTypeLabel = &label
	}
	return resp
}

func NewWorkEntryService(
	tx database.Transactor,
	clock *workday.Clock,
	workEntryRepo workentry.WorkEntryRepository,
	sessionRepo attendance.SessionRepository,
	employeeRepo employee.EmployeeRepository,
	leaveService leave.LeaveService,
) workentry.WorkEntryService {
	return &WorkEntryServiceImpl{
		tx:                  tx,
		clock:               clock,
		WorkEntryRepository: workEntryRepo,
		SessionRepository:   sessionRepo,
		EmployeeRepository:  employeeRepo,
		leaveService:        leaveService,
	}
}
