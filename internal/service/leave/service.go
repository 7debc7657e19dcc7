package leave

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/workentry"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/workday"
)

type LeaveServiceImpl struct {
	tx    database.Transactor
	clock *workday.Clock
	leave.BalanceRepository
	leave.RecordRepository
	employee.EmployeeRepository
	workentry.WorkEntryRepository
}

// Consume implements leave.LeaveService. The balance row stays locked from
// the sufficiency check until the journal row is written.
func (l *LeaveServiceImpl) Consume(ctx context.Context, req leave.ConsumeRequest) (leave.Record, error) {
	if err := req.Validate(); err != nil {
		return leave.Record{}, err
	}

	var record leave.Record
	err := l.tx.WithinTx(ctx, func(ctx context.Context) error {
		balance, err := l.BalanceRepository.GetForUpdate(ctx, req.EmployeeID, req.LeaveType)
		if err != nil {
			return err
		}
		if balance.Remaining() < req.Days {
			return leave.ErrInsufficientLeaveBalance
		}

		if err := l.BalanceRepository.IncrementUsed(ctx, balance.ID, req.Days); err != nil {
			return err
		}

		record, err = l.RecordRepository.Create(ctx, leave.Record{
			EmployeeID: req.EmployeeID,
			LeaveType:  req.LeaveType,
			StartDate:  req.StartDate,
			EndDate:    req.EndDate,
			TotalDays:  req.Days,
			Reason:     strings.TrimSpace(req.Reason),
		})
		if err != nil {
			return fmt.Errorf("failed to journal leave: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.Record{}, err
	}

	return record, nil
}

// AdjustAllocation implements leave.LeaveService.
func (l *LeaveServiceImpl) AdjustAllocation(ctx context.Context, req leave.AdjustBalanceRequest) (leave.BalanceResponse, error) {
	if !req.IsPrivileged {
		return leave.BalanceResponse{}, employee.ErrPrivilegeRequired
	}
	if err := req.Validate(); err != nil {
		return leave.BalanceResponse{}, err
	}

	leaveType := leave.Type(req.LeaveType)
	action := leave.AdjustAction(req.Action)

	var resp leave.BalanceResponse
	err := l.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := l.EmployeeRepository.LockForUpdate(ctx, req.EmployeeID); err != nil {
			return err
		}

		balance, err := l.BalanceRepository.GetForUpdate(ctx, req.EmployeeID, leaveType)
		if errors.Is(err, leave.ErrNoBalanceRecord) {
			total, err := action.Apply(leave.Balance{}, req.Amount)
			if err != nil {
				return err
			}
			created, err := l.BalanceRepository.Create(ctx, leave.Balance{
				EmployeeID:     req.EmployeeID,
				LeaveType:      leaveType,
				TotalAllocated: total,
			})
			if err != nil {
				return err
			}
			resp = mapBalanceToResponse(created)
			return nil
		}
		if err != nil {
			return err
		}

		total, err := action.Apply(balance, req.Amount)
		if err != nil {
			return err
		}
		if err := l.BalanceRepository.SetAllocation(ctx, balance.ID, total); err != nil {
			return err
		}
		balance.TotalAllocated = total
		resp = mapBalanceToResponse(balance)
		return nil
	})
	if err != nil {
		return leave.BalanceResponse{}, err
	}

	return resp, nil
}

// Remaining implements leave.LeaveService.
func (l *LeaveServiceImpl) Remaining(ctx context.Context, employeeID string, leaveType leave.Type) (int, error) {
	balance, err := l.BalanceRepository.Get(ctx, employeeID, leaveType)
	if err != nil {
		return 0, err
	}
	return balance.Remaining(), nil
}

// ListBalances implements leave.LeaveService.
func (l *LeaveServiceImpl) ListBalances(ctx context.Context, employeeID string) ([]leave.BalanceResponse, error) {
	if _, err := l.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	balances, err := l.BalanceRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}

	responses := make([]leave.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		responses = append(responses, mapBalanceToResponse(b))
	}
	return responses, nil
}

// ApplyLeave implements leave.LeaveService.
func (l *LeaveServiceImpl) ApplyLeave(ctx context.Context, req leave.ApplyLeaveRequest) (leave.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RecordResponse{}, err
	}

	startDate, _ := workday.ParseDate(req.StartDate)
	endDate, _ := workday.ParseDate(req.EndDate)
	if startDate.After(endDate) {
		return leave.RecordResponse{}, leave.ErrInvalidRange
	}

	today := l.clock.Today()
	if startDate.Before(today) {
		return leave.RecordResponse{}, leave.ErrPastDateNotAllowed
	}

	leaveType := leave.Type(req.LeaveType)
	totalDays := leave.InclusiveDays(startDate, endDate)

	var record leave.Record
	err := l.tx.WithinTx(ctx, func(ctx context.Context) error {
		emp, err := l.EmployeeRepository.LockForUpdate(ctx, req.EmployeeID)
		if err != nil {
			return err
		}
		if emp.IsSuspended {
			return employee.ErrEmployeeSuspended
		}

		balance, err := l.BalanceRepository.GetForUpdate(ctx, emp.ID, leaveType)
		if err != nil {
			return err
		}
		if balance.Used+totalDays > balance.TotalAllocated {
			return leave.ErrInsufficientLeaveBalance
		}

		overlapping, err := l.RecordRepository.ExistsOverlapping(ctx, emp.ID, startDate, endDate)
		if err != nil {
			return fmt.Errorf("failed to check overlapping leave: %w", err)
		}
		if overlapping {
			return leave.ErrOverlappingLeave
		}

		if !today.Before(startDate) && !today.After(endDate) {
			onDuty, err := l.WorkEntryRepository.ExistsOnDate(ctx, emp.ID, today, workentry.StatusOnDuty)
			if err != nil {
				return fmt.Errorf("failed to check today's entries: %w", err)
			}
			if onDuty {
				return workentry.ErrConflictingStatusToday
			}
		}

		record, err = l.Consume(ctx, leave.ConsumeRequest{
			EmployeeID: emp.ID,
			LeaveType:  leaveType,
			Days:       totalDays,
			StartDate:  startDate,
			EndDate:    endDate,
			Reason:     req.Reason,
		})
		return err
	})
	if err != nil {
		return leave.RecordResponse{}, err
	}

	return mapRecordToResponse(record), nil
}

// IsOnLeave implements leave.LeaveService.
func (l *LeaveServiceImpl) IsOnLeave(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	onLeave, err := l.RecordRepository.ExistsCovering(ctx, employeeID, date)
	if err != nil {
		return false, fmt.Errorf("failed to check leave records: %w", err)
	}
	return onLeave, nil
}

// ListLeaveRecords implements leave.LeaveService.
func (l *LeaveServiceImpl) ListLeaveRecords(ctx context.Context, employeeID string, filter leave.RecordFilter) ([]leave.RecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, err := l.RecordRepository.ListByEmployee(ctx, employeeID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave records: %w", err)
	}

	responses := make([]leave.RecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, mapRecordToResponse(r))
	}
	return responses, nil
}

func mapBalanceToResponse(b leave.Balance) leave.BalanceResponse {
	return leave.BalanceResponse{
		EmployeeID:     b.EmployeeID,
		LeaveType:      string(b.LeaveType),
		LeaveTypeLabel: b.LeaveType.Label(),
		TotalAllocated: b.TotalAllocated,
		Used:           b.Used,
		Remaining:      b.Remaining(),
	}
}

func mapRecordToResponse(r leave.Record) leave.RecordResponse {
	return leave.RecordResponse{
		ID:             r.ID,
		EmployeeID:     r.EmployeeID,
		LeaveType:      string(r.LeaveType),
		LeaveTypeLabel: r.LeaveType.Label(),
		StartDate:      workday.FormatDate(r.StartDate),
		EndDate:        workday.FormatDate(r.EndDate),
		TotalDays:      r.TotalDays,
		Reason:         r.Reason,
		CreatedAt:      r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func NewLeaveService(
	tx database.Transactor,
	clock *workday.Clock,
	balanceRepo leave.BalanceRepository,
	recordRepo leave.RecordRepository,
	employeeRepo employee.EmployeeRepository,
	workEntryRepo workentry.WorkEntryRepository,
) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:                  tx,
		clock:               clock,
		BalanceRepository:   balanceRepo,
		RecordRepository:    recordRepo,
		EmployeeRepository:  employeeRepo,
		WorkEntryRepository: workEntryRepo,
	}
}
