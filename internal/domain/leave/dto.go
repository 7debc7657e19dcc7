package leave

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
)

// ConsumeRequest draws Days from the (EmployeeID, LeaveType) balance and
// journals the period [StartDate, EndDate] in the same transaction.
type ConsumeRequest struct {
	EmployeeID string
	LeaveType  Type
	Days       int
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
}

func (r *ConsumeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !r.LeaveType.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of: sick, personal, annual, compensatory",
		})
	}

	if r.Days <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "days",
			Message: "days must be greater than 0",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	if r.StartDate.After(r.EndDate) {
		return ErrInvalidRange
	}

	return nil
}

type ApplyLeaveRequest struct {
	EmployeeID string `json:"-"`
	LeaveType  string `json:"leave_type"`
	StartDate  string `json:"start_date"` // YYYY-MM-DD
	EndDate    string `json:"end_date"`   // YYYY-MM-DD
	Reason     string `json:"reason"`
}

func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	r.LeaveType = strings.ToLower(strings.TrimSpace(r.LeaveType))
	if !Type(r.LeaveType).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of: sick, personal, annual, compensatory",
		})
	}

	if _, valid := validator.IsValidDate(r.StartDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	if _, valid := validator.IsValidDate(r.EndDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if len(r.Reason) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AdjustBalanceRequest struct {
	EmployeeID   string `json:"employee_id"`
	LeaveType    string `json:"leave_type"`
	Action       string `json:"action"` // add, deduct, set
	Amount       int    `json:"amount"`
	IsPrivileged bool   `json:"-"`
}

func (r *AdjustBalanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	r.LeaveType = strings.ToLower(strings.TrimSpace(r.LeaveType))
	if !Type(r.LeaveType).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of: sick, personal, annual, compensatory",
		})
	}

	r.Action = strings.ToLower(strings.TrimSpace(r.Action))
	if !AdjustAction(r.Action).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action must be one of: add, deduct, set",
		})
	}

	if r.Amount < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must not be negative",
		})
	} else if r.Amount > MaxAllocation {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: fmt.Sprintf("amount must not exceed %d", MaxAllocation),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BalanceResponse struct {
	EmployeeID     string `json:"employee_id"`
	LeaveType      string `json:"leave_type"`
	LeaveTypeLabel string `json:"leave_type_label"`
	TotalAllocated int    `json:"total_allocated"`
	Used           int    `json:"used"`
	Remaining      int    `json:"remaining"`
}

type RecordResponse struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employee_id"`
	LeaveType      string `json:"leave_type"`
	LeaveTypeLabel string `json:"leave_type_label"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	TotalDays      int    `json:"total_days"`
	Reason         string `json:"reason"`
	CreatedAt      string `json:"created_at"`
}

type RecordFilter struct {
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD
}

func (f *RecordFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveStatusResponse struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	OnLeave    bool   `json:"on_leave"`
}
