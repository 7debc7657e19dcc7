package workentry

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
)

// ========================================
// WORK ENTRY DTOs
// ========================================

type SubmitWorkEntryRequest struct {
	EmployeeID string `json:"-"`
	Status     string `json:"status"` // on_duty, leave

	// On duty
	TaskTitle   *string `json:"task_title,omitempty"`
	Description *string `json:"description,omitempty"`
	StartTime   *string `json:"start_time,omitempty"` // HH:MM or HH:MM:SS
	EndTime     *string `json:"end_time,omitempty"`
	JobNo       *string `json:"job_no,omitempty"`
	ShipName    *string `json:"ship_name,omitempty"`
	Location    *string `json:"location,omitempty"`

	// Leave
	LeaveType   *string `json:"leave_type,omitempty"`
	LeaveReason *string `json:"leave_reason,omitempty"`
}

func (r *SubmitWorkEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
	if !Status(r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: on_duty, leave",
		})
	}

	errs = append(errs, validateTaskFields(&r.StartTime, &r.EndTime, r.TaskTitle, r.Description, r.JobNo, r.ShipName, r.Location)...)

	if Status(r.Status) == StatusLeave {
		if r.LeaveType == nil || validator.IsEmpty(*r.LeaveType) {
			errs = append(errs, validator.ValidationError{
				Field:   "leave_type",
				Message: "leave_type is required for leave entries",
			})
		} else {
			lt := strings.ToLower(strings.TrimSpace(*r.LeaveType))
			r.LeaveType = &lt
			if !leave.Type(lt).IsValid() {
				errs = append(errs, validator.ValidationError{
					Field:   "leave_type",
					Message: "leave_type must be one of: sick, personal, annual, compensatory",
				})
			}
		}
		if r.LeaveReason != nil && len(*r.LeaveReason) > 1000 {
			errs = append(errs, validator.ValidationError{
				Field:   "leave_reason",
				Message: "leave_reason must not exceed 1000 characters",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateWorkEntryRequest patches the on-duty fields of an entry. Nil fields
// are left unchanged.
type UpdateWorkEntryRequest struct {
	ID           string `json:"-"`
	EmployeeID   string `json:"-"`
	IsPrivileged bool   `json:"-"`

	Status      *string `json:"status,omitempty"`
	TaskTitle   *string `json:"task_title,omitempty"`
	Description *string `json:"description,omitempty"`
	StartTime   *string `json:"start_time,omitempty"`
	EndTime     *string `json:"end_time,omitempty"`
	JobNo       *string `json:"job_no,omitempty"`
	ShipName    *string `json:"ship_name,omitempty"`
	Location    *string `json:"location,omitempty"`
}

func (r *UpdateWorkEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	errs = append(errs, validateTaskFields(&r.StartTime, &r.EndTime, r.TaskTitle, r.Description, r.JobNo, r.ShipName, r.Location)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// AccessRequest identifies an entry together with the actor reaching for it.
type AccessRequest struct {
	ID           string
	EmployeeID   string
	IsPrivileged bool
}

func validateTaskFields(startTime, endTime **string, taskTitle, description, jobNo, shipName, location *string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	for _, tf := range []struct {
		field string
		value **string
	}{
		{FieldStartTime, startTime},
		{FieldEndTime, endTime},
	} {
		if *tf.value == nil || validator.IsEmpty(**tf.value) {
			continue
		}
		normalized, ok := validator.NormalizeTimeOfDay(strings.TrimSpace(**tf.value))
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   tf.field,
				Message: tf.field + " must be in HH:MM or HH:MM:SS format",
			})
			continue
		}
		*tf.value = &normalized
	}

	// Limits follow the work_entries column widths, counted in characters.
	for _, lf := range []struct {
		field string
		value *string
		max   int
	}{
		{FieldTaskTitle, taskTitle, 200},
		{FieldDescription, description, 2000},
		{FieldJobNo, jobNo, 100},
		{FieldShipName, shipName, 100},
		{FieldLocation, location, 100},
	} {
		if lf.value != nil && utf8.RuneCountInString(*lf.value) > lf.max {
			errs = append(errs, validator.ValidationError{
				Field:   lf.field,
				Message: fmt.Sprintf("%s must not exceed %d characters", lf.field, lf.max),
			})
		}
	}

	return errs
}

type WorkEntryResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	Category       string  `json:"category,omitempty"`
	SessionID      *string `json:"session_id,omitempty"`
	LeaveRecordID  *string `json:"leave_record_id,omitempty"`
	WorkDate       string  `json:"work_date"`
	Status         string  `json:"status"`
	TaskTitle      *string `json:"task_title,omitempty"`
	Description    *string `json:"description,omitempty"`
	StartTime      *string `json:"start_time,omitempty"`
	EndTime        *string `json:"end_time,omitempty"`
	JobNo          *string `json:"job_no,omitempty"`
	ShipName       *string `json:"ship_name,omitempty"`
	Location       *string `json:"location,omitempty"`
	LeaveType      *string `json:"leave_type,omitempty"`
	LeaveTypeLabel *string `json:"leave_type_label,omitempty"`
	LeaveReason    *string `json:"leave_reason,omitempty"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

type WorkEntryFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *WorkEntryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Status != nil && *f.Status != "" && !Status(strings.ToLower(*f.Status)).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: on_duty, leave",
		})
	}

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

type ListWorkEntryResponse struct {
	TotalCount int64               `json:"total_count"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int                 `json:"total_pages"`
	Entries    []WorkEntryResponse `json:"entries"`
}
