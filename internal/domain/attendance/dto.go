package attendance

import (
	"strings"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
)

// ========================================
// SESSION DTOs
// ========================================

type OpenSessionRequest struct {
	EmployeeID   string  `json:"-"`
	SelectedTime *string `json:"selected_time,omitempty"` // HH:MM or HH:MM:SS
}

func (r *OpenSessionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.SelectedTime != nil {
		if validator.IsEmpty(*r.SelectedTime) {
			r.SelectedTime = nil
		} else if normalized, ok := validator.NormalizeTimeOfDay(strings.TrimSpace(*r.SelectedTime)); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "selected_time",
				Message: "selected_time must be in HH:MM or HH:MM:SS format",
			})
		} else {
			r.SelectedTime = &normalized
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CloseSessionRequest struct {
	EmployeeID string `json:"-"`
}

func (r *CloseSessionRequest) Validate() error {
	if validator.IsEmpty(r.EmployeeID) {
		return validator.ValidationErrors{{
			Field:   "employee_id",
			Message: "employee_id is required",
		}}
	}
	return nil
}

type SessionResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	WorkDate        string  `json:"work_date"`
	LoginTime       string  `json:"login_time"`
	SelectedTime    *string `json:"selected_time,omitempty"`
	LogoutTime      *string `json:"logout_time,omitempty"`
	DurationSeconds *int64  `json:"duration_seconds,omitempty"`
	Duration        *string `json:"duration,omitempty"`
	IsOpen          bool    `json:"is_open"`
	Resumed         bool    `json:"resumed,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

type SessionFilter struct {
	// Search & Filter
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	OpenOnly   bool    `json:"open_only,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortOrder string `json:"sort_order"` // asc, desc (by login_time)
}

func (f *SessionFilter) Validate() error {
	var errs validator.ValidationErrors

	// Page validation
	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	// Limit validation
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

	if f.SortOrder != "" {
		f.SortOrder = strings.ToLower(f.SortOrder)
		if !validator.IsInSlice(f.SortOrder, []string{"asc", "desc"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "desc" // Default descending (newest first)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListSessionResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Showing    string            `json:"showing"`
	Sessions   []SessionResponse `json:"sessions"`
}
