package employee

import (
	"strings"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	EmpNo        string  `json:"emp_no"`
	FullName     string  `json:"full_name"`
	Mobile       *string `json:"mobile,omitempty"`
	Category     string  `json:"category"`
	Designation  *string `json:"designation,omitempty"`
	Department   *string `json:"department,omitempty"`
	IsPrivileged bool    `json:"-"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmpNo) {
		errs = append(errs, validator.ValidationError{
			Field:   "emp_no",
			Message: "emp_no is required",
		})
	} else if !validator.IsValidEmpNo(r.EmpNo) {
		errs = append(errs, validator.ValidationError{
			Field:   "emp_no",
			Message: "emp_no may contain letters, digits, '.', '_', '/', '-' (max 50)",
		})
	}

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	} else if len(r.FullName) > 150 {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not exceed 150 characters",
		})
	}

	r.Category = strings.ToUpper(strings.TrimSpace(r.Category))
	if !Category(r.Category).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category must be one of: A, B, C",
		})
	}

	if r.Mobile != nil && *r.Mobile != "" && (len(*r.Mobile) > 15 || !validator.IsValidMobile(*r.Mobile)) {
		errs = append(errs, validator.ValidationError{
			Field:   "mobile",
			Message: "mobile must be 7-15 digits and at most 15 characters",
		})
	}

	if r.Designation != nil && len(*r.Designation) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "designation",
			Message: "designation must not exceed 100 characters",
		})
	}

	if r.Department != nil && len(*r.Department) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department must not exceed 100 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// SuspensionRequest is used for both suspend and reactivate.
type SuspensionRequest struct {
	EmployeeID   string `json:"-"`
	IsPrivileged bool   `json:"-"`
}

type EmployeeResponse struct {
	ID            string  `json:"id"`
	EmpNo         string  `json:"emp_no"`
	FullName      string  `json:"full_name"`
	Mobile        *string `json:"mobile,omitempty"`
	Category      string  `json:"category"`
	CategoryLabel string  `json:"category_label"`
	Designation   *string `json:"designation,omitempty"`
	Department    *string `json:"department,omitempty"`
	IsSuspended   bool    `json:"is_suspended"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

type EmployeeFilter struct {
	Category  *string `json:"category,omitempty"`
	Suspended *bool   `json:"suspended,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *EmployeeFilter) Validate() error {
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

	if f.Category != nil && !Category(strings.ToUpper(*f.Category)).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category must be one of: A, B, C",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Employees  []EmployeeResponse `json:"employees"`
}
