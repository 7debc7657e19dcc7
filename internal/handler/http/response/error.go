package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/workentry"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
)

var (
	ErrInvalidToken      = errors.New("invalid or missing access token")
	ErrEmployeeClaimless = errors.New("employee_id not found in token")
	ErrForeignResource   = errors.New("resource belongs to another employee")
)

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// errorTable is checked in order; the first errors.Is match wins.
var errorTable = []errorMapping{
	// Auth
	{ErrInvalidToken, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or missing access token"},
	{ErrEmployeeClaimless, http.StatusForbidden, "FORBIDDEN", "Employee ID not found in token"},
	{ErrForeignResource, http.StatusForbidden, "FORBIDDEN", "Resource belongs to another employee"},

	// Employee domain errors
	{employee.ErrEmployeeNotFound, http.StatusNotFound, "NOT_FOUND", "Employee not found"},
	{employee.ErrEmpNoExists, http.StatusConflict, "EMP_NO_EXISTS", "Employee number already exists"},
	{employee.ErrEmployeeSuspended, http.StatusForbidden, "EMPLOYEE_SUSPENDED", "Employee is suspended"},
	{employee.ErrAlreadySuspended, http.StatusConflict, "ALREADY_SUSPENDED", "Employee is already suspended"},
	{employee.ErrNotSuspended, http.StatusConflict, "NOT_SUSPENDED", "Employee is not suspended"},
	{employee.ErrPrivilegeRequired, http.StatusForbidden, "FORBIDDEN", "Administrator privilege required"},
	{employee.ErrEmployeeIDRequired, http.StatusForbidden, "FORBIDDEN", "Employee ID not found in token"},

	// Attendance domain errors
	{attendance.ErrNoActiveSession, http.StatusConflict, "NO_ACTIVE_SESSION", "No active session found"},
	{attendance.ErrAlreadyOnLeaveToday, http.StatusConflict, "ALREADY_ON_LEAVE_TODAY", "You are on leave today"},
	{attendance.ErrAlreadyCompletedToday, http.StatusConflict, "ALREADY_COMPLETED_TODAY", "Today's session is already completed"},
	{attendance.ErrOpenSessionPending, http.StatusConflict, "OPEN_SESSION_PENDING", "A session from a previous day is still open"},
	{attendance.ErrSessionAlreadyOpen, http.StatusConflict, "SESSION_ALREADY_OPEN", "An open session already exists"},
	{attendance.ErrSessionNotFound, http.StatusNotFound, "NOT_FOUND", "Attendance session not found"},

	// Work entry domain errors
	{workentry.ErrCannotActWhileOnLeave, http.StatusConflict, "ALREADY_ON_LEAVE_TODAY", "Cannot submit a work entry while on leave"},
	{workentry.ErrConflictingStatusToday, http.StatusConflict, "CONFLICTING_STATUS_TODAY", "An entry with a different status already exists today"},
	{workentry.ErrWorkEntryNotFound, http.StatusNotFound, "NOT_FOUND", "Work entry not found"},
	{workentry.ErrStatusImmutable, http.StatusBadRequest, "STATUS_IMMUTABLE", "Status of a work entry cannot be changed"},
	{workentry.ErrLeaveEntryReadOnly, http.StatusConflict, "LEAVE_ENTRY_READ_ONLY", "Leave entries cannot be edited"},
	{workentry.ErrNotOwner, http.StatusForbidden, "FORBIDDEN", "Work entry belongs to another employee"},

	// Leave domain errors
	{leave.ErrNoBalanceRecord, http.StatusNotFound, "NO_BALANCE_RECORD", "No leave balance record for this leave type"},
	{leave.ErrInsufficientLeaveBalance, http.StatusConflict, "INSUFFICIENT_LEAVE_BALANCE", "Insufficient leave balance"},
	{leave.ErrInvalidRange, http.StatusBadRequest, "INVALID_RANGE", "start_date must not be after end_date"},
	{leave.ErrPastDateNotAllowed, http.StatusBadRequest, "PAST_DATE_NOT_ALLOWED", "Leave cannot start in the past"},
	{leave.ErrOverlappingLeave, http.StatusConflict, "OVERLAPPING_LEAVE", "Leave overlaps an existing leave record"},
	{leave.ErrAllocationBelowUsage, http.StatusConflict, "ALLOCATION_BELOW_USAGE", "Allocation cannot be set below the days already used"},
	{leave.ErrAllocationTooLarge, http.StatusConflict, "ALLOCATION_TOO_LARGE", "Allocation would exceed the maximum allowed"},
	{leave.ErrInvalidAdjustAction, http.StatusBadRequest, "BAD_REQUEST", "Action must be one of add, deduct, set"},
	{leave.ErrLeaveRecordNotFound, http.StatusNotFound, "NOT_FOUND", "Leave record not found"},
}

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var missing *workentry.MissingFieldsError
	if errors.As(err, &missing) {
		Fail(w, http.StatusUnprocessableEntity, ErrorDetail{
			Code:    "MISSING_REQUIRED_FIELDS",
			Message: "Required fields are missing",
			Fields:  missing.Fields,
		})
		return
	}

	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			Fail(w, m.status, ErrorDetail{
				Code:    m.code,
				Message: m.message,
			})
			return
		}
	}

	slog.Error("unhandled error", "error", err)
	InternalServerError(w, "An unexpected error occurred")
}
