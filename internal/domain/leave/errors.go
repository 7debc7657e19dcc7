package leave

import "errors"

var (
	ErrNoBalanceRecord          = errors.New("no leave balance record for this leave type")
	ErrInsufficientLeaveBalance = errors.New("insufficient leave balance")
	ErrInvalidRange             = errors.New("start_date must not be after end_date")
	ErrPastDateNotAllowed       = errors.New("leave cannot start in the past")
	ErrOverlappingLeave         = errors.New("leave overlaps an existing leave record")
	ErrAllocationBelowUsage     = errors.New("allocation cannot be set below the days already used")
	ErrInvalidAdjustAction      = errors.New("action must be one of add, deduct, set")
	ErrAllocationTooLarge       = errors.New("allocation would exceed the maximum allowed")
	ErrLeaveRecordNotFound      = errors.New("leave record not found")
)
