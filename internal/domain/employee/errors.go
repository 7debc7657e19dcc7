package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmpNoExists        = errors.New("employee number already exists")
	ErrEmployeeSuspended  = errors.New("employee is suspended")
	ErrAlreadySuspended   = errors.New("employee is already suspended")
	ErrNotSuspended       = errors.New("employee is not suspended")
	ErrPrivilegeRequired  = errors.New("administrator privilege required")
	ErrEmployeeIDRequired = errors.New("employee identity is missing")
)
