package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// CreateEmployee registers a new employee (privileged only)
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// GetEmployee retrieves a single employee by ID
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	// ListEmployees lists employees with filters
	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)

	// SuspendEmployee blocks new sessions, work entries and leave applications
	SuspendEmployee(ctx context.Context, req SuspensionRequest) (EmployeeResponse, error)

	// ReactivateEmployee lifts a suspension
	ReactivateEmployee(ctx context.Context, req SuspensionRequest) (EmployeeResponse, error)
}
