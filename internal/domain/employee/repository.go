package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	// LockForUpdate reads the employee and holds a row lock until the surrounding
	// transaction ends. It serializes every mutating action of one employee.
	LockForUpdate(ctx context.Context, id string) (Employee, error)
	ExistsByEmpNo(ctx context.Context, empNo string) (bool, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	SetSuspended(ctx context.Context, id string, suspended bool) error
}
