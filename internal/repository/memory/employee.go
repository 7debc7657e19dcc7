package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
)

type employeeRepository struct {
	store *Store
}

func NewEmployeeRepository(store *Store) employee.EmployeeRepository {
	return &employeeRepository{store: store}
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	defer r.store.lock(ctx)()

	for _, existing := range r.store.employees {
		if existing.EmpNo == newEmployee.EmpNo {
			return employee.Employee{}, employee.ErrEmpNoExists
		}
	}

	id, err := newID()
	if err != nil {
		return employee.Employee{}, err
	}
	now := time.Now().UTC()
	newEmployee.ID = id
	newEmployee.CreatedAt = now
	newEmployee.UpdatedAt = now
	r.store.employees[id] = newEmployee
	return newEmployee, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	defer r.store.lock(ctx)()

	emp, ok := r.store.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

// LockForUpdate implements employee.EmployeeRepository. Inside a transaction
// the store mutex is already held.
func (r *employeeRepository) LockForUpdate(ctx context.Context, id string) (employee.Employee, error) {
	return r.GetByID(ctx, id)
}

// ExistsByEmpNo implements employee.EmployeeRepository.
func (r *employeeRepository) ExistsByEmpNo(ctx context.Context, empNo string) (bool, error) {
	defer r.store.lock(ctx)()

	for _, existing := range r.store.employees {
		if existing.EmpNo == empNo {
			return true, nil
		}
	}
	return false, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepository) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	defer r.store.lock(ctx)()

	matched := make([]employee.Employee, 0)
	for _, emp := range r.store.employees {
		if filter.Category != nil && *filter.Category != "" && string(emp.Category) != strings.ToUpper(*filter.Category) {
			continue
		}
		if filter.Suspended != nil && emp.IsSuspended != *filter.Suspended {
			continue
		}
		matched = append(matched, emp)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].EmpNo < matched[j].EmpNo })

	return paginate(matched, filter.Page, filter.Limit), int64(len(matched)), nil
}

// SetSuspended implements employee.EmployeeRepository.
func (r *employeeRepository) SetSuspended(ctx context.Context, id string, suspended bool) error {
	defer r.store.lock(ctx)()

	emp, ok := r.store.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.IsSuspended = suspended
	emp.UpdatedAt = time.Now().UTC()
	r.store.employees[id] = emp
	return nil
}
