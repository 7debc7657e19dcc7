package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const employeeColumns = `id, emp_no, full_name, mobile, category, designation, department, is_suspended, created_at, updated_at`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.EmpNo, &emp.FullName, &emp.Mobile, &emp.Category,
		&emp.Designation, &emp.Department, &emp.IsSuspended, &emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	id, err := newID()
	if err != nil {
		return employee.Employee{}, err
	}

	query := `
		INSERT INTO employees (
			id, emp_no, full_name, mobile, category, designation, department, is_suspended
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		id,
		newEmployee.EmpNo,
		newEmployee.FullName,
		newEmployee.Mobile,
		newEmployee.Category,
		newEmployee.Designation,
		newEmployee.Department,
		newEmployee.IsSuspended,
	))
	if err != nil {
		if isUniqueViolation(err, "employees_emp_no_key") {
			return employee.Employee{}, employee.ErrEmpNoExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return e.get(ctx, id, "")
}

// LockForUpdate implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) LockForUpdate(ctx context.Context, id string) (employee.Employee, error) {
	return e.get(ctx, id, "FOR UPDATE")
}

func (e *employeeRepositoryImpl) get(ctx context.Context, id string, lock string) (employee.Employee, error) {
	if !isUUID(id) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1 ` + lock

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id %s: %w", id, err)
	}
	return emp, nil
}

// ExistsByEmpNo implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ExistsByEmpNo(ctx context.Context, empNo string) (bool, error) {
	q := GetQuerier(ctx, e.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM employees WHERE emp_no = $1)`, empNo).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check emp_no: %w", err)
	}
	return exists, nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, e.db)

	baseWhere := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.Category != nil && *filter.Category != "" {
		baseWhere += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, strings.ToUpper(*filter.Category))
		argIdx++
	}

	if filter.Suspended != nil {
		baseWhere += fmt.Sprintf(" AND is_suspended = $%d", argIdx)
		args = append(args, *filter.Suspended)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE `+baseWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM employees
		WHERE %s
		ORDER BY emp_no ASC
		LIMIT $%d OFFSET $%d
	`, employeeColumns, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := max(filter.Page, 1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

// SetSuspended implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) SetSuspended(ctx context.Context, id string, suspended bool) error {
	if !isUUID(id) {
		return employee.ErrEmployeeNotFound
	}
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET is_suspended = $1, updated_at = NOW()
		WHERE id = $2
	`
	commandTag, err := q.Exec(ctx, query, suspended, id)
	if err != nil {
		return fmt.Errorf("failed to update suspension of employee %s: %w", id, err)
	}
	if commandTag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
