package employee

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
)

type EmployeeServiceImpl struct {
	tx database.Transactor
	employee.EmployeeRepository
}

func NewEmployeeService(tx database.Transactor, employeeRepository employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		tx:                 tx,
		EmployeeRepository: employeeRepository,
	}
}

// CreateEmployee implements employee.EmployeeService.
func (e *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if !req.IsPrivileged {
		return employee.EmployeeResponse{}, employee.ErrPrivilegeRequired
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	empNo := strings.TrimSpace(req.EmpNo)
	exists, err := e.EmployeeRepository.ExistsByEmpNo(ctx, empNo)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check emp_no: %w", err)
	}
	if exists {
		return employee.EmployeeResponse{}, employee.ErrEmpNoExists
	}

	created, err := e.EmployeeRepository.Create(ctx, employee.Employee{
		EmpNo:       empNo,
		FullName:    strings.TrimSpace(req.FullName),
		Mobile:      optional(req.Mobile),
		Category:    employee.Category(req.Category),
		Designation: optional(req.Designation),
		Department:  optional(req.Department),
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return mapEmployeeToResponse(created), nil
}

// GetEmployee implements employee.EmployeeService.
func (e *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := e.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapEmployeeToResponse(emp), nil
}

// ListEmployees implements employee.EmployeeService.
func (e *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, total, err := e.EmployeeRepository.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, mapEmployeeToResponse(emp))
	}

	return employee.ListEmployeeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Employees:  responses,
	}, nil
}

// SuspendEmployee implements employee.EmployeeService.
func (e *EmployeeServiceImpl) SuspendEmployee(ctx context.Context, req employee.SuspensionRequest) (employee.EmployeeResponse, error) {
	return e.setSuspended(ctx, req, true)
}

// ReactivateEmployee implements employee.EmployeeService.
func (e *EmployeeServiceImpl) ReactivateEmployee(ctx context.Context, req employee.SuspensionRequest) (employee.EmployeeResponse, error) {
	return e.setSuspended(ctx, req, false)
}

func (e *EmployeeServiceImpl) setSuspended(ctx context.Context, req employee.SuspensionRequest, suspended bool) (employee.EmployeeResponse, error) {
	if !req.IsPrivileged {
		return employee.EmployeeResponse{}, employee.ErrPrivilegeRequired
	}

	var resp employee.EmployeeResponse
	err := e.tx.WithinTx(ctx, func(ctx context.Context) error {
		emp, err := e.EmployeeRepository.LockForUpdate(ctx, req.EmployeeID)
		if err != nil {
			return err
		}
		if emp.IsSuspended == suspended {
			if suspended {
				return employee.ErrAlreadySuspended
			}
			return employee.ErrNotSuspended
		}

		if err := e.EmployeeRepository.SetSuspended(ctx, emp.ID, suspended); err != nil {
			return err
		}

		emp.IsSuspended = suspended
		emp.UpdatedAt = time.Now().UTC()
		resp = mapEmployeeToResponse(emp)
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return resp, nil
}

func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func mapEmployeeToResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:            emp.ID,
		EmpNo:         emp.EmpNo,
		FullName:      emp.FullName,
		Mobile:        emp.Mobile,
		Category:      string(emp.Category),
		CategoryLabel: emp.Category.Label(),
		Designation:   emp.Designation,
		Department:    emp.Department,
		IsSuspended:   emp.IsSuspended,
		CreatedAt:     emp.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     emp.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
