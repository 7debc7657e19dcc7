package employee

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() employee.EmployeeService {
	store := memory.NewStore()
	return NewEmployeeService(store, memory.NewEmployeeRepository(store))
}

func TestCreateEmployee(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	req := employee.CreateEmployeeRequest{
		EmpNo:       "EMP-001",
		FullName:    "  Meera Nair ",
		Mobile:      strPtr("+91 98450 12345"),
		Category:    "a",
		Designation: strPtr("Technician"),
	}

	_, err := svc.CreateEmployee(ctx, req)
	assert.ErrorIs(t, err, employee.ErrPrivilegeRequired)

	req.IsPrivileged = true
	created, err := svc.CreateEmployee(ctx, req)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Meera Nair", created.FullName)
	assert.Equal(t, "A", created.Category)
	assert.Equal(t, "Supervisor / Technician", created.CategoryLabel)
	assert.False(t, created.IsSuspended)
	assert.Nil(t, created.Department)

	_, err = svc.CreateEmployee(ctx, req)
	assert.ErrorIs(t, err, employee.ErrEmpNoExists)
}

func TestCreateEmployee_Validation(t *testing.T) {
	svc := newTestService()

	_, err := svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{
		EmpNo:        "bad emp no",
		Category:     "D",
		Mobile:       strPtr("12"),
		IsPrivileged: true,
	})

	var validationErrs validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrs))
	fields := validationErrs.ToMap()
	for _, f := range []string{"emp_no", "full_name", "category", "mobile"} {
		assert.Contains(t, fields, f)
	}
}

func TestSuspendAndReactivate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	created, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
		EmpNo: "EMP-002", FullName: "Arjun", Category: "B", IsPrivileged: true,
	})
	require.NoError(t, err)

	_, err = svc.SuspendEmployee(ctx, employee.SuspensionRequest{EmployeeID: created.ID})
	assert.ErrorIs(t, err, employee.ErrPrivilegeRequired)

	suspended, err := svc.SuspendEmployee(ctx, employee.SuspensionRequest{EmployeeID: created.ID, IsPrivileged: true})
	require.NoError(t, err)
	assert.True(t, suspended.IsSuspended)

	_, err = svc.SuspendEmployee(ctx, employee.SuspensionRequest{EmployeeID: created.ID, IsPrivileged: true})
	assert.ErrorIs(t, err, employee.ErrAlreadySuspended)

	reactivated, err := svc.ReactivateEmployee(ctx, employee.SuspensionRequest{EmployeeID: created.ID, IsPrivileged: true})
	require.NoError(t, err)
	assert.False(t, reactivated.IsSuspended)

	_, err = svc.ReactivateEmployee(ctx, employee.SuspensionRequest{EmployeeID: created.ID, IsPrivileged: true})
	assert.ErrorIs(t, err, employee.ErrNotSuspended)

	_, err = svc.SuspendEmployee(ctx, employee.SuspensionRequest{EmployeeID: "missing", IsPrivileged: true})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestListEmployees(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	for _, c := range []struct{ empNo, category string }{
		{"EMP-010", "A"}, {"EMP-011", "B"}, {"EMP-012", "A"}, {"EMP-013", "C"},
	} {
		_, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
			EmpNo: c.empNo, FullName: "Employee " + c.empNo, Category: c.category, IsPrivileged: true,
		})
		require.NoError(t, err)
	}

	category := "a"
	list, err := svc.ListEmployees(ctx, employee.EmployeeFilter{Category: &category})
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.TotalCount)
	require.Len(t, list.Employees, 2)
	assert.Equal(t, "EMP-010", list.Employees[0].EmpNo)
	assert.Equal(t, "EMP-012", list.Employees[1].EmpNo)

	list, err = svc.ListEmployees(ctx, employee.EmployeeFilter{Page: 2, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(4), list.TotalCount)
	assert.Equal(t, 2, list.TotalPages)
	require.Len(t, list.Employees, 1)
	assert.Equal(t, "EMP-013", list.Employees[0].EmpNo)
}

func strPtr(s string) *string { return &s }
