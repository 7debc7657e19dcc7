package app

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/config"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_MemoryDriver(t *testing.T) {
	cfg := &config.Config{
		Database: config.DatabaseConfig{Driver: config.StorageDriverMemory},
		App:      config.AppConfig{Timezone: "Asia/Kolkata"},
	}

	svcs, cleanup, err := Build(context.Background(), cfg)
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, "Asia/Kolkata", svcs.Clock.Location().String())

	created, err := svcs.Employee.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{
		EmpNo:        "EMP-001",
		FullName:     "Wired Employee",
		Category:     "B",
		IsPrivileged: true,
	})
	require.NoError(t, err)

	got, err := svcs.Employee.GetEmployee(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "EMP-001", got.EmpNo)
}

func TestBuild_UnknownDriver(t *testing.T) {
	cfg := &config.Config{
		Database: config.DatabaseConfig{Driver: "sqlite"},
		App:      config.AppConfig{Timezone: "UTC"},
	}

	_, _, err := Build(context.Background(), cfg)
	assert.Error(t, err)
}
