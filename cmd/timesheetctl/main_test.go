package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCLI() *cli {
	return &cli{cfg: &config.Config{
		Database: config.DatabaseConfig{Driver: config.StorageDriverMemory},
		JWT:      config.JWTConfig{Secret: "test-secret", AccessExpiration: "1h"},
		App:      config.AppConfig{Timezone: "UTC"},
	}}
}

func execute(t *testing.T, c *cli, args ...string) (string, error) {
	t.Helper()
	root := c.rootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestEmployeeAndBalanceCommands(t *testing.T) {
	c := newTestCLI()
	defer c.close()

	out, err := execute(t, c, "employee", "create", "--emp-no", "EMP-001", "--name", "Asha Rao", "--category", "a")
	require.NoError(t, err)

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.Equal(t, "A", created["category"])
	empID := created["id"].(string)

	_, err = execute(t, c, "balance", "adjust", "--employee", empID, "--type", "annual", "--action", "set", "--amount", "12")
	require.NoError(t, err)

	_, err = execute(t, c, "balance", "adjust", "--employee", empID, "--type", "annual", "--action", "deduct", "--amount", "2")
	require.NoError(t, err)

	out, err = execute(t, c, "balance", "show", empID)
	require.NoError(t, err)

	var balances []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &balances))
	require.Len(t, balances, 1)
	assert.EqualValues(t, 10, balances[0]["total_allocated"])
	assert.EqualValues(t, 10, balances[0]["remaining"])

	_, err = execute(t, c, "employee", "suspend", empID)
	require.NoError(t, err)

	_, err = execute(t, c, "employee", "suspend", empID)
	assert.Error(t, err)

	out, err = execute(t, c, "employee", "reactivate", empID)
	require.NoError(t, err)
	assert.Contains(t, out, `"is_suspended": false`)
}

func TestEmployeeCreate_RequiresFlags(t *testing.T) {
	c := newTestCLI()
	defer c.close()

	_, err := execute(t, c, "employee", "create", "--emp-no", "EMP-001")
	assert.Error(t, err)
}

func TestMigrate_RejectsMemoryDriver(t *testing.T) {
	c := newTestCLI()

	_, err := execute(t, c, "migrate")
	assert.Error(t, err)
}

func TestToken(t *testing.T) {
	c := newTestCLI()

	out, err := execute(t, c, "token", "--employee", "emp-1", "--admin")
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.NotEmpty(t, payload["access_token"])
	assert.NotEmpty(t, payload["expires_at"])
}
