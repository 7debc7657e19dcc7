package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkedDuration_IndependentOfZone(t *testing.T) {
	dubai, err := time.LoadLocation("Asia/Dubai")
	require.NoError(t, err)

	loginUTC := time.Date(2024, 6, 10, 4, 0, 0, 0, time.UTC)
	logoutUTC := time.Date(2024, 6, 10, 12, 30, 15, 0, time.UTC)

	want := 8*time.Hour + 30*time.Minute + 15*time.Second
	assert.Equal(t, want, WorkedDuration(loginUTC, logoutUTC))
	assert.Equal(t, want, WorkedDuration(loginUTC.In(dubai), logoutUTC))
	assert.Equal(t, want, WorkedDuration(loginUTC, logoutUTC.In(dubai)))
	assert.Equal(t, want, WorkedDuration(loginUTC.In(dubai), logoutUTC.In(dubai)))
}

func TestWorkedDuration_NeverNegative(t *testing.T) {
	now := time.Now()
	assert.Equal(t, time.Duration(0), WorkedDuration(now, now.Add(-time.Minute)))
}

func TestOpenSessionRequest_NormalizesSelectedTime(t *testing.T) {
	selected := "08:30"
	req := OpenSessionRequest{EmployeeID: "emp", SelectedTime: &selected}
	require.NoError(t, req.Validate())
	require.NotNil(t, req.SelectedTime)
	assert.Equal(t, "08:30:00", *req.SelectedTime)

	bad := "half past eight"
	req = OpenSessionRequest{EmployeeID: "emp", SelectedTime: &bad}
	assert.Error(t, req.Validate())

	blank := " "
	req = OpenSessionRequest{EmployeeID: "emp", SelectedTime: &blank}
	require.NoError(t, req.Validate())
	assert.Nil(t, req.SelectedTime)
}
