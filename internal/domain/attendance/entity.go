package attendance

import (
	"time"
)

// Session is one login-to-logout attendance window of an employee on a work date.
type Session struct {
	ID           string
	EmployeeID   string
	WorkDate     time.Time
	LoginTime    time.Time
	SelectedTime *string // declared shift time, HH:MM:SS
	LogoutTime   *time.Time
	Duration     *time.Duration
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (s Session) IsOpen() bool {
	return s.LogoutTime == nil
}

// WorkedDuration returns logout - login with both bounds normalized to UTC,
// so the result does not depend on the zone either instant was recorded in.
// Durations are truncated to whole seconds, the resolution they are stored at.
func WorkedDuration(login, logout time.Time) time.Duration {
	d := logout.UTC().Sub(login.UTC())
	if d < 0 {
		return 0
	}
	return d.Truncate(time.Second)
}
