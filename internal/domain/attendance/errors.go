package attendance

import "errors"

// Attendance domain errors
var (
	ErrNoActiveSession       = errors.New("no active session found")
	ErrAlreadyOnLeaveToday   = errors.New("you are on leave today")
	ErrAlreadyCompletedToday = errors.New("today's session is already completed")
	ErrOpenSessionPending    = errors.New("a session from a previous day is still open; close it first")
	ErrSessionNotFound       = errors.New("attendance session not found")
	ErrSessionAlreadyOpen    = errors.New("an open session already exists for this employee")
	ErrDurationNotPersisted  = errors.New("session duration was not persisted")
)
