package attendance

import (
	"context"
	"time"
)

// SessionRepository defines data access methods for attendance sessions.
type SessionRepository interface {
	// Create inserts a new open session. It fails with ErrSessionAlreadyOpen when
	// the employee already has an open session or a session on the same work date.
	Create(ctx context.Context, session Session) (Session, error)

	GetByID(ctx context.Context, id string) (Session, error)

	// GetOpen returns the most recently created session without logout, or nil.
	GetOpen(ctx context.Context, employeeID string) (*Session, error)

	// GetByEmployeeAndDate returns the session of the given work date, or nil.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time) (*Session, error)

	// Close sets logout time and duration only while the session is still open.
	// It returns ErrNoActiveSession when no open row was updated.
	Close(ctx context.Context, id string, logoutTime time.Time, duration time.Duration) error

	List(ctx context.Context, filter SessionFilter) ([]Session, int64, error)
}
