package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance sessions
type AttendanceService interface {
	// OpenSession starts today's session or resumes it when it is still open
	OpenSession(ctx context.Context, req OpenSessionRequest) (SessionResponse, error)

	// CloseSession closes the open session and returns the stored duration
	CloseSession(ctx context.Context, req CloseSessionRequest) (SessionResponse, error)

	// QueryOpenSession returns the open session without side effects, nil if none
	QueryOpenSession(ctx context.Context, employeeID string) (*SessionResponse, error)

	// GetSession retrieves a single session by ID
	GetSession(ctx context.Context, id string) (SessionResponse, error)

	// ListSessions lists sessions with filters (admin)
	ListSessions(ctx context.Context, filter SessionFilter) (ListSessionResponse, error)
}
