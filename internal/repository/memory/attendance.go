package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/workday"
)

type sessionRepository struct {
	store *Store
}

func NewAttendanceRepository(store *Store) attendance.SessionRepository {
	return &sessionRepository{store: store}
}

// Create implements attendance.SessionRepository. It enforces the same unique
// keys as the PostgreSQL schema: one open session per employee and one
// session per employee and work date.
func (r *sessionRepository) Create(ctx context.Context, session attendance.Session) (attendance.Session, error) {
	defer r.store.lock(ctx)()

	for _, existing := range r.store.sessions {
		if existing.EmployeeID != session.EmployeeID {
			continue
		}
		if existing.IsOpen() || existing.WorkDate.Equal(session.WorkDate) {
			return attendance.Session{}, attendance.ErrSessionAlreadyOpen
		}
	}

	id, err := newID()
	if err != nil {
		return attendance.Session{}, err
	}
	now := time.Now().UTC()
	session.ID = id
	session.LogoutTime = nil
	session.Duration = nil
	session.CreatedAt = now
	session.UpdatedAt = now
	r.store.sessions[id] = session
	return session, nil
}

// GetByID implements attendance.SessionRepository.
func (r *sessionRepository) GetByID(ctx context.Context, id string) (attendance.Session, error) {
	defer r.store.lock(ctx)()

	s, ok := r.store.sessions[id]
	if !ok {
		return attendance.Session{}, attendance.ErrSessionNotFound
	}
	return s, nil
}

// GetOpen implements attendance.SessionRepository.
func (r *sessionRepository) GetOpen(ctx context.Context, employeeID string) (*attendance.Session, error) {
	defer r.store.lock(ctx)()

	var open *attendance.Session
	for _, s := range r.store.sessions {
		if s.EmployeeID != employeeID || !s.IsOpen() {
			continue
		}
		if open == nil || newer(s.CreatedAt, s.ID, open.CreatedAt, open.ID) {
			s := s
			open = &s
		}
	}
	return open, nil
}

// GetByEmployeeAndDate implements attendance.SessionRepository.
func (r *sessionRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time) (*attendance.Session, error) {
	defer r.store.lock(ctx)()

	for _, s := range r.store.sessions {
		if s.EmployeeID == employeeID && s.WorkDate.Equal(workDate) {
			return &s, nil
		}
	}
	return nil, nil
}

// Close implements attendance.SessionRepository.
func (r *sessionRepository) Close(ctx context.Context, id string, logoutTime time.Time, duration time.Duration) error {
	defer r.store.lock(ctx)()

	s, ok := r.store.sessions[id]
	if !ok || !s.IsOpen() {
		return attendance.ErrNoActiveSession
	}
	logout := logoutTime.UTC()
	d := duration.Truncate(time.Second)
	s.LogoutTime = &logout
	s.Duration = &d
	s.UpdatedAt = time.Now().UTC()
	r.store.sessions[id] = s
	return nil
}

// List implements attendance.SessionRepository.
func (r *sessionRepository) List(ctx context.Context, filter attendance.SessionFilter) ([]attendance.Session, int64, error) {
	defer r.store.lock(ctx)()

	start, end, err := dateBounds(filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, 0, err
	}

	matched := make([]attendance.Session, 0)
	for _, s := range r.store.sessions {
		if filter.EmployeeID != nil && *filter.EmployeeID != "" && s.EmployeeID != *filter.EmployeeID {
			continue
		}
		if !withinDates(s.WorkDate, start, end) {
			continue
		}
		if filter.OpenOnly && !s.IsOpen() {
			continue
		}
		matched = append(matched, s)
	}

	asc := strings.ToLower(filter.SortOrder) == "asc"
	sort.Slice(matched, func(i, j int) bool {
		if asc {
			return matched[i].LoginTime.Before(matched[j].LoginTime)
		}
		return matched[i].LoginTime.After(matched[j].LoginTime)
	})

	return paginate(matched, filter.Page, filter.Limit), int64(len(matched)), nil
}

func newer(at time.Time, id string, thanAt time.Time, thanID string) bool {
	if !at.Equal(thanAt) {
		return at.After(thanAt)
	}
	return id > thanID
}

// dateBounds parses optional YYYY-MM-DD filter bounds. Nil means unbounded.
func dateBounds(startDate, endDate *string) (*time.Time, *time.Time, error) {
	var start, end *time.Time
	if startDate != nil && *startDate != "" {
		d, err := workday.ParseDate(*startDate)
		if err != nil {
			return nil, nil, err
		}
		start = &d
	}
	if endDate != nil && *endDate != "" {
		d, err := workday.ParseDate(*endDate)
		if err != nil {
			return nil, nil, err
		}
		end = &d
	}
	return start, end, nil
}

func withinDates(date time.Time, start, end *time.Time) bool {
	if start != nil && date.Before(*start) {
		return false
	}
	if end != nil && date.After(*end) {
		return false
	}
	return true
}
