package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/workentry"
)

type workEntryRepository struct {
	store *Store
}

func NewWorkEntryRepository(store *Store) workentry.WorkEntryRepository {
	return &workEntryRepository{store: store}
}

// Create implements workentry.WorkEntryRepository.
func (r *workEntryRepository) Create(ctx context.Context, entry workentry.WorkEntry) (workentry.WorkEntry, error) {
	defer r.store.lock(ctx)()

	if entry.Status == workentry.StatusLeave {
		for _, existing := range r.store.entries {
			if existing.EmployeeID == entry.EmployeeID && existing.Status == workentry.StatusLeave && existing.WorkDate.Equal(entry.WorkDate) {
				return workentry.WorkEntry{}, workentry.ErrConflictingStatusToday
			}
		}
	}

	id, err := newID()
	if err != nil {
		return workentry.WorkEntry{}, err
	}
	now := time.Now().UTC()
	entry.ID = id
	entry.CreatedAt = now
	entry.UpdatedAt = now
	r.store.entries[id] = entry
	return entry, nil
}

// GetByID implements workentry.WorkEntryRepository.
func (r *workEntryRepository) GetByID(ctx context.Context, id string) (workentry.WorkEntry, error) {
	defer r.store.lock(ctx)()

	e, ok := r.store.entries[id]
	if !ok {
		return workentry.WorkEntry{}, workentry.ErrWorkEntryNotFound
	}
	return e, nil
}

// Update implements workentry.WorkEntryRepository.
func (r *workEntryRepository) Update(ctx context.Context, entry workentry.WorkEntry) (workentry.WorkEntry, error) {
	defer r.store.lock(ctx)()

	current, ok := r.store.entries[entry.ID]
	if !ok {
		return workentry.WorkEntry{}, workentry.ErrWorkEntryNotFound
	}
	current.TaskTitle = entry.TaskTitle
	current.Description = entry.Description
	current.StartTime = entry.StartTime
	current.EndTime = entry.EndTime
	current.JobNo = entry.JobNo
	current.ShipName = entry.ShipName
	current.Location = entry.Location
	current.UpdatedAt = time.Now().UTC()
	r.store.entries[entry.ID] = current
	return current, nil
}

// Delete implements workentry.WorkEntryRepository.
func (r *workEntryRepository) Delete(ctx context.Context, id string) error {
	defer r.store.lock(ctx)()

	if _, ok := r.store.entries[id]; !ok {
		return workentry.ErrWorkEntryNotFound
	}
	delete(r.store.entries, id)
	return nil
}

// ExistsOnDate implements workentry.WorkEntryRepository.
func (r *workEntryRepository) ExistsOnDate(ctx context.Context, employeeID string, workDate time.Time, status workentry.Status) (bool, error) {
	defer r.store.lock(ctx)()

	for _, e := range r.store.entries {
		if e.EmployeeID == employeeID && e.Status == status && e.WorkDate.Equal(workDate) {
			return true, nil
		}
	}
	return false, nil
}

// List implements workentry.WorkEntryRepository.
func (r *workEntryRepository) List(ctx context.Context, filter workentry.WorkEntryFilter) ([]workentry.WorkEntry, int64, error) {
	defer r.store.lock(ctx)()

	start, end, err := dateBounds(filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, 0, err
	}

	matched := make([]workentry.WorkEntry, 0)
	for _, e := range r.store.entries {
		if filter.EmployeeID != nil && *filter.EmployeeID != "" && e.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && *filter.Status != "" && string(e.Status) != strings.ToLower(*filter.Status) {
			continue
		}
		if !withinDates(e.WorkDate, start, end) {
			continue
		}
		matched = append(matched, e)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].WorkDate.Equal(matched[j].WorkDate) {
			return matched[i].WorkDate.After(matched[j].WorkDate)
		}
		return newer(matched[i].CreatedAt, matched[i].ID, matched[j].CreatedAt, matched[j].ID)
	})

	return paginate(matched, filter.Page, filter.Limit), int64(len(matched)), nil
}
