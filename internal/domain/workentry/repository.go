package workentry

import (
	"context"
	"time"
)

type WorkEntryRepository interface {
	Create(ctx context.Context, entry WorkEntry) (WorkEntry, error)
	GetByID(ctx context.Context, id string) (WorkEntry, error)
	// Update rewrites the on-duty fields of the entry.
	Update(ctx context.Context, entry WorkEntry) (WorkEntry, error)
	Delete(ctx context.Context, id string) error
	ExistsOnDate(ctx context.Context, employeeID string, workDate time.Time, status Status) (bool, error)
	List(ctx context.Context, filter WorkEntryFilter) ([]WorkEntry, int64, error)
}
