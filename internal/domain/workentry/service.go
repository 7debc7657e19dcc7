package workentry

import "context"

// WorkEntryService guards the one-status-per-day rule for daily entries
type WorkEntryService interface {
	SubmitWorkEntry(ctx context.Context, req SubmitWorkEntryRequest) (WorkEntryResponse, error)
	GetWorkEntry(ctx context.Context, req AccessRequest) (WorkEntryResponse, error)
	ListWorkEntries(ctx context.Context, filter WorkEntryFilter) (ListWorkEntryResponse, error)
	UpdateWorkEntry(ctx context.Context, req UpdateWorkEntryRequest) (WorkEntryResponse, error)
	// DeleteWorkEntry removes the entry permanently. Consumed leave is not restored.
	DeleteWorkEntry(ctx context.Context, req AccessRequest) error
}
