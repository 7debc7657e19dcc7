package workentry

import (
	"strings"
	"testing"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func onDutyRequest() SubmitWorkEntryRequest {
	return SubmitWorkEntryRequest{
		EmployeeID:  "emp",
		Status:      "on_duty",
		Description: strPtr("engine overhaul"),
		StartTime:   strPtr("08:00"),
		EndTime:     strPtr("17:00"),
		JobNo:       strPtr("J-1042"),
		ShipName:    strPtr("MV Aurora"),
		Location:    strPtr("Dry dock 3"),
	}
}

func TestSubmitWorkEntryRequest_FieldLimitsMatchColumns(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *SubmitWorkEntryRequest)
		invalid string
	}{
		{"location at limit", func(r *SubmitWorkEntryRequest) { r.Location = strPtr(strings.Repeat("d", 100)) }, ""},
		{"location over limit", func(r *SubmitWorkEntryRequest) { r.Location = strPtr(strings.Repeat("d", 101)) }, FieldLocation},
		{"job_no at limit", func(r *SubmitWorkEntryRequest) { r.JobNo = strPtr(strings.Repeat("9", 100)) }, ""},
		{"job_no over limit", func(r *SubmitWorkEntryRequest) { r.JobNo = strPtr(strings.Repeat("9", 101)) }, FieldJobNo},
		{"ship_name over limit", func(r *SubmitWorkEntryRequest) { r.ShipName = strPtr(strings.Repeat("s", 101)) }, FieldShipName},
		{"multibyte location counted in characters", func(r *SubmitWorkEntryRequest) { r.Location = strPtr(strings.Repeat("é", 100)) }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := onDutyRequest()
			tt.mutate(&req)

			err := req.Validate()
			if tt.invalid == "" {
				assert.NoError(t, err)
				return
			}

			var errs validator.ValidationErrors
			require.ErrorAs(t, err, &errs)
			assert.Contains(t, errs.ToMap(), tt.invalid)
		})
	}
}
