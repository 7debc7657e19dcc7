package employee

import (
	"testing"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEmployeeRequest_MobileFitsColumn(t *testing.T) {
	tests := []struct {
		mobile string
		valid  bool
	}{
		{"+919876543210", true},
		{"98765-43210", true},
		// 15 digits but 19 characters once separators are kept.
		{"+1 234-567-890-1234", false},
		{"12345", false},
	}

	for _, tt := range tests {
		t.Run(tt.mobile, func(t *testing.T) {
			mobile := tt.mobile
			req := CreateEmployeeRequest{EmpNo: "E-1", FullName: "Asha Rao", Category: "a", Mobile: &mobile}

			err := req.Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			var errs validator.ValidationErrors
			require.ErrorAs(t, err, &errs)
			assert.Contains(t, errs.ToMap(), "mobile")
		})
	}
}
