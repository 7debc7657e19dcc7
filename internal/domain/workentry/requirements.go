package workentry

import (
	"strings"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
)

// Wire names of the on-duty fields.
const (
	FieldTaskTitle   = "task_title"
	FieldDescription = "description"
	FieldStartTime   = "start_time"
	FieldEndTime     = "end_time"
	FieldJobNo       = "job_no"
	FieldShipName    = "ship_name"
	FieldLocation    = "location"
)

var baseRequiredFields = []string{FieldStartTime, FieldEndTime, FieldDescription}

// RequiredFields maps an employee category to the fields an on-duty entry
// must carry. Field staff also report the job, the ship or site and where
// the work happened.
var RequiredFields = map[employee.Category][]string{
	employee.CategoryA: {FieldStartTime, FieldEndTime, FieldDescription, FieldShipName, FieldJobNo, FieldLocation},
	employee.CategoryB: baseRequiredFields,
	employee.CategoryC: baseRequiredFields,
}

// MissingFields returns the required fields of category that are blank in
// entry, in table order. Unknown categories get the base set.
func MissingFields(category employee.Category, entry WorkEntry) []string {
	required, ok := RequiredFields[category]
	if !ok {
		required = baseRequiredFields
	}

	var missing []string
	for _, name := range required {
		v := entry.Field(name)
		if v == nil || strings.TrimSpace(*v) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}
