package workentry

import (
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/leave"
)

// Status is the single status an employee may hold for a calendar day.
type Status string

const (
	StatusOnDuty Status = "on_duty"
	StatusLeave  Status = "leave"
)

func (s Status) IsValid() bool {
	return s == StatusOnDuty || s == StatusLeave
}

// WorkEntry is the daily record of either on-duty task details or a leave
// declaration. On-duty entries point at the session of their day, leave
// entries at the journal row they created.
type WorkEntry struct {
	ID            string
	EmployeeID    string
	SessionID     *string
	LeaveRecordID *string
	WorkDate      time.Time
	Status        Status

	// On duty
	TaskTitle   *string
	Description *string
	StartTime   *string // HH:MM:SS
	EndTime     *string // HH:MM:SS
	JobNo       *string
	ShipName    *string
	Location    *string

	// Leave
	LeaveType   *leave.Type
	LeaveReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Field returns the value of an on-duty field by its wire name.
func (e WorkEntry) Field(name string) *string {
	switch name {
	case FieldTaskTitle:
		return e.TaskTitle
	case FieldDescription:
		return e.Description
	case FieldStartTime:
		return e.StartTime
	case FieldEndTime:
		return e.EndTime
	case FieldJobNo:
		return e.JobNo
	case FieldShipName:
		return e.ShipName
	case FieldLocation:
		return e.Location
	}
	return nil
}
