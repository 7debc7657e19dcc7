package leave

import (
	"time"
)

// Type is the kind of leave a balance or record is kept for.
type Type string

const (
	TypeSick         Type = "sick"
	TypePersonal     Type = "personal"
	TypeAnnual       Type = "annual"
	TypeCompensatory Type = "compensatory"
)

var Types = []Type{TypeSick, TypePersonal, TypeAnnual, TypeCompensatory}

func (t Type) IsValid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

func (t Type) Label() string {
	switch t {
	case TypeSick:
		return "Sick Leave"
	case TypePersonal:
		return "Personal Leave"
	case TypeAnnual:
		return "Annual Leave"
	case TypeCompensatory:
		return "Compensatory Leave"
	}
	return string(t)
}

// Balance is the per-employee, per-leave-type counter. Used never exceeds
// TotalAllocated and neither goes below zero.
type Balance struct {
	ID             string
	EmployeeID     string
	LeaveType      Type
	TotalAllocated int
	Used           int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (b Balance) Remaining() int {
	return b.TotalAllocated - b.Used
}

// Record is an append-only journal row for an approved leave period.
type Record struct {
	ID         string
	EmployeeID string
	LeaveType  Type
	StartDate  time.Time
	EndDate    time.Time
	TotalDays  int
	Reason     string
	CreatedAt  time.Time
}

// Covers reports whether date falls inside the closed range of the record.
func (r Record) Covers(date time.Time) bool {
	return !date.Before(r.StartDate) && !date.After(r.EndDate)
}

// Overlaps reports whether [start, end] shares at least one day with the record.
func (r Record) Overlaps(start, end time.Time) bool {
	return !start.After(r.EndDate) && !end.Before(r.StartDate)
}

// InclusiveDays counts calendar days in [start, end]. Both bounds are dates
// encoded at midnight UTC.
func InclusiveDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

// MaxAllocation bounds a single allocation, in days.
const MaxAllocation = 366 * 100

// AdjustAction is the administrative operation applied to an allocation.
type AdjustAction string

const (
	AdjustAdd    AdjustAction = "add"
	AdjustDeduct AdjustAction = "deduct"
	AdjustSet    AdjustAction = "set"
)

func (a AdjustAction) IsValid() bool {
	switch a {
	case AdjustAdd, AdjustDeduct, AdjustSet:
		return true
	}
	return false
}

// Apply computes the new allocation for b. Deduct never drops the allocation
// below what is already used; set below usage is rejected.
func (a AdjustAction) Apply(b Balance, amount int) (int, error) {
	switch a {
	case AdjustAdd:
		if amount > MaxAllocation-b.TotalAllocated {
			return 0, ErrAllocationTooLarge
		}
		return b.TotalAllocated + amount, nil
	case AdjustDeduct:
		return max(b.TotalAllocated-amount, b.Used, 0), nil
	case AdjustSet:
		if amount > MaxAllocation {
			return 0, ErrAllocationTooLarge
		}
		if amount < b.Used {
			return 0, ErrAllocationBelowUsage
		}
		return amount, nil
	}
	return 0, ErrInvalidAdjustAction
}
