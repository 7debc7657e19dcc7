package employee

import (
	"time"
)

type Employee struct {
	ID          string
	EmpNo       string
	FullName    string
	Mobile      *string
	Category    Category
	Designation *string
	Department  *string
	IsSuspended bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Category decides which work-entry fields are mandatory for the employee.
type Category string

const (
	CategoryA Category = "A" // Supervisor / Technician (field staff)
	CategoryB Category = "B" // Office Staff
	CategoryC Category = "C" // Manager / Coordinator / Marketing
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryA, CategoryB, CategoryC:
		return true
	}
	return false
}

func (c Category) Label() string {
	switch c {
	case CategoryA:
		return "Supervisor / Technician"
	case CategoryB:
		return "Office Staff"
	case CategoryC:
		return "Manager / Coordinator / Marketing"
	}
	return ""
}
