package workentry

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrCannotActWhileOnLeave  = errors.New("cannot submit a work entry while on leave")
	ErrConflictingStatusToday = errors.New("an entry with a different status already exists today")
	ErrMissingRequiredFields  = errors.New("required fields are missing")
	ErrWorkEntryNotFound      = errors.New("work entry not found")
	ErrStatusImmutable        = errors.New("status of a work entry cannot be changed")
	ErrLeaveEntryReadOnly     = errors.New("leave entries cannot be edited")
	ErrNotOwner               = errors.New("work entry belongs to another employee")
)

// MissingFieldsError lists the required fields an on-duty entry lacks.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingRequiredFields.Error(), strings.Join(e.Fields, ", "))
}

func (e *MissingFieldsError) Is(target error) bool {
	return target == ErrMissingRequiredFields
}
