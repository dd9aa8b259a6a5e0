package repository

import (
	"errors"
	"fmt"
)

// Typed failures surfaced to the service and API layers. Callers
// classify with errors.Is; anything else is an ErrStorage wrap.
var (
	ErrValidation         = errors.New("required field missing")
	ErrDuplicateCase      = errors.New("case number already exists for the selected location")
	ErrDuplicateDate      = errors.New("the upcoming date is already present in the previous dates list")
	ErrNotFound           = errors.New("record not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrDuplicateUser      = errors.New("username already exists")
	ErrStorage            = errors.New("storage failure")
)

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorage, op, err)
}
