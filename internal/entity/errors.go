package entity

import (
	"errors"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicateNumber = errors.New("invoice number already exists")
	ErrValidation      = errors.New("validation failed")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrSaveInProgress  = errors.New("save already in progress")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)
