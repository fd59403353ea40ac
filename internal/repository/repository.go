package repository

import "errors"

var (
	// ErrDuplicateID is returned when an id is inserted twice.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrDuplicateEmail is returned when a user email is already taken.
	ErrDuplicateEmail = errors.New("email already exists")
)
