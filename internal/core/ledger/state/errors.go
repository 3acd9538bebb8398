package state

import "errors"

var (
	// ErrAccountExists is returned when inserting over an existing account
	ErrAccountExists = errors.New("account already exists")

	// ErrAccountNotFound is returned when updating an account that does not exist
	ErrAccountNotFound = errors.New("account not found")
)
