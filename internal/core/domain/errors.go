package domain

import "errors"

// Sentinel errors shared across services and mapped to HTTP statuses at the
// API boundary (see internal/api/error_handler.go).
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmployeeExists   = errors.New("employee already exists")
	// ErrInvalidAssignee signals an assigned_to value that does not
	// reference an existing employee at write time.
	ErrInvalidAssignee = errors.New("invalid employee id")

	ErrTaskNotFound = errors.New("task not found")

	ErrForbidden  = errors.New("access forbidden")
	ErrValidation = errors.New("validation failed")
	// ErrInvalidID signals a malformed object id in a path or filter.
	ErrInvalidID = errors.New("invalid id format")
)
