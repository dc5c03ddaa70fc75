// Package repository contains data access logic separated from HTTP
// handlers. Sentinel errors let higher layers distinguish failure
// scenarios: ErrGuestNotFound maps to HTTP 404, ErrCodeExists signals
// that an explicit guest code collides with an existing one and maps
// to HTTP 409.
package repository

import "errors"

// ErrGuestNotFound is returned when a guest cannot be found by id,
// uuid or code.
var ErrGuestNotFound = errors.New("guest not found")

// ErrCodeExists is returned when creating a guest with an explicit
// code that is already assigned. The pre-existing record is left
// unmodified.
var ErrCodeExists = errors.New("code already exists")
