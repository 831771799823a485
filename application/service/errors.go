package service

import "errors"

// ErrValidation indicates malformed input.
var ErrValidation = errors.New("validation failed")

// ErrConflict indicates the operation clashes with existing state.
var ErrConflict = errors.New("conflict")

// ErrPrincipalRequired indicates an operation that needs a known caller.
var ErrPrincipalRequired = errors.New("principal required")
