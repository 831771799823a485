package catalog

import (
	"errors"

	"github.com/axd-platform/catalog/application/service"
	"github.com/axd-platform/catalog/internal/database"
)

// Exported errors for library consumers.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = database.ErrNotFound

	// ErrValidation indicates malformed input.
	ErrValidation = service.ErrValidation

	// ErrConflict indicates the operation clashes with existing state.
	ErrConflict = service.ErrConflict

	// ErrPrincipalRequired indicates an operation that needs a known caller.
	ErrPrincipalRequired = service.ErrPrincipalRequired

	// ErrNoDatabase indicates no database was configured.
	ErrNoDatabase = errors.New("catalog: no database configured")

	// ErrClientClosed indicates the client has been closed.
	ErrClientClosed = errors.New("catalog: client is closed")
)
