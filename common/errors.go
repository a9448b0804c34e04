package common

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the core. Each serving module owns exactly one
// adapter that turns these into an HTTP-facing response.
var (
	ErrSessionExpired    = errors.New("session expired")
	ErrCSRFInvalid       = fmt.Errorf("csrf invalid: %w", ErrSessionExpired)
	ErrAccessDeactivated = errors.New("access deactivated")
	ErrAccessDenied      = errors.New("access denied")
	ErrSlugTaken         = errors.New("slug already in use")
	ErrEmailTaken        = errors.New("email already registered")
	ErrNotFound          = errors.New("not found")
	ErrSetupDone         = errors.New("setup already completed")
	ErrTemplateNotFound  = errors.New("template not found")
)

// SchemaError reports an entity that failed its field invariants. Fatal at the
// point of construction, never silently coerced.
type SchemaError struct {
	Entity string
	Detail string
}

func (e *SchemaError) Error() string {
	return "invalid " + e.Entity + ": " + e.Detail
}
