package catalog

import "github.com/kailas-cloud/catalog/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound      = domain.ErrNotFound
	ErrAlreadyExists = domain.ErrAlreadyExists
	ErrValidation    = domain.ErrValidation
	ErrPersistence   = domain.ErrPersistence
)

// ValidationError names the rejected query or item parameter.
// Use errors.As() to extract it.
type ValidationError = domain.ValidationError
