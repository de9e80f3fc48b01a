package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInvalidOverrideKey indicates an override key that is not "row:column" or names an unknown row or column.
var ErrInvalidOverrideKey = errors.New("invalid override key")
