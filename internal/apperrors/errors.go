package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrMalformattedData indicates a record whose declared type is inconsistent
// with its own payload. This is a data-integrity failure, not a user mistake;
// it aborts the build that encountered it.
var ErrMalformattedData = errors.New("malformatted data")

// ErrMissingCurrency indicates a posting referencing a currency absent from
// the currency collection. Well-formed data can never trigger it.
var ErrMissingCurrency = errors.New("missing currency")
