package parser

import "errors"

// Parse errors: the provider response carried no usable JSON payload.
var (
	ErrNoJSONFound   = errors.New("no JSON object found in response")
	ErrInvalidSyntax = errors.New("response JSON has invalid syntax")
)

// Validation errors: the payload parsed but is not a publishable draft.
// Each condition is distinct so callers can report exactly what was wrong.
var (
	ErrMissingTitle    = errors.New("missing or invalid title")
	ErrMissingContent  = errors.New("missing or invalid content")
	ErrMissingExcerpt  = errors.New("missing or invalid excerpt")
	ErrContentTooShort = errors.New("content too short")
)
