package catalog

import (
	"fmt"
	"strings"
)

const (
	CodeLoadFailure     = "loadFailure"
	CodeParseFailure    = "parseFailure"
	CodeValidationError = "validationError"
)

// CatalogError is returned by catalog loading and mutation.
type CatalogError struct {
	Code    string
	Message string
	Err     error
}

var (
	ErrLoadFailure  = &CatalogError{Code: CodeLoadFailure}
	ErrParseFailure = &CatalogError{Code: CodeParseFailure}
	ErrValidation   = &CatalogError{Code: CodeValidationError}
)

func (e *CatalogError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

// Is matches on Code so errors.Is(err, ErrParseFailure) works for any
// parse failure.
func (e *CatalogError) Is(target error) bool {
	t, ok := target.(*CatalogError)
	return ok && t.Code == e.Code
}

func NewLoadError(msg string, err error) error {
	return &CatalogError{Code: CodeLoadFailure, Message: msg, Err: err}
}

func NewParseError(msg string, err error) error {
	return &CatalogError{Code: CodeParseFailure, Message: msg, Err: err}
}

func NewValidationError(problems []string) error {
	return &CatalogError{Code: CodeValidationError, Message: strings.Join(problems, "; ")}
}
