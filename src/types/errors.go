package types

import "errors"

// ErrorKind classifies failures for the HTTP boundary. Ownership
// violations deliberately share KindNotFound with missing entities so a
// non-participant cannot probe for existence.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindNotFound
	KindValidation
	KindConflict
)

type ApiError struct {
	Kind    ErrorKind
	Message string
}

func (e *ApiError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *ApiError {
	return &ApiError{Kind: KindNotFound, Message: message}
}

func NewValidationError(message string) *ApiError {
	return &ApiError{Kind: KindValidation, Message: message}
}

func NewConflictError(message string) *ApiError {
	return &ApiError{Kind: KindConflict, Message: message}
}

// KindOf reports the kind of err; anything unclassified is internal.
func KindOf(err error) ErrorKind {
	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindInternal
}
