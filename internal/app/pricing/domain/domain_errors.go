package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a domain error.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindConflict   ErrorKind = "conflict"
	KindNotFound   ErrorKind = "not_found"
)

// Kind sentinels, matched with errors.Is against any *Error of that kind.
var (
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
)

// Causes carried by validation errors.
var (
	ErrInvalidDateWindow      = errors.New("starts_at must not be after ends_at")
	ErrInvalidQuantityRange   = errors.New("min_quantity must not be greater than max_quantity")
	ErrInvalidQuantity        = errors.New("quantity must be positive")
	ErrEmptyPriceSetID        = errors.New("price set id must not be empty")
	ErrInvalidPriceListType   = errors.New("price list type must be sale or override")
	ErrInvalidPriceListStatus = errors.New("price list status must be active or draft")
	ErrPriceNotInPriceList    = errors.New("price does not belong to the price list")
)

// Error is the typed error returned by every pricing operation.
type Error struct {
	Kind    ErrorKind
	Message string
	// IDs names the offending entities, when known.
	IDs   []string
	cause error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrConflict:
		return e.Kind == KindConflict
	case ErrNotFound:
		return e.Kind == KindNotFound
	}
	return false
}

// NewValidationError builds a validation error with a formatted message.
func NewValidationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// ValidationFrom wraps cause as a validation error.
func ValidationFrom(cause error, ids ...string) *Error {
	return &Error{Kind: KindValidation, Message: cause.Error(), IDs: ids, cause: cause}
}

// NewConflictError builds a conflict error naming the clashing ids.
func NewConflictError(message string, ids ...string) *Error {
	return &Error{Kind: KindConflict, Message: message, IDs: ids}
}

// NewNotFoundError reports missing entities of one kind.
func NewNotFoundError(entity string, ids ...string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s with id(s) %s not found", entity, strings.Join(ids, ", ")),
		IDs:     ids,
	}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return "", false
}
