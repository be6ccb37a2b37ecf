package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValueIsRequired       = errors.New("value is required")
	ErrValueIsInvalid        = errors.New("value is invalid")
	ErrValueIsOutOfRange     = errors.New("value is out of range")
	ErrObjectNotFound        = errors.New("object not found")
	ErrConflict              = errors.New("conflict")
	ErrDownstreamUnavailable = errors.New("downstream unavailable")
	ErrPartialFailure        = errors.New("partial failure")
)

// IsValidation reports whether err belongs to the validation family of errors.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsOutOfRange)
}

func unwrap(sentinel, cause error) []error {
	if cause == nil {
		return []error{sentinel}
	}
	return []error{sentinel, cause}
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %s)", msg, sanitize(cause.Error()))
}

func sanitize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() []error {
	return unwrap(ErrValueIsRequired, e.Cause)
}

type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() []error {
	return unwrap(ErrValueIsInvalid, e.Cause)
}

type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %v, min value is %v, max value is %v",
		ErrValueIsOutOfRange, e.ParamName, sanitize(fmt.Sprint(e.Value)), e.Min, e.Max)
	return withCause(msg, e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() []error {
	return unwrap(ErrValueIsOutOfRange, e.Cause)
}

type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	return withCause(fmt.Sprintf("%s: %s %v", ErrObjectNotFound, e.ParamName, e.ID), e.Cause)
}

func (e *ObjectNotFoundError) Unwrap() []error {
	return unwrap(ErrObjectNotFound, e.Cause)
}

type ConflictError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewConflictError(paramName string, id any) *ConflictError {
	return &ConflictError{ParamName: paramName, ID: id}
}

func NewConflictErrorWithCause(paramName string, id any, cause error) *ConflictError {
	return &ConflictError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ConflictError) Error() string {
	return withCause(fmt.Sprintf("%s: %s %v already exists", ErrConflict, e.ParamName, e.ID), e.Cause)
}

func (e *ConflictError) Unwrap() []error {
	return unwrap(ErrConflict, e.Cause)
}

// DownstreamUnavailableError means a collaborator gave no answer at all.
// It is distinct from a collaborator rejecting the request.
type DownstreamUnavailableError struct {
	Service string
	Cause   error
}

func NewDownstreamUnavailableError(service string) *DownstreamUnavailableError {
	return &DownstreamUnavailableError{Service: service}
}

func NewDownstreamUnavailableErrorWithCause(service string, cause error) *DownstreamUnavailableError {
	return &DownstreamUnavailableError{Service: service, Cause: cause}
}

func (e *DownstreamUnavailableError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrDownstreamUnavailable, e.Service), e.Cause)
}

func (e *DownstreamUnavailableError) Unwrap() []error {
	return unwrap(ErrDownstreamUnavailable, e.Cause)
}

// PartialFailureError reports that the local write for OrderID was committed
// but the side effect named by Operation failed. Cause holds the downstream error.
type PartialFailureError struct {
	Operation string
	OrderID   any
	Cause     error
}

func NewPartialFailureError(operation string, orderID any, cause error) *PartialFailureError {
	return &PartialFailureError{Operation: operation, OrderID: orderID, Cause: cause}
}

func (e *PartialFailureError) Error() string {
	msg := fmt.Sprintf("%s: order %v was updated but %s failed", ErrPartialFailure, e.OrderID, e.Operation)
	return withCause(msg, e.Cause)
}

func (e *PartialFailureError) Unwrap() []error {
	return unwrap(ErrPartialFailure, e.Cause)
}
