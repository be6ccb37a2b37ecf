// Package errs provides standardized error types for the order orchestrator.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers the error taxonomy of the service:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: validation failures,
//     rejected before any write
//   - ObjectNotFoundError: a referenced order, restaurant or delivery does not exist
//   - ConflictError: a write collided with existing state (e.g. a second delivery for one order)
//   - DownstreamUnavailableError: a collaborator did not answer (timeout, refused, DNS)
//   - PartialFailureError: the local write succeeded but a required downstream side effect failed
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() returning the sentinel and, when present, the cause, so that
//     errors.Is and errors.As see through wrapped downstream errors
package errs
