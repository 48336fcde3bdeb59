// Package errs provides standardized error types shared across the EcoLoop
// services. It implements a consistent pattern for error creation, formatting,
// and unwrapping used throughout the application.
//
// The package includes error types for the common failure scenarios:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value failed validation
//   - ValueIsOutOfRangeError: a numeric value is outside its bounds
//   - ObjectNotFoundError: an entity cannot be located
//   - ConflictError: a state transition lost to a concurrent competitor
//
// Each error type follows the same pattern:
//   - a sentinel error variable (e.g. ErrObjectNotFound)
//   - a struct type carrying the failure details
//   - constructor functions with and without a cause
//   - an Error() method for formatting
//   - an Unwrap() method so errors.Is can classify against the sentinel
//
// ConflictError deserves a note: order claiming is contended between
// collectors, so losing a claim is an expected business outcome. Handlers map
// it to a 4xx response instead of treating it as a fault.
package errs
