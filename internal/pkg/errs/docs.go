// Package errs provides standardized error types for the fulfillment application.
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrValueIsRequired)
//   - A struct type carrying the error details
//   - Constructor functions with and without an underlying cause
//   - Error() for formatting and Unwrap() for errors.Is support
//
// Callers classify failures by matching the sentinel with errors.Is rather
// than comparing messages or concrete types.
package errs
