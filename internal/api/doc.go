// Package api handles incoming HTTP requests, request validation and response
// formatting for the practice service. It translates HTTP concerns into
// practice session operations and maps service errors to status codes.
//
// Handlers never expose raw error text: MapErrorToStatusCode and
// GetSafeErrorMessage decide what the client sees, and the full error is
// redacted and logged.
package api
