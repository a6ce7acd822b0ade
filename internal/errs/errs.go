// Package errs defines the error shapes returned to API clients.
//
// Every failure that leaves the service is an *HTTPError, serialized as a JSON
// object whose "error" field carries the human-readable message.
package errs
