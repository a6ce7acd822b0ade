// Package handler is the HTTP layer of the API.
//
// Handlers bind and validate requests through the validation package, call
// the services and write JSON responses. Errors are returned to the global
// error handler rather than written here.
package handler
