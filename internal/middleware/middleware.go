// Package middleware holds the global middleware of the API and its error
// handler.
//
// These intercept requests to handle cross-cutting concerns such as request
// correlation, logging, tracing, CORS, rate limiting and panic recovery.
package middleware
