// Package middleware stores the global middleware and the global error handler.
//
// These intercept requests to handle cross-cutting concerns
// such as request ids, request-scoped logging, tracing, CORS
// and panic recovery
package middleware
