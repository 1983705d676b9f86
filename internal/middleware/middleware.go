// Package middleware holds the global and route-level echo middleware:
// Clerk authentication with a public allow-list, request ids, request-scoped
// loggers, New Relic tracing, Prometheus metrics, rate limiting, and the
// global error handler.
package middleware
