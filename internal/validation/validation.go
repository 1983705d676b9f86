// Package validation binds request payloads and turns validator failures
// into field errors the client can display.
package validation
