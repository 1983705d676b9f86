// Package errs defines the error shapes returned to API clients.
//
// Every failure leaving the HTTP layer is rendered as an HTTPError, so the
// web client can rely on one JSON shape:
//
//	{"code":"BAD_REQUEST","message":"...","status":400,"override":false,"errors":[...],"action":null}
//
// FieldError carries per-field validation failures and Action carries an
// optional instruction for the client (e.g. redirect to sign-in).
package errs
