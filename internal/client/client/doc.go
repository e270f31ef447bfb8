// Package client talks to the Sense & Say server.
//
// GRPCClient wraps the DocumentStore stub: it attaches the access token to
// every call, refreshes it once when the server reports it expired, applies
// a per-call timeout and maps gRPC status codes to the sentinel errors of
// this package (ErrUnavailable, ErrUnauthorized, ErrAlreadyExists,
// ErrReauthRequired, ErrNotFound, ErrInvalidInput). Calls that need an
// account fail fast with ErrNotAuthenticated when no session is set.
//
// InitDatabase opens the local SQLite database and applies the embedded
// goose migrations.
package client
