// Package services is the client's application layer: session handling,
// profile preferences, and the phrase list with its reconciliation against
// the account.
package services

// Identity is all the phrase and profile services know about the session.
type Identity interface {
	IsAuthenticated() bool
	UserID() string
}
