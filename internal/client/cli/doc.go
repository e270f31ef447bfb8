// Package cli is the interactive Sense & Say client.
//
// It wires configuration, the local database, the server client and the
// client services, then runs a line-based REPL. Guests can build and speak
// phrases right away; logging in merges the device's phrases with the
// account's and keeps both in step from then on.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
