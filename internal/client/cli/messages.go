package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/senseandsay/internal/client/client"
	"github.com/dmitrijs2005/senseandsay/internal/common"
)

var errUsage = errors.New("usage")

// userMessage turns a command error into something a person can act on.
func userMessage(err error) string {
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		return "Wrong email or password."
	case errors.Is(err, client.ErrAlreadyExists):
		return "An account with this email already exists."
	case errors.Is(err, client.ErrReauthRequired):
		return "Please log in again to confirm."
	case errors.Is(err, client.ErrNotAuthenticated):
		return "Please log in first."
	case errors.Is(err, client.ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		return "The server is not reachable right now. Try again later."
	case errors.Is(err, client.ErrInvalidInput), errors.Is(err, common.ErrorValidation), errors.Is(err, errUsage):
		return err.Error()
	default:
		return "Something went wrong: " + err.Error()
	}
}
