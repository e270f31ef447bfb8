package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/senseandsay/internal/client/client"
	"github.com/dmitrijs2005/senseandsay/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) readCredentials() (string, []byte, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

// Register asks for a name and credentials, creates the account and logs
// in.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "What should we call you?", a.out)
	if err != nil {
		return err
	}
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.services.Auth.Register(ctx, name, email, string(password)); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Account created. You are logged in.")
	return nil
}

// Login authenticates and merges the device's phrases with the account.
func (a *App) Login(ctx context.Context) error {
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.services.Auth.Login(ctx, email, string(password)); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged in. %d phrases on your board.\n", len(a.services.Phrases.Phrases()))
	return nil
}

// Logout forgets the session; the phrases stay on this device.
func (a *App) Logout(ctx context.Context) error {
	if err := a.services.Auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out. Your phrases stay on this device.")
	return nil
}

// DeleteAccount asks for confirmation and deletes the account. When the
// server wants a recent login it asks for the password and retries once.
func (a *App) DeleteAccount(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "Delete your account and all its data? Type 'yes' to confirm", a.out)
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	err = a.services.Auth.DeleteAccount(ctx)
	if errors.Is(err, client.ErrReauthRequired) {
		fmt.Fprintln(a.out, userMessage(err))
		password, perr := getPassword(a.out)
		if perr != nil {
			return perr
		}
		defer common.WipeByteArray(password)
		err = a.services.Auth.ReauthenticateAndDelete(ctx, string(password))
	}
	if err != nil {
		return err
	}

	a.services.Profiles.Reset()
	fmt.Fprintln(a.out, "Your account has been deleted.")
	return nil
}
