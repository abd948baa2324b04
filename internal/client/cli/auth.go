package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/promogpt/promoctl/internal/client/api"
	"github.com/promogpt/promoctl/internal/client/session"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for account details and attempts to create the account.
// A successful registration logs the user in immediately, same as login.
func (a *App) Register(ctx context.Context) error {
	firstName, err := getSimpleText(a.reader, "Enter first name", a.out)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Enter last name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Enter phone (optional)", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	err = a.session.Register(ctx, api.RegisterRequest{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Phone:     phone,
		Password:  password,
	})
	if err != nil {
		a.printAuthError(err)
		return err
	}

	printlnFn("Welcome, " + firstName + "!")
	return nil
}

// Login prompts for credentials and tries to authenticate. Failures leave
// the session as it was; the reason is printed for the user.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.session.Login(ctx, email, password); err != nil {
		a.printAuthError(err)
		return err
	}

	printlnFn("Login successful")
	return nil
}

// Logout drops the session and the stored credentials. Safe to repeat.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	a.business = ""
	printlnFn("Logged out")
	return nil
}

// Whoami prints the authenticated user's record.
func (a *App) Whoami(ctx context.Context) error {
	if !a.requireAuth(ctx) {
		return nil
	}

	user := a.session.Current().User
	fmt.Fprintf(a.out, "%s <%s>\n", user.FullName(), user.Email)
	if user.Role != "" {
		fmt.Fprintf(a.out, "role: %s\n", user.Role)
	}
	return nil
}

func (a *App) printAuthError(err error) {
	var ve *api.ValidationError
	switch {
	case errors.Is(err, api.ErrInvalidCredentials):
		printlnFn("Invalid email or password.")
	case errors.Is(err, session.ErrBusy):
		printlnFn("Hold on, a previous attempt is still running.")
	case errors.As(err, &ve):
		printlnFn(ve.FirstMessage())
	case errors.Is(err, api.ErrUnavailable):
		printlnFn("Server unavailable, try again later.")
	default:
		printlnFn("Error:", err.Error())
	}
}
