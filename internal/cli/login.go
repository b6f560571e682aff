package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/freddy-le-go/mockauth/internal/common"
)

// Login prompts for credentials and authenticates through the session store.
func (a *App) Login(ctx context.Context) error {
	userID, err := GetSimpleText(a.reader, "Enter user ID", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	defer common.WipeByteArray(password)

	rememberMe := GetConfirm(a.reader, "Remember me?", a.out)

	resp, err := a.session.Login(ctx, userID, string(password), rememberMe)
	if err != nil {
		fmt.Fprintf(a.out, "Login unsuccessful: %s\n", authMessage(err))
		return err
	}

	fmt.Fprintf(a.out, "%s. Welcome, %s!\n", resp.Message, resp.Data.User.FirstName)
	return nil
}

// Logout clears the session. Cleanup always succeeds locally even when the
// backend call fails.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// authMessage prefers the backend's user-facing message when available.
func authMessage(err error) string {
	var ae *common.AuthError
	if errors.As(err, &ae) {
		return ae.Message
	}
	return err.Error()
}
