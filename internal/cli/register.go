package cli

import (
	"context"
	"fmt"

	"github.com/freddy-le-go/mockauth/internal/common"
	"github.com/freddy-le-go/mockauth/internal/models"
)

// Register prompts for the registration form fields and creates an account.
// Success is an implicit login.
func (a *App) Register(ctx context.Context) error {
	var req models.RegisterRequest

	prompts := []struct {
		label string
		dst   *string
	}{
		{"Enter user ID", &req.UserID},
		{"Enter email", &req.Email},
		{"Enter first name", &req.FirstName},
		{"Enter last name", &req.LastName},
	}
	for _, p := range prompts {
		value, err := GetSimpleText(a.reader, p.label, a.out)
		if err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			return err
		}
		*p.dst = value
	}

	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	defer common.WipeByteArray(password)
	req.Password = string(password)

	rememberMe := GetConfirm(a.reader, "Remember me?", a.out)

	resp, err := a.session.Register(ctx, req, rememberMe)
	if err != nil {
		fmt.Fprintf(a.out, "Registration unsuccessful: %s\n", authMessage(err))
		return err
	}

	fmt.Fprintf(a.out, "%s. Welcome, %s!\n", resp.Message, resp.Data.User.FirstName)
	return nil
}
