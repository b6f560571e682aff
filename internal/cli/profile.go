package cli

import (
	"context"
	"fmt"

	"github.com/freddy-le-go/mockauth/internal/models"
)

// readProfilePatch collects the edit form. Only answered fields become part
// of the patch; an empty answer keeps the stored value.
func (a *App) readProfilePatch() (*models.UpdateProfileRequest, error) {
	patch := &models.UpdateProfileRequest{}

	fields := []struct {
		label string
		dst   **string
	}{
		{"Salutation (empty to keep)", &patch.Salutation},
		{"First name (empty to keep)", &patch.FirstName},
		{"Last name (empty to keep)", &patch.LastName},
		{"Email (empty to keep)", &patch.Email},
		{"Bio (empty to keep)", &patch.Bio},
	}
	for _, f := range fields {
		answer, err := GetSimpleText(a.reader, f.label, a.out)
		if err != nil {
			return nil, err
		}
		if answer != "" {
			value := answer
			*f.dst = &value
		}
	}
	return patch, nil
}

// Whoami prints the authenticated user's handle.
func (a *App) Whoami(ctx context.Context) error {
	user := a.session.User()
	if user == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(a.out, "%s (%s %s, %s)\n", user.UserID, user.FirstName, user.LastName, user.Email)
	return nil
}

// Profile fetches and prints the full profile plus activity counters.
func (a *App) Profile(ctx context.Context) error {
	user := a.session.User()
	if user == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}

	resp, err := a.profile.GetProfile(ctx, user.UserID)
	if err != nil {
		fmt.Fprintf(a.out, "error: %s\n", authMessage(err))
		return err
	}
	p := resp.Data
	fmt.Fprintf(a.out, "User ID:    %s\n", p.UserID)
	fmt.Fprintf(a.out, "Name:       %s %s %s\n", p.Salutation, p.FirstName, p.LastName)
	fmt.Fprintf(a.out, "Email:      %s\n", p.Email)
	if p.Bio != "" {
		fmt.Fprintf(a.out, "Bio:        %s\n", p.Bio)
	}
	if p.Avatar != "" {
		fmt.Fprintf(a.out, "Avatar:     %s\n", p.Avatar)
	}

	stats, err := a.profile.GetUserStats(ctx, user.UserID)
	if err != nil {
		fmt.Fprintf(a.out, "error: %s\n", authMessage(err))
		return err
	}
	fmt.Fprintf(a.out, "Posts: %d  Followers: %d  Following: %d\n",
		stats.Data.PostsCount, stats.Data.FollowersCount, stats.Data.FollowingCount)
	return nil
}

// EditProfile prompts for new field values and applies a partial update.
// Empty answers leave the field unchanged.
func (a *App) EditProfile(ctx context.Context) error {
	user := a.session.User()
	if user == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}

	patch, err := a.readProfilePatch()
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	resp, err := a.session.UpdateUser(ctx, *patch)
	if err != nil {
		fmt.Fprintf(a.out, "Update unsuccessful: %s\n", authMessage(err))
		return err
	}
	// The session may have been cleared while the form was being filled in;
	// UpdateUser answers nil, nil for an anonymous store.
	if resp == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(a.out, "%s\n", resp.Message)
	return nil
}

// Avatar uploads a new generated avatar, or removes the current one when the
// user asks for removal.
func (a *App) Avatar(ctx context.Context) error {
	user := a.session.User()
	if user == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}

	if GetConfirm(a.reader, "Remove current avatar instead of uploading?", a.out) {
		resp, err := a.profile.DeleteAvatar(ctx, user.UserID)
		if err != nil {
			fmt.Fprintf(a.out, "error: %s\n", authMessage(err))
			return err
		}
		fmt.Fprintln(a.out, resp.Data.Message)
		return nil
	}

	resp, err := a.profile.UploadAvatar(ctx, user.UserID)
	if err != nil {
		fmt.Fprintf(a.out, "error: %s\n", authMessage(err))
		return err
	}
	fmt.Fprintf(a.out, "New avatar: %s\n", resp.Data.AvatarURL)
	return nil
}
