// Package cli implements the interactive demo client: a small REPL that
// drives the session store the way the browser forms drove the original
// application.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/freddy-le-go/mockauth/internal/config"
	"github.com/freddy-le-go/mockauth/internal/models"
	"github.com/freddy-le-go/mockauth/internal/session"
)

// ProfileAPI is the slice of the backend the profile screens use directly,
// bypassing the session store the way the original profile composables did.
type ProfileAPI interface {
	GetProfile(ctx context.Context, userID string) (*models.APIResponse[models.User], error)
	GetUserStats(ctx context.Context, userID string) (*models.APIResponse[models.UserStats], error)
	UploadAvatar(ctx context.Context, userID string) (*models.APIResponse[models.AvatarData], error)
	DeleteAvatar(ctx context.Context, userID string) (*models.APIResponse[models.LogoutData], error)
}

type App struct {
	config  *config.Config
	session *session.Store
	profile ProfileAPI
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(cfg *config.Config, store *session.Store, profile ProfileAPI) *App {
	return &App{
		config:  cfg,
		session: store,
		profile: profile,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// Run restores any previous session from the cookie jar and starts the REPL.
func (a *App) Run(ctx context.Context) {
	a.session.LoadFromCookie(ctx)
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) getStatus() string {
	if user := a.session.User(); user != nil {
		return "(" + user.UserID + ")"
	}
	return ""
}
