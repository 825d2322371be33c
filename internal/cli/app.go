// Package cli is the interactive front end of the portfolio client: a
// small REPL covering the auth, profile, and education screens of the
// original app.
package cli

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/aimandesu/portfolio-mobile/internal/api"
	"github.com/aimandesu/portfolio-mobile/internal/config"
	"github.com/aimandesu/portfolio-mobile/internal/education"
	"github.com/aimandesu/portfolio-mobile/internal/logging"
	"github.com/aimandesu/portfolio-mobile/internal/schema"
	"github.com/aimandesu/portfolio-mobile/internal/session"
	"github.com/aimandesu/portfolio-mobile/internal/session/storage"
)

// sessionStore is the slice of the session store the CLI needs; the
// concrete *session.Store satisfies it.
type sessionStore interface {
	Hydrate(ctx context.Context) error
	Ready() <-chan struct{}
	Profile() *schema.Profile
	Token() string
	Signup(ctx context.Context, username, name, email, password, confirmation string) error
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, p *schema.Profile) error
	UploadImage(ctx context.Context, file schema.LocalFile) error
	UploadResume(ctx context.Context, file schema.LocalFile) error
	ResetStorage(ctx context.Context)
}

type educationStore interface {
	State() education.State
	List(ctx context.Context, userID int64) error
	Add(ctx context.Context, entry schema.EducationEntry) error
	Remove(ctx context.Context, educationID int64) error
}

type App struct {
	config    *config.Config
	session   sessionStore
	education educationStore
	reader    *bufio.Reader
	out       io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.NewSlogLogger(slog.Default())

	db, err := storage.OpenDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	repo := storage.NewSQLiteRepository(db)

	apiClient := api.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, log)
	sess := session.NewStore(apiClient, repo, log)
	edu := education.NewStore(apiClient, sess, log)

	return &App{
		config:    c,
		session:   sess,
		education: edu,
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}, nil
}

// Run rehydrates the persisted session in the background, waits for the
// ready signal, then hands control to the REPL.
func (a *App) Run(ctx context.Context) {
	go func() {
		_ = a.session.Hydrate(ctx)
	}()
	<-a.session.Ready()

	a.Root(ctx)
}
