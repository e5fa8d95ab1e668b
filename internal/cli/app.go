// Package cli is the terminal UI of the pet-manager client: a small REPL
// over the facades.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/asaskevich/EventBus"

	"petmanager/internal/api"
	"petmanager/internal/config"
	"petmanager/internal/facade"
	"petmanager/internal/logging"
	"petmanager/internal/session"
)

type App struct {
	config  *config.Config
	session *session.Store
	auth    *facade.Auth
	pets    *facade.Pets
	tutors  *facade.Tutors
	health  *facade.Health
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	bus := EventBus.New()

	storage, err := session.NewFileStorage(cfg.SessionDir)
	if err != nil {
		return nil, fmt.Errorf("session storage: %w", err)
	}
	sess := session.NewStore(storage, bus, log)

	client, err := api.New(cfg.APIBaseURL, cfg.RequestTimeout, sess, log)
	if err != nil {
		return nil, err
	}

	app := &App{
		config:  cfg,
		session: sess,
		auth:    facade.NewAuth(client, sess, bus, log),
		pets:    facade.NewPets(client, bus, log),
		tutors:  facade.NewTutors(client, bus, log),
		health:  facade.NewHealth(client, bus, log),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}

	client.OnAuthExpired(func() {
		fmt.Fprintln(app.out, "Sessão expirada; faça login novamente.")
	})

	return app, nil
}

func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Pet Manager CLI (type 'help' for commands)")

	go a.health.StartPeriodicCheck(ctx, a.config.HealthCheckInterval)

	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin), a.out)
}

func (a *App) isLoggedIn() bool {
	return a.auth.State().IsAuthenticated
}

// status builds the prompt decoration: logged-in user, backend health and
// token expiry when it is near.
func (a *App) status() string {
	s := ""
	if st := a.auth.State(); st.User != nil {
		s = st.User.Username
	}
	if hs := a.health.State(); hs.Status != "" {
		if s != "" {
			s += " "
		}
		s += hs.Status
	}
	if exp := a.session.TokenExpiry(); !exp.IsZero() && time.Until(exp) < time.Minute {
		s += " token-expiring"
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}
