package facade

import (
	"context"
	"errors"

	"github.com/asaskevich/EventBus"

	"petmanager/internal/api"
	"petmanager/internal/common"
	"petmanager/internal/logging"
	"petmanager/internal/models"
	"petmanager/internal/session"
)

// AuthState is the published authentication state.
type AuthState struct {
	User            *models.User
	IsAuthenticated bool
	Loading         bool
	Err             string
}

// Auth drives login/logout and mirrors the session into observable state.
type Auth struct {
	base    base[AuthState]
	client  *api.Client
	session *session.Store
	log     logging.Logger
}

// NewAuth builds the facade, restoring authenticated state when the session
// store already holds a session from a previous run.
func NewAuth(client *api.Client, sess *session.Store, bus EventBus.Bus, log logging.Logger) *Auth {
	a := &Auth{
		base:    base[AuthState]{bus: bus, topic: TopicAuth},
		client:  client,
		session: sess,
		log:     log,
	}
	if st := sess.State(); st.IsAuthenticated {
		a.base.state = AuthState{User: st.User, IsAuthenticated: true}
	}
	return a
}

func (a *Auth) State() AuthState { return a.base.snapshot() }

func (a *Auth) Subscribe(fn func(AuthState)) error   { return a.base.subscribe(fn) }
func (a *Auth) Unsubscribe(fn func(AuthState)) error { return a.base.unsubscribe(fn) }

// Login authenticates and, on success, installs the session. Returns
// whether login succeeded; failures publish a user-facing error message.
func (a *Auth) Login(ctx context.Context, username, password string) bool {
	a.base.update(func(s *AuthState) {
		s.Loading = true
		s.Err = ""
	})

	user, err := a.client.Login(ctx, username, password)
	if err != nil {
		a.log.Warn(ctx, "login failed", "username", username, "error", err)
		a.base.update(func(s *AuthState) {
			*s = AuthState{Err: loginErrorMessage(err)}
		})
		return false
	}

	a.session.SetUser(user)
	a.base.update(func(s *AuthState) {
		*s = AuthState{User: &user, IsAuthenticated: true}
	})
	a.log.Info(ctx, "login successful", "username", username)
	return true
}

// Logout clears the session and publishes the logged-out state.
func (a *Auth) Logout() {
	a.session.Reset()
	a.base.update(func(s *AuthState) { *s = AuthState{} })
}

func (a *Auth) ClearError() {
	a.base.update(func(s *AuthState) { s.Err = "" })
}

func loginErrorMessage(err error) string {
	if errors.Is(err, common.ErrUnavailable) {
		return "Não foi possível conectar ao servidor"
	}
	switch status := api.StatusOf(err); {
	case status == 401 || status == 403:
		return "Usuário ou senha inválidos"
	case status == 400:
		if msg := api.MessageOf(err); msg != "" {
			return msg
		}
		return "Dados inválidos"
	case status >= 500:
		return "Erro no servidor. Tente novamente mais tarde."
	default:
		if msg := api.MessageOf(err); msg != "" {
			return msg
		}
		return "Erro ao fazer login"
	}
}
