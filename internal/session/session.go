// Package session holds who is signed in to each console session and the token they act with.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage-console/internal/backend"
	"github.com/Nixie-Tech-LLC/signage-console/internal/model"
)

const (
	loginFallback    = "Erro ao fazer login"
	registerFallback = "Erro ao cadastrar usuário"
)

// AuthClient is the slice of the backend the session needs.
type AuthClient interface {
	Login(ctx context.Context, username, password string) (string, error)
	Me(ctx context.Context, creds *backend.Credentials) (model.User, error)
	Register(ctx context.Context, reg model.Registration) (json.RawMessage, error)
}

// Result reports a login or register attempt. Failures carry a user-facing message, never a Go error.
type Result struct {
	Success bool
	Error   string
	Data    json.RawMessage
}

// Manager hands out one Session per console session key.
type Manager struct {
	auth  AuthClient
	store CredentialStore
	now   func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(auth AuthClient, store CredentialStore) *Manager {
	return &Manager{
		auth:     auth,
		store:    store,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Session returns the session for key, creating an unrestored one on first use.
func (m *Manager) Session(key string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[key]
	if !ok {
		s = &Session{key: key, auth: m.auth, store: m.store, now: m.now}
		m.sessions[key] = s
	}
	s.touch()
	return s
}

// Prune forgets sessions idle for longer than idle. Their stored tokens stay, so a returning
// browser is restored again from the credential store.
func (m *Manager) Prune(idle time.Duration) int {
	cutoff := m.now().Add(-idle)

	m.mu.Lock()
	defer m.mu.Unlock()
	pruned := 0
	for key, s := range m.sessions {
		if s.idleSince().Before(cutoff) && !s.Loading() {
			delete(m.sessions, key)
			pruned++
		}
	}
	return pruned
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Session is the console-side view of one signed-in (or not) browser.
type Session struct {
	key   string
	auth  AuthClient
	store CredentialStore
	now   func() time.Time

	mu       sync.Mutex
	identity *model.User
	creds    *backend.Credentials
	loading  bool
	restored bool
	// gen advances on every login and logout; a restore begun under an older gen drops its result.
	gen      uint64
	lastSeen time.Time
}

func (s *Session) Key() string { return s.key }

func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = s.now()
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Loading is true while Restore is validating a stored token.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Identity returns the signed-in user, if any.
func (s *Session) Identity() (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return model.User{}, false
	}
	return *s.identity, true
}

// Credentials returns the bearer capability for outgoing calls, nil when signed out.
func (s *Session) Credentials() *backend.Credentials {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds
}

// Restore validates a previously stored token once per session. A rejected or expired token is
// dropped silently and the session ends up signed out.
func (s *Session) Restore(ctx context.Context) {
	s.mu.Lock()
	if s.restored || s.loading {
		s.mu.Unlock()
		return
	}
	s.loading = true
	gen := s.gen
	s.mu.Unlock()

	user, creds := s.restore(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.restored = true
	if s.gen != gen {
		log.Debug().Str("session", s.key).Msg("restore superseded by login or logout")
		return
	}
	s.identity, s.creds = user, creds
}

func (s *Session) restore(ctx context.Context) (*model.User, *backend.Credentials) {
	token, err := s.store.Load(ctx, s.key)
	if err != nil {
		if !errors.Is(err, ErrNoCredential) {
			log.Warn().Err(err).Msg("could not read stored credential")
		}
		return nil, nil
	}

	if expired(token, s.now()) {
		log.Debug().Str("session", s.key).Msg("stored token expired")
		s.discardToken(ctx, token)
		return nil, nil
	}

	creds := backend.Bearer(token)
	user, err := s.auth.Me(ctx, creds)
	if err != nil {
		log.Debug().Err(err).Str("session", s.key).Msg("stored token rejected")
		s.discardToken(ctx, token)
		return nil, nil
	}
	return &user, creds
}

// Login exchanges credentials for a token, persists it and loads the identity.
func (s *Session) Login(ctx context.Context, username, password string) Result {
	token, err := s.auth.Login(ctx, username, password)
	if err != nil {
		log.Info().Err(err).Str("username", username).Msg("login failed")
		return Result{Error: backend.Detail(err, loginFallback)}
	}

	if err := s.store.Save(ctx, s.key, token); err != nil {
		log.Error().Err(err).Msg("could not persist token")
		return Result{Error: loginFallback}
	}

	creds := backend.Bearer(token)
	user, err := s.auth.Me(ctx, creds)
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("identity fetch after login failed")
		s.discardToken(ctx, token)
		return Result{Error: backend.Detail(err, loginFallback)}
	}

	s.mu.Lock()
	s.identity = &user
	s.creds = creds
	s.restored = true
	s.gen++
	s.mu.Unlock()

	log.Info().Str("username", user.Username).Msg("signed in")
	return Result{Success: true}
}

// Logout forgets the token and the identity.
func (s *Session) Logout(ctx context.Context) {
	s.dropToken(ctx)

	s.mu.Lock()
	s.identity = nil
	s.creds = nil
	s.restored = true
	s.gen++
	s.mu.Unlock()
}

// Register creates an account. It does not sign in.
func (s *Session) Register(ctx context.Context, reg model.Registration) Result {
	data, err := s.auth.Register(ctx, reg)
	if err != nil {
		log.Info().Err(err).Str("username", reg.Username).Msg("registration failed")
		return Result{Error: backend.Detail(err, registerFallback)}
	}
	return Result{Success: true, Data: data}
}

func (s *Session) dropToken(ctx context.Context) {
	if err := s.store.Clear(ctx, s.key); err != nil {
		log.Warn().Err(err).Str("session", s.key).Msg("could not clear stored credential")
	}
}

// discardToken clears the stored token only if it is still token, leaving one saved by a newer login.
func (s *Session) discardToken(ctx context.Context, token string) {
	if err := s.store.Discard(ctx, s.key, token); err != nil {
		log.Warn().Err(err).Str("session", s.key).Msg("could not discard stored credential")
	}
}

// expired reports whether token is a JWT whose exp has passed. Opaque tokens are never
// considered expired here; the backend decides.
func expired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return false
	}
	return !claims.VerifyExpiresAt(now.Unix(), false)
}
