package auth

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials is returned for an implausible email or a short
	// password.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrInvalidSession covers malformed, forged or revoked tokens.
	ErrInvalidSession = errors.New("auth: invalid session")
	// ErrSessionExpired is returned for tokens past their expiry.
	ErrSessionExpired = errors.New("auth: session expired")
)

// State is what the rest of the application sees of the gate.
type State struct {
	Authenticated bool   `json:"authenticated"`
	User          string `json:"user,omitempty"`
}

// Session is an issued login.
type Session struct {
	User      string    `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	id        string
}

// State reports the session as an authenticated gate state.
func (s Session) State() State {
	return State{Authenticated: true, User: s.User}
}

type sessionClaims struct {
	jwt.RegisteredClaims
}

// Gate is the login stub: it accepts any plausible email with a password of
// MinPasswordLength or more characters and issues an HS256 session token.
// Logout revokes the token id until it would have expired anyway.
type Gate struct {
	cfg Config

	mu      sync.Mutex
	revoked map[string]time.Time
}

// NewGate builds a gate. An empty secret is rejected.
func NewGate(cfg Config) (*Gate, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("auth: session secret is required")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 12 * time.Hour
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Gate{cfg: cfg, revoked: make(map[string]time.Time)}, nil
}

// Login validates the credentials and issues a session.
func (g *Gate) Login(email, password string) (Session, error) {
	user, err := normaliseEmail(email)
	if err != nil {
		return Session{}, err
	}
	if len([]rune(password)) < MinPasswordLength {
		return Session{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidCredentials, MinPasswordLength)
	}

	now := g.cfg.Now().UTC()
	exp := now.Add(g.cfg.TTL)
	id := uuid.NewString()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    g.cfg.Issuer,
			Subject:   user,
			ID:        id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.cfg.Secret)
	if err != nil {
		return Session{}, fmt.Errorf("auth: sign session: %w", err)
	}
	return Session{User: user, Token: token, ExpiresAt: exp, id: id}, nil
}

// Verify parses token and returns its session.
func (g *Gate) Verify(token string) (Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Session{}, ErrInvalidSession
	}

	var parsed sessionClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return g.cfg.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(g.cfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.cfg.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Session{}, ErrSessionExpired
		}
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if parsed.Subject == "" || parsed.ID == "" {
		return Session{}, ErrInvalidSession
	}

	g.mu.Lock()
	_, revoked := g.revoked[parsed.ID]
	g.mu.Unlock()
	if revoked {
		return Session{}, ErrInvalidSession
	}

	return Session{
		User:      parsed.Subject,
		Token:     token,
		ExpiresAt: parsed.ExpiresAt.Time.UTC(),
		id:        parsed.ID,
	}, nil
}

// Logout ends the session carried by token. Unknown or invalid tokens are
// ignored.
func (g *Gate) Logout(token string) {
	session, err := g.Verify(token)
	if err != nil {
		return
	}
	now := g.cfg.Now()

	g.mu.Lock()
	defer g.mu.Unlock()
	g.revoked[session.id] = session.ExpiresAt
	for id, exp := range g.revoked {
		if exp.Before(now) {
			delete(g.revoked, id)
		}
	}
}

// StateOf reports the gate state for token without returning an error.
func (g *Gate) StateOf(token string) State {
	session, err := g.Verify(token)
	if err != nil {
		return State{}
	}
	return session.State()
}

func normaliseEmail(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("%w: email is required", ErrInvalidCredentials)
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed || !strings.Contains(addr.Address, "@") {
		return "", fmt.Errorf("%w: email is not valid", ErrInvalidCredentials)
	}
	return strings.ToLower(addr.Address), nil
}
