// Package auth abstracts the authentication backend behind a session-provider
// interface: read the current session, mutate it, and subscribe to state
// changes. The shipped implementation is LocalProvider (sqlite users/sessions,
// JWT access tokens, redis- or memory-backed one-time tokens); the services
// layer only ever sees the Provider interface.
package auth

import (
	"context"
	"errors"
	"time"

	"soukel/internal/domain"
)

// Provider error messages mirror the wording of hosted auth SDKs so the
// Arabic lookup table in the services layer can key on them directly.
var (
	ErrInvalidCredentials = errors.New("Invalid login credentials")
	ErrAlreadyRegistered  = errors.New("User already registered")
	ErrNoSession          = errors.New("Auth session missing")
	ErrInvalidToken       = errors.New("Invalid or expired token")
	ErrUserNotFound       = errors.New("User not found")
)

const (
	AccessTokenTTL       = time.Hour
	CallbackTokenTTL     = 10 * time.Minute
	VerificationTokenTTL = 24 * time.Hour
	ResetTokenTTL        = time.Hour
)

type EventKind string

const (
	EventSignedIn       EventKind = "signed_in"
	EventSignedOut      EventKind = "signed_out"
	EventProfileUpdated EventKind = "profile_updated"
)

// Event describes an auth state change. Handlers run synchronously on the
// mutating call; keep them short.
type Event struct {
	Kind EventKind
	SID  string
	User *domain.User
}

// Session is the provider's view of a signed-in browser session. ID matches
// the sid cookie; AccessToken is a short-lived signed JWT for API calls.
type Session struct {
	ID          string
	AccessToken string
	ExpiresAt   time.Time
	User        *domain.User
}

type SignUpInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
	City     string
}

type Provider interface {
	// Session resolves the session bound to sid, or ErrNoSession.
	Session(ctx context.Context, sid string) (*Session, error)

	SignIn(ctx context.Context, sid, email, password string) (*Session, error)
	SignUp(ctx context.Context, in SignUpInput) (*domain.User, error)
	SignOut(ctx context.Context, sid string) error

	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	VerifyEmail(ctx context.Context, token string) error

	UpdateProfile(ctx context.Context, userID string, p domain.ProfileUpdate) (*domain.User, error)

	// ExchangeCallbackToken turns a signed callback token (OAuth-style
	// redirect) into a bound session.
	ExchangeCallbackToken(ctx context.Context, sid, token string) (*Session, error)

	// OnChange registers a state-change handler and returns its unsubscribe.
	OnChange(fn func(Event)) (unsubscribe func())
}
