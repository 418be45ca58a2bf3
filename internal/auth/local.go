package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"soukel/internal/domain"
	"soukel/internal/mailer"
	"soukel/internal/repos"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// LocalProvider implements Provider against the application's own database.
type LocalProvider struct {
	users   *repos.UserRepo
	tokens  TokenStore
	mail    mailer.Mailer
	secret  []byte
	baseURL string

	mu      sync.Mutex
	subs    map[int]func(Event)
	nextSub int
}

func NewLocalProvider(db *sqlx.DB, tokens TokenStore, mail mailer.Mailer, secret, baseURL string) *LocalProvider {
	return &LocalProvider{
		users:   repos.NewUserRepo(db),
		tokens:  tokens,
		mail:    mail,
		secret:  []byte(secret),
		baseURL: baseURL,
		subs:    map[int]func(Event){},
	}
}

func (p *LocalProvider) OnChange(fn func(Event)) func() {
	p.mu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn
	p.mu.Unlock()
	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}

func (p *LocalProvider) emit(e Event) {
	p.mu.Lock()
	fns := make([]func(Event), 0, len(p.subs))
	for _, fn := range p.subs {
		fns = append(fns, fn)
	}
	p.mu.Unlock()
	for _, fn := range fns {
		fn(e)
	}
}

func (p *LocalProvider) mintToken(userID, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}

func (p *LocalProvider) session(sid string, u *domain.User) (*Session, error) {
	tok, err := p.mintToken(u.ID, u.Email, AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth: mint access token: %w", err)
	}
	return &Session{ID: sid, AccessToken: tok, ExpiresAt: time.Now().Add(AccessTokenTTL), User: u}, nil
}

func (p *LocalProvider) Session(_ context.Context, sid string) (*Session, error) {
	if sid == "" {
		return nil, ErrNoSession
	}
	u, err := p.users.SessionUser(sid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	return p.session(sid, u)
}

func (p *LocalProvider) SignIn(_ context.Context, sid, email, password string) (*Session, error) {
	u, err := p.users.ByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if err := p.users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	s, err := p.session(sid, u)
	if err != nil {
		return nil, err
	}
	p.emit(Event{Kind: EventSignedIn, SID: sid, User: u})
	return s, nil
}

func (p *LocalProvider) SignUp(ctx context.Context, in SignUpInput) (*domain.User, error) {
	if _, err := p.users.ByEmail(in.Email); err == nil {
		return nil, ErrAlreadyRegistered
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	u := &domain.User{
		ID:        "user_" + uuid.NewString(),
		Email:     in.Email,
		Name:      in.Name,
		Hash:      string(hash),
		Phone:     in.Phone,
		City:      in.City,
		Language:  "ar",
		Status:    domain.AccountPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := p.users.Create(u); err != nil {
		return nil, err
	}

	// Verification mail is best-effort; the account exists either way.
	if token, err := NewSecureToken(); err == nil {
		if err := p.tokens.Set(ctx, "verify:"+token, u.ID, VerificationTokenTTL); err == nil {
			_ = p.mail.SendVerificationEmail(u.Email, p.baseURL+"/verify?token="+token)
		}
	}

	return u, nil
}

func (p *LocalProvider) SignOut(_ context.Context, sid string) error {
	if err := p.users.UnbindSession(sid); err != nil {
		return err
	}
	p.emit(Event{Kind: EventSignedOut, SID: sid})
	return nil
}

// RequestPasswordReset never reveals whether the email exists.
func (p *LocalProvider) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := p.users.ByEmail(email)
	if err != nil {
		return nil
	}
	token, err := NewSecureToken()
	if err != nil {
		return err
	}
	if err := p.tokens.Set(ctx, "reset:"+token, u.ID, ResetTokenTTL); err != nil {
		return err
	}
	_ = p.mail.SendPasswordResetEmail(u.Email, p.baseURL+"/reset?token="+token)
	return nil
}

func (p *LocalProvider) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, err := p.tokens.Get(ctx, "reset:"+token)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}
	if err := p.users.UpdatePassword(userID, string(hash)); err != nil {
		return err
	}
	_ = p.tokens.Delete(ctx, "reset:"+token)
	return nil
}

func (p *LocalProvider) VerifyEmail(ctx context.Context, token string) error {
	userID, err := p.tokens.Get(ctx, "verify:"+token)
	if err != nil {
		return err
	}
	if err := p.users.MarkVerified(userID); err != nil {
		return err
	}
	_ = p.tokens.Delete(ctx, "verify:"+token)
	return nil
}

func (p *LocalProvider) UpdateProfile(_ context.Context, userID string, upd domain.ProfileUpdate) (*domain.User, error) {
	if err := p.users.UpdateProfile(userID, upd); err != nil {
		return nil, err
	}
	u, err := p.users.ByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	p.emit(Event{Kind: EventProfileUpdated, User: u})
	return u, nil
}

// CallbackToken mints the short-lived signed token an external identity
// redirect would carry back to /auth/callback.
func (p *LocalProvider) CallbackToken(userID string) (string, error) {
	u, err := p.users.ByID(userID)
	if err != nil {
		return "", ErrUserNotFound
	}
	return p.mintToken(u.ID, u.Email, CallbackTokenTTL)
}

func (p *LocalProvider) ExchangeCallbackToken(_ context.Context, sid, token string) (*Session, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return nil, ErrInvalidToken
	}
	u, err := p.users.ByID(sub)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if err := p.users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	s, err := p.session(sid, u)
	if err != nil {
		return nil, err
	}
	p.emit(Event{Kind: EventSignedIn, SID: sid, User: u})
	return s, nil
}
