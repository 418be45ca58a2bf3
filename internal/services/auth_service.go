package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"soukel/internal/auth"
	"soukel/internal/domain"
)

const (
	maxLoginAttempts = 5
	lockoutWindow    = 15 * time.Minute
)

// User-facing Arabic errors.
var (
	ErrLockedOut        = errors.New("تم تعليق تسجيل الدخول مؤقتاً بسبب كثرة المحاولات، حاول مجدداً بعد 15 دقيقة")
	ErrTermsRequired    = errors.New("يجب الموافقة على الشروط والأحكام أولاً")
	ErrNotAuthenticated = errors.New("يجب تسجيل الدخول أولاً")
)

// Provider (SDK-style) messages mapped to Arabic. Unknown messages pass
// through unchanged. Kept as data so translators never touch code.
var arabicErrors = map[string]string{
	"Invalid login credentials": "البريد الإلكتروني أو كلمة المرور غير صحيحة",
	"User already registered":   "هذا البريد الإلكتروني مسجل مسبقاً",
	"Email not confirmed":       "يرجى تأكيد بريدك الإلكتروني أولاً",
	"Invalid or expired token":  "الرابط غير صالح أو منتهي الصلاحية",
	"User not found":            "المستخدم غير موجود",
	"Auth session missing":      "انتهت الجلسة، يرجى تسجيل الدخول مجدداً",
}

func localize(err error) error {
	if err == nil {
		return nil
	}
	if msg, ok := arabicErrors[err.Error()]; ok {
		return errors.New(msg)
	}
	return err
}

// Permissions checked by HasPermission.
const (
	PermPostAd           = "post_ad"
	PermBusinessFeatures = "business_features"
	PermAdminPanel       = "admin_panel"
)

// AuthService tracks session lifecycle against the auth provider and adds the
// policy the provider doesn't have: consecutive-failure lockout, terms
// acceptance, permission checks, and Arabic error mapping.
type AuthService struct {
	Provider   auth.Provider
	adminEmail string

	now   func() time.Time
	unsub func()

	mu           sync.Mutex
	attempts     int
	blockedUntil time.Time
}

func NewAuthService(p auth.Provider, adminEmail string) *AuthService {
	s := &AuthService{Provider: p, adminEmail: adminEmail, now: time.Now}
	// Mirror provider state changes: a sign-in from any path (password,
	// callback token) clears the failure streak.
	s.unsub = p.OnChange(func(e auth.Event) {
		if e.Kind == auth.EventSignedIn {
			s.mu.Lock()
			s.attempts = 0
			s.blockedUntil = time.Time{}
			s.mu.Unlock()
		}
	})
	return s
}

// Close detaches the provider subscription.
func (s *AuthService) Close() {
	if s.unsub != nil {
		s.unsub()
	}
}

// IsBlocked reports whether logins are currently locked out.
func (s *AuthService) IsBlocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blockedLocked()
}

func (s *AuthService) blockedLocked() bool {
	if s.blockedUntil.IsZero() {
		return false
	}
	if s.now().Before(s.blockedUntil) {
		return true
	}
	// Window elapsed: the block clears itself and the counter restarts.
	s.blockedUntil = time.Time{}
	s.attempts = 0
	return false
}

// Login rejects immediately during a lockout window, regardless of
// credentials. Five consecutive failures start a 15-minute lockout.
func (s *AuthService) Login(ctx context.Context, sid, email, password string) (*auth.Session, error) {
	s.mu.Lock()
	if s.blockedLocked() {
		s.mu.Unlock()
		return nil, ErrLockedOut
	}
	s.mu.Unlock()

	sess, err := s.Provider.SignIn(ctx, sid, email, password)
	if err != nil {
		s.mu.Lock()
		s.attempts++
		if s.attempts >= maxLoginAttempts {
			s.blockedUntil = s.now().Add(lockoutWindow)
		}
		s.mu.Unlock()
		return nil, localize(err)
	}

	s.mu.Lock()
	s.attempts = 0
	s.blockedUntil = time.Time{}
	s.mu.Unlock()
	return sess, nil
}

// Signup refuses to touch the provider until terms are accepted. After a
// successful signup the profile defaults are applied best-effort; their
// failure does not fail the signup.
func (s *AuthService) Signup(ctx context.Context, in auth.SignUpInput, acceptTerms bool) (*domain.User, error) {
	if !acceptTerms {
		return nil, ErrTermsRequired
	}
	u, err := s.Provider.SignUp(ctx, in)
	if err != nil {
		return nil, localize(err)
	}

	t, ar, active := true, "ar", domain.AccountActive
	if updated, err := s.Provider.UpdateProfile(ctx, u.ID, domain.ProfileUpdate{
		NotificationsEnabled: &t,
		ProfileVisible:       &t,
		Language:             &ar,
		Status:               &active,
	}); err == nil {
		u = updated
	}
	return u, nil
}

func (s *AuthService) Logout(ctx context.Context, sid string) error {
	return localize(s.Provider.SignOut(ctx, sid))
}

// CurrentUser resolves the signed-in user for a sid; (nil, nil) when signed out.
func (s *AuthService) CurrentUser(ctx context.Context, sid string) (*domain.User, error) {
	sess, err := s.Provider.Session(ctx, sid)
	if err != nil {
		if errors.Is(err, auth.ErrNoSession) {
			return nil, nil
		}
		return nil, localize(err)
	}
	return sess.User, nil
}

// UpdateProfile requires an authenticated session and merges optimistically.
func (s *AuthService) UpdateProfile(ctx context.Context, sid string, upd domain.ProfileUpdate) (*domain.User, error) {
	u, err := s.CurrentUser(ctx, sid)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotAuthenticated
	}
	updated, err := s.Provider.UpdateProfile(ctx, u.ID, upd)
	return updated, localize(err)
}

func (s *AuthService) ResetPassword(ctx context.Context, email string) error {
	return localize(s.Provider.RequestPasswordReset(ctx, email))
}

func (s *AuthService) CompleteReset(ctx context.Context, token, newPassword string) error {
	return localize(s.Provider.ResetPassword(ctx, token, newPassword))
}

func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	return localize(s.Provider.VerifyEmail(ctx, token))
}

func (s *AuthService) ExchangeCallbackToken(ctx context.Context, sid, token string) (*auth.Session, error) {
	sess, err := s.Provider.ExchangeCallbackToken(ctx, sid, token)
	return sess, localize(err)
}

// HasPermission is a pure check over the current user state.
func (s *AuthService) HasPermission(u *domain.User, perm string) bool {
	if u == nil {
		return false
	}
	switch perm {
	case PermPostAd:
		return u.Status == domain.AccountActive
	case PermBusinessFeatures:
		return u.BusinessVerified
	case PermAdminPanel:
		return u.Email == s.adminEmail
	}
	return false
}
