package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/Vachangowdas/Agrifair1/internal/config"
	"github.com/Vachangowdas/Agrifair1/internal/models"
	"github.com/Vachangowdas/Agrifair1/internal/store"
	"github.com/Vachangowdas/Agrifair1/internal/utils"
)

// Mode selects the existence policy for an OTP request: login requires the
// mobile to be registered, signup requires it not to be.
type Mode string

const (
	ModeLogin  Mode = "login"
	ModeSignup Mode = "signup"
)

// challengeTTL bounds how long an issued code stays verifiable.
const challengeTTL = 10 * time.Minute

// Result is the structured outcome of every auth operation. Business-rule
// violations come back as Success=false with a user-actionable message; they
// are never errors in the Go sense because the caller always recovers.
type Result struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Code    string       `json:"code,omitempty"`
	User    *models.User `json:"user,omitempty"`
	Token   string       `json:"token,omitempty"`
}

func failure(message string) *Result {
	return &Result{Success: false, Message: message}
}

type challenge struct {
	code     string
	issuedAt time.Time
}

// Service issues and verifies one-time codes and resolves durable identity.
// Active challenges live in memory, one per mobile, each new request
// superseding the previous; the cloud store carries a best-effort mirror so
// verification can succeed from another device.
type Service struct {
	store store.Store
	cfg   *config.Config

	mu         sync.Mutex
	challenges map[string]challenge
}

// NewService constructs the auth service.
func NewService(st store.Store, cfg *config.Config) *Service {
	return &Service{
		store:      st,
		cfg:        cfg,
		challenges: make(map[string]challenge),
	}
}

// ValidMobile reports whether the mobile is exactly ten digits.
func ValidMobile(mobile string) bool {
	if len(mobile) != 10 {
		return false
	}
	for _, r := range mobile {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// RequestOTP checks the existence policy for the mode, issues a fresh 6-digit
// code and mirrors it to the cloud store. The code is returned to the caller;
// an SMS gateway would be invoked here in a real deployment.
func (s *Service) RequestOTP(ctx context.Context, mode Mode, mobile string) *Result {
	if !ValidMobile(mobile) {
		return failure("Mobile number must be exactly 10 digits.")
	}

	_, err := s.store.FindUserByMobile(ctx, mobile)
	exists := err == nil
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return failure("Could not check registration status. Please try again.")
	}

	switch mode {
	case ModeLogin:
		if !exists {
			return failure("Mobile number not registered. Please sign up first.")
		}
	case ModeSignup:
		if exists {
			return failure("User already registered. Please login.")
		}
	default:
		return failure("Unknown request mode.")
	}

	code, err := generateOTP()
	if err != nil {
		return failure("Could not generate a verification code.")
	}

	s.mu.Lock()
	s.challenges[mobile] = challenge{code: code, issuedAt: time.Now()}
	s.mu.Unlock()

	// Best-effort cross-device mirror; a failure here is survivable because
	// the in-session challenge and the sanctioned bypass codes still work.
	if err := s.store.SetOTPCode(ctx, mobile, code); err != nil {
		slog.Warn("otp mirror write failed", "mobile", mobile, "error", err)
	}

	return &Result{Success: true, Message: "OTP sent.", Code: code}
}

// verifyOTP checks a submitted code in precedence order: master bypass code,
// in-session active challenge, cloud-mirrored challenge, then the last four
// digits of the mobile itself (documented low-security fallback). A
// successful verification consumes the active challenge and mirror.
func (s *Service) verifyOTP(ctx context.Context, mobile, code string) bool {
	if code == "" {
		return false
	}

	if code == s.cfg.MasterOTP {
		s.consumeChallenge(ctx, mobile)
		return true
	}

	s.mu.Lock()
	active, ok := s.challenges[mobile]
	s.mu.Unlock()
	if ok && active.code == code && time.Since(active.issuedAt) < challengeTTL {
		s.consumeChallenge(ctx, mobile)
		return true
	}

	if user, err := s.store.FindUserByMobile(ctx, mobile); err == nil {
		if user.OTPCode != "" && user.OTPCode == code {
			s.consumeChallenge(ctx, mobile)
			return true
		}
	}

	if len(mobile) >= 4 && code == mobile[len(mobile)-4:] {
		s.consumeChallenge(ctx, mobile)
		return true
	}

	return false
}

// consumeChallenge makes any issued code single-use.
func (s *Service) consumeChallenge(ctx context.Context, mobile string) {
	s.mu.Lock()
	delete(s.challenges, mobile)
	s.mu.Unlock()

	if err := s.store.SetOTPCode(ctx, mobile, ""); err != nil {
		slog.Warn("otp mirror clear failed", "mobile", mobile, "error", err)
	}
}

// Login verifies the code and resolves the registered user for the mobile.
func (s *Service) Login(ctx context.Context, mobile, otp string) *Result {
	if !ValidMobile(mobile) {
		return failure("Mobile number must be exactly 10 digits.")
	}
	if !s.verifyOTP(ctx, mobile, otp) {
		return failure("Invalid OTP.")
	}

	user, err := s.store.FindUserByMobile(ctx, mobile)
	if errors.Is(err, store.ErrNotFound) {
		return failure("Mobile number not registered. Please sign up first.")
	}
	if err != nil {
		return failure("Could not load your account. Please try again.")
	}

	s.assertAuthority(user)
	return s.secured(user)
}

// Signup verifies the code and creates a new account for the mobile.
func (s *Service) Signup(ctx context.Context, username, mobile, otp string) *Result {
	if username == "" {
		return failure("Username is required.")
	}
	if !ValidMobile(mobile) {
		return failure("Mobile number must be exactly 10 digits.")
	}
	if !s.verifyOTP(ctx, mobile, otp) {
		return failure("Invalid OTP.")
	}

	if _, err := s.store.FindUserByMobile(ctx, mobile); err == nil {
		return failure("User already registered. Please login.")
	} else if !errors.Is(err, store.ErrNotFound) {
		return failure("Could not check registration status. Please try again.")
	}

	user := &models.User{
		Username: username,
		Mobile:   mobile,
		Role:     models.RoleUser,
	}
	s.assertAuthority(user)

	if err := s.store.CreateUser(ctx, user); err != nil {
		return failure(fmt.Sprintf("Could not create your account: %v", err))
	}

	return s.secured(user)
}

// Resolve restores a cached session: the same mobile is re-resolved against
// the authoritative store because ids minted offline are not guaranteed to
// match cloud ids. The cloud record wins when found; admin authority is
// re-asserted from the mobile on every restore, never trusted from the token.
func (s *Service) Resolve(ctx context.Context, claims *utils.SessionClaims) *Result {
	user, err := s.store.FindUserByMobile(ctx, claims.Mobile)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slog.Warn("session re-resolve failed, keeping cached identity", "mobile", claims.Mobile, "error", err)
		}
		user = &models.User{
			BaseModel: models.BaseModel{ID: claims.UserID},
			Username:  claims.Username,
			Mobile:    claims.Mobile,
			Role:      claims.Role,
		}
	}

	s.assertAuthority(user)
	return s.secured(user)
}

// assertAuthority pins the admin role to the designated mobile number.
// Authority is derived from the mobile, not the stored role, so it holds
// even when a stale or tampered record says otherwise.
func (s *Service) assertAuthority(user *models.User) {
	if user.Mobile == s.cfg.AdminMobile {
		user.Role = models.RoleAdmin
	} else if user.Role == "" {
		user.Role = models.RoleUser
	}
}

func (s *Service) secured(user *models.User) *Result {
	token, err := utils.GenerateToken(s.cfg.JWTSecret, user.ID, user.Username, user.Mobile, user.Role, s.cfg.TokenExpires)
	if err != nil {
		return failure("Could not create a session token.")
	}
	return &Result{Success: true, User: user, Token: token}
}

// generateOTP draws a 6-digit code uniformly from [100000, 999999].
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}
