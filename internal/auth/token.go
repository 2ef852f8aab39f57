package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ferdiebergado/credkit/internal/platform/jwt"
	"github.com/ferdiebergado/credkit/internal/platform/metrics"
)

var (
	ErrTokenExpired    = errors.New("auth: token expired")
	ErrInvalidLifetime = errors.New("auth: token lifetime must be at least 1s")
)

// TokenService issues and checks access tokens.
// It is safe for concurrent use.
type TokenService struct {
	codec    jwt.Codec
	keys     jwt.KeySource
	lifetime time.Duration
	now      func() time.Time
}

type TokenOption func(*TokenService)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		s.now = now
	}
}

// NewTokenService creates a TokenService. Lifetimes are truncated to whole seconds.
func NewTokenService(codec jwt.Codec, keys jwt.KeySource, lifetime time.Duration, opts ...TokenOption) (*TokenService, error) {
	lifetime = lifetime.Truncate(time.Second)
	if lifetime < time.Second {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidLifetime, lifetime)
	}

	s := &TokenService{
		codec:    codec,
		keys:     keys,
		lifetime: lifetime,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *TokenService) Lifetime() time.Duration {
	return s.lifetime
}

// Issue signs a token for subject that expires after the configured lifetime.
// Extra claims never override sub, iat or exp.
func (s *TokenService) Issue(subject string, extra map[string]any) (string, error) {
	issuedAt := s.now().Truncate(time.Second)
	claims := jwt.Claims{
		Subject:   subject,
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt.Add(s.lifetime),
		Extra:     extra,
	}

	token, err := s.codec.Encode(claims, s.keys.Key())
	if err != nil {
		return "", fmt.Errorf("encode token for %q: %w", subject, err)
	}
	return token, nil
}

// Validate decodes token and checks expiry. It returns a *jwt.DecodeError or
// ErrTokenExpired on failure.
func (s *TokenService) Validate(token string) (*jwt.Claims, error) {
	claims, err := s.codec.Decode(token, s.keys.Key())
	if err != nil {
		return nil, err
	}

	if !s.now().Before(claims.ExpiresAt) {
		return claims, fmt.Errorf("%w: expired at %s", ErrTokenExpired, claims.ExpiresAt.Format(time.RFC3339))
	}
	return claims, nil
}

// Verify reports whether token is authentic, unexpired, and issued to expectedSubject.
func (s *TokenService) Verify(token, expectedSubject string) bool {
	_, ok := s.check(token, expectedSubject)
	return ok
}

// check is Verify with the outcome label used for logs and metrics.
func (s *TokenService) check(token, expectedSubject string) (outcome string, ok bool) {
	claims, err := s.Validate(token)
	if err != nil {
		outcome = VerificationOutcome(err)
		slog.Debug("Token rejected.", "outcome", outcome, "reason", err)
		return outcome, false
	}

	if claims.Subject != expectedSubject {
		slog.Debug("Token rejected.", "outcome", metrics.OutcomeMismatch)
		return metrics.OutcomeMismatch, false
	}

	return metrics.OutcomeSuccess, true
}

// ExtractSubject returns the subject of an authentic token without checking expiry.
func (s *TokenService) ExtractSubject(token string) (string, error) {
	claims, err := s.codec.Decode(token, s.keys.Key())
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// VerificationOutcome maps a token error to its metric label.
func VerificationOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrTokenExpired):
		return metrics.OutcomeExpired
	case errors.Is(err, jwt.ErrBadSignature):
		return metrics.OutcomeBadSig
	case errors.Is(err, jwt.ErrMalformed):
		return metrics.OutcomeMalformed
	default:
		return metrics.OutcomeError
	}
}
