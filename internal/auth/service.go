package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ferdiebergado/credkit/internal/platform/hash"
	"github.com/ferdiebergado/credkit/internal/platform/metrics"
	"github.com/ferdiebergado/credkit/internal/user"
)

var (
	ErrPasswordMismatch         = errors.New("auth: new password and confirmation do not match")
	ErrPasswordUnchanged        = errors.New("auth: new password must differ from current password")
	ErrUserNotFound             = errors.New("auth: user not found")
	ErrCurrentPasswordIncorrect = errors.New("auth: current password is incorrect")
)

// ClaimUserID carries the numeric user id in issued tokens.
const ClaimUserID = "uid"

type Service struct {
	authn    *Authenticator
	tokens   *TokenService
	store    CredentialStore
	hasher   hash.Hasher
	recorder metrics.Recorder
	now      func() time.Time
}

var _ AuthService = (*Service)(nil)

func NewService(authn *Authenticator, tokens *TokenService, store CredentialStore, hasher hash.Hasher, recorder metrics.Recorder) *Service {
	return &Service{
		authn:    authn,
		tokens:   tokens,
		store:    store,
		hasher:   hasher,
		recorder: recorder,
		now:      time.Now,
	}
}

type LoginUserParams struct {
	Username string
	Password string
}

func (p LoginUserParams) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("username", p.Username),
		slog.String("password", maskChar),
	)
}

// LoginUser authenticates the user and issues an access token for them.
func (s *Service) LoginUser(ctx context.Context, params LoginUserParams) (string, error) {
	identity, err := s.authn.Authenticate(ctx, params.Username, params.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			s.recorder.RecordLogin(metrics.OutcomeFailure)
			return "", err
		}
		s.recorder.RecordLogin(metrics.OutcomeError)
		return "", fmt.Errorf("authenticate %q: %w", params.Username, err)
	}

	token, err := s.tokens.Issue(identity.Username, map[string]any{ClaimUserID: identity.UserID})
	if err != nil {
		s.recorder.RecordLogin(metrics.OutcomeError)
		return "", fmt.Errorf("issue token: %w", err)
	}

	s.recorder.RecordLogin(metrics.OutcomeSuccess)
	slog.Info("User logged in.", "user_id", identity.UserID)
	return token, nil
}

type ChangePasswordParams struct {
	UserID          int64
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

func (p ChangePasswordParams) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("user_id", p.UserID),
		slog.String("current_password", maskChar),
		slog.String("new_password", maskChar),
		slog.String("confirm_password", maskChar),
	)
}

// ChangePassword replaces the stored password after the caller proves they
// know the current one. Nothing is written unless every check passes.
func (s *Service) ChangePassword(ctx context.Context, params ChangePasswordParams) (*user.ActionResult, error) {
	slog.Info("Changing password...", "params", params)
	result, err := s.changePassword(ctx, params)
	s.recorder.RecordPasswordChange(passwordChangeOutcome(err))
	return result, err
}

func (s *Service) changePassword(ctx context.Context, params ChangePasswordParams) (*user.ActionResult, error) {
	if params.ConfirmPassword != params.NewPassword {
		return nil, ErrPasswordMismatch
	}

	if params.NewPassword == params.CurrentPassword {
		return nil, ErrPasswordUnchanged
	}

	u, err := s.store.FindByID(ctx, params.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrUserNotFound, params.UserID)
		}
		return nil, fmt.Errorf("find user %d: %w", params.UserID, err)
	}

	ok, err := s.hasher.Verify(params.CurrentPassword, u.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify current password for user %d: %w", u.ID, err)
	}
	if !ok {
		return nil, ErrCurrentPasswordIncorrect
	}

	newHash, err := s.hasher.Hash(params.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("hash new password for user %d: %w", u.ID, err)
	}

	updated := *u
	updated.PasswordHash = newHash
	saved, err := s.store.Save(ctx, &updated)
	if err != nil {
		return nil, fmt.Errorf("save user %d: %w", u.ID, err)
	}

	slog.Info("Password changed.", "user_id", saved.ID)
	msg := fmt.Sprintf("Password updated successfully for user '%s'", saved.Username)
	return user.NewActionResult(saved, user.ActionPasswordUpdated, msg, s.now()), nil
}

func passwordChangeOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrUserNotFound):
		return metrics.OutcomeMissing
	case errors.Is(err, ErrPasswordMismatch),
		errors.Is(err, ErrPasswordUnchanged),
		errors.Is(err, ErrCurrentPasswordIncorrect):
		return metrics.OutcomeValidation
	default:
		return metrics.OutcomeError
	}
}
