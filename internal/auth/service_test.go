package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ferdiebergado/credkit/internal/auth"
	"github.com/ferdiebergado/credkit/internal/platform/hash"
	"github.com/ferdiebergado/credkit/internal/platform/jwt"
	"github.com/ferdiebergado/credkit/internal/platform/metrics"
	"github.com/ferdiebergado/credkit/internal/user"
)

func newTestService(t *testing.T, store auth.CredentialStore, hasher hash.Hasher, recorder metrics.Recorder) (*auth.Service, *auth.TokenService) {
	t.Helper()

	tokens := newTokenService(t, jwt.NewGolangJWTCodec(), time.Hour, newFakeClock())
	authn := auth.NewAuthenticator(store, hasher)
	return auth.NewService(authn, tokens, store, hasher, recorder), tokens
}

func TestService_ChangePassword(t *testing.T) {
	t.Parallel()

	admin := user.User{ID: 1, Username: "admin", PasswordHash: "hashed:admin123", IsActive: true}

	tests := []struct {
		name       string
		params     auth.ChangePasswordParams
		wantErr    error
		wantWrites int
		outcome    string
	}{
		{
			name:       "Success",
			params:     auth.ChangePasswordParams{UserID: 1, CurrentPassword: "admin123", NewPassword: "newpass1", ConfirmPassword: "newpass1"},
			wantWrites: 1,
			outcome:    metrics.OutcomeSuccess,
		},
		{
			name:    "Confirmation mismatch",
			params:  auth.ChangePasswordParams{UserID: 1, CurrentPassword: "admin123", NewPassword: "newpass1", ConfirmPassword: "newpass2"},
			wantErr: auth.ErrPasswordMismatch,
			outcome: metrics.OutcomeValidation,
		},
		{
			name:    "Mismatch is reported before unchanged",
			params:  auth.ChangePasswordParams{UserID: 1, CurrentPassword: "admin123", NewPassword: "admin123", ConfirmPassword: "other"},
			wantErr: auth.ErrPasswordMismatch,
			outcome: metrics.OutcomeValidation,
		},
		{
			name:    "Unchanged password",
			params:  auth.ChangePasswordParams{UserID: 1, CurrentPassword: "admin123", NewPassword: "admin123", ConfirmPassword: "admin123"},
			wantErr: auth.ErrPasswordUnchanged,
			outcome: metrics.OutcomeValidation,
		},
		{
			name:    "Unchanged is reported before lookup",
			params:  auth.ChangePasswordParams{UserID: 99, CurrentPassword: "same", NewPassword: "same", ConfirmPassword: "same"},
			wantErr: auth.ErrPasswordUnchanged,
			outcome: metrics.OutcomeValidation,
		},
		{
			name:    "Unknown user",
			params:  auth.ChangePasswordParams{UserID: 99, CurrentPassword: "admin123", NewPassword: "newpass1", ConfirmPassword: "newpass1"},
			wantErr: auth.ErrUserNotFound,
			outcome: metrics.OutcomeMissing,
		},
		{
			name:    "Wrong current password",
			params:  auth.ChangePasswordParams{UserID: 1, CurrentPassword: "wrong", NewPassword: "newpass1", ConfirmPassword: "newpass1"},
			wantErr: auth.ErrCurrentPasswordIncorrect,
			outcome: metrics.OutcomeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := newMemStore(admin)
			spy := newSpyRecorder()
			svc, _ := newTestService(t, store, prefixHasher(), spy)

			got, err := svc.ChangePassword(t.Context(), tt.params)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("svc.ChangePassword() = %v, want: %v", err, tt.wantErr)
			}

			if gotWrites := store.Writes(); gotWrites != tt.wantWrites {
				t.Errorf("store.Writes() = %d, want: %d", gotWrites, tt.wantWrites)
			}

			if spy.changes[tt.outcome] != 1 {
				t.Errorf("password change outcomes = %v, want one %q", spy.changes, tt.outcome)
			}

			if tt.wantErr != nil {
				if got != nil {
					t.Errorf("svc.ChangePassword() result = %+v, want: nil", got)
				}
				if store.Hash(admin.ID) != admin.PasswordHash {
					t.Errorf("stored hash changed to %q after failure", store.Hash(admin.ID))
				}
				return
			}

			if got.Status != user.StatusSuccess || got.Action != user.ActionPasswordUpdated {
				t.Errorf("result status/action = %q/%q, want: %q/%q", got.Status, got.Action, user.StatusSuccess, user.ActionPasswordUpdated)
			}
			if want := "Password updated successfully for user 'admin'"; got.Message != want {
				t.Errorf("got.Message = %q, want: %q", got.Message, want)
			}
			if got.UserID != admin.ID || got.Username != admin.Username {
				t.Errorf("result user = %d/%q, want: %d/%q", got.UserID, got.Username, admin.ID, admin.Username)
			}
			if store.Hash(admin.ID) != "hashed:newpass1" {
				t.Errorf("stored hash = %q, want: %q", store.Hash(admin.ID), "hashed:newpass1")
			}
		})
	}
}

func TestService_ChangePassword_UserNotFoundMessage(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, newMemStore(), prefixHasher(), metrics.NopRecorder{})
	_, err := svc.ChangePassword(t.Context(), auth.ChangePasswordParams{
		UserID: 42, CurrentPassword: "a", NewPassword: "bbbbbb", ConfirmPassword: "bbbbbb",
	})

	if err == nil || err.Error() != auth.ErrUserNotFound.Error()+": 42" {
		t.Errorf("svc.ChangePassword() = %v, want the id in the error", err)
	}
}

func TestService_ChangePassword_StorageFailure(t *testing.T) {
	t.Parallel()

	errDB := errors.New("db down")
	store := &auth.StubStore{
		FindByIDFunc: func(context.Context, int64) (*user.User, error) { return nil, errDB },
	}
	spy := newSpyRecorder()
	svc, _ := newTestService(t, store, prefixHasher(), spy)

	_, err := svc.ChangePassword(t.Context(), auth.ChangePasswordParams{
		UserID: 1, CurrentPassword: "a", NewPassword: "bbbbbb", ConfirmPassword: "bbbbbb",
	})
	if !errors.Is(err, errDB) {
		t.Errorf("svc.ChangePassword() = %v, want: %v", err, errDB)
	}
	if spy.changes[metrics.OutcomeError] != 1 {
		t.Errorf("password change outcomes = %v, want one %q", spy.changes, metrics.OutcomeError)
	}
}

func TestService_LoginUser(t *testing.T) {
	t.Parallel()

	store := newMemStore(user.User{ID: 7, Username: "admin", PasswordHash: "hashed:admin123", IsActive: true})
	spy := newSpyRecorder()
	svc, tokens := newTestService(t, store, prefixHasher(), spy)

	token, err := svc.LoginUser(t.Context(), auth.LoginUserParams{Username: "admin", Password: "admin123"})
	if err != nil {
		t.Fatalf("svc.LoginUser() = %v, want: nil", err)
	}

	claims, err := tokens.Validate(token)
	if err != nil {
		t.Fatalf("tokens.Validate() = %v, want: nil", err)
	}
	if claims.Subject != "admin" {
		t.Errorf("claims.Subject = %q, want: %q", claims.Subject, "admin")
	}
	if uid, ok := claims.Extra[auth.ClaimUserID].(float64); !ok || uid != 7 {
		t.Errorf("claims.Extra[%q] = %v, want: 7", auth.ClaimUserID, claims.Extra[auth.ClaimUserID])
	}

	if _, err := svc.LoginUser(t.Context(), auth.LoginUserParams{Username: "admin", Password: "nope"}); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Errorf("svc.LoginUser() = %v, want: %v", err, auth.ErrInvalidCredentials)
	}

	if spy.logins[metrics.OutcomeSuccess] != 1 || spy.logins[metrics.OutcomeFailure] != 1 {
		t.Errorf("login outcomes = %v, want one success and one failure", spy.logins)
	}
}

// Login, change the password, then log in again with real hashing.
func TestService_PasswordLifecycle(t *testing.T) {
	t.Parallel()

	hasher := hash.NewMultiHasher(hash.NewBcryptHasher(4))
	initial, err := hasher.Hash("admin123")
	if err != nil {
		t.Fatal(err)
	}

	store := newMemStore(user.User{ID: 1, Username: "admin", PasswordHash: initial, IsActive: true})
	svc, tokens := newTestService(t, store, hasher, metrics.NopRecorder{})
	ctx := t.Context()

	token, err := svc.LoginUser(ctx, auth.LoginUserParams{Username: "admin", Password: "admin123"})
	if err != nil {
		t.Fatalf("svc.LoginUser() = %v, want: nil", err)
	}

	subject, err := tokens.ExtractSubject(token)
	if err != nil || !tokens.Verify(token, subject) {
		t.Fatalf("issued token does not verify: subject %q, err %v", subject, err)
	}

	if _, err := svc.ChangePassword(ctx, auth.ChangePasswordParams{
		UserID: 1, CurrentPassword: "admin123", NewPassword: "s3cure!!", ConfirmPassword: "s3cure!!",
	}); err != nil {
		t.Fatalf("svc.ChangePassword() = %v, want: nil", err)
	}

	if _, err := svc.LoginUser(ctx, auth.LoginUserParams{Username: "admin", Password: "admin123"}); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Errorf("login with old password = %v, want: %v", err, auth.ErrInvalidCredentials)
	}

	if _, err := svc.LoginUser(ctx, auth.LoginUserParams{Username: "admin", Password: "s3cure!!"}); err != nil {
		t.Errorf("login with new password = %v, want: nil", err)
	}

	if !tokens.Verify(token, "admin") {
		t.Error("token issued before the change no longer verifies")
	}
}

// A failed change attempt leaves the stored credential usable.
func TestService_FailedChangeKeepsCredential(t *testing.T) {
	t.Parallel()

	store := newMemStore(user.User{ID: 1, Username: "admin", PasswordHash: "hashed:admin123", IsActive: true})
	svc, _ := newTestService(t, store, prefixHasher(), metrics.NopRecorder{})
	ctx := t.Context()

	_, err := svc.ChangePassword(ctx, auth.ChangePasswordParams{
		UserID: 1, CurrentPassword: "guess", NewPassword: "newpass1", ConfirmPassword: "newpass1",
	})
	if !errors.Is(err, auth.ErrCurrentPasswordIncorrect) {
		t.Fatalf("svc.ChangePassword() = %v, want: %v", err, auth.ErrCurrentPasswordIncorrect)
	}

	if store.Writes() != 0 {
		t.Errorf("store.Writes() = %d, want: 0", store.Writes())
	}

	if _, err := svc.LoginUser(ctx, auth.LoginUserParams{Username: "admin", Password: "admin123"}); err != nil {
		t.Errorf("login with unchanged password = %v, want: nil", err)
	}
}
