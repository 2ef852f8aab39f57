package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ferdiebergado/credkit/internal/platform/hash"
	"github.com/ferdiebergado/credkit/internal/user"
)

// ErrInvalidCredentials covers unknown users, inactive users and wrong passwords alike.
var ErrInvalidCredentials = errors.New("auth: invalid username or password")

// CredentialStore is the storage used for logins and password changes.
type CredentialStore interface {
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	FindByID(ctx context.Context, id int64) (*user.User, error)
	Save(ctx context.Context, u *user.User) (*user.User, error)
}

var _ CredentialStore = (*user.Repository)(nil)

// Identity is an authenticated principal.
type Identity struct {
	UserID   int64
	Username string
}

type Authenticator struct {
	store  CredentialStore
	hasher hash.Hasher
}

func NewAuthenticator(store CredentialStore, hasher hash.Hasher) *Authenticator {
	return &Authenticator{
		store:  store,
		hasher: hasher,
	}
}

// Authenticate checks username and password against the stored credential.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (*Identity, error) {
	u, err := a.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user %q: %w", username, err)
	}

	if !u.IsActive {
		slog.Info("Login attempt for inactive user.", "user_id", u.ID)
		return nil, ErrInvalidCredentials
	}

	ok, err := a.hasher.Verify(password, u.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password for user %d: %w", u.ID, err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return &Identity{UserID: u.ID, Username: u.Username}, nil
}
