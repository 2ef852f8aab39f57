package auth

import (
	"context"
	"errors"

	"github.com/ferdiebergado/credkit/internal/user"
)

type StubService struct {
	LoginUserFunc      func(ctx context.Context, params LoginUserParams) (string, error)
	ChangePasswordFunc func(ctx context.Context, params ChangePasswordParams) (*user.ActionResult, error)
}

var _ AuthService = (*StubService)(nil)

func (s *StubService) LoginUser(ctx context.Context, params LoginUserParams) (string, error) {
	if s.LoginUserFunc == nil {
		return "", errors.New("LoginUser() not implemented by stub")
	}
	return s.LoginUserFunc(ctx, params)
}

func (s *StubService) ChangePassword(ctx context.Context, params ChangePasswordParams) (*user.ActionResult, error) {
	if s.ChangePasswordFunc == nil {
		return nil, errors.New("ChangePassword() not implemented by stub")
	}
	return s.ChangePasswordFunc(ctx, params)
}

type StubStore struct {
	FindByUsernameFunc func(ctx context.Context, username string) (*user.User, error)
	FindByIDFunc       func(ctx context.Context, id int64) (*user.User, error)
	SaveFunc           func(ctx context.Context, u *user.User) (*user.User, error)
}

var _ CredentialStore = (*StubStore)(nil)

func (s *StubStore) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	if s.FindByUsernameFunc == nil {
		return nil, errors.New("FindByUsername() not implemented by stub")
	}
	return s.FindByUsernameFunc(ctx, username)
}

func (s *StubStore) FindByID(ctx context.Context, id int64) (*user.User, error) {
	if s.FindByIDFunc == nil {
		return nil, errors.New("FindByID() not implemented by stub")
	}
	return s.FindByIDFunc(ctx, id)
}

func (s *StubStore) Save(ctx context.Context, u *user.User) (*user.User, error) {
	if s.SaveFunc == nil {
		return nil, errors.New("Save() not implemented by stub")
	}
	return s.SaveFunc(ctx, u)
}
