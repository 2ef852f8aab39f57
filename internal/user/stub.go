package user

import (
	"context"
	"errors"
)

type StubService struct {
	CreateFunc     func(ctx context.Context, params CreateUserParams) (*ActionResult, error)
	ListFunc       func(ctx context.Context) ([]User, error)
	ListActiveFunc func(ctx context.Context) ([]User, error)
	ActivateFunc   func(ctx context.Context, id int64) (*ActionResult, error)
	DeactivateFunc func(ctx context.Context, id int64) (*ActionResult, error)
	DeleteFunc     func(ctx context.Context, id int64) (*ActionResult, error)
}

var _ UserService = (*StubService)(nil)

func (s *StubService) Create(ctx context.Context, params CreateUserParams) (*ActionResult, error) {
	if s.CreateFunc == nil {
		return nil, errors.New("Create() not implemented by stub")
	}
	return s.CreateFunc(ctx, params)
}

func (s *StubService) List(ctx context.Context) ([]User, error) {
	if s.ListFunc == nil {
		return nil, errors.New("List() not implemented by stub")
	}
	return s.ListFunc(ctx)
}

func (s *StubService) ListActive(ctx context.Context) ([]User, error) {
	if s.ListActiveFunc == nil {
		return nil, errors.New("ListActive() not implemented by stub")
	}
	return s.ListActiveFunc(ctx)
}

func (s *StubService) Activate(ctx context.Context, id int64) (*ActionResult, error) {
	if s.ActivateFunc == nil {
		return nil, errors.New("Activate() not implemented by stub")
	}
	return s.ActivateFunc(ctx, id)
}

func (s *StubService) Deactivate(ctx context.Context, id int64) (*ActionResult, error) {
	if s.DeactivateFunc == nil {
		return nil, errors.New("Deactivate() not implemented by stub")
	}
	return s.DeactivateFunc(ctx, id)
}

func (s *StubService) Delete(ctx context.Context, id int64) (*ActionResult, error) {
	if s.DeleteFunc == nil {
		return nil, errors.New("Delete() not implemented by stub")
	}
	return s.DeleteFunc(ctx, id)
}

type StubRepo struct {
	ExistsByUsernameFunc func(ctx context.Context, username string) (bool, error)
	CreateFunc           func(ctx context.Context, params CreateParams) (*User, error)
	ListFunc             func(ctx context.Context) ([]User, error)
	ListActiveFunc       func(ctx context.Context) ([]User, error)
	SetActiveFunc        func(ctx context.Context, id int64, active bool) (*User, error)
	DeleteFunc           func(ctx context.Context, id int64) (*User, error)
}

var _ UserRepository = (*StubRepo)(nil)

func (r *StubRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if r.ExistsByUsernameFunc == nil {
		return false, errors.New("ExistsByUsername() not implemented by stub")
	}
	return r.ExistsByUsernameFunc(ctx, username)
}

func (r *StubRepo) Create(ctx context.Context, params CreateParams) (*User, error) {
	if r.CreateFunc == nil {
		return nil, errors.New("Create() not implemented by stub")
	}
	return r.CreateFunc(ctx, params)
}

func (r *StubRepo) List(ctx context.Context) ([]User, error) {
	if r.ListFunc == nil {
		return nil, errors.New("List() not implemented by stub")
	}
	return r.ListFunc(ctx)
}

func (r *StubRepo) ListActive(ctx context.Context) ([]User, error) {
	if r.ListActiveFunc == nil {
		return nil, errors.New("ListActive() not implemented by stub")
	}
	return r.ListActiveFunc(ctx)
}

func (r *StubRepo) SetActive(ctx context.Context, id int64, active bool) (*User, error) {
	if r.SetActiveFunc == nil {
		return nil, errors.New("SetActive() not implemented by stub")
	}
	return r.SetActiveFunc(ctx, id, active)
}

func (r *StubRepo) Delete(ctx context.Context, id int64) (*User, error) {
	if r.DeleteFunc == nil {
		return nil, errors.New("Delete() not implemented by stub")
	}
	return r.DeleteFunc(ctx, id)
}
