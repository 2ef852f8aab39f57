package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ferdiebergado/credkit/internal/platform/db"
	"github.com/ferdiebergado/credkit/internal/platform/hash"
)

// UserRepository is the storage used by the user service.
type UserRepository interface {
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, params CreateParams) (*User, error)
	List(ctx context.Context) ([]User, error)
	ListActive(ctx context.Context) ([]User, error)
	SetActive(ctx context.Context, id int64, active bool) (*User, error)
	Delete(ctx context.Context, id int64) (*User, error)
}

var _ UserRepository = (*Repository)(nil)

type CreateUserParams struct {
	Username string
	Password string
}

func (p CreateUserParams) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("username", p.Username),
		slog.String("password", "*"),
	)
}

type Service struct {
	repo   UserRepository
	txMgr  db.TxManager
	hasher hash.Hasher
	now    func() time.Time
}

var _ UserService = (*Service)(nil)

func NewService(repo UserRepository, txMgr db.TxManager, hasher hash.Hasher) *Service {
	return &Service{
		repo:   repo,
		txMgr:  txMgr,
		hasher: hasher,
		now:    time.Now,
	}
}

// Create stores a new active user. The username check and the insert share
// one transaction.
func (s *Service) Create(ctx context.Context, params CreateUserParams) (*ActionResult, error) {
	slog.Info("Creating user...", "params", params)
	hashed, err := s.hasher.Hash(params.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var created *User
	err = s.txMgr.RunInTx(ctx, func(txCtx context.Context) error {
		exists, err := s.repo.ExistsByUsername(txCtx, params.Username)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %s", ErrDuplicate, params.Username)
		}

		created, err = s.repo.Create(txCtx, CreateParams{
			Username:     params.Username,
			PasswordHash: hashed,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create user %s: %w", params.Username, err)
	}

	slog.Info("User created.", "user", created)
	msg := fmt.Sprintf("User '%s' created successfully", created.Username)
	return NewActionResult(created, ActionCreated, msg, created.CreatedAt), nil
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *Service) ListActive(ctx context.Context) ([]User, error) {
	users, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active users: %w", err)
	}
	return users, nil
}

func (s *Service) Activate(ctx context.Context, id int64) (*ActionResult, error) {
	return s.setActive(ctx, id, true)
}

func (s *Service) Deactivate(ctx context.Context, id int64) (*ActionResult, error) {
	return s.setActive(ctx, id, false)
}

func (s *Service) setActive(ctx context.Context, id int64, active bool) (*ActionResult, error) {
	action, verb := ActionDeactivated, "deactivated"
	if active {
		action, verb = ActionActivated, "activated"
	}

	u, err := s.repo.SetActive(ctx, id, active)
	if err != nil {
		return nil, fmt.Errorf("set user %d %s: %w", id, verb, err)
	}

	slog.Info("User status changed.", "user_id", u.ID, "action", action)
	msg := fmt.Sprintf("User '%s' %s successfully", u.Username, verb)
	return NewActionResult(u, action, msg, s.now()), nil
}

func (s *Service) Delete(ctx context.Context, id int64) (*ActionResult, error) {
	u, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete user %d: %w", id, err)
	}

	slog.Info("User deleted.", "user_id", u.ID)
	msg := fmt.Sprintf("User '%s' deleted successfully", u.Username)
	return NewActionResult(u, ActionDeleted, msg, s.now()), nil
}

// IsNotFound reports whether err means the user does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
