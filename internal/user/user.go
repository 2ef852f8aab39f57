// Package user stores accounts and serves the user administration endpoints.
package user

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/ferdiebergado/credkit/internal/platform/db"
	"github.com/ferdiebergado/credkit/internal/platform/hash"
)

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("id", u.ID),
		slog.String("username", u.Username),
		slog.String("password_hash", "*"),
		slog.Bool("is_active", u.IsActive),
	)
}

const StatusSuccess = "SUCCESS"

// Actions reported in an ActionResult.
const (
	ActionCreated         = "CREATED"
	ActionActivated       = "ACTIVATED"
	ActionDeactivated     = "DEACTIVATED"
	ActionDeleted         = "DELETED"
	ActionPasswordUpdated = "PASSWORD_UPDATED"
)

// ActionResult is the response body of every state-changing user operation.
type ActionResult struct {
	Status      string    `json:"status"`
	UserID      int64     `json:"userId"`
	Username    string    `json:"username"`
	Action      string    `json:"action"`
	PerformedAt time.Time `json:"performedAt"`
	Message     string    `json:"message"`
}

// NewActionResult builds a successful result for u.
func NewActionResult(u *User, action, msg string, performedAt time.Time) *ActionResult {
	return &ActionResult{
		Status:      StatusSuccess,
		UserID:      u.ID,
		Username:    u.Username,
		Action:      action,
		PerformedAt: performedAt,
		Message:     msg,
	}
}

// NotFoundMessage is the client message for a missing user id.
func NotFoundMessage(id int64) string {
	return fmt.Sprintf("User not found with ID: %d", id)
}

type Module struct {
	repo    *Repository
	svc     *Service
	handler *Handler
}

func (m *Module) Repository() *Repository {
	return m.repo
}

func (m *Module) Service() *Service {
	return m.svc
}

func (m *Module) Handler() *Handler {
	return m.handler
}

func NewModule(conn *sql.DB, txMgr db.TxManager, hasher hash.Hasher) *Module {
	repo := NewRepository(conn)
	svc := NewService(repo, txMgr, hasher)
	handler := NewHandler(svc)
	return &Module{
		repo:    repo,
		svc:     svc,
		handler: handler,
	}
}
