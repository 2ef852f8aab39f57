package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ferdiebergado/credkit/internal/pkg/message"
	"github.com/ferdiebergado/credkit/internal/pkg/web"
)

type UserService interface {
	Create(ctx context.Context, params CreateUserParams) (*ActionResult, error)
	List(ctx context.Context) ([]User, error)
	ListActive(ctx context.Context) ([]User, error)
	Activate(ctx context.Context, id int64) (*ActionResult, error)
	Deactivate(ctx context.Context, id int64) (*ActionResult, error)
	Delete(ctx context.Context, id int64) (*ActionResult, error)
}

type Handler struct {
	svc UserService
}

func NewHandler(svc UserService) *Handler {
	return &Handler{svc: svc}
}

type CreateRequest struct {
	Username string `json:"username" validate:"required,notblank,min=3,max=50"`
	Password string `json:"password" validate:"required,notblank,min=6"`
}

func (r CreateRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("username", r.Username),
		slog.String("password", "*"),
	)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := web.ParamsFromContext[CreateRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	params := CreateUserParams(req)
	result, err := h.svc.Create(r.Context(), params)
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			web.RespondConflict(w, err, "Username already exists: "+req.Username)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	web.JSON(w, http.StatusCreated, result)
}

// UserData is the public view of a user.
type UserData struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	web.JSON(w, http.StatusOK, newUserList(users))
}

func (h *Handler) ListActive(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListActive(r.Context())
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	web.JSON(w, http.StatusOK, newUserList(users))
}

func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.svc.Activate)
}

func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.svc.Deactivate)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.svc.Delete)
}

func (h *Handler) act(w http.ResponseWriter, r *http.Request, action func(context.Context, int64) (*ActionResult, error)) {
	id, err := IDFromPath(r)
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidUserID, nil)
		return
	}

	result, err := action(r.Context(), id)
	if err != nil {
		if IsNotFound(err) {
			web.RespondNotFound(w, err, NotFoundMessage(id))
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	web.JSON(w, http.StatusOK, result)
}

// IDFromPath parses the positive {id} path value.
func IDFromPath(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user id %q", raw)
	}
	return id, nil
}

func newUserList(users []User) []UserData {
	data := make([]UserData, 0, len(users))
	for _, u := range users {
		data = append(data, UserData{
			ID:        u.ID,
			Username:  u.Username,
			IsActive:  u.IsActive,
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		})
	}
	return data
}
