package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ferdiebergado/credkit/internal/pkg/message"
	"github.com/ferdiebergado/credkit/internal/pkg/web"
	"github.com/ferdiebergado/credkit/internal/user"
)

type AuthService interface {
	LoginUser(ctx context.Context, params LoginUserParams) (string, error)
	ChangePassword(ctx context.Context, params ChangePasswordParams) (*user.ActionResult, error)
}

type Handler struct {
	svc AuthService
}

func NewHandler(svc AuthService) *Handler {
	return &Handler{svc: svc}
}

type LoginUserRequest struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required,notblank"`
}

func (r LoginUserRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("username", r.Username),
		slog.String("password", maskChar),
	)
}

type LoginUserResponse struct {
	Token string `json:"token"`
}

func (h *Handler) LoginUser(w http.ResponseWriter, r *http.Request) {
	req, err := web.ParamsFromContext[LoginUserRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	token, err := h.svc.LoginUser(r.Context(), LoginUserParams(req))
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			web.RespondUnauthorized(w, err, message.InvalidUser)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	web.JSON(w, http.StatusOK, &LoginUserResponse{Token: token})
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required,notblank"`
	NewPassword     string `json:"newPassword" validate:"required,notblank,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,notblank"`
}

func (r ChangePasswordRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("currentPassword", maskChar),
		slog.String("newPassword", maskChar),
		slog.String("confirmPassword", maskChar),
	)
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, err := user.IDFromPath(r)
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidUserID, nil)
		return
	}

	req, err := web.ParamsFromContext[ChangePasswordRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	params := ChangePasswordParams{
		UserID:          id,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	}
	result, err := h.svc.ChangePassword(r.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, ErrPasswordMismatch):
			web.RespondBadRequest(w, err, MsgPasswordMismatch, nil)
		case errors.Is(err, ErrPasswordUnchanged):
			web.RespondBadRequest(w, err, MsgPasswordUnchanged, nil)
		case errors.Is(err, ErrCurrentPasswordIncorrect):
			web.RespondBadRequest(w, err, MsgCurrentPasswordIncorrect, nil)
		case errors.Is(err, ErrUserNotFound):
			web.RespondNotFound(w, err, user.NotFoundMessage(id))
		default:
			web.RespondInternalServerError(w, err)
		}
		return
	}

	web.JSON(w, http.StatusOK, result)
}
