package web

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ferdiebergado/credkit/internal/pkg/message"
	"github.com/ferdiebergado/gopherkit/http/response"
)

// OKResponse represents the structure of a JSON-encoded success response.
//
// The Data field is omitted from the response if it is nil.
type OKResponse[T any] struct {
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
}

// ErrorResponse represents the structure of a JSON-encoded error response.
//
// It includes a general error message and, optionally, a map of field-level
// validation errors. The Errors field is omitted from the response if empty.
type ErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// OK writes a JSON-encoded success response wrapped in an OKResponse envelope.
//
// If msg is non-nil, its value is included in the response under the "message" field.
// If data is non-nil, it is included under the "data" field.
//
//	{
//	  "message": "Users retrieved.",
//	  "data": [...]
//	}
func OK[T any](w http.ResponseWriter, status int, msg *string, data *T) {
	payload := &OKResponse[*T]{}
	if msg != nil {
		payload.Message = *msg
	}

	if data != nil {
		payload.Data = data
	}

	response.JSON(w, status, payload)
}

// JSON writes payload as-is, for endpoints whose body shape is part of the public contract.
func JSON(w http.ResponseWriter, status int, payload any) {
	response.JSON(w, status, payload)
}

// Fail writes a JSON-encoded error response to w with the provided HTTP status code.
//
// The reason is logged but never written to the client.
//
//	{
//	  "message": "Input data validation error",
//	  "errors": {
//	    "newPassword": "newPassword must be at least 6 characters long"
//	  }
//	}
func Fail(w http.ResponseWriter, status int, reason error, msg string, errs map[string]string) {
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	slog.Log(context.Background(), level, "Request failed.", "status", status, "reason", reason)

	payload := &ErrorResponse{
		Message: msg,
		Errors:  errs,
	}
	response.JSON(w, status, payload)
}

func RespondBadRequest(w http.ResponseWriter, err error, msg string, errs map[string]string) {
	Fail(w, http.StatusBadRequest, err, msg, errs)
}

func RespondUnauthorized(w http.ResponseWriter, err error, msg string) {
	Fail(w, http.StatusUnauthorized, err, msg, nil)
}

func RespondNotFound(w http.ResponseWriter, err error, msg string) {
	Fail(w, http.StatusNotFound, err, msg, nil)
}

func RespondConflict(w http.ResponseWriter, err error, msg string) {
	Fail(w, http.StatusConflict, err, msg, nil)
}

func RespondUnsupportedMediaType(w http.ResponseWriter, err error) {
	Fail(w, http.StatusUnsupportedMediaType, err, message.InvalidInput, nil)
}

func RespondRequestEntityTooLarge(w http.ResponseWriter, err error) {
	Fail(w, http.StatusRequestEntityTooLarge, err, message.InvalidInput, nil)
}

func RespondUnprocessableEntity(w http.ResponseWriter, err error, msg string, errs map[string]string) {
	Fail(w, http.StatusUnprocessableEntity, err, msg, errs)
}

func RespondInternalServerError(w http.ResponseWriter, err error) {
	Fail(w, http.StatusInternalServerError, err, message.UnexpectedError, nil)
}
