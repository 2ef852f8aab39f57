package app

import (
	"net/http"

	"github.com/ferdiebergado/credkit/internal/auth"
	"github.com/ferdiebergado/credkit/internal/middleware"
	"github.com/ferdiebergado/credkit/internal/platform/router"
	"github.com/ferdiebergado/credkit/internal/platform/validation"
	"github.com/ferdiebergado/credkit/internal/user"
)

// apiPrefix versions every JSON endpoint. Operational routes such as /metrics stay at the root.
const apiPrefix = "/api/v1"

type mw = func(next http.Handler) http.Handler

// jsonBody decodes and validates a JSON request body of type T.
func jsonBody[T any](validator validation.Validator, maxBodySize int64) []mw {
	return []mw{
		middleware.CheckContentType,
		middleware.DecodePayload[T](maxBodySize),
		middleware.ValidateInput[T](validator),
	}
}

func mountAuthRoutes(r router.Router, handler *auth.Handler, validator validation.Validator, maxBodySize int64) {
	r.Post(apiPrefix+"/auth/login", handler.LoginUser, jsonBody[auth.LoginUserRequest](validator, maxBodySize)...)
}

func mountUserRoutes(r router.Router, userHandler *user.Handler, authHandler *auth.Handler, requireToken mw, validator validation.Validator, maxBodySize int64) {
	r.Post(apiPrefix+"/users", userHandler.Create, jsonBody[user.CreateRequest](validator, maxBodySize)...)
	r.Get(apiPrefix+"/users", userHandler.List, requireToken)

	r.Group(apiPrefix+"/users", func(gr router.Router) {
		gr.Get("/active", userHandler.ListActive)
		gr.Put("/{id}/password", authHandler.ChangePassword, jsonBody[auth.ChangePasswordRequest](validator, maxBodySize)...)
		gr.Put("/{id}/activate", userHandler.Activate)
		gr.Put("/{id}/deactivate", userHandler.Deactivate)
		gr.Delete("/{id}", userHandler.Delete)
	}, requireToken)
}

func mountMetricsRoute(r router.Router, metricsHandler http.Handler) {
	r.Get("/metrics", metricsHandler.ServeHTTP)
}
