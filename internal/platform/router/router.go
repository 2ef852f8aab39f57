package router

import "net/http"

// Router registers handlers with optional per-route middlewares.
// Patterns follow net/http.ServeMux syntax, so handlers read path
// parameters with r.PathValue.
type Router interface {
	http.Handler

	Use(middleware func(next http.Handler) http.Handler)
	Get(pattern string, handlerFunc http.HandlerFunc, middlewares ...func(next http.Handler) http.Handler)
	Post(pattern string, handlerFunc http.HandlerFunc, middlewares ...func(next http.Handler) http.Handler)
	Put(pattern string, handlerFunc http.HandlerFunc, middlewares ...func(next http.Handler) http.Handler)
	Patch(pattern string, handlerFunc http.HandlerFunc, middlewares ...func(next http.Handler) http.Handler)
	Delete(pattern string, handlerFunc http.HandlerFunc, middlewares ...func(next http.Handler) http.Handler)

	// Group registers routes under prefix. The group inherits the middlewares
	// registered so far and adds its own.
	Group(prefix string, fn func(r Router), middlewares ...func(next http.Handler) http.Handler)
}
