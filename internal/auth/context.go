package auth

import "context"

type ctxKey int

const userCtxKey ctxKey = iota

// ContextWithUser stores the token subject of an authenticated request.
//
//nolint:ireturn //This function needs to return a context.
func ContextWithUser(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, userCtxKey, subject)
}

func UserFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(userCtxKey).(string)
	return subject, ok
}
