package auth

import (
	"log/slog"
	"net/http"

	"github.com/ferdiebergado/credkit/internal/pkg/message"
	"github.com/ferdiebergado/credkit/internal/pkg/security"
	"github.com/ferdiebergado/credkit/internal/pkg/web"
	"github.com/ferdiebergado/credkit/internal/platform/metrics"
)

// RequireToken rejects requests without a valid bearer token and stores the
// token subject in the request context.
func RequireToken(tokens *TokenService, recorder metrics.Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			slog.Debug("Verifying access token...")

			token, err := security.ExtractBearerToken(r)
			if err != nil {
				recorder.RecordTokenVerification(metrics.OutcomeMissing)
				web.RespondUnauthorized(w, err, message.InvalidToken)
				return
			}

			subject, err := authenticateToken(tokens, recorder, token)
			if err != nil {
				web.RespondUnauthorized(w, err, message.InvalidToken)
				return
			}

			ctx := ContextWithUser(r.Context(), subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// authenticateToken checks a bearer token against its own subject and
// records the outcome.
func authenticateToken(tokens *TokenService, recorder metrics.Recorder, token string) (string, error) {
	subject, err := tokens.ExtractSubject(token)
	if err != nil {
		recorder.RecordTokenVerification(VerificationOutcome(err))
		return "", err
	}

	outcome, ok := tokens.check(token, subject)
	recorder.RecordTokenVerification(outcome)
	if !ok {
		return "", tokenRejectedError(outcome)
	}
	return subject, nil
}

type tokenRejectedError string

func (e tokenRejectedError) Error() string {
	return "invalid token: " + string(e)
}
