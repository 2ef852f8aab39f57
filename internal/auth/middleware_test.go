package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ferdiebergado/credkit/internal/auth"
	"github.com/ferdiebergado/credkit/internal/pkg/message"
	"github.com/ferdiebergado/credkit/internal/pkg/web/webtest"
	"github.com/ferdiebergado/credkit/internal/platform/jwt"
	"github.com/ferdiebergado/credkit/internal/platform/metrics"
)

func TestRequireToken(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	tokens := newTokenService(t, jwt.NewGolangJWTCodec(), time.Minute, clock)

	valid, err := tokens.Issue("admin", nil)
	if err != nil {
		t.Fatal(err)
	}

	expiredClock := newFakeClock()
	expiredClock.Advance(-time.Hour)
	expired, err := newTokenService(t, jwt.NewGolangJWTCodec(), time.Minute, expiredClock).Issue("admin", nil)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		header  string
		code    int
		outcome string
	}{
		{"Valid token", "Bearer " + valid, http.StatusOK, metrics.OutcomeSuccess},
		{"Lowercase scheme", "bearer " + valid, http.StatusOK, metrics.OutcomeSuccess},
		{"Missing header", "", http.StatusUnauthorized, metrics.OutcomeMissing},
		{"Basic scheme", "Basic YWRtaW46YWRtaW4=", http.StatusUnauthorized, metrics.OutcomeMissing},
		{"Malformed token", "Bearer abc.def", http.StatusUnauthorized, metrics.OutcomeMalformed},
		{"Expired token", "Bearer " + expired, http.StatusUnauthorized, metrics.OutcomeExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var subject string
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				subject, _ = auth.UserFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			spy := newSpyRecorder()
			req := httptest.NewRequest(http.MethodGet, "/users", http.NoBody)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			auth.RequireToken(tokens, spy)(handler).ServeHTTP(rec, req)

			if rec.Code != tt.code {
				t.Fatalf(message.FmtErrStatusCode, rec.Code, tt.code)
			}

			if spy.verifications[tt.outcome] != 1 {
				t.Errorf("verification outcomes = %v, want one %q", spy.verifications, tt.outcome)
			}

			if tt.code == http.StatusOK {
				if subject != "admin" {
					t.Errorf("subject in context = %q, want: %q", subject, "admin")
				}
				return
			}

			res := rec.Result()
			defer res.Body.Close()
			body := webtest.DecodeJSONResponse(t, res)
			if body["message"] != message.InvalidToken {
				t.Errorf("body[%q] = %v, want: %q", "message", body["message"], message.InvalidToken)
			}
		})
	}
}
