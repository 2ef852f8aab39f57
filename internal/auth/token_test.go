package auth_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ferdiebergado/credkit/internal/auth"
	"github.com/ferdiebergado/credkit/internal/platform/jwt"
	"github.com/ferdiebergado/credkit/internal/platform/metrics"
)

func TestTokenService_IssueVerify(t *testing.T) {
	t.Parallel()

	for _, tc := range codecs {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tokens := newTokenService(t, tc.codec, time.Hour, newFakeClock())

			token, err := tokens.Issue("alice", nil)
			if err != nil {
				t.Fatalf("tokens.Issue() = %v, want: nil", err)
			}

			if !tokens.Verify(token, "alice") {
				t.Error("tokens.Verify(token, alice) = false, want: true")
			}

			if tokens.Verify(token, "bob") {
				t.Error("tokens.Verify(token, bob) = true, want: false")
			}

			got, err := tokens.ExtractSubject(token)
			if err != nil {
				t.Fatalf("tokens.ExtractSubject() = %v, want: nil", err)
			}
			if got != "alice" {
				t.Errorf("tokens.ExtractSubject() = %q, want: %q", got, "alice")
			}
		})
	}
}

func TestTokenService_Claims(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	clock.Advance(750 * time.Millisecond)
	tokens := newTokenService(t, jwt.NewGolangJWTCodec(), 90*time.Second, clock)

	token, err := tokens.Issue("alice", map[string]any{"sub": "mallory", "exp": 1, "role": "admin"})
	if err != nil {
		t.Fatal(err)
	}

	claims, err := tokens.Validate(token)
	if err != nil {
		t.Fatalf("tokens.Validate() = %v, want: nil", err)
	}

	if claims.Subject != "alice" {
		t.Errorf("claims.Subject = %q, want: %q", claims.Subject, "alice")
	}

	wantIat := clock.Now().Truncate(time.Second)
	if !claims.IssuedAt.Equal(wantIat) {
		t.Errorf("claims.IssuedAt = %v, want: %v", claims.IssuedAt, wantIat)
	}

	if got, want := claims.ExpiresAt.Sub(claims.IssuedAt), 90*time.Second; got != want {
		t.Errorf("exp - iat = %v, want: %v", got, want)
	}

	if got := claims.Extra["role"]; got != "admin" {
		t.Errorf("claims.Extra[role] = %v, want: admin", got)
	}
}

func TestTokenService_EmptySubject(t *testing.T) {
	t.Parallel()

	tokens := newTokenService(t, jwt.NewGolangJWTCodec(), time.Minute, newFakeClock())

	token, err := tokens.Issue("", nil)
	if err != nil {
		t.Fatalf("tokens.Issue(\"\") = %v, want: nil", err)
	}
	if !tokens.Verify(token, "") {
		t.Error("tokens.Verify(token, \"\") = false, want: true")
	}
}

func TestTokenService_Expiry(t *testing.T) {
	t.Parallel()

	for _, tc := range codecs {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			clock := newFakeClock()
			tokens := newTokenService(t, tc.codec, 2*time.Second, clock)

			token, err := tokens.Issue("alice", nil)
			if err != nil {
				t.Fatal(err)
			}

			clock.Advance(1999 * time.Millisecond)
			if !tokens.Verify(token, "alice") {
				t.Error("tokens.Verify() before expiry = false, want: true")
			}

			clock.Advance(time.Millisecond)
			if tokens.Verify(token, "alice") {
				t.Error("tokens.Verify() at expiry = true, want: false")
			}

			if _, err := tokens.Validate(token); !errors.Is(err, auth.ErrTokenExpired) {
				t.Errorf("tokens.Validate() = %v, want: %v", err, auth.ErrTokenExpired)
			}

			subject, err := tokens.ExtractSubject(token)
			if err != nil || subject != "alice" {
				t.Errorf("tokens.ExtractSubject() = (%q, %v), want: (alice, nil)", subject, err)
			}
		})
	}
}

func TestTokenService_Tampering(t *testing.T) {
	t.Parallel()

	for _, tc := range codecs {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tokens := newTokenService(t, tc.codec, time.Hour, newFakeClock())
			token, err := tokens.Issue("alice", nil)
			if err != nil {
				t.Fatal(err)
			}

			sigStart := strings.LastIndex(token, ".") + 1
			for i := sigStart; i < len(token); i++ {
				replacement := byte('A')
				if token[i] == 'A' {
					replacement = 'B'
				}
				tampered := token[:i] + string(replacement) + token[i+1:]

				if tokens.Verify(tampered, "alice") {
					t.Fatalf("tokens.Verify() with signature byte %d changed = true, want: false", i-sigStart)
				}
			}
		})
	}
}

func TestTokenService_DecodeFailures(t *testing.T) {
	t.Parallel()

	tokens := newTokenService(t, jwt.NewGolangJWTCodec(), time.Hour, newFakeClock())
	valid, err := tokens.Issue("alice", nil)
	if err != nil {
		t.Fatal(err)
	}

	otherKey := jwt.StaticKey("ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")
	foreign, err := jwt.NewGolangJWTCodec().Encode(jwt.Claims{
		Subject:   "alice",
		IssuedAt:  newFakeClock().Now(),
		ExpiresAt: newFakeClock().Now().Add(time.Hour),
	}, otherKey.Key())
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"Empty", "", jwt.ErrMalformed},
		{"Garbage", "not-a-token", jwt.ErrMalformed},
		{"Two segments", valid[:strings.LastIndex(valid, ".")], jwt.ErrMalformed},
		{"Wrong key", foreign, jwt.ErrBadSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if tokens.Verify(tt.token, "alice") {
				t.Error("tokens.Verify() = true, want: false")
			}

			_, err := tokens.ExtractSubject(tt.token)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("tokens.ExtractSubject() = %v, want: %v", err, tt.wantErr)
			}

			var decodeErr *jwt.DecodeError
			if !errors.As(err, &decodeErr) {
				t.Errorf("tokens.ExtractSubject() error type = %T, want: *jwt.DecodeError", err)
			}
		})
	}
}

func TestNewTokenService_Lifetime(t *testing.T) {
	t.Parallel()

	keys := jwt.StaticKey(testSecret)

	tests := []struct {
		name     string
		lifetime time.Duration
		wantErr  error
	}{
		{"One second", time.Second, nil},
		{"Sub-second", 999 * time.Millisecond, auth.ErrInvalidLifetime},
		{"Zero", 0, auth.ErrInvalidLifetime},
		{"Negative", -time.Hour, auth.ErrInvalidLifetime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := auth.NewTokenService(jwt.NewGolangJWTCodec(), keys, tt.lifetime)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("auth.NewTokenService() = %v, want: %v", err, tt.wantErr)
			}
		})
	}
}

func TestVerificationOutcome(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"Nil", nil, metrics.OutcomeSuccess},
		{"Expired", auth.ErrTokenExpired, metrics.OutcomeExpired},
		{"Bad signature", &jwt.DecodeError{Kind: jwt.BadSignature, Err: errors.New("mac")}, metrics.OutcomeBadSig},
		{"Malformed", &jwt.DecodeError{Kind: jwt.Malformed, Err: errors.New("json")}, metrics.OutcomeMalformed},
		{"Other", errors.New("boom"), metrics.OutcomeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := auth.VerificationOutcome(tt.err); got != tt.want {
				t.Errorf("auth.VerificationOutcome(%v) = %q, want: %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestTokenService_CodecErrors(t *testing.T) {
	t.Parallel()

	errCodec := errors.New("codec failure")
	codec := &jwt.StubCodec{
		EncodeFunc: func(jwt.Claims, []byte) (string, error) {
			return "", errCodec
		},
		DecodeFunc: func(string, []byte) (*jwt.Claims, error) {
			return nil, errCodec
		},
	}
	tokens := newTokenService(t, codec, time.Hour, newFakeClock())

	if _, err := tokens.Issue("alice", nil); !errors.Is(err, errCodec) {
		t.Errorf("tokens.Issue() = %v, want: %v", err, errCodec)
	}

	if _, err := tokens.ExtractSubject("a.b.c"); !errors.Is(err, errCodec) {
		t.Errorf("tokens.ExtractSubject() = %v, want: %v", err, errCodec)
	}

	_, err := tokens.Validate("a.b.c")
	if got := auth.VerificationOutcome(err); got != metrics.OutcomeError {
		t.Errorf("auth.VerificationOutcome(%v) = %q, want: %q", err, got, metrics.OutcomeError)
	}

	if tokens.Verify("a.b.c", "alice") {
		t.Error("tokens.Verify() = true, want: false")
	}
}

func TestTokenService_RegisteredNameExtras(t *testing.T) {
	t.Parallel()

	extras := []map[string]any{
		{"aud": 5},
		{"iss": 7},
		{"jti": true},
		{"nbf": "later"},
		{"aud": []any{1, "x"}, "uid": int64(42)},
	}

	for _, tc := range codecs {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tokens := newTokenService(t, tc.codec, time.Hour, newFakeClock())
			for _, extra := range extras {
				token, err := tokens.Issue("alice", extra)
				if err != nil {
					t.Fatalf("tokens.Issue(alice, %v) = %v, want: nil", extra, err)
				}

				if !tokens.Verify(token, "alice") {
					t.Errorf("tokens.Verify(issue(alice, %v), alice) = false, want: true", extra)
				}
			}
		})
	}
}
