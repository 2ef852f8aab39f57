package auth_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ferdiebergado/credkit/internal/auth"
	"github.com/ferdiebergado/credkit/internal/platform/hash"
	"github.com/ferdiebergado/credkit/internal/platform/jwt"
	"github.com/ferdiebergado/credkit/internal/user"
)

const testSecret = "1e32ef1581f5954f9e478afa401c7bd1631b08e94a4721c3fefea4d351a6217e"

var codecs = []struct {
	name  string
	codec jwt.Codec
}{
	{"golang-jwt", jwt.NewGolangJWTCodec()},
	{"jwx", jwt.NewJWXCodec()},
}

// fakeClock is a settable clock shared by a test's token service.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 10, 18, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTokenService(t *testing.T, codec jwt.Codec, lifetime time.Duration, clock *fakeClock) *auth.TokenService {
	t.Helper()

	keys, err := jwt.NewKeyProvider(testSecret)
	if err != nil {
		t.Fatal(err)
	}

	tokens, err := auth.NewTokenService(codec, keys, lifetime, auth.WithClock(clock.Now))
	if err != nil {
		t.Fatal(err)
	}
	return tokens
}

// prefixHasher is a transparent Hasher for tests.
func prefixHasher() *hash.StubHasher {
	const prefix = "hashed:"
	return &hash.StubHasher{
		HashFunc: func(plain string) (string, error) {
			return prefix + plain, nil
		},
		VerifyFunc: func(plain, hashed string) (bool, error) {
			return strings.TrimPrefix(hashed, prefix) == plain, nil
		},
	}
}

// memStore is an in-memory CredentialStore that counts writes.
type memStore struct {
	mu     sync.Mutex
	users  map[int64]user.User
	writes int
}

var _ auth.CredentialStore = (*memStore)(nil)

func newMemStore(users ...user.User) *memStore {
	s := &memStore{users: make(map[int64]user.User, len(users))}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *memStore) FindByUsername(_ context.Context, username string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (s *memStore) FindByID(_ context.Context, id int64) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return &u, nil
}

func (s *memStore) Save(_ context.Context, u *user.User) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	s.users[u.ID] = *u
	saved := *u
	return &saved, nil
}

func (s *memStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *memStore) Hash(id int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id].PasswordHash
}

// spyRecorder counts outcomes per metric.
type spyRecorder struct {
	mu            sync.Mutex
	logins        map[string]int
	verifications map[string]int
	changes       map[string]int
}

func newSpyRecorder() *spyRecorder {
	return &spyRecorder{
		logins:        make(map[string]int),
		verifications: make(map[string]int),
		changes:       make(map[string]int),
	}
}

func (s *spyRecorder) RecordLogin(outcome string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logins[outcome]++
}

func (s *spyRecorder) RecordTokenVerification(outcome string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verifications[outcome]++
}

func (s *spyRecorder) RecordPasswordChange(outcome string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changes[outcome]++
}

func (s *spyRecorder) ObserveRequest(string, int, time.Duration) {}
