package jwt

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
)

// MinKeyLength is the minimum secret size for HS256, in bytes.
const MinKeyLength = 32

var (
	ErrMissingKey  = errors.New("jwt: signing key is missing")
	ErrKeyTooShort = errors.New("jwt: signing key is too short")
)

// KeySource supplies the symmetric signing key.
type KeySource interface {
	Key() []byte
}

// KeyProvider holds the process-wide signing key. It never changes after construction.
type KeyProvider struct {
	key []byte
}

var _ KeySource = (*KeyProvider)(nil)

func NewKeyProvider(secret string) (*KeyProvider, error) {
	if secret == "" {
		return nil, ErrMissingKey
	}

	if len(secret) < MinKeyLength {
		return nil, fmt.Errorf("%w: got %d bytes, need at least %d", ErrKeyTooShort, len(secret), MinKeyLength)
	}

	return &KeyProvider{key: []byte(secret)}, nil
}

// Key returns a copy of the signing key.
func (p *KeyProvider) Key() []byte {
	return slices.Clone(p.key)
}

func (p *KeyProvider) LogValue() slog.Value {
	return slog.StringValue("*")
}
