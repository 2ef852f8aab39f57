package hash

import "errors"

var (
	ErrEmptyPassword   = errors.New("hash: password must not be empty")
	ErrInvalidHash     = errors.New("hash: invalid hash format")
	ErrUnsupportedHash = errors.New("hash: no hasher supports this hash")
)

// Hasher creates and checks one-way password hashes.
// Verify compares in constant time and reports a mismatch as (false, nil).
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hashed string) (bool, error)
}

// recognizer is implemented by hashers that can tell their own hash format apart.
type recognizer interface {
	Supports(hashed string) bool
}
