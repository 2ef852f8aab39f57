package jwt

import (
	"errors"
	"fmt"
	"time"
)

const (
	claimSubject   = "sub"
	claimIssuedAt  = "iat"
	claimExpiresAt = "exp"

	algHS256 = "HS256"
)

// Claims is the claim set carried by a token.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Extra     map[string]any
}

// Codec converts claims to and from their signed wire form.
// Implementations never look at the clock.
type Codec interface {
	Encode(claims Claims, key []byte) (string, error)
	Decode(token string, key []byte) (*Claims, error)
}

type DecodeErrorKind int

const (
	Malformed DecodeErrorKind = iota + 1
	BadSignature
)

func (k DecodeErrorKind) String() string {
	switch k {
	case Malformed:
		return "malformed"
	case BadSignature:
		return "bad_signature"
	default:
		return "unknown"
	}
}

var (
	ErrMalformed    = errors.New("jwt: malformed token")
	ErrBadSignature = errors.New("jwt: bad signature")
)

// DecodeError reports why a token could not be decoded.
// It matches ErrMalformed or ErrBadSignature with errors.Is.
type DecodeError struct {
	Kind DecodeErrorKind
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("jwt: decode token: %s", e.Kind)
	}
	return fmt.Sprintf("jwt: decode token: %s: %v", e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	switch target {
	case ErrMalformed:
		return e.Kind == Malformed
	case ErrBadSignature:
		return e.Kind == BadSignature
	default:
		return false
	}
}

func malformed(err error) *DecodeError {
	return &DecodeError{Kind: Malformed, Err: err}
}

func badSignature(err error) *DecodeError {
	return &DecodeError{Kind: BadSignature, Err: err}
}

var errSegmentCount = errors.New("token must have exactly 3 segments")

func isReserved(name string) bool {
	return name == claimSubject || name == claimIssuedAt || name == claimExpiresAt
}
