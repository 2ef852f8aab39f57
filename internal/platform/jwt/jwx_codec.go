package jwt

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jws"
)

// JWXCodec implements Codec with HS256 using lestrrat-go/jwx.
// Its tokens are interchangeable with GolangJWTCodec tokens.
//
// The payload is signed as raw JWS so extra claims stay opaque, even when
// they reuse registered names such as aud or nbf.
type JWXCodec struct{}

var _ Codec = (*JWXCodec)(nil)

func NewJWXCodec() *JWXCodec {
	return &JWXCodec{}
}

// Encode signs the claims. Extra claims never override sub, iat or exp.
func (c *JWXCodec) Encode(claims Claims, key []byte) (string, error) {
	payload, err := json.Marshal(claimsToMap(claims))
	if err != nil {
		return "", fmt.Errorf("marshal claims: %w", err)
	}

	headers := jws.NewHeaders()
	if err := headers.Set(jws.TypeKey, "JWT"); err != nil {
		return "", fmt.Errorf("set typ header: %w", err)
	}

	signed, err := jws.Sign(payload, jws.WithKey(jwa.HS256, key, jws.WithProtectedHeaders(headers)))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return string(signed), nil
}

// Decode verifies the signature before looking at the payload.
func (c *JWXCodec) Decode(tokenString string, key []byte) (*Claims, error) {
	segments := strings.Split(tokenString, ".")
	if len(segments) != 3 {
		return nil, malformed(errSegmentCount)
	}

	if _, err := base64.RawURLEncoding.Strict().DecodeString(segments[2]); err != nil {
		return nil, malformed(fmt.Errorf("decode signature: %w", err))
	}

	payload, err := jws.Verify([]byte(tokenString), jws.WithKey(jwa.HS256, key))
	if err != nil {
		return nil, badSignature(err)
	}

	var claimMap map[string]any
	if err := json.Unmarshal(payload, &claimMap); err != nil {
		return nil, malformed(fmt.Errorf("decode payload: %w", err))
	}

	return claimsFromMap(claimMap)
}
