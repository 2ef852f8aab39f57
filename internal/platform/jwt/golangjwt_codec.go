package jwt

import (
	"errors"
	"fmt"
	"strings"

	golangjwt "github.com/golang-jwt/jwt/v5"
)

// GolangJWTCodec implements Codec with HS256 using the golang-jwt library.
type GolangJWTCodec struct {
	method *golangjwt.SigningMethodHMAC
	parser *golangjwt.Parser
}

var _ Codec = (*GolangJWTCodec)(nil)

func NewGolangJWTCodec() *GolangJWTCodec {
	return &GolangJWTCodec{
		method: golangjwt.SigningMethodHS256,
		parser: golangjwt.NewParser(
			golangjwt.WithValidMethods([]string{algHS256}),
			golangjwt.WithoutClaimsValidation(),
			golangjwt.WithStrictDecoding(),
		),
	}
}

// Encode signs the claims. Extra claims never override sub, iat or exp.
func (c *GolangJWTCodec) Encode(claims Claims, key []byte) (string, error) {
	token := golangjwt.NewWithClaims(c.method, golangjwt.MapClaims(claimsToMap(claims)))
	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature before looking at the payload.
func (c *GolangJWTCodec) Decode(tokenString string, key []byte) (*Claims, error) {
	segments := strings.Split(tokenString, ".")
	if len(segments) != 3 {
		return nil, malformed(errSegmentCount)
	}

	sig, err := c.parser.DecodeSegment(segments[2])
	if err != nil {
		return nil, malformed(fmt.Errorf("decode signature: %w", err))
	}

	if err := c.method.Verify(segments[0]+"."+segments[1], sig, key); err != nil {
		return nil, badSignature(err)
	}

	token, err := c.parser.ParseWithClaims(tokenString, golangjwt.MapClaims{}, func(_ *golangjwt.Token) (any, error) {
		return key, nil
	})
	if err != nil {
		if errors.Is(err, golangjwt.ErrTokenSignatureInvalid) {
			return nil, badSignature(err)
		}
		return nil, malformed(err)
	}

	mapClaims, ok := token.Claims.(golangjwt.MapClaims)
	if !ok {
		return nil, malformed(fmt.Errorf("unknown claims type: %T", token.Claims))
	}

	return claimsFromMap(mapClaims)
}

// claimsToMap flattens claims into a JWT payload with numeric iat and exp.
func claimsToMap(claims Claims) map[string]any {
	m := make(map[string]any, len(claims.Extra)+3)
	for name, val := range claims.Extra {
		m[name] = val
	}
	m[claimSubject] = claims.Subject
	m[claimIssuedAt] = golangjwt.NewNumericDate(claims.IssuedAt)
	m[claimExpiresAt] = golangjwt.NewNumericDate(claims.ExpiresAt)
	return m
}

// claimsFromMap reads sub, iat and exp from a decoded payload and keeps
// every other claim as an opaque extra.
func claimsFromMap(payload map[string]any) (*Claims, error) {
	mapClaims := golangjwt.MapClaims(payload)
	if _, ok := mapClaims[claimSubject]; !ok {
		return nil, malformed(errors.New("missing sub claim"))
	}

	sub, err := mapClaims.GetSubject()
	if err != nil {
		return nil, malformed(err)
	}

	iat, err := mapClaims.GetIssuedAt()
	if err != nil {
		return nil, malformed(err)
	}
	if iat == nil {
		return nil, malformed(errors.New("missing iat claim"))
	}

	exp, err := mapClaims.GetExpirationTime()
	if err != nil {
		return nil, malformed(err)
	}
	if exp == nil {
		return nil, malformed(errors.New("missing exp claim"))
	}

	claims := &Claims{
		Subject:   sub,
		IssuedAt:  iat.Time,
		ExpiresAt: exp.Time,
	}

	for name, val := range mapClaims {
		if isReserved(name) {
			continue
		}
		if claims.Extra == nil {
			claims.Extra = make(map[string]any)
		}
		claims.Extra[name] = val
	}

	return claims, nil
}
