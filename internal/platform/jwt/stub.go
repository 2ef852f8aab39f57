package jwt

import "errors"

type StubCodec struct {
	EncodeFunc func(claims Claims, key []byte) (string, error)
	DecodeFunc func(token string, key []byte) (*Claims, error)
}

var _ Codec = (*StubCodec)(nil)

func (s *StubCodec) Encode(claims Claims, key []byte) (string, error) {
	if s.EncodeFunc == nil {
		return "", errors.New("Encode() not implemented by stub")
	}
	return s.EncodeFunc(claims, key)
}

func (s *StubCodec) Decode(token string, key []byte) (*Claims, error) {
	if s.DecodeFunc == nil {
		return nil, errors.New("Decode() not implemented by stub")
	}
	return s.DecodeFunc(token, key)
}

// StaticKey is a KeySource backed by a fixed byte slice.
type StaticKey []byte

func (k StaticKey) Key() []byte {
	return k
}
