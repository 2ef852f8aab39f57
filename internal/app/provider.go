package app

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/ferdiebergado/credkit/internal/config"
	"github.com/ferdiebergado/credkit/internal/platform/db"
	"github.com/ferdiebergado/credkit/internal/platform/hash"
	"github.com/ferdiebergado/credkit/internal/platform/jwt"
	"github.com/ferdiebergado/credkit/internal/platform/metrics"
	"github.com/ferdiebergado/credkit/internal/platform/router"
	"github.com/ferdiebergado/credkit/internal/platform/validation"
)

// MetricsRecorder is a metrics sink that can also be scraped.
type MetricsRecorder interface {
	metrics.Recorder
	Handler() http.Handler
}

type Provider struct {
	DB        *sql.DB
	Codec     jwt.Codec
	Keys      jwt.KeySource
	Hasher    hash.Hasher
	Validator validation.Validator
	Router    router.Router
	TxMgr     db.TxManager
	Recorder  MetricsRecorder
}

func newProvider(cfg *config.Config, dbConn *sql.DB) (*Provider, error) {
	keys, err := jwt.NewKeyProvider(cfg.JWT.Secret)
	if err != nil {
		return nil, fmt.Errorf("load signing key: %w", err)
	}

	codec, err := NewCodec(cfg.JWT.Codec)
	if err != nil {
		return nil, err
	}

	hasher, err := NewHasher(cfg.Hash)
	if err != nil {
		return nil, err
	}

	provider := &Provider{
		DB:        dbConn,
		Codec:     codec,
		Keys:      keys,
		Hasher:    hasher,
		Validator: validation.NewGoPlaygroundValidator(),
		Router:    router.NewGoexpressRouter(),
		TxMgr:     db.NewSQLTxManager(dbConn),
		Recorder:  metrics.NewPrometheusRecorder(),
	}

	return provider, nil
}

// NewCodec returns the token codec named in the config.
//
//nolint:ireturn //The codec is selected at runtime.
func NewCodec(name string) (jwt.Codec, error) {
	switch name {
	case config.CodecGolangJWT:
		return jwt.NewGolangJWTCodec(), nil
	case config.CodecJWX:
		return jwt.NewJWXCodec(), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownCodec, name)
	}
}

// NewHasher hashes with the configured algorithm and still verifies hashes
// produced by the other one.
//
//nolint:ireturn //The hasher is selected at runtime.
func NewHasher(cfg *config.Hash) (hash.Hasher, error) {
	argon2 := hash.NewArgon2Hasher(cfg.Argon2, cfg.Pepper)
	bcrypt := hash.NewBcryptHasher(cfg.BcryptCost)

	switch cfg.Algorithm {
	case config.HashArgon2:
		return hash.NewMultiHasher(argon2, bcrypt), nil
	case config.HashBcrypt:
		return hash.NewMultiHasher(bcrypt, argon2), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownHash, cfg.Algorithm)
	}
}
