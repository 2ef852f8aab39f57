// Package auth issues and verifies access tokens, authenticates users and
// runs the password change workflow.
package auth

import (
	"github.com/ferdiebergado/credkit/internal/platform/hash"
	"github.com/ferdiebergado/credkit/internal/platform/metrics"
)

type Provider struct {
	Store    CredentialStore
	Hasher   hash.Hasher
	Tokens   *TokenService
	Recorder metrics.Recorder
}

type Module struct {
	authn   *Authenticator
	svc     *Service
	handler *Handler
	tokens  *TokenService
}

func (m *Module) Authenticator() *Authenticator {
	return m.authn
}

func (m *Module) Service() *Service {
	return m.svc
}

func (m *Module) Handler() *Handler {
	return m.handler
}

func (m *Module) Tokens() *TokenService {
	return m.tokens
}

func NewModule(provider *Provider) *Module {
	authn := NewAuthenticator(provider.Store, provider.Hasher)
	svc := NewService(authn, provider.Tokens, provider.Store, provider.Hasher, provider.Recorder)
	return &Module{
		authn:   authn,
		svc:     svc,
		handler: NewHandler(svc),
		tokens:  provider.Tokens,
	}
}
