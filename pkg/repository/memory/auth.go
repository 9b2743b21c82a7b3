package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/argus-sec/argus/pkg/domain/model/auth"
)

type tokenStore struct {
	mu     sync.RWMutex
	tokens map[auth.TokenID]*auth.Token
}

func newTokenStore() *tokenStore {
	return &tokenStore{
		tokens: make(map[auth.TokenID]*auth.Token),
	}
}

func (m *Memory) PutToken(ctx context.Context, token *auth.Token) error {
	if err := token.Validate(); err != nil {
		return goerr.Wrap(err, "invalid token")
	}

	m.tokens.mu.Lock()
	defer m.tokens.mu.Unlock()

	m.tokens.tokens[token.ID] = token
	return nil
}

func (m *Memory) GetToken(ctx context.Context, tokenID auth.TokenID) (*auth.Token, error) {
	if err := tokenID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid token ID")
	}

	m.tokens.mu.RLock()
	defer m.tokens.mu.RUnlock()

	token, ok := m.tokens.tokens[tokenID]
	if !ok {
		return nil, ErrNotFound
	}

	return token, nil
}

func (m *Memory) DeleteToken(ctx context.Context, tokenID auth.TokenID) error {
	if err := tokenID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid token ID")
	}

	m.tokens.mu.Lock()
	defer m.tokens.mu.Unlock()

	if _, ok := m.tokens.tokens[tokenID]; !ok {
		return ErrNotFound
	}

	delete(m.tokens.tokens, tokenID)
	return nil
}
