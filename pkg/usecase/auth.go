package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/argus-sec/argus/pkg/domain/interfaces"
	"github.com/argus-sec/argus/pkg/domain/model/auth"
	"github.com/argus-sec/argus/pkg/domain/types"
)

// AuthUseCaseInterface abstracts token-based authentication so the no-auth
// development mode can stand in for the real implementation.
type AuthUseCaseInterface interface {
	ValidateToken(ctx context.Context, tokenID auth.TokenID, secret auth.TokenSecret) (*auth.Token, error)
	IssueToken(ctx context.Context, userID types.UserID, ttl time.Duration) (*auth.Token, auth.TokenSecret, error)
	RevokeToken(ctx context.Context, tokenID auth.TokenID) error
	IsNoAuthn() bool
}

// AuthUseCase validates API tokens against the repository
type AuthUseCase struct {
	repo interfaces.Repository
}

var _ AuthUseCaseInterface = &AuthUseCase{}

func NewAuthUseCase(repo interfaces.Repository) *AuthUseCase {
	return &AuthUseCase{repo: repo}
}

// ValidateToken resolves a token ID and checks the presented secret and
// expiry. Every failure maps to ErrUnauthorized so callers cannot tell a
// missing token from a bad secret.
func (uc *AuthUseCase) ValidateToken(ctx context.Context, tokenID auth.TokenID, secret auth.TokenSecret) (*auth.Token, error) {
	token, err := uc.repo.GetToken(ctx, tokenID)
	if err != nil {
		return nil, goerr.Wrap(ErrUnauthorized, "unknown token")
	}

	if !token.VerifySecret(secret) {
		return nil, goerr.Wrap(ErrUnauthorized, "token secret mismatch")
	}

	if token.IsExpired(time.Now()) {
		return nil, goerr.Wrap(ErrUnauthorized, "token expired")
	}

	return token, nil
}

// IssueToken provisions a new token. The returned secret is shown once and
// never stored.
func (uc *AuthUseCase) IssueToken(ctx context.Context, userID types.UserID, ttl time.Duration) (*auth.Token, auth.TokenSecret, error) {
	token, secret, err := auth.NewToken(userID, ttl)
	if err != nil {
		return nil, "", goerr.Wrap(err, "failed to issue token", goerr.V(UserIDKey, userID))
	}

	if err := uc.repo.PutToken(ctx, token); err != nil {
		return nil, "", goerr.Wrap(err, "failed to store token", goerr.V(UserIDKey, userID))
	}

	return token, secret, nil
}

// RevokeToken deletes a token record
func (uc *AuthUseCase) RevokeToken(ctx context.Context, tokenID auth.TokenID) error {
	if err := uc.repo.DeleteToken(ctx, tokenID); err != nil {
		return goerr.Wrap(err, "failed to revoke token")
	}
	return nil
}

// IsNoAuthn returns false for the real implementation
func (uc *AuthUseCase) IsNoAuthn() bool {
	return false
}
