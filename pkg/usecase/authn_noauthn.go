package usecase

import (
	"context"
	"time"

	"github.com/argus-sec/argus/pkg/domain/model/auth"
	"github.com/argus-sec/argus/pkg/domain/types"
)

// NoAuthnUseCase provides authentication as a fixed user (for development/testing)
type NoAuthnUseCase struct {
	userID types.UserID
}

var _ AuthUseCaseInterface = &NoAuthnUseCase{}

// NewNoAuthnUseCase creates a NoAuthnUseCase acting as the given user
func NewNoAuthnUseCase(userID types.UserID) *NoAuthnUseCase {
	return &NoAuthnUseCase{userID: userID}
}

// ValidateToken always succeeds with a token for the fixed user
func (uc *NoAuthnUseCase) ValidateToken(ctx context.Context, tokenID auth.TokenID, secret auth.TokenSecret) (*auth.Token, error) {
	token, _, err := auth.NewToken(uc.userID, time.Hour)
	if err != nil {
		return nil, err
	}
	return token, nil
}

// IssueToken provisions an ephemeral token for the fixed user
func (uc *NoAuthnUseCase) IssueToken(ctx context.Context, userID types.UserID, ttl time.Duration) (*auth.Token, auth.TokenSecret, error) {
	return auth.NewToken(uc.userID, ttl)
}

// RevokeToken does nothing in no-auth mode
func (uc *NoAuthnUseCase) RevokeToken(ctx context.Context, tokenID auth.TokenID) error {
	return nil
}

// IsNoAuthn returns true for NoAuthnUseCase
func (uc *NoAuthnUseCase) IsNoAuthn() bool {
	return true
}

// UserID returns the fixed development user
func (uc *NoAuthnUseCase) UserID() types.UserID {
	return uc.userID
}
