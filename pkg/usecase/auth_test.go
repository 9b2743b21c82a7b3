package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/argus-sec/argus/pkg/domain/model/auth"
	"github.com/argus-sec/argus/pkg/domain/types"
	"github.com/argus-sec/argus/pkg/repository/memory"
	"github.com/argus-sec/argus/pkg/usecase"
)

func TestAuthUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("issued token validates", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.NewAuthUseCase(repo)

		token, secret, err := uc.IssueToken(ctx, types.UserID("analyst-1"), time.Hour)
		gt.NoError(t, err).Required()

		validated, err := uc.ValidateToken(ctx, token.ID, secret)
		gt.NoError(t, err).Required()
		gt.Value(t, validated.UserID).Equal(types.UserID("analyst-1"))
	})

	t.Run("wrong secret is unauthorized", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.NewAuthUseCase(repo)

		token, _, err := uc.IssueToken(ctx, types.UserID("analyst-1"), time.Hour)
		gt.NoError(t, err).Required()

		_, err = uc.ValidateToken(ctx, token.ID, auth.TokenSecret("not-the-secret"))
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrUnauthorized)).True()
	})

	t.Run("unknown token is unauthorized", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.NewAuthUseCase(repo)

		_, err := uc.ValidateToken(ctx, auth.TokenID("missing"), auth.TokenSecret("whatever"))
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrUnauthorized)).True()
	})

	t.Run("expired token is unauthorized", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.NewAuthUseCase(repo)

		token, secret, err := uc.IssueToken(ctx, types.UserID("analyst-1"), -time.Minute)
		gt.NoError(t, err).Required()

		_, err = uc.ValidateToken(ctx, token.ID, secret)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrUnauthorized)).True()
	})

	t.Run("revoked token no longer validates", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.NewAuthUseCase(repo)

		token, secret, err := uc.IssueToken(ctx, types.UserID("analyst-1"), time.Hour)
		gt.NoError(t, err).Required()
		gt.NoError(t, uc.RevokeToken(ctx, token.ID)).Required()

		_, err = uc.ValidateToken(ctx, token.ID, secret)
		gt.Error(t, err)
	})

	t.Run("no-auth mode always resolves the fixed user", func(t *testing.T) {
		uc := usecase.NewNoAuthnUseCase(types.UserID("dev-user"))
		gt.Bool(t, uc.IsNoAuthn()).True()

		token, err := uc.ValidateToken(ctx, auth.TokenID("anything"), auth.TokenSecret("anything"))
		gt.NoError(t, err).Required()
		gt.Value(t, token.UserID).Equal(types.UserID("dev-user"))
	})
}
