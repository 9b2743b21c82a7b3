package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/argus-sec/argus/pkg/domain/interfaces"
	"github.com/argus-sec/argus/pkg/domain/model/auth"
	"github.com/argus-sec/argus/pkg/domain/types"
	"github.com/argus-sec/argus/pkg/repository/memory"
)

func runAuthRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("PutToken and GetToken roundtrip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		token, secret, err := auth.NewToken(types.UserID("analyst-1"), time.Hour)
		gt.NoError(t, err).Required()
		gt.Bool(t, secret == "").False()

		gt.NoError(t, repo.PutToken(ctx, token)).Required()

		got, err := repo.GetToken(ctx, token.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.ID).Equal(token.ID)
		gt.Value(t, got.UserID).Equal(token.UserID)
		gt.Value(t, got.SecretHash).Equal(token.SecretHash)
		gt.Bool(t, got.VerifySecret(secret)).True()
	})

	t.Run("GetToken unknown ID fails", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.GetToken(ctx, auth.TokenID("no-such-token"))
		gt.Error(t, err)
	})

	t.Run("DeleteToken removes token", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		token, _, err := auth.NewToken(types.UserID("analyst-2"), time.Hour)
		gt.NoError(t, err).Required()
		gt.NoError(t, repo.PutToken(ctx, token)).Required()

		gt.NoError(t, repo.DeleteToken(ctx, token.ID)).Required()

		_, err = repo.GetToken(ctx, token.ID)
		gt.Error(t, err)
	})

	t.Run("PutToken rejects invalid token", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		err := repo.PutToken(ctx, &auth.Token{ID: "x"})
		gt.Error(t, err)
	})
}

func TestMemoryAuthRepository(t *testing.T) {
	runAuthRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreAuthRepository(t *testing.T) {
	runAuthRepositoryTest(t, newFirestoreRepo)
}
