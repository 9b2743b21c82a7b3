package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/argus-sec/argus/pkg/domain/model/auth"
	"github.com/argus-sec/argus/pkg/domain/types"
)

func TestNewToken(t *testing.T) {
	t.Run("issues token with hashed secret", func(t *testing.T) {
		token, secret, err := auth.NewToken("U001", time.Hour)
		gt.NoError(t, err).Required()

		gt.Value(t, token.UserID).Equal(types.UserID("U001"))
		gt.Value(t, string(token.SecretHash)).NotEqual(string(secret))
		gt.NoError(t, token.Validate())
		gt.Bool(t, token.VerifySecret(secret)).True()
		gt.Bool(t, token.VerifySecret("bogus")).False()
	})

	t.Run("rejects empty user", func(t *testing.T) {
		_, _, err := auth.NewToken("", time.Hour)
		gt.Error(t, err)
	})

	t.Run("expiry honored", func(t *testing.T) {
		token, _, err := auth.NewToken("U001", time.Hour)
		gt.NoError(t, err).Required()

		gt.Bool(t, token.IsExpired(time.Now())).False()
		gt.Bool(t, token.IsExpired(time.Now().Add(2*time.Hour))).True()
	})
}

func TestUserContext(t *testing.T) {
	ctx := context.Background()
	gt.Value(t, auth.UserFromContext(ctx)).Equal(types.UserID(""))

	ctx = auth.ContextWithUser(ctx, "U123")
	gt.Value(t, auth.UserFromContext(ctx)).Equal(types.UserID("U123"))
}
