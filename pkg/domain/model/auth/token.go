package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/argus-sec/argus/pkg/domain/types"
)

// TokenID identifies an API token record
type TokenID string

// TokenSecret is the secret half of an API token. It is shown to the user
// once at issuance; only its SHA-256 hash is persisted.
type TokenSecret string

// Token is a provisioned API credential resolving to an opaque user ID
type Token struct {
	ID         TokenID      `firestore:"id"`
	SecretHash string       `firestore:"secret_hash"`
	UserID     types.UserID `firestore:"user_id"`
	CreatedAt  time.Time    `firestore:"created_at"`
	ExpiresAt  time.Time    `firestore:"expires_at"`
}

// NewToken issues a token for the given user. The returned secret is not
// retained anywhere; callers must hand it to the user immediately.
func NewToken(userID types.UserID, ttl time.Duration) (*Token, TokenSecret, error) {
	if err := userID.Validate(); err != nil {
		return nil, "", goerr.Wrap(err, "cannot issue token")
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, "", goerr.Wrap(err, "failed to generate token secret")
	}
	secret := TokenSecret(hex.EncodeToString(raw))

	now := time.Now().UTC()
	token := &Token{
		ID:         TokenID(uuid.New().String()),
		SecretHash: hashSecret(secret),
		UserID:     userID,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}

	return token, secret, nil
}

func hashSecret(secret TokenSecret) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// Validate checks the token record invariants
func (t *Token) Validate() error {
	if err := t.ID.Validate(); err != nil {
		return err
	}
	if t.SecretHash == "" {
		return goerr.New("token secret hash is required")
	}
	if err := t.UserID.Validate(); err != nil {
		return goerr.Wrap(err, "token user is required")
	}
	return nil
}

// VerifySecret reports whether the given secret matches this token. The
// comparison is constant time.
func (t *Token) VerifySecret(secret TokenSecret) bool {
	return subtle.ConstantTimeCompare([]byte(t.SecretHash), []byte(hashSecret(secret))) == 1
}

// IsExpired reports whether the token has passed its expiry
func (t *Token) IsExpired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}

// Validate checks if the TokenID is present
func (id TokenID) Validate() error {
	if id == "" {
		return goerr.New("token ID cannot be empty")
	}
	return nil
}

// String returns the string representation of TokenID
func (id TokenID) String() string {
	return string(id)
}

type ctxKey struct{}

// ContextWithUser returns a context carrying the authenticated user ID
func ContextWithUser(ctx context.Context, userID types.UserID) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserFromContext returns the authenticated user ID, or empty if none
func UserFromContext(ctx context.Context) types.UserID {
	if userID, ok := ctx.Value(ctxKey{}).(types.UserID); ok {
		return userID
	}
	return ""
}
