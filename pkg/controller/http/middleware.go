package http

import (
	"net/http"
	"strings"

	"github.com/argus-sec/argus/pkg/domain/model/auth"
	"github.com/argus-sec/argus/pkg/usecase"
)

// authMiddleware resolves the Authorization header to a user. The expected
// credential is "Bearer <tokenID>:<secret>" as issued by the token command.
func authMiddleware(authUC usecase.AuthUseCaseInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if authUC == nil {
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			// No-auth development mode acts as the fixed user without credentials
			if authUC.IsNoAuthn() {
				token, err := authUC.ValidateToken(r.Context(), "", "")
				if err != nil {
					http.Error(w, "Authentication required", http.StatusUnauthorized)
					return
				}
				ctx := auth.ContextWithUser(r.Context(), token.UserID)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			header := r.Header.Get("Authorization")
			credential, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			tokenID, secret, ok := strings.Cut(credential, ":")
			if !ok {
				http.Error(w, "Invalid authentication token", http.StatusUnauthorized)
				return
			}

			token, err := authUC.ValidateToken(r.Context(), auth.TokenID(tokenID), auth.TokenSecret(secret))
			if err != nil {
				http.Error(w, "Invalid authentication token", http.StatusUnauthorized)
				return
			}

			ctx := auth.ContextWithUser(r.Context(), token.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
