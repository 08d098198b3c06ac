package httpmw

import (
	"context"
	"net/http"
	"strings"

	"github.com/cwrk-planet/bizos/internal/security"
	"github.com/cwrk-planet/bizos/pkg/httputil"
	"github.com/cwrk-planet/bizos/pkg/logger"

	"github.com/google/uuid"
)

type ctxKey string

const ctxKeyUserID ctxKey = "user_id"

const HeaderUserID = "X-User-ID"

type TokenVerifier interface {
	ParseAndValidate(token string) (*security.AccessClaims, error)
}

// Auth: при заданном verifier требуется Bearer-токен, пользователь берётся из sub.
// Без verifier идентичность необязательна и читается из X-User-ID.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				uid := strings.TrimSpace(r.Header.Get(HeaderUserID))
				if uid == "" {
					next.ServeHTTP(w, r)
					return
				}
				if _, err := uuid.Parse(uid); err != nil {
					httputil.Error(w, http.StatusUnauthorized, "invalid X-User-ID")
					return
				}
				next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), uid)))
				return
			}

			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") || len(auth) <= 7 {
				httputil.Error(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			claims, err := verifier.ParseAndValidate(strings.TrimSpace(auth[7:]))
			if err != nil {
				logger.FromContext(r.Context()).Debug("token rejected", "err", err)
				httputil.Error(w, http.StatusUnauthorized, "invalid token")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), claims.Subject)))
		})
	}
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKeyUserID, userID)
}

func UserIDFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyUserID).(string); ok {
		return v
	}
	return ""
}
