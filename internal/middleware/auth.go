package middleware

import (
	"net/http"
	"strings"

	"github.com/cduffaut/jobtrack/internal/auth"
	"github.com/cduffaut/jobtrack/internal/response"
)

// TokenValidator vérifie un token et renvoie l'identifiant de l'utilisateur
type TokenValidator interface {
	ValidateToken(token string) (int, error)
}

// RequireAuth est un middleware qui vérifie le token Bearer
func RequireAuth(validator TokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearer(r.Header.Get("Authorization"))
			if token == "" {
				response.Error(w, http.StatusUnauthorized, "Token manquant")
				return
			}

			userID, err := validator.ValidateToken(token)
			if err != nil {
				response.Error(w, http.StatusUnauthorized, "Token invalide")
				return
			}

			if rec, ok := w.(userRecorder); ok {
				rec.recordUser(userID)
			}

			ctx := auth.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearer accepte "Bearer <token>" quelle que soit la casse du schéma
func extractBearer(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
