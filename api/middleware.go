package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

// tokenValidator checks API access tokens.
type tokenValidator interface {
	Valid(token string) bool
}

// APITokenMiddleware gates routes behind the static API token list.
// Tokens can be provided via Authorization header or ?token= query param.
func APITokenMiddleware(store tokenValidator) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Always allow OPTIONS for CORS
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			token := extractToken(r)
			if token == "" || store == nil || !store.Valid(token) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"erro": "Acesso negado. Token de acesso inválido ou ausente."})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractToken extracts the API token from the request.
// Priority: Authorization header > ?token= query param.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			if token := strings.TrimSpace(parts[1]); token != "" {
				return token
			}
		}
	}

	if token := strings.TrimSpace(r.URL.Query().Get("token")); token != "" {
		return token
	}

	return ""
}
