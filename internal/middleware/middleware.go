package middleware

import (
	"log"
	"net/http"
	"strings"

	handlers "github.com/Mirap9615/owowclub-sub000/internal/handler"
	"github.com/Mirap9615/owowclub-sub000/internal/service"
)

type Middleware func(http.Handler) http.Handler

// publicPaths need no session. Prefix entries end with a slash.
var publicPaths = []string{
	"/",
	"/health",
	"/request",
	"/register",
	"/login",
	"/forgot-password",
	"/reset-password",
	"/api/register",
	"/api/validate-code",
}

var publicPrefixes = []string{
	"/api/register/validate-token/",
	"/api/events/invite/",
}

func isPublic(path string) bool {
	for _, p := range publicPaths {
		if path == p {
			return true
		}
	}
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// AuthMiddleware resolves the session cookie to a user and adds it to the
// request context. Public endpoints pass through without a session.
func AuthMiddleware(authService service.AuthService) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(handlers.SessionCookieName)
			if err == nil && cookie.Value != "" {
				if user, err := authService.UserFromSessionToken(r.Context(), cookie.Value); err == nil {
					ctx := handlers.ContextWithUser(r.Context(), user)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			if isPublic(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			handlers.WriteError(w, "Authentication required", http.StatusUnauthorized)
		})
	}
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s %s", r.Method, r.RequestURI, r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}

func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
