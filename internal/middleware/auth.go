package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/clerk/clerk-sdk-go/v2"
	clerkhttp "github.com/clerk/clerk-sdk-go/v2/http"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/webkit/internal/errs"
	"github.com/deppfellow/webkit/internal/server"
)

// AuthMiddleware gates routes behind a Clerk session, except for the
// configured public paths.
type AuthMiddleware struct {
	server *server.Server
	public *PathMatcher
}

// NewAuthMiddleware constructs an AuthMiddleware from the auth config.
func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
		public: NewPathMatcher(s.Config.Auth.PublicPaths),
	}
}

// IsPublic reports whether path skips authentication.
func (auth *AuthMiddleware) IsPublic(path string) bool {
	return auth.public.Match(path)
}

// RequireAuth verifies the Authorization bearer token with Clerk and stores
// the session's user id, role and permissions in the echo context.
//
// Public paths and a disabled gate (auth.disabled) pass straight through.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	authenticated := echo.WrapMiddleware(
		clerkhttp.WithHeaderAuthorization(
			clerkhttp.AuthorizationFailureHandler(http.HandlerFunc(auth.writeUnauthorized)),
		),
	)(func(c echo.Context) error {
		claims, ok := clerk.SessionClaimsFromContext(c.Request().Context())
		if !ok {
			auth.server.Logger.Error().
				Str("function", "RequireAuth").
				Str("request_id", GetRequestID(c)).
				Msg("could not get session claims from context")
			return errs.NewUnauthorizedError("Unauthorized", false)
		}

		c.Set(UserIDKey, claims.Subject)
		c.Set(UserRoleKey, claims.ActiveOrganizationRole)
		c.Set(PermissionsKey, claims.Claims.ActiveOrganizationPermissions)

		auth.server.Logger.Debug().
			Str("function", "RequireAuth").
			Str("user_id", claims.Subject).
			Str("request_id", GetRequestID(c)).
			Msg("user authenticated successfully")

		return next(c)
	})

	return func(c echo.Context) error {
		if auth.server.Config.Auth.Disabled || auth.IsPublic(c.Request().URL.Path) {
			return next(c)
		}
		return authenticated(c)
	}
}

// writeUnauthorized renders the same JSON shape as the global error handler.
func (auth *AuthMiddleware) writeUnauthorized(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	if err := json.NewEncoder(w).Encode(errs.NewUnauthorizedError("Unauthorized", false)); err != nil {
		auth.server.Logger.Error().
			Err(err).
			Str("function", "RequireAuth").
			Dur("duration", time.Since(start)).
			Msg("failed to write JSON response")
		return
	}

	auth.server.Logger.Warn().
		Str("function", "RequireAuth").
		Str("path", r.URL.Path).
		Str("request_id", w.Header().Get(RequestIDHeader)).
		Msg("request rejected: missing or invalid session")
}
