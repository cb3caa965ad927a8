package middleware

import (
	"net/http"

	"github.com/clerk/clerk-sdk-go/v2"
	clerkhttp "github.com/clerk/clerk-sdk-go/v2/http"
	"github.com/deppfellow/form-builder/internal/errs"
	"github.com/deppfellow/form-builder/internal/server"
	"github.com/labstack/echo/v4"
)

// AuthMiddleware resolves the caller's identity from a Clerk session token.
type AuthMiddleware struct {
	server *server.Server
}

func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
	}
}

// Authenticate verifies the `Authorization: Bearer <token>` header with
// Clerk and stores the session subject as the user id.
//
// A request without the header continues anonymously (GetUserID returns
// ""); the services reject anonymous callers after validating their
// input. A header carrying an invalid token is rejected here with 401.
func (auth *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		var nextErr error
		handled := false

		verified := clerkhttp.WithHeaderAuthorization(
			clerkhttp.AuthorizationFailureHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handled = true
				GetLogger(c).Warn().
					Str("function", "Authenticate").
					Msg("session token rejected")
				nextErr = errs.NewUnauthorizedError("Unauthorized", false)
			})),
		)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handled = true
			c.SetRequest(r)

			if claims, ok := clerk.SessionClaimsFromContext(r.Context()); ok && claims.Subject != "" {
				setUserID(c, claims.Subject)
			}
			nextErr = next(c)
		}))

		verified.ServeHTTP(c.Response(), c.Request())

		if !handled {
			return errs.NewUnauthorizedError("Unauthorized", false)
		}
		return nextErr
	}
}
