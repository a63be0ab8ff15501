package httpapi

import (
	"github.com/labstack/echo/v4"

	"lingye.co/catalog/internal/auth"
)

// requireAdmin guards the translation admin endpoints with the bearer token
// whose bcrypt hash is configured in ADMIN_TOKEN_HASH. Without a configured
// hash every admin request is refused.
func (s *Server) requireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := auth.BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !s.verifier.Verify(token) {
				s.logger.Warn().
					Str("path", c.Path()).
					Str("remote_ip", c.RealIP()).
					Bool("admin_enabled", s.verifier.Enabled()).
					Msg("admin request rejected")
				return failUnauthorized(c)
			}
			return next(c)
		}
	}
}
