package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/khata/ledger-api/internal/api/metrics"
	"github.com/khata/ledger-api/internal/core/domain"
	"github.com/khata/ledger-api/internal/core/ports"
	"github.com/khata/ledger-api/internal/core/token"
)

// Context keys set by Authenticate.
const (
	ContextPrincipal = "principal"
	ContextRoles     = "roles"
)

// Authenticate is the per-request bearer-token gate. A request without a
// token (or without the Bearer prefix) proceeds unauthenticated; protected
// routes reject it later via RequireAuth. A present but expired, forged, or
// unresolvable token halts the request with a 401. On success the resolved
// account and its roles are attached to the context for downstream checks.
// An already attached principal is never overwritten.
func Authenticate(codec *token.Codec, loader ports.PrincipalLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Get(ContextPrincipal) != nil {
				return next(c)
			}

			raw := bearerToken(c.Request().Header.Get("Authorization"))
			if raw == "" {
				return next(c)
			}

			claims, err := codec.ParseClaims(raw)
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					metrics.AuthRejectionsTotal.WithLabelValues("expired").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "token has expired")
				}
				metrics.AuthRejectionsTotal.WithLabelValues("malformed").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			account, err := loader.LoadBySubject(c.Request().Context(), claims.Subject)
			if err != nil || !codec.IsValid(raw, account.Email) {
				metrics.AuthRejectionsTotal.WithLabelValues("unknown_subject").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(ContextPrincipal, account)
			c.Set(ContextRoles, claims.Roles)

			return next(c)
		}
	}
}

// RequireAuth rejects requests that reached a protected route without an
// authenticated principal.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := c.Get(ContextPrincipal).(*domain.Account); !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			return next(c)
		}
	}
}

// bearerToken extracts the token from an Authorization header value.
// Returns "" when the header is absent or not a bearer scheme.
func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
