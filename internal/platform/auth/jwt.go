// Package auth provides bearer-token authentication for the API. Production
// deployments validate HS256-signed JWTs; development deployments can run
// with a permissive middleware that stamps a synthetic identity.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	UserIDKey    = "user_id"
	UserRolesKey = "user_roles"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the JWT payload the service accepts. Roles gate write-style
// operations like submitting transactions for parsing.
type Claims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles"`
}

// JWTConfig configures token validation.
type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience string
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return "", ErrMissingToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrMissingToken
	}
	return parts[1], nil
}

// ParseToken validates an HS256-signed token string against cfg and returns
// its claims.
func ParseToken(tokenString string, cfg JWTConfig) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.Secret), nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// JWTMiddleware returns middleware that requires a valid bearer token on
// every request and stores the caller's identity in the echo context.
func JWTMiddleware(cfg JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, err := bearerToken(c)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or malformed authorization header")
			}

			claims, err := ParseToken(tokenString, cfg)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(UserIDKey, claims.Subject)
			c.Set(UserRolesKey, claims.Roles)
			return next(c)
		}
	}
}

// DevAuthMiddleware stamps a synthetic identity on every request. It is only
// wired when the resolved auth mode is "development".
func DevAuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(UserIDKey, "dev-user")
			c.Set(UserRolesKey, []string{"admin"})
			return next(c)
		}
	}
}

// RequireRole returns middleware that rejects callers without the given role.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roles, _ := c.Get(UserRolesKey).([]string)
			for _, r := range roles {
				if r == role || r == "admin" {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
		}
	}
}
