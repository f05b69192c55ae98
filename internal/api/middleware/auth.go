package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// AuthCookie is the cookie the admin login stores its session token in.
const AuthCookie = "admin_token"

// AuthConfig configures Auth.
type AuthConfig struct {
	Secret string
	// LoginPath, when set, makes browser requests without a valid token
	// redirect there instead of failing with 401.
	LoginPath string
}

// Auth validates the JWT from the Authorization header or the session cookie
// and injects its claims into the context.
func Auth(cfg AuthConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, reason := tokenFromRequest(c)
			if raw == "" {
				return reject(c, cfg, reason)
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
				return []byte(cfg.Secret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !tkn.Valid {
				return reject(c, cfg, "invalid token")
			}

			c.Set("user_id", claims["sub"])
			c.Set("email", claims["email"])
			c.Set("role", claims["role"])
			c.Set("is_staff", claims["is_staff"])

			return next(c)
		}
	}
}

// RequireStaff allows only requests whose token carries is_staff=true.
func RequireStaff() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if staff, _ := c.Get("is_staff").(bool); !staff {
				return echo.NewHTTPError(http.StatusForbidden, "staff privilege required")
			}
			return next(c)
		}
	}
}

// tokenFromRequest returns the raw token, or an empty token and the reason
// it could not be read.
func tokenFromRequest(c echo.Context) (string, string) {
	if authHeader := c.Request().Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
			return "", "invalid authorization header"
		}
		return parts[1], ""
	}
	if cookie, err := c.Cookie(AuthCookie); err == nil && cookie.Value != "" {
		return cookie.Value, ""
	}
	return "", "missing credentials"
}

func reject(c echo.Context, cfg AuthConfig, msg string) error {
	if cfg.LoginPath != "" && wantsHTML(c.Request()) {
		return c.Redirect(http.StatusSeeOther, cfg.LoginPath)
	}
	return echo.NewHTTPError(http.StatusUnauthorized, msg)
}

func wantsHTML(r *http.Request) bool {
	return r.Method == http.MethodGet && strings.Contains(r.Header.Get(echo.HeaderAccept), echo.MIMETextHTML)
}
