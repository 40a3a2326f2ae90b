package authn

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/alexedwards/scs/v2"
	"github.com/labstack/echo/v5"
	"github.com/modboard/modboard/internal/auth"
	"github.com/modboard/modboard/internal/auth/providers"
)

const (
	ContextKeyPrincipal = "auth_principal"

	SessionKeyUserID = "auth_user_id"
)

func PrincipalFromContext(c *echo.Context) (auth.Principal, bool) {
	p, ok := c.Get(ContextKeyPrincipal).(auth.Principal)
	return p, ok
}

// LoadPrincipal resolves the operator stored in the session. A session whose
// user id the provider no longer knows is destroyed.
func LoadPrincipal(c *echo.Context, sessions *scs.SessionManager, provider providers.Provider) (auth.Principal, bool) {
	ctx := c.Request().Context()
	userID := sessions.GetString(ctx, SessionKeyUserID)
	if userID == "" || provider == nil {
		return auth.Principal{}, false
	}

	principal, ok := provider.Lookup(ctx, userID)
	if !ok {
		_ = sessions.Destroy(ctx)
		return auth.Principal{}, false
	}
	return principal, true
}

func RequireAuth(sessions *scs.SessionManager, provider providers.Provider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			principal, ok := LoadPrincipal(c, sessions, provider)
			if !ok {
				return handleUnauth(c)
			}
			c.Set(ContextKeyPrincipal, principal)
			return next(c)
		}
	}
}

func isAPIRequest(c *echo.Context) bool {
	return strings.HasPrefix(c.Request().URL.Path, "/api/")
}

func handleUnauth(c *echo.Context) error {
	if isAPIRequest(c) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}

	location := "/login"
	if c.Request().Method == http.MethodGet {
		if next := SanitizeNext(c.Request().URL.RequestURI()); next != "" {
			location = "/login?next=" + url.QueryEscape(next)
		}
	}
	if strings.EqualFold(c.Request().Header.Get("HX-Request"), "true") {
		c.Response().Header().Set("HX-Redirect", location)
		return c.NoContent(http.StatusUnauthorized)
	}
	return c.Redirect(http.StatusSeeOther, location)
}

// SanitizeNext returns next when it is a local path other than the root or
// the login page, and "" otherwise.
func SanitizeNext(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || next == "/" || len(next) > 2048 {
		return ""
	}
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return ""
	}
	if strings.ContainsAny(next, "\\\r\n\t") {
		return ""
	}

	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" || u.Scheme != "" {
		return ""
	}
	if strings.HasPrefix(u.Path, "//") || strings.Contains(u.Path, "\\") {
		return ""
	}
	if u.Path == "/login" || strings.HasPrefix(u.Path, "/login/") {
		return ""
	}
	return next
}
