package httpapp

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/modboard/modboard/internal/auth/providers"
	"github.com/modboard/modboard/internal/config"
	"github.com/modboard/modboard/internal/http/authn"
	"github.com/modboard/modboard/internal/http/handlers"
)

const sessionLifetime = 12 * time.Hour

// EchoServer is the HTTP server wrapper.
type EchoServer struct {
	h *handlers.Handlers
	e *echo.Echo
}

// NewEchoServer creates a new HTTP server.
func NewEchoServer(cfg config.Config, dash handlers.DashboardClient, provider providers.Provider, logger *slog.Logger) (*EchoServer, error) {
	if dash == nil {
		return nil, errors.New("dashboard client is required")
	}
	if provider == nil {
		return nil, errors.New("auth provider is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	sessions := scs.New()
	sessions.Lifetime = sessionLifetime
	sessions.Cookie.Name = "modboard_session"
	sessions.Cookie.HttpOnly = true
	sessions.Cookie.SameSite = http.SameSiteLaxMode
	sessions.Cookie.Secure = cfg.AuthCookieSecure

	e := echo.New()
	e.Logger = logger

	h := &handlers.Handlers{Cfg: cfg, Dashboard: dash, Sessions: sessions, Auth: provider}
	es := &EchoServer{h: h, e: e}
	e.HTTPErrorHandler = es.httpErrorHandler
	es.registerRoutes()
	return es, nil
}

func (es *EchoServer) registerRoutes() {
	es.e.Use(requestID())
	es.e.Use(middleware.Recover())

	es.e.GET("/healthz", es.h.HandleHealthz)

	csrf := middleware.CSRFWithConfig(middleware.CSRFConfig{
		TokenLookup:    "header:" + echo.HeaderXCSRFToken + ",form:csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   es.h.Cfg.AuthCookieSecure,
		CookieSameSite: http.SameSiteLaxMode,
	})

	public := es.e.Group("")
	public.Use(csrf)
	public.GET("/login", es.h.HandleLoginGet)
	public.POST("/login", es.h.HandleLoginPost)
	public.POST("/logout", es.h.HandleLogoutPost)

	authed := es.e.Group("")
	authed.Use(csrf)
	authed.Use(authn.RequireAuth(es.h.Sessions, es.h.Auth))
	authed.GET("/", es.h.HandleDashboard)
	authed.POST("/settings", es.h.HandleSettingsPost)
	authed.POST("/questions/:type", es.h.HandleQuestionsPost)
	authed.POST("/applications/:id/review", es.h.HandleReviewPost)
	authed.POST("/messages", es.h.HandleMessagesPost)
	authed.POST("/refresh", es.h.HandleRefreshPost)
	authed.GET("/api/snapshot", es.h.HandleSnapshot)
}

// Handler returns the routed application wrapped in session loading.
func (es *EchoServer) Handler() http.Handler {
	return es.h.Sessions.LoadAndSave(es.e)
}

func requestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			id := strings.TrimSpace(c.Request().Header.Get(echo.HeaderXRequestID))
			if id == "" || len(id) > 128 {
				id = uuid.NewString()
			}
			c.Set(handlers.ContextKeyRequestID, id)
			c.Response().Header().Set(echo.HeaderXRequestID, id)
			return next(c)
		}
	}
}

func (es *EchoServer) httpErrorHandler(c *echo.Context, err error) {
	if err == nil {
		return
	}
	status := httpStatusFromError(err)

	switch {
	case status >= http.StatusInternalServerError:
		_ = es.h.RenderError(c, err)
	case status == http.StatusNotFound:
		_ = handlers.RenderNotFound(c)
	default:
		_ = c.String(status, http.StatusText(status))
	}
}

type statusCoder interface {
	StatusCode() int
}

func httpStatusFromError(err error) int {
	var sc statusCoder
	if errors.As(err, &sc) {
		if code := sc.StatusCode(); code >= 400 && code <= 599 {
			return code
		}
	}
	return http.StatusInternalServerError
}
