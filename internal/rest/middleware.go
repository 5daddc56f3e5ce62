package rest

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nalindobhal/blog/internal/blog"
	"github.com/nalindobhal/blog/internal/identity"
)

func (h *Handler) loggingMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)
		if err != nil {
			c.Error(err)
		}

		req := c.Request()
		h.log.Info("HTTP request",
			"method", req.Method,
			"path", req.URL.Path,
			"status", c.Response().Status,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", c.RealIP(),
		)

		return nil
	}
}

// identify resolves the session cookie into the request user. Unknown or
// expired sessions leave the request anonymous.
func (h *Handler) identify(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(h.cfg.CookieName)
		if err != nil || cookie.Value == "" {
			return next(c)
		}

		req := c.Request()
		user, err := h.identity.Current(req.Context(), cookie.Value)
		if err != nil {
			h.log.Error("failed to resolve session", "error", err)
			return next(c)
		}

		if user != nil {
			c.SetRequest(req.WithContext(identity.NewContext(req.Context(), user)))
		}

		return next(c)
	}
}

// requireUser redirects anonymous callers to the login page.
func requireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !blog.IsAuthenticated(identity.FromContext(c.Request().Context())) {
			return redirectToLogin(c)
		}
		return next(c)
	}
}

// requireAnonymous sends authenticated callers home.
func requireAnonymous(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if blog.IsAuthenticated(identity.FromContext(c.Request().Context())) {
			return c.Redirect(http.StatusSeeOther, "/")
		}
		return next(c)
	}
}
