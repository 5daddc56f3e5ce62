package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/nalindobhal/blog/internal/blog"
	"github.com/nalindobhal/blog/internal/form"
	"github.com/nalindobhal/blog/internal/identity"
)

const (
	defaultCookieName = "sessionid"
	loginPath         = "/accounts/login/"

	forbiddenMessage    = "You are not authorized"
	invalidLoginMessage = "Please enter a correct username and password. Note that both fields may be case-sensitive."
)

type Config struct {
	CookieName   string
	SecureCookie bool
	// MediaRoot is served under /media when set.
	MediaRoot string
}

// Pinger reports whether the database answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	blog     *blog.Manager
	identity *identity.Service
	db       Pinger
	log      *slog.Logger
	metrics  *Metrics
	cfg      Config
}

func NewHandler(manager *blog.Manager, identitySvc *identity.Service, database Pinger, metrics *Metrics, log *slog.Logger, cfg Config) *Handler {
	if cfg.CookieName == "" {
		cfg.CookieName = defaultCookieName
	}

	return &Handler{
		blog:     manager,
		identity: identitySvc,
		db:       database,
		log:      log,
		metrics:  metrics,
		cfg:      cfg,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

type validationResponse struct {
	Errors   map[string][]string `json:"errors"`
	Messages []string            `json:"messages"`
}

func (h *Handler) handleError(c echo.Context, err error, statusCode int, message string) error {
	h.log.Error("handleError", "error", err, "statusCode", statusCode, "message", message)
	return c.JSON(statusCode, errorResponse{Error: message})
}

// fail renders a manager error: field errors as 400, missing rows as 404,
// ownership violations as 403 and anonymous callers as a redirect to login.
func (h *Handler) fail(c echo.Context, err error) error {
	if ve, ok := form.AsValidation(err); ok {
		return c.JSON(http.StatusBadRequest, validationResponse{Errors: ve.Fields, Messages: ve.Messages()})
	}

	switch {
	case errors.Is(err, blog.ErrUnauthenticated):
		return redirectToLogin(c)
	case errors.Is(err, blog.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, blog.ErrForbidden):
		return c.JSON(http.StatusForbidden, errorResponse{Error: forbiddenMessage})
	}

	return h.handleError(c, err, http.StatusInternalServerError, "internal error")
}

func redirectToLogin(c echo.Context) error {
	next := c.Request().URL.RequestURI()
	return c.Redirect(http.StatusSeeOther, loginPath+"?next="+url.QueryEscape(next))
}

// safeNext keeps only local redirect targets.
func safeNext(next string) string {
	if next == "" || next[0] != '/' || (len(next) > 1 && (next[1] == '/' || next[1] == '\\')) {
		return "/"
	}
	return next
}

func articlePath(slug string) string {
	return "/blogs/" + url.PathEscape(slug) + "/"
}
