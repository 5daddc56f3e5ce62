package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"

	_ "github.com/nalindobhal/blog/docs"
)

const (
	healthPath  = "/health"
	metricsPath = "/metrics"
	swaggerPath = "/swagger/doc.json"
	mediaPrefix = "/media"
)

type route struct {
	method  string
	path    string
	handler echo.HandlerFunc
	guard   echo.MiddlewareFunc
}

func (h *Handler) routes() []route {
	return []route{
		{http.MethodGet, "/", h.Index, nil},
		{http.MethodGet, "/blogs/", h.Articles, requireUser},
		{http.MethodPost, "/blogs/", h.CreateArticle, requireUser},
		{http.MethodGet, "/blogs/add/", h.NewArticleForm, requireUser},
		{http.MethodGet, "/blogs/:slug/", h.Article, requireUser},
		{http.MethodGet, "/blogs/:slug/edit", h.EditArticleForm, requireUser},
		{http.MethodPost, "/blogs/:slug/edit", h.UpdateArticle, requireUser},
		{http.MethodPost, "/blogs/:slug/comment/", h.SubmitComment, requireUser},
		{http.MethodPost, "/blogs/:slug/comments/:id/edit", h.EditComment, requireUser},
		{http.MethodPost, "/blogs/:slug/comments/:id/status", h.ModerateComment, requireUser},

		{http.MethodGet, categoriesPath, h.Categories, nil},
		{http.MethodPost, categoriesPath, h.CreateCategory, requireUser},
		{http.MethodPost, "/categories/:id/edit", h.RenameCategory, requireUser},

		{http.MethodGet, "/accounts/signup/", h.SignupForm, requireAnonymous},
		{http.MethodPost, "/accounts/signup/", h.Signup, requireAnonymous},
		{http.MethodGet, loginPath, h.LoginForm, requireAnonymous},
		{http.MethodPost, loginPath, h.Login, requireAnonymous},
		{http.MethodGet, "/accounts/logout/", h.Logout, nil},
	}
}

// RegisterRoutes registers all routes for the handler
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	if h.metrics != nil {
		e.Use(h.metrics.Middleware())
	}
	e.Use(h.loggingMiddleware, h.identify)

	for _, r := range h.routes() {
		var mw []echo.MiddlewareFunc
		if r.guard != nil {
			mw = append(mw, r.guard)
		}
		e.Add(r.method, r.path, r.handler, mw...)
	}

	h.registerOps(e)

	if h.cfg.MediaRoot != "" {
		e.Static(mediaPrefix, h.cfg.MediaRoot)
	}
}

func (h *Handler) registerOps(e *echo.Echo) {
	e.GET(healthPath, h.handleHealth)
	e.GET(swaggerPath, h.handleSwagger)
	if h.metrics != nil {
		e.GET(metricsPath, echo.WrapHandler(h.metrics.Handler()))
	}
}

func (h *Handler) handleHealth(c echo.Context) error {
	if h.db != nil {
		if err := h.db.Ping(c.Request().Context()); err != nil {
			h.log.Error("health check failed", "error", err)
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		}
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleSwagger(c echo.Context) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "swagger document unavailable")
	}

	return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, []byte(doc))
}
