package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nalindobhal/blog/internal/identity"
)

const indexLimit = 10

// Index handles GET /
// @Summary Recent articles
// @Tags blog
// @Produce json
// @Success 200 {array} blog.ArticleSummary
// @Router / [get]
func (h *Handler) Index(c echo.Context) error {
	list, err := h.blog.RecentArticles(c.Request().Context(), indexLimit)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, list)
}

// Articles handles GET /blogs/
// @Summary List articles
// @Description Published articles plus the caller's own drafts, newest first.
// @Tags blog
// @Produce json
// @Param category query string false "Category slug"
// @Param author query int false "Publisher id"
// @Success 200 {array} blog.ArticleSummary
// @Failure 400,500 {object} rest.errorResponse
// @Router /blogs/ [get]
func (h *Handler) Articles(c echo.Context) error {
	query, err := bindArticleList(c)
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request parameters")
	}

	ctx := c.Request().Context()
	list, err := h.blog.Articles(ctx, identity.FromContext(ctx), query)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, list)
}

// NewArticleForm handles GET /blogs/add/
// @Summary New article form
// @Tags blog
// @Produce json
// @Success 200 {object} blog.ArticleForm
// @Router /blogs/add/ [get]
func (h *Handler) NewArticleForm(c echo.Context) error {
	ctx := c.Request().Context()
	fm, err := h.blog.NewArticleForm(ctx, identity.FromContext(ctx))
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, fm)
}

// CreateArticle handles POST /blogs/
// @Summary Create article
// @Description Accepts JSON, urlencoded or multipart bodies; a multipart body may carry a wallpaper image.
// @Tags blog
// @Accept json,mpfd
// @Param category formData []int true "Category ids"
// @Success 303
// @Failure 400 {object} rest.validationResponse
// @Router /blogs/ [post]
func (h *Handler) CreateArticle(c echo.Context) error {
	var req ArticleRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	wallpaper, closeFn, err := wallpaperFile(c)
	if err != nil {
		return h.fail(c, err)
	}
	defer closeFn()

	ctx := c.Request().Context()
	article, err := h.blog.CreateArticle(ctx, identity.FromContext(ctx), req.Input(), wallpaper)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Redirect(http.StatusSeeOther, articlePath(article.Slug))
}

// Article handles GET /blogs/:slug/
// @Summary Get article
// @Tags blog
// @Produce json
// @Param slug path string true "Article slug"
// @Success 200 {object} blog.ArticleView
// @Failure 404,500 {object} rest.errorResponse
// @Router /blogs/{slug}/ [get]
func (h *Handler) Article(c echo.Context) error {
	ctx := c.Request().Context()
	view, err := h.blog.ArticleBySlug(ctx, identity.FromContext(ctx), c.Param("slug"))
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, view)
}

// EditArticleForm handles GET /blogs/:slug/edit
// @Summary Edit article form
// @Description Owner only. Returns the stored values and the assignable categories.
// @Tags blog
// @Produce json
// @Param slug path string true "Article slug"
// @Success 200 {object} blog.ArticleForm
// @Failure 403,404 {object} rest.errorResponse
// @Router /blogs/{slug}/edit [get]
func (h *Handler) EditArticleForm(c echo.Context) error {
	ctx := c.Request().Context()
	fm, err := h.blog.EditableArticle(ctx, identity.FromContext(ctx), c.Param("slug"))
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, fm)
}

// UpdateArticle handles POST /blogs/:slug/edit
// @Summary Update article
// @Description Owner only. Omitting the wallpaper keeps the stored one.
// @Tags blog
// @Param slug path string true "Article slug"
// @Success 303
// @Failure 400 {object} rest.validationResponse
// @Failure 403,404 {object} rest.errorResponse
// @Router /blogs/{slug}/edit [post]
func (h *Handler) UpdateArticle(c echo.Context) error {
	var req ArticleRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	wallpaper, closeFn, err := wallpaperFile(c)
	if err != nil {
		return h.fail(c, err)
	}
	defer closeFn()

	ctx := c.Request().Context()
	article, err := h.blog.UpdateArticle(ctx, identity.FromContext(ctx), c.Param("slug"), req.Input(), wallpaper)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Redirect(http.StatusSeeOther, articlePath(article.Slug))
}
