package rest

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nalindobhal/blog/internal/blog"
	"github.com/nalindobhal/blog/internal/identity"
)

// SubmitComment handles POST /blogs/:slug/comment/
// @Summary Comment on an article
// @Tags comments
// @Param slug path string true "Article slug"
// @Param comment formData string true "Comment body"
// @Success 303
// @Failure 400 {object} rest.validationResponse
// @Failure 404 {object} rest.errorResponse
// @Router /blogs/{slug}/comment/ [post]
func (h *Handler) SubmitComment(c echo.Context) error {
	var in blog.CommentInput
	if err := c.Bind(&in); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	slug := c.Param("slug")
	if _, err := h.blog.SubmitComment(ctx, identity.FromContext(ctx), slug, in); err != nil {
		return h.fail(c, err)
	}

	return c.Redirect(http.StatusSeeOther, articlePath(slug))
}

// EditComment handles POST /blogs/:slug/comments/:id/edit
// @Summary Edit a comment
// @Description Author only.
// @Tags comments
// @Param slug path string true "Article slug"
// @Param id path int true "Comment id"
// @Param comment formData string true "Comment body"
// @Success 303
// @Failure 400 {object} rest.validationResponse
// @Failure 403,404 {object} rest.errorResponse
// @Router /blogs/{slug}/comments/{id}/edit [post]
func (h *Handler) EditComment(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	var in blog.CommentInput
	if err := c.Bind(&in); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	slug := c.Param("slug")
	if _, err := h.blog.EditComment(ctx, identity.FromContext(ctx), slug, id, in); err != nil {
		return h.fail(c, err)
	}

	return c.Redirect(http.StatusSeeOther, articlePath(slug))
}

// ModerateComment handles POST /blogs/:slug/comments/:id/status
// @Summary Moderate a comment
// @Description Article owner only. Only allowed comments are shown to readers.
// @Tags comments
// @Param slug path string true "Article slug"
// @Param id path int true "Comment id"
// @Param status formData string true "New status" Enums(allowed, deleted, spam)
// @Success 303
// @Failure 400 {object} rest.validationResponse
// @Failure 403,404 {object} rest.errorResponse
// @Router /blogs/{slug}/comments/{id}/status [post]
func (h *Handler) ModerateComment(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	var in blog.ModerationInput
	if err := c.Bind(&in); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	slug := c.Param("slug")
	if _, err := h.blog.ModerateComment(ctx, identity.FromContext(ctx), slug, id, in); err != nil {
		return h.fail(c, err)
	}

	return c.Redirect(http.StatusSeeOther, articlePath(slug))
}
