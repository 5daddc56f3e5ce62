package rest

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nalindobhal/blog/internal/blog"
	"github.com/nalindobhal/blog/internal/identity"
)

const categoriesPath = "/categories/"

// Categories handles GET /categories/
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} blog.CategoryView
// @Router /categories/ [get]
func (h *Handler) Categories(c echo.Context) error {
	list, err := h.blog.Categories(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, list)
}

// CreateCategory handles POST /categories/
// @Summary Create category
// @Tags categories
// @Param name formData string true "Category name"
// @Success 303
// @Failure 400 {object} rest.validationResponse
// @Router /categories/ [post]
func (h *Handler) CreateCategory(c echo.Context) error {
	var in blog.CategoryInput
	if err := c.Bind(&in); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	if _, err := h.blog.CreateCategory(ctx, identity.FromContext(ctx), in); err != nil {
		return h.fail(c, err)
	}

	return c.Redirect(http.StatusSeeOther, categoriesPath)
}

// RenameCategory handles POST /categories/:id/edit
// @Summary Rename category
// @Description Creator only. The slug follows the new name.
// @Tags categories
// @Param id path int true "Category id"
// @Param name formData string true "Category name"
// @Success 303
// @Failure 400 {object} rest.validationResponse
// @Failure 403,404 {object} rest.errorResponse
// @Router /categories/{id}/edit [post]
func (h *Handler) RenameCategory(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	var in blog.CategoryInput
	if err := c.Bind(&in); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	if _, err := h.blog.RenameCategory(ctx, identity.FromContext(ctx), id, in); err != nil {
		return h.fail(c, err)
	}

	return c.Redirect(http.StatusSeeOther, categoriesPath)
}
