package rest

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nalindobhal/blog/internal/db"
	"github.com/nalindobhal/blog/internal/form"
	"github.com/nalindobhal/blog/internal/identity"
)

type formResponse struct {
	Fields []string `json:"fields"`
	Next   string   `json:"next,omitempty"`
}

var (
	signupFields = []string{"username", "email", "first_name", "last_name", "password1", "password2"}
	loginFields  = []string{"username", "password"}
)

// SignupForm handles GET /accounts/signup/
// @Summary Signup form
// @Tags accounts
// @Produce json
// @Success 200 {object} rest.formResponse
// @Router /accounts/signup/ [get]
func (h *Handler) SignupForm(c echo.Context) error {
	return c.JSON(http.StatusOK, formResponse{Fields: signupFields})
}

// Signup handles POST /accounts/signup/
// @Summary Register
// @Description Creates the account, signs the new user in and redirects home.
// @Tags accounts
// @Success 303
// @Failure 400 {object} rest.validationResponse
// @Router /accounts/signup/ [post]
func (h *Handler) Signup(c echo.Context) error {
	var in identity.RegistrationInput
	if err := c.Bind(&in); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	user, err := h.identity.Register(c.Request().Context(), in)
	if err != nil {
		return h.fail(c, err)
	}

	if err := h.startSession(c, user); err != nil {
		return h.fail(c, err)
	}

	return c.Redirect(http.StatusSeeOther, "/")
}

// LoginForm handles GET /accounts/login/
// @Summary Login form
// @Tags accounts
// @Produce json
// @Param next query string false "Local path to continue to"
// @Success 200 {object} rest.formResponse
// @Router /accounts/login/ [get]
func (h *Handler) LoginForm(c echo.Context) error {
	return c.JSON(http.StatusOK, formResponse{Fields: loginFields, Next: safeNext(c.QueryParam("next"))})
}

// Login handles POST /accounts/login/
// @Summary Log in
// @Tags accounts
// @Param next query string false "Local path to continue to"
// @Success 303
// @Failure 400 {object} rest.validationResponse
// @Router /accounts/login/ [post]
func (h *Handler) Login(c echo.Context) error {
	var in identity.LoginInput
	if err := c.Bind(&in); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	if err := form.Validate(in).Err(); err != nil {
		return h.fail(c, err)
	}

	user, err := h.identity.Authenticate(c.Request().Context(), in.Username, in.Password)
	if errors.Is(err, identity.ErrInvalidCredentials) {
		ve := &form.ValidationError{}
		ve.Add(form.NonField, invalidLoginMessage)
		return h.fail(c, ve)
	} else if err != nil {
		return h.fail(c, err)
	}

	if err := h.startSession(c, user); err != nil {
		return h.fail(c, err)
	}

	next := c.QueryParam("next")
	if next == "" {
		next = c.FormValue("next")
	}

	return c.Redirect(http.StatusSeeOther, safeNext(next))
}

// Logout handles GET /accounts/logout/
// @Summary Log out
// @Description Ends the current session and clears the cookie.
// @Tags accounts
// @Success 303
// @Router /accounts/logout/ [get]
func (h *Handler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.cfg.CookieName); err == nil {
		if err := h.identity.Logout(c.Request().Context(), cookie.Value); err != nil {
			return h.fail(c, err)
		}
	}

	c.SetCookie(h.cookie("", time.Unix(0, 0)))

	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) startSession(c echo.Context, user *db.User) error {
	token, expires, err := h.identity.Establish(c.Request().Context(), user)
	if err != nil {
		return err
	}

	c.SetCookie(h.cookie(token, expires))
	return nil
}

func (h *Handler) cookie(value string, expires time.Time) *http.Cookie {
	cookie := &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	}
	if value == "" {
		cookie.MaxAge = -1
	}
	return cookie
}
