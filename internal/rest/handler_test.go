package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nalindobhal/blog/internal/blog"
	"github.com/nalindobhal/blog/internal/db"
	"github.com/nalindobhal/blog/internal/db/dbtest"
	"github.com/nalindobhal/blog/internal/identity"
	"github.com/nalindobhal/blog/internal/media"
)

var (
	pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	pathParam = regexp.MustCompile(`:(\w+)`)
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

type testServer struct {
	t         *testing.T
	e         *echo.Echo
	store     *dbtest.Memory
	mediaRoot string
	pingErr   error
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := dbtest.New()
	root := t.TempDir()
	manager := blog.NewManager(store, media.NewLocal(root, "/media"))
	ids := identity.NewService(store, identity.Config{Secret: "test-secret", HashCost: bcrypt.MinCost})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s := &testServer{t: t, e: echo.New(), store: store, mediaRoot: root}
	ping := pingFunc(func(context.Context) error { return s.pingErr })

	h := NewHandler(manager, ids, ping, NewMetrics(), logger, Config{MediaRoot: root})
	h.RegisterRoutes(s.e)

	return s
}

func (s *testServer) serve(req *http.Request, session *http.Cookie) *httptest.ResponseRecorder {
	if session != nil {
		req.AddCookie(session)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) get(path string, session *http.Cookie) *httptest.ResponseRecorder {
	return s.serve(httptest.NewRequest(http.MethodGet, path, nil), session)
}

func (s *testServer) post(path string, values url.Values, session *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return s.serve(req, session)
}

func (s *testServer) postJSON(path string, body any, session *http.Cookie) *httptest.ResponseRecorder {
	data, err := json.Marshal(body)
	require.NoError(s.t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return s.serve(req, session)
}

// signup registers username and returns its session cookie.
func (s *testServer) signup(username string) *http.Cookie {
	s.t.Helper()
	return s.signupAs(username, strings.ToUpper(username[:1])+username[1:], "Tester")
}

func (s *testServer) signupAs(username, firstName, lastName string) *http.Cookie {
	s.t.Helper()

	rec := s.post("/accounts/signup/", url.Values{
		"username":   {username},
		"email":      {username + "@example.com"},
		"first_name": {firstName},
		"last_name":  {lastName},
		"password1":  {"correct-horse-42"},
		"password2":  {"correct-horse-42"},
	}, nil)
	require.Equal(s.t, http.StatusSeeOther, rec.Code, rec.Body.String())
	require.Equal(s.t, "/", rec.Header().Get(echo.HeaderLocation))

	cookie := sessionCookie(rec)
	require.NotNil(s.t, cookie, "signup must set a session cookie")
	return cookie
}

func (s *testServer) category(name string, owner *db.User) *db.ArticleCategory {
	s.t.Helper()

	category := &db.ArticleCategory{Name: name, Slug: strings.ToLower(name)}
	if owner != nil {
		category.CreatedByID = &owner.ID
	}
	require.NoError(s.t, s.store.SaveCategory(s.t.Context(), category))
	return category
}

func (s *testServer) user(username string) *db.User {
	s.t.Helper()

	user, err := s.store.UserByUsername(s.t.Context(), username)
	require.NoError(s.t, err)
	require.NotNil(s.t, user)
	return user
}

// createArticle posts the form and returns the slug from the redirect.
func (s *testServer) createArticle(session *http.Cookie, name string, published bool, categories ...int64) string {
	s.t.Helper()

	rec := s.post("/blogs/", articleValues(name, published, categories...), session)
	require.Equal(s.t, http.StatusSeeOther, rec.Code, rec.Body.String())
	return slugFromLocation(s.t, rec.Header().Get(echo.HeaderLocation))
}

func (s *testServer) article(slug string, session *http.Cookie) blog.ArticleView {
	s.t.Helper()

	rec := s.get(articlePath(slug), session)
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())

	var view blog.ArticleView
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &view))
	return view
}

func articleValues(name string, published bool, categories ...int64) url.Values {
	values := url.Values{
		"name":  {name},
		"intro": {"An introduction to " + name},
		"blog":  {"Body of " + name},
	}
	for _, id := range categories {
		values.Add("category", strconv.FormatInt(id, 10))
	}
	if published {
		values.Set("published", "on")
	}
	return values
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == defaultCookieName {
			return c
		}
	}
	return nil
}

func slugFromLocation(t *testing.T, location string) string {
	t.Helper()

	require.True(t, strings.HasPrefix(location, "/blogs/"), "unexpected location %q", location)
	return strings.TrimSuffix(strings.TrimPrefix(location, "/blogs/"), "/")
}

func decodeValidation(t *testing.T, rec *httptest.ResponseRecorder) validationResponse {
	t.Helper()

	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	var resp validationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandler_Ops(t *testing.T) {
	s := newTestServer(t)

	t.Run("Health", func(t *testing.T) {
		rec := s.get("/health", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})

	t.Run("HealthDatabaseDown", func(t *testing.T) {
		s.pingErr = errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")
		defer func() { s.pingErr = nil }()

		rec := s.get("/health", nil)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.JSONEq(t, `{"status":"unavailable"}`, rec.Body.String())
	})

	t.Run("Metrics", func(t *testing.T) {
		s.get("/health", nil)

		rec := s.get("/metrics", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `blog_http_requests_total{method="GET",route="/health",status="200"}`)
	})

	t.Run("Swagger", func(t *testing.T) {
		rec := s.get("/swagger/doc.json", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var doc struct {
			Paths map[string]map[string]any `json:"paths"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))

		ops := map[string]bool{healthPath: true, metricsPath: true, swaggerPath: true}
		for _, r := range s.e.Routes() {
			if ops[r.Path] || strings.HasPrefix(r.Path, mediaPrefix) {
				continue
			}

			path := pathParam.ReplaceAllString(r.Path, "{$1}")
			assert.Contains(t, doc.Paths[path], strings.ToLower(r.Method), "%s %s is not documented", r.Method, path)
		}
	})
}

func TestHandler_Anonymous(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name     string
		method   string
		path     string
		location string
	}{
		{"ListArticles", http.MethodGet, "/blogs/", "/accounts/login/?next=%2Fblogs%2F"},
		{"CreateArticle", http.MethodPost, "/blogs/", "/accounts/login/?next=%2Fblogs%2F"},
		{"Article", http.MethodGet, "/blogs/some-slug/", "/accounts/login/?next=%2Fblogs%2Fsome-slug%2F"},
		{"Comment", http.MethodPost, "/blogs/some-slug/comment/", "/accounts/login/?next=%2Fblogs%2Fsome-slug%2Fcomment%2F"},
		{"Edit", http.MethodGet, "/blogs/some-slug/edit", "/accounts/login/?next=%2Fblogs%2Fsome-slug%2Fedit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.serve(httptest.NewRequest(tt.method, tt.path, nil), nil)
			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tt.location, rec.Header().Get(echo.HeaderLocation))
		})
	}

	t.Run("IndexIsPublic", func(t *testing.T) {
		rec := s.get("/", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("CommentIsNotStored", func(t *testing.T) {
		s.post("/blogs/some-slug/comment/", url.Values{"comment": {"hi"}}, nil)
		assert.Zero(t, s.store.CommentCount())
	})
}

func TestHandler_Accounts(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup("alice")

	t.Run("SignupDuplicate", func(t *testing.T) {
		rec := s.post("/accounts/signup/", url.Values{
			"username":  {"alice"},
			"email":     {"ALICE@example.com"},
			"password1": {"correct-horse-42"},
			"password2": {"correct-horse-42"},
		}, nil)

		resp := decodeValidation(t, rec)
		assert.Equal(t, []string{"A user with that username already exists."}, resp.Errors["username"])
		assert.Equal(t, []string{"This email already exists"}, resp.Errors["email"])
		assert.Nil(t, sessionCookie(rec))
	})

	t.Run("SignupPasswordMismatch", func(t *testing.T) {
		rec := s.postJSON("/accounts/signup/", map[string]string{
			"username":  "carol",
			"email":     "carol@example.com",
			"password1": "correct-horse-42",
			"password2": "wrong-horse-42",
		}, nil)

		resp := decodeValidation(t, rec)
		assert.Contains(t, resp.Errors, "password2")
	})

	t.Run("SignupWhenAuthenticated", func(t *testing.T) {
		rec := s.get("/accounts/signup/", alice)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("LoginForm", func(t *testing.T) {
		rec := s.get("/accounts/login/?next=/blogs/", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"fields":["username","password"],"next":"/blogs/"}`, rec.Body.String())
	})

	t.Run("LoginWrongPassword", func(t *testing.T) {
		rec := s.post("/accounts/login/", url.Values{"username": {"alice"}, "password": {"nope-nope"}}, nil)

		resp := decodeValidation(t, rec)
		assert.Equal(t, []string{invalidLoginMessage}, resp.Errors["form"])
	})

	t.Run("LoginMissingFields", func(t *testing.T) {
		rec := s.post("/accounts/login/", url.Values{"username": {"alice"}}, nil)

		resp := decodeValidation(t, rec)
		assert.Contains(t, resp.Errors, "password")
	})

	t.Run("LoginRedirects", func(t *testing.T) {
		tests := []struct {
			name     string
			next     string
			location string
		}{
			{"Local", "/blogs/", "/blogs/"},
			{"Empty", "", "/"},
			{"External", "//evil.example.com/", "/"},
			{"Absolute", "https://evil.example.com/", "/"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				path := "/accounts/login/?next=" + url.QueryEscape(tt.next)
				rec := s.post(path, url.Values{"username": {"alice"}, "password": {"correct-horse-42"}}, nil)

				require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
				assert.Equal(t, tt.location, rec.Header().Get(echo.HeaderLocation))
				assert.NotNil(t, sessionCookie(rec))
			})
		}
	})

	t.Run("Logout", func(t *testing.T) {
		rec := s.post("/accounts/login/", url.Values{"username": {"alice"}, "password": {"correct-horse-42"}}, nil)
		session := sessionCookie(rec)
		require.NotNil(t, session)

		require.Equal(t, http.StatusOK, s.get("/blogs/", session).Code)

		rec = s.get("/accounts/logout/", session)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
		cleared := sessionCookie(rec)
		require.NotNil(t, cleared)
		assert.Empty(t, cleared.Value)
		assert.True(t, cleared.HttpOnly)

		assert.Equal(t, http.StatusSeeOther, s.get("/blogs/", session).Code)
	})

	t.Run("ForgedCookie", func(t *testing.T) {
		rec := s.get("/blogs/", &http.Cookie{Name: defaultCookieName, Value: "not-a-token"})
		assert.Equal(t, http.StatusSeeOther, rec.Code)
	})
}

func TestHandler_Articles(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup("alice")
	bob := s.signup("bob")
	travel := s.category("Travel", nil)
	food := s.category("Food", nil)

	t.Run("NewArticleForm", func(t *testing.T) {
		rec := s.get("/blogs/add/", alice)
		require.Equal(t, http.StatusOK, rec.Code)

		var fm blog.ArticleForm
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fm))
		assert.Len(t, fm.Categories, 2)
	})

	t.Run("CreateInvalid", func(t *testing.T) {
		rec := s.post("/blogs/", url.Values{"name": {"No body"}}, alice)

		resp := decodeValidation(t, rec)
		assert.Contains(t, resp.Errors, "intro")
		assert.Contains(t, resp.Errors, "blog")
		assert.Contains(t, resp.Errors, "category")
		assert.Equal(t, 0, s.store.ArticleCount())
	})

	t.Run("CreateUnknownCategory", func(t *testing.T) {
		rec := s.post("/blogs/", articleValues("Lost", true, 9999), alice)

		resp := decodeValidation(t, rec)
		assert.Equal(t, []string{"Select a valid choice. 9999 is not one of the available choices."}, resp.Errors["category"])
	})

	published := s.createArticle(alice, "Hello World", true, travel.ID, food.ID)
	draft := s.createArticle(alice, "Hello World", false, travel.ID)

	t.Run("SlugsAreUnique", func(t *testing.T) {
		assert.NotEqual(t, published, draft)
		assert.True(t, strings.HasPrefix(published, "hello-world-"))
		assert.True(t, strings.HasPrefix(draft, "hello-world-"))
	})

	t.Run("Detail", func(t *testing.T) {
		view := s.article(published, bob)

		assert.Equal(t, "Hello World", view.Name)
		assert.True(t, view.Published)
		assert.NotNil(t, view.PublishedOn)
		assert.ElementsMatch(t, []string{"Travel", "Food"}, view.Categories)
		assert.Equal(t, "Alice Tester", view.PublishedBy.FullName)
		assert.Equal(t, 1, view.ReadMinutes)
		assert.Empty(t, view.Comments)
	})

	t.Run("DraftVisibility", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, s.get(articlePath(draft), alice).Code)
		assert.Equal(t, http.StatusNotFound, s.get(articlePath(draft), bob).Code)
	})

	t.Run("Listing", func(t *testing.T) {
		var forAlice, forBob []blog.ArticleSummary

		rec := s.get("/blogs/", alice)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &forAlice))

		rec = s.get("/blogs/", bob)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &forBob))

		assert.Len(t, forAlice, 2)
		require.Len(t, forBob, 1)
		assert.Equal(t, published, forBob[0].Slug)
	})

	t.Run("ListingByCategory", func(t *testing.T) {
		tests := []struct {
			query string
			want  int
		}{
			{"?category=food", 1},
			{"?category=travel", 2},
			{"?category=unknown", 0},
		}

		for _, tt := range tests {
			t.Run(tt.query, func(t *testing.T) {
				rec := s.get("/blogs/"+tt.query, alice)
				require.Equal(t, http.StatusOK, rec.Code)

				var list []blog.ArticleSummary
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
				assert.Len(t, list, tt.want)
			})
		}
	})

	t.Run("Index", func(t *testing.T) {
		rec := s.get("/", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var list []blog.ArticleSummary
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
		require.Len(t, list, 1)
		assert.Equal(t, published, list[0].Slug)
	})

	t.Run("NotFound", func(t *testing.T) {
		rec := s.get("/blogs/missing/", alice)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"not found"}`, rec.Body.String())
	})

	t.Run("EditForm", func(t *testing.T) {
		rec := s.get(articlePath(published)+"edit", alice)
		require.Equal(t, http.StatusOK, rec.Code)

		var fm blog.ArticleForm
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fm))
		assert.Equal(t, published, fm.Slug)
		assert.Equal(t, "Hello World", fm.Values.Name)
		assert.ElementsMatch(t, []int64{travel.ID, food.ID}, fm.Values.Categories)
	})

	t.Run("EditByOtherUser", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, s.get(articlePath(published)+"edit", bob).Code)

		rec := s.post(articlePath(published)+"edit", articleValues("Hijacked", true, travel.ID), bob)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.JSONEq(t, `{"error":"You are not authorized"}`, rec.Body.String())
		assert.Equal(t, "Hello World", s.article(published, alice).Name)
	})

	t.Run("EditMissing", func(t *testing.T) {
		rec := s.post("/blogs/missing/edit", articleValues("Nothing", true, travel.ID), alice)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Update", func(t *testing.T) {
		rec := s.post(articlePath(draft)+"edit", articleValues("Renamed", true, food.ID), alice)
		require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
		assert.Equal(t, articlePath(draft), rec.Header().Get(echo.HeaderLocation))

		view := s.article(draft, bob)
		assert.Equal(t, "Renamed", view.Name)
		assert.Equal(t, []string{"Food"}, view.Categories)
		assert.NotNil(t, view.PublishedOn)
	})
}

func TestHandler_Wallpaper(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup("alice")
	travel := s.category("Travel", nil)

	upload := func(t *testing.T, path string, content []byte) *httptest.ResponseRecorder {
		t.Helper()

		var body bytes.Buffer
		w := multipart.NewWriter(&body)
		for key, values := range articleValues("Beach Day", true, travel.ID) {
			for _, v := range values {
				require.NoError(t, w.WriteField(key, v))
			}
		}
		part, err := w.CreateFormFile("wallpaper", "beach.png")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, path, &body)
		req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
		return s.serve(req, alice)
	}

	t.Run("RejectsNonImage", func(t *testing.T) {
		rec := upload(t, "/blogs/", []byte("just some text"))

		resp := decodeValidation(t, rec)
		assert.Contains(t, resp.Errors, "wallpaper")
		assert.Equal(t, 0, s.store.ArticleCount())
	})

	t.Run("StoresImage", func(t *testing.T) {
		rec := upload(t, "/blogs/", pngHeader)
		require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())

		view := s.article(slugFromLocation(t, rec.Header().Get(echo.HeaderLocation)), alice)
		require.NotNil(t, view.Wallpaper)
		assert.True(t, strings.HasPrefix(*view.Wallpaper, "/media/Article/"), *view.Wallpaper)

		var stored []string
		require.NoError(t, filepath.WalkDir(s.mediaRoot, func(path string, d os.DirEntry, err error) error {
			if err == nil && !d.IsDir() {
				stored = append(stored, filepath.Base(path))
			}
			return err
		}))
		assert.Equal(t, []string{"beach.png"}, stored)
	})

	t.Run("UpdateKeepsWallpaper", func(t *testing.T) {
		slug := s.createArticle(alice, "Mountains", true, travel.ID)
		rec := upload(t, articlePath(slug)+"edit", pngHeader)
		require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())

		before := s.article(slug, alice).Wallpaper
		require.NotNil(t, before)

		rec = s.post(articlePath(slug)+"edit", articleValues("Mountains", true, travel.ID), alice)
		require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
		assert.Equal(t, *before, *s.article(slug, alice).Wallpaper)
	})
}
