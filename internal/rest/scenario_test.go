package rest

import (
	"encoding/json"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nalindobhal/blog/internal/blog"
)

func TestHandler_Comments(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup("alice")
	bob := s.signup("bob")
	travel := s.category("Travel", nil)

	slug := s.createArticle(alice, "Road Trip", true, travel.ID)
	draft := s.createArticle(alice, "Secret Trip", false, travel.ID)
	commentPath := articlePath(slug) + "comment/"

	t.Run("Submit", func(t *testing.T) {
		rec := s.post(commentPath, url.Values{"comment": {"  Great read!  "}}, bob)
		require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
		assert.Equal(t, articlePath(slug), rec.Header().Get(echo.HeaderLocation))

		view := s.article(slug, alice)
		require.Len(t, view.Comments, 1)
		assert.Equal(t, "Great read!", view.Comments[0].Comment)
		assert.Equal(t, "Bob Tester", view.Comments[0].Author)
		assert.Equal(t, "BT", view.Comments[0].Initials)
	})

	t.Run("Empty", func(t *testing.T) {
		resp := decodeValidation(t, s.post(commentPath, url.Values{"comment": {"   "}}, bob))
		assert.Contains(t, resp.Errors, "comment")
		assert.Equal(t, 1, s.store.CommentCount())
	})

	t.Run("TooLong", func(t *testing.T) {
		long := strings.Repeat("a", 2001)
		resp := decodeValidation(t, s.post(commentPath, url.Values{"comment": {long}}, bob))
		assert.Equal(t, []string{"Ensure this value has at most 2000 characters (it has 2001)."}, resp.Errors["comment"])
	})

	t.Run("MissingArticle", func(t *testing.T) {
		rec := s.post("/blogs/missing/comment/", url.Values{"comment": {"hello"}}, bob)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("HiddenDraft", func(t *testing.T) {
		rec := s.post(articlePath(draft)+"comment/", url.Values{"comment": {"peek"}}, bob)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, 1, s.store.CommentCount())
	})

	commentID := s.article(slug, alice).Comments[0].ID
	commentBase := articlePath(slug) + "comments/" + strconv.FormatInt(commentID, 10)

	t.Run("EditByAuthor", func(t *testing.T) {
		rec := s.post(commentBase+"/edit", url.Values{"comment": {"Great read, thanks!"}}, bob)
		require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())

		view := s.article(slug, bob)
		require.Len(t, view.Comments, 1)
		assert.Equal(t, "Great read, thanks!", view.Comments[0].Comment)
		assert.True(t, view.Comments[0].IsEdited)
	})

	t.Run("EditByOther", func(t *testing.T) {
		rec := s.post(commentBase+"/edit", url.Values{"comment": {"rewritten"}}, alice)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("EditBadID", func(t *testing.T) {
		rec := s.post(articlePath(slug)+"comments/abc/edit", url.Values{"comment": {"x"}}, bob)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ModerateByOther", func(t *testing.T) {
		rec := s.post(commentBase+"/status", url.Values{"status": {"deleted"}}, bob)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("ModerateInvalidStatus", func(t *testing.T) {
		resp := decodeValidation(t, s.post(commentBase+"/status", url.Values{"status": {"hidden"}}, alice))
		assert.Contains(t, resp.Errors, "status")
	})

	t.Run("ModerateHides", func(t *testing.T) {
		rec := s.post(commentBase+"/status", url.Values{"status": {"spam"}}, alice)
		require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
		assert.Empty(t, s.article(slug, bob).Comments)

		rec = s.post(commentBase+"/status", url.Values{"status": {"allowed"}}, alice)
		require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
		assert.Len(t, s.article(slug, bob).Comments, 1)
	})
}

func TestHandler_Categories(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup("alice")
	bob := s.signup("bob")

	list := func(t *testing.T) []blog.CategoryView {
		t.Helper()

		rec := s.get("/categories/", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var views []blog.CategoryView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
		return views
	}

	t.Run("AnonymousCreate", func(t *testing.T) {
		rec := s.post("/categories/", url.Values{"name": {"Travel"}}, nil)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.True(t, strings.HasPrefix(rec.Header().Get(echo.HeaderLocation), loginPath))
		assert.Empty(t, list(t))
	})

	t.Run("Create", func(t *testing.T) {
		rec := s.post("/categories/", url.Values{"name": {"Street Food"}}, alice)
		require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
		assert.Equal(t, "/categories/", rec.Header().Get(echo.HeaderLocation))

		views := list(t)
		require.Len(t, views, 1)
		assert.Equal(t, "Street Food", views[0].Name)
		assert.Equal(t, "street-food", views[0].Slug)
	})

	t.Run("Duplicate", func(t *testing.T) {
		resp := decodeValidation(t, s.post("/categories/", url.Values{"name": {"Street Food"}}, bob))
		assert.Equal(t, []string{"Article category with this Name and Slug already exists."}, resp.Errors["name"])
	})

	t.Run("NoLetters", func(t *testing.T) {
		resp := decodeValidation(t, s.post("/categories/", url.Values{"name": {"!!!"}}, bob))
		assert.Equal(t, []string{"Enter a name that contains letters or numbers."}, resp.Errors["name"])
	})

	id := strconv.FormatInt(list(t)[0].ID, 10)

	t.Run("RenameByOther", func(t *testing.T) {
		rec := s.post("/categories/"+id+"/edit", url.Values{"name": {"Fast Food"}}, bob)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("RenameMissing", func(t *testing.T) {
		rec := s.post("/categories/9999/edit", url.Values{"name": {"Fast Food"}}, alice)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Rename", func(t *testing.T) {
		rec := s.post("/categories/"+id+"/edit", url.Values{"name": {"Fast Food"}}, alice)
		require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())

		views := list(t)
		require.Len(t, views, 1)
		assert.Equal(t, "Fast Food", views[0].Name)
		assert.Equal(t, "fast-food", views[0].Slug)
	})
}

// TestScenario walks two users through the whole site: signing up, writing,
// drafting, reading each other's work and commenting.
func TestScenario(t *testing.T) {
	s := newTestServer(t)

	alice := s.signup("alice")
	bob := s.signup("bob")
	travel := s.category("Travel", s.user("alice"))

	rec := s.get("/blogs/add/", alice)
	require.Equal(t, http.StatusOK, rec.Code)

	aliceSlug := s.createArticle(alice, "My First Trip", true, travel.ID)
	bobDraft := s.createArticle(bob, "Unfinished Thoughts", false, travel.ID)

	// alice sees her article but not bob's draft
	rec = s.get("/blogs/", alice)
	require.Equal(t, http.StatusOK, rec.Code)
	var summaries []blog.ArticleSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, aliceSlug, summaries[0].Slug)
	assert.Equal(t, "Alice Tester", summaries[0].PublishedBy.FullName)

	assert.Equal(t, http.StatusNotFound, s.get(articlePath(bobDraft), alice).Code)
	assert.Equal(t, http.StatusForbidden, s.post(articlePath(aliceSlug)+"edit", articleValues("Taken over", true, travel.ID), bob).Code)

	// bob comments on alice's article
	rec = s.post(articlePath(aliceSlug)+"comment/", url.Values{"comment": {"Lovely photos"}}, bob)
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())

	view := s.article(aliceSlug, alice)
	require.Len(t, view.Comments, 1)
	assert.Equal(t, "Lovely photos", view.Comments[0].Comment)
	assert.Equal(t, "Bob Tester", view.Comments[0].Author)

	// bob publishes his draft and alice can now read it
	rec = s.post(articlePath(bobDraft)+"edit", articleValues("Finished Thoughts", true, travel.ID), bob)
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	assert.Equal(t, "Finished Thoughts", s.article(bobDraft, alice).Name)

	// after logging out bob is sent to the login page with a return path
	require.Equal(t, http.StatusSeeOther, s.get("/accounts/logout/", bob).Code)
	rec = s.get(articlePath(aliceSlug), bob)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, loginPath+"?next="+url.QueryEscape(articlePath(aliceSlug)), rec.Header().Get(echo.HeaderLocation))
}

func TestScenario_FirstArticle(t *testing.T) {
	s := newTestServer(t)

	alice := s.signupAs("alice", "Alice", "Smith")
	bob := s.signupAs("bob", "", "")

	rec := s.post("/categories/", url.Values{"name": {"Travel"}}, alice)
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())

	rec = s.get("/categories/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var categories []blog.CategoryView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &categories))
	require.Len(t, categories, 1)
	assert.Equal(t, "travel", categories[0].Slug)

	rec = s.post("/blogs/", url.Values{
		"name":      {"My Trip"},
		"intro":     {"..."},
		"blog":      {"..."},
		"category":  {strconv.FormatInt(categories[0].ID, 10)},
		"published": {"on"},
	}, alice)
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())

	slug := slugFromLocation(t, rec.Header().Get(echo.HeaderLocation))
	assert.Regexp(t, regexp.MustCompile(`^my-trip-[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`), slug)

	rec = s.get(articlePath(slug), alice)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["Travel"]`, jsonField(t, rec.Body.Bytes(), "categories"))
	assert.JSONEq(t, `[]`, jsonField(t, rec.Body.Bytes(), "comments"))

	rec = s.post(articlePath(slug)+"comment/", url.Values{"comment": {"Nice!"}}, bob)
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())

	view := s.article(slug, alice)
	require.Len(t, view.Comments, 1)
	assert.Equal(t, "Nice!", view.Comments[0].Comment)
	assert.Equal(t, "bob", view.Comments[0].Author)
	assert.Equal(t, "BO", view.Comments[0].Initials)
}

func jsonField(t *testing.T, body []byte, name string) string {
	t.Helper()

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &fields))
	require.Contains(t, fields, name)
	return string(fields[name])
}
