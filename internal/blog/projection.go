package blog

import (
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/nalindobhal/blog/internal/db"
)

const (
	createdLayout  = "02-Jan-2006"
	wordsPerMinute = 250
	imagesPerMin   = 10
)

type Publisher struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
}

type CommentView struct {
	ID        int64     `json:"id"`
	Comment   string    `json:"comment"`
	Author    string    `json:"author"`
	Initials  string    `json:"initials"`
	Since     string    `json:"since"`
	IsEdited  bool      `json:"is_edited"`
	CreatedOn time.Time `json:"created_on"`
}

type ArticleView struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Slug        string        `json:"slug"`
	Intro       string        `json:"intro"`
	Blog        string        `json:"blog"`
	Wallpaper   *string       `json:"wallpaper"`
	Published   bool          `json:"published"`
	PublishedOn *time.Time    `json:"published_on"`
	Categories  []string      `json:"categories"`
	PublishedBy Publisher     `json:"published_by"`
	Created     string        `json:"created_on"`
	ReadMinutes int           `json:"read_minutes"`
	Comments    []CommentView `json:"comments"`
}

// ArticleSummary is the listing form of an article: no body, no comments.
type ArticleSummary struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Intro       string     `json:"intro"`
	Wallpaper   *string    `json:"wallpaper"`
	Published   bool       `json:"published"`
	PublishedOn *time.Time `json:"published_on"`
	Categories  []string   `json:"categories"`
	PublishedBy Publisher  `json:"published_by"`
	Created     string     `json:"created_on"`
}

type CategoryView struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Slug  string  `json:"slug"`
	Photo *string `json:"photo"`
}

// ArticleForm carries the current values of an article being edited together
// with the categories it may be assigned to.
type ArticleForm struct {
	Slug       string         `json:"slug,omitempty"`
	Values     ArticleInput   `json:"values"`
	Wallpaper  *string        `json:"wallpaper"`
	Categories []CategoryView `json:"categories"`
}

func NewCategoryView(c *db.ArticleCategory) CategoryView {
	return CategoryView{
		ID:    c.ID,
		Name:  c.Name,
		Slug:  c.Slug,
		Photo: c.Photo,
	}
}

func NewCategoryViews(in []db.ArticleCategory) []CategoryView {
	out := make([]CategoryView, len(in))
	for i := range in {
		out[i] = NewCategoryView(&in[i])
	}
	return out
}

func NewCommentView(c *db.Comment, now time.Time) CommentView {
	view := CommentView{
		ID:        c.ID,
		Comment:   c.Comment,
		IsEdited:  c.IsEdited,
		CreatedOn: c.CreatedOn,
		Since:     humanize.RelTime(c.CreatedOn, now, "ago", "from now"),
	}

	if c.CommentBy != nil {
		view.Author = FullName(c.CommentBy)
		view.Initials = Initials(c.CommentBy)
	}

	return view
}

func NewArticleView(a *Article, now time.Time) ArticleView {
	view := ArticleView{
		ID:          a.ID,
		Name:        a.Name,
		Slug:        a.Slug,
		Intro:       a.Intro,
		Wallpaper:   a.Wallpaper,
		Published:   a.Published,
		PublishedOn: a.PublishedOn,
		Categories:  categoryNames(a.Categories),
		PublishedBy: newPublisher(a.PublishedByID, a.PublishedBy),
		Created:     a.CreatedOn.Format(createdLayout),
		Comments:    make([]CommentView, 0, len(a.Comments)),
	}

	if a.Blog != nil {
		view.Blog = *a.Blog
	}
	view.ReadMinutes = ReadMinutes(view.Blog)

	for i := range a.Comments {
		view.Comments = append(view.Comments, NewCommentView(&a.Comments[i].Comment, now))
	}

	return view
}

func NewArticleSummary(a *Article) ArticleSummary {
	return ArticleSummary{
		ID:          a.ID,
		Name:        a.Name,
		Slug:        a.Slug,
		Intro:       a.Intro,
		Wallpaper:   a.Wallpaper,
		Published:   a.Published,
		PublishedOn: a.PublishedOn,
		Categories:  categoryNames(a.Categories),
		PublishedBy: newPublisher(a.PublishedByID, a.PublishedBy),
		Created:     a.CreatedOn.Format(createdLayout),
	}
}

func NewArticleSummaries(ll Articles) []ArticleSummary {
	out := make([]ArticleSummary, len(ll))
	for i := range ll {
		out[i] = NewArticleSummary(&ll[i])
	}
	return out
}

// FullName is "First Last", or the username when both parts are blank.
func FullName(u *db.User) string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// Initials are the first letters of the first and last name, or the first
// two characters of the username when a name part is missing.
func Initials(u *db.User) string {
	first := strings.TrimSpace(u.FirstName)
	last := strings.TrimSpace(u.LastName)
	if first != "" && last != "" {
		f, _ := utf8.DecodeRuneInString(first)
		l, _ := utf8.DecodeRuneInString(last)
		return string(unicode.ToUpper(f)) + string(unicode.ToUpper(l))
	}

	runes := []rune(u.Username)
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return strings.ToUpper(string(runes))
}

// ReadMinutes estimates the reading time of an article body at 250 words and
// 10 images per minute, never less than a minute.
func ReadMinutes(body string) int {
	words := len(strings.Fields(body))
	images := strings.Count(body, "<img")

	minutes := int(math.Ceil(float64(words)/wordsPerMinute + float64(images)/imagesPerMin))
	if minutes < 1 {
		return 1
	}
	return minutes
}

func newPublisher(id int64, u *db.User) Publisher {
	p := Publisher{ID: id}
	if u != nil {
		p.FullName = FullName(u)
	}
	return p
}

func categoryNames(categories []Category) []string {
	names := make([]string, len(categories))
	for i := range categories {
		names[i] = categories[i].Name
	}
	return names
}
