package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-pg/urlstruct"
	"github.com/labstack/echo/v4"

	"github.com/nalindobhal/blog/internal/blog"
	"github.com/nalindobhal/blog/internal/media"
)

// checkbox accepts the values HTML forms and JSON clients send for a boolean.
type checkbox bool

func (b *checkbox) UnmarshalParam(param string) error {
	switch strings.ToLower(strings.TrimSpace(param)) {
	case "on", "true", "1", "yes":
		*b = true
	default:
		*b = false
	}
	return nil
}

func (b *checkbox) UnmarshalJSON(data []byte) error {
	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*b = checkbox(v)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return b.UnmarshalParam(s)
}

type ArticleRequest struct {
	Name       string   `json:"name" form:"name"`
	Intro      string   `json:"intro" form:"intro"`
	Blog       string   `json:"blog" form:"blog"`
	Categories []int64  `json:"category" form:"category"`
	Published  checkbox `json:"published" form:"published"`
}

func (r ArticleRequest) Input() blog.ArticleInput {
	return blog.ArticleInput{
		Name:       r.Name,
		Intro:      r.Intro,
		Blog:       r.Blog,
		Categories: r.Categories,
		Published:  bool(r.Published),
	}
}

// ArticleListRequest is decoded from the query string of article listings.
type ArticleListRequest struct {
	Category string
	Author   int64
}

func bindArticleList(c echo.Context) (blog.ListQuery, error) {
	var req ArticleListRequest
	if err := urlstruct.Unmarshal(c.Request().Context(), c.QueryParams(), &req); err != nil {
		return blog.ListQuery{}, err
	}

	return blog.ListQuery{Category: req.Category, AuthorID: req.Author}, nil
}

const sniffLen = 512

// wallpaperFile returns the uploaded wallpaper or nil when none was sent.
// The returned closer must be called once the file has been stored.
func wallpaperFile(c echo.Context) (*media.File, func(), error) {
	noop := func() {}
	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		return nil, noop, nil
	}

	fh, err := c.FormFile("wallpaper")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, noop, nil
	} else if err != nil {
		return nil, noop, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, noop, err
	}
	closeFn := func() { _ = f.Close() }

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		closeFn()
		return nil, noop, err
	}
	head = head[:n]

	return &media.File{
		Filename:    fh.Filename,
		ContentType: http.DetectContentType(head),
		Body:        io.MultiReader(bytes.NewReader(head), f),
	}, closeFn, nil
}
