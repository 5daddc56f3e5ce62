package rpc

import (
	"time"

	"github.com/nalindobhal/blog/internal/blog"
)

type ArticleFilter struct {
	//category optional category slug
	Category *string `json:"category,omitempty"`
	//authorId optional publisher filter
	AuthorID *int64 `json:"authorId,omitempty"`
	//limit optional maximum number of articles
	Limit *int `json:"limit,omitempty"`
}

func (f ArticleFilter) ToModel() blog.ListQuery {
	var q blog.ListQuery
	if f.Category != nil {
		q.Category = *f.Category
	}
	if f.AuthorID != nil {
		q.AuthorID = *f.AuthorID
	}
	if f.Limit != nil {
		q.Limit = *f.Limit
	}
	return q
}

type ArticleInput struct {
	Name        string  `json:"name"`
	Intro       string  `json:"intro"`
	Blog        string  `json:"blog"`
	CategoryIDs []int64 `json:"categoryIds"`
	Published   bool    `json:"published"`
}

func (in ArticleInput) ToModel() blog.ArticleInput {
	return blog.ArticleInput{
		Name:       in.Name,
		Intro:      in.Intro,
		Blog:       in.Blog,
		Categories: in.CategoryIDs,
		Published:  in.Published,
	}
}

type Publisher struct {
	UserID   int64  `json:"userId"`
	FullName string `json:"fullName"`
}

type Category struct {
	CategoryID int64   `json:"categoryId"`
	Name       string  `json:"name"`
	Slug       string  `json:"slug"`
	Photo      *string `json:"photo"`
}

type Comment struct {
	CommentID int64     `json:"commentId"`
	Comment   string    `json:"comment"`
	Author    string    `json:"author"`
	Initials  string    `json:"initials"`
	Since     string    `json:"since"`
	IsEdited  bool      `json:"isEdited"`
	CreatedAt time.Time `json:"createdAt"`
}

type Article struct {
	ArticleID   int64      `json:"articleId"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Intro       string     `json:"intro"`
	Blog        string     `json:"blog"`
	Wallpaper   *string    `json:"wallpaper"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"publishedAt"`
	Categories  []string   `json:"categories"`
	PublishedBy Publisher  `json:"publishedBy"`
	Created     string     `json:"created"`
	ReadMinutes int        `json:"readMinutes"`
	Comments    []Comment  `json:"comments"`
}

type ArticleSummary struct {
	ArticleID   int64      `json:"articleId"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Intro       string     `json:"intro"`
	Wallpaper   *string    `json:"wallpaper"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"publishedAt"`
	Categories  []string   `json:"categories"`
	PublishedBy Publisher  `json:"publishedBy"`
	Created     string     `json:"created"`
}

type (
	ArticleSummaries []ArticleSummary
	Categories       []Category
	Comments         []Comment
)
