package rpc

import "github.com/nalindobhal/blog/internal/blog"

func NewPublisher(p blog.Publisher) Publisher {
	return Publisher{
		UserID:   p.ID,
		FullName: p.FullName,
	}
}

func NewCategory(c blog.CategoryView) Category {
	return Category{
		CategoryID: c.ID,
		Name:       c.Name,
		Slug:       c.Slug,
		Photo:      c.Photo,
	}
}

func NewComment(c blog.CommentView) Comment {
	return Comment{
		CommentID: c.ID,
		Comment:   c.Comment,
		Author:    c.Author,
		Initials:  c.Initials,
		Since:     c.Since,
		IsEdited:  c.IsEdited,
		CreatedAt: c.CreatedOn,
	}
}

func NewArticle(a blog.ArticleView) Article {
	return Article{
		ArticleID:   a.ID,
		Name:        a.Name,
		Slug:        a.Slug,
		Intro:       a.Intro,
		Blog:        a.Blog,
		Wallpaper:   a.Wallpaper,
		Published:   a.Published,
		PublishedAt: a.PublishedOn,
		Categories:  a.Categories,
		PublishedBy: NewPublisher(a.PublishedBy),
		Created:     a.Created,
		ReadMinutes: a.ReadMinutes,
		Comments:    NewComments(a.Comments),
	}
}

func NewArticleSummary(a blog.ArticleSummary) ArticleSummary {
	return ArticleSummary{
		ArticleID:   a.ID,
		Name:        a.Name,
		Slug:        a.Slug,
		Intro:       a.Intro,
		Wallpaper:   a.Wallpaper,
		Published:   a.Published,
		PublishedAt: a.PublishedOn,
		Categories:  a.Categories,
		PublishedBy: NewPublisher(a.PublishedBy),
		Created:     a.Created,
	}
}

func NewArticleSummaries(in []blog.ArticleSummary) ArticleSummaries {
	out := make(ArticleSummaries, len(in))
	for i := range in {
		out[i] = NewArticleSummary(in[i])
	}
	return out
}

func NewCategories(in []blog.CategoryView) Categories {
	out := make(Categories, len(in))
	for i := range in {
		out[i] = NewCategory(in[i])
	}
	return out
}

func NewComments(in []blog.CommentView) Comments {
	out := make(Comments, len(in))
	for i := range in {
		out[i] = NewComment(in[i])
	}
	return out
}
