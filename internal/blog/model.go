package blog

import (
	"github.com/nalindobhal/blog/internal/db"
)

type Category struct {
	db.ArticleCategory
}

type Comment struct {
	db.Comment
}

type Article struct {
	db.Article
	Categories []Category
	Comments   []Comment
}

type Articles []Article

func NewArticles(in []db.Article) Articles {
	out := make(Articles, len(in))
	for i := range in {
		out[i] = Article{Article: in[i]}
	}
	return out
}

func (ll Articles) IDs() []int64 {
	ids := make([]int64, len(ll))
	for i := range ll {
		ids[i] = ll[i].ID
	}
	return ids
}

// SetCategories attaches categories to articles according to links.
func (ll Articles) SetCategories(links []db.ArticleCategoryLink, categories []db.ArticleCategory) {
	index := make(map[int64]db.ArticleCategory, len(categories))
	for _, c := range categories {
		index[c.ID] = c
	}

	byArticle := make(map[int64][]Category, len(ll))
	for _, l := range links {
		if c, ok := index[l.CategoryID]; ok {
			byArticle[l.ArticleID] = append(byArticle[l.ArticleID], Category{c})
		}
	}

	for i := range ll {
		ll[i].Categories = byArticle[ll[i].ID]
	}
}

func categoryIDs(links []db.ArticleCategoryLink) []int64 {
	seen := make(map[int64]struct{}, len(links))
	ids := make([]int64, 0, len(links))
	for _, l := range links {
		if _, ok := seen[l.CategoryID]; ok {
			continue
		}
		seen[l.CategoryID] = struct{}{}
		ids = append(ids, l.CategoryID)
	}
	return ids
}
