package blog

import "github.com/nalindobhal/blog/internal/db"

func IsAuthenticated(user *db.User) bool {
	return user != nil && user.ID != 0
}

// CanEdit reports whether user owns the article.
func CanEdit(user *db.User, article *db.Article) bool {
	return IsAuthenticated(user) && article != nil && article.PublishedByID == user.ID
}

// CanView reports whether user may read the article: published ones are
// public, drafts are visible to their owner only.
func CanView(user *db.User, article *db.Article) bool {
	return article != nil && (article.Published || CanEdit(user, article))
}

func CanEditComment(user *db.User, comment *db.Comment) bool {
	return IsAuthenticated(user) && comment != nil && comment.CommentByID == user.ID
}

// CanModerate reports whether user may change the status of comments on article.
func CanModerate(user *db.User, article *db.Article) bool {
	return CanEdit(user, article)
}

func CanRenameCategory(user *db.User, category *db.ArticleCategory) bool {
	return IsAuthenticated(user) && category != nil &&
		category.CreatedByID != nil && *category.CreatedByID == user.ID
}
