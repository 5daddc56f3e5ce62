// Package blog implements the article publication and comment workflow.
package blog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nalindobhal/blog/internal/db"
	"github.com/nalindobhal/blog/internal/form"
	"github.com/nalindobhal/blog/internal/media"
	"github.com/nalindobhal/blog/internal/slug"
)

const (
	maxArticleSlugBase = 500 - 37 // room for "-" + uuid
	maxCategorySlug    = 50
	wallpaperTable     = "articles"
)

type Manager struct {
	store db.Store
	media media.Store
	now   func() time.Time
}

func NewManager(store db.Store, files media.Store) *Manager {
	return &Manager{
		store: store,
		media: files,
		now:   time.Now,
	}
}

// Articles lists the articles visible to viewer, newest first.
func (m *Manager) Articles(ctx context.Context, viewer *db.User, q ListQuery) ([]ArticleSummary, error) {
	if !IsAuthenticated(viewer) {
		return nil, ErrUnauthenticated
	}

	filter := db.ArticleFilter{ViewerID: viewer.ID, Limit: q.Limit}
	if q.AuthorID != 0 {
		filter.AuthorID = &q.AuthorID
	}

	if q.Category != "" {
		category, err := m.store.CategoryBySlug(ctx, q.Category)
		if err != nil {
			return nil, fmt.Errorf("db get category: %w", err)
		} else if category == nil {
			return []ArticleSummary{}, nil
		}
		filter.CategoryID = &category.ID
	}

	return m.summaries(ctx, filter)
}

// RecentArticles returns the newest published articles for anonymous pages.
func (m *Manager) RecentArticles(ctx context.Context, limit int) ([]ArticleSummary, error) {
	return m.summaries(ctx, db.ArticleFilter{Limit: limit})
}

func (m *Manager) summaries(ctx context.Context, filter db.ArticleFilter) ([]ArticleSummary, error) {
	list, err := m.store.Articles(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("db get articles: %w", err)
	}

	articles := NewArticles(list)
	if err := m.fillCategories(ctx, articles); err != nil {
		return nil, fmt.Errorf("failed to attach categories to articles: %w", err)
	}

	return NewArticleSummaries(articles), nil
}

// ArticleBySlug returns the full read projection of an article with its allowed comments.
func (m *Manager) ArticleBySlug(ctx context.Context, viewer *db.User, articleSlug string) (*ArticleView, error) {
	if !IsAuthenticated(viewer) {
		return nil, ErrUnauthenticated
	}

	article, err := m.visibleArticle(ctx, viewer, articleSlug)
	if err != nil {
		return nil, err
	}

	comments, err := m.store.CommentsByArticle(ctx, article.ID, db.CommentAllowed)
	if err != nil {
		return nil, fmt.Errorf("db get comments: %w", err)
	}

	for i := range comments {
		article.Comments = append(article.Comments, Comment{comments[i]})
	}

	view := NewArticleView(article, m.now())
	return &view, nil
}

// NewArticleForm returns the empty create form.
func (m *Manager) NewArticleForm(ctx context.Context, user *db.User) (*ArticleForm, error) {
	if !IsAuthenticated(user) {
		return nil, ErrUnauthenticated
	}

	categories, err := m.store.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("db get categories: %w", err)
	}

	return &ArticleForm{
		Values:     ArticleInput{Categories: []int64{}},
		Categories: NewCategoryViews(categories),
	}, nil
}

// CreateArticle stores a new article owned by user. The row, its categories
// and its wallpaper are written in one transaction.
func (m *Manager) CreateArticle(ctx context.Context, user *db.User, in ArticleInput, wallpaper *media.File) (*db.Article, error) {
	if !IsAuthenticated(user) {
		return nil, ErrUnauthenticated
	}

	if err := m.validateArticle(ctx, &in, wallpaper); err != nil {
		return nil, err
	}

	now := m.now()
	article := &db.Article{
		Name:          in.Name,
		Slug:          slug.Unique(slug.Truncate(slug.Derive(in.Name), maxArticleSlugBase)),
		Intro:         in.Intro,
		Blog:          &in.Blog,
		Published:     in.Published,
		PublishedByID: user.ID,
		CreatedOn:     now,
		UpdatedOn:     now,
	}
	if in.Published {
		article.PublishedOn = &now
	}

	err := m.store.InTx(ctx, func(tx db.Store) error {
		if err := tx.CreateArticle(ctx, article); err != nil {
			return fmt.Errorf("db create article: %w", err)
		}

		if err := tx.SetArticleCategories(ctx, article.ID, in.Categories); err != nil {
			return fmt.Errorf("db set article categories: %w", err)
		}

		if wallpaper == nil {
			return nil
		}

		if err := m.saveWallpaper(ctx, article, wallpaper); err != nil {
			return err
		}

		if err := tx.UpdateArticle(ctx, article); err != nil {
			return fmt.Errorf("db update article wallpaper: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return article, nil
}

// EditableArticle returns the edit form of an article owned by user.
func (m *Manager) EditableArticle(ctx context.Context, user *db.User, articleSlug string) (*ArticleForm, error) {
	article, err := m.articleFor(ctx, user, articleSlug, CanEdit)
	if err != nil {
		return nil, err
	}

	links, err := m.store.ArticleCategoryLinks(ctx, []int64{article.ID})
	if err != nil {
		return nil, fmt.Errorf("db get article categories: %w", err)
	}

	categories, err := m.store.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("db get categories: %w", err)
	}

	values := ArticleInput{
		Name:       article.Name,
		Intro:      article.Intro,
		Categories: categoryIDs(links),
		Published:  article.Published,
	}
	if article.Blog != nil {
		values.Blog = *article.Blog
	}

	return &ArticleForm{
		Slug:       article.Slug,
		Values:     values,
		Wallpaper:  article.Wallpaper,
		Categories: NewCategoryViews(categories),
	}, nil
}

// UpdateArticle applies in to an article owned by user. A nil wallpaper keeps
// the stored one. The slug never changes.
func (m *Manager) UpdateArticle(ctx context.Context, user *db.User, articleSlug string, in ArticleInput, wallpaper *media.File) (*db.Article, error) {
	article, err := m.articleFor(ctx, user, articleSlug, CanEdit)
	if err != nil {
		return nil, err
	}

	if err := m.validateArticle(ctx, &in, wallpaper); err != nil {
		return nil, err
	}

	now := m.now()
	stored := &article.Article
	stored.Name = in.Name
	stored.Intro = in.Intro
	stored.Blog = &in.Blog
	stored.Published = in.Published
	stored.UpdatedOn = now
	if in.Published && stored.PublishedOn == nil {
		stored.PublishedOn = &now
	}

	err = m.store.InTx(ctx, func(tx db.Store) error {
		if wallpaper != nil {
			if err := m.saveWallpaper(ctx, stored, wallpaper); err != nil {
				return err
			}
		}

		if err := tx.UpdateArticle(ctx, stored); err != nil {
			return fmt.Errorf("db update article: %w", err)
		}

		if err := tx.SetArticleCategories(ctx, stored.ID, in.Categories); err != nil {
			return fmt.Errorf("db set article categories: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return stored, nil
}

// SubmitComment adds a comment by user to a visible article.
func (m *Manager) SubmitComment(ctx context.Context, user *db.User, articleSlug string, in CommentInput) (*CommentView, error) {
	if !IsAuthenticated(user) {
		return nil, ErrUnauthenticated
	}

	article, err := m.visibleArticle(ctx, user, articleSlug)
	if err != nil {
		return nil, err
	}

	if err := in.validate().Err(); err != nil {
		return nil, err
	}

	comment := &db.Comment{
		Comment:     in.Comment,
		ArticleID:   article.ID,
		CommentByID: user.ID,
		Status:      db.CommentAllowed,
		CreatedOn:   m.now(),
	}
	if err := m.store.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("db create comment: %w", err)
	}

	comment.CommentBy = user
	view := NewCommentView(comment, m.now())
	return &view, nil
}

// EditComment lets the author of a comment change its body.
func (m *Manager) EditComment(ctx context.Context, user *db.User, articleSlug string, commentID int64, in CommentInput) (*CommentView, error) {
	if !IsAuthenticated(user) {
		return nil, ErrUnauthenticated
	}

	article, err := m.visibleArticle(ctx, user, articleSlug)
	if err != nil {
		return nil, err
	}

	comment, err := m.articleComment(ctx, &article.Article, commentID)
	if err != nil {
		return nil, err
	}

	if !CanEditComment(user, comment) {
		return nil, ErrForbidden
	}

	if err := in.validate().Err(); err != nil {
		return nil, err
	}

	comment.Comment = in.Comment
	comment.IsEdited = true
	if err := m.store.UpdateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("db update comment: %w", err)
	}

	view := NewCommentView(comment, m.now())
	return &view, nil
}

// ModerateComment lets the article owner allow, delete or flag a comment.
func (m *Manager) ModerateComment(ctx context.Context, user *db.User, articleSlug string, commentID int64, in ModerationInput) (*CommentView, error) {
	article, err := m.articleFor(ctx, user, articleSlug, CanModerate)
	if err != nil {
		return nil, err
	}

	comment, err := m.articleComment(ctx, &article.Article, commentID)
	if err != nil {
		return nil, err
	}

	if err := form.Validate(in).Err(); err != nil {
		return nil, err
	}

	comment.Status = in.Status
	if err := m.store.UpdateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("db update comment: %w", err)
	}

	view := NewCommentView(comment, m.now())
	return &view, nil
}

func (m *Manager) Categories(ctx context.Context) ([]CategoryView, error) {
	list, err := m.store.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("db get categories: %w", err)
	}

	return NewCategoryViews(list), nil
}

func (m *Manager) CreateCategory(ctx context.Context, user *db.User, in CategoryInput) (*CategoryView, error) {
	if !IsAuthenticated(user) {
		return nil, ErrUnauthenticated
	}

	now := m.now()
	category := &db.ArticleCategory{
		CreatedByID: &user.ID,
		CreatedOn:   now,
	}

	if err := m.saveCategory(ctx, category, in, now); err != nil {
		return nil, err
	}

	view := NewCategoryView(category)
	return &view, nil
}

// RenameCategory changes the name of a category created by user. The slug
// follows the new name.
func (m *Manager) RenameCategory(ctx context.Context, user *db.User, id int64, in CategoryInput) (*CategoryView, error) {
	if !IsAuthenticated(user) {
		return nil, ErrUnauthenticated
	}

	category, err := m.store.CategoryByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("db get category: %w", err)
	} else if category == nil {
		return nil, ErrNotFound
	}

	if !CanRenameCategory(user, category) {
		return nil, ErrForbidden
	}

	if err := m.saveCategory(ctx, category, in, m.now()); err != nil {
		return nil, err
	}

	view := NewCategoryView(category)
	return &view, nil
}

func (m *Manager) saveCategory(ctx context.Context, category *db.ArticleCategory, in CategoryInput, now time.Time) error {
	in.Name = strings.TrimSpace(in.Name)

	ve := form.Validate(in)
	derived := slug.Truncate(slug.Derive(in.Name), maxCategorySlug)
	if ve.Empty() && derived == "" {
		ve.Add("name", "Enter a name that contains letters or numbers.")
	}
	if err := ve.Err(); err != nil {
		return err
	}

	category.Name = in.Name
	category.Slug = derived
	category.UpdatedOn = now

	if err := m.store.SaveCategory(ctx, category); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			ve.Add("name", "Article category with this Name and Slug already exists.")
			return ve
		}
		return fmt.Errorf("db save category: %w", err)
	}

	return nil
}

func (m *Manager) validateArticle(ctx context.Context, in *ArticleInput, wallpaper *media.File) error {
	in.normalize()

	ve := form.Validate(in)
	if wallpaper != nil && !strings.HasPrefix(wallpaper.ContentType, "image/") {
		ve.Add("wallpaper", "Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
	}
	if len(in.Categories) > 0 {
		found, err := m.store.CategoriesByIDs(ctx, in.Categories)
		if err != nil {
			return fmt.Errorf("db get categories: %w", err)
		}

		known := make(map[int64]struct{}, len(found))
		for _, c := range found {
			known[c.ID] = struct{}{}
		}

		for _, id := range in.Categories {
			if _, ok := known[id]; !ok {
				ve.Add("category", fmt.Sprintf("Select a valid choice. %d is not one of the available choices.", id))
			}
		}
	}

	return ve.Err()
}

func (m *Manager) saveWallpaper(ctx context.Context, article *db.Article, file *media.File) error {
	key := media.UploadPath(article.ID, article.Slug, wallpaperTable, file.Filename, m.now())

	ref, err := m.media.Save(ctx, key, file.Body, file.ContentType)
	if err != nil {
		return fmt.Errorf("save wallpaper: %w", err)
	}

	article.Wallpaper = &ref
	return nil
}

// visibleArticle resolves slug into an article viewer may read; anything else is ErrNotFound.
func (m *Manager) visibleArticle(ctx context.Context, viewer *db.User, articleSlug string) (*Article, error) {
	dbArticle, err := m.store.ArticleBySlug(ctx, articleSlug)
	if err != nil {
		return nil, fmt.Errorf("db get article: %w", err)
	}

	if !CanView(viewer, dbArticle) {
		return nil, ErrNotFound
	}

	articles := NewArticles([]db.Article{*dbArticle})
	if err := m.fillCategories(ctx, articles); err != nil {
		return nil, fmt.Errorf("failed to attach categories to article: %w", err)
	}

	return &articles[0], nil
}

// articleFor resolves slug and checks can: ErrNotFound first, then ErrForbidden.
func (m *Manager) articleFor(ctx context.Context, user *db.User, articleSlug string, can func(*db.User, *db.Article) bool) (*Article, error) {
	if !IsAuthenticated(user) {
		return nil, ErrUnauthenticated
	}

	dbArticle, err := m.store.ArticleBySlug(ctx, articleSlug)
	if err != nil {
		return nil, fmt.Errorf("db get article: %w", err)
	} else if dbArticle == nil {
		return nil, ErrNotFound
	}

	if !can(user, dbArticle) {
		return nil, ErrForbidden
	}

	return &Article{Article: *dbArticle}, nil
}

func (m *Manager) articleComment(ctx context.Context, article *db.Article, commentID int64) (*db.Comment, error) {
	comment, err := m.store.CommentByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("db get comment: %w", err)
	}

	if comment == nil || comment.ArticleID != article.ID {
		return nil, ErrNotFound
	}

	return comment, nil
}

func (m *Manager) fillCategories(ctx context.Context, articles Articles) error {
	if len(articles) == 0 {
		return nil
	}

	links, err := m.store.ArticleCategoryLinks(ctx, articles.IDs())
	if err != nil {
		return err
	}

	categories, err := m.store.CategoriesByIDs(ctx, categoryIDs(links))
	if err != nil {
		return err
	}

	articles.SetCategories(links, categories)
	return nil
}
