package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-pg/pg/v10"
)

const uniqueViolation = "23505"

type Repository struct {
	db pg.DBI
}

func New(db pg.DBI) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Ping(ctx context.Context) error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Ping(ctx); err != nil {
			return err
		}
		return nil
	}

	return nil
}

func (r *Repository) Close() error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Close(); err != nil {
			return err
		}
		return nil
	}

	return nil
}

func (r *Repository) InTx(ctx context.Context, fn func(Store) error) error {
	return r.db.RunInTransaction(ctx, func(tx *pg.Tx) error {
		return fn(New(tx))
	})
}

// writeErr maps unique violations to a DuplicateError and wraps everything else.
func writeErr(op string, err error) error {
	var pgErr pg.Error
	if errors.As(err, &pgErr) && pgErr.Field('C') == uniqueViolation {
		return fmt.Errorf("%s: %w", op, &DuplicateError{Constraint: pgErr.Field('n')})
	}

	return fmt.Errorf("%s: %w", op, err)
}

func (r *Repository) CreateUser(ctx context.Context, user *User) error {
	if _, err := r.db.ModelContext(ctx, user).Insert(); err != nil {
		return writeErr("failed to insert user", err)
	}

	return nil
}

func (r *Repository) UserByID(ctx context.Context, id int64) (*User, error) {
	user := &User{}
	err := r.db.ModelContext(ctx, user).
		Where(`"t"."id" = ?`, id).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *Repository) UserByUsername(ctx context.Context, username string) (*User, error) {
	user := &User{}
	err := r.db.ModelContext(ctx, user).
		Where(`"t"."username" = ?`, username).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

func (r *Repository) EmailTaken(ctx context.Context, email string) (bool, error) {
	exists, err := r.db.ModelContext(ctx, (*User)(nil)).
		Where(`lower("t"."email") = lower(?)`, email).
		Exists()
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}

	return exists, nil
}

func (r *Repository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	exists, err := r.db.ModelContext(ctx, (*User)(nil)).
		Where(`"t"."username" = ?`, username).
		Exists()
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}

	return exists, nil
}

func (r *Repository) CreateSession(ctx context.Context, session *Session) error {
	if _, err := r.db.ModelContext(ctx, session).Insert(); err != nil {
		return writeErr("failed to insert session", err)
	}

	return nil
}

func (r *Repository) SessionByID(ctx context.Context, id string) (*Session, error) {
	session := &Session{}
	err := r.db.ModelContext(ctx, session).
		Where(`"t"."id" = ?`, id).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

func (r *Repository) RevokeSession(ctx context.Context, id string) error {
	_, err := r.db.ModelContext(ctx, (*Session)(nil)).
		Set(`"revoked_on" = now()`).
		Where(`"t"."id" = ?`, id).
		Where(`"t"."revoked_on" IS NULL`).
		Update()
	if err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	return nil
}

func (r *Repository) Categories(ctx context.Context) ([]ArticleCategory, error) {
	var categories []ArticleCategory
	err := r.db.ModelContext(ctx, &categories).
		OrderExpr(`"t"."name" ASC`).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}

	return categories, nil
}

func (r *Repository) CategoryByID(ctx context.Context, id int64) (*ArticleCategory, error) {
	category := &ArticleCategory{}
	err := r.db.ModelContext(ctx, category).
		Where(`"t"."id" = ?`, id).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get category by id: %w", err)
	}

	return category, nil
}

func (r *Repository) CategoryBySlug(ctx context.Context, slug string) (*ArticleCategory, error) {
	category := &ArticleCategory{}
	err := r.db.ModelContext(ctx, category).
		Where(`"t"."slug" = ?`, slug).
		OrderExpr(`"t"."id" ASC`).
		Limit(1).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get category by slug: %w", err)
	}

	return category, nil
}

func (r *Repository) CategoriesByIDs(ctx context.Context, ids []int64) ([]ArticleCategory, error) {
	if len(ids) == 0 {
		return []ArticleCategory{}, nil
	}

	categories := []ArticleCategory{}
	err := r.db.ModelContext(ctx, &categories).
		Where(`"t"."id" IN (?)`, pg.In(ids)).
		OrderExpr(`"t"."name" ASC`).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query categories by ids: %w", err)
	}

	return categories, nil
}

func (r *Repository) SaveCategory(ctx context.Context, category *ArticleCategory) error {
	q := r.db.ModelContext(ctx, category)
	if category.ID == 0 {
		if _, err := q.Insert(); err != nil {
			return writeErr("failed to insert category", err)
		}
		return nil
	}

	if _, err := q.WherePK().
		Column("name", "slug", "photo", "updated_on").
		Update(); err != nil {
		return writeErr("failed to update category", err)
	}

	return nil
}

// Articles returns articles newest first with the publisher loaded.
func (r *Repository) Articles(ctx context.Context, filter ArticleFilter) ([]Article, error) {
	var articles []Article
	query := r.db.ModelContext(ctx, &articles).
		Relation("PublishedBy").
		WhereGroup(func(q *pg.Query) (*pg.Query, error) {
			q = q.WhereOr(`"t"."published" = TRUE`)
			if filter.ViewerID != 0 {
				q = q.WhereOr(`"t"."published_by_id" = ?`, filter.ViewerID)
			}
			return q, nil
		})

	if filter.CategoryID != nil {
		query = query.Where(`EXISTS (SELECT 1 FROM "articles_category" AS "ac" WHERE "ac"."article_id" = "t"."id" AND "ac"."category_id" = ?)`, *filter.CategoryID)
	}

	if filter.AuthorID != nil {
		query = query.Where(`"t"."published_by_id" = ?`, *filter.AuthorID)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	err := query.
		OrderExpr(`"t"."id" DESC`).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}

	return articles, nil
}

func (r *Repository) ArticleBySlug(ctx context.Context, slug string) (*Article, error) {
	article := &Article{}
	err := r.db.ModelContext(ctx, article).
		Relation("PublishedBy").
		Where(`"t"."slug" = ?`, slug).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get article by slug: %w", err)
	}

	return article, nil
}

func (r *Repository) CreateArticle(ctx context.Context, article *Article) error {
	if _, err := r.db.ModelContext(ctx, article).Insert(); err != nil {
		return writeErr("failed to insert article", err)
	}

	return nil
}

func (r *Repository) UpdateArticle(ctx context.Context, article *Article) error {
	_, err := r.db.ModelContext(ctx, article).
		WherePK().
		Column("name", "intro", "blog", "wallpaper", "published", "published_on", "updated_on").
		Update()
	if err != nil {
		return writeErr("failed to update article", err)
	}

	return nil
}

func (r *Repository) SetArticleCategories(ctx context.Context, articleID int64, categoryIDs []int64) error {
	_, err := r.db.ModelContext(ctx, (*ArticleCategoryLink)(nil)).
		Where(`"t"."article_id" = ?`, articleID).
		Delete()
	if err != nil {
		return fmt.Errorf("failed to clear article categories: %w", err)
	}

	if len(categoryIDs) == 0 {
		return nil
	}

	links := make([]ArticleCategoryLink, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		links = append(links, ArticleCategoryLink{ArticleID: articleID, CategoryID: id})
	}

	if _, err := r.db.ModelContext(ctx, &links).OnConflict("DO NOTHING").Insert(); err != nil {
		return fmt.Errorf("failed to insert article categories: %w", err)
	}

	return nil
}

func (r *Repository) ArticleCategoryLinks(ctx context.Context, articleIDs []int64) ([]ArticleCategoryLink, error) {
	if len(articleIDs) == 0 {
		return []ArticleCategoryLink{}, nil
	}

	links := []ArticleCategoryLink{}
	err := r.db.ModelContext(ctx, &links).
		Where(`"t"."article_id" IN (?)`, pg.In(articleIDs)).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query article categories: %w", err)
	}

	return links, nil
}

func (r *Repository) CreateComment(ctx context.Context, comment *Comment) error {
	if _, err := r.db.ModelContext(ctx, comment).Insert(); err != nil {
		return writeErr("failed to insert comment", err)
	}

	return nil
}

func (r *Repository) CommentByID(ctx context.Context, id int64) (*Comment, error) {
	comment := &Comment{}
	err := r.db.ModelContext(ctx, comment).
		Relation("CommentBy").
		Where(`"t"."id" = ?`, id).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get comment by id: %w", err)
	}

	return comment, nil
}

// CommentsByArticle returns the comments of an article newest first. When
// statuses are given only comments in one of them are returned.
func (r *Repository) CommentsByArticle(ctx context.Context, articleID int64, statuses ...string) ([]Comment, error) {
	comments := []Comment{}
	query := r.db.ModelContext(ctx, &comments).
		Relation("CommentBy").
		Where(`"t"."article_id" = ?`, articleID)

	if len(statuses) > 0 {
		query = query.Where(`"t"."status" IN (?)`, pg.In(statuses))
	}

	err := query.
		OrderExpr(`"t"."created_on" DESC, "t"."id" DESC`).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}

	return comments, nil
}

func (r *Repository) UpdateComment(ctx context.Context, comment *Comment) error {
	_, err := r.db.ModelContext(ctx, comment).
		WherePK().
		Column("comment", "status", "is_edited").
		Update()
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}

	return nil
}
