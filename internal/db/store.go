package db

import (
	"context"
	"errors"
)

const (
	CommentAllowed = "allowed"
	CommentDeleted = "deleted"
	CommentSpam    = "spam"
)

// ErrDuplicate is returned when a write hits a unique constraint.
var ErrDuplicate = errors.New("duplicate value")

// Unique constraints on users, as named in the schema.
const (
	UsersUsernameKey = "users_username_key"
	UsersEmailKey    = "users_email_key"
)

// DuplicateError names the unique constraint a write violated. It matches
// ErrDuplicate with errors.Is.
type DuplicateError struct {
	Constraint string
}

func (e *DuplicateError) Error() string {
	return ErrDuplicate.Error() + ": " + e.Constraint
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

// ArticleFilter narrows article listings. Articles visible to ViewerID are the
// published ones plus the viewer's own drafts; a zero ViewerID sees published only.
type ArticleFilter struct {
	ViewerID   int64
	CategoryID *int64
	AuthorID   *int64
	Limit      int
}

// Store is the persistence boundary of the blog. Lookups return (nil, nil) when
// nothing matches.
type Store interface {
	CreateUser(ctx context.Context, user *User) error
	UserByID(ctx context.Context, id int64) (*User, error)
	UserByUsername(ctx context.Context, username string) (*User, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)

	CreateSession(ctx context.Context, session *Session) error
	SessionByID(ctx context.Context, id string) (*Session, error)
	RevokeSession(ctx context.Context, id string) error

	Categories(ctx context.Context) ([]ArticleCategory, error)
	CategoryByID(ctx context.Context, id int64) (*ArticleCategory, error)
	CategoryBySlug(ctx context.Context, slug string) (*ArticleCategory, error)
	CategoriesByIDs(ctx context.Context, ids []int64) ([]ArticleCategory, error)
	SaveCategory(ctx context.Context, category *ArticleCategory) error

	Articles(ctx context.Context, filter ArticleFilter) ([]Article, error)
	ArticleBySlug(ctx context.Context, slug string) (*Article, error)
	CreateArticle(ctx context.Context, article *Article) error
	UpdateArticle(ctx context.Context, article *Article) error
	SetArticleCategories(ctx context.Context, articleID int64, categoryIDs []int64) error
	ArticleCategoryLinks(ctx context.Context, articleIDs []int64) ([]ArticleCategoryLink, error)

	CreateComment(ctx context.Context, comment *Comment) error
	CommentByID(ctx context.Context, id int64) (*Comment, error)
	CommentsByArticle(ctx context.Context, articleID int64, statuses ...string) ([]Comment, error)
	UpdateComment(ctx context.Context, comment *Comment) error

	// InTx runs fn against a store bound to a single transaction. The transaction
	// is rolled back when fn returns an error.
	InTx(ctx context.Context, fn func(Store) error) error
}
