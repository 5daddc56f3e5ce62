package rpc

import (
	"context"
	"errors"

	"github.com/vmkteam/zenrpc/v2"

	"github.com/nalindobhal/blog/internal/blog"
	"github.com/nalindobhal/blog/internal/form"
	"github.com/nalindobhal/blog/internal/identity"
)

//go:generate zenrpc

// BlogService provides RPC methods for articles, comments and categories.
// The caller is the user bound to the request session.
type BlogService struct {
	zenrpc.Service
	manager *blog.Manager
}

func NewBlogService(manager *blog.Manager) *BlogService {
	return &BlogService{manager: manager}
}

// List returns the articles visible to the caller, newest first.
//
//zenrpc:filter optional category, author and limit filters
//zenrpc:return list of article summaries
//zenrpc:401 authentication required
//zenrpc:500 internal server error
func (s *BlogService) List(ctx context.Context, filter ArticleFilter) (ArticleSummaries, error) {
	list, err := s.manager.Articles(ctx, identity.FromContext(ctx), filter.ToModel())
	if err != nil {
		return nil, newError(err)
	}

	return NewArticleSummaries(list), nil
}

// Get returns a single article with its allowed comments.
//
//zenrpc:slug article slug
//zenrpc:return article with comments
//zenrpc:401 authentication required
//zenrpc:404 article not found
//zenrpc:500 internal server error
func (s *BlogService) Get(ctx context.Context, slug string) (*Article, error) {
	view, err := s.manager.ArticleBySlug(ctx, identity.FromContext(ctx), slug)
	if err != nil {
		return nil, newError(err)
	}

	article := NewArticle(*view)
	return &article, nil
}

// Create stores a new article owned by the caller.
//
//zenrpc:article article fields
//zenrpc:return created article
//zenrpc:400 validation failed
//zenrpc:401 authentication required
//zenrpc:500 internal server error
func (s *BlogService) Create(ctx context.Context, article ArticleInput) (*Article, error) {
	user := identity.FromContext(ctx)
	created, err := s.manager.CreateArticle(ctx, user, article.ToModel(), nil)
	if err != nil {
		return nil, newError(err)
	}

	return s.Get(ctx, created.Slug)
}

// Update changes an article owned by the caller. The wallpaper is kept.
//
//zenrpc:slug article slug
//zenrpc:article article fields
//zenrpc:return updated article
//zenrpc:400 validation failed
//zenrpc:401 authentication required
//zenrpc:403 not the owner
//zenrpc:404 article not found
//zenrpc:500 internal server error
func (s *BlogService) Update(ctx context.Context, slug string, article ArticleInput) (*Article, error) {
	updated, err := s.manager.UpdateArticle(ctx, identity.FromContext(ctx), slug, article.ToModel(), nil)
	if err != nil {
		return nil, newError(err)
	}

	return s.Get(ctx, updated.Slug)
}

// Comment adds a comment by the caller to a visible article.
//
//zenrpc:slug article slug
//zenrpc:comment comment body
//zenrpc:return stored comment
//zenrpc:400 validation failed
//zenrpc:401 authentication required
//zenrpc:404 article not found
//zenrpc:500 internal server error
func (s *BlogService) Comment(ctx context.Context, slug, comment string) (*Comment, error) {
	view, err := s.manager.SubmitComment(ctx, identity.FromContext(ctx), slug, blog.CommentInput{Comment: comment})
	if err != nil {
		return nil, newError(err)
	}

	c := NewComment(*view)
	return &c, nil
}

// Categories returns all categories ordered by name.
//
//zenrpc:return list of categories
//zenrpc:500 internal server error
func (s *BlogService) Categories(ctx context.Context) (Categories, error) {
	categories, err := s.manager.Categories(ctx)
	if err != nil {
		return nil, newError(err)
	}

	return NewCategories(categories), nil
}

// newError maps manager errors to RPC error codes. Unknown errors are
// returned as is and reported by the server as internal errors.
func newError(err error) error {
	if ve, ok := form.AsValidation(err); ok {
		return &zenrpc.Error{Code: 400, Message: "validation failed", Data: ve.Fields}
	}

	switch {
	case errors.Is(err, blog.ErrUnauthenticated):
		return zenrpc.NewStringError(401, "authentication required")
	case errors.Is(err, blog.ErrForbidden):
		return zenrpc.NewStringError(403, "You are not authorized")
	case errors.Is(err, blog.ErrNotFound):
		return zenrpc.NewStringError(404, "article not found")
	}

	return err
}
