// Package dbtest provides an in-memory db.Store for unit and handler tests.
package dbtest

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nalindobhal/blog/internal/db"
)

type linkKey struct {
	articleID, categoryID int64
}

type state struct {
	users      map[int64]db.User
	sessions   map[string]db.Session
	categories map[int64]db.ArticleCategory
	articles   map[int64]db.Article
	links      map[linkKey]struct{}
	comments   map[int64]db.Comment
	seq        int64
}

func (s state) clone() state {
	c := state{
		users:      make(map[int64]db.User, len(s.users)),
		sessions:   make(map[string]db.Session, len(s.sessions)),
		categories: make(map[int64]db.ArticleCategory, len(s.categories)),
		articles:   make(map[int64]db.Article, len(s.articles)),
		links:      make(map[linkKey]struct{}, len(s.links)),
		comments:   make(map[int64]db.Comment, len(s.comments)),
		seq:        s.seq,
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.sessions {
		c.sessions[k] = v
	}
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k, v := range s.articles {
		c.articles[k] = v
	}
	for k := range s.links {
		c.links[k] = struct{}{}
	}
	for k, v := range s.comments {
		c.comments[k] = v
	}

	return c
}

// Memory is a db.Store backed by maps. InTx restores the previous state when
// the callback fails.
type Memory struct {
	mu sync.Mutex
	st state

	// FailOn makes the named method return an error, e.g. "SetArticleCategories".
	FailOn map[string]error
}

var _ db.Store = (*Memory)(nil)

func New() *Memory {
	return &Memory{
		st: state{}.clone(),
	}
}

func (m *Memory) fail(op string) error {
	if m.FailOn == nil {
		return nil
	}
	return m.FailOn[op]
}

func (m *Memory) next() int64 {
	m.st.seq++
	return m.st.seq
}

func (m *Memory) InTx(_ context.Context, fn func(db.Store) error) error {
	m.mu.Lock()
	snapshot := m.st.clone()
	m.mu.Unlock()

	if err := fn(m); err != nil {
		m.mu.Lock()
		m.st = snapshot
		m.mu.Unlock()
		return err
	}

	return nil
}

func (m *Memory) CreateUser(_ context.Context, user *db.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.fail("CreateUser"); err != nil {
		return err
	}

	for _, u := range m.st.users {
		switch {
		case u.Username == user.Username:
			return fmt.Errorf("failed to insert user: %w", &db.DuplicateError{Constraint: db.UsersUsernameKey})
		case strings.EqualFold(u.Email, user.Email):
			return fmt.Errorf("failed to insert user: %w", &db.DuplicateError{Constraint: db.UsersEmailKey})
		}
	}

	user.ID = m.next()
	if user.CreatedOn.IsZero() {
		user.CreatedOn = time.Now()
	}
	m.st.users[user.ID] = *user

	return nil
}

func (m *Memory) UserByID(_ context.Context, id int64) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.st.users[id]
	if !ok {
		return nil, nil
	}

	return &u, nil
}

func (m *Memory) UserByUsername(_ context.Context, username string) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.st.users {
		if u.Username == username {
			return &u, nil
		}
	}

	return nil, nil
}

func (m *Memory) EmailTaken(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.st.users {
		if strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}

	return false, nil
}

func (m *Memory) UsernameTaken(_ context.Context, username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.st.users {
		if u.Username == username {
			return true, nil
		}
	}

	return false, nil
}

func (m *Memory) CreateSession(_ context.Context, session *db.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.st.sessions[session.ID]; ok {
		return fmt.Errorf("failed to insert session: %w", db.ErrDuplicate)
	}
	m.st.sessions[session.ID] = *session

	return nil
}

func (m *Memory) SessionByID(_ context.Context, id string) (*db.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.st.sessions[id]
	if !ok {
		return nil, nil
	}

	return &s, nil
}

func (m *Memory) RevokeSession(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.st.sessions[id]
	if !ok || s.RevokedOn != nil {
		return nil
	}

	now := time.Now()
	s.RevokedOn = &now
	m.st.sessions[id] = s

	return nil
}

func (m *Memory) Categories(_ context.Context) ([]db.ArticleCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	categories := make([]db.ArticleCategory, 0, len(m.st.categories))
	for _, c := range m.st.categories {
		categories = append(categories, c)
	}
	sortCategories(categories)

	return categories, nil
}

func (m *Memory) CategoryByID(_ context.Context, id int64) (*db.ArticleCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.st.categories[id]
	if !ok {
		return nil, nil
	}

	return &c, nil
}

func (m *Memory) CategoryBySlug(_ context.Context, slug string) (*db.ArticleCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var found *db.ArticleCategory
	for _, c := range m.st.categories {
		if c.Slug == slug && (found == nil || c.ID < found.ID) {
			c := c
			found = &c
		}
	}

	return found, nil
}

func (m *Memory) CategoriesByIDs(_ context.Context, ids []int64) ([]db.ArticleCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	categories := []db.ArticleCategory{}
	for _, c := range m.st.categories {
		if slices.Contains(ids, c.ID) {
			categories = append(categories, c)
		}
	}
	sortCategories(categories)

	return categories, nil
}

func (m *Memory) SaveCategory(_ context.Context, category *db.ArticleCategory) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.st.categories {
		if c.ID != category.ID && c.Name == category.Name && c.Slug == category.Slug {
			return fmt.Errorf("failed to save category: %w", db.ErrDuplicate)
		}
	}

	if category.ID == 0 {
		category.ID = m.next()
		m.st.categories[category.ID] = *category
		return nil
	}

	stored, ok := m.st.categories[category.ID]
	if !ok {
		return nil
	}
	stored.Name = category.Name
	stored.Slug = category.Slug
	stored.Photo = category.Photo
	stored.UpdatedOn = category.UpdatedOn
	m.st.categories[category.ID] = stored

	return nil
}

func (m *Memory) Articles(_ context.Context, filter db.ArticleFilter) ([]db.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.fail("Articles"); err != nil {
		return nil, err
	}

	articles := []db.Article{}
	for _, a := range m.st.articles {
		if !a.Published && (filter.ViewerID == 0 || a.PublishedByID != filter.ViewerID) {
			continue
		}
		if filter.AuthorID != nil && a.PublishedByID != *filter.AuthorID {
			continue
		}
		if filter.CategoryID != nil {
			if _, ok := m.st.links[linkKey{a.ID, *filter.CategoryID}]; !ok {
				continue
			}
		}
		articles = append(articles, m.withPublisher(a))
	}

	sort.Slice(articles, func(i, j int) bool { return articles[i].ID > articles[j].ID })
	if filter.Limit > 0 && len(articles) > filter.Limit {
		articles = articles[:filter.Limit]
	}

	return articles, nil
}

func (m *Memory) ArticleBySlug(_ context.Context, slug string) (*db.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.st.articles {
		if a.Slug == slug {
			a = m.withPublisher(a)
			return &a, nil
		}
	}

	return nil, nil
}

func (m *Memory) CreateArticle(_ context.Context, article *db.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.fail("CreateArticle"); err != nil {
		return err
	}

	for _, a := range m.st.articles {
		if a.Slug == article.Slug {
			return fmt.Errorf("failed to insert article: %w", db.ErrDuplicate)
		}
	}

	article.ID = m.next()
	stored := *article
	stored.PublishedBy = nil
	m.st.articles[article.ID] = stored

	return nil
}

func (m *Memory) UpdateArticle(_ context.Context, article *db.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.fail("UpdateArticle"); err != nil {
		return err
	}

	stored, ok := m.st.articles[article.ID]
	if !ok {
		return nil
	}
	stored.Name = article.Name
	stored.Intro = article.Intro
	stored.Blog = article.Blog
	stored.Wallpaper = article.Wallpaper
	stored.Published = article.Published
	stored.PublishedOn = article.PublishedOn
	stored.UpdatedOn = article.UpdatedOn
	m.st.articles[article.ID] = stored

	return nil
}

func (m *Memory) SetArticleCategories(_ context.Context, articleID int64, categoryIDs []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.fail("SetArticleCategories"); err != nil {
		return err
	}

	for k := range m.st.links {
		if k.articleID == articleID {
			delete(m.st.links, k)
		}
	}
	for _, id := range categoryIDs {
		if _, ok := m.st.categories[id]; !ok {
			return fmt.Errorf("failed to insert article categories: unknown category %d", id)
		}
		m.st.links[linkKey{articleID, id}] = struct{}{}
	}

	return nil
}

func (m *Memory) ArticleCategoryLinks(_ context.Context, articleIDs []int64) ([]db.ArticleCategoryLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	links := []db.ArticleCategoryLink{}
	for k := range m.st.links {
		if slices.Contains(articleIDs, k.articleID) {
			links = append(links, db.ArticleCategoryLink{ArticleID: k.articleID, CategoryID: k.categoryID})
		}
	}
	sort.Slice(links, func(i, j int) bool {
		if links[i].ArticleID != links[j].ArticleID {
			return links[i].ArticleID < links[j].ArticleID
		}
		return links[i].CategoryID < links[j].CategoryID
	})

	return links, nil
}

func (m *Memory) CreateComment(_ context.Context, comment *db.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.fail("CreateComment"); err != nil {
		return err
	}

	comment.ID = m.next()
	if comment.Status == "" {
		comment.Status = db.CommentAllowed
	}
	stored := *comment
	stored.CommentBy = nil
	m.st.comments[comment.ID] = stored

	return nil
}

func (m *Memory) CommentByID(_ context.Context, id int64) (*db.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.st.comments[id]
	if !ok {
		return nil, nil
	}
	c = m.withAuthor(c)

	return &c, nil
}

func (m *Memory) CommentsByArticle(_ context.Context, articleID int64, statuses ...string) ([]db.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	comments := []db.Comment{}
	for _, c := range m.st.comments {
		if c.ArticleID != articleID {
			continue
		}
		if len(statuses) > 0 && !slices.Contains(statuses, c.Status) {
			continue
		}
		comments = append(comments, m.withAuthor(c))
	}

	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedOn.Equal(comments[j].CreatedOn) {
			return comments[i].CreatedOn.After(comments[j].CreatedOn)
		}
		return comments[i].ID > comments[j].ID
	})

	return comments, nil
}

func (m *Memory) UpdateComment(_ context.Context, comment *db.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.st.comments[comment.ID]
	if !ok {
		return nil
	}
	stored.Comment = comment.Comment
	stored.Status = comment.Status
	stored.IsEdited = comment.IsEdited
	m.st.comments[comment.ID] = stored

	return nil
}

// CommentCount is the number of stored comments regardless of status.
func (m *Memory) CommentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.st.comments)
}

// ArticleCount is the number of stored articles regardless of visibility.
func (m *Memory) ArticleCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.st.articles)
}

func (m *Memory) withPublisher(a db.Article) db.Article {
	if u, ok := m.st.users[a.PublishedByID]; ok {
		a.PublishedBy = &u
	}
	return a
}

func (m *Memory) withAuthor(c db.Comment) db.Comment {
	if u, ok := m.st.users[c.CommentByID]; ok {
		c.CommentBy = &u
	}
	return c
}

func sortCategories(categories []db.ArticleCategory) {
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Name != categories[j].Name {
			return categories[i].Name < categories[j].Name
		}
		return categories[i].ID < categories[j].ID
	})
}
