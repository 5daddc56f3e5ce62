//go:build integration

package db

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-pg/pg/v10"
)

var baseTime = time.Date(2024, 1, 14, 12, 0, 0, 0, time.UTC)

func withTx(t *testing.T) (*pg.Tx, context.Context, *Repository) {
	t.Helper()
	ctx := context.Background()

	tx, err := testDB.Begin()
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}

	t.Cleanup(func() {
		if err := tx.Rollback(); err != nil {
			t.Errorf("failed to rollback transaction: %v", err)
		}
	})

	repo := New(tx)
	return tx, ctx, repo
}

func resetPublicSchema(ctx context.Context, database *pg.DB) error {
	_, err := database.ExecContext(ctx, `DROP SCHEMA IF EXISTS public CASCADE; CREATE SCHEMA public;`)
	if err != nil {
		return fmt.Errorf("reset public schema: %w", err)
	}
	return nil
}

func ensureTablesExist(ctx context.Context, database *pg.DB, tables []string) error {
	for _, tbl := range tables {
		var exists bool
		_, err := database.QueryOneContext(ctx, pg.Scan(&exists), `
			SELECT EXISTS (
				SELECT 1
				FROM information_schema.tables
				WHERE table_schema = 'public' AND table_name = ?
			)`, tbl)
		if err != nil {
			return fmt.Errorf("check table %s exists: %w", tbl, err)
		}
		if !exists {
			return fmt.Errorf("table %q does not exist after migrations", tbl)
		}
	}
	return nil
}

func mustUser(t *testing.T, ctx context.Context, repo *Repository, username string) *User {
	t.Helper()

	user := &User{
		Username:     username,
		Email:        username + "@example.com",
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "x",
		CreatedOn:    baseTime,
	}
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("create user %q: %v", username, err)
	}
	return user
}

func mustCategory(t *testing.T, ctx context.Context, repo *Repository, name, slug string) *ArticleCategory {
	t.Helper()

	category := &ArticleCategory{Name: name, Slug: slug, CreatedOn: baseTime, UpdatedOn: baseTime}
	if err := repo.SaveCategory(ctx, category); err != nil {
		t.Fatalf("save category %q: %v", name, err)
	}
	return category
}

func mustArticle(t *testing.T, ctx context.Context, repo *Repository, author *User, slug string, published bool) *Article {
	t.Helper()

	body := "Body of " + slug
	article := &Article{
		Name:          "Article " + slug,
		Slug:          slug,
		Intro:         "Intro",
		Blog:          &body,
		Published:     published,
		PublishedByID: author.ID,
		CreatedOn:     baseTime,
		UpdatedOn:     baseTime,
	}
	if err := repo.CreateArticle(ctx, article); err != nil {
		t.Fatalf("create article %q: %v", slug, err)
	}
	return article
}

func int64Ptr(i int64) *int64 { return &i }
