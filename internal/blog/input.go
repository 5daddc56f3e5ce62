package blog

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/nalindobhal/blog/internal/form"
)

const maxCommentLen = 2000

// ArticleInput is the writable part of an article. The slug and the publisher
// are never taken from the caller.
type ArticleInput struct {
	Name       string  `json:"name" form:"name" validate:"required,max=255"`
	Intro      string  `json:"intro" form:"intro" validate:"required,max=500"`
	Blog       string  `json:"blog" form:"blog" validate:"required"`
	Categories []int64 `json:"category" form:"category" validate:"required,min=1"`
	Published  bool    `json:"published" form:"published"`
}

func (in *ArticleInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Intro = strings.TrimSpace(in.Intro)
	in.Blog = strings.TrimSpace(in.Blog)
	in.Categories = uniqueIDs(in.Categories)
}

type CategoryInput struct {
	Name string `json:"name" form:"name" validate:"required,max=255"`
}

type CommentInput struct {
	Comment string `json:"comment" form:"comment" validate:"required"`
}

func (in *CommentInput) validate() *form.ValidationError {
	in.Comment = strings.TrimSpace(in.Comment)

	ve := form.Validate(in)
	if n := utf8.RuneCountInString(in.Comment); n > maxCommentLen {
		ve.Add("comment", fmt.Sprintf("Ensure this value has at most %d characters (it has %d).", maxCommentLen, n))
	}

	return ve
}

// ModerationInput changes the visibility of a comment.
type ModerationInput struct {
	Status string `json:"status" form:"status" validate:"required,oneof=allowed deleted spam"`
}

// ListQuery narrows article listings.
type ListQuery struct {
	Category string
	AuthorID int64
	Limit    int
}

func uniqueIDs(ids []int64) []int64 {
	if ids == nil {
		return nil
	}

	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}

	return result
}
