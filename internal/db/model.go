// nolint
//
//lint:file-ignore U1000 ignore unused code, it's generated
package db

import (
	"time"
)

var Columns = struct {
	Article struct {
		ID, Name, Slug, Intro, Blog, Wallpaper, Published, PublishedOn, PublishedByID, CreatedOn, UpdatedOn string

		PublishedBy string
	}
	ArticleCategory struct {
		ID, Name, Slug, Photo, CreatedByID, CreatedOn, UpdatedOn string
	}
	ArticleCategoryLink struct {
		ArticleID, CategoryID string
	}
	Comment struct {
		ID, Comment, ArticleID, CommentByID, Status, IsEdited, CreatedOn string

		CommentBy string
	}
	GooseDbVersion struct {
		ID, VersionID, IsApplied, Tstamp string
	}
	Session struct {
		ID, UserID, CreatedOn, ExpiresOn, RevokedOn string
	}
	User struct {
		ID, Username, Email, FirstName, LastName, PasswordHash, CreatedOn string
	}
}{
	Article: struct {
		ID, Name, Slug, Intro, Blog, Wallpaper, Published, PublishedOn, PublishedByID, CreatedOn, UpdatedOn string

		PublishedBy string
	}{
		ID:            "id",
		Name:          "name",
		Slug:          "slug",
		Intro:         "intro",
		Blog:          "blog",
		Wallpaper:     "wallpaper",
		Published:     "published",
		PublishedOn:   "published_on",
		PublishedByID: "published_by_id",
		CreatedOn:     "created_on",
		UpdatedOn:     "updated_on",

		PublishedBy: "PublishedBy",
	},
	ArticleCategory: struct {
		ID, Name, Slug, Photo, CreatedByID, CreatedOn, UpdatedOn string
	}{
		ID:          "id",
		Name:        "name",
		Slug:        "slug",
		Photo:       "photo",
		CreatedByID: "created_by_id",
		CreatedOn:   "created_on",
		UpdatedOn:   "updated_on",
	},
	ArticleCategoryLink: struct {
		ArticleID, CategoryID string
	}{
		ArticleID:  "article_id",
		CategoryID: "category_id",
	},
	Comment: struct {
		ID, Comment, ArticleID, CommentByID, Status, IsEdited, CreatedOn string

		CommentBy string
	}{
		ID:          "id",
		Comment:     "comment",
		ArticleID:   "article_id",
		CommentByID: "comment_by_id",
		Status:      "status",
		IsEdited:    "is_edited",
		CreatedOn:   "created_on",

		CommentBy: "CommentBy",
	},
	GooseDbVersion: struct {
		ID, VersionID, IsApplied, Tstamp string
	}{
		ID:        "id",
		VersionID: "version_id",
		IsApplied: "is_applied",
		Tstamp:    "tstamp",
	},
	Session: struct {
		ID, UserID, CreatedOn, ExpiresOn, RevokedOn string
	}{
		ID:        "id",
		UserID:    "user_id",
		CreatedOn: "created_on",
		ExpiresOn: "expires_on",
		RevokedOn: "revoked_on",
	},
	User: struct {
		ID, Username, Email, FirstName, LastName, PasswordHash, CreatedOn string
	}{
		ID:           "id",
		Username:     "username",
		Email:        "email",
		FirstName:    "first_name",
		LastName:     "last_name",
		PasswordHash: "password_hash",
		CreatedOn:    "created_on",
	},
}

var Tables = struct {
	Article struct {
		Name, Alias string
	}
	ArticleCategory struct {
		Name, Alias string
	}
	ArticleCategoryLink struct {
		Name, Alias string
	}
	Comment struct {
		Name, Alias string
	}
	GooseDbVersion struct {
		Name, Alias string
	}
	Session struct {
		Name, Alias string
	}
	User struct {
		Name, Alias string
	}
}{
	Article: struct {
		Name, Alias string
	}{
		Name:  "articles",
		Alias: "t",
	},
	ArticleCategory: struct {
		Name, Alias string
	}{
		Name:  "article_category",
		Alias: "t",
	},
	ArticleCategoryLink: struct {
		Name, Alias string
	}{
		Name:  "articles_category",
		Alias: "t",
	},
	Comment: struct {
		Name, Alias string
	}{
		Name:  "comment",
		Alias: "t",
	},
	GooseDbVersion: struct {
		Name, Alias string
	}{
		Name:  "goose_db_version",
		Alias: "t",
	},
	Session: struct {
		Name, Alias string
	}{
		Name:  "sessions",
		Alias: "t",
	},
	User: struct {
		Name, Alias string
	}{
		Name:  "users",
		Alias: "t",
	},
}

type Article struct {
	tableName struct{} `pg:"articles,alias:t,discard_unknown_columns"`

	ID            int64      `pg:"id,pk"`
	Name          string     `pg:"name,use_zero"`
	Slug          string     `pg:"slug,use_zero"`
	Intro         string     `pg:"intro,use_zero"`
	Blog          *string    `pg:"blog"`
	Wallpaper     *string    `pg:"wallpaper"`
	Published     bool       `pg:"published,use_zero"`
	PublishedOn   *time.Time `pg:"published_on"`
	PublishedByID int64      `pg:"published_by_id,use_zero"`
	CreatedOn     time.Time  `pg:"created_on,use_zero"`
	UpdatedOn     time.Time  `pg:"updated_on,use_zero"`

	PublishedBy *User `pg:"fk:published_by_id,rel:has-one"`
}

type ArticleCategory struct {
	tableName struct{} `pg:"article_category,alias:t,discard_unknown_columns"`

	ID          int64     `pg:"id,pk"`
	Name        string    `pg:"name,use_zero"`
	Slug        string    `pg:"slug,use_zero"`
	Photo       *string   `pg:"photo"`
	CreatedByID *int64    `pg:"created_by_id"`
	CreatedOn   time.Time `pg:"created_on,use_zero"`
	UpdatedOn   time.Time `pg:"updated_on,use_zero"`
}

type ArticleCategoryLink struct {
	tableName struct{} `pg:"articles_category,alias:t,discard_unknown_columns"`

	ArticleID  int64 `pg:"article_id,pk"`
	CategoryID int64 `pg:"category_id,pk"`
}

type Comment struct {
	tableName struct{} `pg:"comment,alias:t,discard_unknown_columns"`

	ID          int64     `pg:"id,pk"`
	Comment     string    `pg:"comment,use_zero"`
	ArticleID   int64     `pg:"article_id,use_zero"`
	CommentByID int64     `pg:"comment_by_id,use_zero"`
	Status      string    `pg:"status,use_zero"`
	IsEdited    bool      `pg:"is_edited,use_zero"`
	CreatedOn   time.Time `pg:"created_on,use_zero"`

	CommentBy *User `pg:"fk:comment_by_id,rel:has-one"`
}

type GooseDbVersion struct {
	tableName struct{} `pg:"goose_db_version,alias:t,discard_unknown_columns"`

	ID        int       `pg:"id,pk"`
	VersionID int64     `pg:"version_id,use_zero"`
	IsApplied bool      `pg:"is_applied,use_zero"`
	Tstamp    time.Time `pg:"tstamp,use_zero"`
}

type Session struct {
	tableName struct{} `pg:"sessions,alias:t,discard_unknown_columns"`

	ID        string     `pg:"id,pk,type:uuid"`
	UserID    int64      `pg:"user_id,use_zero"`
	CreatedOn time.Time  `pg:"created_on,use_zero"`
	ExpiresOn time.Time  `pg:"expires_on,use_zero"`
	RevokedOn *time.Time `pg:"revoked_on"`
}

type User struct {
	tableName struct{} `pg:"users,alias:t,discard_unknown_columns"`

	ID           int64     `pg:"id,pk"`
	Username     string    `pg:"username,use_zero"`
	Email        string    `pg:"email,use_zero"`
	FirstName    string    `pg:"first_name,use_zero"`
	LastName     string    `pg:"last_name,use_zero"`
	PasswordHash string    `pg:"password_hash,use_zero"`
	CreatedOn    time.Time `pg:"created_on,use_zero"`
}
