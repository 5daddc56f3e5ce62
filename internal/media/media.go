// Package media stores uploaded images and hands back a retrievable reference.
package media

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"
)

const maxFilenameLen = 100

// File is an uploaded blob waiting to be stored.
type File struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// Store persists blobs under a key and returns the public reference of the stored object.
type Store interface {
	Save(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// UploadPath builds the storage key of a file attached to a row:
// Article/article_<id> <slug>/<table>/<filename>. Filenames longer than 100
// characters are replaced by the upload timestamp.
func UploadPath(id int64, slug, table, filename string, now time.Time) string {
	filename = path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if filename == "." || filename == "/" {
		filename = ""
	}

	if len(filename) > maxFilenameLen || filename == "" {
		filename = now.Format("2006-01-02 15:04:05.000000") + path.Ext(filename)
	}

	table = strings.ToLower(strings.TrimSpace(table))
	if table == "" {
		table = "ee"
	}

	return fmt.Sprintf("Article/article_%d %s/%s/%s", id, truncateWords(slug, 10), table, filename)
}

func truncateWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return strings.Join(words, " ")
	}

	return strings.Join(words[:n], " ") + " …"
}

func publicURL(base, key string) string {
	escaped := (&url.URL{Path: key}).EscapedPath()
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(escaped, "/")
}
