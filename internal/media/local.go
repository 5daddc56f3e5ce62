package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Local keeps files under a directory served by the application itself.
type Local struct {
	root    string
	baseURL string
}

func NewLocal(root, baseURL string) *Local {
	return &Local{
		root:    root,
		baseURL: baseURL,
	}
}

// Root is the directory files are written to.
func (l *Local) Root() string {
	return l.root
}

func (l *Local) Save(ctx context.Context, key string, body io.Reader, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	target := filepath.Join(l.root, filepath.FromSlash(key))
	if !strings.HasPrefix(target, filepath.Clean(l.root)+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid media key %q", key)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	f, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}

	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write media file: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close media file: %w", err)
	}

	return publicURL(l.baseURL, key), nil
}
