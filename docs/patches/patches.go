// Package patches embeds the goose migrations of the blog schema.
package patches

import "embed"

//go:embed *.sql
var FS embed.FS
