// Package appfs embeds the assets shipped within the binaries: database migrations and email templates.
package appfs

import "embed"

// all: keeps the "_base" layouts, which a plain directory embed skips.
//
//go:embed migrations all:templates
var FS embed.FS
