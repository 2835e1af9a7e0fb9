package web

import "embed"

// Assets contains the static dashboard served at the site root.
//
//go:embed static
var Assets embed.FS
