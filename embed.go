package folio

import "embed"

// EmbeddedAssets contains the static assets shipped with the binary:
// site.css, theme.js, nav.js
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
