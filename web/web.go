package web

import "embed"

// FS holds the browser form templates and static assets.
// Handlers parse templates/*.html and serve static/ via fs.Sub.
//
//go:embed templates/*.html static
var FS embed.FS
