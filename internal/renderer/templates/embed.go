// Package templates embeds the HTML page templates for the renderer.
package templates

import "embed"

// FS contains all page templates and the static stylesheet embedded
// at compile time.
//
//go:embed *.tmpl style.css
var FS embed.FS
