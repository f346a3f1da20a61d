// Package web embeds the HTML templates for the two page routes.
//
// Usage in the API server:
//
//	import "github.com/Satvik-jain/Market-pulse/web"
//	t := web.Templates() // parsed html/template set
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates returns the parsed page template set. Parsing happens once at
// first call; the embedded files cannot fail to parse after a successful
// build, so errors panic.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}
