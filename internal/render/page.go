package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/page.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html.tmpl"))

// Page kinds understood by the page script.
const (
	kindPlaylist = "playlist"
	kindIndex    = "index"
	kindTree     = "tree"
)

// page is the data handed to the page template. Breadcrumbs and Data are
// marshalled to JSON by html/template inside the script element.
type page struct {
	Title       string
	Kind        string
	Breadcrumbs []Link
	Data        any
}

func writePage(w io.Writer, p page) error {
	if p.Breadcrumbs == nil {
		p.Breadcrumbs = []Link{}
	}
	if err := pageTemplate.Execute(w, p); err != nil {
		return fmt.Errorf("render %s page %q: %w", p.Kind, p.Title, err)
	}
	return nil
}
