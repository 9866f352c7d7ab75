package tmpl

import (
	"embed"
	"io/fs"
)

//go:embed templates
var embedded embed.FS

// DefaultTemplates exposes the embedded page templates rooted at the
// template names ("index", ...).
func DefaultTemplates() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Default constructs an engine over the embedded templates.
func Default(options ...Option) (*Engine, error) {
	return New(append([]Option{WithFS(DefaultTemplates())}, options...)...)
}
