// templates.go
package main

import (
	"embed"
	"html/template"

	"clickcount/clicks"

	"github.com/dustin/go-humanize"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"formatSize": func(size int64) string {
		if size < 0 {
			size = 0
		}
		return humanize.IBytes(uint64(size))
	},
	"formatNumber": func(n int) string {
		return humanize.Comma(int64(n))
	},
	"threshold": func() int { return clicks.Threshold },
}

var uploadTemplate = template.Must(template.New("upload.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/upload.html"))
