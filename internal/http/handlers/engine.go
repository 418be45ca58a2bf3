package handlers

import (
	"time"

	html "github.com/gofiber/template/html/v2"

	"soukel/internal/format"
)

// TemplateEngine builds the html engine with the Arabic display helpers the
// templates rely on.
func TemplateEngine(dir string) *html.Engine {
	e := html.New(dir, ".html")
	e.AddFunc("money", format.Currency)
	e.AddFunc("ago", func(t time.Time) string { return format.RelativeDate(t, time.Now()) })
	e.AddFunc("truncate", format.Truncate)
	return e
}
