package handler

import (
	"os"

	"github.com/freekieb7/basalt/http"
)

const fallback404 = "<h1>404 Not Found</h1>"

// NotFound returns a catch-all handler serving the error page at pagePath.
// When the page cannot be read, a built-in body is served instead; the
// status is 404 either way.
func NotFound(pagePath string) http.Handler {
	return func(req *http.Request) (*http.Response, error) {
		body := fallback404
		if pagePath != "" {
			if page, err := os.ReadFile(pagePath); err == nil {
				body = string(page)
			}
		}

		return http.NewResponse().
			WithStatus(http.StatusNotFound).
			WithHTML(body).
			Build()
	}
}
