package handler

import "github.com/freekieb7/basalt/http"

// Mirror echoes the parsed request back as JSON. Handy for checking what
// the parser actually understood.
func Mirror(req *http.Request) (*http.Response, error) {
	return http.NewResponse().
		WithJSON(req).
		Build()
}
