// Package handler contains the example handlers served by the demo binary.
// They consume the http package's Request/Response types and hold no
// protocol logic of their own.
package handler

import (
	"fmt"

	"github.com/freekieb7/basalt/http"
)

// Hello greets the caller by the "name" query parameter, defaulting to
// "World".
func Hello(req *http.Request) (*http.Response, error) {
	name := "World"
	if v, found := req.Query["name"]; found && v != "" {
		name = v
	}

	return http.NewResponse().
		WithHTML(fmt.Sprintf("Hello %s!", name)).
		Build()
}
