package http

import "strings"

// Route binds a method and path pattern to a handler. A pattern is either a
// literal path or a wildcard: "/prefix/*" matches any remainder, and a bare
// "*" (or "/*") is the catch-all.
type Route struct {
	Method  Method
	Pattern string
	Handler Handler
}

func (r *Route) wildcard() bool {
	return strings.HasSuffix(r.Pattern, "*")
}

// prefix returns the literal part of a wildcard pattern.
func (r *Route) prefix() string {
	return strings.TrimSuffix(r.Pattern, "*")
}
