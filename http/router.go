package http

import (
	"fmt"
	"strings"
)

// Router maps (method, pattern) pairs to handlers. All registration happens
// before the server starts serving; Resolve never mutates the table, which
// is what makes it safe to call from any number of connection goroutines
// without locking.
type Router struct {
	routes []Route
}

func NewRouter() *Router {
	return &Router{
		routes: make([]Route, 0),
	}
}

// Handle registers a handler, wrapping it with the given middleware
// (first listed is outermost). Registering the same (method, pattern) twice
// fails with ErrDuplicateRoute.
func (router *Router) Handle(method Method, pattern string, handler Handler, middleware ...Middleware) error {
	for i := len(middleware) - 1; i >= 0; i-- {
		handler = middleware[i](handler)
	}

	for i := range router.routes {
		if router.routes[i].Method == method && router.routes[i].Pattern == pattern {
			return fmt.Errorf("%w: %s %s", ErrDuplicateRoute, method, pattern)
		}
	}

	router.routes = append(router.routes, Route{
		Method:  method,
		Pattern: pattern,
		Handler: handler,
	})
	return nil
}

func (router *Router) GET(pattern string, handler Handler, middleware ...Middleware) error {
	return router.Handle(MethodGet, pattern, handler, middleware...)
}

func (router *Router) HEAD(pattern string, handler Handler, middleware ...Middleware) error {
	return router.Handle(MethodHead, pattern, handler, middleware...)
}

func (router *Router) POST(pattern string, handler Handler, middleware ...Middleware) error {
	return router.Handle(MethodPost, pattern, handler, middleware...)
}

func (router *Router) PUT(pattern string, handler Handler, middleware ...Middleware) error {
	return router.Handle(MethodPut, pattern, handler, middleware...)
}

func (router *Router) DELETE(pattern string, handler Handler, middleware ...Middleware) error {
	return router.Handle(MethodDelete, pattern, handler, middleware...)
}

func (router *Router) OPTIONS(pattern string, handler Handler, middleware ...Middleware) error {
	return router.Handle(MethodOptions, pattern, handler, middleware...)
}

func (router *Router) PATCH(pattern string, handler Handler, middleware ...Middleware) error {
	return router.Handle(MethodPatch, pattern, handler, middleware...)
}

// Group registers a set of routes under a shared path prefix, applying the
// given middleware to each.
func (router *Router) Group(prefix string, groupFunc func(group *Router), middleware ...Middleware) error {
	group := NewRouter()
	groupFunc(group)

	for _, route := range group.routes {
		handler := route.Handler
		for i := len(middleware) - 1; i >= 0; i-- {
			handler = middleware[i](handler)
		}

		if err := router.Handle(route.Method, prefix+route.Pattern, handler); err != nil {
			return err
		}
	}
	return nil
}

// Resolve picks the handler for a request. An exact pattern always beats a
// wildcard that would also match; among matching wildcards the longest
// literal prefix wins. No match fails with ErrNotFound.
func (router *Router) Resolve(method Method, path string) (Handler, error) {
	var (
		best       Handler
		bestPrefix = -1
	)

	for i := range router.routes {
		route := &router.routes[i]
		if route.Method != method {
			continue
		}

		if !route.wildcard() {
			if route.Pattern == path {
				return route.Handler, nil
			}
			continue
		}

		prefix := route.prefix()
		if strings.HasPrefix(path, prefix) && len(prefix) > bestPrefix {
			best = route.Handler
			bestPrefix = len(prefix)
		}
	}

	if best == nil {
		return nil, fmt.Errorf("%w: %s %s", ErrNotFound, method, path)
	}
	return best, nil
}
