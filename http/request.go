package http

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxBodyBytes bounds a declared Content-Length. Larger requests fail with
// ErrRequestTooLarge before any body byte is read.
const MaxBodyBytes = 2 * 1024 * 1024

// Request is one parsed HTTP request. A Request is scoped to a single
// connection goroutine and may be reused across keep-alive cycles via Reset.
type Request struct {
	Method  Method            `json:"method"`
	Path    string            `json:"path"`
	Query   map[string]string `json:"query,omitempty"`
	Headers Headers           `json:"headers"`
	Cookies map[string]string `json:"cookies,omitempty"`
	Version Version           `json:"version"`
	Body    []byte            `json:"body,omitempty"`
}

// HeaderValue looks up a header case-insensitively.
func (req *Request) HeaderValue(name string) (string, bool) {
	return req.Headers.Get(name)
}

// Cookie returns the value of a request cookie, or ErrNoCookie.
func (req *Request) Cookie(name string) (string, error) {
	v, found := req.Cookies[name]
	if !found {
		return "", ErrNoCookie
	}
	return v, nil
}

func (req *Request) Reset() {
	req.Method = ""
	req.Path = ""
	req.Query = nil
	req.Headers.Reset()
	req.Cookies = nil
	req.Version = ""
	req.Body = nil
}

// Parse consumes exactly one request from r: request line, header block and,
// when Content-Length declares one, the body. A request with
// Transfer-Encoding but no Content-Length is treated as body-less; chunked
// encoding is not supported.
func (req *Request) Parse(r *Reader) error {
	req.Reset()

	line, err := r.ReadLine()
	if err != nil {
		return err
	}

	parts := strings.Split(string(line), " ")
	if len(parts) != 3 {
		return fmt.Errorf("%w: %q", ErrMalformedRequestLine, line)
	}

	if req.Method, err = ParseMethod(parts[0]); err != nil {
		return fmt.Errorf("%w: %q", err, parts[0])
	}

	target := parts[1]
	if path, rawQuery, found := strings.Cut(target, "?"); found {
		req.Path = path
		req.Query = parseQuery(rawQuery)
	} else {
		req.Path = target
	}

	if req.Version, err = ParseVersion(parts[2]); err != nil {
		return fmt.Errorf("%w: %q", err, parts[2])
	}

	if err := req.parseHeaders(r); err != nil {
		return err
	}

	if raw, found := req.Headers.Get("Content-Length"); found {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || n < 0 {
			return fmt.Errorf("%w: content-length %q", ErrMalformedHeaderLine, raw)
		}
		if n > MaxBodyBytes {
			return fmt.Errorf("%w: content-length %d", ErrRequestTooLarge, n)
		}
		if n > 0 {
			if req.Body, err = r.ReadExact(n); err != nil {
				return err
			}
		}
	}

	if cookieLine, found := req.Headers.Get("Cookie"); found {
		req.Cookies = parseRequestCookies(cookieLine)
	}

	return nil
}

func (req *Request) parseHeaders(r *Reader) error {
	var total int
	for {
		line, err := r.ReadLine()
		if err != nil {
			return err
		}
		if len(line) == 0 {
			return nil
		}

		total += len(line)
		if total > MaxHeaderBytes {
			return fmt.Errorf("%w: header block exceeds %d bytes", ErrRequestTooLarge, MaxHeaderBytes)
		}

		name, value, found := strings.Cut(string(line), ":")
		if !found {
			return fmt.Errorf("%w: %q", ErrMalformedHeaderLine, line)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return fmt.Errorf("%w: %q", ErrMalformedHeaderLine, line)
		}

		// Last occurrence of a repeated header wins.
		req.Headers.Set(name, strings.TrimSpace(value))
	}
}

// parseQuery splits a raw query string into key/value pairs. Repeated keys
// keep the last value; a key without "=" maps to the empty string.
func parseQuery(rawQuery string) map[string]string {
	query := make(map[string]string)
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		query[key] = value
	}
	return query
}
