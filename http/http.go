// Package http implements a minimal HTTP/1.0 and HTTP/1.1 server directly
// on top of net.Conn, without net/http. It covers request parsing, routing
// with exact and wildcard patterns, response building/serialization and a
// goroutine-per-connection serve loop with keep-alive support.
package http

const (
	// MaxLineBytes bounds a single request or header line.
	MaxLineBytes = 8 * 1024
	// MaxHeaderBytes bounds the complete header block of one request.
	MaxHeaderBytes = 64 * 1024

	DefaultReadBufferSize  = 4096
	DefaultWriteBufferSize = 4096
)

// Handler is the contract between the server and application code: a pure
// function of a parsed request. A returned error is mapped by the server to
// a synthesized 500 response; handlers that want a different error shape
// must build the response themselves.
type Handler func(req *Request) (*Response, error)

type Method string

const (
	MethodGet     Method = "GET"
	MethodHead    Method = "HEAD"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodDelete  Method = "DELETE"
	MethodConnect Method = "CONNECT"
	MethodOptions Method = "OPTIONS"
	MethodTrace   Method = "TRACE"
	MethodPatch   Method = "PATCH"
)

// ParseMethod validates a request line token against the known methods.
func ParseMethod(s string) (Method, error) {
	switch m := Method(s); m {
	case MethodGet, MethodHead, MethodPost, MethodPut, MethodDelete,
		MethodConnect, MethodOptions, MethodTrace, MethodPatch:
		return m, nil
	default:
		return "", ErrUnsupportedMethod
	}
}

type Version string

const (
	Version10 Version = "HTTP/1.0"
	Version11 Version = "HTTP/1.1"
)

// ParseVersion validates the version token of a request line.
func ParseVersion(s string) (Version, error) {
	switch v := Version(s); v {
	case Version10, Version11:
		return v, nil
	default:
		return "", ErrUnsupportedVersion
	}
}
