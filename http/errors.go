package http

import "errors"

var (
	// Parse errors. The connection handler maps these to a 400 response,
	// except ErrRequestTooLarge which maps to 413.
	ErrMalformedRequestLine = errors.New("http: malformed request line")
	ErrUnsupportedMethod    = errors.New("http: unsupported method")
	ErrUnsupportedVersion   = errors.New("http: unsupported version")
	ErrMalformedHeaderLine  = errors.New("http: malformed header line")
	ErrRequestTooLarge      = errors.New("http: request too large")

	// I/O errors from the Reader.
	ErrConnectionClosed = errors.New("http: connection closed by peer")
	ErrTruncated        = errors.New("http: truncated read")

	// Routing errors. ErrDuplicateRoute is registration-time and fatal to
	// server construction; ErrNotFound maps to a 404 response.
	ErrDuplicateRoute = errors.New("http: duplicate route")
	ErrNotFound       = errors.New("http: no matching route")

	ErrNoCookie      = errors.New("http: named cookie not present")
	ErrInvalidCookie = errors.New("http: invalid cookie format")
)
