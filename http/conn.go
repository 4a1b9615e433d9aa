package http

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// ConnState enumerates the per-connection request cycle. Parse, routing and
// handler failures are absorbed into StateWriting with a synthesized
// response; StateClosed is terminal.
type ConnState uint8

const (
	StateReading ConnState = iota
	StateRouting
	StateHandling
	StateWriting
	StateClosed
)

func (s ConnState) String() string {
	switch s {
	case StateReading:
		return "reading"
	case StateRouting:
		return "routing"
	case StateHandling:
		return "handling"
	case StateWriting:
		return "writing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// conn drives one accepted connection. It owns its Reader and writer; the
// only state shared with other connections is the server's immutable router.
type conn struct {
	srv   *Server
	rwc   net.Conn
	r     *Reader
	bw    *bufio.Writer
	req   Request
	state ConnState
}

func (c *conn) serve(ctx context.Context) {
	defer func() {
		c.state = StateClosed
		if c.rwc != nil {
			c.rwc.Close()
		}
	}()

	for {
		if !c.cycle(ctx) {
			return
		}

		// Bound the idle gap between keep-alive requests.
		if c.rwc != nil && c.srv.IdleTimeout > 0 {
			c.rwc.SetReadDeadline(time.Now().Add(c.srv.IdleTimeout))
		}
	}
}

// cycle runs one request/response exchange and reports whether the
// connection survives it.
func (c *conn) cycle(ctx context.Context) bool {
	start := time.Now()

	c.state = StateReading
	if err := c.req.Parse(c.r); err != nil {
		if errors.Is(err, ErrConnectionClosed) || errors.Is(err, ErrTruncated) {
			// Peer went away before or during the request. Nobody is left
			// to receive an error response.
			c.state = StateClosed
			return false
		}
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			c.state = StateClosed
			return false
		}

		c.srv.Logger.Warn("request rejected", "error", err)
		c.state = StateWriting
		c.write(synthesizeError(err), false)
		c.state = StateClosed
		return false
	}

	ctx, span := tracer.Start(ctx, "http.request", trace.WithSpanKind(trace.SpanKindServer))
	span.SetAttributes(
		attribute.String("http.request.method", string(c.req.Method)),
		attribute.String("url.path", c.req.Path),
	)

	keepAlive := c.shouldKeepAlive()

	var res *Response

	c.state = StateRouting
	handler, err := c.srv.Router.Resolve(c.req.Method, c.req.Path)
	if err != nil {
		// No route and no catch-all: synthesized errors end in Closed.
		res = synthesize(StatusNotFound)
		keepAlive = false
	} else {
		c.state = StateHandling
		res, err = invoke(handler, &c.req)
		if err != nil {
			c.srv.Logger.Error("handler failed",
				"method", string(c.req.Method),
				"path", c.req.Path,
				"error", err)
			span.SetStatus(codes.Error, err.Error())
			res = synthesize(StatusInternalServerError)
			keepAlive = false
		}
	}

	c.state = StateWriting
	writeErr := c.write(res, keepAlive)

	span.SetAttributes(attribute.Int("http.response.status_code", res.Status))
	span.End()

	attrs := metric.WithAttributes(
		attribute.String("http.request.method", string(c.req.Method)),
		attribute.Int("http.response.status_code", res.Status),
	)
	c.srv.requestCount.Add(ctx, 1, attrs)
	c.srv.requestDuration.Record(ctx, time.Since(start).Seconds(), attrs)

	if writeErr != nil || !keepAlive {
		c.state = StateClosed
		return false
	}

	c.state = StateReading
	return true
}

// invoke calls a handler, converting a panic or a nil response into an
// error so the caller can synthesize a 500.
func invoke(handler Handler, req *Request) (res *Response, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			res, err = nil, fmt.Errorf("http: handler panic: %v", rec)
		}
	}()

	res, err = handler(req)
	if err == nil && res == nil {
		err = errors.New("http: handler returned no response")
	}
	return res, err
}

// shouldKeepAlive applies the persistence rules: an explicit Connection
// header wins, otherwise HTTP/1.1 persists and HTTP/1.0 closes.
func (c *conn) shouldKeepAlive() bool {
	if v, found := c.req.HeaderValue("Connection"); found {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "close":
			return false
		case "keep-alive":
			return true
		}
	}
	return c.req.Version == Version11
}

func (c *conn) write(res *Response, keepAlive bool) error {
	if keepAlive {
		res.Headers.Set("Connection", "keep-alive")
	} else {
		res.Headers.Set("Connection", "close")
	}

	version := c.req.Version
	if version == "" {
		// Parse failed before the version was known.
		version = Version11
	}

	if err := res.Write(c.bw, version); err != nil {
		c.srv.Logger.Warn("response write failed", "error", err)
		return err
	}
	return nil
}

func synthesize(status int) *Response {
	res, _ := NewResponse().
		WithStatus(status).
		WithHTML(fmt.Sprintf("<h1>%d %s</h1>", status, StatusText(status))).
		Build()
	return res
}

func synthesizeError(err error) *Response {
	if errors.Is(err, ErrRequestTooLarge) {
		return synthesize(StatusRequestEntityTooLarge)
	}
	return synthesize(StatusBadRequest)
}
