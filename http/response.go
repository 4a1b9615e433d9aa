package http

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strconv"
)

const (
	ContentTypeHTML = "text/html"
	ContentTypeText = "text/plain"
	ContentTypeJSON = "application/json"
)

// Response is a finalized response, normally produced through
// ResponseBuilder. Cookies serialize as one Set-Cookie line each, after the
// regular headers.
type Response struct {
	Status  int
	Headers Headers
	Cookies []Cookie
	Body    []byte
}

// Write serializes the response for the negotiated request version: status
// line, headers in insertion order, Set-Cookie lines, a blank line, then
// the body verbatim. Content-Length is forced to the exact body length.
func (res *Response) Write(bw *bufio.Writer, version Version) error {
	res.Headers.Set("Content-Length", strconv.Itoa(len(res.Body)))

	if _, err := fmt.Fprintf(bw, "%s %d %s\r\n", version, res.Status, StatusText(res.Status)); err != nil {
		return err
	}
	for _, header := range res.Headers.All() {
		if _, err := fmt.Fprintf(bw, "%s: %s\r\n", header.Name, header.Value); err != nil {
			return err
		}
	}
	for i := range res.Cookies {
		if _, err := fmt.Fprintf(bw, "Set-Cookie: %s\r\n", res.Cookies[i].String()); err != nil {
			return err
		}
	}
	if _, err := bw.WriteString("\r\n"); err != nil {
		return err
	}
	if _, err := bw.Write(res.Body); err != nil {
		return err
	}

	return bw.Flush()
}

// ResponseBuilder accumulates a response step by step. Each With method
// returns the builder for chaining; encoding failures are deferred to
// Build so chains stay linear.
type ResponseBuilder struct {
	res Response
	err error
}

// NewResponse starts a builder with status 200 and no headers or body.
func NewResponse() *ResponseBuilder {
	return &ResponseBuilder{
		res: Response{Status: StatusOK},
	}
}

func (b *ResponseBuilder) WithStatus(status int) *ResponseBuilder {
	b.res.Status = status
	return b
}

func (b *ResponseBuilder) WithHeader(name, value string) *ResponseBuilder {
	b.res.Headers.Set(name, value)
	return b
}

func (b *ResponseBuilder) WithCookie(cookie Cookie) *ResponseBuilder {
	b.res.Cookies = append(b.res.Cookies, cookie)
	return b
}

// WithBody sets the raw body. An empty contentType keeps the builder's
// current Content-Type (Build falls back to text/html).
func (b *ResponseBuilder) WithBody(body []byte, contentType string) *ResponseBuilder {
	b.res.Body = body
	if contentType != "" {
		b.res.Headers.Set("Content-Type", contentType)
	}
	return b
}

func (b *ResponseBuilder) WithText(body string) *ResponseBuilder {
	return b.WithBody([]byte(body), ContentTypeText)
}

func (b *ResponseBuilder) WithHTML(body string) *ResponseBuilder {
	return b.WithBody([]byte(body), ContentTypeHTML)
}

func (b *ResponseBuilder) WithJSON(payload any) *ResponseBuilder {
	body, err := json.Marshal(payload)
	if err != nil {
		b.err = fmt.Errorf("http: encode json body: %w", err)
		return b
	}
	return b.WithBody(body, ContentTypeJSON)
}

// Build finalizes the response. It fails if a body encoding step failed or
// a cookie cannot be serialized.
func (b *ResponseBuilder) Build() (*Response, error) {
	if b.err != nil {
		return nil, b.err
	}
	for i := range b.res.Cookies {
		if err := b.res.Cookies[i].Valid(); err != nil {
			return nil, err
		}
	}
	if len(b.res.Body) > 0 {
		if _, found := b.res.Headers.Get("Content-Type"); !found {
			b.res.Headers.Set("Content-Type", ContentTypeHTML)
		}
	}
	b.res.Headers.Set("Content-Length", strconv.Itoa(len(b.res.Body)))
	return &b.res, nil
}
