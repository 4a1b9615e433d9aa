package http

import (
	"bufio"
	"bytes"
	"strconv"
	"testing"

	"github.com/freekieb7/basalt/test"
)

func serialize(t *testing.T, res *Response, version Version) []byte {
	t.Helper()

	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	test.NoError(t, res.Write(bw, version))
	return buf.Bytes()
}

func TestResponseBuilderDefaults(t *testing.T) {
	res, err := NewResponse().Build()
	test.NoError(t, err)

	test.Equal(t, StatusOK, res.Status)
	test.Equal(t, 0, len(res.Body))

	length, _ := res.Headers.Get("Content-Length")
	test.Equal(t, "0", length)
}

func TestResponseBuilderContentTypeDefaultsToHTML(t *testing.T) {
	res, err := NewResponse().WithBody([]byte("<p>Hi</p>"), "").Build()
	test.NoError(t, err)

	contentType, _ := res.Headers.Get("Content-Type")
	test.Equal(t, ContentTypeHTML, contentType)
}

func TestResponseBuilderContentTypeOverride(t *testing.T) {
	res, err := NewResponse().
		WithHTML("{}").
		WithHeader("Content-Type", ContentTypeJSON).
		Build()
	test.NoError(t, err)

	contentType, _ := res.Headers.Get("Content-Type")
	test.Equal(t, ContentTypeJSON, contentType)
}

func TestResponseContentLengthMatchesBody(t *testing.T) {
	for _, body := range [][]byte{
		nil,
		[]byte("x"),
		[]byte("Hello World"),
		{0x00, 0xff, 0x0d, 0x0a},
	} {
		res, err := NewResponse().WithBody(body, ContentTypeText).Build()
		test.NoError(t, err)

		length, _ := res.Headers.Get("Content-Length")
		test.Equal(t, strconv.Itoa(len(body)), length)
	}
}

func TestResponseWriteWireFormat(t *testing.T) {
	res, err := NewResponse().
		WithStatus(StatusOK).
		WithHeader("X-First", "1").
		WithHeader("X-Second", "2").
		WithHTML("<p>Hello World</p>").
		Build()
	test.NoError(t, err)

	expected := "HTTP/1.1 200 OK\r\n" +
		"X-First: 1\r\n" +
		"X-Second: 2\r\n" +
		"Content-Type: text/html\r\n" +
		"Content-Length: 18\r\n" +
		"\r\n" +
		"<p>Hello World</p>"

	test.BytesEqual(t, []byte(expected), serialize(t, res, Version11))
}

func TestResponseWriteUsesRequestVersion(t *testing.T) {
	res, err := NewResponse().Build()
	test.NoError(t, err)

	out := serialize(t, res, Version10)
	test.True(t, bytes.HasPrefix(out, []byte("HTTP/1.0 200 OK\r\n")), "status line should carry the negotiated version")
}

func TestResponseWriteBinaryBodyVerbatim(t *testing.T) {
	body := []byte{0x00, 0x01, '\r', '\n', 0xfe}
	res, err := NewResponse().WithBody(body, "application/octet-stream").Build()
	test.NoError(t, err)

	out := serialize(t, res, Version11)
	test.True(t, bytes.HasSuffix(out, body), "body bytes must not be re-encoded")
}

func TestResponseWriteSetCookieLines(t *testing.T) {
	res, err := NewResponse().
		WithCookie(Cookie{Name: "sid", Value: "abc", HttpOnly: true}).
		WithCookie(Cookie{Name: "theme", Value: "dark"}).
		Build()
	test.NoError(t, err)

	out := string(serialize(t, res, Version11))
	test.True(t, bytes.Contains([]byte(out), []byte("Set-Cookie: sid=abc; HttpOnly\r\n")), "first cookie line missing")
	test.True(t, bytes.Contains([]byte(out), []byte("Set-Cookie: theme=dark\r\n")), "second cookie line missing")
}

func TestResponseBuilderJSON(t *testing.T) {
	res, err := NewResponse().
		WithJSON(map[string]int{"answer": 42}).
		Build()
	test.NoError(t, err)

	contentType, _ := res.Headers.Get("Content-Type")
	test.Equal(t, ContentTypeJSON, contentType)
	test.BytesEqual(t, []byte(`{"answer":42}`), res.Body)
}

func TestResponseBuilderJSONEncodingFails(t *testing.T) {
	_, err := NewResponse().WithJSON(func() {}).Build()
	test.True(t, err != nil, "encoding a func should fail the build")
}

func TestResponseBuilderInvalidCookieFailsBuild(t *testing.T) {
	_, err := NewResponse().
		WithCookie(Cookie{Name: "bad name", Value: "v"}).
		Build()
	test.ErrorIs(t, err, ErrInvalidCookie)
}

func TestResponseStatusUnknownCode(t *testing.T) {
	res, err := NewResponse().WithStatus(799).Build()
	test.NoError(t, err)

	out := serialize(t, res, Version11)
	test.True(t, bytes.HasPrefix(out, []byte("HTTP/1.1 799 Unknown Status Code\r\n")), "unknown codes still get a reason phrase")
}
