package http

import (
	"strings"
	"testing"

	"github.com/freekieb7/basalt/test"
)

func parseRequest(t *testing.T, raw string) (*Request, error) {
	t.Helper()

	var req Request
	err := req.Parse(NewReader(strings.NewReader(raw)))
	return &req, err
}

func TestRequestParse(t *testing.T) {
	req, err := parseRequest(t, "POST /submit?name=Bob&flag HTTP/1.1\r\n"+
		"Host: localhost\r\n"+
		"content-length: 5\r\n"+
		"Cookie: sid=abc123; theme=dark\r\n"+
		"\r\n"+
		"hello")
	test.NoError(t, err)

	test.Equal(t, MethodPost, req.Method)
	test.Equal(t, "/submit", req.Path)
	test.Equal(t, Version11, req.Version)
	test.Equal(t, "Bob", req.Query["name"])
	test.Equal(t, "", req.Query["flag"])
	test.BytesEqual(t, []byte("hello"), req.Body)

	test.Equal(t, "abc123", req.Cookies["sid"])
	test.Equal(t, "dark", req.Cookies["theme"])

	host, found := req.HeaderValue("host")
	test.True(t, found, "host header not found")
	test.Equal(t, "localhost", host)
}

func TestRequestParseHeaderCaseInsensitive(t *testing.T) {
	lower, err := parseRequest(t, "POST /x HTTP/1.1\r\ncontent-length: 5\r\n\r\nabcde")
	test.NoError(t, err)

	upper, err := parseRequest(t, "POST /x HTTP/1.1\r\nContent-Length: 5\r\n\r\nabcde")
	test.NoError(t, err)

	test.BytesEqual(t, lower.Body, upper.Body)

	v, found := lower.HeaderValue("CONTENT-LENGTH")
	test.True(t, found, "header lookup should fold case")
	test.Equal(t, "5", v)
}

func TestRequestParseRepeatedHeaderLastWins(t *testing.T) {
	req, err := parseRequest(t, "GET / HTTP/1.1\r\nX-Test: first\r\nX-Test: second\r\n\r\n")
	test.NoError(t, err)

	v, _ := req.HeaderValue("X-Test")
	test.Equal(t, "second", v)
	test.Equal(t, 1, req.Headers.Len())
}

func TestRequestParseRepeatedQueryKeyLastWins(t *testing.T) {
	req, err := parseRequest(t, "GET /s?q=a&q=b HTTP/1.1\r\n\r\n")
	test.NoError(t, err)

	test.Equal(t, "b", req.Query["q"])
}

func TestRequestParseMalformedRequestLine(t *testing.T) {
	_, err := parseRequest(t, "GET /missing-version\r\n\r\n")
	test.ErrorIs(t, err, ErrMalformedRequestLine)

	_, err = parseRequest(t, "GET  / HTTP/1.1\r\n\r\n")
	test.ErrorIs(t, err, ErrMalformedRequestLine)
}

func TestRequestParseUnsupportedMethod(t *testing.T) {
	_, err := parseRequest(t, "BREW /pot HTTP/1.1\r\n\r\n")
	test.ErrorIs(t, err, ErrUnsupportedMethod)
}

func TestRequestParseUnsupportedVersion(t *testing.T) {
	_, err := parseRequest(t, "GET / HTTP/2.0\r\n\r\n")
	test.ErrorIs(t, err, ErrUnsupportedVersion)

	_, err = parseRequest(t, "GET / HTTP/0.9\r\n\r\n")
	test.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestRequestParseMalformedHeaderLine(t *testing.T) {
	_, err := parseRequest(t, "GET / HTTP/1.1\r\nno-colon-here\r\n\r\n")
	test.ErrorIs(t, err, ErrMalformedHeaderLine)
}

func TestRequestParseBadContentLength(t *testing.T) {
	for _, value := range []string{"abc", "-1", "", "12x"} {
		_, err := parseRequest(t, "POST / HTTP/1.1\r\nContent-Length: "+value+"\r\n\r\n")
		test.ErrorIs(t, err, ErrMalformedHeaderLine)
	}
}

func TestRequestParseBodyExactLength(t *testing.T) {
	body := "exactly eleven bytes?"[:11]
	req, err := parseRequest(t, "POST /up HTTP/1.1\r\nContent-Length: 11\r\n\r\n"+body+"trailing ignored")
	test.NoError(t, err)
	test.BytesEqual(t, []byte(body), req.Body)
}

func TestRequestParseBinaryBody(t *testing.T) {
	body := string([]byte{0x00, 0x01, 0xff, 0x0a, 0x0d})
	req, err := parseRequest(t, "POST /bin HTTP/1.1\r\nContent-Length: 5\r\n\r\n"+body)
	test.NoError(t, err)
	test.BytesEqual(t, []byte(body), req.Body)
}

func TestRequestParseBodyTruncated(t *testing.T) {
	_, err := parseRequest(t, "POST / HTTP/1.1\r\nContent-Length: 10\r\n\r\nshort")
	test.ErrorIs(t, err, ErrTruncated)
}

func TestRequestParseBodyTooLarge(t *testing.T) {
	_, err := parseRequest(t, "POST / HTTP/1.1\r\nContent-Length: 99999999\r\n\r\n")
	test.ErrorIs(t, err, ErrRequestTooLarge)
}

func TestRequestParseTransferEncodingWithoutContentLength(t *testing.T) {
	// Chunked bodies are unsupported; without Content-Length the request is
	// treated as body-less.
	req, err := parseRequest(t, "POST / HTTP/1.1\r\nTransfer-Encoding: chunked\r\n\r\n")
	test.NoError(t, err)
	test.Equal(t, 0, len(req.Body))
}

func TestRequestParseHeaderBlockTooLarge(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("GET / HTTP/1.1\r\n")
	filler := strings.Repeat("v", 1024)
	for i := 0; i < 80; i++ {
		sb.WriteString("X-Filler: ")
		sb.WriteString(filler)
		sb.WriteString("\r\n")
	}
	sb.WriteString("\r\n")

	_, err := parseRequest(t, sb.String())
	test.ErrorIs(t, err, ErrRequestTooLarge)
}

func TestRequestParseHTTP10(t *testing.T) {
	req, err := parseRequest(t, "GET /old HTTP/1.0\r\n\r\n")
	test.NoError(t, err)
	test.Equal(t, Version10, req.Version)
}

func TestRequestParseNoCookieHeader(t *testing.T) {
	req, err := parseRequest(t, "GET / HTTP/1.1\r\n\r\n")
	test.NoError(t, err)

	_, err = req.Cookie("sid")
	test.ErrorIs(t, err, ErrNoCookie)
}
