package http

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type SameSite int

const (
	SameSiteDefaultMode SameSite = iota + 1
	SameSiteLaxMode
	SameSiteStrictMode
	SameSiteNoneMode
)

const cookieTimeFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

// Cookie is a Set-Cookie line on responses, or a bare name/value pair on
// requests.
type Cookie struct {
	Name  string
	Value string

	Path        string
	Domain      string
	Expires     time.Time
	MaxAge      int
	Secure      bool
	HttpOnly    bool
	SameSite    SameSite
	Partitioned bool
}

// String serializes the cookie as a Set-Cookie header value.
func (c *Cookie) String() string {
	var b strings.Builder

	b.WriteString(c.Name)
	b.WriteByte('=')
	b.WriteString(c.Value)

	if c.Path != "" {
		b.WriteString("; Path=")
		b.WriteString(c.Path)
	}
	if c.Domain != "" {
		b.WriteString("; Domain=")
		b.WriteString(c.Domain)
	}
	if !c.Expires.IsZero() {
		b.WriteString("; Expires=")
		b.WriteString(c.Expires.UTC().Format(cookieTimeFormat))
	}
	if c.MaxAge > 0 {
		b.WriteString("; Max-Age=")
		b.WriteString(strconv.Itoa(c.MaxAge))
	} else if c.MaxAge < 0 {
		b.WriteString("; Max-Age=0")
	}
	if c.Secure {
		b.WriteString("; Secure")
	}
	if c.HttpOnly {
		b.WriteString("; HttpOnly")
	}
	switch c.SameSite {
	case SameSiteLaxMode:
		b.WriteString("; SameSite=Lax")
	case SameSiteStrictMode:
		b.WriteString("; SameSite=Strict")
	case SameSiteNoneMode:
		b.WriteString("; SameSite=None")
	}
	if c.Partitioned {
		b.WriteString("; Partitioned")
	}

	return b.String()
}

// Valid reports whether the cookie may be serialized per RFC 6265.
func (c *Cookie) Valid() error {
	if c.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidCookie)
	}
	for _, r := range c.Name {
		if !isValidCookieNameChar(r) {
			return fmt.Errorf("%w: character %q in name", ErrInvalidCookie, r)
		}
	}
	for _, r := range c.Value {
		if !isValidCookieValueChar(r) {
			return fmt.Errorf("%w: character %q in value", ErrInvalidCookie, r)
		}
	}
	if c.SameSite == SameSiteNoneMode && !c.Secure {
		return fmt.Errorf("%w: SameSite=None requires Secure", ErrInvalidCookie)
	}
	return nil
}

// ParseSetCookie parses a Set-Cookie header value. Unknown attributes are
// ignored.
func ParseSetCookie(line string) (Cookie, error) {
	var c Cookie

	parts := strings.Split(line, ";")
	nameValue := strings.TrimSpace(parts[0])
	name, value, found := strings.Cut(nameValue, "=")
	if !found || strings.TrimSpace(name) == "" {
		return c, fmt.Errorf("%w: must start with name=value", ErrInvalidCookie)
	}
	c.Name = strings.TrimSpace(name)
	c.Value = strings.TrimSpace(value)

	for _, attr := range parts[1:] {
		attr = strings.TrimSpace(attr)
		if attr == "" {
			continue
		}

		key, value, found := strings.Cut(attr, "=")
		if !found {
			switch strings.ToLower(attr) {
			case "secure":
				c.Secure = true
			case "httponly":
				c.HttpOnly = true
			case "partitioned":
				c.Partitioned = true
			}
			continue
		}

		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "path":
			c.Path = value
		case "domain":
			c.Domain = value
		case "expires":
			if expires, err := parseCookieTime(value); err == nil {
				c.Expires = expires
			}
		case "max-age":
			if maxAge, err := strconv.Atoi(value); err == nil {
				c.MaxAge = maxAge
			}
		case "samesite":
			switch strings.ToLower(value) {
			case "lax":
				c.SameSite = SameSiteLaxMode
			case "strict":
				c.SameSite = SameSiteStrictMode
			case "none":
				c.SameSite = SameSiteNoneMode
			default:
				c.SameSite = SameSiteDefaultMode
			}
		}
	}

	return c, nil
}

// parseRequestCookies splits a request Cookie header on ";". Malformed
// pairs (no "=") are skipped rather than failing the request.
func parseRequestCookies(line string) map[string]string {
	cookies := make(map[string]string)
	for _, pair := range strings.Split(line, ";") {
		name, value, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		cookies[name] = strings.TrimSpace(value)
	}
	return cookies
}

func parseCookieTime(value string) (time.Time, error) {
	formats := []string{
		cookieTimeFormat,
		"Mon, 02-Jan-2006 15:04:05 GMT",
		"Mon, 02-Jan-06 15:04:05 GMT",
		time.RFC1123Z,
		time.RFC3339,
	}
	for _, format := range formats {
		if t, err := time.Parse(format, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unparsable time %q", ErrInvalidCookie, value)
}

func isValidCookieNameChar(r rune) bool {
	return r > 0x20 && r < 0x7f && !strings.ContainsRune("()<>@,;:\\\"/[]?={}", r)
}

func isValidCookieValueChar(r rune) bool {
	return r > 0x20 && r < 0x7f && !strings.ContainsRune("\",;\\", r)
}
