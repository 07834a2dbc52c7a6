package http1

import (
	"strconv"
	"strings"
)

// AppendResponse appends a complete HTTP/1.1 response to dst and returns
// the extended slice. Header lines are written in the given order, each
// already in "Name: value" form. When trailingCRLF is set an extra CRLF
// follows the body; some older clients of this server expect it.
func AppendResponse(dst []byte, status int, reason string, headers []string, body []byte, trailingCRLF bool) []byte {
	dst = append(dst, "HTTP/1.1 "...)
	dst = strconv.AppendInt(dst, int64(status), 10)
	dst = append(dst, ' ')
	dst = append(dst, reason...)
	dst = append(dst, "\r\n"...)
	for _, h := range headers {
		dst = append(dst, sanitizeHeaderLine(h)...)
		dst = append(dst, "\r\n"...)
	}
	dst = append(dst, "\r\n"...)
	dst = append(dst, body...)
	if trailingCRLF {
		dst = append(dst, "\r\n"...)
	}
	return dst
}

// ResponseSize reports how many bytes AppendResponse will need, so callers
// can allocate once.
func ResponseSize(reason string, headers []string, body []byte, trailingCRLF bool) int {
	n := len("HTTP/1.1 000 \r\n") + len(reason) + 2 + len(body)
	for _, h := range headers {
		n += len(h) + 2
	}
	if trailingCRLF {
		n += 2
	}
	return n
}

// sanitizeHeaderLine removes CR/LF and control chars except HTAB so a
// header value cannot inject extra lines.
func sanitizeHeaderLine(v string) string {
	clean := true
	for i := 0; i < len(v); i++ {
		if c := v[i]; c == 0x7f || (c < 0x20 && c != '\t') {
			clean = false
			break
		}
	}
	if clean {
		return v
	}
	var b strings.Builder
	b.Grow(len(v))
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c == '\r' || c == '\n' || c == 0x7f {
			continue
		}
		if c < 0x20 && c != '\t' {
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
