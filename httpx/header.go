package httpx

import (
	"fmt"
	"strings"
)

// HeaderIndex maps header names to values for one request. Keys are
// matched exactly as sent; when a name repeats, the last line wins.
type HeaderIndex map[string]string

// ParseHeaderIndex builds a HeaderIndex from raw "Name: value" lines,
// splitting each on its first colon and trimming both sides. A line with
// no colon fails with ErrMalformedHeader.
func ParseHeaderIndex(lines []string) (HeaderIndex, error) {
	h := make(HeaderIndex, len(lines))
	for _, line := range lines {
		i := strings.IndexByte(line, ':')
		if i < 0 {
			return nil, fmt.Errorf("%w: %q", ErrMalformedHeader, line)
		}
		h[strings.TrimSpace(line[:i])] = strings.TrimSpace(line[i+1:])
	}
	return h, nil
}

// Get returns the value for key, or "" when absent.
func (h HeaderIndex) Get(key string) string {
	return h[key]
}

// Lookup is like Get but also reports presence.
func (h HeaderIndex) Lookup(key string) (string, bool) {
	v, ok := h[key]
	return v, ok
}
