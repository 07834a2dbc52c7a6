package httpx

import (
	"context"
	"strings"
)

// Request represents one parsed HTTP/1.1 request.
//
// Path is kept exactly as received. Segments holds the non-empty path
// segments in their original case; only the route keyword returned by
// Route is lower-cased. HeaderLines are the raw lines in arrival order,
// Header the index built from them.
type Request struct {
	Method      string
	Path        string
	Segments    []string
	Proto       string
	HeaderLines []string
	Header      HeaderIndex
	Body        []byte
	RemoteAddr  string
	// RequestID is the server generated identifier for this request.
	RequestID string
	ctx       context.Context
}

// NewRequest assembles a Request and builds its header index. It fails
// with ErrMalformedHeader when a header line has no colon.
func NewRequest(method, path, proto string, headerLines []string, body []byte) (*Request, error) {
	h, err := ParseHeaderIndex(headerLines)
	if err != nil {
		return nil, err
	}
	return &Request{
		Method:      method,
		Path:        path,
		Segments:    SplitPath(path),
		Proto:       proto,
		HeaderLines: headerLines,
		Header:      h,
		Body:        body,
	}, nil
}

// SplitPath splits p on "/" and drops empty segments, so repeated and
// trailing slashes collapse.
func SplitPath(p string) []string {
	return strings.FieldsFunc(p, func(r rune) bool { return r == '/' })
}

// Route returns the lower-cased first path segment, or "" for the root.
func (r *Request) Route() string {
	if len(r.Segments) == 0 {
		return ""
	}
	return strings.ToLower(r.Segments[0])
}

// Segment returns the i-th path segment in its original case.
func (r *Request) Segment(i int) (string, bool) {
	if i < 0 || i >= len(r.Segments) {
		return "", false
	}
	return r.Segments[i], true
}

// Context returns the request's context. If nil, returns Background.
func (r *Request) Context() context.Context {
	if r == nil || r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

// WithContext returns a shallow copy of r with its context changed to ctx.
func WithContext(r *Request, ctx context.Context) *Request {
	if r == nil {
		return nil
	}
	r2 := *r
	r2.ctx = ctx
	return &r2
}
