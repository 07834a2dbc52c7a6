package httpx

import (
	"strconv"
	"strings"

	"github.com/valyala/fasthttp"
)

// Response is a logical response: status, ordered header lines and an
// unframed body. Header lines are "Name: value" strings and are written in
// the order they appear.
type Response struct {
	StatusCode int
	Reason     string
	Headers    []string
	Body       []byte
}

// NewResponse returns a response with the canonical reason phrase for code.
func NewResponse(code int) *Response {
	return &Response{StatusCode: code, Reason: fasthttp.StatusMessage(code)}
}

// TextResponse returns a response carrying body with its Content-Length set.
func TextResponse(code int, body string) *Response {
	r := NewResponse(code)
	r.Body = []byte(body)
	r.SetHeader("Content-Length", strconv.Itoa(len(r.Body)))
	return r
}

// AddHeader appends a header line.
func (r *Response) AddHeader(name, value string) {
	r.Headers = append(r.Headers, name+": "+value)
}

// SetHeader replaces every line for name (case-insensitively) with one
// line appended at the end.
func (r *Response) SetHeader(name, value string) {
	r.DelHeader(name)
	r.AddHeader(name, value)
}

// DelHeader removes every line for name.
func (r *Response) DelHeader(name string) {
	kept := r.Headers[:0]
	for _, h := range r.Headers {
		if !headerLineIs(h, name) {
			kept = append(kept, h)
		}
	}
	r.Headers = kept
}

// HeaderValue returns the value of the last line for name.
func (r *Response) HeaderValue(name string) (string, bool) {
	for i := len(r.Headers) - 1; i >= 0; i-- {
		if headerLineIs(r.Headers[i], name) {
			_, v, _ := strings.Cut(r.Headers[i], ":")
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

func headerLineIs(line, name string) bool {
	k, _, ok := strings.Cut(line, ":")
	return ok && strings.EqualFold(strings.TrimSpace(k), name)
}

// OutcomeKind tells the connection how a handler's response must be sent.
type OutcomeKind int

const (
	// OutcomeRespond responses go through content negotiation.
	OutcomeRespond OutcomeKind = iota
	// OutcomeTerminal responses end the exchange as they are; they are
	// framed but never compressed.
	OutcomeTerminal
)

func (k OutcomeKind) String() string {
	if k == OutcomeTerminal {
		return "terminal"
	}
	return "respond"
}

// Outcome is what a handler returns. Exactly one response is written per
// Outcome.
type Outcome struct {
	Kind     OutcomeKind
	Response *Response
}

// Respond wraps a regular response.
func Respond(r *Response) Outcome { return Outcome{Kind: OutcomeRespond, Response: r} }

// Terminal wraps a response that ends the exchange without negotiation.
func Terminal(r *Response) Outcome { return Outcome{Kind: OutcomeTerminal, Response: r} }
