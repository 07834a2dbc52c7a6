package httpx

import (
	"strconv"
	"strings"

	"github.com/valyala/fasthttp"

	"dqx0.com/go/httpfs/httpx/internal/http1"
)

// Encoder turns logical responses into wire bytes.
type Encoder struct {
	// TrailingCRLF appends CRLF after the body.
	TrailingCRLF bool
}

// AcceptsGzip reports whether an Accept-Encoding value lists the exact
// token "gzip". Other codings are ignored.
func AcceptsGzip(acceptEncoding string) bool {
	for _, tok := range strings.Split(acceptEncoding, ",") {
		if strings.TrimSpace(tok) == "gzip" {
			return true
		}
	}
	return false
}

// Encode negotiates the content coding for res and serializes it. When the
// client accepts gzip the body is compressed at the default level,
// Content-Encoding is appended and Content-Length is replaced with the
// compressed size. res is updated in place.
func (e Encoder) Encode(res *Response, acceptEncoding string) []byte {
	if AcceptsGzip(acceptEncoding) {
		res.Body = fasthttp.AppendGzipBytesLevel(nil, res.Body, fasthttp.CompressDefaultCompression)
		res.SetHeader("Content-Length", strconv.Itoa(len(res.Body)))
		res.SetHeader("Content-Encoding", "gzip")
		return e.serialize(res)
	}
	return e.Frame(res)
}

// Frame serializes res without content negotiation. Exactly one
// Content-Length header, matching the body, is emitted.
func (e Encoder) Frame(res *Response) []byte {
	res.SetHeader("Content-Length", strconv.Itoa(len(res.Body)))
	return e.serialize(res)
}

func (e Encoder) serialize(res *Response) []byte {
	reason := res.Reason
	if reason == "" {
		reason = fasthttp.StatusMessage(res.StatusCode)
	}
	buf := make([]byte, 0, http1.ResponseSize(reason, res.Headers, res.Body, e.TrailingCRLF))
	return http1.AppendResponse(buf, res.StatusCode, reason, res.Headers, res.Body, e.TrailingCRLF)
}
