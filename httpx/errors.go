package httpx

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedRequest = errors.New("httpx: malformed request")
	ErrMalformedHeader  = fmt.Errorf("%w: malformed header", ErrMalformedRequest)
	ErrInternal         = errors.New("httpx: internal error")
	ErrServerClosed     = errors.New("httpx: server closed")
)

// errorResponse maps a routing or parsing error to its terminal response.
func errorResponse(err error) *Response {
	if errors.Is(err, ErrMalformedRequest) {
		return NewResponse(400)
	}
	return NewResponse(500)
}
