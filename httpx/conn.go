package httpx

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"

	"dqx0.com/go/httpfs/httpx/internal/http1"
	"dqx0.com/go/httpfs/internal/obs"
)

// conn serves exactly one request on an accepted connection:
//
//	awaitRequest -> parseRequest -> routeRequest -> encodeResponse -> sendResponse
//
// Any state may divert to respondError (a terminal 400/500) or stop early.
// Only sendResponse writes to the connection, so one exchange never
// produces two responses.
type conn struct {
	srv   *Server
	rwc   net.Conn
	br    *bufio.Reader
	start time.Time

	parsed  *http1.ParsedRequest
	req     *Request
	outcome Outcome
	err     error
	wire    []byte
}

type stateFunc func(*conn) stateFunc

func (c *conn) serve() {
	defer c.rwc.Close()
	for state := awaitRequest; state != nil; {
		state = state(c)
	}
}

func awaitRequest(c *conn) stateFunc {
	s := c.srv
	if s.ReadTimeout > 0 {
		_ = c.rwc.SetReadDeadline(time.Now().Add(s.ReadTimeout))
	}
	rr := &http1.Reader{BR: c.br, MaxHeaderBytes: s.config().headerLimit(), MaxBodyBytes: s.config().bodyLimit()}
	pr, err := rr.ReadRequest()
	c.start = time.Now()
	switch {
	case err == io.EOF:
		// peer closed before sending anything
		return nil
	case err != nil && isNetError(err):
		s.logf(obs.Warn, "read from %s: %v", c.rwc.RemoteAddr(), err)
		s.meter().Counter("httpfs_connections_aborted_total", 1, obs.Label{Key: "reason", Value: "read"})
		return nil
	case err != nil:
		c.err = fmt.Errorf("%w: %w", ErrMalformedRequest, err)
		return respondError
	}
	c.parsed = pr
	return parseRequest
}

func parseRequest(c *conn) stateFunc {
	pr := c.parsed
	req, err := NewRequest(pr.Method, pr.RequestURI, pr.Proto, pr.HeaderLines, pr.Body)
	if err != nil {
		c.err = err
		return respondError
	}
	req.RemoteAddr = c.rwc.RemoteAddr().String()
	req.RequestID = genID()
	c.req = WithContext(req, WithRequestID(c.srv.baseContext(), req.RequestID))
	return routeRequest
}

func routeRequest(c *conn) stateFunc {
	out, err := c.srv.route(c.req)
	if err != nil {
		c.err = err
		return respondError
	}
	if out.Response == nil {
		c.err = fmt.Errorf("%w: handler for %s returned no response", ErrInternal, c.req.Path)
		return respondError
	}
	c.outcome = out
	return encodeResponse
}

func respondError(c *conn) stateFunc {
	lvl := obs.Info
	if !errors.Is(c.err, ErrMalformedRequest) {
		lvl = obs.Error
	}
	c.srv.logf(lvl, "[%s] %v", c.requestID(), c.err)
	c.outcome = Terminal(errorResponse(c.err))
	return encodeResponse
}

func encodeResponse(c *conn) stateFunc {
	enc := c.srv.encoder()
	if c.outcome.Kind == OutcomeRespond && c.req != nil {
		c.wire = enc.Encode(c.outcome.Response, c.req.Header.Get("Accept-Encoding"))
	} else {
		c.wire = enc.Frame(c.outcome.Response)
	}
	return sendResponse
}

func sendResponse(c *conn) stateFunc {
	s := c.srv
	if s.WriteTimeout > 0 {
		_ = c.rwc.SetWriteDeadline(time.Now().Add(s.WriteTimeout))
	}
	res := c.outcome.Response
	if _, err := c.rwc.Write(c.wire); err != nil {
		s.logf(obs.Warn, "[%s] write to %s: %v", c.requestID(), c.rwc.RemoteAddr(), err)
		s.meter().Counter("httpfs_connections_aborted_total", 1, obs.Label{Key: "reason", Value: "write"})
		return nil
	}
	method, path := "-", "-"
	if c.req != nil {
		method, path = c.req.Method, c.req.Path
	}
	status := strconv.Itoa(res.StatusCode)
	s.logf(obs.Info, "[%s] %s %s %s %d bytes %s", c.requestID(), method, path, status, len(c.wire), time.Since(c.start))
	m := s.meter()
	m.Counter("httpfs_requests_total", 1, obs.Label{Key: "method", Value: method}, obs.Label{Key: "status", Value: status})
	m.Histogram("httpfs_response_bytes", float64(len(c.wire)))
	m.Histogram("httpfs_request_duration_seconds", time.Since(c.start).Seconds())
	return nil
}

func (c *conn) requestID() string {
	if c.req == nil || c.req.RequestID == "" {
		return "-"
	}
	return c.req.RequestID
}

// isNetError reports read failures caused by the transport rather than by
// the bytes the peer sent.
func isNetError(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) {
		return true
	}
	return errors.Is(err, net.ErrClosed)
}
