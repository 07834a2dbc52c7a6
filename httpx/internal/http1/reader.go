package http1

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformed is wrapped by every framing fault the reader detects.
var ErrMalformed = errors.New("http1: malformed request")

// ParsedRequest is a minimal representation parsed from the wire.
// HeaderLines are kept exactly as received (without the line terminator);
// splitting them into name/value pairs is left to the caller.
type ParsedRequest struct {
	Method      string
	RequestURI  string
	Proto       string
	HeaderLines []string
	Body        []byte
}

type Reader struct {
	BR             *bufio.Reader
	MaxHeaderBytes int
	MaxBodyBytes   int64
}

// ReadRequest reads one request including its body. If the stream ends
// before the first byte of the request line, io.EOF is returned as is.
func (r *Reader) ReadRequest() (*ParsedRequest, error) {
	line, err := r.readLine()
	if err != nil {
		if err == io.EOF && line == "" {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: request line: %w", ErrMalformed, err)
	}
	parts := strings.SplitN(line, " ", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("%w: request line %q", ErrMalformed, line)
	}
	method, uri, proto := parts[0], parts[1], parts[2]
	if !strings.HasPrefix(proto, "HTTP/1.") {
		return nil, fmt.Errorf("%w: unsupported protocol %q", ErrMalformed, proto)
	}
	lines, err := r.readHeaderLines()
	if err != nil {
		return nil, err
	}
	cl, err := contentLength(lines)
	if err != nil {
		return nil, err
	}
	if r.MaxBodyBytes > 0 && cl > r.MaxBodyBytes {
		return nil, fmt.Errorf("%w: body of %d bytes exceeds limit", ErrMalformed, cl)
	}
	var body []byte
	if cl > 0 {
		body = make([]byte, cl)
		if _, err := io.ReadFull(r.BR, body); err != nil {
			return nil, fmt.Errorf("%w: body: %w", ErrMalformed, err)
		}
	}
	return &ParsedRequest{
		Method:      method,
		RequestURI:  uri,
		Proto:       proto,
		HeaderLines: lines,
		Body:        body,
	}, nil
}

func (r *Reader) readHeaderLines() ([]string, error) {
	var lines []string
	for {
		line, err := r.readLine()
		if err != nil {
			return nil, fmt.Errorf("%w: headers: %w", ErrMalformed, err)
		}
		if line == "" {
			return lines, nil
		}
		lines = append(lines, line)
	}
}

// readLine returns the partial line alongside the error so the caller can
// tell a clean close from a truncated line.
func (r *Reader) readLine() (string, error) {
	var sb strings.Builder
	for {
		b, err := r.BR.ReadByte()
		if err != nil {
			return sb.String(), err
		}
		if b == '\n' {
			break
		}
		if b != '\r' {
			sb.WriteByte(b)
		}
		if r.MaxHeaderBytes > 0 && sb.Len() > r.MaxHeaderBytes {
			return "", io.ErrShortBuffer
		}
	}
	return sb.String(), nil
}

// contentLength scans the raw header lines for Content-Length. Lines that
// do not look like headers are skipped here; rejecting them is up to the
// header index.
func contentLength(lines []string) (int64, error) {
	var (
		cl    int64
		found bool
	)
	for _, line := range lines {
		i := strings.IndexByte(line, ':')
		if i <= 0 {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(line[:i]), "Content-Length") {
			continue
		}
		n, err := strconv.ParseInt(strings.TrimSpace(line[i+1:]), 10, 64)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: invalid Content-Length %q", ErrMalformed, line[i+1:])
		}
		if found && n != cl {
			return 0, fmt.Errorf("%w: conflicting Content-Length", ErrMalformed)
		}
		cl, found = n, true
	}
	return cl, nil
}
