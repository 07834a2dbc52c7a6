package http1

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"
)

func readReq(t *testing.T, raw string, maxLine int, maxBody int64) (*ParsedRequest, error) {
	t.Helper()
	r := &Reader{BR: bufio.NewReader(strings.NewReader(raw)), MaxHeaderBytes: maxLine, MaxBodyBytes: maxBody}
	return r.ReadRequest()
}

func TestReader_ContentLengthBody(t *testing.T) {
	raw := "POST /files/a HTTP/1.1\r\nHost: x\r\nContent-Length: 5\r\n\r\nhello"
	pr, err := readReq(t, raw, 8<<10, 0)
	if err != nil {
		t.Fatalf("ReadRequest error: %v", err)
	}
	if pr.Method != "POST" || pr.RequestURI != "/files/a" || pr.Proto != "HTTP/1.1" {
		t.Fatalf("request line = %q %q %q", pr.Method, pr.RequestURI, pr.Proto)
	}
	if string(pr.Body) != "hello" {
		t.Fatalf("body=%q", string(pr.Body))
	}
	if len(pr.HeaderLines) != 2 || pr.HeaderLines[1] != "Content-Length: 5" {
		t.Fatalf("header lines=%q", pr.HeaderLines)
	}
}

func TestReader_LowercaseContentLength(t *testing.T) {
	raw := "POST / HTTP/1.1\r\ncontent-length:  3\r\n\r\nabcdef"
	pr, err := readReq(t, raw, 8<<10, 0)
	if err != nil {
		t.Fatalf("ReadRequest error: %v", err)
	}
	if string(pr.Body) != "abc" {
		t.Fatalf("body=%q", string(pr.Body))
	}
}

func TestReader_NoBody(t *testing.T) {
	pr, err := readReq(t, "GET / HTTP/1.1\r\n\r\n", 8<<10, 0)
	if err != nil {
		t.Fatalf("ReadRequest error: %v", err)
	}
	if len(pr.Body) != 0 || len(pr.HeaderLines) != 0 {
		t.Fatalf("unexpected body=%q lines=%q", pr.Body, pr.HeaderLines)
	}
}

func TestReader_EmptyStreamIsEOF(t *testing.T) {
	if _, err := readReq(t, "", 8<<10, 0); err != io.EOF {
		t.Fatalf("err=%v, want io.EOF", err)
	}
}

func TestReader_MalformedHeaderLineKept(t *testing.T) {
	pr, err := readReq(t, "GET / HTTP/1.1\r\nno-colon-here\r\n\r\n", 8<<10, 0)
	if err != nil {
		t.Fatalf("ReadRequest error: %v", err)
	}
	if len(pr.HeaderLines) != 1 || pr.HeaderLines[0] != "no-colon-here" {
		t.Fatalf("header lines=%q", pr.HeaderLines)
	}
}

func TestReader_Errors(t *testing.T) {
	cases := map[string]struct {
		raw     string
		maxBody int64
	}{
		"truncated request line": {raw: "GET / HTTP/1.1"},
		"two fields":             {raw: "GET /\r\n\r\n"},
		"bad proto":              {raw: "GET / SPDY/3\r\n\r\n"},
		"bad content-length":     {raw: "POST / HTTP/1.1\r\nContent-Length: x\r\n\r\n"},
		"negative length":        {raw: "POST / HTTP/1.1\r\nContent-Length: -1\r\n\r\n"},
		"conflicting lengths":    {raw: "POST / HTTP/1.1\r\nContent-Length: 1\r\nContent-Length: 2\r\n\r\nab"},
		"short body":             {raw: "POST / HTTP/1.1\r\nContent-Length: 10\r\n\r\nabc"},
		"headers cut off":        {raw: "GET / HTTP/1.1\r\nHost: x\r\n"},
		"body over limit":        {raw: "POST / HTTP/1.1\r\nContent-Length: 5\r\n\r\nhello", maxBody: 4},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := readReq(t, tc.raw, 8<<10, tc.maxBody)
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("err=%v, want ErrMalformed", err)
			}
		})
	}
}

func TestReader_MaxHeaderBytes(t *testing.T) {
	raw := "GET / HTTP/1.1\r\nX-Long: " + strings.Repeat("a", 64) + "\r\n\r\n"
	if _, err := readReq(t, raw, 16, 0); err == nil {
		t.Fatal("expected error for MaxHeaderBytes")
	}
}
