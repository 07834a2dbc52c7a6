package http1

import "testing"

func TestAppendResponse(t *testing.T) {
	got := AppendResponse(nil, 200, "OK", []string{"Content-Type: text/plain", "Content-Length: 3"}, []byte("abc"), false)
	want := "HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\nContent-Length: 3\r\n\r\nabc"
	if string(got) != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestAppendResponse_TrailingCRLF(t *testing.T) {
	got := AppendResponse(nil, 404, "Not Found", []string{"Content-Length: 0"}, nil, true)
	want := "HTTP/1.1 404 Not Found\r\nContent-Length: 0\r\n\r\n\r\n"
	if string(got) != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestAppendResponse_StripsInjectedLines(t *testing.T) {
	got := AppendResponse(nil, 200, "OK", []string{"X-Echo: a\r\nSet-Cookie: b"}, nil, false)
	want := "HTTP/1.1 200 OK\r\nX-Echo: aSet-Cookie: b\r\n\r\n"
	if string(got) != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestResponseSize(t *testing.T) {
	headers := []string{"Content-Length: 5", "Content-Encoding: gzip"}
	body := []byte("hello")
	for _, trailing := range []bool{false, true} {
		got := ResponseSize("Created", headers, body, trailing)
		want := len(AppendResponse(nil, 201, "Created", headers, body, trailing))
		if got != want {
			t.Fatalf("trailing=%v: size=%d, want %d", trailing, got, want)
		}
	}
}
