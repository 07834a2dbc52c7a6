package httpx

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestSplitPath(t *testing.T) {
	cases := map[string][]string{
		"/":                  nil,
		"":                   nil,
		"//":                 nil,
		"/echo/abc":          {"echo", "abc"},
		"//echo//Abc/":       {"echo", "Abc"},
		"/files/My File.txt": {"files", "My File.txt"},
	}
	for in, want := range cases {
		got := SplitPath(in)
		if len(got) == 0 && len(want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("SplitPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRequest_RouteKeepsSegmentCase(t *testing.T) {
	r, err := NewRequest("GET", "/ECHO/MiXeD", "HTTP/1.1", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if r.Route() != "echo" {
		t.Fatalf("Route = %q", r.Route())
	}
	if s, ok := r.Segment(1); !ok || s != "MiXeD" {
		t.Fatalf("Segment(1) = %q, %v", s, ok)
	}
	if r.Path != "/ECHO/MiXeD" {
		t.Fatalf("Path = %q", r.Path)
	}
	if _, ok := r.Segment(2); ok {
		t.Fatal("Segment(2) should be absent")
	}
}

func TestNewRequest_MalformedHeader(t *testing.T) {
	_, err := NewRequest("GET", "/", "HTTP/1.1", []string{"broken"}, nil)
	if !errors.Is(err, ErrMalformedHeader) {
		t.Fatalf("err=%v", err)
	}
}

func TestRequest_Context(t *testing.T) {
	r, _ := NewRequest("GET", "/", "HTTP/1.1", nil, nil)
	if r.Context() == nil {
		t.Fatal("nil context")
	}
	ctx := WithRequestID(context.Background(), "abc")
	r2 := WithContext(r, ctx)
	if id, ok := RequestIDFrom(r2.Context()); !ok || id != "abc" {
		t.Fatalf("RequestIDFrom = %q, %v", id, ok)
	}
	if _, ok := RequestIDFrom(r.Context()); ok {
		t.Fatal("original request should be unchanged")
	}
}
