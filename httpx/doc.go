// Package httpx implements a small HTTP/1.1 server with a fixed set of
// built-in routes: echo, user-agent reflection and a flat file store.
//
// Highlights
//   - One request per connection, no keep-alive; every connection runs on
//     its own goroutine and shares only the read-only Config.
//   - Requests are parsed, routed, encoded and written in a single pass.
//     Malformed input gets a 400, I/O failures a 500; nothing panics on
//     untrusted bytes.
//   - Responses are gzip-compressed when Accept-Encoding lists gzip, with
//     Content-Length rewritten to the compressed size.
//   - Observability: plug-in Logger and Meter interfaces.
//
// Quick start:
//
//	s := &httpx.Server{
//	    Addr:   "127.0.0.1:4221",
//	    Config: &httpx.Config{Directory: "/tmp/data"},
//	}
//	if err := s.ListenAndServe(); err != nil { log.Fatal(err) }
//
// Routes:
//
//	GET  /               200, empty body
//	GET  /echo/<text>    200, body <text>
//	GET  /user-agent     200 with the User-Agent value, 400 when absent
//	GET  /files/<name>   200 with the file bytes, 404 when missing
//	POST /files/<name>   201 after writing the request body
package httpx
