package httpx

import (
	"fmt"

	"dqx0.com/go/httpfs/internal/filestore"
	"dqx0.com/go/httpfs/internal/obs"
)

// Router dispatches a request to exactly one built-in handler. The route
// table is fixed:
//
//	GET  /               200, empty body
//	GET  /echo/<text>    200, body <text>
//	GET  /user-agent     200, body is the User-Agent header
//	GET  /files/<name>   file contents
//	POST /files/<name>   store the request body, 201
//
// Other methods get 400 and other paths 404.
type Router struct {
	files *FileHandler
}

// NewRouter builds a Router for cfg. The files routes are served from
// cfg.Directory when it is set.
func NewRouter(cfg *Config, log obs.Logger) (*Router, error) {
	if log == nil {
		log = obs.NopLogger{}
	}
	rt := &Router{}
	if cfg != nil && cfg.Directory != "" {
		st, err := filestore.New(cfg.Directory)
		if err != nil {
			return nil, err
		}
		rt.files = &FileHandler{Store: st, Logger: log}
	}
	return rt, nil
}

// Route selects a handler; the first matching rule wins. The returned
// error, if any, wraps ErrMalformedRequest or ErrInternal.
func (rt *Router) Route(r *Request) (Outcome, error) {
	if r.Method != "GET" && r.Method != "POST" {
		res := NewResponse(400)
		res.AddHeader("Content-Type", "text/plain")
		return Respond(res), nil
	}
	if len(r.Segments) == 0 {
		return rootHandler(r), nil
	}
	switch route := r.Route(); {
	case r.Method == "GET" && route == "echo":
		return echoHandler(r)
	case r.Method == "GET" && route == "user-agent":
		return userAgentHandler(r), nil
	case route == "files":
		if rt.files == nil {
			return Outcome{}, fmt.Errorf("%w: no directory configured for %s", ErrInternal, r.Path)
		}
		if r.Method == "POST" {
			return rt.files.Write(r)
		}
		return rt.files.Read(r)
	}
	return Respond(NewResponse(404)), nil
}
