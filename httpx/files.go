package httpx

import (
	"errors"
	"fmt"
	"strconv"

	"dqx0.com/go/httpfs/internal/filestore"
	"dqx0.com/go/httpfs/internal/obs"
)

// FileHandler serves GET and POST on /files/<name> from a Store. Missing
// files and I/O failures end the exchange with a terminal response.
type FileHandler struct {
	Store  *filestore.Store
	Logger obs.Logger
}

func (h *FileHandler) name(r *Request) (string, error) {
	name, ok := r.Segment(1)
	if !ok {
		return "", fmt.Errorf("%w: %s has no file name", ErrMalformedRequest, r.Path)
	}
	if _, err := h.Store.Resolve(name); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedRequest, err)
	}
	return name, nil
}

// Read returns the file as application/octet-stream.
func (h *FileHandler) Read(r *Request) (Outcome, error) {
	name, err := h.name(r)
	if err != nil {
		return Outcome{}, err
	}
	ok, err := h.Store.Exists(name)
	if err != nil {
		h.logf(obs.Error, "[%s] stat %s: %v", r.RequestID, name, err)
		return Terminal(NewResponse(500)), nil
	}
	if !ok {
		h.logf(obs.Info, "[%s] file %s not found", r.RequestID, name)
		return Terminal(NewResponse(404)), nil
	}
	b, err := h.Store.Read(name)
	if err != nil {
		if errors.Is(err, filestore.ErrNotFound) {
			// removed between the existence check and the read
			return Terminal(NewResponse(404)), nil
		}
		h.logf(obs.Error, "[%s] %v", r.RequestID, err)
		return Terminal(NewResponse(500)), nil
	}
	res := NewResponse(200)
	res.AddHeader("Content-Type", "application/octet-stream")
	res.AddHeader("Content-Length", strconv.Itoa(len(b)))
	res.Body = b
	return Respond(res), nil
}

// Write stores the request body under the name, replacing any existing file.
func (h *FileHandler) Write(r *Request) (Outcome, error) {
	name, err := h.name(r)
	if err != nil {
		return Outcome{}, err
	}
	if err := h.Store.Write(name, r.Body); err != nil {
		h.logf(obs.Error, "[%s] %v", r.RequestID, err)
		return Terminal(NewResponse(500)), nil
	}
	h.logf(obs.Debug, "[%s] wrote %d bytes to %s", r.RequestID, len(r.Body), name)
	return Respond(NewResponse(201)), nil
}

func (h *FileHandler) logf(level obs.Level, format string, args ...interface{}) {
	if h.Logger != nil {
		h.Logger.Logf(level, format, args...)
	}
}
