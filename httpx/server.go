package httpx

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"dqx0.com/go/httpfs/internal/obs"
)

// Server accepts connections and answers one request per connection
// through the built-in Router. Each connection runs on its own goroutine.
//
// ReadTimeout and WriteTimeout default to zero, meaning a silent peer
// holds its goroutine until it closes the connection.
type Server struct {
	Addr         string
	Config       *Config
	Logger       obs.Logger
	Meter        obs.Meter
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	initOnce sync.Once
	initErr  error
	router   *Router
	enc      Encoder

	mu         sync.Mutex
	listeners  map[net.Listener]struct{}
	conns      sync.WaitGroup
	inShutdown atomic.Bool
	ctx        context.Context
	cancel     context.CancelFunc
}

func (s *Server) ListenAndServe() error {
	addr := s.Addr
	if addr == "" {
		addr = "127.0.0.1:4221"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on l until it fails or Shutdown is called, in
// which case ErrServerClosed is returned.
func (s *Server) Serve(l net.Listener) error {
	if err := s.init(); err != nil {
		_ = l.Close()
		return err
	}
	if !s.trackListener(l, true) {
		_ = l.Close()
		return ErrServerClosed
	}
	defer s.trackListener(l, false)
	defer l.Close()

	s.logf(obs.Info, "listening on %s", l.Addr())
	var backoff time.Duration
	for {
		c, err := l.Accept()
		if err != nil {
			if s.inShutdown.Load() {
				return ErrServerClosed
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				if backoff == 0 {
					backoff = 5 * time.Millisecond
				} else if backoff *= 2; backoff > time.Second {
					backoff = time.Second
				}
				s.logf(obs.Warn, "accept: %v; retrying in %v", err, backoff)
				time.Sleep(backoff)
				continue
			}
			return err
		}
		backoff = 0
		s.conns.Add(1)
		go func() {
			defer s.conns.Done()
			s.serveConn(c)
		}()
	}
}

// Shutdown stops accepting connections and waits for in-flight ones to
// finish or for ctx to be done.
func (s *Server) Shutdown(ctx context.Context) error {
	s.inShutdown.Store(true)
	s.mu.Lock()
	var err error
	for l := range s.listeners {
		if cerr := l.Close(); cerr != nil && err == nil && !errors.Is(cerr, net.ErrClosed) {
			err = cerr
		}
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.conns.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}
	if s.cancel != nil {
		s.cancel()
	}
	return err
}

func (s *Server) serveConn(c net.Conn) {
	(&conn{srv: s, rwc: c, br: bufio.NewReader(c)}).serve()
}

func (s *Server) init() error {
	s.initOnce.Do(func() {
		cfg := s.config()
		if err := cfg.Validate(); err != nil {
			s.initErr = err
			return
		}
		rt, err := NewRouter(cfg, s.logger())
		if err != nil {
			s.initErr = err
			return
		}
		s.router = rt
		s.enc = Encoder{TrailingCRLF: cfg.LegacyTrailingCRLF}
		s.ctx, s.cancel = context.WithCancel(context.Background())
	})
	return s.initErr
}

// route runs the router, turning a handler panic into ErrInternal.
func (s *Server) route(r *Request) (out Outcome, err error) {
	defer func() {
		if p := recover(); p != nil {
			out, err = Outcome{}, fmt.Errorf("%w: panic serving %s: %v", ErrInternal, r.Path, p)
		}
	}()
	return s.router.Route(r)
}

func (s *Server) trackListener(l net.Listener, add bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if add {
		if s.inShutdown.Load() {
			return false
		}
		if s.listeners == nil {
			s.listeners = make(map[net.Listener]struct{})
		}
		s.listeners[l] = struct{}{}
		return true
	}
	delete(s.listeners, l)
	return true
}

func (s *Server) config() *Config {
	if s.Config == nil {
		return &Config{}
	}
	return s.Config
}

func (s *Server) encoder() Encoder { return s.enc }

func (s *Server) baseContext() context.Context {
	if s.ctx == nil {
		return context.Background()
	}
	return s.ctx
}

func (s *Server) logger() obs.Logger {
	if s.Logger == nil {
		return obs.NopLogger{}
	}
	return s.Logger
}

func (s *Server) logf(level obs.Level, format string, args ...interface{}) {
	s.logger().Logf(level, format, args...)
}

func (s *Server) meter() obs.Meter {
	if s.Meter == nil {
		return obs.NopMeter{}
	}
	return s.Meter
}
