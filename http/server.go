package http

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const scopeName = "github.com/freekieb7/basalt/http"

var (
	tracer = otel.Tracer(scopeName)
	meter  = otel.Meter(scopeName)
)

// DefaultIdleTimeout bounds how long a keep-alive connection may sit idle
// between requests.
const DefaultIdleTimeout = 5 * time.Second

// Server accepts TCP connections and serves each on its own goroutine.
// The router must be fully registered before Serve is called; after that it
// is read-only and shared lock-free across all connections.
//
// There is no in-core cap on concurrent connections. Callers that need one
// should wrap the listener they pass to Serve.
type Server struct {
	Name        string
	Router      *Router
	Logger      *slog.Logger
	IdleTimeout time.Duration

	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram

	mu         sync.Mutex
	listener   net.Listener
	inShutdown bool
	conns      sync.WaitGroup

	connPool sync.Pool
}

func NewServer(name string) *Server {
	requestCount, err := meter.Int64Counter("basalt.requests",
		metric.WithDescription("Number of requests served, by method and status."),
		metric.WithUnit("{request}"))
	if err != nil {
		panic(err)
	}

	requestDuration, err := meter.Float64Histogram("basalt.request.duration",
		metric.WithDescription("Request cycle duration from first byte to response flush."),
		metric.WithUnit("s"))
	if err != nil {
		panic(err)
	}

	return &Server{
		Name:        name,
		Router:      NewRouter(),
		Logger:      otelslog.NewLogger(scopeName),
		IdleTimeout: DefaultIdleTimeout,

		requestCount:    requestCount,
		requestDuration: requestDuration,
	}
}

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("http: listen %s: %w", addr, err)
	}

	s.Logger.Info("server started", "name", s.Name, "addr", addr)
	return s.Serve(listener)
}

// Serve accepts connections until the listener fails or Shutdown closes it.
func (s *Server) Serve(listener net.Listener) error {
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	for {
		rwc, err := listener.Accept()
		if err != nil {
			s.mu.Lock()
			closing := s.inShutdown
			s.mu.Unlock()
			if closing {
				return nil
			}

			s.Logger.Warn("accept failed", "error", err)
			continue
		}

		s.conns.Add(1)
		go func() {
			defer s.conns.Done()
			s.ServeConn(rwc)
		}()
	}
}

// ServeConn serves requests from one connection until it closes.
func (s *Server) ServeConn(rwc net.Conn) {
	c := s.newConn(rwc)
	defer s.putConn(c)

	c.serve(context.Background())
}

// Shutdown closes the listener and waits for in-flight connections, or
// returns the context error if they outlast it.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.inShutdown = true
	listener := s.listener
	s.mu.Unlock()

	if listener != nil {
		listener.Close()
	}

	done := make(chan struct{})
	go func() {
		s.conns.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Server) newConn(rwc net.Conn) *conn {
	if pooled, ok := s.connPool.Get().(*conn); ok {
		pooled.rwc = rwc
		pooled.r.Reset(rwc)
		pooled.bw.Reset(rwc)
		pooled.state = StateReading
		return pooled
	}

	return &conn{
		srv: s,
		rwc: rwc,
		r:   NewReader(rwc),
		bw:  bufio.NewWriterSize(rwc, DefaultWriteBufferSize),
	}
}

func (s *Server) putConn(c *conn) {
	c.rwc = nil
	c.req.Reset()
	s.connPool.Put(c)
}
