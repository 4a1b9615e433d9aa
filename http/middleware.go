package http

import (
	"fmt"
	"log/slog"
	"time"
)

type Middleware func(next Handler) Handler

// RecoverMiddleware converts a handler panic into a handler error, which
// the server then maps to a 500 response. The server has its own recover as
// a last line; this middleware exists so applications can log panics with
// their own logger or wrap them before the server sees them.
func RecoverMiddleware(logger *slog.Logger) Middleware {
	return func(next Handler) Handler {
		return func(req *Request) (res *Response, err error) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("handler panic",
						"method", string(req.Method),
						"path", req.Path,
						"panic", fmt.Sprint(rec))
					res, err = nil, fmt.Errorf("http: handler panic: %v", rec)
				}
			}()

			return next(req)
		}
	}
}

// LogMiddleware logs one line per handled request with its status and
// duration.
func LogMiddleware(logger *slog.Logger) Middleware {
	return func(next Handler) Handler {
		return func(req *Request) (*Response, error) {
			start := time.Now()

			res, err := next(req)

			status := StatusInternalServerError
			if err == nil && res != nil {
				status = res.Status
			}
			logger.Info("request handled",
				"method", string(req.Method),
				"path", req.Path,
				"status", status,
				"duration", time.Since(start))

			return res, err
		}
	}
}
