package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/freekieb7/basalt/handler"
	"github.com/freekieb7/basalt/http"
	"github.com/freekieb7/basalt/telemetry"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

var (
	addr     = flag.String("addr", "0.0.0.0:8080", "listen address")
	page404  = flag.String("page-404", "pages/404.html", "path of the 404 error page")
	staticFS = flag.String("static", "", "directory to serve under /static")
)

func main() {
	flag.Parse()

	if err := run(context.Background()); err != nil {
		log.Fatalln(err)
	}
}

func run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	shutdownTelemetry, err := telemetry.Setup(ctx, "basalt")
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	logger := otelslog.NewLogger("basalt")

	server := http.NewServer("basalt")
	logMw := http.LogMiddleware(logger)
	recoverMw := http.RecoverMiddleware(logger)

	pastes := handler.NewPasteStore()

	router := server.Router
	if err := router.GET("/hello", handler.Hello, logMw, recoverMw); err != nil {
		return err
	}
	if err := router.GET("/mirror", handler.Mirror, logMw, recoverMw); err != nil {
		return err
	}
	if err := router.POST("/paste", pastes.Create, logMw, recoverMw); err != nil {
		return err
	}
	if err := router.GET("/paste/*", pastes.Fetch, logMw, recoverMw); err != nil {
		return err
	}

	if *staticFS != "" {
		files := handler.NewFileServer()
		if err := files.MapDir("/static", *staticFS); err != nil {
			return err
		}
		if err := router.GET("/static/*", files.Handler(), logMw); err != nil {
			return err
		}
	}

	if err := router.GET("*", handler.NotFound(*page404), logMw); err != nil {
		return err
	}

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- server.ListenAndServe(ctx, *addr)
	}()

	select {
	case err := <-serverErrCh:
		return err
	case <-ctx.Done():
		stop()
	}

	return server.Shutdown(context.Background())
}
