// Command api runs the HTTP server for the nurse job matching backend.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/InsanelyAvner/fp-nurse-app-sub000/internal/logger"
	"github.com/InsanelyAvner/fp-nurse-app-sub000/internal/server"
)

func main() {
	zl, err := logger.New(gin.Mode() == gin.ReleaseMode, gin.IsDebugging())
	if err != nil {
		log.Fatalf("Failed to build logger: %s", err)
	}
	defer zl.Sync() //nolint:errcheck

	srv, err := server.NewServer(zl)
	if err != nil {
		log.Fatalf("Server failed to initialize: %s", err)
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %s", err)
		}
	}()
	zl.Info("server started", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %s", err)
	}
	zl.Info("server stopped")
}
