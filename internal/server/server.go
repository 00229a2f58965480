package server

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/akolanti/docuquery/internal/adapter/utils"
	"github.com/akolanti/docuquery/internal/config"
	"github.com/akolanti/docuquery/internal/middleware"
	"github.com/akolanti/docuquery/pkg/logger_i"
)

var (
	server  *http.Server
	_logger *logger_i.Logger
)

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	CloseServices    context.CancelFunc
}

func CreateServer(listenAddr string) {
	_logger = logger_i.NewLogger("Server")

	r := utils.GetRouter()

	r.Router.Get("/health", middleware.GetHandler)

	r.Router.Post("/api/documents/upload", middleware.UploadDocumentHandler)
	r.Router.Post("/api/documents/query", middleware.QueryDocumentHandler)
	r.Router.Get("/api/documents", middleware.ListDocumentsHandler)
	r.Router.Get("/api/documents/{id}", middleware.GetDocumentHandler)
	r.Router.Delete("/api/documents/{id}", middleware.DeleteDocumentHandler)

	r.Router.Get("/api/vector-store/stats", middleware.VectorStoreStatsHandler)
	r.Router.Post("/api/vector-store/reset", middleware.VectorStoreResetHandler)

	server = &http.Server{
		Addr:         listenAddr,
		Handler:      r.Router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	_logger.Info("Server is listening at", "address", listenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_logger.Error("Server crashed", "error :", err.Error(), "addr", listenAddr)
	}
}

func ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	println("\nServer is shutting down", state)

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		server.SetKeepAlivesEnabled(false)

		if err := server.Shutdown(ctx); err != nil {
			_logger.Error("Could not shutdown gracefully: %s", err)
		}

		shutdownParams.CloseServices()
		close(shutdownParams.StopExecution)
		close(done)
	}()

	select {
	case <-done:
		_logger.Info("Gracefully is shutting down")
	case <-ctx.Done():
		_logger.Info("Force Shut down")
		os.Exit(1)
	}
}
