package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/rocketscienceinc/tictactoe-api/internal/metrics"
)

const shutdownTimeout = 5 * time.Second

type Options struct {
	AllowedOrigin  string
	MovesPerSecond float64
	MoveBurst      int
}

type Server struct {
	logger  *slog.Logger
	games   gameService
	metrics *metrics.Recorder
	router  *mux.Router
	limiter *RateLimiter

	allowedOrigin string
}

func NewServer(logger *slog.Logger, games gameService, recorder *metrics.Recorder, opts Options) *Server {
	if opts.AllowedOrigin == "" {
		opts.AllowedOrigin = "*"
	}

	server := &Server{
		logger:        logger.With("component", "rest"),
		games:         games,
		metrics:       recorder,
		router:        mux.NewRouter(),
		limiter:       NewRateLimiter(opts.MovesPerSecond, opts.MoveBurst),
		allowedOrigin: opts.AllowedOrigin,
	}

	server.setupRoutes()

	return server
}

func (that *Server) setupRoutes() {
	that.router.Use(that.loggingMiddleware)
	that.router.Use(that.corsMiddleware)

	that.router.HandleFunc("/", that.healthHandler).Methods(http.MethodGet)
	that.router.HandleFunc("/ping", that.pingHandler).Methods(http.MethodGet)
	that.router.Handle("/metrics", that.metrics.Handler()).Methods(http.MethodGet)

	that.router.HandleFunc("/players", that.createPlayer).Methods(http.MethodPost, http.MethodOptions)
	that.router.HandleFunc("/players/{id}", that.getPlayer).Methods(http.MethodGet)

	that.router.HandleFunc("/games", that.createGame).Methods(http.MethodPost, http.MethodOptions)
	that.router.HandleFunc("/games", that.listGames).Methods(http.MethodGet)
	that.router.HandleFunc("/games/{id}", that.getGame).Methods(http.MethodGet)
	that.router.HandleFunc("/games/{id}/join", that.joinGame).Methods(http.MethodPost, http.MethodOptions)
	that.router.Handle("/games/{id}/moves", that.limiter.Middleware(http.HandlerFunc(that.submitMove))).
		Methods(http.MethodPost, http.MethodOptions)
	that.router.HandleFunc("/games/{id}/history", that.getHistory).Methods(http.MethodGet)
}

func (that *Server) Handler() http.Handler {
	return that.router
}

// Start - serves HTTP on port until ctx is done, then shuts down gracefully.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go that.limiter.Cleanup(ctx)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
