package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-minimax/pkg/handlers"
)

const shutdownTimeout = 5 * time.Second

type gameUseCase interface {
	CreateSession(ctx context.Context) (usecase.CreateSessionResult, error)
	Play(ctx context.Context, sessionID string, position int) (usecase.PlayResult, error)
	GetSession(ctx context.Context, sessionID string) (usecase.SessionView, error)
	ResetSession(ctx context.Context, sessionID string) error
	DestroySession(ctx context.Context, sessionID string) error
}

type Server struct {
	logger *slog.Logger
	game   gameUseCase
}

func New(logger *slog.Logger, game gameUseCase) *Server {
	return &Server{
		logger: logger.With("component", "rest"),
		game:   game,
	}
}

// Router - builds the HTTP routes.
func (that *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(that.requestLogger)
	router.Use(middleware.Recoverer)

	router.Get("/ping", handlers.PingHandler)

	router.Route("/api", func(r chi.Router) {
		r.Post("/play", that.handlePlay)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", that.handleCreateSession)
			r.Get("/{id}", that.handleGetSession)
			r.Post("/{id}/reset", that.handleResetSession)
			r.Delete("/{id}", that.handleDestroySession)
		})
	})

	return router
}

// Start - serves HTTP until ctx is canceled, then shuts down gracefully.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

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

func (that *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		that.logger.Debug("request served",
			"requestID", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}
