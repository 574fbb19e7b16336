package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	httpAdapter "github.com/aretw0/minimaxviz/pkg/adapters/http"
	"github.com/aretw0/minimaxviz/pkg/adapters/mcp"
	"github.com/aretw0/minimaxviz/pkg/observability"
	"github.com/aretw0/minimaxviz/pkg/session"
)

const shutdownTimeout = 5 * time.Second

// newManager builds the session manager shared by the servers.
func (a *App) newManager(metrics *observability.Metrics) *session.Manager {
	hooks := observability.LogHooks(a.Logger)
	if metrics != nil {
		hooks = hooks.Merge(metrics.Hooks())
	}
	return session.NewManager(a.Store(),
		session.WithLoader(a.Loader),
		session.WithLogger(a.Logger),
		session.WithLifecycleHooks(hooks),
	)
}

// Serve runs the HTTP API on Config.Addr until ctx is done.
func (a *App) Serve(ctx context.Context) error {
	metrics := observability.NewMetrics()
	manager := a.newManager(metrics)
	metrics.TrackSessions(manager.Len)

	handler, err := httpAdapter.NewHandler(manager,
		httpAdapter.WithMetrics(metrics),
		httpAdapter.WithLogger(a.Logger),
	)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              a.Config.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		a.Logger.Info("HTTP server listening", "address", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		a.Logger.Info("shutdown started")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.Logger.Error("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
			return srv.Close()
		}
		a.Logger.Info("server stopped gracefully")
		return nil
	}
}

// ServeMCP runs the MCP server over stdio or SSE (on Config.Addr).
func (a *App) ServeMCP(ctx context.Context, transport string) error {
	srv := mcp.NewServer(a.newManager(nil), a.Logger)
	switch transport {
	case "", "stdio":
		a.Logger.Info("starting MCP server (stdio)")
		return srv.ServeStdio()
	case "sse":
		return srv.ServeSSE(ctx, a.Config.Addr)
	}
	return fmt.Errorf("unknown transport %q (expected stdio or sse)", transport)
}
