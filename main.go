// Command boardsync runs the shared drawing surface server: a websocket
// endpoint that keeps every viewer of a room converged on the same
// committed stroke history.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"boardsync/internal/config"
	"boardsync/internal/discovery"
	"boardsync/internal/export"
	"boardsync/internal/gateway"
	"boardsync/internal/room"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "boardsync",
		Short: "Collaborative drawing surface server",
		Long: `boardsync keeps every viewer of a drawing room converged on the
same committed stroke history: one global order, global undo/redo, and
full-history resynchronization for late joiners.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("boardsync %s (%s, %s)\n", version, commit, runtime.Version())
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(log)

	rooms := room.NewRegistry(log)
	ws := gateway.NewHandler(rooms, cfg.DefaultRoom, cfg.SendBuffer, log)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/ws", ws.ServeHTTP)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/rooms/{room}/export.pdf", exportHandler(rooms, log))

	if cfg.MDNS {
		if port, ok := listenPort(cfg.Addr); ok {
			mdnsServer, err := discovery.Advertise(port)
			if err != nil {
				log.Warn("mDNS advertisement failed", "error", err)
			} else {
				defer mdnsServer.Shutdown()
			}
		}
	}

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.Addr, "ip", discovery.OutgoingIP(), "defaultRoom", cfg.DefaultRoom)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// exportHandler serves a PDF snapshot of a room's committed history.
// Unknown rooms 404 rather than being created; export is read-only.
func exportHandler(rooms *room.Registry, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "room")
		rm, ok := rooms.Lookup(id)
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		if err := export.PDF(w, rm.History()); err != nil {
			log.Error("export failed", "room", id, "error", err)
		}
	}
}

func listenPort(addr string) (int, bool) {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, false
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port == 0 {
		return 0, false
	}
	return port, true
}
