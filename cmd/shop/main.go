package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	cartapp "github.com/nightscoops/shopcore/internal/cart/app"
	cartdomain "github.com/nightscoops/shopcore/internal/cart/domain"
	"github.com/nightscoops/shopcore/internal/kv"
	"github.com/nightscoops/shopcore/internal/prefs"
	"github.com/nightscoops/shopcore/internal/pricing"
	shopapp "github.com/nightscoops/shopcore/internal/shop/app"
	"github.com/nightscoops/shopcore/internal/shop/rest"
	"github.com/nightscoops/shopcore/pkg/config"
	"github.com/nightscoops/shopcore/pkg/logger"
	"github.com/nightscoops/shopcore/pkg/metrics"
	"github.com/nightscoops/shopcore/pkg/shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Options{Service: "shop", Env: cfg.AppEnv, Level: cfg.LogLevel, AddSource: true})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	storage, err := kv.Open(cfg.PrefsDriver, cfg.PrefsPath)
	if err != nil {
		log.Error("open preference storage", slog.Any("err", err))
		os.Exit(1)
	}
	defer storage.Close()

	prefStore := prefs.NewStore(storage)
	if err := prefStore.Load(); err != nil {
		// Corrupt or missing counters reset per mapping; the shop runs on.
		log.Warn("preference counters partially reset", slog.Any("err", err))
	}

	m := metrics.New()
	cartSvc := cartapp.NewService(logView{log: log})
	ctrl := shopapp.NewController(cartSvc, prefStore, log, m)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.Handle("/metrics", m.Handler())
	rest.NewServer(ctrl, log).Register(mux)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("bye")
}

// logView satisfies the cart view port for a headless process: renders are
// debug log lines, the pulse is a single acknowledgment entry.
type logView struct {
	log *slog.Logger
}

func (v logView) Render(lines []cartdomain.Line, total pricing.Cents) {
	v.log.Debug("cart rendered",
		slog.Int("lines", len(lines)),
		slog.String("total", total.String()))
}

func (v logView) Pulse() {
	v.log.Debug("cart pulse")
}
