// Command assetd loads a game's image and sound manifests, keeps the decoded
// assets in memory and serves playback control over HTTP.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/brianhealey/assetd/internal/api"
	"github.com/brianhealey/assetd/internal/assets"
	"github.com/brianhealey/assetd/internal/auth"
	"github.com/brianhealey/assetd/internal/config"
	"github.com/brianhealey/assetd/internal/events"
	"github.com/brianhealey/assetd/internal/identity"
	"github.com/brianhealey/assetd/internal/media"
	"github.com/brianhealey/assetd/internal/zeroconf"
)

func main() {
	var (
		addr      = flag.String("addr", ":8080", "HTTP listen address")
		cfgDir    = flag.String("config-dir", "", "config directory (default: ~/.config/assetd)")
		root      = flag.String("assets", ".", "document root: a directory or an http(s) base URL")
		manifest  = flag.String("manifest", "", "manifest file (default: <config-dir>/assets.yaml)")
		workers   = flag.Int("workers", 8, "assets loaded concurrently")
		fetchRate = flag.Float64("fetch-rate", 0, "remote fetches per second, 0 for unlimited")
		autoplay  = flag.Bool("autoplay", true, "allow sounds to start without a user gesture")
		noMDNS    = flag.Bool("no-mdns", false, "do not advertise the API over mDNS")
		debug     = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	// Configure logging
	logLevel := slog.LevelInfo
	if *debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	// Resolve config directory
	if *cfgDir == "" {
		*cfgDir = config.DefaultConfigDir()
	}
	if err := os.MkdirAll(*cfgDir, 0755); err != nil {
		slog.Error("cannot create config directory", "path", *cfgDir, "err", err)
		os.Exit(1)
	}

	// Graceful shutdown context
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Manifests
	var store config.Store = config.NewFileStore(*cfgDir)
	if *manifest != "" {
		store = config.NewFileStoreAt(*manifest)
	}
	manifests, err := store.Load()
	if err != nil {
		slog.Error("cannot load manifests", "path", store.Path(), "err", err)
		os.Exit(1)
	}

	// Media engine
	fetcher, err := media.NewFetcher(*root, *fetchRate)
	if err != nil {
		slog.Error("cannot open asset root", "root", *root, "err", err)
		os.Exit(1)
	}
	engine := media.NewEngine(fetcher, media.WithAutoplay(*autoplay))

	// Event bus
	bus := events.NewBus()

	// Asset manager; the load pass runs in the background and the API
	// reports loaded=false until it completes.
	mgr := assets.New(engine, *manifests, assets.WithWorkers(*workers), assets.WithPublisher(bus))
	go mgr.LoadAssets(ctx)

	// Auth service
	authSvc, err := auth.NewService(*cfgDir)
	if err != nil {
		slog.Error("auth service initialization failed", "err", err)
		os.Exit(1)
	}
	defer authSvc.Close()
	if authSvc.IsOpenMode() {
		slog.Warn("no API keys configured, API is open", "path", *cfgDir)
	}

	version := identity.GetVersionFromDir(*cfgDir)

	// Zeroconf mDNS registration
	if !*noMDNS {
		port := 80
		if _, p, err := net.SplitHostPort(*addr); err == nil {
			if n, err := strconv.Atoi(p); err == nil {
				port = n
			}
		}
		zc := zeroconf.New(identity.GetHostname(), port, version)
		go func() {
			if err := zc.Start(ctx); err != nil {
				slog.Warn("zeroconf failed", "err", err)
			}
		}()
	}

	// HTTP server
	srv := &http.Server{
		Addr:         *addr,
		Handler:      api.NewRouter(mgr, authSvc, bus, version),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // 0 = no timeout (needed for SSE)
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("assetd listening", "addr", *addr, "root", *root, "manifest", store.Path(), "version", version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "err", err)
			cancel()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	slog.Info("shutting down...")

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutCancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		slog.Warn("server shutdown error", "err", err)
	}

	slog.Info("shutdown complete")
}
