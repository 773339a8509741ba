// SPDX-License-Identifier: MIT

// Command navd serves indoor navigation over HTTP.
//
// The building comes from an HCL file (-building) or from Neo4j
// (-neo4j-url). Live congestion arrives over NATS when -nats-url is set.
// Every flag falls back to an environment variable.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/katalvlaran/indoornav/building"
	"github.com/katalvlaran/indoornav/congestion"
	"github.com/katalvlaran/indoornav/internal/ctxlog"
	"github.com/katalvlaran/indoornav/navigator"
	"github.com/katalvlaran/indoornav/server"
)

// Config holds flag and environment configuration.
type Config struct {
	Addr         string
	BuildingFile string
	BuildingID   string
	DefaultStart string
	Neo4jURL     string
	Neo4jUser    string
	Neo4jPass    string
	Neo4jDB      string
	NATSURL      string
	CORSOrigin   string
	RateLimit    float64
	RateBurst    int
	LogLevel     string
}

func loadConfig(args []string) (Config, error) {
	fs := flag.NewFlagSet("navd", flag.ContinueOnError)
	var cfg Config
	fs.StringVar(&cfg.Addr, "addr", envOr("NAVD_ADDR", ":8080"), "listen address")
	fs.StringVar(&cfg.BuildingFile, "building", envOr("NAVD_BUILDING_FILE", ""), "HCL building file")
	fs.StringVar(&cfg.BuildingID, "building-id", envOr("NAVD_BUILDING_ID", "main"), "building ID for Neo4j and NATS")
	fs.StringVar(&cfg.DefaultStart, "default-start", envOr("NAVD_DEFAULT_START", navigator.DefaultStart), "start location when a request gives none")
	fs.StringVar(&cfg.Neo4jURL, "neo4j-url", envOr("NEO4J_URL", ""), "Neo4j URL; overrides -building")
	fs.StringVar(&cfg.Neo4jUser, "neo4j-user", envOr("NEO4J_USER", "neo4j"), "Neo4j user")
	fs.StringVar(&cfg.Neo4jPass, "neo4j-pass", envOr("NEO4J_PASS", "password"), "Neo4j password")
	fs.StringVar(&cfg.Neo4jDB, "neo4j-db", envOr("NEO4J_DB", ""), "Neo4j database")
	fs.StringVar(&cfg.NATSURL, "nats-url", envOr("NATS_URL", ""), "NATS URL for congestion updates")
	fs.StringVar(&cfg.CORSOrigin, "cors-origin", envOr("CORS_ORIGIN", ""), "allowed CORS origin; empty allows all")
	fs.Float64Var(&cfg.RateLimit, "rate", envFloat("NAVD_RATE", float64(server.DefaultRate)), "requests per second")
	fs.IntVar(&cfg.RateBurst, "burst", int(envFloat("NAVD_BURST", server.DefaultBurst)), "request burst")
	fs.StringVar(&cfg.LogLevel, "log-level", envOr("LOG_LEVEL", "info"), "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.BuildingFile == "" && cfg.Neo4jURL == "" {
		return Config{}, errors.New("navd: one of -building or -neo4j-url is required")
	}
	if cfg.RateBurst < 1 {
		return Config{}, fmt.Errorf("navd: burst must be at least 1, got %d", cfg.RateBurst)
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("navd exited with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = ctxlog.WithLogger(ctx, logger)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))

	// --- Building source ---
	var src building.Source
	if cfg.Neo4jURL != "" {
		driver, err := neo4j.NewDriverWithContext(cfg.Neo4jURL, neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPass, ""))
		if err != nil {
			return fmt.Errorf("neo4j driver: %w", err)
		}
		defer driver.Close(context.Background())
		if err := driver.VerifyConnectivity(ctx); err != nil {
			return fmt.Errorf("neo4j connect: %w", err)
		}
		src = building.NewNeo4jSource(driver, cfg.BuildingID, building.WithDatabase(cfg.Neo4jDB))
	} else {
		src = building.HCLSource{Path: cfg.BuildingFile}
	}

	g, _, err := building.Load(ctx, src, cfg.DefaultStart)
	if err != nil {
		return fmt.Errorf("load building: %w", err)
	}
	nav, err := navigator.New(g, navigator.WithLogger(logger), navigator.WithDefaultStart(cfg.DefaultStart))
	if err != nil {
		return err
	}

	opts := []server.Option{
		server.WithLogger(logger),
		server.WithReloadSource(src),
		server.WithRateLimit(rate.Limit(cfg.RateLimit), cfg.RateBurst),
	}
	if cfg.CORSOrigin != "" {
		opts = append(opts, server.WithAllowOrigins(cfg.CORSOrigin))
	}

	// --- Congestion feed ---
	if cfg.NATSURL != "" {
		nc, err := nats.Connect(cfg.NATSURL, nats.Name("navd"), nats.MaxReconnects(-1))
		if err != nil {
			return fmt.Errorf("nats connect: %w", err)
		}
		defer nc.Drain()

		feed := congestion.NewFeed(nc, cfg.BuildingID, congestion.WithLogger(logger))
		if err := feed.Start(); err != nil {
			return err
		}
		defer feed.Stop()
		opts = append(opts, server.WithSnapshots(feed))
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      server.New(nav, opts...).Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// --- Serve until signalled ---
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		logger.Info("navd listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-egCtx.Done()
		logger.Info("shutting down")
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})
	return eg.Wait()
}
