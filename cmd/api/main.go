package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mini-rodalies-3d/metroplanner/internal/api"
	"github.com/mini-rodalies-3d/metroplanner/internal/config"
	"github.com/mini-rodalies-3d/metroplanner/internal/logging"
	"github.com/mini-rodalies-3d/metroplanner/internal/metrics"
	"github.com/mini-rodalies-3d/metroplanner/internal/network"
	"github.com/mini-rodalies-3d/metroplanner/internal/realtime"
	"github.com/mini-rodalies-3d/metroplanner/internal/repository"
)

func main() {
	configPath := flag.String("config", "", "Optional YAML config file (overrides environment)")
	flag.Parse()

	// Load base .env first, then .env.local which overrides it
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	logging.Init()
	log.Println("Starting metro planner API...")

	cfg := config.Load()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadFile(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	} else if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var store repository.NetworkStore
	if cfg.NetworkName != "" || cfg.RecordPlans {
		s, err := openStore(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer s.Close()
		store = s
	}

	net, err := loadNetwork(ctx, cfg, store)
	if err != nil {
		log.Fatalf("Failed to load network: %v", err)
	}
	metrics.SetNetwork(len(net.Stations()), len(net.Lines()))
	log.Printf("Network %q loaded: %d stations, %d lines", net.Name(), len(net.Stations()), len(net.Lines()))

	opts := api.Options{
		Network:        net,
		Stats:          metrics.NewJourneyStats(),
		AllowedOrigins: cfg.AllowedOrigins,
	}
	if cfg.RecordPlans {
		opts.PlanLog = store
	}
	if cfg.AlertsURL != "" {
		monitor := realtime.NewMonitor(realtime.NewClient(cfg.AlertsURL), cfg.AlertsPollInterval)
		go monitor.Run(ctx)
		opts.Disruptions = monitor
		log.Printf("Watching service alerts at %s every %v", cfg.AlertsURL, cfg.AlertsPollInterval)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("API server starting on :%s", cfg.Port)
		log.Println("  GET /health")
		log.Println("  GET /api/stations, /api/stations/{code}")
		log.Println("  GET /api/lines, /api/lines/{code}")
		log.Println("  GET /api/routes?from=&to=&objective=stops|transfers")
		log.Println("  GET /api/disruptions, /api/plans/recent, /api/stats")
		log.Println("  GET /metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Println("Shutting down...")
	cancel()
	shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Warning: graceful shutdown failed: %v", err)
	}
	log.Println("Goodbye!")
}

// openStore prefers PostgreSQL when DATABASE_URL is set
func openStore(ctx context.Context, cfg *config.Config) (repository.NetworkStore, error) {
	if cfg.DatabaseURL != "" {
		pg, err := repository.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			pg.Close()
			return nil, err
		}
		log.Println("Using PostgreSQL store")
		return pg, nil
	}

	sqlite, err := repository.ConnectSQLite(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}
	if err := sqlite.EnsureSchema(ctx); err != nil {
		sqlite.Close()
		return nil, err
	}
	return sqlite, nil
}

func loadNetwork(ctx context.Context, cfg *config.Config, store repository.NetworkStore) (*network.Network, error) {
	if cfg.NetworkFile != "" {
		return network.ParseFile(cfg.NetworkFile)
	}
	return store.LoadNetwork(ctx, cfg.NetworkName)
}
