// Command import-network loads networks into the database used by the API.
//
// Usage:
//
//	import-network -db data/metroplanner.db city.network
//	import-network -db data/metroplanner.db -route-types 1,2 -name "Barcelona" gtfs.zip
//	import-network -url https://example.org/gtfs.zip -name "Barcelona"
//
// Files ending in .zip are read as static GTFS feeds; anything else is read
// as a network text file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/mini-rodalies-3d/metroplanner/internal/logging"
	"github.com/mini-rodalies-3d/metroplanner/internal/network"
	"github.com/mini-rodalies-3d/metroplanner/internal/repository"
	"github.com/mini-rodalies-3d/metroplanner/internal/static"
	"github.com/mini-rodalies-3d/metroplanner/internal/static/gtfs"
)

func main() {
	_ = godotenv.Load(".env")

	dbPath := flag.String("db", "data/metroplanner.db", "Path to SQLite database")
	postgresURL := flag.String("postgres", os.Getenv("DATABASE_URL"), "PostgreSQL URL; used instead of -db when set")
	name := flag.String("name", "", "Network name (defaults to the file's name record or the GTFS agency)")
	routeTypes := flag.String("route-types", "1", "Comma-separated GTFS route types to import")
	url := flag.String("url", "", "Download a GTFS zip from this URL before importing")
	list := flag.Bool("list", false, "List stored networks and exit")
	flag.Parse()

	logging.Init()
	ctx := context.Background()

	store, err := openStore(ctx, *dbPath, *postgresURL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()

	if *list {
		names, err := store.ListNetworks(ctx)
		if err != nil {
			log.Fatalf("Failed to list networks: %v", err)
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return
	}

	types, err := parseRouteTypes(*routeTypes)
	if err != nil {
		log.Fatalf("Invalid -route-types: %v", err)
	}

	files := flag.Args()
	if *url != "" {
		dest := filepath.Join(os.TempDir(), "metroplanner-gtfs.zip")
		log.Printf("Downloading %s...", *url)
		if err := gtfs.Download(ctx, *url, dest); err != nil {
			log.Fatalf("Failed to download feed: %v", err)
		}
		defer os.Remove(dest)
		files = append(files, dest)
	}
	if len(files) == 0 {
		log.Fatal("No input: pass network files, GTFS zips or -url")
	}

	failed := 0
	for _, path := range files {
		n, err := load(path, *name, types)
		if err != nil {
			log.Printf("Warning: skipping %s: %v", path, err)
			failed++
			continue
		}
		if err := store.SaveNetwork(ctx, n); err != nil {
			log.Printf("Warning: failed to save %s: %v", path, err)
			failed++
			continue
		}
		log.Printf("Imported %q from %s: %d stations, %d lines", n.Name(), path, len(n.Stations()), len(n.Lines()))
	}

	if failed > 0 {
		log.Fatalf("%d of %d imports failed", failed, len(files))
	}
	log.Println("Import complete")
}

func openStore(ctx context.Context, dbPath, postgresURL string) (repository.NetworkStore, error) {
	if postgresURL != "" {
		pg, err := repository.ConnectPostgres(ctx, postgresURL)
		if err != nil {
			return nil, err
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			pg.Close()
			return nil, err
		}
		return pg, nil
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	sqlite, err := repository.ConnectSQLite(dbPath)
	if err != nil {
		return nil, err
	}
	if err := sqlite.EnsureSchema(ctx); err != nil {
		sqlite.Close()
		return nil, err
	}
	return sqlite, nil
}

func load(path, name string, routeTypes []int) (*network.Network, error) {
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		feed, err := gtfs.ParseFile(path)
		if err != nil {
			return nil, err
		}
		return static.BuildNetwork(feed, static.Options{Name: name, RouteTypes: routeTypes})
	}

	n, err := network.ParseFile(path)
	if err != nil {
		return nil, err
	}
	if name != "" {
		n.SetName(name)
	}
	if n.Name() == "" {
		return nil, fmt.Errorf("network has no name; pass -name")
	}
	return n, nil
}

func parseRouteTypes(s string) ([]int, error) {
	var out []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("route type %q: %w", field, err)
		}
		out = append(out, v)
	}
	return out, nil
}
