// Command plan prints the route between two stations.
//
//	plan -network city.network -from HBR -to AIR -objective transfers
//	plan -db data/metroplanner.db -name "City" -from HBR -to AIR -format json
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/mini-rodalies-3d/metroplanner/internal/models"
	"github.com/mini-rodalies-3d/metroplanner/internal/network"
	"github.com/mini-rodalies-3d/metroplanner/internal/planner"
	"github.com/mini-rodalies-3d/metroplanner/internal/realtime"
	"github.com/mini-rodalies-3d/metroplanner/internal/repository"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("plan: %v", err)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("plan", flag.ContinueOnError)
	networkFile := fs.String("network", "", "Network text file")
	dbPath := fs.String("db", "", "SQLite database holding imported networks")
	databaseURL := fs.String("postgres", "", "PostgreSQL URL holding imported networks")
	name := fs.String("name", "", "Network name when loading from a database")
	from := fs.String("from", "", "Origin station code")
	to := fs.String("to", "", "Destination station code")
	objective := fs.String("objective", "stops", "stops or transfers")
	format := fs.String("format", "text", "text or json")
	alertsURL := fs.String("alerts", "", "GTFS-RT alerts feed; closed lines and stations are avoided")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := models.PlanRequest{From: *from, To: *to, Objective: *objective}
	if _, err := req.Validate(); err != nil {
		return err
	}
	obj, err := planner.ParseObjective(*objective)
	if err != nil {
		return err
	}

	net, err := load(ctx, *networkFile, *dbPath, *databaseURL, *name)
	if err != nil {
		return err
	}

	var view network.View = net
	if *alertsURL != "" {
		monitor := realtime.NewMonitor(realtime.NewClient(*alertsURL), 0)
		if err := monitor.Poll(ctx); err != nil {
			return fmt.Errorf("failed to read alerts: %w", err)
		}
		view = monitor.Current().Apply(net, net.Name())
	}

	origin := network.Lookup(view, *from)
	destination := network.Lookup(view, *to)
	if origin == nil || destination == nil {
		return fmt.Errorf("%w: %s or %s is not served", network.ErrUnknownStation, *from, *to)
	}

	p, err := planner.New(obj, view)
	if err != nil {
		return err
	}
	journey, err := planner.Plan(p, origin, destination)
	if err != nil {
		return err
	}

	switch *format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(models.NewPlanResponse(uuid.New(), net.Name(), p.Objective(), journey))
	case "text":
		return printJourney(out, p, journey)
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
}

func load(ctx context.Context, file, dbPath, databaseURL, name string) (*network.Network, error) {
	switch {
	case file != "":
		return network.ParseFile(file)
	case databaseURL != "":
		store, err := repository.ConnectPostgres(ctx, databaseURL)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.LoadNetwork(ctx, name)
	case dbPath != "":
		store, err := repository.ConnectSQLite(dbPath)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.LoadNetwork(ctx, name)
	default:
		return nil, errors.New("one of -network, -db or -postgres is required")
	}
}

func printJourney(out io.Writer, p planner.Planner, j planner.Journey) error {
	var err error
	switch j.Outcome {
	case planner.Trivial:
		_, err = fmt.Fprintf(out, "You are already at %s\n", j.From)
	case planner.Unreachable:
		_, err = fmt.Fprintf(out, "No route from %s to %s\n", j.From, j.To)
	default:
		_, err = fmt.Fprintf(out, "%s\n%d stops, %d transfers (%s)\n", j.Route, j.Stops, j.Transfers, p.Name())
	}
	return err
}
