package repository

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mini-rodalies-3d/metroplanner/internal/network"
)

//go:embed schema_postgres.sql
var postgresSchema string

// PostgresStore keeps networks in PostgreSQL
type PostgresStore struct {
	pool *pgxpool.Pool
}

// ConnectPostgres opens a connection pool and checks it is reachable
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// EnsureSchema creates tables if they don't exist
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) SaveNetwork(ctx context.Context, n *network.Network) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// stations, lines and stops cascade from networks
	if _, err := tx.Exec(ctx, "DELETE FROM networks WHERE name = $1", n.Name()); err != nil {
		return fmt.Errorf("failed to clear network: %w", err)
	}
	if _, err := tx.Exec(ctx, "INSERT INTO networks (name, imported_at) VALUES ($1, NOW())", n.Name()); err != nil {
		return fmt.Errorf("failed to insert network: %w", err)
	}

	batch := &pgx.Batch{}
	for i, st := range n.Stations() {
		batch.Queue("INSERT INTO network_stations (network, code, name, position) VALUES ($1, $2, $3, $4)",
			n.Name(), st.Code(), st.Name(), i)
	}
	for i, l := range n.Lines() {
		batch.Queue("INSERT INTO network_lines (network, code, circular, one_way, position) VALUES ($1, $2, $3, $4, $5)",
			n.Name(), l.Code(), l.Circular(), l.OneWay(), i)
		for seq, st := range l.Stops() {
			batch.Queue("INSERT INTO network_line_stops (network, line_code, seq, station_code) VALUES ($1, $2, $3, $4)",
				n.Name(), l.Code(), seq, st.Code())
		}
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert network rows: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit network: %w", err)
	}
	return nil
}

func (s *PostgresStore) LoadNetwork(ctx context.Context, name string) (*network.Network, error) {
	var found string
	err := s.pool.QueryRow(ctx, "SELECT name FROM networks WHERE name = $1", name).Scan(&found)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query network: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		"SELECT code, name FROM network_stations WHERE network = $1 ORDER BY position", name)
	if err != nil {
		return nil, fmt.Errorf("failed to query stations: %w", err)
	}
	stations, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) ([2]string, error) {
		var r [2]string
		err := row.Scan(&r[0], &r[1])
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan stations: %w", err)
	}

	rows, err = s.pool.Query(ctx,
		"SELECT code, circular, one_way FROM network_lines WHERE network = $1 ORDER BY position", name)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines: %w", err)
	}
	lines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (lineRow, error) {
		var r lineRow
		err := row.Scan(&r.code, &r.circular, &r.oneWay)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan lines: %w", err)
	}

	rows, err = s.pool.Query(ctx,
		"SELECT line_code, station_code FROM network_line_stops WHERE network = $1 ORDER BY line_code, seq", name)
	if err != nil {
		return nil, fmt.Errorf("failed to query line stops: %w", err)
	}
	defer rows.Close()
	stops := make(map[string][]string)
	for rows.Next() {
		var line, station string
		if err := rows.Scan(&line, &station); err != nil {
			return nil, fmt.Errorf("failed to scan line stop: %w", err)
		}
		stops[line] = append(stops[line], station)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read line stops: %w", err)
	}

	return assemble(name, stations, lines, stops)
}

func (s *PostgresStore) ListNetworks(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, "SELECT name FROM networks ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query networks: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan networks: %w", err)
	}
	return names, nil
}

func (s *PostgresStore) RecordPlan(ctx context.Context, rec PlanRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO plan_log (id, network, objective, from_station, to_station, outcome, segments, stops, transfers, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		planID(rec.ID), rec.Network, rec.Objective, rec.From, rec.To, rec.Outcome,
		rec.Segments, rec.Stops, rec.Transfers, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record plan: %w", err)
	}
	return nil
}

func (s *PostgresStore) RecentPlans(ctx context.Context, limit int) ([]PlanRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id::text, network, objective, from_station, to_station, outcome, segments, stops, transfers, created_at
		FROM plan_log
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query plan log: %w", err)
	}
	defer rows.Close()

	var out []PlanRecord
	for rows.Next() {
		var rec PlanRecord
		var id string
		if err := rows.Scan(&id, &rec.Network, &rec.Objective, &rec.From, &rec.To, &rec.Outcome,
			&rec.Segments, &rec.Stops, &rec.Transfers, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		if rec.ID, err = parsePlanID(id); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
