package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mini-rodalies-3d/metroplanner/internal/network"
)

//go:embed schema.sql
var sqliteSchema string

// planTimeLayout is fixed width so stored timestamps sort as text
const planTimeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLiteStore keeps networks in a SQLite file with write serialization
type SQLiteStore struct {
	conn    *sql.DB
	writeMu sync.Mutex // SQLite has a single writer
}

// ConnectSQLite opens a SQLite database with WAL mode enabled
func ConnectSQLite(dbPath string) (*SQLiteStore, error) {
	dsn := "file:" + dbPath + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(time.Hour)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
	} {
		if _, err := conn.Exec(pragma); err != nil {
			log.Printf("Warning: failed to set %s: %v", pragma, err)
		}
	}

	log.Printf("Connected to SQLite database: %s", dbPath)
	return &SQLiteStore{conn: conn}, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

// EnsureSchema creates tables if they don't exist
func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if _, err := s.conn.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	log.Println("Database schema ensured (from embedded schema.sql)")
	return nil
}

func (s *SQLiteStore) SaveNetwork(ctx context.Context, n *network.Network) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"network_line_stops", "network_lines", "network_stations", "networks"} {
		column := "network"
		if table == "networks" {
			column = "name"
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE "+column+" = ?", n.Name()); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO networks (name, imported_at) VALUES (?, ?)",
		n.Name(), time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to insert network: %w", err)
	}

	for i, st := range n.Stations() {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO network_stations (network, code, name, position) VALUES (?, ?, ?, ?)",
			n.Name(), st.Code(), st.Name(), i); err != nil {
			return fmt.Errorf("failed to insert station %s: %w", st.Code(), err)
		}
	}

	for i, l := range n.Lines() {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO network_lines (network, code, circular, one_way, position) VALUES (?, ?, ?, ?, ?)",
			n.Name(), l.Code(), l.Circular(), l.OneWay(), i); err != nil {
			return fmt.Errorf("failed to insert line %s: %w", l.Code(), err)
		}
		for seq, st := range l.Stops() {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO network_line_stops (network, line_code, seq, station_code) VALUES (?, ?, ?, ?)",
				n.Name(), l.Code(), seq, st.Code()); err != nil {
				return fmt.Errorf("failed to insert stop %s of line %s: %w", st.Code(), l.Code(), err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit network: %w", err)
	}
	return nil
}

func (s *SQLiteStore) LoadNetwork(ctx context.Context, name string) (*network.Network, error) {
	var found string
	err := s.conn.QueryRowContext(ctx, "SELECT name FROM networks WHERE name = ?", name).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query network: %w", err)
	}

	stations, err := s.queryStations(ctx, name)
	if err != nil {
		return nil, err
	}
	lines, err := s.queryLines(ctx, name)
	if err != nil {
		return nil, err
	}
	stops, err := s.queryStops(ctx, name)
	if err != nil {
		return nil, err
	}
	return assemble(name, stations, lines, stops)
}

func (s *SQLiteStore) queryStations(ctx context.Context, name string) ([][2]string, error) {
	rows, err := s.conn.QueryContext(ctx,
		"SELECT code, name FROM network_stations WHERE network = ? ORDER BY position", name)
	if err != nil {
		return nil, fmt.Errorf("failed to query stations: %w", err)
	}
	defer rows.Close()

	var out [][2]string
	for rows.Next() {
		var row [2]string
		if err := rows.Scan(&row[0], &row[1]); err != nil {
			return nil, fmt.Errorf("failed to scan station: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) queryLines(ctx context.Context, name string) ([]lineRow, error) {
	rows, err := s.conn.QueryContext(ctx,
		"SELECT code, circular, one_way FROM network_lines WHERE network = ? ORDER BY position", name)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines: %w", err)
	}
	defer rows.Close()

	var out []lineRow
	for rows.Next() {
		var row lineRow
		if err := rows.Scan(&row.code, &row.circular, &row.oneWay); err != nil {
			return nil, fmt.Errorf("failed to scan line: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) queryStops(ctx context.Context, name string) (map[string][]string, error) {
	rows, err := s.conn.QueryContext(ctx,
		"SELECT line_code, station_code FROM network_line_stops WHERE network = ? ORDER BY line_code, seq", name)
	if err != nil {
		return nil, fmt.Errorf("failed to query line stops: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var line, station string
		if err := rows.Scan(&line, &station); err != nil {
			return nil, fmt.Errorf("failed to scan line stop: %w", err)
		}
		out[line] = append(out[line], station)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) ListNetworks(ctx context.Context) ([]string, error) {
	rows, err := s.conn.QueryContext(ctx, "SELECT name FROM networks ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query networks: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan network: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *SQLiteStore) RecordPlan(ctx context.Context, rec PlanRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO plan_log (id, network, objective, from_station, to_station, outcome, segments, stops, transfers, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		planID(rec.ID), rec.Network, rec.Objective, rec.From, rec.To, rec.Outcome,
		rec.Segments, rec.Stops, rec.Transfers, rec.CreatedAt.UTC().Format(planTimeLayout))
	if err != nil {
		return fmt.Errorf("failed to record plan: %w", err)
	}
	return nil
}

func (s *SQLiteStore) RecentPlans(ctx context.Context, limit int) ([]PlanRecord, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, network, objective, from_station, to_station, outcome, segments, stops, transfers, created_at
		FROM plan_log
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query plan log: %w", err)
	}
	defer rows.Close()

	var out []PlanRecord
	for rows.Next() {
		var rec PlanRecord
		var id, created string
		if err := rows.Scan(&id, &rec.Network, &rec.Objective, &rec.From, &rec.To, &rec.Outcome,
			&rec.Segments, &rec.Stops, &rec.Transfers, &created); err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		if rec.ID, err = parsePlanID(id); err != nil {
			return nil, err
		}
		if rec.CreatedAt, err = time.Parse(planTimeLayout, created); err != nil {
			return nil, fmt.Errorf("failed to parse plan time %q: %w", created, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
