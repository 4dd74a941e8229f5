// Package store provides SQLite-backed persistence for named scenarios.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/niraj8/startup-runway-estimator/internal/config"
	"github.com/niraj8/startup-runway-estimator/internal/model"
	"github.com/niraj8/startup-runway-estimator/internal/runway"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNotFound is returned when no scenario has the requested name.
var ErrNotFound = errors.New("scenario not found")

// Store provides SQLite-backed scenario storage.
type Store struct {
	db *sql.DB
}

// Record is a saved scenario together with the summary of its projection at
// save time. Points is only populated by Get.
type Record struct {
	ID            string
	Name          string
	Scenario      config.Scenario
	StartingFunds float64
	InitialBurn   float64
	RunwayMonths  int
	DepletesOn    time.Time
	Truncated     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Points        []model.ProjectionPoint
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "runway")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "runway")
}

// DefaultPath returns the scenario database path.
func DefaultPath() string {
	return filepath.Join(DataDir(), "scenarios.db")
}

// Open opens or creates the scenario database at the given path.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening scenario db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores a scenario and its projection under name, replacing any
// scenario with the same name. The scenario keeps its ID and creation time
// across saves.
func (s *Store) Save(name string, sc config.Scenario, proj model.Projection) (Record, error) {
	if name == "" {
		return Record{}, errors.New("scenario name is required")
	}

	raw, err := json.Marshal(sc)
	if err != nil {
		return Record{}, fmt.Errorf("encoding scenario: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return Record{}, err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	rec := Record{
		ID:            uuid.NewString(),
		Name:          name,
		Scenario:      sc,
		StartingFunds: proj.InitialFunds,
		InitialBurn:   proj.Burn.Total().InexactFloat64(),
		RunwayMonths:  proj.RunwayMonths(),
		Truncated:     proj.Truncated,
		CreatedAt:     now,
		UpdatedAt:     now,
		Points:        proj.Points,
	}
	if d, ok := proj.DepletionDate(); ok {
		rec.DepletesOn = d
	}

	var existingID, createdStr string
	err = tx.QueryRow("SELECT scenario_id, created_at FROM scenarios WHERE name = ?", name).
		Scan(&existingID, &createdStr)
	switch {
	case err == nil:
		rec.ID = existingID
		rec.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	case !errors.Is(err, sql.ErrNoRows):
		return Record{}, err
	}

	depletes := ""
	if !rec.DepletesOn.IsZero() {
		depletes = rec.DepletesOn.Format(config.StartMonthLayout)
	}

	_, err = tx.Exec(`INSERT OR REPLACE INTO scenarios
		(scenario_id, name, scenario_json, starting_funds, initial_burn,
		 runway_months, depletes_on, truncated, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, string(raw), rec.StartingFunds, rec.InitialBurn,
		rec.RunwayMonths, depletes, boolInt(rec.Truncated),
		rec.CreatedAt.Format(time.RFC3339), rec.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return Record{}, err
	}

	if _, err := tx.Exec("DELETE FROM scenario_points WHERE scenario_id = ?", rec.ID); err != nil {
		return Record{}, err
	}
	for _, p := range proj.Points {
		_, err = tx.Exec(`INSERT INTO scenario_points
			(scenario_id, month_index, label, remaining_funds, monthly_burn)
			VALUES (?, ?, ?, ?, ?)`,
			rec.ID, p.Month, p.Label, p.RemainingFunds, p.MonthlyBurn,
		)
		if err != nil {
			return Record{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Record{}, err
	}
	return rec, nil
}

const recordColumns = `scenario_id, name, scenario_json, starting_funds, initial_burn,
	runway_months, depletes_on, truncated, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var (
		rec                   Record
		raw                   string
		depletes              sql.NullString
		truncated             int
		createdStr, updateStr string
	)
	err := row.Scan(&rec.ID, &rec.Name, &raw, &rec.StartingFunds, &rec.InitialBurn,
		&rec.RunwayMonths, &depletes, &truncated, &createdStr, &updateStr)
	if err != nil {
		return Record{}, err
	}
	if err := json.Unmarshal([]byte(raw), &rec.Scenario); err != nil {
		return Record{}, fmt.Errorf("decoding scenario %q: %w", rec.Name, err)
	}
	rec.Truncated = truncated != 0
	if depletes.Valid && depletes.String != "" {
		rec.DepletesOn, _ = time.Parse(config.StartMonthLayout, depletes.String)
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339, updateStr)
	return rec, nil
}

// Get loads a scenario and its stored projection points.
func (s *Store) Get(name string) (Record, error) {
	rec, err := scanRecord(s.db.QueryRow("SELECT "+recordColumns+" FROM scenarios WHERE name = ?", name))
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return Record{}, err
	}

	rows, err := s.db.Query(`SELECT month_index, label, remaining_funds, monthly_burn
		FROM scenario_points WHERE scenario_id = ? ORDER BY month_index`, rec.ID)
	if err != nil {
		return Record{}, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var p model.ProjectionPoint
		if err := rows.Scan(&p.Month, &p.Label, &p.RemainingFunds, &p.MonthlyBurn); err != nil {
			return Record{}, err
		}
		p.Date, _ = time.Parse(runway.MonthLabelLayout, p.Label)
		rec.Points = append(rec.Points, p)
	}
	return rec, rows.Err()
}

// List returns all saved scenarios ordered by name, without points.
func (s *Store) List() ([]Record, error) {
	rows, err := s.db.Query("SELECT " + recordColumns + " FROM scenarios ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Delete removes a scenario and its points.
func (s *Store) Delete(name string) error {
	res, err := s.db.Exec("DELETE FROM scenarios WHERE name = ?", name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil
}

// Count returns the number of saved scenarios.
func (s *Store) Count() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM scenarios").Scan(&count)
	return count, err
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
