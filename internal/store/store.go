// Package store keeps decoded capture runs in SQLite.
//
// Each run is one pass over a capture file. Frames keep the original header
// bytes, so they can be decoded again with the current codec, plus a few
// summary columns for querying.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/radiotap"
	"github.com/banshee-data/radiotap/field"
)

var (
	// ErrRunNotFound is returned for an unknown run ID.
	ErrRunNotFound = errors.New("store: run not found")

	// ErrDirtySchema is returned when a migration was interrupted part way.
	ErrDirtySchema = errors.New("store: schema is dirty")
)

// Store is a SQLite capture database.
type Store struct {
	*sql.DB
}

// Open opens or creates the database at path and applies migrations. A
// database left dirty by an interrupted migration is refused.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	// One connection serialises writers and keeps :memory: databases shared.
	db.SetMaxOpenConns(1)

	s := &Store{DB: db}
	version, dirty, err := s.MigrateVersion()
	if err != nil {
		db.Close()
		return nil, err
	}
	if dirty {
		db.Close()
		return nil, fmt.Errorf("database %s: %w (version %d)", path, ErrDirtySchema, version)
	}
	if err := s.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Run is one decoding pass over a capture source.
type Run struct {
	ID       string
	Source   string
	Started  time.Time
	Finished *time.Time
	Frames   int
	Errors   int
}

// BeginRun records the start of a run and returns it with a fresh ID.
func (s *Store) BeginRun(source string, started time.Time) (Run, error) {
	run := Run{ID: uuid.New().String(), Source: source, Started: started}
	_, err := s.Exec(`INSERT INTO runs (run_id, source, started_ns) VALUES (?, ?, ?)`,
		run.ID, run.Source, started.UnixNano())
	if err != nil {
		return Run{}, fmt.Errorf("failed to insert run: %w", err)
	}
	return run, nil
}

// FinishRun stores the final counts of a run.
func (s *Store) FinishRun(runID string, finished time.Time, frames, decodeErrors int) error {
	res, err := s.Exec(`UPDATE runs SET finished_ns = ?, frame_count = ?, error_count = ? WHERE run_id = ?`,
		finished.UnixNano(), frames, decodeErrors, runID)
	if err != nil {
		return fmt.Errorf("failed to finish run %s: %w", runID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("finish run %s: %w", runID, ErrRunNotFound)
	}
	return nil
}

// Run loads a run by ID.
func (s *Store) Run(runID string) (Run, error) {
	var (
		run      Run
		started  int64
		finished sql.NullInt64
	)
	err := s.QueryRow(`SELECT run_id, source, started_ns, finished_ns, frame_count, error_count
		FROM runs WHERE run_id = ?`, runID).
		Scan(&run.ID, &run.Source, &started, &finished, &run.Frames, &run.Errors)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("run %s: %w", runID, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("failed to load run %s: %w", runID, err)
	}
	run.Started = time.Unix(0, started)
	if finished.Valid {
		t := time.Unix(0, finished.Int64)
		run.Finished = &t
	}
	return run, nil
}

// RecordFrame stores rt, decoded from the start of data. The header bytes
// are kept as captured, so vendor namespace data survives; the 802.11 frame
// behind them is not stored.
func (s *Store) RecordFrame(runID string, index int, captured time.Time, rt radiotap.Radiotap, data []byte) error {
	if rt.Header.Length < field.MinHeaderLength || rt.Header.Length > len(data) {
		return fmt.Errorf("frame %d: header declares %d bytes, have %d: %w",
			index, rt.Header.Length, len(data), radiotap.ErrInvalidLength)
	}

	var signal, noise, channel sql.NullInt64
	var rate sql.NullFloat64
	if rt.AntennaSignal != nil {
		signal = sql.NullInt64{Int64: int64(*rt.AntennaSignal), Valid: true}
	}
	if rt.AntennaNoise != nil {
		noise = sql.NullInt64{Int64: int64(*rt.AntennaNoise), Valid: true}
	}
	if rt.Channel != nil {
		channel = sql.NullInt64{Int64: int64(rt.Channel.Freq), Valid: true}
	}
	if rt.Rate != nil {
		rate = sql.NullFloat64{Float64: float64(*rt.Rate), Valid: true}
	}

	_, err := s.Exec(`INSERT INTO frames
		(run_id, frame_index, captured_ns, header, header_length, antenna_signal, antenna_noise, rate_mbps, channel_mhz)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, index, captured.UnixNano(), data[:rt.Header.Length], rt.Header.Length,
		signal, noise, rate, channel)
	if err != nil {
		return fmt.Errorf("failed to insert frame %d: %w", index, err)
	}
	return nil
}

// Frame is a stored capture header, decoded again on load.
type Frame struct {
	Index    int
	Captured time.Time
	Radiotap radiotap.Radiotap
}

// Frames returns the frames of a run in capture order.
func (s *Store) Frames(runID string) ([]Frame, error) {
	rows, err := s.Query(`SELECT frame_index, captured_ns, header FROM frames
		WHERE run_id = ? ORDER BY frame_index`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query frames: %w", err)
	}
	defer rows.Close()

	var frames []Frame
	for rows.Next() {
		var (
			f        Frame
			captured int64
			header   []byte
		)
		if err := rows.Scan(&f.Index, &captured, &header); err != nil {
			return nil, fmt.Errorf("failed to scan frame: %w", err)
		}
		f.Captured = time.Unix(0, captured)
		if f.Radiotap, err = radiotap.FromBytes(header); err != nil {
			return nil, fmt.Errorf("stored frame %d: %w", f.Index, err)
		}
		frames = append(frames, f)
	}
	return frames, rows.Err()
}

// RunSummary aggregates the summary columns of a run.
type RunSummary struct {
	Run
	Stored     int
	MeanSignal sql.NullFloat64 // dBm over frames that carry a signal
	MinSignal  sql.NullInt64
	MaxSignal  sql.NullInt64
	Channels   []uint16 // distinct frequencies in MHz, ascending
}

// RunSummary loads a run and aggregates its stored frames.
func (s *Store) RunSummary(runID string) (RunSummary, error) {
	run, err := s.Run(runID)
	if err != nil {
		return RunSummary{}, err
	}

	sum := RunSummary{Run: run}
	err = s.QueryRow(`SELECT COUNT(*), AVG(antenna_signal), MIN(antenna_signal), MAX(antenna_signal)
		FROM frames WHERE run_id = ?`, runID).
		Scan(&sum.Stored, &sum.MeanSignal, &sum.MinSignal, &sum.MaxSignal)
	if err != nil {
		return RunSummary{}, fmt.Errorf("failed to summarise run %s: %w", runID, err)
	}

	rows, err := s.Query(`SELECT DISTINCT channel_mhz FROM frames
		WHERE run_id = ? AND channel_mhz IS NOT NULL ORDER BY channel_mhz`, runID)
	if err != nil {
		return RunSummary{}, fmt.Errorf("failed to query channels: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var mhz int64
		if err := rows.Scan(&mhz); err != nil {
			return RunSummary{}, fmt.Errorf("failed to scan channel: %w", err)
		}
		sum.Channels = append(sum.Channels, uint16(mhz))
	}
	return sum, rows.Err()
}
