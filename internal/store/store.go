package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"visionboard/internal/config"
	"visionboard/internal/sop"
	"visionboard/internal/vision"
)

// Store persists vision records and their per-action completion state in
// SQLite. One store instance owns the database for the life of a session; a
// file lock next to the database keeps concurrent sessions out.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the vision database, acquires the session
// lock, and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lockPath := filepath.Join(cfg.Paths.DataDir, "visionboard.lock")
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire session lock: %w", err)
	}
	if !ok {
		return nil, errors.New("another visionboard session holds the database")
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "visions.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock}
	if err := store.migrate(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Close releases the database connection and the session lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Save upserts a record and recomputes the related-record lists across the
// whole collection. Relations are derived state, so every save re-runs the
// detection pass and persists the result for all records.
func (s *Store) Save(ctx context.Context, record *vision.Record) error {
	if record == nil {
		return errors.New("record is nil")
	}
	resultJSON, err := json.Marshal(record.Result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	pathJSON, err := json.Marshal(record.Path)
	if err != nil {
		return fmt.Errorf("marshal path: %w", err)
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO visions (id, image_path, uploaded_at, result_json, path_json, related_json, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET
            image_path = excluded.image_path,
            uploaded_at = excluded.uploaded_at,
            result_json = excluded.result_json,
            path_json = excluded.path_json`,
		record.ID,
		record.ImagePath,
		record.UploadedAt,
		string(resultJSON),
		string(pathJSON),
		"[]",
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert vision: %w", err)
	}

	return s.recomputeRelations(ctx, record)
}

// recomputeRelations runs relation detection over all stored records and
// writes the refreshed lists back. The in-memory record passed to Save picks
// up its related list too.
func (s *Store) recomputeRelations(ctx context.Context, saved *vision.Record) error {
	records, err := s.List(ctx)
	if err != nil {
		return err
	}
	sop.DetectRelations(records)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin relations tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, record := range records {
		relatedJSON, err := json.Marshal(record.Related)
		if err != nil {
			return fmt.Errorf("marshal related: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE visions SET related_json = ? WHERE id = ?`,
			string(relatedJSON), record.ID,
		); err != nil {
			return fmt.Errorf("update relations: %w", err)
		}
		if saved != nil && record.ID == saved.ID {
			saved.Related = record.Related
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit relations: %w", err)
	}
	return nil
}

// GetByID fetches a record by identifier. A missing record returns nil, nil.
func (s *Store) GetByID(ctx context.Context, id string) (*vision.Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+visionColumns+` FROM visions WHERE id = ?`, id)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get vision: %w", err)
	}
	return record, nil
}

// List returns all records ordered by upload time.
func (s *Store) List(ctx context.Context) ([]*vision.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+visionColumns+` FROM visions ORDER BY uploaded_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list visions: %w", err)
	}
	defer rows.Close()

	var records []*vision.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Remove deletes a record and recomputes relations for the survivors.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM visions WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete vision: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return false, nil
	}
	if err := s.recomputeRelations(ctx, nil); err != nil {
		return true, err
	}
	return true, nil
}

// Clear removes all records.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM visions`)
	if err != nil {
		return 0, fmt.Errorf("clear visions: %w", err)
	}
	return res.RowsAffected()
}

// Completion is the done state of one manifestation-path action.
type Completion struct {
	VisionID    string
	WeekIndex   int
	ActionIndex int
	Done        bool
	UpdatedAt   time.Time
}

// SetCompletion upserts the done flag for one action of a record's path.
func (s *Store) SetCompletion(ctx context.Context, visionID string, weekIndex, actionIndex int, done bool) error {
	record, err := s.GetByID(ctx, visionID)
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("vision %q not found", visionID)
	}
	if weekIndex < 0 || weekIndex >= len(record.Path) {
		return fmt.Errorf("week index %d out of range", weekIndex)
	}
	if actionIndex < 0 || actionIndex >= len(record.Path[weekIndex].Actions) {
		return fmt.Errorf("action index %d out of range for week %d", actionIndex, weekIndex+1)
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO completions (vision_id, week_index, action_index, done, updated_at)
         VALUES (?, ?, ?, ?, ?)
         ON CONFLICT(vision_id, week_index, action_index) DO UPDATE SET
            done = excluded.done,
            updated_at = excluded.updated_at`,
		visionID,
		weekIndex,
		actionIndex,
		boolToInt(done),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("set completion: %w", err)
	}
	return nil
}

// Completions returns the stored completion flags for one record.
func (s *Store) Completions(ctx context.Context, visionID string) ([]Completion, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT vision_id, week_index, action_index, done, updated_at
         FROM completions WHERE vision_id = ? ORDER BY week_index, action_index`,
		visionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query completions: %w", err)
	}
	defer rows.Close()

	var completions []Completion
	for rows.Next() {
		var (
			c          Completion
			doneInt    int
			updatedRaw string
		)
		if err := rows.Scan(&c.VisionID, &c.WeekIndex, &c.ActionIndex, &doneInt, &updatedRaw); err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		c.Done = doneInt != 0
		if updated, err := time.Parse(time.RFC3339Nano, updatedRaw); err == nil {
			c.UpdatedAt = updated
		}
		completions = append(completions, c)
	}
	return completions, rows.Err()
}

// Progress reports completed and total actions for one record's path.
func (s *Store) Progress(ctx context.Context, visionID string) (done, total int, err error) {
	record, err := s.GetByID(ctx, visionID)
	if err != nil {
		return 0, 0, err
	}
	if record == nil {
		return 0, 0, fmt.Errorf("vision %q not found", visionID)
	}
	for _, entry := range record.Path {
		total += len(entry.Actions)
	}
	completions, err := s.Completions(ctx, visionID)
	if err != nil {
		return 0, 0, err
	}
	for _, c := range completions {
		if c.Done {
			done++
		}
	}
	return done, total, nil
}

// Stats summarizes the stored collection.
type Stats struct {
	Visions        int
	Related        int
	ActionsDone    int
	ActionsTracked int
}

// CollectionStats aggregates counts for diagnostic output.
func (s *Store) CollectionStats(ctx context.Context) (Stats, error) {
	var stats Stats
	records, err := s.List(ctx)
	if err != nil {
		return stats, err
	}
	stats.Visions = len(records)
	for _, record := range records {
		if len(record.Related) > 0 {
			stats.Related++
		}
	}

	row := s.db.QueryRowContext(ctx, `SELECT COUNT(1), COALESCE(SUM(done), 0) FROM completions`)
	if err := row.Scan(&stats.ActionsTracked, &stats.ActionsDone); err != nil {
		return stats, fmt.Errorf("completion stats: %w", err)
	}
	return stats, nil
}

const visionColumns = "id, image_path, uploaded_at, result_json, path_json, related_json"

func scanRecord(scanner interface{ Scan(dest ...any) error }) (*vision.Record, error) {
	var (
		id          string
		imagePath   string
		uploadedAt  int64
		resultJSON  string
		pathJSON    string
		relatedJSON sql.NullString
	)
	if err := scanner.Scan(&id, &imagePath, &uploadedAt, &resultJSON, &pathJSON, &relatedJSON); err != nil {
		return nil, err
	}

	record := &vision.Record{
		ID:         id,
		ImagePath:  imagePath,
		UploadedAt: uploadedAt,
	}
	if err := json.Unmarshal([]byte(resultJSON), &record.Result); err != nil {
		return nil, fmt.Errorf("unmarshal result for %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(pathJSON), &record.Path); err != nil {
		return nil, fmt.Errorf("unmarshal path for %s: %w", id, err)
	}
	if relatedJSON.Valid && relatedJSON.String != "" {
		if err := json.Unmarshal([]byte(relatedJSON.String), &record.Related); err != nil {
			return nil, fmt.Errorf("unmarshal related for %s: %w", id, err)
		}
	}
	return record, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
