package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/quizmd/quizmd/quiz"
)

// ErrNotFound is returned when a named module does not exist in the store.
var ErrNotFound = errors.New("module not found")

// ModuleInfo describes a stored module without its content.
type ModuleInfo struct {
	Name       string
	ImportedAt time.Time
	UpdatedAt  time.Time
}

// ModuleSnapshot is a point-in-time copy of a stored module, taken after
// each review session.
type ModuleSnapshot struct {
	ModuleName string
	Sequence   int64
	Timestamp  time.Time
	Module     *quiz.QuizModule
}

// ModuleRepo manages stored modules and their snapshots. Modules are stored
// as canonical JSON, so a load after a save is byte-identical.
type ModuleRepo interface {
	// Save stores the module under name, replacing any existing state.
	// The first save records the import time; later saves keep it.
	Save(ctx context.Context, name string, m *quiz.QuizModule) error

	// Load returns the stored module, or an error wrapping ErrNotFound.
	Load(ctx context.Context, name string) (*quiz.QuizModule, error)

	// List returns all stored modules ordered by name.
	List(ctx context.Context) ([]ModuleInfo, error)

	// Delete removes the module and its snapshots, or returns an error
	// wrapping ErrNotFound.
	Delete(ctx context.Context, name string) error

	// SaveSnapshot stores a point-in-time copy of the module.
	SaveSnapshot(ctx context.Context, name string, m *quiz.QuizModule, timestamp time.Time) error

	// LatestSnapshot returns the most recent snapshot of the module, or
	// nil if none exist.
	LatestSnapshot(ctx context.Context, name string) (*ModuleSnapshot, error)

	// Prune deletes all but the keep most recent snapshots of the module.
	Prune(ctx context.Context, name string, keep int) error
}

type moduleRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *moduleRepo) Save(ctx context.Context, name string, m *quiz.QuizModule) error {
	data, err := quiz.EncodeJSON(m)
	if err != nil {
		return fmt.Errorf("encode module: %w", err)
	}

	now := formatStoredTime(time.Now())
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO modules (name, imported_at, updated_at, data)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			updated_at = excluded.updated_at,
			data = excluded.data`,
		name, now, now, string(data),
	)
	if err != nil {
		return fmt.Errorf("save module %q: %w", name, err)
	}
	return nil
}

func (r *moduleRepo) Load(ctx context.Context, name string) (*quiz.QuizModule, error) {
	var data string
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM modules WHERE name = ?`, name,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("module %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load module %q: %w", name, err)
	}

	var m quiz.QuizModule
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		return nil, fmt.Errorf("decode module %q: %w", name, err)
	}
	return &m, nil
}

func (r *moduleRepo) List(ctx context.Context) ([]ModuleInfo, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, imported_at, updated_at FROM modules ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	defer rows.Close()

	var infos []ModuleInfo
	for rows.Next() {
		var info ModuleInfo
		var imported, updated string
		if err := rows.Scan(&info.Name, &imported, &updated); err != nil {
			return nil, fmt.Errorf("scan module row: %w", err)
		}
		if info.ImportedAt, err = parseStoredTime(imported); err != nil {
			return nil, fmt.Errorf("module %q imported_at: %w", info.Name, err)
		}
		if info.UpdatedAt, err = parseStoredTime(updated); err != nil {
			return nil, fmt.Errorf("module %q updated_at: %w", info.Name, err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

func (r *moduleRepo) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM modules WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete module %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete module %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("module %q: %w", name, ErrNotFound)
	}

	_, err = r.db.ExecContext(ctx,
		`DELETE FROM module_snapshots WHERE module_name = ?`, name,
	)
	if err != nil {
		return fmt.Errorf("delete snapshots of %q: %w", name, err)
	}
	return nil
}

func (r *moduleRepo) SaveSnapshot(ctx context.Context, name string, m *quiz.QuizModule, timestamp time.Time) error {
	data, err := quiz.EncodeJSON(m)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO module_snapshots (module_name, sequence, timestamp, data)
		VALUES (?, ?, ?, ?)`,
		name, seqNum, formatStoredTime(timestamp), string(data),
	)
	if err != nil {
		return fmt.Errorf("save snapshot of %q: %w", name, err)
	}
	return nil
}

func (r *moduleRepo) LatestSnapshot(ctx context.Context, name string) (*ModuleSnapshot, error) {
	var (
		snap      ModuleSnapshot
		timestamp string
		data      string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT module_name, sequence, timestamp, data
		FROM module_snapshots
		WHERE module_name = ?
		ORDER BY sequence DESC
		LIMIT 1`, name,
	).Scan(&snap.ModuleName, &snap.Sequence, &timestamp, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot of %q: %w", name, err)
	}

	if snap.Timestamp, err = parseStoredTime(timestamp); err != nil {
		return nil, fmt.Errorf("snapshot timestamp: %w", err)
	}
	var m quiz.QuizModule
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		return nil, fmt.Errorf("decode snapshot of %q: %w", name, err)
	}
	snap.Module = &m
	return &snap, nil
}

func (r *moduleRepo) Prune(ctx context.Context, name string, keep int) error {
	if keep < 0 {
		keep = 0
	}
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM module_snapshots
		WHERE module_name = ? AND id NOT IN (
			SELECT id FROM module_snapshots
			WHERE module_name = ?
			ORDER BY sequence DESC
			LIMIT ?
		)`, name, name, keep)
	if err != nil {
		return fmt.Errorf("prune snapshots of %q: %w", name, err)
	}
	return nil
}
