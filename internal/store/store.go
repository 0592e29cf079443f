// Package store persists generated layouts in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/VoidMesh/gridgen/internal/grid"
	"github.com/VoidMesh/gridgen/internal/pipeline"
)

var ErrNotFound = errors.New("layout not found")

// timeFormat has a fixed width so created_at sorts as text.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Summary is the listing view of a stored layout.
type Summary struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Seed       int64     `json:"seed"`
	CreatedAt  time.Time `json:"created_at"`
	LayerCount int       `json:"layer_count"`
}

// Store reads and writes layouts. It expects a migrated database.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Helper function to log query execution
func (s *Store) logQuery(ctx context.Context, queryName string, start time.Time, err error, args ...interface{}) {
	duration := time.Since(start)

	if err != nil {
		log.Debug("Database query failed",
			"query", queryName,
			"duration", duration,
			"error", err,
			"args", args,
		)
	} else {
		log.Debug("Database query executed",
			"query", queryName,
			"duration", duration,
			"args", args,
		)
	}
}

// Save writes a layout and all of its layers in one transaction.
func (s *Store) Save(ctx context.Context, layout *pipeline.Layout) (err error) {
	start := time.Now()
	log.Debug("Executing SaveLayout", "layout_id", layout.ID, "layers", len(layout.Layers))
	defer func() { s.logQuery(ctx, "SaveLayout", start, err, layout.ID) }()

	definition, err := json.Marshal(layout.Definition)
	if err != nil {
		return fmt.Errorf("failed to encode definition: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO layouts (id, name, seed, created_at, definition) VALUES (?, ?, ?, ?, ?)`,
		layout.ID.String(), layout.Name, layout.Seed, layout.CreatedAt.UTC().Format(timeFormat), string(definition),
	)
	if err != nil {
		return fmt.Errorf("failed to insert layout: %w", err)
	}

	for i, layer := range layout.Layers {
		cells, err := json.Marshal(layer.Cells)
		if err != nil {
			return fmt.Errorf("failed to encode layer %q: %w", layer.Name, err)
		}

		var pathFound sql.NullBool
		if layer.PathFound != nil {
			pathFound = sql.NullBool{Bool: *layer.PathFound, Valid: true}
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO layers (layout_id, position, name, width, height, seed, path_found, cell_count, cells)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			layout.ID.String(), i, layer.Name, layer.Width, layer.Height, layer.Seed, pathFound, layer.Cells.Len(), string(cells),
		)
		if err != nil {
			return fmt.Errorf("failed to insert layer %q: %w", layer.Name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit layout: %w", err)
	}
	return nil
}

// Get loads a layout with all of its layers.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*pipeline.Layout, error) {
	start := time.Now()
	log.Debug("Executing GetLayout", "layout_id", id)

	layout, err := s.getLayout(ctx, id)
	if err == nil {
		layout.Layers, err = s.getLayers(ctx, id)
	}
	s.logQuery(ctx, "GetLayout", start, err, id)
	if err != nil {
		return nil, err
	}

	log.Debug("GetLayout result", "layout_id", id, "layer_count", len(layout.Layers))
	return layout, nil
}

func (s *Store) getLayout(ctx context.Context, id uuid.UUID) (*pipeline.Layout, error) {
	var (
		layout     pipeline.Layout
		createdAt  string
		definition string
	)
	row := s.db.QueryRowContext(ctx,
		`SELECT name, seed, created_at, definition FROM layouts WHERE id = ?`, id.String())
	if err := row.Scan(&layout.Name, &layout.Seed, &createdAt, &definition); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}

	created, err := time.Parse(timeFormat, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}

	layout.ID = id
	layout.CreatedAt = created
	layout.Definition = &pipeline.Definition{}
	if err := json.Unmarshal([]byte(definition), layout.Definition); err != nil {
		return nil, fmt.Errorf("failed to decode definition: %w", err)
	}
	return &layout, nil
}

func (s *Store) getLayers(ctx context.Context, id uuid.UUID) ([]pipeline.Layer, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, width, height, seed, path_found, cells FROM layers WHERE layout_id = ? ORDER BY position`, id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query layers: %w", err)
	}
	defer rows.Close()

	var layers []pipeline.Layer
	for rows.Next() {
		layer, err := scanLayer(rows)
		if err != nil {
			return nil, err
		}
		layers = append(layers, *layer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate layers: %w", err)
	}
	return layers, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLayer(row scanner) (*pipeline.Layer, error) {
	var (
		layer     pipeline.Layer
		pathFound sql.NullBool
		cells     string
	)
	if err := row.Scan(&layer.Name, &layer.Width, &layer.Height, &layer.Seed, &pathFound, &cells); err != nil {
		return nil, err
	}
	if pathFound.Valid {
		found := pathFound.Bool
		layer.PathFound = &found
	}
	layer.Cells = grid.NewPositionSet()
	if err := json.Unmarshal([]byte(cells), layer.Cells); err != nil {
		return nil, fmt.Errorf("failed to decode layer %q: %w", layer.Name, err)
	}
	return &layer, nil
}

// GetLayer loads a single layer of a stored layout.
func (s *Store) GetLayer(ctx context.Context, id uuid.UUID, name string) (*pipeline.Layer, error) {
	start := time.Now()
	log.Debug("Executing GetLayer", "layout_id", id, "layer", name)

	row := s.db.QueryRowContext(ctx,
		`SELECT name, width, height, seed, path_found, cells FROM layers WHERE layout_id = ? AND name = ?`, id.String(), name)
	layer, err := scanLayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		err = fmt.Errorf("%w: %s/%s", ErrNotFound, id, name)
	} else if err != nil {
		err = fmt.Errorf("failed to read layer: %w", err)
	}
	s.logQuery(ctx, "GetLayer", start, err, id, name)
	if err != nil {
		return nil, err
	}
	return layer, nil
}

// List returns the most recent layouts first. A non-positive limit
// returns all of them.
func (s *Store) List(ctx context.Context, limit int) ([]Summary, error) {
	start := time.Now()
	log.Debug("Executing ListLayouts", "limit", limit)
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT l.id, l.name, l.seed, l.created_at, COUNT(y.name)
		FROM layouts l
		LEFT JOIN layers y ON y.layout_id = l.id
		GROUP BY l.id
		ORDER BY l.created_at DESC, l.id
		LIMIT ?`, limit)
	if err != nil {
		s.logQuery(ctx, "ListLayouts", start, err, limit)
		return nil, fmt.Errorf("failed to list layouts: %w", err)
	}
	defer rows.Close()

	summaries := []Summary{}
	for rows.Next() {
		var (
			summary   Summary
			id        string
			createdAt string
		)
		if err := rows.Scan(&id, &summary.Name, &summary.Seed, &createdAt, &summary.LayerCount); err != nil {
			return nil, fmt.Errorf("failed to scan layout: %w", err)
		}
		if summary.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("failed to parse layout id: %w", err)
		}
		if summary.CreatedAt, err = time.Parse(timeFormat, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		summaries = append(summaries, summary)
	}
	err = rows.Err()
	s.logQuery(ctx, "ListLayouts", start, err, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to iterate layouts: %w", err)
	}

	log.Debug("ListLayouts result", "count", len(summaries))
	return summaries, nil
}

// Delete removes a layout and its layers.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) (err error) {
	start := time.Now()
	log.Debug("Executing DeleteLayout", "layout_id", id)
	defer func() { s.logQuery(ctx, "DeleteLayout", start, err, id) }()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM layers WHERE layout_id = ?`, id.String()); err != nil {
		return fmt.Errorf("failed to delete layers: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM layouts WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete layout: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		err = fmt.Errorf("%w: %s", ErrNotFound, id)
		return err
	}

	return tx.Commit()
}
