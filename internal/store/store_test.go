package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/gridgen/internal/generator"
	"github.com/VoidMesh/gridgen/internal/generator/pathfinding"
	"github.com/VoidMesh/gridgen/internal/pipeline"
	"github.com/VoidMesh/gridgen/internal/testutil"
)

func setupStore(t *testing.T) *Store {
	t.Helper()

	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(db))
	return New(db)
}

func sampleDefinition() *pipeline.Definition {
	return &pipeline.Definition{
		Name: "sample",
		Seed: 21,
		Layers: []pipeline.LayerSpec{
			{Name: "maze", Width: 11, Height: 11, Modules: []generator.ModuleSpec{{Kind: generator.KindMaze}}},
			{Name: "path", Width: 11, Height: 11, Modules: []generator.ModuleSpec{{
				Kind: generator.KindPathfinding,
				Pathfinding: &pathfinding.Config{
					NavigationLayer: "maze", StartLayer: "maze", TargetLayer: "maze", Mode: pathfinding.RandomRandom,
				},
			}}},
		},
	}
}

func runLayout(t *testing.T, at time.Time) *pipeline.Layout {
	t.Helper()
	exec := pipeline.NewExecutor(pipeline.WithClock(func() time.Time { return at }))
	layout, err := exec.Run(context.Background(), sampleDefinition())
	require.NoError(t, err)
	return layout
}

func TestStore_SaveAndGet(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	s := setupStore(t)
	ctx := testutil.CreateTestContext(t)
	layout := runLayout(t, time.Date(2025, 3, 4, 5, 6, 7, 800, time.UTC))

	require.NoError(t, s.Save(ctx, layout))

	got, err := s.Get(ctx, layout.ID)
	require.NoError(t, err)
	assert.Equal(t, layout.ID, got.ID)
	assert.Equal(t, layout.Name, got.Name)
	assert.Equal(t, layout.Seed, got.Seed)
	assert.True(t, layout.CreatedAt.Equal(got.CreatedAt))
	require.NotNil(t, got.Definition)
	assert.Equal(t, layout.Definition.Layers[1].Modules[0].Pathfinding, got.Definition.Layers[1].Modules[0].Pathfinding)

	require.Len(t, got.Layers, len(layout.Layers))
	for i := range layout.Layers {
		want, have := layout.Layers[i], got.Layers[i]
		assert.Equal(t, want.Name, have.Name)
		assert.Equal(t, want.Width, have.Width)
		assert.Equal(t, want.Seed, have.Seed)
		assert.Equal(t, want.PathFound, have.PathFound)
		testutil.AssertSetsEqual(t, want.Cells, have.Cells)
	}
	assert.Nil(t, got.Layers[0].PathFound)
	require.NotNil(t, got.Layers[1].PathFound)
}

func TestStore_GetLayer(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	s := setupStore(t)
	ctx := testutil.CreateTestContext(t)
	layout := runLayout(t, time.Now())
	require.NoError(t, s.Save(ctx, layout))

	layer, err := s.GetLayer(ctx, layout.ID, "maze")
	require.NoError(t, err)
	testutil.AssertSetsEqual(t, layout.Layers[0].Cells, layer.Cells)

	_, err = s.GetLayer(ctx, layout.ID, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.GetLayer(ctx, uuid.New(), "maze")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_List(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	s := setupStore(t)
	ctx := testutil.CreateTestContext(t)

	empty, err := s.List(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		layout := runLayout(t, base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, s.Save(ctx, layout))
		ids = append(ids, layout.ID)
	}

	tests := []struct {
		name  string
		limit int
		want  []uuid.UUID
	}{
		{name: "all", limit: 0, want: []uuid.UUID{ids[2], ids[1], ids[0]}},
		{name: "limited", limit: 2, want: []uuid.UUID{ids[2], ids[1]}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summaries, err := s.List(ctx, tt.limit)
			require.NoError(t, err)
			require.Len(t, summaries, len(tt.want))
			for i, summary := range summaries {
				assert.Equal(t, tt.want[i], summary.ID)
				assert.Equal(t, 2, summary.LayerCount)
				assert.Equal(t, "sample", summary.Name)
			}
		})
	}
}

func TestStore_Delete(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	s := setupStore(t)
	ctx := testutil.CreateTestContext(t)
	layout := runLayout(t, time.Now())
	require.NoError(t, s.Save(ctx, layout))

	require.NoError(t, s.Delete(ctx, layout.ID))

	_, err := s.Get(ctx, layout.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetLayer(ctx, layout.ID, "maze")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Delete(ctx, layout.ID), ErrNotFound)
}

func TestStore_DuplicateSave(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	s := setupStore(t)
	ctx := testutil.CreateTestContext(t)
	layout := runLayout(t, time.Now())

	require.NoError(t, s.Save(ctx, layout))
	assert.Error(t, s.Save(ctx, layout))

	summaries, err := s.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, summaries, 1)
}

func TestMigrate_Idempotent(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "migrate.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}
