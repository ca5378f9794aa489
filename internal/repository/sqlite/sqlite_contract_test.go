package sqlite

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/railway-blog-service/internal/repository"
	"github.com/maxviazov/railway-blog-service/internal/repository/contract"
)

func makeStore(t *testing.T, clock repository.Clock) (*repository.Store, func()) {
	t.Helper()
	ctx := context.Background()
	logger := zerolog.New(io.Discard)
	db, err := Open(ctx, filepath.Join(t.TempDir(), "blog.db"), logger)
	require.NoError(t, err)
	require.NoError(t, Migrate(ctx, db, logger))
	store := NewStore(db, WithClock(clock))
	return store, func() { _ = store.Close() }
}

func TestRepositories_SQLiteContract(t *testing.T) {
	contract.RunAll(t, makeStore)
}

func TestMigrate_Idempotent(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.New(io.Discard)
	db, err := Open(ctx, filepath.Join(t.TempDir(), "nested", "blog.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(ctx, db, logger))
	require.NoError(t, Migrate(ctx, db, logger))
}

func TestMapSQLiteError_PassThrough(t *testing.T) {
	assert.NoError(t, MapSQLiteError(nil))
	other := errors.New("other")
	assert.Same(t, other, MapSQLiteError(other))
}

func TestStringList(t *testing.T) {
	var l stringList
	require.NoError(t, l.Scan(`["a","b"]`))
	assert.Equal(t, stringList{"a", "b"}, l)
	require.NoError(t, l.Scan(nil))
	assert.Equal(t, stringList{}, l)
	assert.Error(t, l.Scan(42))

	v, err := stringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}
