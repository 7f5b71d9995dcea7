package settings

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStores(t *testing.T) map[string]Store {
	t.Helper()
	sqlite, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "settings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqlite,
	}
}

func TestStore_GetSet(t *testing.T) {
	ctx := context.Background()
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.Get(ctx, "theme")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Set(ctx, "theme", "dark"))
			v, ok, err := s.Get(ctx, "theme")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "dark", v)

			require.NoError(t, s.Set(ctx, "theme", "light"))
			v, _, err = s.Get(ctx, "theme")
			require.NoError(t, err)
			assert.Equal(t, "light", v)
		})
	}
}

func TestSQLiteStore_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "settings.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, VisitedKey, "true"))
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Get(ctx, VisitedKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", v)
	assert.Equal(t, path, reopened.Path())
}

func TestWelcomeGate_ShowsOncePerStore(t *testing.T) {
	ctx := context.Background()
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			first := NewWelcomeGate(s)
			show, err := first.ShouldShow(ctx)
			require.NoError(t, err)
			assert.True(t, show)

			show, err = first.ShouldShow(ctx)
			require.NoError(t, err)
			assert.True(t, show, "answer is stable within one gate")

			second := NewWelcomeGate(s)
			show, err = second.ShouldShow(ctx)
			require.NoError(t, err)
			assert.False(t, show)
		})
	}
}

type countingStore struct {
	Store
	gets, sets int
	getErr     error
}

func (c *countingStore) Get(ctx context.Context, key string) (string, bool, error) {
	c.gets++
	if c.getErr != nil {
		return "", false, c.getErr
	}
	return c.Store.Get(ctx, key)
}

func (c *countingStore) Set(ctx context.Context, key, value string) error {
	c.sets++
	return c.Store.Set(ctx, key, value)
}

func TestWelcomeGate_ReadsAndWritesOnce(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{Store: NewMemoryStore()}
	gate := NewWelcomeGate(store)

	for i := 0; i < 3; i++ {
		_, err := gate.ShouldShow(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, store.gets)
	assert.Equal(t, 1, store.sets)
}

func TestWelcomeGate_ReadError(t *testing.T) {
	boom := errors.New("disk on fire")
	store := &countingStore{Store: NewMemoryStore(), getErr: boom}

	show, err := NewWelcomeGate(store).ShouldShow(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.False(t, show)
	assert.Zero(t, store.sets)
}
