package store

import (
	"testing"
	"time"

	"github.com/penwyp/go-jobflow/internal/core/model"
	testfixtures "github.com/penwyp/go-jobflow/internal/testing/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatcher_SignalsOnChange(t *testing.T) {
	defer goleak.VerifyNone(t)

	gen := testfixtures.NewTestDataGenerator(t.TempDir())
	require.NoError(t, gen.WriteLeads(nil, nil))

	w, err := newWatcher(gen.Dir(), 10*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, gen.WriteLeads([]model.Email{testfixtures.Email("e1", base)}, nil))

	select {
	case <-w.Reloads():
	case <-time.After(5 * time.Second):
		t.Fatal("no reload signal after fixture change")
	}
	require.NoError(t, w.Close())
}

func TestWatcher_IgnoresUnchangedAndForeignFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	gen := testfixtures.NewTestDataGenerator(t.TempDir())
	require.NoError(t, gen.WriteLeads(nil, nil))

	w, err := newWatcher(gen.Dir(), 50*time.Millisecond)
	require.NoError(t, err)

	require.NoError(t, gen.WriteLeads(nil, nil))
	require.NoError(t, gen.WriteRaw("notes.txt", "not a fixture"))

	select {
	case <-w.Reloads():
		t.Fatal("unexpected reload")
	case <-time.After(300 * time.Millisecond):
	}
	require.NoError(t, w.Close())
}

func TestWatcher_CloseIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestWatcher_MissingDir(t *testing.T) {
	_, err := NewWatcher("/nonexistent/jobflow-fixtures")
	assert.Error(t, err)
}
