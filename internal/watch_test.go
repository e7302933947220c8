package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchLifecycle(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t, nil)
	dir := t.TempDir()

	require.NoError(t, engine.StartWatching([]string{dir}))
	assert.Error(t, engine.StartWatching([]string{dir}))

	// stopping races with the running watch loop; both must be safe
	require.NoError(t, engine.StopWatching())
	require.NoError(t, engine.StopWatching())
}

func TestStopWatchingWithoutStart(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t, nil)
	require.NoError(t, engine.StopWatching())
}
