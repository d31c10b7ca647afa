package watch

import (
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleEventFiltersExtensions(t *testing.T) {
	w, err := New(t.TempDir(), 0, nil)
	require.NoError(t, err)

	w.handleEvent(fsnotify.Event{Name: "frame/origin.yaml", Op: fsnotify.Write})
	w.handleEvent(fsnotify.Event{Name: "frame/pole.order.YML", Op: fsnotify.Create})
	w.handleEvent(fsnotify.Event{Name: "frame/notes.md", Op: fsnotify.Write})
	w.handleEvent(fsnotify.Event{Name: "frame/origin.yaml", Op: fsnotify.Chmod})

	assert.True(t, w.hasPending())
	w.flush()

	batch := <-w.Events()
	assert.ElementsMatch(t, []string{"frame/origin.yaml", "frame/pole.order.YML"}, batch)
	assert.False(t, w.hasPending())
}

func TestFlushDropsWhenConsumerIsSlow(t *testing.T) {
	w, err := New(t.TempDir(), 0, nil)
	require.NoError(t, err)
	w.events = make(chan []string) // unbuffered, nobody reading

	w.handleEvent(fsnotify.Event{Name: "a.yaml", Op: fsnotify.Write})
	w.flush()

	assert.Equal(t, int64(1), w.Dropped())
}
