package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	"csvexplorer/adapters/excel"
	"csvexplorer/app"
	"csvexplorer/domain/core"
	"csvexplorer/domain/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUpload(t *testing.T) *app.Upload {
	t.Helper()
	table, err := excel.LoadCSV(strings.NewReader(exampleCSV))
	require.NoError(t, err)
	return &app.Upload{Table: table, Manifest: dataset.NewManifest("data.csv", excel.MimeCSV, []byte(exampleCSV), table)}
}

func TestSessionStorePutGetDelete(t *testing.T) {
	store := NewSessionStore(time.Hour)
	id := core.NewSessionID()

	_, ok := store.Get(id)
	assert.False(t, ok)

	upload := testUpload(t)
	store.Put(id, upload)
	got, ok := store.Get(id)
	require.True(t, ok)
	assert.Same(t, upload, got)
	assert.Equal(t, 1, store.Len())

	store.Delete(id)
	_, ok = store.Get(id)
	assert.False(t, ok)
}

func TestSessionStoreLoadErrorReplacesTable(t *testing.T) {
	store := NewSessionStore(time.Hour)
	id := core.NewSessionID()

	store.Put(id, testUpload(t))
	store.SetLoadError(id, "boom")

	_, ok := store.Get(id)
	assert.False(t, ok, "a failed upload discards the previous table")
	assert.Equal(t, "boom", store.TakeLoadError(id))
	assert.Empty(t, store.TakeLoadError(id))
	assert.Equal(t, 0, store.Len())
}

func TestSessionStoreSweep(t *testing.T) {
	store := NewSessionStore(time.Minute)
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	idle, active := core.NewSessionID(), core.NewSessionID()
	store.Put(idle, testUpload(t))
	store.Put(active, testUpload(t))

	clock = clock.Add(45 * time.Second)
	store.Get(active)

	clock = clock.Add(30 * time.Second)
	assert.Equal(t, 1, store.Sweep())

	_, ok := store.Get(active)
	assert.True(t, ok)
	_, ok = store.Get(idle)
	assert.False(t, ok)
}

func TestSessionStoreRunStopsOnCancel(t *testing.T) {
	store := NewSessionStore(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, store.Run(ctx))
}
