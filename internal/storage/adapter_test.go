package storage_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"today/internal/storage"
	"today/internal/task"
)

func openSlot(t *testing.T, backend string) storage.Slot {
	t.Helper()
	slot, err := storage.Open(backend, filepath.Join(t.TempDir(), "nested", "todo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = slot.Close() })
	return slot
}

func eachBackend(t *testing.T, fn func(t *testing.T, slot storage.Slot)) {
	for _, backend := range []string{storage.BackendSQLite, storage.BackendBolt} {
		t.Run(backend, func(t *testing.T) {
			fn(t, openSlot(t, backend))
		})
	}
}

func TestAdapter_LoadAbsentIsEmpty(t *testing.T) {
	eachBackend(t, func(t *testing.T, slot storage.Slot) {
		tasks, err := storage.NewAdapter(slot, nil).Load()
		require.NoError(t, err)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	})
}

func TestAdapter_RoundTrip(t *testing.T) {
	eachBackend(t, func(t *testing.T, slot storage.Slot) {
		a := storage.NewAdapter(slot, nil)
		want := []task.Task{
			{ID: 1704067200000, Text: "Buy milk"},
			{ID: 1704067200001, Text: "Walk dog", Completed: true},
		}
		require.NoError(t, a.Save(want))

		got, err := a.Load()
		require.NoError(t, err)
		assert.Equal(t, want, got)

		require.NoError(t, a.Save(want[:1]))
		got, err = a.Load()
		require.NoError(t, err)
		assert.Equal(t, want[:1], got)
	})
}

func TestAdapter_SaveEmptyWritesArray(t *testing.T) {
	eachBackend(t, func(t *testing.T, slot storage.Slot) {
		require.NoError(t, storage.NewAdapter(slot, nil).Save(nil))
		raw, err := slot.Get(storage.DefaultKey)
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(raw))
	})
}

func TestAdapter_PersistedFieldNames(t *testing.T) {
	eachBackend(t, func(t *testing.T, slot storage.Slot) {
		require.NoError(t, storage.NewAdapter(slot, nil).Save([]task.Task{{ID: 7, Text: "x", Completed: true}}))
		raw, err := slot.Get(storage.DefaultKey)
		require.NoError(t, err)

		var records []map[string]any
		require.NoError(t, json.Unmarshal(raw, &records))
		require.Len(t, records, 1)
		assert.Equal(t, map[string]any{"id": float64(7), "text": "x", "completed": true}, records[0])
	})
}

func TestAdapter_LoadAcceptsAnyFieldOrder(t *testing.T) {
	eachBackend(t, func(t *testing.T, slot storage.Slot) {
		require.NoError(t, slot.Put(storage.DefaultKey, []byte(`[{"completed":false,"text":"a","id":3}]`)))
		got, err := storage.NewAdapter(slot, nil).Load()
		require.NoError(t, err)
		assert.Equal(t, []task.Task{{ID: 3, Text: "a"}}, got)
	})
}

func TestAdapter_LoadCorrupt(t *testing.T) {
	cases := map[string]string{
		"not json":     `{{{`,
		"wrong shape":  `{"id":1}`,
		"wrong fields": `[{"id":"one","text":"a","completed":false}]`,
		"empty record": `[{}]`,
		"null record":  `[null]`,
		"unknown only": `[{"foo":1}]`,
		"missing text": `[{"id":1}]`,
		"blank text":   `[{"id":1,"text":"   ","completed":false}]`,
		"zero id":      `[{"id":0,"text":"a","completed":false}]`,
		"negative id":  `[{"id":-4,"text":"a","completed":false}]`,
		"huge id":      `[{"id":9223372036854775807,"text":"a","completed":false}]`,
		"one bad":      `[{"id":1,"text":"ok","completed":false},{"id":2,"text":""}]`,
	}
	eachBackend(t, func(t *testing.T, slot storage.Slot) {
		for name, raw := range cases {
			t.Run(name, func(t *testing.T) {
				require.NoError(t, slot.Put(storage.DefaultKey, []byte(raw)))
				got, err := storage.NewAdapter(slot, nil).Load()
				require.ErrorIs(t, err, storage.ErrCorrupt)
				assert.NotNil(t, got)
				assert.Empty(t, got)
			})
		}
	})
}

func TestAdapter_LoadNullIsEmpty(t *testing.T) {
	eachBackend(t, func(t *testing.T, slot storage.Slot) {
		require.NoError(t, slot.Put(storage.DefaultKey, []byte(`null`)))
		got, err := storage.NewAdapter(slot, nil).Load()
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestAdapter_SurvivesReopen(t *testing.T) {
	for _, backend := range []string{storage.BackendSQLite, storage.BackendBolt} {
		t.Run(backend, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "todo.db")
			want := []task.Task{{ID: 1, Text: "persisted"}}

			slot, err := storage.Open(backend, path)
			require.NoError(t, err)
			require.NoError(t, storage.NewAdapter(slot, nil).Save(want))
			require.NoError(t, slot.Close())

			slot, err = storage.Open(backend, path)
			require.NoError(t, err)
			defer slot.Close()
			got, err := storage.NewAdapter(slot, nil).Load()
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestOpen_Errors(t *testing.T) {
	_, err := storage.Open(storage.BackendSQLite, "")
	assert.Error(t, err)

	_, err = storage.Open("redis", filepath.Join(t.TempDir(), "x.db"))
	assert.Error(t, err)
}
