package task_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"today/internal/task"
)

func fixedClock(ms int64) *task.Clock {
	return task.NewClock(func() time.Time { return time.UnixMilli(ms) })
}

func TestStore_AddTrimsAndAppends(t *testing.T) {
	s := task.NewStore(nil, fixedClock(1000))

	for i, in := range []string{"Buy milk", "  walk dog  ", "\tcall mom\n"} {
		before := s.Len()
		got, err := s.Add(in)
		require.NoError(t, err)
		assert.Equal(t, before+1, s.Len())
		assert.False(t, got.Completed)
		assert.Equal(t, s.Tasks()[i], got)
	}
	texts := []string{}
	for _, tk := range s.Tasks() {
		texts = append(texts, tk.Text)
	}
	assert.Equal(t, []string{"Buy milk", "walk dog", "call mom"}, texts)
}

func TestStore_AddRejectsBlank(t *testing.T) {
	s := task.NewStore([]task.Task{{ID: 1, Text: "x"}}, nil)
	for _, in := range []string{"", "   ", "\t\n"} {
		_, err := s.Add(in)
		require.ErrorIs(t, err, task.ErrEmptyText)
	}
	assert.Equal(t, []task.Task{{ID: 1, Text: "x"}}, s.Tasks())
}

func TestStore_SameMillisecondIDsDoNotCollide(t *testing.T) {
	s := task.NewStore(nil, fixedClock(5000))
	a, err := s.Add("a")
	require.NoError(t, err)
	b, err := s.Add("b")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), a.ID)
	assert.Equal(t, int64(5001), b.ID)

	require.NoError(t, s.Delete(a.ID))
	_, ok := s.Get(b.ID)
	assert.True(t, ok)
}

func TestStore_IDsStartAfterLoadedTasks(t *testing.T) {
	s := task.NewStore([]task.Task{{ID: 9000, Text: "old"}}, fixedClock(10))
	got, err := s.Add("new")
	require.NoError(t, err)
	assert.Equal(t, int64(9001), got.ID)
}

func TestStore_Delete(t *testing.T) {
	seed := []task.Task{{ID: 1, Text: "a"}, {ID: 2, Text: "b"}, {ID: 3, Text: "c"}}
	for _, victim := range seed {
		s := task.NewStore(seed, nil)
		require.NoError(t, s.Delete(victim.ID))
		assert.Equal(t, len(seed)-1, s.Len())
		_, ok := s.Get(victim.ID)
		assert.False(t, ok)
	}

	s := task.NewStore(seed, nil)
	require.ErrorIs(t, s.Delete(42), task.ErrNotFound)
	assert.Equal(t, seed, s.Tasks())
}

func TestStore_SetCompletedRoundTrip(t *testing.T) {
	seed := []task.Task{{ID: 1, Text: "a"}, {ID: 2, Text: "b", Completed: true}}
	s := task.NewStore(seed, nil)

	for _, tk := range seed {
		require.NoError(t, s.SetCompleted(tk.ID, true))
		require.NoError(t, s.SetCompleted(tk.ID, false))
		require.NoError(t, s.SetCompleted(tk.ID, tk.Completed))
	}
	assert.Equal(t, seed, s.Tasks())
	assert.ErrorIs(t, s.SetCompleted(99, true), task.ErrNotFound)
}

func TestStore_ClearCompletedIsIdempotent(t *testing.T) {
	s := task.NewStore([]task.Task{
		{ID: 1, Text: "keep"},
		{ID: 2, Text: "drop", Completed: true},
		{ID: 3, Text: "also keep"},
	}, nil)

	assert.Equal(t, 1, s.ClearCompleted())
	once := s.Tasks()
	assert.Equal(t, 0, s.ClearCompleted())
	assert.Equal(t, once, s.Tasks())
	assert.Equal(t, []task.Task{{ID: 1, Text: "keep"}, {ID: 3, Text: "also keep"}}, once)
}

func TestStore_ItemsLeftIgnoresFilter(t *testing.T) {
	s := task.NewStore([]task.Task{
		{ID: 1, Text: "a"},
		{ID: 2, Text: "b", Completed: true},
		{ID: 3, Text: "c"},
	}, nil)
	assert.Equal(t, 2, task.ItemsLeft(s.Tasks()))
	require.NoError(t, s.SetCompleted(1, true))
	assert.Equal(t, 1, task.ItemsLeft(s.Tasks()))
}

func TestStore_TasksIsACopy(t *testing.T) {
	s := task.NewStore([]task.Task{{ID: 1, Text: "a"}}, nil)
	got := s.Tasks()
	got[0].Text = "mutated"
	assert.Equal(t, "a", s.Tasks()[0].Text)
}

func TestClock_IgnoresOutOfRangeIDs(t *testing.T) {
	c := fixedClock(2000)
	c.Observe(math.MaxInt64)
	assert.Equal(t, int64(2000), c.Next())

	c.Observe(task.MaxID - 1)
	assert.Equal(t, task.MaxID, c.Next())
}
