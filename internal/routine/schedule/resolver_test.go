package schedule

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safeher/internal/routine/models"
	id "safeher/pkg/domain"
)

func entry(routineID int64, from, to models.TimeOfDay) models.Routine {
	return models.Routine{
		ID:       id.RoutineID(routineID),
		Username: "demo_user",
		Title:    "entry",
		Window:   models.Window{From: from, To: to},
	}
}

func at(h, m int) models.TimeOfDay { return models.MustTimeOfDay(h, m, 0) }

func TestResolve_NoEntries(t *testing.T) {
	active, ok := Resolve(nil, at(10, 0))
	assert.False(t, ok)
	assert.Nil(t, active)
}

func TestResolve_SameDayWindow(t *testing.T) {
	entries := []models.Routine{entry(1, at(9, 0), at(17, 0))}

	t.Run("inside matches", func(t *testing.T) {
		active, ok := Resolve(entries, at(10, 0))
		require.True(t, ok)
		assert.Equal(t, id.RoutineID(1), active.ID)
	})

	t.Run("boundaries are inclusive", func(t *testing.T) {
		_, ok := Resolve(entries, at(9, 0))
		assert.True(t, ok)
		_, ok = Resolve(entries, at(17, 0))
		assert.True(t, ok)
	})

	t.Run("outside does not match", func(t *testing.T) {
		_, ok := Resolve(entries, at(8, 59))
		assert.False(t, ok)
		_, ok = Resolve(entries, models.MustTimeOfDay(17, 0, 1))
		assert.False(t, ok)
	})
}

func TestResolve_MidnightWrap(t *testing.T) {
	entries := []models.Routine{entry(7, at(22, 0), at(6, 0))}

	t.Run("late evening matches", func(t *testing.T) {
		active, ok := Resolve(entries, at(23, 30))
		require.True(t, ok)
		assert.Equal(t, id.RoutineID(7), active.ID)
	})

	t.Run("early morning matches", func(t *testing.T) {
		_, ok := Resolve(entries, at(2, 15))
		assert.True(t, ok)
	})

	t.Run("between end and start does not match", func(t *testing.T) {
		_, ok := Resolve(entries, at(20, 0))
		assert.False(t, ok)
	})
}

func TestResolve_OverlapTieBreak(t *testing.T) {
	t.Run("earliest start wins", func(t *testing.T) {
		entries := []models.Routine{
			entry(5, at(9, 0), at(17, 0)),
			entry(3, at(8, 0), at(12, 0)),
		}
		active, ok := Resolve(entries, at(10, 0))
		require.True(t, ok)
		assert.Equal(t, id.RoutineID(3), active.ID)
	})

	t.Run("equal start falls back to lowest id", func(t *testing.T) {
		entries := []models.Routine{
			entry(9, at(8, 0), at(18, 0)),
			entry(4, at(8, 0), at(10, 0)),
			entry(6, at(8, 0), at(12, 0)),
		}
		active, ok := Resolve(entries, at(9, 0))
		require.True(t, ok)
		assert.Equal(t, id.RoutineID(4), active.ID)
	})

	t.Run("earlier non-matching entry is skipped", func(t *testing.T) {
		entries := []models.Routine{
			entry(2, at(14, 0), at(18, 0)),
			entry(1, at(6, 0), at(7, 0)),
		}
		active, ok := Resolve(entries, at(15, 0))
		require.True(t, ok)
		assert.Equal(t, id.RoutineID(2), active.ID)
	})

	t.Run("result does not depend on input order", func(t *testing.T) {
		a := entry(5, at(9, 0), at(17, 0))
		b := entry(3, at(8, 0), at(12, 0))
		c := entry(8, at(21, 0), at(11, 0))

		orders := [][]models.Routine{{a, b, c}, {c, b, a}, {b, c, a}}
		for _, entries := range orders {
			active, ok := Resolve(entries, at(10, 0))
			require.True(t, ok)
			assert.Equal(t, id.RoutineID(3), active.ID)
		}
	})
}

func TestResolve_DoesNotFilterByDay(t *testing.T) {
	e := entry(1, at(9, 0), at(17, 0))
	e.Days = id.Days{id.Saturday}

	_, ok := Resolve([]models.Routine{e}, at(10, 0))
	assert.True(t, ok)
}

func TestResolve_LeavesInputUntouched(t *testing.T) {
	entries := []models.Routine{
		entry(5, at(9, 0), at(17, 0)),
		entry(3, at(8, 0), at(12, 0)),
	}
	_, _ = Resolve(entries, at(10, 0))
	assert.Equal(t, id.RoutineID(5), entries[0].ID)
	assert.Equal(t, id.RoutineID(3), entries[1].ID)
}

func TestActive(t *testing.T) {
	entries := []models.Routine{
		entry(5, at(9, 0), at(17, 0)),
		entry(3, at(8, 0), at(12, 0)),
		entry(1, at(18, 0), at(19, 0)),
	}
	active := Active(entries, at(10, 0))
	require.Len(t, active, 2)
	assert.Equal(t, id.RoutineID(3), active[0].ID)
	assert.Equal(t, id.RoutineID(5), active[1].ID)
}

func TestCompare(t *testing.T) {
	at := func(h int) models.TimeOfDay { return models.MustTimeOfDay(h, 0, 0) }

	assert.Negative(t, Compare(entry(9, at(7), at(8)), entry(1, at(9), at(10))), "earlier start first")
	assert.Positive(t, Compare(entry(2, at(9), at(10)), entry(1, at(9), at(11))), "equal start falls back to id")
	assert.Zero(t, Compare(entry(3, at(9), at(10)), entry(3, at(9), at(10))))

	t.Run("list order agrees with resolution order", func(t *testing.T) {
		entries := []models.Routine{
			entry(4, at(9), at(12)),
			entry(2, at(8), at(12)),
			entry(3, at(9), at(11)),
		}
		sorted := slices.Clone(entries)
		slices.SortStableFunc(sorted, Compare)

		assert.Equal(t, sorted, Active(entries, at(10)))
		got, ok := Resolve(entries, at(10))
		require.True(t, ok)
		assert.Equal(t, sorted[0], *got)
	})
}
