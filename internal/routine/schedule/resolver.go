// Package schedule picks the routine entry that is active at a time of day.
package schedule

import (
	"cmp"
	"slices"

	"safeher/internal/routine/models"
)

// Resolve returns the active routine for t, or false when none matches.
//
// Candidates are ordered by window start, then by id, and the first window
// containing t wins, so overlapping windows resolve the same way every time.
// Routine.Days is not consulted. The input slice is left untouched.
// Pure: no I/O.
func Resolve(entries []models.Routine, t models.TimeOfDay) (*models.Routine, bool) {
	if len(entries) == 0 {
		return nil, false
	}

	ordered := slices.Clone(entries)
	slices.SortStableFunc(ordered, Compare)

	for i := range ordered {
		if ordered[i].Window.Contains(t) {
			active := ordered[i]
			return &active, true
		}
	}
	return nil, false
}

// Active returns every routine containing t in resolution order. The first
// element, if any, is what Resolve would pick.
func Active(entries []models.Routine, t models.TimeOfDay) []models.Routine {
	ordered := slices.Clone(entries)
	slices.SortStableFunc(ordered, Compare)

	active := make([]models.Routine, 0, len(ordered))
	for _, e := range ordered {
		if e.Window.Contains(t) {
			active = append(active, e)
		}
	}
	return active
}

// Compare orders routines by window start, then id. It is the resolution
// order and the order routines are listed in.
func Compare(a, b models.Routine) int {
	if c := cmp.Compare(a.Window.From, b.Window.From); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
