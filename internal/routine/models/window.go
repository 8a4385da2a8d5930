package models

// Window is a daily time range. When To is earlier than From the window
// crosses midnight: 22:00-06:00 covers late evening and early morning.
type Window struct {
	From TimeOfDay
	To   TimeOfDay
}

// WrapsMidnight reports whether the window continues into the next day.
func (w Window) WrapsMidnight() bool {
	return w.To < w.From
}

// Contains reports whether t falls inside the window, both ends inclusive.
func (w Window) Contains(t TimeOfDay) bool {
	if w.WrapsMidnight() {
		return t >= w.From || t <= w.To
	}
	return t >= w.From && t <= w.To
}
