package testutil

import "testing"

// Given, When and Then run fn as a subtest labelled with its step, so a
// failing flow reads as a sentence in `go test -v` output.
func Given(t *testing.T, desc string, fn func(t *testing.T)) bool {
	return step(t, "Given", desc, fn)
}

func When(t *testing.T, desc string, fn func(t *testing.T)) bool {
	return step(t, "When", desc, fn)
}

func Then(t *testing.T, desc string, fn func(t *testing.T)) bool {
	return step(t, "Then", desc, fn)
}

func step(t *testing.T, keyword, desc string, fn func(t *testing.T)) bool {
	t.Helper()
	return t.Run(keyword+" "+desc, fn)
}
