package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	old := Version
	Version = "1.2.0"
	t.Cleanup(func() { Version = old })

	got := String()
	for _, want := range []string{"streamcaps 1.2.0", GitCommit, Get().Platform} {
		if !strings.Contains(got, want) {
			t.Errorf("String() = %q, missing %q", got, want)
		}
	}
}
