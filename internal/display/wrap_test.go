package display

import (
	"strings"
	"testing"
)

func TestWrap(t *testing.T) {
	long := strings.Repeat("lantern ", 20)

	for _, line := range strings.Split(Wrap(long), "\n") {
		if len(line) > DefaultWidth {
			t.Errorf("line longer than %d: %q", DefaultWidth, line)
		}
	}
}

func TestWrap_ShortTextUnchanged(t *testing.T) {
	if got := Wrap("safe"); got != "safe" {
		t.Errorf("Wrap(%q) = %q", "safe", got)
	}
}
