package version

import "testing"

func TestString(t *testing.T) {
	oldV, oldC := Version, Commit
	t.Cleanup(func() { Version, Commit = oldV, oldC })

	Version, Commit = "1.2.3", ""
	if got := String(); got != "1.2.3" {
		t.Errorf("expected 1.2.3, got %s", got)
	}

	Commit = "abc123"
	if got := String(); got != "1.2.3 (abc123)" {
		t.Errorf("expected commit suffix, got %s", got)
	}
}
