package complete

import (
	"reflect"
	"testing"
)

func fixed(names ...string) func() []string {
	return func() []string { return names }
}

func TestCompleteEmptyPrefix(t *testing.T) {
	e := NewEngine(fixed("ls"))
	if got := e.Complete("", 0); got.OK || got.Bell || got.List != nil {
		t.Errorf("Complete(\"\") = %+v, want absence", got)
	}
}

func TestCompleteNoMatches(t *testing.T) {
	e := NewEngine(fixed())
	if got := e.Complete("zzz", 0); got.OK || got.Bell || got.List != nil {
		t.Errorf("Complete(zzz) = %+v, want absence", got)
	}
}

func TestCompleteUniqueMatch(t *testing.T) {
	e := NewEngine(fixed())
	got := e.Complete("ech", 0)
	if !got.OK || got.Text != "echo " {
		t.Errorf("Complete(ech, 0) = %+v, want %q", got, "echo ")
	}
	// Retries for the same prefix return absence.
	if got := e.Complete("ech", 1); got.OK {
		t.Errorf("Complete(ech, 1) = %+v, want absence", got)
	}
}

func TestCompleteUniqueExternalMatch(t *testing.T) {
	e := NewEngine(fixed("mytool"))
	got := e.Complete("myt", 0)
	if !got.OK || got.Text != "mytool " {
		t.Errorf("Complete(myt, 0) = %+v", got)
	}
}

func TestCompleteFirstTabExtendsCommonPrefix(t *testing.T) {
	e := NewEngine(fixed("echoer"))
	// Candidates: echo (builtin) and echoer.
	got := e.Complete("ech", 0)
	if !got.OK || got.Text != "echo" {
		t.Errorf("first tab = %+v, want common prefix %q", got, "echo")
	}
	if got.Bell {
		t.Error("a tab that extends the common prefix should not ring the bell")
	}
}

func TestCompleteFirstTabBellWhenNoExtension(t *testing.T) {
	e := NewEngine(fixed("echoer"))
	got := e.Complete("echo", 0)
	if got.OK {
		t.Errorf("first tab = %+v, want no text", got)
	}
	if !got.Bell {
		t.Error("want bell when the common prefix equals the input")
	}
}

func TestCompleteSecondTabLists(t *testing.T) {
	e := NewEngine(fixed("echoer"))
	e.Complete("echo", 0)

	got := e.Complete("echo", 0)
	want := []string{"echo", "echoer"}
	if !reflect.DeepEqual(got.List, want) {
		t.Errorf("second tab list = %v, want %v", got.List, want)
	}
	if got.OK || got.Bell {
		t.Errorf("second tab = %+v, want list only", got)
	}

	// Retries on the same press return absence.
	if got := e.Complete("echo", 1); got.List != nil {
		t.Errorf("Complete(echo, 1) = %+v, want absence", got)
	}
}

func TestCompletePrefixChangeResetsTabCount(t *testing.T) {
	e := NewEngine(fixed("echoer", "extra"))
	e.Complete("echo", 0)
	e.Complete("echo", 0)

	// Different prefix starts over: first tab behavior again.
	got := e.Complete("e", 0)
	if got.List != nil {
		t.Errorf("fresh prefix = %+v, want first-tab behavior", got)
	}
	if !got.Bell && !got.OK {
		t.Errorf("fresh prefix = %+v, want bell or extension", got)
	}
}

func TestCompleteDeduplicates(t *testing.T) {
	// "echo" appears both as a builtin and a PATH executable.
	e := NewEngine(fixed("echo", "echoer"))
	e.Complete("ech", 0)
	got := e.Complete("ech", 0)
	want := []string{"echo", "echoer"}
	if !reflect.DeepEqual(got.List, want) {
		t.Errorf("list = %v, want deduplicated %v", got.List, want)
	}
}

func TestCompleteIdempotentForSamePress(t *testing.T) {
	e := NewEngine(fixed("mytool"))
	first := e.Complete("myt", 0)
	e2 := NewEngine(fixed("mytool"))
	second := e2.Complete("myt", 0)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same prefix, same state: %+v vs %+v", first, second)
	}
}

func TestCommonPrefix(t *testing.T) {
	tests := []struct {
		names []string
		want  string
	}{
		{names: []string{"echo", "echoer"}, want: "echo"},
		{names: []string{"abc", "abd"}, want: "ab"},
		{names: []string{"x", "y"}, want: ""},
		{names: []string{"same", "same"}, want: "same"},
	}
	for _, tt := range tests {
		if got := commonPrefix(tt.names); got != tt.want {
			t.Errorf("commonPrefix(%v) = %q, want %q", tt.names, got, tt.want)
		}
	}
}
