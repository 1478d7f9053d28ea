package snippets

import (
	"path/filepath"
	"testing"
)

func TestRecordAndList(t *testing.T) {
	h := NewHistoryAt(filepath.Join(t.TempDir(), "snippets"))

	if err := h.Record("Hello World"); err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	if err := h.Record("Second Post"); err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	got, err := h.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	want := []string{
		"POST: Second Post",
		"UPDATE: Second Post",
		"POST: Hello World",
		"UPDATE: Hello World",
	}
	if len(got) != len(want) {
		t.Fatalf("List() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestListEmptyHistory(t *testing.T) {
	h := NewHistoryAt(filepath.Join(t.TempDir(), "missing"))
	got, err := h.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if got != nil {
		t.Errorf("List() = %v, want nil for missing history", got)
	}
}
