package patricia_tree

import (
	"context"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIterKeys_FullEnumeration(t *testing.T) {
	ctx := context.Background()

	items := map[string]int{
		"":     0,
		"key":  1,
		"keys": 2,
		"king": 3,
		"quay": 4,
	}
	tr := NewTreeFromItems(ctx, items)

	got := slices.Collect(tr.IterKeys(""))

	want := make([]string, 0, len(items))
	for key := range items {
		want = append(want, key)
	}
	slices.Sort(want)

	// depth first with children in byte order comes out sorted
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("IterKeys(\"\") mismatch (-want +got):\n%s", diff)
	}
}

func TestIterKeys_Prefix(t *testing.T) {
	ctx := context.Background()
	tr := NewTreeFromItems(ctx, map[string]int{
		"key":  1,
		"keys": 2,
		"king": 3,
		"quay": 4,
	})

	cases := []struct {
		prefix string
		want   []string
	}{
		// prefix ends exactly on the shared "k" branch point
		{"k", []string{"key", "keys", "king"}},
		// prefix ends in the middle of an edge
		{"ke", []string{"key", "keys"}},
		{"ki", []string{"king"}},
		// prefix is itself a live key, it comes first
		{"key", []string{"key", "keys"}},
		{"keys", []string{"keys"}},
		// nothing matches
		{"kong", nil},
		{"keyser", nil},
		{"z", nil},
	}

	for _, c := range cases {
		got := slices.Collect(tr.IterKeys(c.prefix))
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Fatalf("IterKeys(%q) mismatch (-want +got):\n%s", c.prefix, diff)
		}
	}
}

func TestIterKeys_SkipsDeleted(t *testing.T) {
	ctx := context.Background()
	tr := NewTreeFromItems(ctx, map[string]int{"key": 1, "keys": 2, "king": 3})

	tr.Delete(ctx, "key")

	got := slices.Collect(tr.IterKeys(""))
	if diff := cmp.Diff([]string{"keys", "king"}, got); diff != "" {
		t.Fatalf("IterKeys after delete mismatch (-want +got):\n%s", diff)
	}
}

func TestIterItemsAndValues(t *testing.T) {
	ctx := context.Background()

	items := map[string]int{"a": 1, "ab": 2, "b": 3}
	tr := NewTreeFromItems(ctx, items)

	gotItems := map[string]int{}
	for key, value := range tr.IterItems("") {
		gotItems[key] = value
	}
	if diff := cmp.Diff(items, gotItems); diff != "" {
		t.Fatalf("IterItems mismatch (-want +got):\n%s", diff)
	}

	gotValues := slices.Collect(tr.IterValues(""))
	if diff := cmp.Diff([]int{1, 2, 3}, gotValues); diff != "" {
		t.Fatalf("IterValues mismatch (-want +got):\n%s", diff)
	}
}

func TestIter_EarlyBreakAndRestart(t *testing.T) {
	ctx := context.Background()
	tr := NewTreeFromItems(ctx, map[string]int{"a": 1, "b": 2, "c": 3})

	seq := tr.IterKeys("")

	var first []string
	for key := range seq {
		first = append(first, key)
		if len(first) == 2 {
			break
		}
	}
	if diff := cmp.Diff([]string{"a", "b"}, first); diff != "" {
		t.Fatalf("partial consumption mismatch (-want +got):\n%s", diff)
	}

	// re-invoking the sequence restarts from the beginning
	if diff := cmp.Diff([]string{"a", "b", "c"}, slices.Collect(seq)); diff != "" {
		t.Fatalf("restarted sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestScanItems_AllPrefixMatches(t *testing.T) {
	ctx := context.Background()
	tr := NewTreeFromItems(ctx, map[string]int{
		"":        0,
		"k":       1,
		"key":     2,
		"keys":    3,
		"keyhole": 4,
	})

	gotKeys := slices.Collect(tr.ScanKeys("keysmith", 0, -1))

	// every stored prefix of the window in increasing length, terminal
	// root first, not just the longest match
	want := []string{"", "k", "key", "keys"}
	if diff := cmp.Diff(want, gotKeys); diff != "" {
		t.Fatalf("ScanKeys mismatch (-want +got):\n%s", diff)
	}

	gotValues := slices.Collect(tr.ScanValues("keysmith", 0, -1))
	if diff := cmp.Diff([]int{0, 1, 2, 3}, gotValues); diff != "" {
		t.Fatalf("ScanValues mismatch (-want +got):\n%s", diff)
	}

	gotItems := map[string]int{}
	for key, value := range tr.ScanItems("keysmith", 0, -1) {
		gotItems[key] = value
	}
	wantItems := map[string]int{"": 0, "k": 1, "key": 2, "keys": 3}
	if diff := cmp.Diff(wantItems, gotItems); diff != "" {
		t.Fatalf("ScanItems mismatch (-want +got):\n%s", diff)
	}
}

func TestScanItems_Window(t *testing.T) {
	ctx := context.Background()
	tr := NewTreeFromItems(ctx, map[string]int{"and": 1, "an": 2})

	text := "keys and kewl stuff"

	got := slices.Collect(tr.ScanKeys(text, 5, -1))
	if diff := cmp.Diff([]string{"an", "and"}, got); diff != "" {
		t.Fatalf("ScanKeys(text, 5) mismatch (-want +got):\n%s", diff)
	}

	// the window end bounds the matches
	got = slices.Collect(tr.ScanKeys(text, 5, 7))
	if diff := cmp.Diff([]string{"an"}, got); diff != "" {
		t.Fatalf("ScanKeys(text, 5, 7) mismatch (-want +got):\n%s", diff)
	}
}

func TestScanItems_NoMatches(t *testing.T) {
	ctx := context.Background()
	tr := NewTreeFromItems(ctx, map[string]int{"key": 1})

	if got := slices.Collect(tr.ScanKeys("lock", 0, -1)); len(got) != 0 {
		t.Fatalf("ScanKeys(lock) = %v, want empty", got)
	}

	// an invalid window yields an empty sequence rather than panicking
	if got := slices.Collect(tr.ScanKeys("lock", 2, 1)); len(got) != 0 {
		t.Fatalf("ScanKeys with invalid window = %v, want empty", got)
	}
	if got := slices.Collect(tr.ScanKeys("lock", 0, 99)); len(got) != 0 {
		t.Fatalf("ScanKeys with out of bounds window = %v, want empty", got)
	}
}

func TestScanItems_SoftDeletedExcluded(t *testing.T) {
	ctx := context.Background()
	tr := NewTreeFromItems(ctx, map[string]int{"k": 1, "key": 2})

	tr.Delete(ctx, "k")

	got := slices.Collect(tr.ScanKeys("keys", 0, -1))
	if diff := cmp.Diff([]string{"key"}, got); diff != "" {
		t.Fatalf("ScanKeys after delete mismatch (-want +got):\n%s", diff)
	}
}

func TestIter_NilTree(t *testing.T) {
	var tr *Tree[int]

	if got := slices.Collect(tr.IterKeys("")); len(got) != 0 {
		t.Fatalf("IterKeys on nil tree = %v", got)
	}
	if got := slices.Collect(tr.ScanKeys("key", 0, -1)); len(got) != 0 {
		t.Fatalf("ScanKeys on nil tree = %v", got)
	}
}
