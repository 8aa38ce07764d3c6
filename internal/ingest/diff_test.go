package ingest_test

import (
	"sort"
	"testing"

	"github.com/project-hirewire/go-aggregator/internal/ingest"
)

func sorted(s []string) []string {
	out := append([]string(nil), s...)
	sort.Strings(out)
	return out
}

func TestCalculateDiff(t *testing.T) {
	current := ingest.IDSet([]string{"a", "b", "c"})
	active := ingest.IDSet([]string{"b", "c", "d", "e"})

	diff := ingest.CalculateDiff(current, active)

	if got := sorted(diff.New); len(got) != 1 || got[0] != "a" {
		t.Errorf("New = %v, want [a]", got)
	}
	if got := sorted(diff.StillActive); len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Errorf("StillActive = %v, want [b c]", got)
	}
	if got := sorted(diff.Missing); len(got) != 2 || got[0] != "d" || got[1] != "e" {
		t.Errorf("Missing = %v, want [d e]", got)
	}
}

func TestCalculateDiff_PartitionLaws(t *testing.T) {
	current := ingest.IDSet([]string{"1", "2", "3", "4"})
	active := ingest.IDSet([]string{"3", "4", "5"})

	diff := ingest.CalculateDiff(current, active)

	// The three sets are disjoint and cover the union.
	seen := make(map[string]int)
	for _, id := range diff.New {
		seen[id]++
	}
	for _, id := range diff.StillActive {
		seen[id]++
	}
	for _, id := range diff.Missing {
		seen[id]++
	}

	union := make(map[string]bool)
	for id := range current {
		union[id] = true
	}
	for id := range active {
		union[id] = true
	}

	if len(seen) != len(union) {
		t.Errorf("diff covers %d ids, union has %d", len(seen), len(union))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("id %s appears in %d partitions, want exactly 1", id, n)
		}
	}
}

func TestCalculateDiff_EmptySets(t *testing.T) {
	diff := ingest.CalculateDiff(nil, nil)
	if len(diff.New)+len(diff.StillActive)+len(diff.Missing) != 0 {
		t.Errorf("diff of empty sets should be empty, got %+v", diff)
	}

	diff = ingest.CalculateDiff(ingest.IDSet([]string{"a"}), nil)
	if len(diff.New) != 1 || len(diff.Missing) != 0 {
		t.Errorf("first scrape should be all new, got %+v", diff)
	}

	diff = ingest.CalculateDiff(nil, ingest.IDSet([]string{"a"}))
	if len(diff.Missing) != 1 || len(diff.New) != 0 {
		t.Errorf("empty scrape should miss everything, got %+v", diff)
	}
}
