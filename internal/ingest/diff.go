// Package ingest implements the incremental side of aggregation: diffing
// a fresh scrape against stored state and tracking posting lifecycle, so
// only genuinely new postings need expensive downstream work.
package ingest

// Diff partitions the IDs of one scrape against the store's active set.
type Diff struct {
	// New — in the current scrape but not in the store.
	New []string
	// StillActive — in both.
	StillActive []string
	// Missing — open in the store but absent from the current scrape.
	Missing []string
}

// CalculateDiff compares the IDs found by the current scrape with the IDs
// currently open in the store. The three result sets are disjoint and
// together cover currentIDs ∪ activeIDs.
func CalculateDiff(currentIDs, activeIDs map[string]bool) Diff {
	var d Diff
	for id := range currentIDs {
		if activeIDs[id] {
			d.StillActive = append(d.StillActive, id)
		} else {
			d.New = append(d.New, id)
		}
	}
	for id := range activeIDs {
		if !currentIDs[id] {
			d.Missing = append(d.Missing, id)
		}
	}
	return d
}

// IDSet builds a membership set from a slice of IDs.
func IDSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
