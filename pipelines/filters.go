package pipelines

import (
	"sort"

	"github.com/profscan/profscan-go/refdata"
)

// KeyFunc derives a partition key from a row.
type KeyFunc func(*HitRow) string

func byTarget(r *HitRow) string { return r.Target }

// BestHitPerTarget retains exactly one row per target protein: the one with
// the highest score. Ties are broken by input order (the first-encountered
// row wins; the running best is only replaced on a strictly greater score).
// Output is ordered by target ascending.
func BestHitPerTarget(rows []*HitRow) []*HitRow {
	return BestHitPerKey(rows, byTarget)
}

// BestHitPerKey is BestHitPerTarget partitioned by an arbitrary key.
// Output is ordered by key ascending.
func BestHitPerKey(rows []*HitRow, key KeyFunc) []*HitRow {
	best := make(map[string]*HitRow)
	for _, r := range rows {
		k := key(r)
		cur, ok := best[k]
		if !ok || r.ScoreValue() > cur.ScoreValue() {
			best[k] = r
		}
	}
	keys := make([]string, 0, len(best))
	for k := range best {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*HitRow, 0, len(keys))
	for _, k := range keys {
		out = append(out, best[k])
	}
	return out
}

// overlapFraction returns the overlap of two intervals as a fraction of the
// shorter one. Both intervals must be non-degenerate (end > start).
func overlapFraction(aStart, aEnd, bStart, bEnd int) float64 {
	ov := minInt(aEnd, bEnd) - maxInt(aStart, bStart)
	if ov <= 0 {
		return 0
	}
	shorter := minInt(aEnd-aStart, bEnd-bStart)
	return float64(ov) / float64(shorter)
}

// NonOverlappingHits greedily selects rows that do not overlap an
// already-accepted row by more than threshold of the shorter interval. Rows
// must be sorted by score descending; rows with degenerate or unparsable
// coordinates are always accepted and never compared. The selection is
// greedy, not globally optimal.
func NonOverlappingHits(rows []*HitRow, threshold float64) []*HitRow {
	kept := make([]*HitRow, 0, len(rows))
	for _, r := range rows {
		s, e, ok := r.Coords()
		if !ok {
			kept = append(kept, r)
			continue
		}
		redundant := false
		for _, k := range kept {
			ks, ke, ok := k.Coords()
			if !ok {
				continue
			}
			if overlapFraction(s, e, ks, ke) > threshold {
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, r)
		}
	}
	return kept
}

// NonOverlappingPerKey partitions rows by key, applies NonOverlappingHits
// within each partition (sorted by score descending), then merges and
// re-sorts the survivors by (target ascending, score descending).
func NonOverlappingPerKey(rows []*HitRow, key KeyFunc, threshold float64) []*HitRow {
	groups := make(map[string][]*HitRow)
	var order []string
	for _, r := range rows {
		k := key(r)
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], r)
	}

	out := make([]*HitRow, 0, len(rows))
	for _, k := range order {
		g := groups[k]
		sort.SliceStable(g, func(i, j int) bool {
			return g[i].ScoreValue() > g[j].ScoreValue()
		})
		out = append(out, NonOverlappingHits(g, threshold)...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Target != out[j].Target {
			return out[i].Target < out[j].Target
		}
		return out[i].ScoreValue() > out[j].ScoreValue()
	})
	return out
}

// HierarchyPrune keeps only the most specific matched entries per target:
// a row is dropped when its id is a direct or transitive ancestor of another
// id matched on the same target. Ids unknown to the hierarchy are never
// related to anything and always survive.
func HierarchyPrune(rows []*HitRow, h *refdata.Hierarchy) []*HitRow {
	if h == nil {
		return rows
	}

	// Union of proper ancestors of all ids matched per target.
	covered := make(map[string]map[string]bool)
	for _, r := range rows {
		anc := h.Ancestors(r.ID())
		if len(anc) == 0 {
			continue
		}
		set := covered[r.Target]
		if set == nil {
			set = make(map[string]bool)
			covered[r.Target] = set
		}
		for a := range anc {
			set[a] = true
		}
	}

	kept := make([]*HitRow, 0, len(rows))
	for _, r := range rows {
		if covered[r.Target][r.ID()] {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// ClanOverlapDedup removes clan-level redundancy per target: candidates are
// visited in score-descending order and dropped when they share a clan with
// an already-accepted row and overlap it by more than threshold of the
// shorter interval. Rows with no clan assignment (clanOf returns "") are
// always accepted without comparison, as are rows with unusable coordinates.
func ClanOverlapDedup(rows []*HitRow, clanOf func(*HitRow) string, threshold float64) []*HitRow {
	groups := make(map[string][]*HitRow)
	var order []string
	for _, r := range rows {
		if _, ok := groups[r.Target]; !ok {
			order = append(order, r.Target)
		}
		groups[r.Target] = append(groups[r.Target], r)
	}

	out := make([]*HitRow, 0, len(rows))
	for _, target := range order {
		g := groups[target]
		sort.SliceStable(g, func(i, j int) bool {
			return g[i].ScoreValue() > g[j].ScoreValue()
		})
		var accepted []*HitRow
		for _, r := range g {
			clan := clanOf(r)
			if clan == "" {
				accepted = append(accepted, r)
				continue
			}
			s, e, ok := r.Coords()
			if !ok {
				accepted = append(accepted, r)
				continue
			}
			redundant := false
			for _, a := range accepted {
				if clanOf(a) != clan {
					continue
				}
				as, ae, ok := a.Coords()
				if !ok {
					continue
				}
				if overlapFraction(s, e, as, ae) > threshold {
					redundant = true
					break
				}
			}
			if !redundant {
				accepted = append(accepted, r)
			}
		}
		out = append(out, accepted...)
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
