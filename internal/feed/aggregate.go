package feed

import "sort"

// DefaultTopCenters is the number of buckets kept for the chart view.
const DefaultTopCenters = 5

// CenterCount is one bucket of the per-center frequency table.
type CenterCount struct {
	Center string `json:"center" yaml:"center"`
	Count  int    `json:"count" yaml:"count"`
}

// CountByCenter computes the full frequency table keyed by center name,
// sorted descending by count. Ties keep first-encountered order, and the
// sum of all counts equals len(reports).
func CountByCenter(reports []Report) []CenterCount {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, r := range reports {
		if _, seen := counts[r.CenterName]; !seen {
			order = append(order, r.CenterName)
		}
		counts[r.CenterName]++
	}

	out := make([]CenterCount, 0, len(order))
	for _, center := range order {
		out = append(out, CenterCount{Center: center, Count: counts[center]})
	}

	// Stable sort preserves first-encountered order among equal counts.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})

	return out
}

// TopCenters truncates the frequency table to the n largest buckets.
// n <= 0 falls back to DefaultTopCenters.
func TopCenters(reports []Report, n int) []CenterCount {
	if n <= 0 {
		n = DefaultTopCenters
	}
	all := CountByCenter(reports)
	if len(all) > n {
		all = all[:n]
	}
	return all
}
