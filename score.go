package fontmatch

// CharacterScore computes the fractional non-overlap of two regions for one
// character: (area(union) - area(intersection)) / area(union), the Jaccard
// distance. The result is in [0, 1]: 0 for identical shapes, 1 for disjoint
// ones, and it is symmetric in its arguments. The candidate region should
// already be scale-normalized onto the reference (see ScaleBetween).
//
// When both regions are empty the union area is zero and the ratio is
// undefined; that case is defined as a perfect, vacuous match of 0 rather
// than a division by zero.
func CharacterScore(ref, cand Region) float64 {
	union := ref.Union(cand).Area()
	if union == 0 {
		return 0
	}
	inter := ref.Intersection(cand).Area()
	return (union - inter) / union
}

// AggregateScore averages per-character scores and expresses the result as
// a percentage of difference in [0, 100]. Every requested character must
// have produced a score: callers fail the whole comparison on any
// per-character error rather than silently averaging a partial set, which
// would bias the result.
func AggregateScore(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	var total float64
	for _, s := range scores {
		total += s
	}
	return total / float64(len(scores)) * 100
}
