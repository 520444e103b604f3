package photocache

// Candidate is a photo offered to Select.
type Candidate struct {
	ID     string  `json:"id"`
	SizeKB int     `json:"size_kb"`
	Value  float64 `json:"value"`
}

// Select returns the subset of candidates with the highest total Value whose
// total SizeKB fits within capacityKB.
//
// The result lists the chosen candidates in descending input order. When two
// subsets score the same, the one using less capacity wins, and a candidate
// that adds no value is left out. Candidates with a non-positive size or value
// are never chosen. An empty input or a capacity of 0 or less yields an empty,
// non-nil selection.
//
// The table is sized by the smaller of capacityKB and the combined size of the
// candidates that could fit, so a very large capacity costs no more than one
// that holds everything.
func Select(candidates []Candidate, capacityKB int) []Candidate {
	selected := []Candidate{}
	n := len(candidates)
	if n == 0 || capacityKB <= 0 {
		return selected
	}
	capacityKB = fittingSizeKB(candidates, capacityKB)
	if capacityKB == 0 {
		return selected
	}

	// dp[i][c] is the best value using the first i candidates within c KB.
	dp := make([][]float64, n+1)
	for i := range dp {
		dp[i] = make([]float64, capacityKB+1)
	}

	for i := 1; i <= n; i++ {
		cand := candidates[i-1]
		prev, row := dp[i-1], dp[i]
		for c := 0; c <= capacityKB; c++ {
			row[c] = prev[c]
			if !usable(cand) || cand.SizeKB > c {
				continue
			}
			if v := prev[c-cand.SizeKB] + cand.Value; v > row[c] {
				row[c] = v
			}
		}
	}

	best, c := 0.0, 0
	for w := 0; w <= capacityKB; w++ {
		if dp[n][w] > best {
			best, c = dp[n][w], w
		}
	}

	for i := n; i >= 1; i-- {
		if dp[i][c] > dp[i-1][c] {
			selected = append(selected, candidates[i-1])
			c -= candidates[i-1].SizeKB
		}
	}
	return selected
}

// fittingSizeKB returns the combined size of the usable candidates that fit
// within capacityKB on their own, capped at capacityKB.
func fittingSizeKB(candidates []Candidate, capacityKB int) int {
	total := 0
	for _, c := range candidates {
		if !usable(c) || c.SizeKB > capacityKB {
			continue
		}
		if c.SizeKB >= capacityKB-total {
			return capacityKB
		}
		total += c.SizeKB
	}
	return total
}

func usable(c Candidate) bool {
	return c.SizeKB > 0 && c.Value > 0
}

// TotalSizeKB sums the sizes of candidates.
func TotalSizeKB(candidates []Candidate) int {
	total := 0
	for _, c := range candidates {
		total += c.SizeKB
	}
	return total
}
