package photocache

import "time"

// Capacity policy: 40% of a 1024 KB budget.
const (
	DefaultBudgetKB   = 1024
	DefaultRatio      = 0.4
	DefaultCapacityKB = 409
)

// KeyPrefix is prepended to photo ids to form cache keys.
const KeyPrefix = "cache-"

// Photo is the metadata the cache needs about a stored photo.
type Photo struct {
	ID      string
	SizeKB  int
	Created time.Time
}

// Key returns the cache key for a photo id.
func Key(id string) string {
	return KeyPrefix + id
}

// Value returns 1/secondsSinceCreation. Ages under one second, including
// creation times in the future, count as one second.
func Value(created, now time.Time) float64 {
	secs := now.Sub(created).Seconds()
	if secs < 1 {
		secs = 1
	}
	return 1 / secs
}

// Candidates converts photos to knapsack candidates valued at now.
func Candidates(photos []Photo, now time.Time) []Candidate {
	out := make([]Candidate, 0, len(photos))
	for _, p := range photos {
		out = append(out, Candidate{ID: p.ID, SizeKB: p.SizeKB, Value: Value(p.Created, now)})
	}
	return out
}

// CapacityFor returns floor(budgetKB * ratio).
func CapacityFor(budgetKB int, ratio float64) int {
	return int(float64(budgetKB) * ratio)
}
