package photocache

import (
	"math"
	"reflect"
	"testing"
)

func ids(cs []Candidate) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

func sized(size int) []Candidate {
	return []Candidate{
		{ID: "1", SizeKB: size, Value: .2},
		{ID: "2", SizeKB: size, Value: .5},
		{ID: "3", SizeKB: size, Value: .8},
		{ID: "4", SizeKB: size, Value: .3},
	}
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name       string
		candidates []Candidate
		capacity   int
		want       []string
	}{
		{
			name: "best pair",
			candidates: []Candidate{
				{ID: "1", SizeKB: 80, Value: .2},
				{ID: "2", SizeKB: 150, Value: .5},
				{ID: "3", SizeKB: 210, Value: .8},
				{ID: "4", SizeKB: 130, Value: .3},
			},
			capacity: DefaultCapacityKB,
			want:     []string{"3", "2"},
		},
		{"none fit", sized(500), DefaultCapacityKB, []string{}},
		{"all fit", sized(10), DefaultCapacityKB, []string{"4", "3", "2", "1"}},
		{"empty", nil, DefaultCapacityKB, []string{}},
		{"zero capacity", sized(10), 0, []string{}},
		{"negative capacity", sized(10), -5, []string{}},
		{"exact fit", sized(100), 200, []string{"3", "2"}},
		{
			name: "unusable candidates ignored",
			candidates: []Candidate{
				{ID: "zero-size", SizeKB: 0, Value: 5},
				{ID: "negative-size", SizeKB: -10, Value: 5},
				{ID: "zero-value", SizeKB: 10, Value: 0},
				{ID: "ok", SizeKB: 10, Value: .1},
			},
			capacity: 100,
			want:     []string{"ok"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(tt.candidates, tt.capacity)
			if got == nil {
				t.Fatal("Select should return a non-nil slice")
			}
			if g := ids(got); !reflect.DeepEqual(g, tt.want) {
				t.Errorf("got %v, want %v", g, tt.want)
			}
			if TotalSizeKB(got) > tt.capacity && len(got) > 0 {
				t.Errorf("selection of %d KB exceeds capacity %d", TotalSizeKB(got), tt.capacity)
			}
		})
	}
}

func TestSelect_TieUsesLessCapacity(t *testing.T) {
	// "a" alone and "b" alone score the same; "a" is smaller.
	got := Select([]Candidate{
		{ID: "a", SizeKB: 50, Value: .5},
		{ID: "b", SizeKB: 60, Value: .5},
	}, 60)

	if g := ids(got); !reflect.DeepEqual(g, []string{"a"}) {
		t.Errorf("got %v, want [a]", g)
	}
}

func TestSelect_Optimal(t *testing.T) {
	// Greedy by value density picks "dense" and misses the better pair.
	candidates := []Candidate{
		{ID: "dense", SizeKB: 10, Value: .3},
		{ID: "big1", SizeKB: 50, Value: .6},
		{ID: "big2", SizeKB: 50, Value: .6},
	}

	got := Select(candidates, 100)
	if g := ids(got); !reflect.DeepEqual(g, []string{"big2", "big1"}) {
		t.Errorf("got %v, want [big2 big1]", g)
	}
}

func TestSelect_HugeCapacity(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		want     []string
	}{
		{"max int", math.MaxInt, []string{"4", "3", "2", "1"}},
		{"one billion", 1_000_000_000, []string{"4", "3", "2", "1"}},
		{"just under the total", 39, []string{"4", "3", "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(sized(10), tt.capacity)
			if g := ids(got); !reflect.DeepEqual(g, tt.want) {
				t.Errorf("got %v, want %v", g, tt.want)
			}
		})
	}
}

func TestFittingSizeKB(t *testing.T) {
	tests := []struct {
		name       string
		candidates []Candidate
		capacity   int
		want       int
	}{
		{"sum below capacity", sized(10), 1000, 40},
		{"capped at capacity", sized(10), 25, 25},
		{"oversized ignored", []Candidate{{ID: "a", SizeKB: 500, Value: 1}, {ID: "b", SizeKB: 5, Value: 1}}, 100, 5},
		{"unusable ignored", []Candidate{{ID: "a", SizeKB: 5, Value: 0}, {ID: "b", SizeKB: -5, Value: 1}}, 100, 0},
		{"no overflow", []Candidate{{ID: "a", SizeKB: math.MaxInt - 1, Value: 1}, {ID: "b", SizeKB: 10, Value: 1}}, math.MaxInt, math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fittingSizeKB(tt.candidates, tt.capacity); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCapacityFor(t *testing.T) {
	if got := CapacityFor(DefaultBudgetKB, DefaultRatio); got != DefaultCapacityKB {
		t.Errorf("got %d, want %d", got, DefaultCapacityKB)
	}
}
