package scoring

import (
	"cmp"
	"math"
	"slices"
)

// Dimension selects which point field a ranking sorts by
type Dimension string

const (
	DimensionTotal    Dimension = "total"
	DimensionArts     Dimension = "arts"
	DimensionSports   Dimension = "sports"
	DimensionStage    Dimension = "stage"
	DimensionNonStage Dimension = "non-stage"
)

// Dimensions lists every supported ranking dimension
var Dimensions = []Dimension{DimensionTotal, DimensionArts, DimensionSports, DimensionStage, DimensionNonStage}

// ParseDimension accepts a dimension name case-insensitively. An empty
// string means total.
func ParseDimension(s string) (Dimension, bool) {
	key := normalizeKey(s)
	if key == "" {
		return DimensionTotal, true
	}
	if key == "nonstage" {
		return DimensionNonStage, true
	}
	for _, d := range Dimensions {
		if key == string(d) {
			return d, true
		}
	}
	return "", false
}

// For returns the point field selected by d
func (t Totals) For(d Dimension) float64 {
	switch d {
	case DimensionArts:
		return t.ArtsPoints
	case DimensionSports:
		return t.SportsPoints
	case DimensionStage:
		return t.StagePoints
	case DimensionNonStage:
		return t.NonStagePoints
	default:
		return t.Points
	}
}

// RankedEntry is one row of a leaderboard. Points is the value of the
// ranked dimension; Totals carries the full breakdown.
type RankedEntry struct {
	Rank        int     `json:"rank"`
	Key         string  `json:"key"`
	DisplayName string  `json:"display_name"`
	Team        string  `json:"team,omitempty"`
	Points      float64 `json:"points"`
	Totals      Totals  `json:"totals"`
}

// DisplayPoints rounds Points for presentation
func (e RankedEntry) DisplayPoints() int {
	return int(math.Round(e.Points))
}

// Rank sorts the accumulators descending by the chosen dimension. Ties keep
// insertion order and ranks are assigned by position.
func Rank(totals *TotalsMap, d Dimension) []RankedEntry {
	all := totals.All()
	entries := make([]RankedEntry, 0, len(all))
	for _, t := range all {
		entries = append(entries, RankedEntry{
			Key:         t.Key,
			DisplayName: t.DisplayName,
			Team:        t.Team,
			Points:      t.Totals.For(d),
			Totals:      t.Totals,
		})
	}

	slices.SortStableFunc(entries, func(a, b RankedEntry) int {
		return cmp.Compare(b.Points, a.Points)
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// WithoutZero drops entries that scored nothing in the ranked dimension.
// Ranks stay contiguous because zero scorers sort last.
func WithoutZero(entries []RankedEntry) []RankedEntry {
	out := make([]RankedEntry, 0, len(entries))
	for _, e := range entries {
		if e.Points == 0 {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Filter returns a new map holding the accumulators keep accepts, in the
// same order. The accumulators themselves are shared, not copied.
func (m *TotalsMap) Filter(keep func(*Total) bool) *TotalsMap {
	out := newTotalsMap(len(m.keys))
	for _, k := range m.keys {
		if t := m.byKey[k]; keep(t) {
			out.insert(t)
		}
	}
	return out
}
