package scoring

import (
	"github.com/abrezinsky/scoreboard/internal/models"
)

// Diagnostics counts the contributions an aggregation pass had to drop or
// correct. None of these conditions stop the pass.
type Diagnostics struct {
	ResultsConsidered    int `json:"results_considered"`
	ResultsOutOfScope    int `json:"results_out_of_scope"`
	UnresolvedProgrammes int `json:"unresolved_programmes"`
	UnclassifiedEntries  int `json:"unclassified_entries"`
	UnresolvedCandidates int `json:"unresolved_candidates"`
	UnresolvedTeams      int `json:"unresolved_teams"`
	MalformedEntries     int `json:"malformed_entries"`
	UnknownGrades        int `json:"unknown_grades"`
	CachedPointsDrift    int `json:"cached_points_drift"`
}

// Unresolved is the number of references that matched no record
func (d Diagnostics) Unresolved() int {
	return d.UnresolvedProgrammes + d.UnresolvedCandidates + d.UnresolvedTeams
}

// Clean reports whether every in-scope contribution was scored as recorded
func (d Diagnostics) Clean() bool {
	return d.Unresolved() == 0 && d.MalformedEntries == 0 && d.UnknownGrades == 0 && d.CachedPointsDrift == 0
}

// Add accumulates another set of counts into d
func (d *Diagnostics) Add(other Diagnostics) {
	d.ResultsConsidered += other.ResultsConsidered
	d.ResultsOutOfScope += other.ResultsOutOfScope
	d.UnresolvedProgrammes += other.UnresolvedProgrammes
	d.UnclassifiedEntries += other.UnclassifiedEntries
	d.UnresolvedCandidates += other.UnresolvedCandidates
	d.UnresolvedTeams += other.UnresolvedTeams
	d.MalformedEntries += other.MalformedEntries
	d.UnknownGrades += other.UnknownGrades
	d.CachedPointsDrift += other.CachedPointsDrift
}

// Scope is the set of result statuses an aggregation counts.
// A nil Scope counts every status.
type Scope []models.Status

var (
	// PublicScope counts published results only
	PublicScope = Scope{models.StatusPublished}
	// AdminScope previews checked and published results
	AdminScope = Scope{models.StatusChecked, models.StatusPublished}
)

// Includes reports whether a result with the given status is in scope
func (s Scope) Includes(status models.Status) bool {
	if s == nil {
		return true
	}
	st := normalizeKey(string(status))
	for _, allowed := range s {
		if st == string(allowed) {
			return true
		}
	}
	return false
}

// ParseScope maps "public" and "admin" to their scopes
func ParseScope(name string) (Scope, bool) {
	switch normalizeKey(name) {
	case "public", "":
		return PublicScope, true
	case "admin":
		return AdminScope, true
	case "all":
		return nil, true
	default:
		return nil, false
	}
}
