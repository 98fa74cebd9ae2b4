package scoring

import (
	"github.com/abrezinsky/scoreboard/internal/models"
)

// Totals is the point breakdown accumulated for one team or individual
type Totals struct {
	Points         float64 `json:"points"`
	ArtsPoints     float64 `json:"arts_points"`
	SportsPoints   float64 `json:"sports_points"`
	StagePoints    float64 `json:"stage_points"`
	NonStagePoints float64 `json:"non_stage_points"`
	ResultCount    int     `json:"result_count"`
}

func (t *Totals) credit(points float64, c Classification) {
	t.Points += points
	switch c.Bucket {
	case BucketArts:
		t.ArtsPoints += points
		if c.Stage() {
			t.StagePoints += points
		} else if c.NonStage() {
			t.NonStagePoints += points
		}
	case BucketSports:
		t.SportsPoints += points
	}
}

// Plus returns the element-wise sum of t and other
func (t Totals) Plus(other Totals) Totals {
	return Totals{
		Points:         t.Points + other.Points,
		ArtsPoints:     t.ArtsPoints + other.ArtsPoints,
		SportsPoints:   t.SportsPoints + other.SportsPoints,
		StagePoints:    t.StagePoints + other.StagePoints,
		NonStagePoints: t.NonStagePoints + other.NonStagePoints,
		ResultCount:    t.ResultCount + other.ResultCount,
	}
}

// Total is one accumulator. For teams Key is the team code; for individuals
// it is the chest number and Team holds the candidate's team code.
type Total struct {
	Key         string         `json:"key"`
	DisplayName string         `json:"display_name"`
	Team        string         `json:"team,omitempty"`
	Section     models.Section `json:"section,omitempty"`
	Totals

	programmes map[models.ID]struct{}
}

// TeamTotal is the accumulator for one team
type TeamTotal = Total

// IndividualTotal is the accumulator for one candidate
type IndividualTotal = Total

func (t *Total) add(programme models.ID, points float64, c Classification) {
	t.credit(points, c)
	if t.programmes == nil {
		t.programmes = make(map[models.ID]struct{})
	}
	if _, seen := t.programmes[programme]; !seen {
		t.programmes[programme] = struct{}{}
		t.ResultCount++
	}
}

// TotalsMap is an insertion-ordered map of accumulators
type TotalsMap struct {
	keys  []string
	byKey map[string]*Total
}

func newTotalsMap(capacity int) *TotalsMap {
	return &TotalsMap{
		keys:  make([]string, 0, capacity),
		byKey: make(map[string]*Total, capacity),
	}
}

func (m *TotalsMap) insert(t *Total) {
	k := normalizeKey(t.Key)
	if _, exists := m.byKey[k]; exists {
		return
	}
	m.keys = append(m.keys, k)
	m.byKey[k] = t
}

// Get returns the accumulator for a key (case-insensitive)
func (m *TotalsMap) Get(key string) (*Total, bool) {
	t, ok := m.byKey[normalizeKey(key)]
	return t, ok
}

// Len is the number of accumulators
func (m *TotalsMap) Len() int {
	return len(m.keys)
}

// All returns the accumulators in insertion order
func (m *TotalsMap) All() []*Total {
	out := make([]*Total, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, m.byKey[k])
	}
	return out
}

// Snapshot is the full set of records one aggregation runs over
type Snapshot struct {
	Teams      []models.Team      `json:"teams" yaml:"teams"`
	Candidates []models.Candidate `json:"candidates" yaml:"candidates"`
	Programmes []models.Programme `json:"programmes" yaml:"programmes"`
	Results    []models.Result    `json:"results" yaml:"results"`
}

// Report is the outcome of Compute
type Report struct {
	Teams       *TotalsMap  `json:"-"`
	Individuals *TotalsMap  `json:"-"`
	Diagnostics Diagnostics `json:"diagnostics"`
}

// Compute enriches the snapshot's results and aggregates team and individual
// totals in one pass.
func Compute(s Snapshot, scope Scope) *Report {
	roster := NewRoster(s.Teams, s.Candidates)
	enriched := EnrichAll(s.Results, s.Programmes)

	teams := newTeamTotals(roster)
	individuals := newIndividualTotals(roster)
	diag := accumulate(enriched, roster, scope, teams, individuals)

	return &Report{Teams: teams, Individuals: individuals, Diagnostics: diag}
}

// AggregateTeams accumulates per-team totals. Every roster team appears in
// the output, including teams that scored nothing.
func AggregateTeams(results []EnrichedResult, roster *Roster, scope Scope) (*TotalsMap, Diagnostics) {
	teams := newTeamTotals(roster)
	diag := accumulate(results, roster, scope, teams, nil)
	return teams, diag
}

// AggregateIndividuals accumulates per-candidate totals from individual
// winner entries. Team entries have no individual owner and are ignored.
func AggregateIndividuals(results []EnrichedResult, roster *Roster, scope Scope) (*TotalsMap, Diagnostics) {
	individuals := newIndividualTotals(roster)
	diag := accumulate(results, roster, scope, nil, individuals)
	return individuals, diag
}

func newTeamTotals(roster *Roster) *TotalsMap {
	m := newTotalsMap(len(roster.Teams()))
	for _, t := range roster.Teams() {
		m.insert(&Total{Key: t.Code, DisplayName: t.Name, Team: t.Code})
	}
	return m
}

func newIndividualTotals(roster *Roster) *TotalsMap {
	m := newTotalsMap(len(roster.Candidates()))
	for _, c := range roster.Candidates() {
		m.insert(&Total{Key: c.ChestNumber, DisplayName: c.Name, Team: c.Team, Section: c.Section})
	}
	return m
}

// accumulate walks the in-scope results and credits every resolvable winner
// entry. An individual entry credits nothing unless its candidate's team
// resolves. Either map may be nil when only one side is wanted.
func accumulate(results []EnrichedResult, roster *Roster, scope Scope, teams, individuals *TotalsMap) Diagnostics {
	var diag Diagnostics

	for _, er := range results {
		if !scope.Includes(er.Result.Status) {
			diag.ResultsOutOfScope++
			continue
		}
		diag.ResultsConsidered++

		if !er.Resolved {
			diag.UnresolvedProgrammes++
			for _, place := range models.Places {
				diag.UnclassifiedEntries += len(er.Result.Winners(place))
			}
			continue
		}

		cls := Classify(er)
		rules := PointsFor(er.ProgrammeSection, er.ProgrammePositionType)
		programme := models.NormalizeID(string(er.Result.ProgrammeID))

		for _, place := range models.Places {
			winners := er.Result.Winners(place)
			if len(winners) == 0 {
				continue
			}
			if cached := er.Result.CachedPoints(place); cached != 0 && float64(cached) != rules.For(place) {
				diag.CachedPointsDrift++
			}

			for _, w := range winners {
				if !w.IsIndividual() && !w.IsTeam() {
					diag.MalformedEntries++
					continue
				}
				if w.Grade != "" && !KnownGrade(w.Grade) {
					diag.UnknownGrades++
				}
				points := rules.For(place) + GradeBonus(w.Grade)

				if w.IsTeam() {
					if teams == nil {
						continue
					}
					t, ok := teams.Get(w.TeamCode)
					if !ok {
						diag.UnresolvedTeams++
						continue
					}
					t.add(programme, points, cls)
					continue
				}

				cand, ok := roster.Candidate(w.ChestNumber)
				if !ok {
					diag.UnresolvedCandidates++
					continue
				}
				team, ok := roster.TeamOf(cand.ChestNumber)
				if !ok {
					diag.UnresolvedTeams++
					continue
				}
				if individuals != nil {
					if ind, ok := individuals.Get(cand.ChestNumber); ok {
						ind.add(programme, points, cls)
					}
				}
				if teams != nil {
					if t, ok := teams.Get(team.Code); ok {
						t.add(programme, points, cls)
					}
				}
			}
		}
	}

	return diag
}
