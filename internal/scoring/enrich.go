package scoring

import (
	"github.com/abrezinsky/scoreboard/internal/models"
)

// EnrichedResult is a result joined with its live programme record.
// When the programme cannot be found Resolved is false and the Programme*
// fields are empty.
type EnrichedResult struct {
	Result models.Result `json:"result"`

	ProgrammeName         string              `json:"programme_name,omitempty"`
	ProgrammeCode         string              `json:"programme_code,omitempty"`
	ProgrammeCategory     models.Category     `json:"programme_category,omitempty"`
	ProgrammeSubcategory  models.Subcategory  `json:"programme_subcategory,omitempty"`
	ProgrammeSection      models.Section      `json:"programme_section,omitempty"`
	ProgrammePositionType models.PositionType `json:"programme_position_type,omitempty"`

	Resolved bool `json:"resolved"`
}

// ProgrammeIndex maps normalized programme ids to programmes
type ProgrammeIndex map[models.ID]models.Programme

// IndexProgrammes builds a lookup keyed by normalized id. The first programme
// wins when ids collide.
func IndexProgrammes(programmes []models.Programme) ProgrammeIndex {
	idx := make(ProgrammeIndex, len(programmes))
	for _, p := range programmes {
		key := models.NormalizeID(string(p.ID))
		if key == "" {
			continue
		}
		if _, exists := idx[key]; exists {
			continue
		}
		idx[key] = p
	}
	return idx
}

// Lookup finds a programme by id after normalizing it
func (idx ProgrammeIndex) Lookup(id models.ID) (models.Programme, bool) {
	p, ok := idx[models.NormalizeID(string(id))]
	return p, ok
}

// Enrich joins one result with its programme. The snapshot fields stored on
// the result are never consulted.
func Enrich(r models.Result, programmes ProgrammeIndex) EnrichedResult {
	er := EnrichedResult{Result: r}

	p, ok := programmes.Lookup(r.ProgrammeID)
	if !ok {
		return er
	}

	er.ProgrammeName = p.Name
	er.ProgrammeCode = p.Code
	er.ProgrammeCategory = p.Category
	er.ProgrammeSubcategory = p.Subcategory
	er.ProgrammeSection = p.Section
	er.ProgrammePositionType = p.PositionType
	er.Resolved = true
	return er
}

// EnrichAll enriches every result in input order
func EnrichAll(results []models.Result, programmes []models.Programme) []EnrichedResult {
	idx := IndexProgrammes(programmes)
	out := make([]EnrichedResult, 0, len(results))
	for _, r := range results {
		out = append(out, Enrich(r, idx))
	}
	return out
}

// Roster resolves chest numbers and team codes against the supplied
// candidate and team collections, preserving their order.
type Roster struct {
	teams      []models.Team
	candidates []models.Candidate
	teamIdx    map[string]int
	candIdx    map[string]int
}

// NewRoster indexes teams by code and candidates by chest number.
// Matching is case-insensitive; the first record wins on duplicates.
func NewRoster(teams []models.Team, candidates []models.Candidate) *Roster {
	r := &Roster{
		teamIdx: make(map[string]int, len(teams)),
		candIdx: make(map[string]int, len(candidates)),
	}
	for _, t := range teams {
		key := normalizeKey(t.Code)
		if key == "" {
			continue
		}
		if _, exists := r.teamIdx[key]; exists {
			continue
		}
		r.teamIdx[key] = len(r.teams)
		r.teams = append(r.teams, t)
	}
	for _, c := range candidates {
		key := normalizeKey(c.ChestNumber)
		if key == "" {
			continue
		}
		if _, exists := r.candIdx[key]; exists {
			continue
		}
		r.candIdx[key] = len(r.candidates)
		r.candidates = append(r.candidates, c)
	}
	return r
}

// Teams returns the indexed teams in input order
func (r *Roster) Teams() []models.Team {
	return r.teams
}

// Candidates returns the indexed candidates in input order
func (r *Roster) Candidates() []models.Candidate {
	return r.candidates
}

// Team looks up a team by code
func (r *Roster) Team(code string) (models.Team, bool) {
	i, ok := r.teamIdx[normalizeKey(code)]
	if !ok {
		return models.Team{}, false
	}
	return r.teams[i], true
}

// Candidate looks up a candidate by chest number
func (r *Roster) Candidate(chestNumber string) (models.Candidate, bool) {
	i, ok := r.candIdx[normalizeKey(chestNumber)]
	if !ok {
		return models.Candidate{}, false
	}
	return r.candidates[i], true
}

// TeamOf resolves the team a chest number belongs to
func (r *Roster) TeamOf(chestNumber string) (models.Team, bool) {
	c, ok := r.Candidate(chestNumber)
	if !ok {
		return models.Team{}, false
	}
	return r.Team(c.Team)
}
