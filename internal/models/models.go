package models

// Category is the top-level programme category
type Category string

const (
	CategoryArts    Category = "arts"
	CategorySports  Category = "sports"
	CategoryGeneral Category = "general"
)

// Subcategory splits arts programmes into stage and non-stage events.
// The zero value means the programme carries no subcategory.
type Subcategory string

const (
	SubcategoryNone     Subcategory = ""
	SubcategoryStage    Subcategory = "stage"
	SubcategoryNonStage Subcategory = "non-stage"
)

// Section is the age section a programme or candidate belongs to
type Section string

const (
	SectionSenior    Section = "senior"
	SectionJunior    Section = "junior"
	SectionSubJunior Section = "sub-junior"
	SectionGeneral   Section = "general"
)

// PositionType says whether a programme is scored per individual, per team group or per team
type PositionType string

const (
	PositionIndividual PositionType = "individual"
	PositionGroup      PositionType = "group"
	PositionGeneral    PositionType = "general"
)

// Status is the lifecycle state of a result: pending -> checked -> published
type Status string

const (
	StatusPending   Status = "pending"
	StatusChecked   Status = "checked"
	StatusPublished Status = "published"
)

// Next returns the status that follows s in the lifecycle.
// Published is terminal, so ok is false for it and for unknown values.
func (s Status) Next() (next Status, ok bool) {
	switch s {
	case StatusPending:
		return StatusChecked, true
	case StatusChecked:
		return StatusPublished, true
	default:
		return "", false
	}
}

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusChecked || s == StatusPublished
}

// Place is a winning position within a result
type Place int

const (
	FirstPlace Place = iota + 1
	SecondPlace
	ThirdPlace
)

// Places lists every winning position in order
var Places = []Place{FirstPlace, SecondPlace, ThirdPlace}

func (p Place) String() string {
	switch p {
	case FirstPlace:
		return "first"
	case SecondPlace:
		return "second"
	case ThirdPlace:
		return "third"
	default:
		return "unknown"
	}
}

// Team is a festival house/team
type Team struct {
	Code  string `json:"code" yaml:"code"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// Candidate is a festival participant identified by chest number
type Candidate struct {
	ChestNumber string  `json:"chest_number" yaml:"chest_number"`
	Name        string  `json:"name" yaml:"name"`
	Team        string  `json:"team" yaml:"team"`
	Section     Section `json:"section" yaml:"section"`
}

// Programme is a single competition item
type Programme struct {
	ID                   ID           `json:"id" yaml:"id"`
	Code                 string       `json:"code" yaml:"code"`
	Name                 string       `json:"name" yaml:"name"`
	Category             Category     `json:"category" yaml:"category"`
	Subcategory          Subcategory  `json:"subcategory,omitempty" yaml:"subcategory,omitempty"`
	Section              Section      `json:"section" yaml:"section"`
	PositionType         PositionType `json:"position_type" yaml:"position_type"`
	RequiredParticipants int          `json:"required_participants" yaml:"required_participants"`
}

// WinnerEntry is one winner in a place slot. Individual winners carry a chest
// number, team-scored winners carry a team code.
type WinnerEntry struct {
	ChestNumber string `json:"chest_number,omitempty" yaml:"chest_number,omitempty"`
	TeamCode    string `json:"team_code,omitempty" yaml:"team_code,omitempty"`
	Grade       string `json:"grade,omitempty" yaml:"grade,omitempty"`
}

// IsIndividual reports whether the entry names a candidate.
// A chest number takes precedence when both fields are set.
func (w WinnerEntry) IsIndividual() bool {
	return w.ChestNumber != ""
}

// IsTeam reports whether the entry names a team directly
func (w WinnerEntry) IsTeam() bool {
	return w.ChestNumber == "" && w.TeamCode != ""
}

// Result records the winners of one programme.
//
// FirstPoints/SecondPoints/ThirdPoints and the Programme* snapshot fields are
// display caches written at publish time. Scoring always re-resolves the
// programme and recomputes points from the rule table.
type Result struct {
	ID          ID     `json:"id" yaml:"id"`
	ProgrammeID ID     `json:"programme_id" yaml:"programme_id"`
	Status      Status `json:"status" yaml:"status"`

	FirstPlace  []WinnerEntry `json:"first_place,omitempty" yaml:"first_place,omitempty"`
	SecondPlace []WinnerEntry `json:"second_place,omitempty" yaml:"second_place,omitempty"`
	ThirdPlace  []WinnerEntry `json:"third_place,omitempty" yaml:"third_place,omitempty"`

	FirstPlaceTeams  []WinnerEntry `json:"first_place_teams,omitempty" yaml:"first_place_teams,omitempty"`
	SecondPlaceTeams []WinnerEntry `json:"second_place_teams,omitempty" yaml:"second_place_teams,omitempty"`
	ThirdPlaceTeams  []WinnerEntry `json:"third_place_teams,omitempty" yaml:"third_place_teams,omitempty"`

	FirstPoints  int `json:"first_points" yaml:"first_points,omitempty"`
	SecondPoints int `json:"second_points" yaml:"second_points,omitempty"`
	ThirdPoints  int `json:"third_points" yaml:"third_points,omitempty"`

	ProgrammeName     string       `json:"programme_name,omitempty" yaml:"programme_name,omitempty"`
	ProgrammeCategory Category     `json:"programme_category,omitempty" yaml:"programme_category,omitempty"`
	Section           Section      `json:"section,omitempty" yaml:"section,omitempty"`
	PositionType      PositionType `json:"position_type,omitempty" yaml:"position_type,omitempty"`

	UpdatedAt string `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// Winners returns every entry recorded for a place, individual slot first,
// then the team slot.
func (r *Result) Winners(p Place) []WinnerEntry {
	var individual, teams []WinnerEntry
	switch p {
	case FirstPlace:
		individual, teams = r.FirstPlace, r.FirstPlaceTeams
	case SecondPlace:
		individual, teams = r.SecondPlace, r.SecondPlaceTeams
	case ThirdPlace:
		individual, teams = r.ThirdPlace, r.ThirdPlaceTeams
	default:
		return nil
	}
	if len(teams) == 0 {
		return individual
	}
	out := make([]WinnerEntry, 0, len(individual)+len(teams))
	out = append(out, individual...)
	return append(out, teams...)
}

// CachedPoints returns the stored display copy of the points for a place
func (r *Result) CachedPoints(p Place) int {
	switch p {
	case FirstPlace:
		return r.FirstPoints
	case SecondPlace:
		return r.SecondPoints
	case ThirdPlace:
		return r.ThirdPoints
	default:
		return 0
	}
}

// HasWinners reports whether any place slot holds an entry
func (r *Result) HasWinners() bool {
	for _, p := range Places {
		if len(r.Winners(p)) > 0 {
			return true
		}
	}
	return false
}
