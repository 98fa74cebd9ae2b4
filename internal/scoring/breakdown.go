package scoring

import (
	"github.com/abrezinsky/scoreboard/internal/models"
)

// ScoredWinner is one winner entry with the points it earns, for result pages
type ScoredWinner struct {
	Place       string  `json:"place"`
	ChestNumber string  `json:"chest_number,omitempty"`
	TeamCode    string  `json:"team_code,omitempty"`
	Name        string  `json:"name"`
	Grade       string  `json:"grade,omitempty"`
	Points      float64 `json:"points"`
	Resolved    bool    `json:"resolved"`
}

// Breakdown scores every winner of one enriched result. Unresolvable winners
// are listed with zero points so result pages can still show them.
func Breakdown(er EnrichedResult, roster *Roster) []ScoredWinner {
	var out []ScoredWinner
	rules := PointsFor(er.ProgrammeSection, er.ProgrammePositionType)

	for _, place := range models.Places {
		for _, w := range er.Result.Winners(place) {
			sw := ScoredWinner{
				Place:       place.String(),
				ChestNumber: w.ChestNumber,
				TeamCode:    w.TeamCode,
				Grade:       w.Grade,
			}

			switch {
			case w.IsIndividual():
				if c, ok := roster.Candidate(w.ChestNumber); ok {
					sw.Name = c.Name
					sw.TeamCode = c.Team
					_, sw.Resolved = roster.Team(c.Team)
				}
			case w.IsTeam():
				if t, ok := roster.Team(w.TeamCode); ok {
					sw.Name = t.Name
					sw.Resolved = true
				}
			}

			if sw.Resolved && er.Resolved {
				sw.Points = rules.For(place) + GradeBonus(w.Grade)
			}
			out = append(out, sw)
		}
	}
	return out
}
