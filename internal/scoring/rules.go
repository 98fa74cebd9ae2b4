// Package scoring turns festival results into team and individual point totals.
//
// Everything in this package is a pure function over a snapshot of records:
// nothing is fetched, persisted or cached, and bad data degrades to zero
// points plus a Diagnostics count instead of an error.
package scoring

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/abrezinsky/scoreboard/internal/models"
)

// PlacePoints holds the base points awarded for first, second and third place
type PlacePoints struct {
	First  float64 `json:"first"`
	Second float64 `json:"second"`
	Third  float64 `json:"third"`
}

// For returns the base points for a place, or 0 for an unknown place
func (p PlacePoints) For(place models.Place) float64 {
	switch place {
	case models.FirstPlace:
		return p.First
	case models.SecondPlace:
		return p.Second
	case models.ThirdPlace:
		return p.Third
	default:
		return 0
	}
}

var (
	generalIndividual = PlacePoints{First: 10, Second: 6, Third: 3}
	generalGroup      = PlacePoints{First: 15, Second: 10, Third: 5}
	sectionIndividual = PlacePoints{First: 3, Second: 2, Third: 1}
	sectionGroup      = PlacePoints{First: 5, Second: 3, Third: 1}
	fallbackPoints    = PlacePoints{First: 1, Second: 1, Third: 1}
)

// gradeBonuses is the canonical grade table. Earlier festival tooling also
// used a 16-step A+..F table; it is not supported.
var gradeBonuses = map[string]float64{
	"a": 5,
	"b": 3,
	"c": 1,
}

// normalizeKey folds case and unifies separators so "Sub Junior",
// "sub_junior" and "SUB-JUNIOR" all compare equal.
func normalizeKey(s string) string {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("_", "-", " ", "-").Replace(s)
	return cases.Fold().String(s)
}

func isAgeSection(section string) bool {
	switch section {
	case string(models.SectionSenior), string(models.SectionJunior), string(models.SectionSubJunior):
		return true
	}
	return false
}

func isTeamScored(positionType string) bool {
	return positionType == string(models.PositionGroup) || positionType == string(models.PositionGeneral)
}

// PointsFor returns the rule table entry for a programme's section and position type.
// Lookups are case-insensitive; any pair outside the table scores 1/1/1.
func PointsFor(section models.Section, positionType models.PositionType) PlacePoints {
	s := normalizeKey(string(section))
	pt := normalizeKey(string(positionType))

	switch {
	case s == string(models.SectionGeneral) && pt == string(models.PositionIndividual):
		return generalIndividual
	case s == string(models.SectionGeneral) && isTeamScored(pt):
		return generalGroup
	case isAgeSection(s) && pt == string(models.PositionIndividual):
		return sectionIndividual
	case isAgeSection(s) && isTeamScored(pt):
		return sectionGroup
	default:
		return fallbackPoints
	}
}

// GradeBonus returns the bonus for a letter grade. Missing or unrecognized
// grades score 0.
func GradeBonus(grade string) float64 {
	return gradeBonuses[normalizeKey(grade)]
}

// KnownGrade reports whether grade appears in the grade table
func KnownGrade(grade string) bool {
	_, ok := gradeBonuses[normalizeKey(grade)]
	return ok
}

// TotalPointsFor returns base points for the place plus the grade bonus
func TotalPointsFor(section models.Section, positionType models.PositionType, place models.Place, grade string) float64 {
	return PointsFor(section, positionType).For(place) + GradeBonus(grade)
}
