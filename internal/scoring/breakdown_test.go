package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abrezinsky/scoreboard/internal/models"
)

func TestBreakdown(t *testing.T) {
	r := published("p-song")
	r.FirstPlace = []models.WinnerEntry{{ChestNumber: "aqs001", Grade: "A"}}
	r.FirstPlaceTeams = []models.WinnerEntry{{TeamCode: "SMD"}}
	r.SecondPlace = []models.WinnerEntry{{ChestNumber: "ZZZ999"}}

	s := newFestivalSnapshot()
	roster := NewRoster(s.Teams, s.Candidates)
	got := Breakdown(Enrich(r, IndexProgrammes(s.Programmes)), roster)

	require.Len(t, got, 3)

	assert.Equal(t, "first", got[0].Place)
	assert.Equal(t, "Anwar", got[0].Name)
	assert.Equal(t, "AQS", got[0].TeamCode)
	assert.Equal(t, 8.0, got[0].Points)
	assert.True(t, got[0].Resolved)

	assert.Equal(t, "first", got[1].Place)
	assert.Equal(t, "Samudra", got[1].Name)
	assert.Equal(t, 3.0, got[1].Points)

	assert.Equal(t, "second", got[2].Place)
	assert.False(t, got[2].Resolved)
	assert.Zero(t, got[2].Points)
}

func TestBreakdown_UnresolvedProgrammeScoresZero(t *testing.T) {
	r := published("p-missing")
	r.FirstPlace = []models.WinnerEntry{{ChestNumber: "AQS001"}}

	s := newFestivalSnapshot()
	got := Breakdown(Enrich(r, IndexProgrammes(s.Programmes)), NewRoster(s.Teams, s.Candidates))

	require.Len(t, got, 1)
	assert.True(t, got[0].Resolved)
	assert.Zero(t, got[0].Points)
}

func TestBreakdown_CandidateWithUnknownTeamIsUnresolved(t *testing.T) {
	s := newFestivalSnapshot()
	s.Candidates = append(s.Candidates, models.Candidate{ChestNumber: "XYZ001", Name: "Guest", Team: "XYZ", Section: models.SectionSenior})
	r := published("p-song")
	r.FirstPlace = []models.WinnerEntry{{ChestNumber: "XYZ001", Grade: "A"}}

	got := Breakdown(Enrich(r, IndexProgrammes(s.Programmes)), NewRoster(s.Teams, s.Candidates))

	require.Len(t, got, 1)
	assert.Equal(t, "Guest", got[0].Name)
	assert.Equal(t, "XYZ", got[0].TeamCode)
	assert.False(t, got[0].Resolved)
	assert.Zero(t, got[0].Points)
}
