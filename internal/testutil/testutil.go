package testutil

import (
	"context"
	"testing"

	"github.com/abrezinsky/scoreboard/internal/models"
	"github.com/abrezinsky/scoreboard/internal/repository"
	"github.com/abrezinsky/scoreboard/internal/scoring"
)

// NewTestRepository creates a new in-memory repository for testing.
// Each call creates a fresh database with all migrations applied.
func NewTestRepository(t *testing.T) *repository.Repository {
	t.Helper()

	repo, err := repository.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	return repo
}

// FestivalSnapshot returns a small festival: three teams, four candidates,
// five programmes and no results.
func FestivalSnapshot() scoring.Snapshot {
	return scoring.Snapshot{
		Teams: []models.Team{
			{Code: "AQS", Name: "Aquarius", Color: "#1e88e5"},
			{Code: "SMD", Name: "Samudra", Color: "#43a047"},
			{Code: "VYU", Name: "Vayu", Color: "#fb8c00"},
		},
		Candidates: []models.Candidate{
			{ChestNumber: "AQS001", Name: "Anwar", Team: "AQS", Section: models.SectionSenior},
			{ChestNumber: "AQS002", Name: "Bilal", Team: "AQS", Section: models.SectionJunior},
			{ChestNumber: "SMD001", Name: "Chitra", Team: "SMD", Section: models.SectionSenior},
			{ChestNumber: "VYU001", Name: "Devi", Team: "VYU", Section: models.SectionSubJunior},
		},
		Programmes: []models.Programme{
			{ID: "p-song", Code: "A01", Name: "Light Music", Category: models.CategoryArts, Subcategory: models.SubcategoryStage, Section: models.SectionSenior, PositionType: models.PositionIndividual},
			{ID: "p-essay", Code: "A02", Name: "Essay", Category: models.CategoryArts, Subcategory: models.SubcategoryNonStage, Section: models.SectionJunior, PositionType: models.PositionIndividual},
			{ID: "p-drama", Code: "A03", Name: "Drama", Category: models.CategoryArts, Section: models.SectionGeneral, PositionType: models.PositionGroup},
			{ID: "p-100m", Code: "S01", Name: "100m", Category: models.CategorySports, Section: models.SectionGeneral, PositionType: models.PositionIndividual},
			{ID: "p-quiz", Code: "G01", Name: "Quiz", Category: models.CategoryGeneral, Section: models.SectionGeneral, PositionType: models.PositionGeneral},
		},
	}
}

// SeedRoster writes the teams, candidates and programmes of snap into repo
func SeedRoster(t *testing.T, repo repository.FullRepository, snap scoring.Snapshot) {
	t.Helper()
	ctx := context.Background()

	for _, team := range snap.Teams {
		if err := repo.UpsertTeam(ctx, team); err != nil {
			t.Fatalf("seed team %s: %v", team.Code, err)
		}
	}
	for _, c := range snap.Candidates {
		if err := repo.UpsertCandidate(ctx, c); err != nil {
			t.Fatalf("seed candidate %s: %v", c.ChestNumber, err)
		}
	}
	for _, p := range snap.Programmes {
		if err := repo.UpsertProgramme(ctx, p); err != nil {
			t.Fatalf("seed programme %s: %v", p.ID, err)
		}
	}
}

// SeedResult stores a result with the given status and returns its id
func SeedResult(t *testing.T, repo repository.FullRepository, res models.Result) models.ID {
	t.Helper()
	id, err := repo.CreateResult(context.Background(), res)
	if err != nil {
		t.Fatalf("seed result for %s: %v", res.ProgrammeID, err)
	}
	return id
}
