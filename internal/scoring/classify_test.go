package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abrezinsky/scoreboard/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		er          EnrichedResult
		bucket      Bucket
		subcategory models.Subcategory
		kind        Kind
		stage       bool
		nonStage    bool
	}{
		{
			name:   "arts stage individual",
			er:     EnrichedResult{Resolved: true, ProgrammeCategory: "Arts", ProgrammeSubcategory: "STAGE", ProgrammePositionType: "individual"},
			bucket: BucketArts, subcategory: models.SubcategoryStage, kind: KindIndividual, stage: true,
		},
		{
			name:   "arts non-stage alias",
			er:     EnrichedResult{Resolved: true, ProgrammeCategory: "arts", ProgrammeSubcategory: "nonstage", ProgrammePositionType: "group"},
			bucket: BucketArts, subcategory: models.SubcategoryNonStage, kind: KindGroup, nonStage: true,
		},
		{
			name:   "arts without subcategory",
			er:     EnrichedResult{Resolved: true, ProgrammeCategory: "arts", ProgrammePositionType: "general"},
			bucket: BucketArts, kind: KindGeneral,
		},
		{
			name:   "sports ignores subcategory",
			er:     EnrichedResult{Resolved: true, ProgrammeCategory: "sports", ProgrammeSubcategory: "stage"},
			bucket: BucketSports,
		},
		{
			name:   "general category",
			er:     EnrichedResult{Resolved: true, ProgrammeCategory: "general"},
			bucket: BucketOther,
		},
		{
			name:   "unresolved",
			er:     EnrichedResult{ProgrammeCategory: "arts", ProgrammeSubcategory: "stage"},
			bucket: BucketOther,
		},
		{
			name:   "name never inspected",
			er:     EnrichedResult{Resolved: true, ProgrammeName: "Stage Drama (Arts)", ProgrammeCategory: "general"},
			bucket: BucketOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(tt.er)
			assert.Equal(t, tt.bucket, c.Bucket)
			assert.Equal(t, tt.subcategory, c.Subcategory)
			assert.Equal(t, tt.kind, c.Kind)
			assert.Equal(t, tt.stage, c.Stage())
			assert.Equal(t, tt.nonStage, c.NonStage())
		})
	}
}

func TestScope(t *testing.T) {
	assert.True(t, PublicScope.Includes(models.StatusPublished))
	assert.False(t, PublicScope.Includes(models.StatusChecked))
	assert.True(t, AdminScope.Includes("Checked"))
	assert.False(t, AdminScope.Includes(models.StatusPending))
	assert.True(t, Scope(nil).Includes("anything"))

	s, ok := ParseScope("ADMIN")
	assert.True(t, ok)
	assert.Equal(t, AdminScope, s)

	s, ok = ParseScope("")
	assert.True(t, ok)
	assert.Equal(t, PublicScope, s)

	s, ok = ParseScope("all")
	assert.True(t, ok)
	assert.Nil(t, s)

	_, ok = ParseScope("secret")
	assert.False(t, ok)
}

func TestDiagnostics_Add(t *testing.T) {
	d := Diagnostics{ResultsConsidered: 1, UnresolvedTeams: 2}
	d.Add(Diagnostics{ResultsConsidered: 2, UnresolvedProgrammes: 1, CachedPointsDrift: 4})

	assert.Equal(t, 3, d.ResultsConsidered)
	assert.Equal(t, 3, d.Unresolved())
	assert.Equal(t, 4, d.CachedPointsDrift)
	assert.False(t, d.Clean())
	assert.True(t, Diagnostics{ResultsConsidered: 9, ResultsOutOfScope: 3}.Clean())
}
