package scoring

import (
	"github.com/abrezinsky/scoreboard/internal/models"
)

// Bucket is the category bucket a result's points are credited to
type Bucket string

const (
	BucketArts   Bucket = "arts"
	BucketSports Bucket = "sports"
	BucketOther  Bucket = "other"
)

// Kind is how a programme is contested
type Kind string

const (
	KindIndividual Kind = "individual"
	KindGroup      Kind = "group"
	KindGeneral    Kind = "general"
	KindUnknown    Kind = ""
)

// Classification is the category split of one enriched result
type Classification struct {
	Bucket      Bucket             `json:"bucket"`
	Subcategory models.Subcategory `json:"subcategory,omitempty"`
	Kind        Kind               `json:"kind,omitempty"`
}

// Stage reports whether points go to the stage bucket
func (c Classification) Stage() bool {
	return c.Bucket == BucketArts && c.Subcategory == models.SubcategoryStage
}

// NonStage reports whether points go to the non-stage bucket
func (c Classification) NonStage() bool {
	return c.Bucket == BucketArts && c.Subcategory == models.SubcategoryNonStage
}

// Classify derives the category split strictly from the programme fields.
// Unresolved results classify as other with no subcategory. Programme names
// are never inspected.
func Classify(er EnrichedResult) Classification {
	c := Classification{Bucket: BucketOther, Kind: kindOf(er.ProgrammePositionType)}
	if !er.Resolved {
		return c
	}

	switch normalizeKey(string(er.ProgrammeCategory)) {
	case string(models.CategoryArts):
		c.Bucket = BucketArts
		switch normalizeKey(string(er.ProgrammeSubcategory)) {
		case string(models.SubcategoryStage):
			c.Subcategory = models.SubcategoryStage
		case string(models.SubcategoryNonStage), "nonstage":
			c.Subcategory = models.SubcategoryNonStage
		}
	case string(models.CategorySports):
		c.Bucket = BucketSports
	}
	return c
}

func kindOf(pt models.PositionType) Kind {
	switch normalizeKey(string(pt)) {
	case string(models.PositionIndividual):
		return KindIndividual
	case string(models.PositionGroup):
		return KindGroup
	case string(models.PositionGeneral):
		return KindGeneral
	default:
		return KindUnknown
	}
}
