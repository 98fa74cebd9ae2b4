package services

import (
	"context"
	"strings"

	"github.com/abrezinsky/scoreboard/internal/errors"
	"github.com/abrezinsky/scoreboard/internal/logger"
	"github.com/abrezinsky/scoreboard/internal/models"
	"github.com/abrezinsky/scoreboard/internal/repository"
	"github.com/abrezinsky/scoreboard/internal/scoring"
)

// ResultServiceRepository defines the repository methods needed by ResultService
type ResultServiceRepository interface {
	repository.ProgrammeRepository
	repository.ResultRepository
}

// ResultService handles recording results and moving them through
// pending -> checked -> published.
type ResultService struct {
	log  logger.Logger
	repo ResultServiceRepository
}

// NewResultService creates a new ResultService
func NewResultService(log logger.Logger, repo ResultServiceRepository) *ResultService {
	return &ResultService{log: log, repo: repo}
}

// Winners is the editable winner list of a result
type Winners struct {
	FirstPlace       []models.WinnerEntry `json:"first_place"`
	SecondPlace      []models.WinnerEntry `json:"second_place"`
	ThirdPlace       []models.WinnerEntry `json:"third_place"`
	FirstPlaceTeams  []models.WinnerEntry `json:"first_place_teams"`
	SecondPlaceTeams []models.WinnerEntry `json:"second_place_teams"`
	ThirdPlaceTeams  []models.WinnerEntry `json:"third_place_teams"`
}

func (w Winners) slots() [][]models.WinnerEntry {
	return [][]models.WinnerEntry{
		w.FirstPlace, w.SecondPlace, w.ThirdPlace,
		w.FirstPlaceTeams, w.SecondPlaceTeams, w.ThirdPlaceTeams,
	}
}

// validate trims every entry and rejects entries that name nobody
func (w *Winners) validate() error {
	for _, slot := range w.slots() {
		for i := range slot {
			slot[i].ChestNumber = strings.TrimSpace(slot[i].ChestNumber)
			slot[i].TeamCode = strings.TrimSpace(slot[i].TeamCode)
			slot[i].Grade = strings.TrimSpace(slot[i].Grade)
			if slot[i].ChestNumber == "" && slot[i].TeamCode == "" {
				return errors.Validation("every winner needs a chest number or a team code")
			}
			if slot[i].Grade != "" && !scoring.KnownGrade(slot[i].Grade) {
				return errors.Validationf("unknown grade %q", slot[i].Grade)
			}
		}
	}
	return nil
}

func (w Winners) applyTo(r *models.Result) {
	r.FirstPlace = w.FirstPlace
	r.SecondPlace = w.SecondPlace
	r.ThirdPlace = w.ThirdPlace
	r.FirstPlaceTeams = w.FirstPlaceTeams
	r.SecondPlaceTeams = w.SecondPlaceTeams
	r.ThirdPlaceTeams = w.ThirdPlaceTeams
}

// ListResults returns every result regardless of status
func (s *ResultService) ListResults(ctx context.Context) ([]models.Result, error) {
	return s.repo.ListResults(ctx)
}

// GetResult returns a result by id
func (s *ResultService) GetResult(ctx context.Context, id models.ID) (*models.Result, error) {
	r, err := s.repo.GetResult(ctx, id)
	if err == repository.ErrNotFound {
		return nil, errors.NotFoundf("result %s not found", id)
	}
	return r, err
}

// CreateResult records a pending result for an existing programme. Only one
// result may exist per programme.
func (s *ResultService) CreateResult(ctx context.Context, programmeID models.ID, winners Winners) (models.ID, error) {
	programmeID = models.NormalizeID(string(programmeID))
	if programmeID.IsZero() {
		return "", errors.Validation("programme_id is required")
	}
	if err := winners.validate(); err != nil {
		return "", err
	}

	if _, err := s.repo.GetProgramme(ctx, programmeID); err == repository.ErrNotFound {
		return "", errors.NotFoundf("programme %s not found", programmeID)
	} else if err != nil {
		return "", err
	}

	res := models.Result{ProgrammeID: programmeID, Status: models.StatusPending}
	winners.applyTo(&res)

	id, err := s.repo.CreateResult(ctx, res)
	if err == repository.ErrDuplicate {
		return "", errors.Conflictf("programme %s already has a result", programmeID)
	}
	if err != nil {
		return "", err
	}

	s.log.Info("result created", "result_id", id, "programme_id", programmeID)
	return id, nil
}

// UpdateWinners replaces the winners of a result without changing its status.
// Published results keep their cached display points in sync. When the
// programme has been removed the previous caches are kept.
func (s *ResultService) UpdateWinners(ctx context.Context, id models.ID, winners Winners) (*models.Result, error) {
	if err := winners.validate(); err != nil {
		return nil, err
	}

	res, err := s.GetResult(ctx, id)
	if err != nil {
		return nil, err
	}
	winners.applyTo(res)

	if res.Status == models.StatusPublished {
		err := s.refreshDisplayCache(ctx, res)
		if err == repository.ErrNotFound {
			s.log.Warn("programme removed, keeping cached display fields", "result_id", res.ID, "programme_id", res.ProgrammeID)
		} else if err != nil {
			return nil, err
		}
	}

	if err := s.repo.UpdateResult(ctx, *res); err != nil {
		return nil, err
	}
	s.log.Info("result winners updated", "result_id", res.ID, "status", res.Status)
	return res, nil
}

// Advance moves a result one step along pending -> checked -> published.
// Publishing refreshes the result's display caches from the live programme
// and rule table.
func (s *ResultService) Advance(ctx context.Context, id models.ID) (*models.Result, error) {
	res, err := s.GetResult(ctx, id)
	if err != nil {
		return nil, err
	}

	next, ok := res.Status.Next()
	if !ok {
		return nil, errors.Validationf("result %s is %s and cannot advance", res.ID, res.Status)
	}

	if next == models.StatusPublished {
		if !res.HasWinners() {
			return nil, ErrNoWinners
		}
		err := s.refreshDisplayCache(ctx, res)
		if err == repository.ErrNotFound {
			return nil, errors.Validationf("programme %s no longer exists", res.ProgrammeID)
		}
		if err != nil {
			return nil, err
		}
	}

	prev := res.Status
	res.Status = next
	if err := s.repo.UpdateResult(ctx, *res); err != nil {
		return nil, err
	}

	s.log.Info("result advanced", "result_id", res.ID, "from", prev, "to", next)
	return res, nil
}

// Publish advances a checked result to published. Any other starting status
// is a validation error.
func (s *ResultService) Publish(ctx context.Context, id models.ID) (*models.Result, error) {
	res, err := s.GetResult(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.Status != models.StatusChecked {
		return nil, errors.Validationf("result %s is %s; only checked results can be published", res.ID, res.Status)
	}
	return s.Advance(ctx, id)
}

// refreshDisplayCache copies the live programme snapshot fields and rule
// table points onto the result. Scoring never reads these fields. It returns
// repository.ErrNotFound untouched when the programme is gone.
func (s *ResultService) refreshDisplayCache(ctx context.Context, res *models.Result) error {
	p, err := s.repo.GetProgramme(ctx, res.ProgrammeID)
	if err != nil {
		return err
	}

	points := scoring.PointsFor(p.Section, p.PositionType)
	res.ProgrammeName = p.Name
	res.ProgrammeCategory = p.Category
	res.Section = p.Section
	res.PositionType = p.PositionType
	res.FirstPoints = int(points.First)
	res.SecondPoints = int(points.Second)
	res.ThirdPoints = int(points.Third)
	return nil
}

// DeleteResult removes a result
func (s *ResultService) DeleteResult(ctx context.Context, id models.ID) error {
	err := s.repo.DeleteResult(ctx, id)
	if err == repository.ErrNotFound {
		return errors.NotFoundf("result %s not found", id)
	}
	if err != nil {
		return err
	}
	s.log.Info("result deleted", "result_id", id)
	return nil
}
