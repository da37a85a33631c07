package services

import (
	"errors"

	"github.com/Shaurya01836/Hackzen-sub006/internal/apperr"
	"github.com/Shaurya01836/Hackzen-sub006/internal/models"

	"gorm.io/gorm"
)

// CriteriaService is the scoring criteria registry: the weighted axes
// a round's submissions are judged against, keyed by hackathon, round
// index and submission type.
type CriteriaService struct {
	db *gorm.DB
}

func NewCriteriaService(db *gorm.DB) *CriteriaService {
	return &CriteriaService{db: db}
}

// GetCriteria returns the configured criteria for a round/type pair.
// An empty configuration is reported as not_found so callers can tell
// "judging not configured yet" apart from "zero criteria".
func (s *CriteriaService) GetCriteria(hackathonID uint, roundIndex int, submissionType string) ([]models.Criterion, error) {
	var criteria []models.Criterion
	err := s.db.Where("hackathon_id = ? AND round_index = ? AND submission_type = ?",
		hackathonID, roundIndex, submissionType).
		Order("name ASC").
		Find(&criteria).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load criteria", err)
	}
	if len(criteria) == 0 {
		return nil, apperr.New(apperr.KindNotFound, "no judging criteria configured for this round")
	}
	return criteria, nil
}

type CriterionInput struct {
	Name        string  `json:"name" binding:"required,min=1,max=100"`
	MaxScore    float64 `json:"max_score" binding:"required,gt=0"`
	Weight      float64 `json:"weight" binding:"required,gt=0"`
	Description string  `json:"description"`
}

// ReplaceCriteria swaps out the criteria set for a round/type pair.
// Refused once any score exists against the round, since rescaling
// criteria under recorded scores would silently change rankings.
func (s *CriteriaService) ReplaceCriteria(hackathonID uint, roundIndex int, submissionType string, inputs []CriterionInput) ([]models.Criterion, error) {
	if len(inputs) == 0 {
		return nil, apperr.New(apperr.KindValidation, "at least one criterion is required")
	}
	seen := make(map[string]bool, len(inputs))
	for _, in := range inputs {
		if seen[in.Name] {
			return nil, apperr.Newf(apperr.KindValidation, "duplicate criterion name: %s", in.Name)
		}
		seen[in.Name] = true
	}

	var hackathon models.Hackathon
	if err := s.db.First(&hackathon, hackathonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "hackathon not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load hackathon", err)
	}

	var scored int64
	err := s.db.Model(&models.Score{}).
		Joins("JOIN submissions ON submissions.id = scores.submission_id").
		Where("submissions.hackathon_id = ? AND submissions.round_index = ?", hackathonID, roundIndex).
		Count(&scored).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to check existing scores", err)
	}
	if scored > 0 {
		return nil, apperr.New(apperr.KindNotEditable, "criteria are locked once scores exist for this round")
	}

	criteria := make([]models.Criterion, len(inputs))
	for i, in := range inputs {
		criteria[i] = models.Criterion{
			HackathonID:    hackathonID,
			RoundIndex:     roundIndex,
			SubmissionType: submissionType,
			Name:           in.Name,
			MaxScore:       in.MaxScore,
			Weight:         in.Weight,
			Description:    in.Description,
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("hackathon_id = ? AND round_index = ? AND submission_type = ?",
			hackathonID, roundIndex, submissionType).
			Delete(&models.Criterion{}).Error; err != nil {
			return err
		}
		return tx.Create(&criteria).Error
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to save criteria", err)
	}
	return criteria, nil
}
