package services

import (
	"errors"
	"time"

	"github.com/Shaurya01836/Hackzen-sub006/internal/apperr"
	"github.com/Shaurya01836/Hackzen-sub006/internal/models"

	"gorm.io/gorm"
)

// HackathonService ingests and serves hackathon/round configuration.
// Authoring UIs live elsewhere; this is the boundary they write
// through, and the core reads the result as fixed input.
type HackathonService struct {
	db *gorm.DB
}

func NewHackathonService(db *gorm.DB) *HackathonService {
	return &HackathonService{db: db}
}

type RoundInput struct {
	Name                         string    `json:"name" binding:"required,min=1,max=255"`
	Type                         string    `json:"type" binding:"required"`
	Description                  string    `json:"description"`
	StartDate                    time.Time `json:"start_date" binding:"required"`
	EndDate                      time.Time `json:"end_date" binding:"required"`
	MaxSubmissionsPerParticipant *int      `json:"max_submissions_per_participant"`
}

type HackathonInput struct {
	Title          string       `json:"title" binding:"required,min=1,max=255"`
	SubmissionType string       `json:"submission_type" binding:"required"`
	RoundMode      string       `json:"round_mode" binding:"required"`
	WinnerCount    int          `json:"winner_count" binding:"required,gt=0"`
	Rounds         []RoundInput `json:"rounds" binding:"required,min=1,dive"`
}

func (s *HackathonService) Create(in HackathonInput) (*models.Hackathon, error) {
	if in.SubmissionType != models.SubmissionTypeSingleProject && in.SubmissionType != models.SubmissionTypeMultiProject {
		return nil, apperr.New(apperr.KindValidation, "invalid submission type")
	}
	if in.RoundMode != models.RoundModeSingle && in.RoundMode != models.RoundModeMulti {
		return nil, apperr.New(apperr.KindValidation, "invalid round mode")
	}
	if in.RoundMode == models.RoundModeSingle && len(in.Rounds) != 1 {
		return nil, apperr.New(apperr.KindValidation, "single-round hackathons must define exactly one round")
	}
	for i, r := range in.Rounds {
		if !models.ValidRoundType(r.Type) {
			return nil, apperr.Newf(apperr.KindValidation, "invalid round type: %s", r.Type)
		}
		if !r.EndDate.After(r.StartDate) {
			return nil, apperr.Newf(apperr.KindValidation, "round %d must end after it starts", i)
		}
	}

	hackathon := models.Hackathon{
		Title:          in.Title,
		SubmissionType: in.SubmissionType,
		RoundMode:      in.RoundMode,
		WinnerCount:    in.WinnerCount,
	}
	for i, r := range in.Rounds {
		hackathon.Rounds = append(hackathon.Rounds, models.Round{
			Index:                        i,
			Name:                         r.Name,
			Type:                         r.Type,
			Description:                  r.Description,
			StartDate:                    r.StartDate,
			EndDate:                      r.EndDate,
			MaxSubmissionsPerParticipant: r.MaxSubmissionsPerParticipant,
		})
	}

	if err := s.db.Create(&hackathon).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to create hackathon", err)
	}
	return &hackathon, nil
}

func (s *HackathonService) Get(hackathonID uint) (*models.Hackathon, error) {
	var hackathon models.Hackathon
	err := s.db.Preload("Rounds", func(db *gorm.DB) *gorm.DB {
		return db.Order("round_index ASC")
	}).First(&hackathon, hackathonID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "hackathon not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load hackathon", err)
	}
	return &hackathon, nil
}

func (s *HackathonService) List() ([]models.Hackathon, error) {
	var hackathons []models.Hackathon
	err := s.db.Preload("Rounds", func(db *gorm.DB) *gorm.DB {
		return db.Order("round_index ASC")
	}).Order("created_at DESC").Find(&hackathons).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list hackathons", err)
	}
	return hackathons, nil
}
