package services

import (
	"errors"
	"time"

	"github.com/Shaurya01836/Hackzen-sub006/internal/apperr"
	"github.com/Shaurya01836/Hackzen-sub006/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubmissionService owns the participant-facing half of the submission
// lifecycle: creation and in-place edits while the round is live. All
// other status transitions belong to the progression engine.
type SubmissionService struct {
	db *gorm.DB
}

func NewSubmissionService(db *gorm.DB) *SubmissionService {
	return &SubmissionService{db: db}
}

// Owner identifies the team or participant a submission belongs to.
type Owner struct {
	Type string
	ID   uint
}

type SubmitInput struct {
	ProjectURL       string
	FileURL          string
	ProblemStatement models.ProblemStatement
}

func (s *SubmissionService) Submit(hackathonID uint, roundIndex int, owner Owner, in SubmitInput) (*models.Submission, error) {
	hackathon, round, err := s.loadRound(hackathonID, roundIndex)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if now.Before(round.StartDate) {
		return nil, apperr.New(apperr.KindValidation, "round has not started yet")
	}
	if now.After(round.EndDate) {
		return nil, apperr.New(apperr.KindDeadlineExceeded, "round submission deadline has passed")
	}

	if owner.Type != models.OwnerTypeTeam && owner.Type != models.OwnerTypeParticipant {
		return nil, apperr.New(apperr.KindValidation, "invalid submission owner type")
	}

	var existing int64
	err = s.db.Model(&models.Submission{}).
		Where("hackathon_id = ? AND round_index = ? AND owner_type = ? AND owner_id = ?",
			hackathonID, roundIndex, owner.Type, owner.ID).
		Count(&existing).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to check existing submissions", err)
	}

	if hackathon.SubmissionType == models.SubmissionTypeSingleProject && existing > 0 {
		return nil, apperr.New(apperr.KindDuplicateSubmission, "an active submission already exists for this round")
	}
	if limit := round.MaxSubmissionsPerParticipant; limit != nil && existing >= int64(*limit) {
		return nil, apperr.Newf(apperr.KindDuplicateSubmission, "submission limit of %d reached for this round", *limit)
	}

	statement := in.ProblemStatement
	if statement.Type == "" {
		statement.Type = models.ProblemTypeText
	}

	submission := models.Submission{
		PublicID:         uuid.NewString(),
		HackathonID:      hackathonID,
		RoundIndex:       roundIndex,
		OwnerType:        owner.Type,
		OwnerID:          owner.ID,
		ProjectURL:       in.ProjectURL,
		FileURL:          in.FileURL,
		ProblemStatement: statement,
		Status:           models.StatusSubmitted,
		SubmittedAt:      now,
	}
	if err := s.db.Create(&submission).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to create submission", err)
	}
	return &submission, nil
}

type EditInput struct {
	ProjectURL       *string
	FileURL          *string
	ProblemStatement *models.ProblemStatement
}

// Edit mutates a live submission in place. Once the progression engine
// has moved the record out of submitted, participants are locked out.
func (s *SubmissionService) Edit(submissionID uint, owner Owner, in EditInput) (*models.Submission, error) {
	var submission models.Submission
	if err := s.db.First(&submission, submissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "submission not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load submission", err)
	}

	if submission.OwnerType != owner.Type || submission.OwnerID != owner.ID {
		return nil, apperr.New(apperr.KindForbidden, "submission belongs to a different owner")
	}
	if !submission.Editable() {
		return nil, apperr.Newf(apperr.KindNotEditable, "submission is %s and can no longer be edited", submission.Status)
	}

	_, round, err := s.loadRound(submission.HackathonID, submission.RoundIndex)
	if err != nil {
		return nil, err
	}
	if time.Now().After(round.EndDate) {
		return nil, apperr.New(apperr.KindDeadlineExceeded, "round submission deadline has passed")
	}

	if in.ProjectURL != nil {
		submission.ProjectURL = *in.ProjectURL
	}
	if in.FileURL != nil {
		submission.FileURL = *in.FileURL
	}
	if in.ProblemStatement != nil {
		submission.ProblemStatement = *in.ProblemStatement
		if submission.ProblemStatement.Type == "" {
			submission.ProblemStatement.Type = models.ProblemTypeText
		}
	}

	if err := s.db.Save(&submission).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to update submission", err)
	}
	return &submission, nil
}

func (s *SubmissionService) Get(submissionID uint) (*models.Submission, error) {
	var submission models.Submission
	if err := s.db.First(&submission, submissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "submission not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load submission", err)
	}
	return &submission, nil
}

func (s *SubmissionService) ListByRound(hackathonID uint, roundIndex int) ([]models.Submission, error) {
	var submissions []models.Submission
	err := s.db.Where("hackathon_id = ? AND round_index = ?", hackathonID, roundIndex).
		Order("submitted_at ASC").
		Find(&submissions).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list submissions", err)
	}
	return submissions, nil
}

func (s *SubmissionService) loadRound(hackathonID uint, roundIndex int) (*models.Hackathon, *models.Round, error) {
	var hackathon models.Hackathon
	err := s.db.Preload("Rounds").First(&hackathon, hackathonID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.New(apperr.KindNotFound, "hackathon not found")
		}
		return nil, nil, apperr.Wrap(apperr.KindInternal, "failed to load hackathon", err)
	}
	round := hackathon.RoundAt(roundIndex)
	if round == nil {
		return nil, nil, apperr.New(apperr.KindNotFound, "round not found")
	}
	return &hackathon, round, nil
}
