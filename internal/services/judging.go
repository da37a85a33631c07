package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Shaurya01836/Hackzen-sub006/internal/apperr"
	"github.com/Shaurya01836/Hackzen-sub006/internal/models"

	"gorm.io/gorm"
)

// JudgingService accepts per-judge score entries, validates them
// against the round's criteria and keeps AggregateResult in step with
// every Score write.
type JudgingService struct {
	db       *gorm.DB
	criteria *CriteriaService
	locks    *keyedMutex
}

func NewJudgingService(db *gorm.DB, criteria *CriteriaService) *JudgingService {
	return &JudgingService{db: db, criteria: criteria, locks: newKeyedMutex()}
}

// SubmitScore upserts the (judge, submission) score entry and
// recomputes the submission's aggregate in the same transaction, so a
// Score row can never be observed alongside a stale aggregate.
// Concurrent scores for the same submission serialize on a
// per-submission lock.
func (s *JudgingService) SubmitScore(judgeID, submissionID uint, values map[string]float64, feedback string) (*models.AggregateResult, error) {
	key := fmt.Sprintf("submission:%d", submissionID)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	var submission models.Submission
	if err := s.db.First(&submission, submissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "submission not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load submission", err)
	}

	var hackathon models.Hackathon
	if err := s.db.First(&hackathon, submission.HackathonID).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load hackathon", err)
	}

	criteria, err := s.criteria.GetCriteria(submission.HackathonID, submission.RoundIndex, hackathon.SubmissionType)
	if err != nil {
		return nil, err
	}

	if err := validateScoreMap(criteria, values); err != nil {
		return nil, err
	}

	var aggregate *models.AggregateResult
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var score models.Score
		err := tx.Where("judge_id = ? AND submission_id = ?", judgeID, submissionID).
			First(&score).Error
		switch {
		case err == nil:
			// Re-score: overwrite, never duplicate.
		case errors.Is(err, gorm.ErrRecordNotFound):
			score = models.Score{JudgeID: judgeID, SubmissionID: submissionID}
		default:
			return err
		}

		if err := score.SetValueMap(values); err != nil {
			return err
		}
		score.Feedback = feedback
		if err := tx.Save(&score).Error; err != nil {
			return err
		}

		aggregate, err = recomputeAggregate(tx, submissionID, criteria)
		return err
	})
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to record score", err)
	}
	return aggregate, nil
}

// GetAggregate returns the current aggregate for a submission. An
// unscored submission yields a zero aggregate with ScoreCount 0 rather
// than an error.
func (s *JudgingService) GetAggregate(submissionID uint) (*models.AggregateResult, error) {
	var aggregate models.AggregateResult
	err := s.db.Where("submission_id = ?", submissionID).First(&aggregate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.AggregateResult{SubmissionID: submissionID}, nil
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load aggregate", err)
	}
	return &aggregate, nil
}

// ListScores returns all judge entries for a submission.
func (s *JudgingService) ListScores(submissionID uint) ([]models.Score, error) {
	var scores []models.Score
	err := s.db.Where("submission_id = ?", submissionID).
		Order("judge_id ASC").
		Find(&scores).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list scores", err)
	}
	return scores, nil
}

func validateScoreMap(criteria []models.Criterion, values map[string]float64) error {
	known := make(map[string]models.Criterion, len(criteria))
	for _, c := range criteria {
		known[c.Name] = c
	}

	for name := range values {
		if _, ok := known[name]; !ok {
			return apperr.Newf(apperr.KindInvalidScore, "unknown criterion: %s", name)
		}
	}
	for _, c := range criteria {
		value, ok := values[c.Name]
		if !ok {
			return apperr.Newf(apperr.KindInvalidScore, "missing score for criterion: %s", c.Name)
		}
		if value < 0 || value > c.MaxScore {
			return apperr.Newf(apperr.KindInvalidScore, "score for criterion %s must be between 0 and %g", c.Name, c.MaxScore)
		}
	}
	return nil
}

// weightedAverage normalizes each raw value to a 0-10 scale before
// weighting, so criteria with different max scores are comparable.
func weightedAverage(criteria []models.Criterion, values map[string]float64) float64 {
	var weightedSum, weightTotal float64
	for _, c := range criteria {
		normalized := values[c.Name] / c.MaxScore * 10
		weightedSum += c.Weight * normalized
		weightTotal += c.Weight
	}
	if weightTotal == 0 {
		return 0
	}
	return weightedSum / weightTotal
}

// recomputeAggregate rebuilds a submission's aggregate from all of its
// score rows inside the caller's transaction.
func recomputeAggregate(tx *gorm.DB, submissionID uint, criteria []models.Criterion) (*models.AggregateResult, error) {
	var scores []models.Score
	if err := tx.Where("submission_id = ?", submissionID).Find(&scores).Error; err != nil {
		return nil, err
	}

	var total float64
	for _, score := range scores {
		values, err := score.ValueMap()
		if err != nil {
			return nil, err
		}
		total += weightedAverage(criteria, values)
	}

	average := 0.0
	if len(scores) > 0 {
		average = total / float64(len(scores))
	}

	var aggregate models.AggregateResult
	err := tx.Where("submission_id = ?", submissionID).First(&aggregate).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		aggregate = models.AggregateResult{SubmissionID: submissionID}
	case err != nil:
		return nil, err
	}

	aggregate.AverageScore = average
	aggregate.ScoreCount = len(scores)
	aggregate.UpdatedAt = time.Now()
	if err := tx.Save(&aggregate).Error; err != nil {
		return nil, err
	}
	return &aggregate, nil
}
