package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Shaurya01836/Hackzen-sub006/internal/apperr"
	"github.com/Shaurya01836/Hackzen-sub006/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressionService is the round state machine: it decides which of a
// closed round's submissions advance, and at the terminal round, which
// win. Every run applies its status changes as one transaction, and
// runs for the same round serialize on a per-round lock.
type ProgressionService struct {
	db       *gorm.DB
	notifier Notifier
	locks    *keyedMutex
}

func NewProgressionService(db *gorm.DB, notifier Notifier) *ProgressionService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &ProgressionService{db: db, notifier: notifier, locks: newKeyedMutex()}
}

// Cutoff is the organizer-configured shortlist boundary: either the
// top Count submissions, or everything at or above MinScore.
type Cutoff struct {
	Count    int
	MinScore *float64
}

// RankedSubmission pairs a submission with its aggregate at ranking
// time.
type RankedSubmission struct {
	Submission   models.Submission `json:"submission"`
	AverageScore float64           `json:"average_score"`
	ScoreCount   int               `json:"score_count"`
	Rank         int               `json:"rank"`
}

// ShortlistResult reports what a shortlisting run did. Changed is
// false when the round had already been processed; Unscored lists
// submissions left untouched for organizer attention.
type ShortlistResult struct {
	RunID            string              `json:"run_id"`
	Changed          bool                `json:"changed"`
	AlreadyProcessed bool                `json:"already_processed"`
	Shortlisted      []RankedSubmission  `json:"shortlisted"`
	Rejected         []RankedSubmission  `json:"rejected"`
	Unscored         []models.Submission `json:"unscored"`
}

// Shortlist ranks a closed round's scored submissions and splits them
// into shortlisted and rejected at the cutoff. Re-running on an
// already-processed round is a no-op that reports Changed=false.
func (s *ProgressionService) Shortlist(hackathonID uint, roundIndex int, cutoff Cutoff, override bool) (*ShortlistResult, error) {
	if cutoff.MinScore == nil && cutoff.Count <= 0 {
		return nil, apperr.New(apperr.KindValidation, "shortlist cutoff requires a positive count or a score threshold")
	}

	key := s.roundKey(hackathonID, roundIndex)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	_, round, err := s.loadRound(hackathonID, roundIndex)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if !override && !round.Closed(now) {
		return nil, apperr.New(apperr.KindRoundNotClosed, "round is still accepting submissions")
	}

	result := &ShortlistResult{RunID: uuid.NewString()}

	processed, err := s.roundProcessed(hackathonID, roundIndex)
	if err != nil {
		return nil, err
	}
	if processed {
		result.AlreadyProcessed = true
		return result, nil
	}

	ranked, unscored, err := s.rankRound(hackathonID, roundIndex, []string{models.StatusSubmitted})
	if err != nil {
		return nil, err
	}
	result.Unscored = unscored

	if len(ranked) == 0 {
		return result, nil
	}

	keep := len(ranked)
	if cutoff.MinScore != nil {
		keep = 0
		for _, r := range ranked {
			if r.AverageScore >= *cutoff.MinScore {
				keep++
			}
		}
	} else if cutoff.Count < keep {
		keep = cutoff.Count
	}

	shortlisted := ranked[:keep]
	rejected := ranked[keep:]

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for i := range shortlisted {
			if err := s.setStatus(tx, &shortlisted[i].Submission, models.StatusShortlisted); err != nil {
				return err
			}
		}
		for i := range rejected {
			if err := s.setStatus(tx, &rejected[i].Submission, models.StatusRejected); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to apply shortlist statuses", err)
	}

	for _, r := range shortlisted {
		s.notifier.SubmissionStatusChanged(hackathonID, r.Submission)
	}
	for _, r := range rejected {
		s.notifier.SubmissionStatusChanged(hackathonID, r.Submission)
	}

	result.Changed = true
	result.Shortlisted = shortlisted
	result.Rejected = rejected
	return result, nil
}

// AdvanceResult reports which submissions were carried into the next
// round.
type AdvanceResult struct {
	Changed  bool                `json:"changed"`
	Advanced []models.Submission `json:"advanced"`
}

// Advance creates a next-round submission for every shortlisted record
// in the round and flips the source to advanced. Running twice finds
// no shortlisted records the second time and reports Changed=false.
func (s *ProgressionService) Advance(hackathonID uint, roundIndex int) (*AdvanceResult, error) {
	key := s.roundKey(hackathonID, roundIndex)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	hackathon, _, err := s.loadRound(hackathonID, roundIndex)
	if err != nil {
		return nil, err
	}
	if roundIndex >= hackathon.TerminalRoundIndex() {
		return nil, apperr.New(apperr.KindValidation, "cannot advance past the terminal round")
	}

	var shortlisted []models.Submission
	err = s.db.Where("hackathon_id = ? AND round_index = ? AND status = ?",
		hackathonID, roundIndex, models.StatusShortlisted).
		Order("submitted_at ASC").
		Find(&shortlisted).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load shortlisted submissions", err)
	}

	result := &AdvanceResult{}
	if len(shortlisted) == 0 {
		return result, nil
	}

	now := time.Now()
	created := make([]models.Submission, 0, len(shortlisted))
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for i := range shortlisted {
			source := &shortlisted[i]
			next := models.Submission{
				PublicID:         uuid.NewString(),
				HackathonID:      hackathonID,
				RoundIndex:       roundIndex + 1,
				OwnerType:        source.OwnerType,
				OwnerID:          source.OwnerID,
				ProjectURL:       source.ProjectURL,
				FileURL:          source.FileURL,
				ProblemStatement: source.ProblemStatement,
				Status:           models.StatusSubmitted,
				AdvancedFromID:   &source.ID,
				SubmittedAt:      now,
			}
			if err := tx.Create(&next).Error; err != nil {
				return err
			}
			if err := s.setStatus(tx, source, models.StatusAdvanced); err != nil {
				return err
			}
			created = append(created, next)
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to advance submissions", err)
	}

	for _, source := range shortlisted {
		s.notifier.SubmissionStatusChanged(hackathonID, source)
	}

	result.Changed = true
	result.Advanced = created
	return result, nil
}

// FinalizeResult reports the announced podium.
type FinalizeResult struct {
	Winners []models.Winner    `json:"winners"`
	Ranked  []RankedSubmission `json:"ranked"`
}

// Finalize ranks the terminal round's scored submissions and persists
// immutable Winner records for the top positions. One-shot: a second
// call fails with already_finalized.
func (s *ProgressionService) Finalize(hackathonID uint, winnerCount int, override bool) (*FinalizeResult, error) {
	key := fmt.Sprintf("finalize:%d", hackathonID)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	hackathon, err := s.loadHackathon(hackathonID)
	if err != nil {
		return nil, err
	}
	terminal := hackathon.TerminalRoundIndex()
	if terminal < 0 {
		return nil, apperr.New(apperr.KindValidation, "hackathon has no rounds configured")
	}
	if winnerCount <= 0 {
		winnerCount = hackathon.WinnerCount
	}
	if winnerCount <= 0 {
		return nil, apperr.New(apperr.KindValidation, "winner count must be positive")
	}

	round := hackathon.RoundAt(terminal)
	if !override && !round.Closed(time.Now()) {
		return nil, apperr.New(apperr.KindRoundNotClosed, "terminal round is still accepting submissions")
	}

	var existing int64
	if err := s.db.Model(&models.Winner{}).Where("hackathon_id = ?", hackathonID).Count(&existing).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to check existing winners", err)
	}
	if existing > 0 {
		return nil, apperr.New(apperr.KindAlreadyFinalized, "winners have already been finalized for this hackathon")
	}

	ranked, _, err := s.rankRound(hackathonID, terminal, []string{models.StatusSubmitted, models.StatusShortlisted})
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		return nil, apperr.New(apperr.KindValidation, "no scored submissions in the terminal round")
	}
	if winnerCount > len(ranked) {
		winnerCount = len(ranked)
	}

	now := time.Now()
	winners := make([]models.Winner, 0, winnerCount)
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for i := 0; i < winnerCount; i++ {
			top := &ranked[i]
			prior := top.Submission.Status
			if err := s.setStatus(tx, &top.Submission, models.StatusWinner); err != nil {
				return err
			}
			winner := models.Winner{
				HackathonID:  hackathonID,
				SubmissionID: top.Submission.ID,
				Position:     i + 1,
				AnnouncedAt:  now,
				PriorStatus:  prior,
			}
			if err := tx.Create(&winner).Error; err != nil {
				return err
			}
			winners = append(winners, winner)
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to finalize winners", err)
	}

	for i := 0; i < winnerCount; i++ {
		s.notifier.SubmissionStatusChanged(hackathonID, ranked[i].Submission)
	}
	s.notifier.WinnersAnnounced(hackathonID, winners)

	return &FinalizeResult{Winners: winners, Ranked: ranked}, nil
}

// ResetFinalization deletes the Winner records and returns winner
// submissions to the status finalization displaced. Administrative
// escape hatch only; not part of the normal flow.
func (s *ProgressionService) ResetFinalization(hackathonID uint) error {
	key := fmt.Sprintf("finalize:%d", hackathonID)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	var winners []models.Winner
	if err := s.db.Where("hackathon_id = ?", hackathonID).Find(&winners).Error; err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to load winners", err)
	}
	if len(winners) == 0 {
		return apperr.New(apperr.KindNotFound, "no finalized winners to reset")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, w := range winners {
			restored := w.PriorStatus
			if restored == "" {
				restored = models.StatusSubmitted
			}
			if err := tx.Model(&models.Submission{}).
				Where("id = ?", w.SubmissionID).
				Update("status", restored).Error; err != nil {
				return err
			}
		}
		return tx.Where("hackathon_id = ?", hackathonID).Delete(&models.Winner{}).Error
	})
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to reset finalization", err)
	}
	return nil
}

// rankRound loads the round's submissions in the given statuses, joins
// their aggregates, splits off unscored records and orders the rest by
// average descending with earlier submission winning ties.
func (s *ProgressionService) rankRound(hackathonID uint, roundIndex int, statuses []string) ([]RankedSubmission, []models.Submission, error) {
	var submissions []models.Submission
	err := s.db.Where("hackathon_id = ? AND round_index = ? AND status IN ?",
		hackathonID, roundIndex, statuses).
		Find(&submissions).Error
	if err != nil {
		return nil, nil, apperr.Wrap(apperr.KindInternal, "failed to load submissions", err)
	}
	if len(submissions) == 0 {
		return nil, nil, nil
	}

	ids := make([]uint, len(submissions))
	for i, sub := range submissions {
		ids[i] = sub.ID
	}
	var aggregates []models.AggregateResult
	if err := s.db.Where("submission_id IN ?", ids).Find(&aggregates).Error; err != nil {
		return nil, nil, apperr.Wrap(apperr.KindInternal, "failed to load aggregates", err)
	}
	byID := make(map[uint]models.AggregateResult, len(aggregates))
	for _, agg := range aggregates {
		byID[agg.SubmissionID] = agg
	}

	var ranked []RankedSubmission
	var unscored []models.Submission
	for _, sub := range submissions {
		agg, ok := byID[sub.ID]
		if !ok || agg.ScoreCount == 0 {
			// Unscored is not score zero: leave the record alone and
			// surface it for organizer attention.
			unscored = append(unscored, sub)
			continue
		}
		ranked = append(ranked, RankedSubmission{
			Submission:   sub,
			AverageScore: agg.AverageScore,
			ScoreCount:   agg.ScoreCount,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].AverageScore != ranked[j].AverageScore {
			return ranked[i].AverageScore > ranked[j].AverageScore
		}
		// Documented tie-break: first submitted wins.
		if !ranked[i].Submission.SubmittedAt.Equal(ranked[j].Submission.SubmittedAt) {
			return ranked[i].Submission.SubmittedAt.Before(ranked[j].Submission.SubmittedAt)
		}
		return ranked[i].Submission.ID < ranked[j].Submission.ID
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked, unscored, nil
}

// roundProcessed reports whether a progression run has already touched
// this round.
func (s *ProgressionService) roundProcessed(hackathonID uint, roundIndex int) (bool, error) {
	var count int64
	err := s.db.Model(&models.Submission{}).
		Where("hackathon_id = ? AND round_index = ? AND status IN ?",
			hackathonID, roundIndex,
			[]string{models.StatusShortlisted, models.StatusRejected, models.StatusAdvanced, models.StatusWinner}).
		Count(&count).Error
	if err != nil {
		return false, apperr.Wrap(apperr.KindInternal, "failed to check round state", err)
	}
	return count > 0, nil
}

func (s *ProgressionService) setStatus(tx *gorm.DB, submission *models.Submission, status string) error {
	submission.Status = status
	return tx.Model(&models.Submission{}).
		Where("id = ?", submission.ID).
		Update("status", status).Error
}

func (s *ProgressionService) loadHackathon(hackathonID uint) (*models.Hackathon, error) {
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

func (s *ProgressionService) loadRound(hackathonID uint, roundIndex int) (*models.Hackathon, *models.Round, error) {
	hackathon, err := s.loadHackathon(hackathonID)
	if err != nil {
		return nil, nil, err
	}
	round := hackathon.RoundAt(roundIndex)
	if round == nil {
		return nil, nil, apperr.New(apperr.KindNotFound, "round not found")
	}
	return hackathon, round, nil
}

func (s *ProgressionService) roundKey(hackathonID uint, roundIndex int) string {
	return fmt.Sprintf("round:%d:%d", hackathonID, roundIndex)
}
