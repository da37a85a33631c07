package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/Shaurya01836/Hackzen-sub006/internal/apperr"
	"github.com/Shaurya01836/Hackzen-sub006/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ResultsService exposes the read-only projections consumed by the UI
// layer: the shortlist of a round and the finalized winners. Rejected
// and unscored submissions never appear here. The winners list is
// cached in Redis since it is immutable between finalize and reset.
type ResultsService struct {
	db  *gorm.DB
	rdb *redis.Client
}

// NewResultsService builds the projector. rdb may be nil, in which
// case caching is skipped entirely.
func NewResultsService(db *gorm.DB, rdb *redis.Client) *ResultsService {
	return &ResultsService{db: db, rdb: rdb}
}

const winnersCacheTTL = 10 * time.Minute

// GetShortlisted returns the round's shortlist ordered by rank. Records
// the engine has since advanced or crowned still belong to the round's
// shortlist and are included.
func (s *ResultsService) GetShortlisted(hackathonID uint, roundIndex int) ([]RankedSubmission, error) {
	var submissions []models.Submission
	err := s.db.Where("hackathon_id = ? AND round_index = ? AND status IN ?",
		hackathonID, roundIndex,
		[]string{models.StatusShortlisted, models.StatusAdvanced, models.StatusWinner}).
		Find(&submissions).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load shortlisted submissions", err)
	}
	return s.rank(submissions)
}

// WinnerEntry joins a podium position with its submission and final
// aggregate.
type WinnerEntry struct {
	Position     int               `json:"position"`
	Submission   models.Submission `json:"submission"`
	AverageScore float64           `json:"average_score"`
	ScoreCount   int               `json:"score_count"`
	AnnouncedAt  time.Time         `json:"announced_at"`
}

// GetWinners returns the finalized podium ordered by position, reading
// through the Redis cache when one is configured.
func (s *ResultsService) GetWinners(hackathonID uint) ([]WinnerEntry, error) {
	cacheKey := s.winnersKey(hackathonID)
	if s.rdb != nil {
		cached, err := s.rdb.Get(context.Background(), cacheKey).Result()
		if err == nil {
			var entries []WinnerEntry
			if err := json.Unmarshal([]byte(cached), &entries); err == nil {
				return entries, nil
			}
		} else if err != redis.Nil {
			log.Printf("results: winners cache read failed: %v", err)
		}
	}

	var winners []models.Winner
	err := s.db.Where("hackathon_id = ?", hackathonID).
		Order("position ASC").
		Find(&winners).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load winners", err)
	}
	if len(winners) == 0 {
		return nil, apperr.New(apperr.KindNotFound, "winners have not been finalized for this hackathon")
	}

	entries := make([]WinnerEntry, 0, len(winners))
	for _, w := range winners {
		var submission models.Submission
		if err := s.db.First(&submission, w.SubmissionID).Error; err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "failed to load winner submission", err)
		}
		var aggregate models.AggregateResult
		if err := s.db.Where("submission_id = ?", w.SubmissionID).First(&aggregate).Error; err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "failed to load winner aggregate", err)
		}
		entries = append(entries, WinnerEntry{
			Position:     w.Position,
			Submission:   submission,
			AverageScore: aggregate.AverageScore,
			ScoreCount:   aggregate.ScoreCount,
			AnnouncedAt:  w.AnnouncedAt,
		})
	}

	if s.rdb != nil {
		if data, err := json.Marshal(entries); err == nil {
			if err := s.rdb.Set(context.Background(), cacheKey, data, winnersCacheTTL).Err(); err != nil {
				log.Printf("results: winners cache write failed: %v", err)
			}
		}
	}
	return entries, nil
}

// InvalidateWinners drops the cached winners list. Called after
// finalize and reset.
func (s *ResultsService) InvalidateWinners(hackathonID uint) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(context.Background(), s.winnersKey(hackathonID)).Err(); err != nil {
		log.Printf("results: winners cache invalidation failed: %v", err)
	}
}

// RoundStatus summarizes a round for the UI: window state, whether
// progression has run, and submission counts by status.
type RoundStatus struct {
	RoundIndex int            `json:"round_index"`
	Open       bool           `json:"open"`
	Closed     bool           `json:"closed"`
	Processed  bool           `json:"processed"`
	Counts     map[string]int `json:"counts"`
}

func (s *ResultsService) GetRoundStatus(hackathonID uint, roundIndex int) (*RoundStatus, error) {
	var round models.Round
	err := s.db.Where("hackathon_id = ? AND round_index = ?", hackathonID, roundIndex).
		First(&round).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "round not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load round", err)
	}

	type statusCount struct {
		Status string
		Count  int
	}
	var rows []statusCount
	err = s.db.Model(&models.Submission{}).
		Select("status, count(*) as count").
		Where("hackathon_id = ? AND round_index = ?", hackathonID, roundIndex).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to count submissions", err)
	}

	now := time.Now()
	status := &RoundStatus{
		RoundIndex: roundIndex,
		Open:       round.Open(now),
		Closed:     round.Closed(now),
		Counts:     make(map[string]int, len(rows)),
	}
	for _, row := range rows {
		status.Counts[row.Status] = row.Count
		if row.Status != models.StatusSubmitted {
			status.Processed = true
		}
	}
	return status, nil
}

// rank joins aggregates onto submissions and orders by average
// descending, ties broken by earlier submission.
func (s *ResultsService) rank(submissions []models.Submission) ([]RankedSubmission, error) {
	if len(submissions) == 0 {
		return nil, nil
	}
	ids := make([]uint, len(submissions))
	for i, sub := range submissions {
		ids[i] = sub.ID
	}
	var aggregates []models.AggregateResult
	if err := s.db.Where("submission_id IN ?", ids).Find(&aggregates).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load aggregates", err)
	}
	byID := make(map[uint]models.AggregateResult, len(aggregates))
	for _, agg := range aggregates {
		byID[agg.SubmissionID] = agg
	}

	ranked := make([]RankedSubmission, 0, len(submissions))
	for _, sub := range submissions {
		agg := byID[sub.ID]
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
		if !ranked[i].Submission.SubmittedAt.Equal(ranked[j].Submission.SubmittedAt) {
			return ranked[i].Submission.SubmittedAt.Before(ranked[j].Submission.SubmittedAt)
		}
		return ranked[i].Submission.ID < ranked[j].Submission.ID
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked, nil
}

func (s *ResultsService) winnersKey(hackathonID uint) string {
	return fmt.Sprintf("results:winners:%d", hackathonID)
}
