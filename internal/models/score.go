package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Score is one judge's entry for one submission. At most one row per
// (judge, submission); re-scoring overwrites in place.
type Score struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	JudgeID      uint           `gorm:"not null;uniqueIndex:idx_score_unique" json:"judge_id"`
	SubmissionID uint           `gorm:"not null;uniqueIndex:idx_score_unique;index" json:"submission_id"`
	Values       datatypes.JSON `gorm:"not null" json:"values"`
	Feedback     string         `gorm:"type:text" json:"feedback,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// ValueMap decodes the stored criterion name → raw value map.
func (s *Score) ValueMap() (map[string]float64, error) {
	values := make(map[string]float64)
	if err := json.Unmarshal(s.Values, &values); err != nil {
		return nil, err
	}
	return values, nil
}

// SetValueMap encodes and stores the criterion name → raw value map.
func (s *Score) SetValueMap(values map[string]float64) error {
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	s.Values = datatypes.JSON(data)
	return nil
}

// AggregateResult is the derived per-submission ranking input: the
// weighted-normalized mean across all judges plus the judge count.
// Maintained by the judging engine in the same transaction as the
// Score write; never mutated by participants or judges directly.
type AggregateResult struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	SubmissionID uint      `gorm:"not null;uniqueIndex" json:"submission_id"`
	AverageScore float64   `gorm:"not null;default:0" json:"average_score"`
	ScoreCount   int       `gorm:"not null;default:0" json:"score_count"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Rank is derived at query time, not persisted.
	Rank int `gorm:"-" json:"rank,omitempty"`
}
