package models

import "time"

// Criterion is one weighted judging axis for a round. Scores are entered
// against the criterion's own scale (0..MaxScore) and normalized before
// weighting, so criteria with different scales stay comparable.
type Criterion struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	HackathonID    uint      `gorm:"not null;uniqueIndex:idx_criterion_unique" json:"hackathon_id"`
	RoundIndex     int       `gorm:"not null;uniqueIndex:idx_criterion_unique" json:"round_index"`
	SubmissionType string    `gorm:"size:20;not null;uniqueIndex:idx_criterion_unique" json:"submission_type"`
	Name           string    `gorm:"size:100;not null;uniqueIndex:idx_criterion_unique" json:"name"`
	MaxScore       float64   `gorm:"not null" json:"max_score"`
	Weight         float64   `gorm:"not null" json:"weight"`
	Description    string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
