package models

import "time"

// Winner records a finalized podium position. Rows are written once by
// finalization and never updated; undoing requires the administrative
// reset, which deletes them outright.
type Winner struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	HackathonID  uint      `gorm:"not null;uniqueIndex:idx_winner_position" json:"hackathon_id"`
	Position     int       `gorm:"not null;uniqueIndex:idx_winner_position" json:"position"`
	SubmissionID uint      `gorm:"not null;uniqueIndex" json:"submission_id"`
	AnnouncedAt  time.Time `gorm:"not null" json:"announced_at"`

	// Submission status displaced by finalization, so a reset can put
	// it back instead of collapsing everything to submitted.
	PriorStatus string `gorm:"size:20;not null;default:'submitted'" json:"-"`
}
