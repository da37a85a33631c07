package models

import "time"

type Round struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	HackathonID uint      `gorm:"not null;uniqueIndex:idx_round_unique" json:"hackathon_id"`
	Index       int       `gorm:"column:round_index;not null;uniqueIndex:idx_round_unique" json:"index"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Type        string    `gorm:"size:20;not null" json:"type"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	StartDate   time.Time `gorm:"not null" json:"start_date"`
	EndDate     time.Time `gorm:"not null" json:"end_date"`

	// Per-participant cap for multi-project hackathons; nil means unlimited.
	MaxSubmissionsPerParticipant *int `json:"max_submissions_per_participant,omitempty"`
}

const (
	RoundTypeQuiz    = "quiz"
	RoundTypePPT     = "ppt"
	RoundTypeIdea    = "idea"
	RoundTypePitch   = "pitch"
	RoundTypeProject = "project"
)

func ValidRoundType(t string) bool {
	switch t {
	case RoundTypeQuiz, RoundTypePPT, RoundTypeIdea, RoundTypePitch, RoundTypeProject:
		return true
	}
	return false
}

// Closed reports whether the submission window has passed.
func (r *Round) Closed(now time.Time) bool {
	return now.After(r.EndDate)
}

// Open reports whether the round currently accepts submissions.
func (r *Round) Open(now time.Time) bool {
	return !now.Before(r.StartDate) && !now.After(r.EndDate)
}
