package models

import "time"

type Hackathon struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Title          string    `gorm:"size:255;not null" json:"title"`
	SubmissionType string    `gorm:"size:20;not null;default:'single-project'" json:"submission_type"`
	RoundMode      string    `gorm:"size:20;not null;default:'single-round'" json:"round_mode"`
	WinnerCount    int       `gorm:"not null;default:1" json:"winner_count"`
	Rounds         []Round   `gorm:"foreignKey:HackathonID" json:"rounds,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

const (
	SubmissionTypeSingleProject = "single-project"
	SubmissionTypeMultiProject  = "multi-project"

	RoundModeSingle = "single-round"
	RoundModeMulti  = "multi-round"
)

// TerminalRoundIndex returns the index of the last configured round,
// or -1 if the hackathon has no rounds.
func (h *Hackathon) TerminalRoundIndex() int {
	max := -1
	for _, r := range h.Rounds {
		if r.Index > max {
			max = r.Index
		}
	}
	return max
}

// RoundAt returns the round with the given index, or nil.
func (h *Hackathon) RoundAt(index int) *Round {
	for i := range h.Rounds {
		if h.Rounds[i].Index == index {
			return &h.Rounds[i]
		}
	}
	return nil
}
