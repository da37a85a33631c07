package models

import (
	"encoding/json"
	"time"
)

type Submission struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	PublicID    string `gorm:"size:36;uniqueIndex" json:"public_id"`
	HackathonID uint   `gorm:"not null;index:idx_submission_round" json:"hackathon_id"`
	RoundIndex  int    `gorm:"not null;index:idx_submission_round" json:"round_index"`

	OwnerType string `gorm:"size:20;not null;index:idx_submission_owner" json:"owner_type"`
	OwnerID   uint   `gorm:"not null;index:idx_submission_owner" json:"owner_id"`

	// Payload references are opaque; the core never inspects file bytes.
	ProjectURL string `gorm:"size:512" json:"project_url,omitempty"`
	FileURL    string `gorm:"size:512" json:"file_url,omitempty"`

	ProblemStatement ProblemStatement `gorm:"embedded;embeddedPrefix:problem_" json:"problem_statement"`

	Status string `gorm:"size:20;not null;default:'submitted';index" json:"status"`

	// Set on submissions created by advancement, pointing at the prior
	// round's record.
	AdvancedFromID *uint `json:"advanced_from_id,omitempty"`

	SubmittedAt time.Time `gorm:"not null;index" json:"submitted_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const (
	StatusSubmitted   = "submitted"
	StatusShortlisted = "shortlisted"
	StatusRejected    = "rejected"
	StatusAdvanced    = "advanced"
	StatusWinner      = "winner"
)

const (
	OwnerTypeTeam        = "team"
	OwnerTypeParticipant = "participant"
)

// Editable reports whether a participant may still mutate the record.
// Any transition out of submitted is one-way as far as participants
// are concerned.
func (s *Submission) Editable() bool {
	return s.Status == StatusSubmitted
}

// ProblemStatement is the normalized form of the round's problem
// association. Upstream clients send either a bare string or a
// {statement, type} object; UnmarshalJSON folds both shapes into this
// struct so the rest of the core never branches on shape.
type ProblemStatement struct {
	Statement string `gorm:"size:1024" json:"statement"`
	Type      string `gorm:"size:20" json:"type"`
}

const (
	ProblemTypeText   = "text"
	ProblemTypeCustom = "custom"
)

func (p *ProblemStatement) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		p.Statement = s
		p.Type = ProblemTypeText
		return nil
	}

	type alias ProblemStatement
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = ProblemStatement(a)
	if p.Type == "" {
		p.Type = ProblemTypeText
	}
	return nil
}
