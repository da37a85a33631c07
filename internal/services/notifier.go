package services

import "github.com/Shaurya01836/Hackzen-sub006/internal/models"

// Notifier receives submission status transitions for delivery to the
// external notification/UI layer. Implementations must not block.
type Notifier interface {
	SubmissionStatusChanged(hackathonID uint, submission models.Submission)
	WinnersAnnounced(hackathonID uint, winners []models.Winner)
}

// NopNotifier drops all events. Used in tests and when no hub is wired.
type NopNotifier struct{}

func (NopNotifier) SubmissionStatusChanged(uint, models.Submission) {}
func (NopNotifier) WinnersAnnounced(uint, []models.Winner)          {}
