package ws

import "github.com/Shaurya01836/Hackzen-sub006/internal/models"

// HubNotifier adapts the Hub to the progression engine's notifier
// contract: status transitions become broadcast messages for the
// external notification/UI layer.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) SubmissionStatusChanged(hackathonID uint, submission models.Submission) {
	n.hub.Broadcast(hackathonID, WSMessage{
		Type: "submission_status",
		Data: map[string]interface{}{
			"submission_id": submission.ID,
			"public_id":     submission.PublicID,
			"round_index":   submission.RoundIndex,
			"status":        submission.Status,
		},
	})
}

func (n *HubNotifier) WinnersAnnounced(hackathonID uint, winners []models.Winner) {
	n.hub.Broadcast(hackathonID, WSMessage{
		Type: "winners_announced",
		Data: winners,
	})
}
