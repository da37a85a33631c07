package handlers

import (
	"net/http"

	"github.com/Shaurya01836/Hackzen-sub006/internal/services"

	"github.com/gin-gonic/gin"
)

type ProgressionHandler struct {
	progressionService *services.ProgressionService
	resultsService     *services.ResultsService
}

func NewProgressionHandler(progressionService *services.ProgressionService, resultsService *services.ResultsService) *ProgressionHandler {
	return &ProgressionHandler{progressionService: progressionService, resultsService: resultsService}
}

type ShortlistRequest struct {
	CutoffCount int      `json:"cutoff_count"`
	MinScore    *float64 `json:"min_score"`
	// Override skips the round-closed check for an explicit organizer
	// decision.
	Override bool `json:"override"`
}

type FinalizeRequest struct {
	WinnerCount int  `json:"winner_count"`
	Override    bool `json:"override"`
}

// Shortlist godoc
// @Summary      Shortlist a closed round
// @Description  Ranks scored submissions and splits them at the cutoff; idempotent on re-run
// @Tags         progression
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Hackathon ID"
// @Param        index path int true "Round index"
// @Param        request body ShortlistRequest true "Cutoff configuration"
// @Success      200 {object} services.ShortlistResult
// @Failure      422 {object} ErrorResponse
// @Router       /api/v1/hackathons/{id}/rounds/{index}/shortlist [post]
func (h *ProgressionHandler) Shortlist(c *gin.Context) {
	hackathonID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	roundIndex, ok := paramInt(c, "index")
	if !ok {
		return
	}

	var req ShortlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: "validation"})
		return
	}

	result, err := h.progressionService.Shortlist(hackathonID, roundIndex,
		services.Cutoff{Count: req.CutoffCount, MinScore: req.MinScore}, req.Override)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Advance godoc
// @Summary      Advance a round's shortlisted submissions to the next round
// @Tags         progression
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Hackathon ID"
// @Param        index path int true "Round index"
// @Success      200 {object} services.AdvanceResult
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/hackathons/{id}/rounds/{index}/advance [post]
func (h *ProgressionHandler) Advance(c *gin.Context) {
	hackathonID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	roundIndex, ok := paramInt(c, "index")
	if !ok {
		return
	}

	result, err := h.progressionService.Advance(hackathonID, roundIndex)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Finalize godoc
// @Summary      Finalize winners for the terminal round
// @Description  One-shot; a second call fails with already_finalized
// @Tags         progression
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Hackathon ID"
// @Param        request body FinalizeRequest true "Winner count"
// @Success      200 {object} services.FinalizeResult
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/hackathons/{id}/finalize [post]
func (h *ProgressionHandler) Finalize(c *gin.Context) {
	hackathonID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req FinalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: "validation"})
		return
	}

	result, err := h.progressionService.Finalize(hackathonID, req.WinnerCount, req.Override)
	if err != nil {
		respondError(c, err)
		return
	}

	h.resultsService.InvalidateWinners(hackathonID)
	c.JSON(http.StatusOK, result)
}

// ResetFinalization godoc
// @Summary      Reset finalized winners
// @Description  Administrative escape hatch; deletes winner records and reopens the terminal round's statuses
// @Tags         progression
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Hackathon ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/hackathons/{id}/finalize/reset [post]
func (h *ProgressionHandler) ResetFinalization(c *gin.Context) {
	hackathonID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	if err := h.progressionService.ResetFinalization(hackathonID); err != nil {
		respondError(c, err)
		return
	}

	h.resultsService.InvalidateWinners(hackathonID)
	c.JSON(http.StatusOK, MessageResponse{Message: "finalization reset"})
}
