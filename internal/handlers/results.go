package handlers

import (
	"net/http"

	"github.com/Shaurya01836/Hackzen-sub006/internal/services"

	"github.com/gin-gonic/gin"
)

type ResultsHandler struct {
	resultsService *services.ResultsService
}

func NewResultsHandler(resultsService *services.ResultsService) *ResultsHandler {
	return &ResultsHandler{resultsService: resultsService}
}

// GetShortlisted godoc
// @Summary      Get a round's shortlist ordered by rank
// @Tags         results
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Hackathon ID"
// @Param        index path int true "Round index"
// @Success      200 {array} services.RankedSubmission
// @Router       /api/v1/hackathons/{id}/rounds/{index}/shortlisted [get]
func (h *ResultsHandler) GetShortlisted(c *gin.Context) {
	hackathonID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	roundIndex, ok := paramInt(c, "index")
	if !ok {
		return
	}

	shortlisted, err := h.resultsService.GetShortlisted(hackathonID, roundIndex)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, shortlisted)
}

// GetWinners godoc
// @Summary      Get the finalized winners ordered by position
// @Tags         results
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Hackathon ID"
// @Success      200 {array} services.WinnerEntry
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/hackathons/{id}/winners [get]
func (h *ResultsHandler) GetWinners(c *gin.Context) {
	hackathonID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	winners, err := h.resultsService.GetWinners(hackathonID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, winners)
}
