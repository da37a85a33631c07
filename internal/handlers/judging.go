package handlers

import (
	"net/http"

	"github.com/Shaurya01836/Hackzen-sub006/internal/services"

	"github.com/gin-gonic/gin"
)

type JudgingHandler struct {
	judgingService *services.JudgingService
}

func NewJudgingHandler(judgingService *services.JudgingService) *JudgingHandler {
	return &JudgingHandler{judgingService: judgingService}
}

type SubmitScoreRequest struct {
	Values   map[string]float64 `json:"values" binding:"required"`
	Feedback string             `json:"feedback"`
}

// SubmitScore godoc
// @Summary      Submit or overwrite a judge's score for a submission
// @Description  The score map must cover every criterion of the round; re-scoring replaces the judge's prior entry
// @Tags         judging
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Submission ID"
// @Param        request body SubmitScoreRequest true "Criterion scores"
// @Success      200 {object} models.AggregateResult
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/submissions/{id}/scores [post]
func (h *JudgingHandler) SubmitScore(c *gin.Context) {
	submissionID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req SubmitScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: "validation"})
		return
	}

	aggregate, err := h.judgingService.SubmitScore(principalID(c), submissionID, req.Values, req.Feedback)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, aggregate)
}

// GetAggregate godoc
// @Summary      Get a submission's aggregate score
// @Tags         judging
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Submission ID"
// @Success      200 {object} models.AggregateResult
// @Router       /api/v1/submissions/{id}/aggregate [get]
func (h *JudgingHandler) GetAggregate(c *gin.Context) {
	submissionID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	aggregate, err := h.judgingService.GetAggregate(submissionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, aggregate)
}

// ListScores godoc
// @Summary      List all judge entries for a submission
// @Tags         judging
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Submission ID"
// @Success      200 {array} models.Score
// @Router       /api/v1/submissions/{id}/scores [get]
func (h *JudgingHandler) ListScores(c *gin.Context) {
	submissionID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	scores, err := h.judgingService.ListScores(submissionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, scores)
}
