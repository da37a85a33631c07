package handlers

import (
	"net/http"

	"github.com/Shaurya01836/Hackzen-sub006/internal/services"

	"github.com/gin-gonic/gin"
)

type CriteriaHandler struct {
	criteriaService *services.CriteriaService
}

func NewCriteriaHandler(criteriaService *services.CriteriaService) *CriteriaHandler {
	return &CriteriaHandler{criteriaService: criteriaService}
}

type ReplaceCriteriaRequest struct {
	SubmissionType string                    `json:"submission_type" binding:"required"`
	Criteria       []services.CriterionInput `json:"criteria" binding:"required,min=1,dive"`
}

// GetCriteria godoc
// @Summary      Get judging criteria for a round
// @Tags         criteria
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Hackathon ID"
// @Param        index path int true "Round index"
// @Param        submission_type query string true "Submission type"
// @Success      200 {array} models.Criterion
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/hackathons/{id}/rounds/{index}/criteria [get]
func (h *CriteriaHandler) GetCriteria(c *gin.Context) {
	hackathonID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	roundIndex, ok := paramInt(c, "index")
	if !ok {
		return
	}
	submissionType := c.Query("submission_type")
	if submissionType == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "submission_type is required", Kind: "validation"})
		return
	}

	criteria, err := h.criteriaService.GetCriteria(hackathonID, roundIndex, submissionType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, criteria)
}

// ReplaceCriteria godoc
// @Summary      Replace judging criteria for a round
// @Description  Rejected once any score exists against the round
// @Tags         criteria
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Hackathon ID"
// @Param        index path int true "Round index"
// @Param        request body ReplaceCriteriaRequest true "Criteria set"
// @Success      200 {array} models.Criterion
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/hackathons/{id}/rounds/{index}/criteria [put]
func (h *CriteriaHandler) ReplaceCriteria(c *gin.Context) {
	hackathonID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	roundIndex, ok := paramInt(c, "index")
	if !ok {
		return
	}

	var req ReplaceCriteriaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: "validation"})
		return
	}

	criteria, err := h.criteriaService.ReplaceCriteria(hackathonID, roundIndex, req.SubmissionType, req.Criteria)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, criteria)
}
