package handlers

import (
	"net/http"

	"github.com/Shaurya01836/Hackzen-sub006/internal/middleware"
	"github.com/Shaurya01836/Hackzen-sub006/internal/models"
	"github.com/Shaurya01836/Hackzen-sub006/internal/services"

	"github.com/gin-gonic/gin"
)

type SubmissionHandler struct {
	submissionService *services.SubmissionService
}

func NewSubmissionHandler(submissionService *services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

type SubmitRequest struct {
	// TeamID switches ownership to a team; zero means the caller
	// submits as an individual participant.
	TeamID           uint                    `json:"team_id"`
	ProjectURL       string                  `json:"project_url"`
	FileURL          string                  `json:"file_url"`
	ProblemStatement models.ProblemStatement `json:"problem_statement"`
}

type EditRequest struct {
	TeamID           uint                     `json:"team_id"`
	ProjectURL       *string                  `json:"project_url"`
	FileURL          *string                  `json:"file_url"`
	ProblemStatement *models.ProblemStatement `json:"problem_statement"`
}

func submissionOwner(c *gin.Context, teamID uint) services.Owner {
	if teamID != 0 {
		return services.Owner{Type: models.OwnerTypeTeam, ID: teamID}
	}
	return services.Owner{Type: models.OwnerTypeParticipant, ID: principalID(c)}
}

// Submit godoc
// @Summary      Create a submission for a round
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Hackathon ID"
// @Param        index path int true "Round index"
// @Param        request body SubmitRequest true "Submission payload"
// @Success      201 {object} models.Submission
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /api/v1/hackathons/{id}/rounds/{index}/submissions [post]
func (h *SubmissionHandler) Submit(c *gin.Context) {
	hackathonID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	roundIndex, ok := paramInt(c, "index")
	if !ok {
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: "validation"})
		return
	}

	submission, err := h.submissionService.Submit(hackathonID, roundIndex, submissionOwner(c, req.TeamID), services.SubmitInput{
		ProjectURL:       req.ProjectURL,
		FileURL:          req.FileURL,
		ProblemStatement: req.ProblemStatement,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, submission)
}

// Edit godoc
// @Summary      Edit a live submission in place
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Submission ID"
// @Param        request body EditRequest true "Fields to change"
// @Success      200 {object} models.Submission
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/submissions/{id} [put]
func (h *SubmissionHandler) Edit(c *gin.Context) {
	submissionID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req EditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: "validation"})
		return
	}

	submission, err := h.submissionService.Edit(submissionID, submissionOwner(c, req.TeamID), services.EditInput{
		ProjectURL:       req.ProjectURL,
		FileURL:          req.FileURL,
		ProblemStatement: req.ProblemStatement,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, submission)
}

// Get godoc
// @Summary      Get a submission
// @Tags         submissions
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Submission ID"
// @Success      200 {object} models.Submission
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/submissions/{id} [get]
func (h *SubmissionHandler) Get(c *gin.Context) {
	submissionID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	submission, err := h.submissionService.Get(submissionID)
	if err != nil {
		respondError(c, err)
		return
	}

	// Participants only see their own records.
	if c.GetString(middleware.CtxRole) == middleware.RoleParticipant &&
		submission.OwnerType == models.OwnerTypeParticipant &&
		submission.OwnerID != principalID(c) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "submission belongs to a different owner", Kind: "forbidden"})
		return
	}
	c.JSON(http.StatusOK, submission)
}

// ListByRound godoc
// @Summary      List a round's submissions
// @Tags         submissions
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Hackathon ID"
// @Param        index path int true "Round index"
// @Success      200 {array} models.Submission
// @Router       /api/v1/hackathons/{id}/rounds/{index}/submissions [get]
func (h *SubmissionHandler) ListByRound(c *gin.Context) {
	hackathonID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	roundIndex, ok := paramInt(c, "index")
	if !ok {
		return
	}

	submissions, err := h.submissionService.ListByRound(hackathonID, roundIndex)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, submissions)
}
