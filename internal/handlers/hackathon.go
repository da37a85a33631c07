package handlers

import (
	"net/http"
	"strconv"

	"github.com/Shaurya01836/Hackzen-sub006/internal/services"

	"github.com/gin-gonic/gin"
)

type HackathonHandler struct {
	hackathonService *services.HackathonService
	resultsService   *services.ResultsService
}

func NewHackathonHandler(hackathonService *services.HackathonService, resultsService *services.ResultsService) *HackathonHandler {
	return &HackathonHandler{hackathonService: hackathonService, resultsService: resultsService}
}

// CreateHackathon godoc
// @Summary      Ingest hackathon configuration
// @Description  Register a hackathon with its ordered round definitions
// @Tags         hackathons
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body services.HackathonInput true "Hackathon configuration"
// @Success      201 {object} models.Hackathon
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/hackathons [post]
func (h *HackathonHandler) CreateHackathon(c *gin.Context) {
	var req services.HackathonInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: "validation"})
		return
	}

	hackathon, err := h.hackathonService.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, hackathon)
}

// GetHackathon godoc
// @Summary      Get hackathon configuration
// @Tags         hackathons
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Hackathon ID"
// @Success      200 {object} models.Hackathon
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/hackathons/{id} [get]
func (h *HackathonHandler) GetHackathon(c *gin.Context) {
	hackathonID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	hackathon, err := h.hackathonService.Get(hackathonID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, hackathon)
}

// ListHackathons godoc
// @Summary      List hackathons
// @Tags         hackathons
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} models.Hackathon
// @Router       /api/v1/hackathons [get]
func (h *HackathonHandler) ListHackathons(c *gin.Context) {
	hackathons, err := h.hackathonService.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, hackathons)
}

// GetRoundStatus godoc
// @Summary      Get round status
// @Description  Window state, processed flag and submission counts for a round
// @Tags         hackathons
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Hackathon ID"
// @Param        index path int true "Round index"
// @Success      200 {object} services.RoundStatus
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/hackathons/{id}/rounds/{index}/status [get]
func (h *HackathonHandler) GetRoundStatus(c *gin.Context) {
	hackathonID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	roundIndex, ok := paramInt(c, "index")
	if !ok {
		return
	}

	status, err := h.resultsService.GetRoundStatus(hackathonID, roundIndex)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func paramUint(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name, Kind: "validation"})
		return 0, false
	}
	return uint(value), true
}

func paramInt(c *gin.Context, name string) (int, bool) {
	value, err := strconv.Atoi(c.Param(name))
	if err != nil || value < 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name, Kind: "validation"})
		return 0, false
	}
	return value, true
}
