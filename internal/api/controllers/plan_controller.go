package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"nodetours/internal/models/request_models"
	"nodetours/internal/services"
	"nodetours/pkg/utils"
)

type PlanController struct {
	agentService services.AgentServiceInterface
	version      string
}

func NewPlanController(agentService services.AgentServiceInterface, version string) *PlanController {
	return &PlanController{
		agentService: agentService,
		version:      version,
	}
}

// CreatePlan godoc
// @Summary Generate a travel plan
// @Description Turn a free-text travel request into an itinerary, packing list, and budget estimate
// @Tags Plans
// @Accept json
// @Produce json
// @Param request body request_models.UserInput true "Travel request payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /api/plan [post]
func (p *PlanController) CreatePlan(c *gin.Context) {
	var req request_models.UserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		utils.RespondError(c, http.StatusBadRequest, "Input text cannot be empty")
		return
	}

	plan, err := p.agentService.CreatePlan(c.Request.Context(), req.Text)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Travel plan generated successfully")
}

// GetHistory godoc
// @Summary Get conversation history
// @Description Return the user and assistant turns accumulated so far
// @Tags Plans
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /api/history [get]
func (p *PlanController) GetHistory(c *gin.Context) {
	utils.RespondSuccess(c, gin.H{"history": p.agentService.History()}, "")
}

// Health godoc
// @Summary Service health
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /api/health [get]
func (p *PlanController) Health(c *gin.Context) {
	utils.RespondSuccess(c, gin.H{"version": p.version}, "ok")
}
