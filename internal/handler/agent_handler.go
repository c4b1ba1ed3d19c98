package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"beanvault/internal/service"
)

// AgentHandler handles natural language query endpoints.
type AgentHandler struct {
	agentService service.AgentService
}

// NewAgentHandler creates a new AgentHandler.
func NewAgentHandler(agentService service.AgentService) *AgentHandler {
	return &AgentHandler{agentService: agentService}
}

// Query handles POST /api/v1/query
func (h *AgentHandler) Query(c *gin.Context) {
	var req struct {
		Question string `json:"question" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "question is required")
		return
	}

	answer, err := h.agentService.Ask(c.Request.Context(), req.Question)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, answer)
}
