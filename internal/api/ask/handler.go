package ask

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/docubot/docubot/internal/domain"
	"github.com/docubot/docubot/internal/service"
)

// Handler handles question requests
type Handler struct {
	askService *service.AskService
}

// NewHandler creates a new ask handler
func NewHandler(askService *service.AskService) *Handler {
	return &Handler{askService: askService}
}

// RegisterRoutes registers ask routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/ask", h.Ask)
	r.POST("/slack/command", h.Ask)
}

// Ask accepts a question as a Slack slash-command form payload or as JSON
// and always answers 200 with a Block Kit envelope: either a terminal message
// or the thinking acknowledgment.
func (h *Handler) Ask(c *gin.Context) {
	var req domain.AskRequest

	if strings.Contains(c.ContentType(), "application/json") {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	} else {
		req = domain.AskRequest{
			UserID:      c.PostForm("user_id"),
			Text:        c.PostForm("text"),
			ResponseURL: c.PostForm("response_url"),
		}
	}

	c.JSON(http.StatusOK, h.askService.Ask(&req))
}
