package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-parser/internal/shared/server/middleware"
	"resume-parser/internal/shared/server/respond"
)

// Handler exposes stats reads over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs the stats handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the stats route on the given group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/stats", h.get)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
		return
	}

	row, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not load stats", nil)
		return
	}
	respond.OK(c, row)
}
