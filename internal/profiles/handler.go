package profiles

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-parser/internal/shared/server/middleware"
	"resume-parser/internal/shared/server/respond"
)

// Handler exposes profile operations over HTTP.
type Handler struct {
	Svc *Service
}

// NewHandler constructs the profiles handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// Register mounts the profile routes on the given group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/profile", h.create)
	rg.GET("/profile", h.get)
	rg.GET("/subscription", h.subscription)
}

func (h *Handler) create(c *gin.Context) {
	userID, ok := h.signedInUser(c)
	if !ok {
		return
	}

	created, err := h.Svc.CreateIfMissing(c.Request.Context(), userID,
		middleware.UserEmailFromContext(c),
		middleware.UserNameFromContext(c),
		middleware.UserPictureFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create profile", nil)
		return
	}
	if !created {
		respond.OK(c, gin.H{"message": "profile already exists."})
		return
	}
	respond.JSON(c, http.StatusCreated, gin.H{"message": "profile created successfully"})
}

func (h *Handler) get(c *gin.Context) {
	userID, ok := h.signedInUser(c)
	if !ok {
		return
	}

	p, err := h.Svc.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load profile", nil)
		return
	}
	respond.OK(c, p)
}

// subscription answers for guests too: a guest never has a subscription.
func (h *Handler) subscription(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
		return
	}

	active, err := h.Svc.SubscriptionActive(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to check subscription", nil)
		return
	}
	respond.OK(c, gin.H{"subscriptionActive": active})
}

func (h *Handler) signedInUser(c *gin.Context) (string, bool) {
	if isGuest, ok := c.Get("isGuest"); ok {
		if guest, ok2 := isGuest.(bool); ok2 && guest {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "login required", nil)
			return "", false
		}
	}
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
		return "", false
	}
	return userID, true
}
