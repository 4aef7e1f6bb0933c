package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-queue/internal/audit"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/middleware"
	"github.com/BruksfildServices01/barber-queue/internal/models"
	"github.com/BruksfildServices01/barber-queue/internal/session"
)

type MeHandler struct {
	db       *gorm.DB
	sessions *session.Registry
	audit    *audit.Logger
}

func NewMeHandler(db *gorm.DB, sessions *session.Registry) *MeHandler {
	return &MeHandler{
		db:       db,
		sessions: sessions,
		audit:    audit.New(db),
	}
}

type UpdateAvailabilityRequest struct {
	Available *bool `json:"available" binding:"required"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userIDVal, exists := c.Get(middleware.ContextUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return
	}

	userID, ok := userIDVal.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_user_id_type"})
		return
	}

	var user models.User
	if err := h.db.Preload("Barbershop").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user_not_found"})
		return
	}

	resp := gin.H{
		"user": gin.H{
			"id":            user.ID,
			"name":          user.Name,
			"email":         user.Email,
			"phone":         user.Phone,
			"role":          user.Role,
			"barbershop_id": user.BarbershopID,
			"is_available":  user.IsAvailable,
			"is_active":     user.IsActive,
		},
	}

	if user.Barbershop != nil {
		resp["barbershop"] = gin.H{
			"id":      user.Barbershop.ID,
			"name":    user.Barbershop.Name,
			"slug":    user.Barbershop.Slug,
			"phone":   user.Barbershop.Phone,
			"address": user.Barbershop.Address,
		}
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateAvailability liga/desliga o barbeiro para entrada pública na fila.
// Só a sessão mais recente mexe no toggle: se o sid do token não for mais o
// marcador vivo no Redis, a requisição veio de um login antigo e é recusada.
func (h *MeHandler) UpdateAvailability(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	sid, _ := c.MustGet(middleware.ContextSessionID).(string)

	var req UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	current, err := h.sessions.IsCurrent(c.Request.Context(), userID, sid)
	if err != nil {
		httperr.Internal(c, "session_check_failed", "Erro ao validar a sessão.")
		return
	}
	if !current {
		httperr.Forbidden(c, "session_superseded", "Esta sessão foi substituída por um login mais recente.")
		return
	}

	if err := h.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("is_available", *req.Available).Error; err != nil {

		httperr.Internal(c, "failed_to_update_availability", "Erro ao atualizar disponibilidade.")
		return
	}

	h.audit.Log(
		barbershopID,
		&userID,
		"availability_changed",
		"user",
		&userID,
		map[string]any{"available": *req.Available},
	)

	c.JSON(http.StatusOK, gin.H{"available": *req.Available})
}
