package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/middleware"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

type BarbershopHandler struct {
	db *gorm.DB
}

func NewBarbershopHandler(db *gorm.DB) *BarbershopHandler {
	return &BarbershopHandler{db: db}
}

type UpdateBarbershopConfigRequest struct {
	Timezone     *string  `json:"timezone"`
	OpenTime     *string  `json:"open_time"`
	CloseTime    *string  `json:"close_time"`
	VIPSurcharge *float64 `json:"vip_surcharge"`
}

func (h *BarbershopHandler) GetMeBarbershop(c *gin.Context) {
	barbershopIDVal, _ := c.Get(middleware.ContextBarbershopID)
	barbershopID := barbershopIDVal.(uint)

	var shop models.Barbershop
	if err := h.db.First(&shop, barbershopID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_barbershop", "Erro ao buscar dados da barbearia.")
		return
	}

	c.JSON(http.StatusOK, shop)
}

func (h *BarbershopHandler) UpdateMeBarbershop(c *gin.Context) {
	barbershopIDVal, _ := c.Get(middleware.ContextBarbershopID)
	barbershopID := barbershopIDVal.(uint)

	var shop models.Barbershop
	if err := h.db.First(&shop, barbershopID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_barbershop", "Erro ao buscar dados da barbearia.")
		return
	}

	var req UpdateBarbershopConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Timezone != nil {
		if _, err := time.LoadLocation(*req.Timezone); err != nil {
			httperr.BadRequest(c, "invalid_timezone", "Timezone IANA inválido.")
			return
		}
		shop.Timezone = *req.Timezone
	}

	if req.OpenTime != nil {
		if _, err := time.Parse("15:04", *req.OpenTime); err != nil {
			httperr.BadRequest(c, "invalid_open_time", "Horário de abertura inválido (HH:MM).")
			return
		}
		shop.OpenTime = *req.OpenTime
	}

	if req.CloseTime != nil {
		if _, err := time.Parse("15:04", *req.CloseTime); err != nil {
			httperr.BadRequest(c, "invalid_close_time", "Horário de fechamento inválido (HH:MM).")
			return
		}
		shop.CloseTime = *req.CloseTime
	}

	open, _ := time.Parse("15:04", shop.OpenTime)
	closeT, _ := time.Parse("15:04", shop.CloseTime)
	if !open.Before(closeT) {
		httperr.BadRequest(c, "invalid_business_hours", "Abertura precisa vir antes do fechamento.")
		return
	}

	if req.VIPSurcharge != nil {
		if *req.VIPSurcharge < 0 {
			httperr.BadRequest(c, "invalid_vip_surcharge", "Sobretaxa VIP deve ser zero ou positiva.")
			return
		}
		shop.VIPSurcharge = *req.VIPSurcharge
	}

	if err := h.db.Save(&shop).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barbershop", "Erro ao salvar as configurações da barbearia.")
		return
	}

	c.JSON(http.StatusOK, shop)
}
