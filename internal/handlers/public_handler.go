package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-queue/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/middleware"
	"github.com/BruksfildServices01/barber-queue/internal/models"
	"github.com/BruksfildServices01/barber-queue/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barber-queue/internal/usecase/appointment"
	ucQueue "github.com/BruksfildServices01/barber-queue/internal/usecase/queue"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler é a vitrine da barbearia, endereçada por slug: catálogo,
// barbeiros, horários livres, agendamento e entrada na fila. Nenhuma rota
// aqui exige login; quem tiver token de cliente entra identificado.
type PublicHandler struct {
	db *gorm.DB

	availability *ucAppointment.GetAvailability
	book         *ucAppointment.BookAppointment
	join         *ucQueue.JoinQueue
	board        *ucQueue.ListBoard
}

func NewPublicHandler(
	db *gorm.DB,
	availability *ucAppointment.GetAvailability,
	book *ucAppointment.BookAppointment,
	join *ucQueue.JoinQueue,
	board *ucQueue.ListBoard,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		availability: availability,
		book:         book,
		join:         join,
		board:        board,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicBookAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	BarberID    uint   `json:"barber_id"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	Notes       string `json:"notes"`
}

type PublicJoinQueueRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email"`

	ServiceID uint `json:"service_id" binding:"required"`
	BarberID  uint `json:"barber_id"`
	HeadCount int  `json:"head_count"`

	RefImageURL string `json:"ref_image_url"`
	PushToken   string `json:"push_token"`
}

type PublicBarberDTO struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	IsAvailable bool   `json:"is_available"`
}

type PublicQueueEntryDTO struct {
	ID           uint   `json:"id"`
	CustomerName string `json:"customer_name"`
	HeadCount    int    `json:"head_count"`
	IsVIP        bool   `json:"is_vip"`
	Status       string `json:"status"`
	Position     int    `json:"position,omitempty"`
}

////////////////////////////////////////////////////////
// HELPERS
////////////////////////////////////////////////////////

func (h *PublicHandler) shopBySlug(c *gin.Context) (*models.Barbershop, bool) {
	slug := c.Param("slug")

	var shop models.Barbershop
	if err := h.db.Where("slug = ?", slug).First(&shop).Error; err != nil {
		httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
		return nil, false
	}

	return &shop, true
}

// resolveBarber aceita barber_id explícito ou cai no dono da barbearia,
// que é o caso barbearia-de-uma-cadeira.
func (h *PublicHandler) resolveBarber(c *gin.Context, shop *models.Barbershop, barberID uint) (*models.User, bool) {
	var barber models.User
	q := h.db.Where("barbershop_id = ?", shop.ID)

	if barberID != 0 {
		q = q.Where("id = ? AND role IN ?", barberID, []string{"owner", "barber"})
	} else {
		q = q.Where("role = ?", "owner")
	}

	if err := q.First(&barber).Error; err != nil {
		httperr.BadRequest(c, "barber_not_found", "Barbeiro não encontrado.")
		return nil, false
	}

	return &barber, true
}

////////////////////////////////////////////////////////
// CATÁLOGO
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.
		Where("barbershop_id = ? AND active = true", shop.ID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barbershop": shop,
		"services":   services,
	})
}

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	var barbers []models.User
	if err := h.db.
		Where("barbershop_id = ? AND role IN ?", shop.ID, []string{"owner", "barber"}).
		Order("id ASC").
		Find(&barbers).Error; err != nil {

		httperr.Internal(c, "failed_to_list_barbers", "Erro ao listar barbeiros.")
		return
	}

	out := make([]PublicBarberDTO, 0, len(barbers))
	for _, b := range barbers {
		out = append(out, PublicBarberDTO{
			ID:          b.ID,
			Name:        b.Name,
			IsAvailable: b.IsAvailable,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"barbershop": gin.H{"name": shop.Name, "slug": shop.Slug},
		"barbers":    out,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY (REUSO TOTAL DO USE CASE)
////////////////////////////////////////////////////////

func (h *PublicHandler) AvailabilityForClient(c *gin.Context) {
	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Data e serviço obrigatórios.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Serviço inválido.")
		return
	}

	barberID, _ := strconv.ParseUint(c.Query("barber_id"), 10, 64)

	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	barber, ok := h.resolveBarber(c, shop, uint(barberID))
	if !ok {
		return
	}

	date, err := time.ParseInLocation(
		"2006-01-02",
		dateStr,
		timezone.Location(shop.Timezone),
	)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	slots, err := h.availability.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			BarbershopID: shop.ID,
			BarberID:     barber.ID,
			ServiceID:    uint(serviceID),
			Date:         date,
		},
	)

	if err != nil {
		if httperr.IsBusiness(err, "service_not_found") {
			httperr.BadRequest(c, "service_not_found", "Serviço inválido.")
			return
		}

		httperr.Internal(c, "availability_failed", "Erro ao calcular horários.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

////////////////////////////////////////////////////////
// AGENDAMENTO
////////////////////////////////////////////////////////

func (h *PublicHandler) BookAppointment(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	var req PublicBookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	barber, ok := h.resolveBarber(c, shop, req.BarberID)
	if !ok {
		return
	}

	ap, err := h.book.Execute(
		c.Request.Context(),
		ucAppointment.BookAppointmentInput{
			BarbershopID: shop.ID,
			BarberID:     barber.ID,
			ClientName:   req.ClientName,
			ClientPhone:  req.ClientPhone,
			ClientEmail:  req.ClientEmail,
			ServiceID:    req.ServiceID,
			Date:         req.Date,
			Time:         req.Time,
			Notes:        req.Notes,
		},
	)

	if err != nil {
		mapBusinessError(c, err, "failed_to_create_appointment", "Erro ao criar agendamento.")
		return
	}

	c.JSON(http.StatusCreated, ap)
}

////////////////////////////////////////////////////////
// FILA (ENTRAR + QUADRO)
////////////////////////////////////////////////////////

func (h *PublicHandler) JoinQueue(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	var req PublicJoinQueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	barber, ok := h.resolveBarber(c, shop, req.BarberID)
	if !ok {
		return
	}

	// Cliente logado entra identificado; anônimo entra só com nome.
	var userID *uint
	if v, exists := c.Get(middleware.ContextUserID); exists {
		id := v.(uint)
		userID = &id
	}

	// Pela vitrine ninguém entra como VIP: prioridade só via agendamento
	// convertido ou pela mão do barbeiro.
	entry, err := h.join.Execute(c.Request.Context(), ucQueue.JoinQueueInput{
		BarbershopID:  shop.ID,
		BarberID:      barber.ID,
		ServiceID:     req.ServiceID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		HeadCount:     req.HeadCount,
		IsVIP:         false,
		RefImageURL:   req.RefImageURL,
		PushToken:     req.PushToken,
		UserID:        userID,
		Source:        "public",
	})
	if err != nil {
		mapBusinessError(c, err, "failed_to_join_queue", "Erro ao entrar na fila.")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *PublicHandler) QueueBoard(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	barberID, _ := strconv.ParseUint(c.Query("barber_id"), 10, 64)

	barber, ok := h.resolveBarber(c, shop, uint(barberID))
	if !ok {
		return
	}

	board, err := h.board.Execute(c.Request.Context(), barber.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_queue", "Erro ao listar a fila.")
		return
	}

	// Versão pública do quadro: só o que o telão da recepção mostra.
	trim := func(e *models.QueueEntry, position int) *PublicQueueEntryDTO {
		if e == nil {
			return nil
		}
		return &PublicQueueEntryDTO{
			ID:           e.ID,
			CustomerName: e.CustomerName,
			HeadCount:    e.HeadCount,
			IsVIP:        e.IsVIP,
			Status:       e.Status,
			Position:     position,
		}
	}

	waiting := make([]PublicQueueEntryDTO, 0, len(board.Waiting))
	for i := range board.Waiting {
		waiting = append(waiting, *trim(&board.Waiting[i], i+1))
	}

	c.JSON(http.StatusOK, gin.H{
		"barber":      gin.H{"id": barber.ID, "name": barber.Name},
		"in_progress": trim(board.InProgress, 0),
		"up_next":     trim(board.UpNext, 0),
		"waiting":     waiting,
	})
}
