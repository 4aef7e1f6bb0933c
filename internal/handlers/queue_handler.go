package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/middleware"
	ucQueue "github.com/BruksfildServices01/barber-queue/internal/usecase/queue"
)

// ======================================================
// HANDLER
// ======================================================

// QueueHandler é o painel do barbeiro: ver a fila, puxar walk-in,
// chamar, concluir e cancelar. Tudo escopado no próprio barbeiro
// autenticado — fila é por cadeira, não por barbearia.
type QueueHandler struct {
	join     *ucQueue.JoinQueue
	board    *ucQueue.ListBoard
	call     *ucQueue.CallNext
	complete *ucQueue.CompleteCut
	cancel   *ucQueue.CancelEntry
	leave    *ucQueue.DeleteEntry
	ack      *ucQueue.AcknowledgeEntry
}

func NewQueueHandler(
	join *ucQueue.JoinQueue,
	board *ucQueue.ListBoard,
	call *ucQueue.CallNext,
	complete *ucQueue.CompleteCut,
	cancel *ucQueue.CancelEntry,
	leave *ucQueue.DeleteEntry,
	ack *ucQueue.AcknowledgeEntry,
) *QueueHandler {
	return &QueueHandler{
		join:     join,
		board:    board,
		call:     call,
		complete: complete,
		cancel:   cancel,
		leave:    leave,
		ack:      ack,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AddWalkInRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email"`

	ServiceID uint `json:"service_id" binding:"required"`
	HeadCount int  `json:"head_count"`
	IsVIP     bool `json:"is_vip"`

	RefImageURL string `json:"ref_image_url"`
}

type CompleteCutRequest struct {
	Tip float64 `json:"tip"`
}

// ======================================================
// BOARD
// ======================================================

func (h *QueueHandler) Board(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	board, err := h.board.Execute(c.Request.Context(), barberID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_queue", "Erro ao listar a fila.")
		return
	}

	c.JSON(http.StatusOK, board)
}

// ======================================================
// WALK-IN (BARBEIRO ADICIONA NA PRÓPRIA FILA)
// ======================================================

func (h *QueueHandler) AddWalkIn(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req AddWalkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	entry, err := h.join.Execute(c.Request.Context(), ucQueue.JoinQueueInput{
		BarbershopID:  barbershopID,
		BarberID:      barberID,
		ServiceID:     req.ServiceID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		HeadCount:     req.HeadCount,
		IsVIP:         req.IsVIP,
		RefImageURL:   req.RefImageURL,
		Source:        "barber",
	})
	if err != nil {
		mapBusinessError(c, err, "failed_to_join_queue", "Erro ao entrar na fila.")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// ======================================================
// CALL / COMPLETE / CANCEL
// ======================================================

func (h *QueueHandler) Call(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	entryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	entry, err := h.call.Execute(c.Request.Context(), barbershopID, barberID, uint(entryID))
	if err != nil {
		mapBusinessError(c, err, "failed_to_call_next", "Erro ao chamar o próximo.")
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *QueueHandler) Complete(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	entryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req CompleteCutRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	entry, charge, err := h.complete.Execute(c.Request.Context(), ucQueue.CompleteCutInput{
		BarbershopID: barbershopID,
		BarberID:     barberID,
		EntryID:      uint(entryID),
		Tip:          req.Tip,
	})
	if err != nil {
		mapBusinessError(c, err, "failed_to_complete_cut", "Erro ao concluir o corte.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entry":  entry,
		"charge": charge,
	})
}

func (h *QueueHandler) Cancel(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	entryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	entry, err := h.cancel.Execute(c.Request.Context(), barbershopID, barberID, uint(entryID))
	if err != nil {
		mapBusinessError(c, err, "failed_to_cancel_entry", "Erro ao cancelar a entrada.")
		return
	}

	c.JSON(http.StatusOK, entry)
}

// ======================================================
// CLIENTE (DONO DA ENTRADA)
// ======================================================

// Leave remove a própria entrada enquanto ela ainda espera. Depois que o
// barbeiro chama, sair é com ele.
func (h *QueueHandler) Leave(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	entryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	if err := h.leave.Execute(c.Request.Context(), uint(entryID), userID); err != nil {
		mapBusinessError(c, err, "failed_to_leave_queue", "Erro ao sair da fila.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "left"})
}

func (h *QueueHandler) Acknowledge(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	entryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	entry, err := h.ack.Execute(c.Request.Context(), uint(entryID), userID)
	if err != nil {
		mapBusinessError(c, err, "failed_to_acknowledge", "Erro ao confirmar presença.")
		return
	}

	c.JSON(http.StatusOK, entry)
}
