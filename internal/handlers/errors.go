package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-queue/internal/httperr"
)

// Mensagens amigáveis por código de negócio. O código segue estável para o
// front; a mensagem é só apresentação.
var businessMessages = map[string]string{
	"barbershop_not_found":     "Barbearia não encontrada.",
	"barber_not_found":         "Barbeiro não encontrado.",
	"barber_unavailable":       "Barbeiro indisponível no momento.",
	"service_not_found":        "Serviço não encontrado.",
	"service_inactive":         "Serviço desativado.",
	"missing_customer_name":    "Nome do cliente é obrigatório.",
	"invalid_head_count":       "Quantidade de pessoas inválida.",
	"already_in_queue":         "Já existe uma entrada ativa na fila para este usuário.",
	"chair_occupied":           "Já existe um corte em andamento.",
	"queue_entry_not_found":    "Entrada da fila não encontrada.",
	"invalid_state":            "O estado atual não permite esta operação.",
	"invalid_tip":              "Gorjeta inválida.",
	"not_owner":                "A entrada pertence a outro usuário.",
	"time_conflict":            "Conflito de horário. Escolha outro slot.",
	"too_soon":                 "Agendamento exige pelo menos um dia de antecedência.",
	"outside_business_hours":   "Fora do horário de funcionamento.",
	"missing_client_data":      "Nome e telefone do cliente são obrigatórios.",
	"appointment_not_found":    "Agendamento não encontrado.",
	"invalid_date_or_time":     "Data ou hora inválida.",
	"session_superseded":       "Esta sessão foi substituída por um login mais recente.",
	"notification_unreachable": "Canal de notificação indisponível.",
}

// mapBusinessError traduz o erro vindo do usecase para a resposta HTTP.
// Erro que não é de negócio vira 500 com o código de fallback do chamador.
func mapBusinessError(c *gin.Context, err error, fallbackCode, fallbackMsg string) {
	var be httperr.BusinessError
	if errors.As(err, &be) {
		msg, ok := businessMessages[be.Code]
		if !ok {
			msg = "Operação não permitida."
		}
		httperr.Write(c, httperr.StatusOf(be.Kind), be.Code, msg)
		return
	}

	httperr.Internal(c, fallbackCode, fallbackMsg)
}
