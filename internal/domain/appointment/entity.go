package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

// ToQueueEntry monta a entrada VIP que representa o agendamento na fila viva.
// O cliente precisa vir carregado no agendamento.
func ToQueueEntry(ap *models.Appointment) *models.QueueEntry {
	apID := ap.ID
	return &models.QueueEntry{
		BarbershopID:  ap.BarbershopID,
		BarberID:      ap.BarberID,
		ServiceID:     ap.ServiceID,
		CustomerName:  ap.Client.Name,
		CustomerPhone: ap.Client.Phone,
		CustomerEmail: ap.Client.Email,
		HeadCount:     1,
		IsVIP:         true,
		Status:        string(queue.InitialStatus()),
		Source:        string(queue.SourceAppointment),
		AppointmentID: &apID,
	}
}
