package appointment

import "github.com/BruksfildServices01/barber-queue/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// ===============================
// Validations
// ===============================

// CanCancel define se um agendamento pode ser cancelado
func CanCancel(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrNotFound("invalid_state")
	}
	return nil
}

// CanConvert: só agendamento confirmado e ainda não convertido entra na fila.
func CanConvert(current Status, converted bool) bool {
	return current == StatusConfirmed && !converted
}

func InitialStatus() Status {
	return StatusConfirmed
}
