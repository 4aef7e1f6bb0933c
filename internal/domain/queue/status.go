package queue

import "github.com/BruksfildServices01/barber-queue/internal/httperr"

// ===============================
// Queue Entry Status
// ===============================

type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusUpNext     Status = "up_next"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
	StatusCancelled  Status = "cancelled"
)

// Canal de origem da entrada.
type Source string

const (
	SourcePublic      Source = "public"
	SourceBarber      Source = "barber"
	SourceAppointment Source = "appointment"
)

// ActiveStatuses: status que ainda ocupam a fila do barbeiro.
func ActiveStatuses() []string {
	return []string{
		string(StatusWaiting),
		string(StatusUpNext),
		string(StatusInProgress),
	}
}

func IsActive(s Status) bool {
	return s == StatusWaiting || s == StatusUpNext || s == StatusInProgress
}

// ===============================
// Validations
// ===============================

// CanCall define se a entrada pode ir para a cadeira.
func CanCall(current Status) error {
	if current != StatusWaiting && current != StatusUpNext {
		return httperr.ErrNotFound("invalid_state")
	}
	return nil
}

// CanComplete define se o corte pode ser concluído.
func CanComplete(current Status) error {
	if current != StatusInProgress {
		return httperr.ErrNotFound("invalid_state")
	}
	return nil
}

// CanCancel define se a entrada pode ser cancelada pelo barbeiro.
func CanCancel(current Status) error {
	if current != StatusWaiting && current != StatusUpNext {
		return httperr.ErrNotFound("invalid_state")
	}
	return nil
}

// CanDelete define se o dono pode remover a própria entrada.
func CanDelete(current Status) error {
	if current != StatusWaiting && current != StatusUpNext {
		return httperr.ErrNotFound("invalid_state")
	}
	return nil
}

// CanAcknowledge: o aviso de "é a sua vez" só faz sentido em up_next.
func CanAcknowledge(current Status) error {
	if current != StatusUpNext {
		return httperr.ErrNotFound("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusWaiting
}
