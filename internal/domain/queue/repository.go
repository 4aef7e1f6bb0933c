package queue

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-queue/internal/models"
)

type Repository interface {
	// -------- Barbershop / Barber / Service --------
	GetBarbershopByID(
		ctx context.Context,
		id uint,
	) (*models.Barbershop, error)

	GetBarber(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
	) (*models.User, error)

	GetService(
		ctx context.Context,
		barbershopID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Queue entries --------
	CreateEntry(
		ctx context.Context,
		e *models.QueueEntry,
	) error

	GetEntry(
		ctx context.Context,
		id uint,
	) (*models.QueueEntry, error)

	GetEntryForBarber(
		ctx context.Context,
		id uint,
		barberID uint,
	) (*models.QueueEntry, error)

	// Conjunto ativo do barbeiro, ordenado por (is_vip desc, created_at asc, id asc).
	ListActiveForBarber(
		ctx context.Context,
		barberID uint,
	) ([]models.QueueEntry, error)

	HasActiveEntryForUser(
		ctx context.Context,
		userID uint,
	) (bool, error)

	// -------- Conditional state changes --------

	// PromoteUpNext aplica a decisão do motor numa transação: rebaixa demoteID
	// (up_next -> waiting, zerando notified/acknowledged) e promove promoteID
	// (waiting -> up_next). Se qualquer linha mudou de status no meio do
	// caminho, nada é aplicado e retorna false.
	PromoteUpNext(
		ctx context.Context,
		barberID uint,
		promoteID uint,
		demoteID *uint,
	) (bool, error)

	// ClaimInProgress verifica e ocupa a cadeira na mesma transação:
	// falha com chair_occupied se já existe in_progress, com invalid_state se
	// o alvo não está em waiting/up_next.
	ClaimInProgress(
		ctx context.Context,
		barberID uint,
		entryID uint,
		now time.Time,
	) error

	// CompleteWithCharge fecha in_progress -> done e grava o ChargeLog na
	// mesma transação. Retorna false se o status mudou antes da escrita.
	CompleteWithCharge(
		ctx context.Context,
		entryID uint,
		charge *models.ChargeLog,
		now time.Time,
	) (bool, error)

	CancelEntry(
		ctx context.Context,
		barberID uint,
		entryID uint,
		now time.Time,
	) (bool, error)

	DeleteOwnedEntry(
		ctx context.Context,
		entryID uint,
		userID uint,
	) (bool, error)

	SetAcknowledged(
		ctx context.Context,
		entryID uint,
	) (bool, error)

	// -------- Notifications --------
	ListUnnotifiedUpNext(
		ctx context.Context,
		limit int,
	) ([]models.QueueEntry, error)

	MarkNotified(
		ctx context.Context,
		entryID uint,
	) (bool, error)

	// -------- Appointment conversion --------
	ListDueUnconverted(
		ctx context.Context,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)

	// ConvertAppointment reivindica converted=false numa transação e insere a
	// entrada VIP correspondente. Retorna false quando outra instância já
	// converteu (a reivindicação falhou).
	ConvertAppointment(
		ctx context.Context,
		ap *models.Appointment,
		entry *models.QueueEntry,
	) (bool, error)
}
