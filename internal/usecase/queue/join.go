package queue

import (
	"context"
	"log"

	"github.com/BruksfildServices01/barber-queue/internal/audit"
	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type JoinQueueInput struct {
	BarbershopID uint
	BarberID     uint
	ServiceID    uint

	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	HeadCount int
	IsVIP     bool

	RefImageURL string
	PushToken   string

	UserID *uint
	Source domain.Source
}

// ======================================================
// USE CASE
// ======================================================

type JoinQueue struct {
	repo    domain.Repository
	enforce *EnforceUpNext
	notify  Notifier
	audit   Auditor
}

func NewJoinQueue(
	repo domain.Repository,
	enforce *EnforceUpNext,
	notify Notifier,
	auditor Auditor,
) *JoinQueue {
	return &JoinQueue{
		repo:    repo,
		enforce: enforce,
		notify:  notify,
		audit:   auditor,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *JoinQueue) Execute(
	ctx context.Context,
	in JoinQueueInput,
) (*models.QueueEntry, error) {

	if in.Source == "" {
		in.Source = domain.SourcePublic
	}

	// --------------------------------------------------
	// 1️⃣ Barbeiro aceitando entradas?
	// --------------------------------------------------
	barber, err := uc.repo.GetBarber(ctx, in.BarbershopID, in.BarberID)
	if err != nil {
		return nil, httperr.ErrNotFound("barber_not_found")
	}
	if in.Source == domain.SourcePublic && !barber.IsAvailable {
		return nil, httperr.ErrConflict("barber_unavailable")
	}

	// --------------------------------------------------
	// 2️⃣ Serviço
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, in.BarbershopID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrValidation("service_not_found")
	}
	if !service.Active {
		return nil, httperr.ErrValidation("service_inactive")
	}

	// --------------------------------------------------
	// 3️⃣ Nome e quantidade
	// --------------------------------------------------
	if in.CustomerName == "" {
		return nil, httperr.ErrValidation("missing_customer_name")
	}

	headCount := in.HeadCount
	if headCount == 0 {
		headCount = 1
	}
	if headCount < 1 {
		return nil, httperr.ErrValidation("invalid_head_count")
	}

	// --------------------------------------------------
	// 4️⃣ Uma entrada ativa por usuário no sistema inteiro
	// --------------------------------------------------
	if in.UserID != nil {
		active, err := uc.repo.HasActiveEntryForUser(ctx, *in.UserID)
		if err != nil {
			return nil, err
		}
		if active {
			return nil, httperr.ErrConflict("already_in_queue")
		}
	}

	// --------------------------------------------------
	// 5️⃣ Criação (VIP só por barbeiro ou conversão)
	// --------------------------------------------------
	entry := &models.QueueEntry{
		BarbershopID:  in.BarbershopID,
		BarberID:      in.BarberID,
		ServiceID:     in.ServiceID,
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		CustomerEmail: in.CustomerEmail,
		HeadCount:     headCount,
		IsVIP:         in.IsVIP && in.Source != domain.SourcePublic,
		Status:        string(domain.InitialStatus()),
		RefImageURL:   in.RefImageURL,
		PushToken:     in.PushToken,
		UserID:        in.UserID,
		Source:        string(in.Source),
	}

	if err := uc.repo.CreateEntry(ctx, entry); err != nil {
		// corrida no índice parcial: outra entrada ativa do mesmo usuário
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.ErrConflict("already_in_queue")
		}
		return nil, err
	}

	// --------------------------------------------------
	// 6️⃣ Motor + aviso
	// --------------------------------------------------
	promoted, err := uc.enforce.Execute(ctx, in.BarberID)
	if err != nil {
		log.Println("queue enforce error:", err)
	}
	uc.notify.DispatchEntries(promoted)

	// fila vazia promove na hora; resposta reflete o status real
	for i := range promoted {
		if promoted[i].ID == entry.ID {
			entry.Status = promoted[i].Status
		}
	}

	// --------------------------------------------------
	// 7️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       in.UserID,
		Action:       "queue_joined",
		Entity:       "queue_entry",
		EntityID:     &entry.ID,
	})

	return entry, nil
}
