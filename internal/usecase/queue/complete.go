package queue

import (
	"context"
	"log"

	"github.com/BruksfildServices01/barber-queue/internal/audit"
	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/models"
	"github.com/BruksfildServices01/barber-queue/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CompleteCutInput struct {
	BarbershopID uint
	BarberID     uint
	EntryID      uint

	Tip float64
}

// ======================================================
// USE CASE
// ======================================================

type CompleteCut struct {
	repo    domain.Repository
	enforce *EnforceUpNext
	notify  Notifier
	audit   Auditor
}

func NewCompleteCut(
	repo domain.Repository,
	enforce *EnforceUpNext,
	notify Notifier,
	auditor Auditor,
) *CompleteCut {
	return &CompleteCut{
		repo:    repo,
		enforce: enforce,
		notify:  notify,
		audit:   auditor,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CompleteCut) Execute(
	ctx context.Context,
	in CompleteCutInput,
) (*models.QueueEntry, *models.ChargeLog, error) {

	// --------------------------------------------------
	// 1️⃣ Barbearia (fuso + sobretaxa VIP)
	// --------------------------------------------------
	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Entrada na cadeira
	// --------------------------------------------------
	entry, err := uc.repo.GetEntryForBarber(ctx, in.EntryID, in.BarberID)
	if err != nil {
		return nil, nil, httperr.ErrNotFound("queue_entry_not_found")
	}
	if err := domain.CanComplete(domain.Status(entry.Status)); err != nil {
		return nil, nil, err
	}

	if in.Tip < 0 {
		return nil, nil, httperr.ErrValidation("invalid_tip")
	}

	// --------------------------------------------------
	// 3️⃣ Preço unitário do serviço
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, in.BarbershopID, entry.ServiceID)
	if err != nil {
		return nil, nil, httperr.ErrValidation("service_not_found")
	}

	// --------------------------------------------------
	// 4️⃣ Cobrança: preço × pessoas + gorjeta + sobretaxa VIP
	// --------------------------------------------------
	surcharge := 0.0
	if entry.IsVIP {
		surcharge = shop.VIPSurcharge
	}

	headCount := entry.HeadCount
	if headCount < 1 {
		headCount = 1
	}

	charge := &models.ChargeLog{
		BarbershopID: entry.BarbershopID,
		BarberID:     entry.BarberID,
		ServiceID:    entry.ServiceID,
		QueueEntryID: entry.ID,
		ServicePrice: service.Price,
		HeadCount:    headCount,
		Tip:          in.Tip,
		VIPSurcharge: surcharge,
		Total:        service.Price*float64(headCount) + in.Tip + surcharge,
	}

	// --------------------------------------------------
	// 5️⃣ done + ledger na mesma transação
	// --------------------------------------------------
	now := timezone.NowIn(shop.Timezone)

	applied, err := uc.repo.CompleteWithCharge(ctx, entry.ID, charge, now)
	if err != nil {
		return nil, nil, err
	}
	if !applied {
		return nil, nil, httperr.ErrNotFound("invalid_state")
	}

	entry.Status = string(domain.StatusDone)
	entry.CompletedAt = &now

	// --------------------------------------------------
	// 6️⃣ Motor + aviso
	// --------------------------------------------------
	promoted, err := uc.enforce.Execute(ctx, in.BarberID)
	if err != nil {
		log.Println("queue enforce error:", err)
	}
	uc.notify.DispatchEntries(promoted)

	// --------------------------------------------------
	// 7️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       &in.BarberID,
		Action:       "cut_completed",
		Entity:       "queue_entry",
		EntityID:     &entry.ID,
		Metadata:     charge,
	})

	return entry, charge, nil
}
