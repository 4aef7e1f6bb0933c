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

type CancelEntry struct {
	repo    domain.Repository
	enforce *EnforceUpNext
	notify  Notifier
	audit   Auditor
}

func NewCancelEntry(
	repo domain.Repository,
	enforce *EnforceUpNext,
	notify Notifier,
	auditor Auditor,
) *CancelEntry {
	return &CancelEntry{
		repo:    repo,
		enforce: enforce,
		notify:  notify,
		audit:   auditor,
	}
}

func (uc *CancelEntry) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	entryID uint,
) (*models.QueueEntry, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	entry, err := uc.repo.GetEntryForBarber(ctx, entryID, barberID)
	if err != nil {
		return nil, httperr.ErrNotFound("queue_entry_not_found")
	}
	if err := domain.CanCancel(domain.Status(entry.Status)); err != nil {
		return nil, err
	}

	now := timezone.NowIn(shop.Timezone)

	ok, err := uc.repo.CancelEntry(ctx, barberID, entryID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		// status mudou entre a leitura e a escrita condicional
		return nil, httperr.ErrNotFound("invalid_state")
	}

	entry.Status = string(domain.StatusCancelled)
	entry.CancelledAt = &now

	promoted, err := uc.enforce.Execute(ctx, barberID)
	if err != nil {
		log.Println("queue enforce error:", err)
	}
	uc.notify.DispatchEntries(promoted)

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &barberID,
		Action:       "queue_cancelled",
		Entity:       "queue_entry",
		EntityID:     &entry.ID,
	})

	return entry, nil
}
