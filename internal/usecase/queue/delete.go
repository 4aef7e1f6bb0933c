package queue

import (
	"context"
	"log"

	"github.com/BruksfildServices01/barber-queue/internal/audit"
	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
)

// DeleteEntry remove a entrada do próprio cliente enquanto ela ainda espera.
// Entrada de balcão (sem dono) só o barbeiro cancela.
type DeleteEntry struct {
	repo    domain.Repository
	enforce *EnforceUpNext
	notify  Notifier
	audit   Auditor
}

func NewDeleteEntry(
	repo domain.Repository,
	enforce *EnforceUpNext,
	notify Notifier,
	auditor Auditor,
) *DeleteEntry {
	return &DeleteEntry{
		repo:    repo,
		enforce: enforce,
		notify:  notify,
		audit:   auditor,
	}
}

func (uc *DeleteEntry) Execute(
	ctx context.Context,
	entryID uint,
	requestingUserID uint,
) error {

	entry, err := uc.repo.GetEntry(ctx, entryID)
	if err != nil {
		return httperr.ErrNotFound("queue_entry_not_found")
	}

	if entry.UserID == nil || *entry.UserID != requestingUserID {
		return httperr.ErrForbidden("not_owner")
	}
	if err := domain.CanDelete(domain.Status(entry.Status)); err != nil {
		return err
	}

	ok, err := uc.repo.DeleteOwnedEntry(ctx, entryID, requestingUserID)
	if err != nil {
		return err
	}
	if !ok {
		return httperr.ErrNotFound("invalid_state")
	}

	promoted, err := uc.enforce.Execute(ctx, entry.BarberID)
	if err != nil {
		log.Println("queue enforce error:", err)
	}
	uc.notify.DispatchEntries(promoted)

	uc.audit.Dispatch(audit.Event{
		BarbershopID: entry.BarbershopID,
		UserID:       &requestingUserID,
		Action:       "queue_left",
		Entity:       "queue_entry",
		EntityID:     &entry.ID,
	})

	return nil
}
