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

type CallNext struct {
	repo    domain.Repository
	enforce *EnforceUpNext
	notify  Notifier
	audit   Auditor
}

func NewCallNext(
	repo domain.Repository,
	enforce *EnforceUpNext,
	notify Notifier,
	auditor Auditor,
) *CallNext {
	return &CallNext{
		repo:    repo,
		enforce: enforce,
		notify:  notify,
		audit:   auditor,
	}
}

// Execute coloca a entrada na cadeira. A verificação "nenhum outro
// in_progress" e a troca de status acontecem na mesma transação do
// repositório; duas chamadas simultâneas terminam com um vencedor e um
// chair_occupied.
func (uc *CallNext) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	entryID uint,
) (*models.QueueEntry, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, err
	}
	now := timezone.NowIn(shop.Timezone)

	if err := uc.repo.ClaimInProgress(ctx, barberID, entryID, now); err != nil {
		return nil, err
	}

	promoted, err := uc.enforce.Execute(ctx, barberID)
	if err != nil {
		log.Println("queue enforce error:", err)
	}
	uc.notify.DispatchEntries(promoted)

	entry, err := uc.repo.GetEntryForBarber(ctx, entryID, barberID)
	if err != nil {
		return nil, httperr.ErrNotFound("queue_entry_not_found")
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &barberID,
		Action:       "queue_called",
		Entity:       "queue_entry",
		EntityID:     &entry.ID,
	})

	return entry, nil
}
