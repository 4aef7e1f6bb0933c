package queue

import (
	"context"

	"github.com/BruksfildServices01/barber-queue/internal/audit"
	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// Notifier recebe as entradas recém-promovidas; a entrega roda fora do
// caminho da mutação.
type Notifier interface {
	DispatchEntries(entries []models.QueueEntry)
}

// Auditor grava a trilha de auditoria fora do caminho da resposta.
type Auditor interface {
	Dispatch(ev audit.Event)
}

// ======================================================
// ENFORCE UP NEXT (motor de promoção)
// ======================================================

// EnforceUpNext mantém os invariantes da fila de um barbeiro: no máximo um
// in_progress, no máximo um up_next, e o up_next certo pela ordem de espera
// (VIP primeiro, depois chegada). Não guarda estado: cada chamada relê a fila
// e decide do zero, então repetir a chamada — ou rodá-la em duas instâncias —
// não muda nada além do necessário.
type EnforceUpNext struct {
	repo domain.Repository
}

func NewEnforceUpNext(repo domain.Repository) *EnforceUpNext {
	return &EnforceUpNext{repo: repo}
}

// Execute devolve as entradas que ficaram up_next agora (0 ou 1).
func (uc *EnforceUpNext) Execute(
	ctx context.Context,
	barberID uint,
) ([]models.QueueEntry, error) {

	entries, err := uc.repo.ListActiveForBarber(ctx, barberID)
	if err != nil {
		return nil, err
	}

	waiting, upNext, _ := domain.Split(entries)
	if len(waiting) == 0 {
		return nil, nil
	}

	top := waiting[0]

	var demoteID *uint

	switch {
	case upNext == nil:
		// slot vago: promove o topo

	case !upNext.IsVIP && top.IsVIP:
		// bump: VIP entra na frente de regular já promovido; o rebaixado
		// mantém o CreatedAt original e volta para a posição antiga
		id := upNext.ID
		demoteID = &id

	default:
		// o up_next atual continua sendo o certo
		return nil, nil
	}

	applied, err := uc.repo.PromoteUpNext(ctx, barberID, top.ID, demoteID)
	if err != nil {
		return nil, err
	}
	if !applied {
		// alguém mexeu na fila no meio do caminho; a próxima chamada resolve
		return nil, nil
	}

	top.Status = string(domain.StatusUpNext)
	return []models.QueueEntry{top}, nil
}
