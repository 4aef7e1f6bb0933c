package queue

import (
	"context"

	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// AcknowledgeEntry registra o "estou indo" do cliente avisado. Não mexe em
// status, então o motor não roda aqui.
type AcknowledgeEntry struct {
	repo domain.Repository
}

func NewAcknowledgeEntry(repo domain.Repository) *AcknowledgeEntry {
	return &AcknowledgeEntry{repo: repo}
}

func (uc *AcknowledgeEntry) Execute(
	ctx context.Context,
	entryID uint,
	requestingUserID uint,
) (*models.QueueEntry, error) {

	entry, err := uc.repo.GetEntry(ctx, entryID)
	if err != nil {
		return nil, httperr.ErrNotFound("queue_entry_not_found")
	}

	if entry.UserID == nil || *entry.UserID != requestingUserID {
		return nil, httperr.ErrForbidden("not_owner")
	}
	if err := domain.CanAcknowledge(domain.Status(entry.Status)); err != nil {
		return nil, err
	}

	ok, err := uc.repo.SetAcknowledged(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.ErrNotFound("invalid_state")
	}

	entry.Acknowledged = true
	return entry, nil
}
