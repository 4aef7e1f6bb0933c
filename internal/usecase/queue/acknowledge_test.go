package queue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
)

func TestAcknowledge_UpNext(t *testing.T) {
	repo, _, _, _ := newDeps()
	uc := NewAcknowledgeEntry(repo)

	e := ownedWaiting("Ana", 7)
	e.Status = string(domain.StatusUpNext)
	id := repo.seedEntry(e)

	entry, err := uc.Execute(context.Background(), id, 7)

	require.NoError(t, err)
	assert.True(t, entry.Acknowledged)
	assert.True(t, repo.get(id).Acknowledged)
}

func TestAcknowledge_WaitingRejected(t *testing.T) {
	repo, _, _, _ := newDeps()
	uc := NewAcknowledgeEntry(repo)

	id := repo.seedEntry(ownedWaiting("Ana", 7))

	_, err := uc.Execute(context.Background(), id, 7)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestAcknowledge_NotOwner(t *testing.T) {
	repo, _, _, _ := newDeps()
	uc := NewAcknowledgeEntry(repo)

	e := ownedWaiting("Ana", 7)
	e.Status = string(domain.StatusUpNext)
	id := repo.seedEntry(e)

	_, err := uc.Execute(context.Background(), id, 8)
	assert.True(t, httperr.IsBusiness(err, "not_owner"))
}

func TestAcknowledge_Missing(t *testing.T) {
	repo, _, _, _ := newDeps()
	uc := NewAcknowledgeEntry(repo)

	_, err := uc.Execute(context.Background(), 99, 7)
	assert.True(t, httperr.IsBusiness(err, "queue_entry_not_found"))
}
