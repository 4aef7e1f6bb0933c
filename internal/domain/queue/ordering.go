package queue

import (
	"sort"

	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// ===============================
// Ordering
// ===============================

// SortWaiting ordena candidatos à promoção: VIP na frente, depois ordem de
// chegada. O CreatedAt original sobrevive ao rebaixamento do bump, então uma
// entrada rebaixada volta exatamente para a posição antiga.
func SortWaiting(entries []models.QueueEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsVIP != entries[j].IsVIP {
			return entries[i].IsVIP
		}
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.Before(entries[j].CreatedAt)
		}
		return entries[i].ID < entries[j].ID
	})
}

// Split separa o conjunto ativo de um barbeiro. A lista de waiting volta
// ordenada; up_next e in_progress são no máximo um cada (invariante mantida
// pelas escritas condicionais).
func Split(entries []models.QueueEntry) (waiting []models.QueueEntry, upNext, inProgress *models.QueueEntry) {
	for i := range entries {
		switch Status(entries[i].Status) {
		case StatusWaiting:
			waiting = append(waiting, entries[i])
		case StatusUpNext:
			if upNext == nil {
				upNext = &entries[i]
			}
		case StatusInProgress:
			if inProgress == nil {
				inProgress = &entries[i]
			}
		}
	}
	SortWaiting(waiting)
	return waiting, upNext, inProgress
}
