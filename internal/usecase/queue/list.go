package queue

import (
	"context"

	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// ======================================================
// BOARD
// ======================================================

// Board é a foto viva da fila de um barbeiro: quem está na cadeira, quem é o
// próximo e a espera ordenada.
type Board struct {
	InProgress *models.QueueEntry  `json:"in_progress"`
	UpNext     *models.QueueEntry  `json:"up_next"`
	Waiting    []models.QueueEntry `json:"waiting"`
}

type ListBoard struct {
	repo domain.Repository
}

func NewListBoard(repo domain.Repository) *ListBoard {
	return &ListBoard{repo: repo}
}

func (uc *ListBoard) Execute(
	ctx context.Context,
	barberID uint,
) (*Board, error) {

	entries, err := uc.repo.ListActiveForBarber(ctx, barberID)
	if err != nil {
		return nil, err
	}

	waiting, upNext, inProgress := domain.Split(entries)
	if waiting == nil {
		waiting = []models.QueueEntry{}
	}

	return &Board{
		InProgress: inProgress,
		UpNext:     upNext,
		Waiting:    waiting,
	}, nil
}
