package jobs

import (
	"context"
	"log"
	"time"

	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/notify"
)

// Sweep reentrega avisos pendentes: toda entrada up_next com notified=false,
// seja porque o dispatch da promoção falhou, seja porque caiu no descarte de
// fila cheia. Com a marca gravada só depois do envio, a garantia fica em
// pelo-menos-uma-vez: duplicata é tolerada, silêncio não.
type Sweep struct {
	repo   domain.Repository
	sender notify.Sender
	batch  int
}

func NewSweep(repo domain.Repository, sender notify.Sender, batch int) *Sweep {
	if batch <= 0 {
		batch = 100
	}
	return &Sweep{
		repo:   repo,
		sender: sender,
		batch:  batch,
	}
}

func (s *Sweep) Name() string { return "notify-sweep" }

func (s *Sweep) Tick(ctx context.Context, _ time.Time) error {
	entries, err := s.repo.ListUnnotifiedUpNext(ctx, s.batch)
	if err != nil {
		return err
	}

	for i := range entries {
		n := notify.FromEntry(&entries[i])

		if err := s.sender.Send(ctx, n); err != nil {
			// fica para a próxima volta
			log.Println("sweep send error:", err)
			continue
		}

		if _, err := s.repo.MarkNotified(ctx, entries[i].ID); err != nil {
			// entrega feita, marca não: a próxima volta pode duplicar
			log.Println("sweep mark error:", err)
		}
	}

	return nil
}
