package jobs

import (
	"context"
	"log"
	"time"
)

// Job é uma volta de trabalho periódico. O now chega de fora para facilitar
// teste; cada volta ganha um timeout próprio.
type Job interface {
	Name() string
	Tick(ctx context.Context, now time.Time) error
}

const tickTimeout = 30 * time.Second

// Start roda o job no intervalo dado até o contexto encerrar.
func Start(ctx context.Context, interval time.Duration, job Job) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			tctx, cancel := context.WithTimeout(ctx, tickTimeout)
			if err := job.Tick(tctx, now); err != nil {
				log.Printf("%s tick error: %v", job.Name(), err)
			}
			cancel()
		}
	}
}
