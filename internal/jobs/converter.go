package jobs

import (
	"context"
	"log"
	"time"

	apdomain "github.com/BruksfildServices01/barber-queue/internal/domain/appointment"
	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	usecase "github.com/BruksfildServices01/barber-queue/internal/usecase/queue"
)

// Converter injeta agendamentos confirmados na fila viva quando o início cai
// dentro da janela de antecedência. Agendamento convertido entra como VIP e a
// flag converted nunca volta; agendamento que a janela perdeu (serviço fora
// do ar no horário) fica para trás de propósito.
type Converter struct {
	repo    domain.Repository
	enforce *usecase.EnforceUpNext
	notify  usecase.Notifier
	lead    time.Duration
}

func NewConverter(
	repo domain.Repository,
	enforce *usecase.EnforceUpNext,
	notify usecase.Notifier,
	lead time.Duration,
) *Converter {
	if lead <= 0 {
		lead = 30 * time.Minute
	}
	return &Converter{
		repo:    repo,
		enforce: enforce,
		notify:  notify,
		lead:    lead,
	}
}

func (c *Converter) Name() string { return "converter" }

// Tick é idempotente: a conversão reivindica a flag converted numa escrita
// condicional, então voltas sobrepostas — ou duas instâncias — não duplicam
// entrada.
func (c *Converter) Tick(ctx context.Context, now time.Time) error {
	due, err := c.repo.ListDueUnconverted(ctx, now, now.Add(c.lead))
	if err != nil {
		return err
	}

	for i := range due {
		ap := &due[i]
		if !apdomain.CanConvert(apdomain.Status(ap.Status), ap.Converted) {
			continue
		}

		entry := apdomain.ToQueueEntry(ap)

		applied, err := c.repo.ConvertAppointment(ctx, ap, entry)
		if err != nil {
			log.Println("convert error:", err)
			continue
		}
		if !applied {
			// outra instância converteu primeiro
			continue
		}

		log.Printf("converter: appointment=%d queue_entry=%d barber=%d", ap.ID, entry.ID, ap.BarberID)

		promoted, err := c.enforce.Execute(ctx, ap.BarberID)
		if err != nil {
			log.Println("queue enforce error:", err)
		}
		c.notify.DispatchEntries(promoted)
	}

	return nil
}
