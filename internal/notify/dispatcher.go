package notify

import (
	"context"
	"log"
	"time"

	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// Marker grava a flag notified depois de uma entrega bem-sucedida.
type Marker interface {
	MarkNotified(ctx context.Context, entryID uint) (bool, error)
}

type Dispatcher struct {
	sender Sender
	marker Marker
	queue  chan Notification
}

func NewDispatcher(sender Sender, marker Marker) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		marker: marker,
		queue:  make(chan Notification, 100), // buffer seguro
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for n := range d.queue {
		d.deliver(n)
	}
}

func (d *Dispatcher) deliver(n Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := d.sender.Send(ctx, n); err != nil {
		// Falha de downstream não volta para quem mutou a fila; a varredura
		// reenvia enquanto notified=false.
		log.Println("notify error:", err)
		return
	}

	// Marca só depois do envio dar certo. Se a marcação falhar, a varredura
	// pode reenviar: duplicata tolerada, silêncio não.
	if _, err := d.marker.MarkNotified(ctx, n.QueueEntryID); err != nil {
		log.Println("notify mark error:", err)
	}
}

// Dispatch enfileira sem bloquear o caminho da mutação. Fila cheia descarta e
// a varredura cobre o buraco.
func (d *Dispatcher) Dispatch(n Notification) {
	select {
	case d.queue <- n:
		// enviado
	default:
		log.Println("notify queue full, dropping (sweep retries)")
	}
}

// DispatchEntries enfileira o aviso de cada entrada recém-promovida.
func (d *Dispatcher) DispatchEntries(entries []models.QueueEntry) {
	for i := range entries {
		d.Dispatch(FromEntry(&entries[i]))
	}
}
