package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-queue/internal/models"
)

type senderFunc func(ctx context.Context, n Notification) error

func (f senderFunc) Send(ctx context.Context, n Notification) error { return f(ctx, n) }

type markerFunc func(ctx context.Context, entryID uint) (bool, error)

func (f markerFunc) MarkNotified(ctx context.Context, entryID uint) (bool, error) {
	return f(ctx, entryID)
}

func TestDeliver_MarksAfterSend(t *testing.T) {
	var sent []uint
	var marked []uint

	d := &Dispatcher{
		sender: senderFunc(func(_ context.Context, n Notification) error {
			sent = append(sent, n.QueueEntryID)
			return nil
		}),
		marker: markerFunc(func(_ context.Context, id uint) (bool, error) {
			marked = append(marked, id)
			return true, nil
		}),
	}

	d.deliver(Notification{QueueEntryID: 7})

	assert.Equal(t, []uint{7}, sent)
	assert.Equal(t, []uint{7}, marked)
}

// Envio que falha não marca: a entrada continua notified=false e a varredura
// reenvia.
func TestDeliver_SendFailureSkipsMark(t *testing.T) {
	var marked []uint

	d := &Dispatcher{
		sender: senderFunc(func(_ context.Context, _ Notification) error {
			return errors.New("sink indisponível")
		}),
		marker: markerFunc(func(_ context.Context, id uint) (bool, error) {
			marked = append(marked, id)
			return true, nil
		}),
	}

	d.deliver(Notification{QueueEntryID: 7})
	assert.Empty(t, marked)
}

// Fila cheia descarta em vez de bloquear quem acabou de mutar a fila.
func TestDispatch_DropsWhenFull(t *testing.T) {
	d := &Dispatcher{queue: make(chan Notification, 1)}

	d.Dispatch(Notification{QueueEntryID: 1})
	d.Dispatch(Notification{QueueEntryID: 2})

	require.Len(t, d.queue, 1)
	first := <-d.queue
	assert.Equal(t, uint(1), first.QueueEntryID)
}

func TestDispatchEntries(t *testing.T) {
	d := &Dispatcher{queue: make(chan Notification, 2)}

	d.DispatchEntries([]models.QueueEntry{
		{ID: 1, CustomerName: "Rafael Costa"},
		{ID: 2, CustomerName: "Bruno Lima"},
	})

	require.Len(t, d.queue, 2)
	first := <-d.queue
	assert.Equal(t, uint(1), first.QueueEntryID)
	assert.Equal(t, "Rafael Costa", first.CustomerName)
}

func TestNewDispatcher_WorkerDelivers(t *testing.T) {
	done := make(chan uint, 1)

	d := NewDispatcher(
		senderFunc(func(_ context.Context, _ Notification) error { return nil }),
		markerFunc(func(_ context.Context, id uint) (bool, error) {
			done <- id
			return true, nil
		}),
	)

	d.Dispatch(Notification{QueueEntryID: 5})

	select {
	case id := <-done:
		assert.Equal(t, uint(5), id)
	case <-time.After(2 * time.Second):
		t.Fatal("worker não entregou o aviso")
	}
}
