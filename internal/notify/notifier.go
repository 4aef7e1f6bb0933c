package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// Notification é o aviso de "é a sua vez" entregue ao sink externo. A entrega
// real (push, e-mail) mora do outro lado da fronteira.
type Notification struct {
	QueueEntryID uint   `json:"queue_entry_id"`
	BarbershopID uint   `json:"barbershop_id"`
	BarberID     uint   `json:"barber_id"`
	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	PushToken    string `json:"push_token,omitempty"`
}

type Sender interface {
	Send(ctx context.Context, n Notification) error
}

// FromEntry projeta a entrada no payload de notificação.
func FromEntry(e *models.QueueEntry) Notification {
	return Notification{
		QueueEntryID: e.ID,
		BarbershopID: e.BarbershopID,
		BarberID:     e.BarberID,
		CustomerName: e.CustomerName,
		Phone:        e.CustomerPhone,
		Email:        e.CustomerEmail,
		PushToken:    e.PushToken,
	}
}

// NewSender escolhe o provider pelo nome configurado (NOTIFY_PROVIDER).
func NewSender(kind, webhookURL, webhookToken string) Sender {
	switch kind {
	case "", "log":
		return logSender{}
	case "noop":
		return noopSender{}
	case "fail":
		return failSender{}
	case "webhook":
		if webhookURL == "" {
			return logSender{}
		}
		return webhookSender{url: webhookURL, token: webhookToken}
	default:
		return logSender{}
	}
}

type logSender struct{}

func (logSender) Send(ctx context.Context, n Notification) error {
	log.Printf("notify up_next entry=%d barber=%d customer=%s", n.QueueEntryID, n.BarberID, n.CustomerName)
	return nil
}

type noopSender struct{}

func (noopSender) Send(ctx context.Context, n Notification) error {
	return nil
}

type failSender struct{}

func (failSender) Send(ctx context.Context, n Notification) error {
	return errors.New("sender failure")
}

type webhookSender struct {
	url   string
	token string
}

func (s webhookSender) Send(ctx context.Context, n Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notification sink status %d", resp.StatusCode)
	}
	return nil
}
