package models

import "time"

// Registro de cobrança gravado junto com a conclusão do corte.
type ChargeLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarbershopID uint `json:"barbershop_id"`
	BarberID     uint `json:"barber_id"`
	ServiceID    uint `json:"service_id"`
	QueueEntryID uint `gorm:"index" json:"queue_entry_id"`

	ServicePrice float64 `json:"service_price"`
	HeadCount    int     `json:"head_count"`
	Tip          float64 `json:"tip"`
	VIPSurcharge float64 `json:"vip_surcharge"`
	Total        float64 `json:"total"`

	CreatedAt time.Time `json:"created_at"`
}
