package models

import "time"

type QueueEntry struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarbershopID uint       `json:"barbershop_id"`
	Barbershop   Barbershop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barbershop"`

	BarberID uint `gorm:"index:idx_queue_barber_status" json:"barber_id"`
	Barber   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	CustomerName  string `gorm:"size:100;not null" json:"customer_name"`
	CustomerPhone string `gorm:"size:20" json:"customer_phone"`
	CustomerEmail string `gorm:"size:100" json:"customer_email"`

	HeadCount int  `gorm:"default:1" json:"head_count"`
	IsVIP     bool `gorm:"default:false" json:"is_vip"`

	Status string `gorm:"size:20;default:'waiting';index:idx_queue_barber_status" json:"status"`

	Notified     bool `gorm:"default:false" json:"notified"`
	Acknowledged bool `gorm:"default:false" json:"acknowledged"`

	RefImageURL string `gorm:"size:512" json:"ref_image_url"`
	PushToken   string `gorm:"size:255" json:"-"`

	// Dono opcional: entradas criadas por cliente logado. Entradas de balcão
	// ficam sem dono e só o barbeiro mexe nelas.
	UserID *uint `json:"user_id"`

	Source        string `gorm:"size:20;default:'public'" json:"source"`
	AppointmentID *uint  `json:"appointment_id"`

	CalledAt    *time.Time `json:"called_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
