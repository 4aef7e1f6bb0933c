package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-queue/internal/models"
)

func TestListAppointmentsByDate(t *testing.T) {
	repo := newFakeRepo()
	uc := NewListAppointmentsByDate(repo)
	loc := spLoc(t)

	repo.seedAppointment(models.Appointment{
		BarberID:  testBarberID,
		Status:    "confirmed",
		StartTime: time.Date(2026, 3, 11, 10, 0, 0, 0, loc),
		EndTime:   time.Date(2026, 3, 11, 10, 30, 0, 0, loc),
		Client:    models.Client{Name: "Rafael Costa"},
		Service:   models.Service{Name: "Corte"},
	})
	// cancelado aparece na agenda do dia
	repo.seedAppointment(models.Appointment{
		BarberID:  testBarberID,
		Status:    "cancelled",
		StartTime: time.Date(2026, 3, 11, 14, 0, 0, 0, loc),
		EndTime:   time.Date(2026, 3, 11, 14, 30, 0, 0, loc),
		Client:    models.Client{Name: "Bruno Lima"},
		Service:   models.Service{Name: "Barba"},
	})
	// outro dia fica de fora
	repo.seedAppointment(models.Appointment{
		BarberID:  testBarberID,
		Status:    "confirmed",
		StartTime: time.Date(2026, 3, 12, 10, 0, 0, 0, loc),
		EndTime:   time.Date(2026, 3, 12, 10, 30, 0, 0, loc),
	})

	out, err := uc.Execute(context.Background(), testBarberID, testShopID, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Rafael Costa", out[0].ClientName)
	assert.Equal(t, "Corte", out[0].ServiceName)
	assert.Equal(t, "confirmed", out[0].Status)
	assert.Equal(t, "cancelled", out[1].Status)
}

func TestListAppointmentsByMonth(t *testing.T) {
	repo := newFakeRepo()
	uc := NewListAppointmentsByMonth(repo)
	loc := spLoc(t)

	repo.seedAppointment(models.Appointment{
		BarberID:  testBarberID,
		Status:    "confirmed",
		StartTime: time.Date(2026, 3, 31, 18, 0, 0, 0, loc),
		EndTime:   time.Date(2026, 3, 31, 18, 30, 0, 0, loc),
	})
	repo.seedAppointment(models.Appointment{
		BarberID:  testBarberID,
		Status:    "confirmed",
		StartTime: time.Date(2026, 4, 1, 10, 0, 0, 0, loc),
		EndTime:   time.Date(2026, 4, 1, 10, 30, 0, 0, loc),
	})

	out, err := uc.Execute(context.Background(), testBarberID, testShopID, 2026, 3)

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, time.Date(2026, 3, 31, 18, 0, 0, 0, loc), out[0].StartTime)
}
