package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-queue/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository

	// relógio injetável nos testes
	now func(tz string) time.Time
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{
		repo: repo,
		now:  timezone.NowIn,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	service, err := uc.repo.GetService(ctx, in.BarbershopID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrValidation("service_not_found")
	}
	if service.DurationMin <= 0 {
		return nil, httperr.ErrValidation("invalid_service_duration")
	}

	loc := timezone.Location(shop.Timezone)

	day := time.Date(
		in.Date.Year(), in.Date.Month(), in.Date.Day(),
		0, 0, 0, 0,
		loc,
	)

	appointments, err := uc.repo.ListAppointmentsForDay(
		ctx,
		in.BarberID,
		day,
		day.Add(24*time.Hour),
	)
	if err != nil {
		return nil, err
	}

	busy := make([]domain.Interval, 0, len(appointments))
	for _, ap := range appointments {
		busy = append(busy, domain.Interval{
			Start: ap.StartTime.In(loc),
			End:   ap.EndTime.In(loc),
		})
	}

	return domain.ComputeSlots(domain.SlotInput{
		Day:       day,
		OpenTime:  shop.OpenTime,
		CloseTime: shop.CloseTime,
		Duration:  time.Duration(service.DurationMin) * time.Minute,
		Now:       uc.now(shop.Timezone),
		Busy:      busy,
	}), nil
}
