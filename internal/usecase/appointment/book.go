package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-queue/internal/audit"
	domain "github.com/BruksfildServices01/barber-queue/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/models"
	"github.com/BruksfildServices01/barber-queue/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type BookAppointmentInput struct {
	BarbershopID uint
	BarberID     uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceID uint

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

// Auditor grava a trilha de auditoria fora do caminho da resposta.
type Auditor interface {
	Dispatch(ev audit.Event)
}

type BookAppointment struct {
	repo  domain.Repository
	audit Auditor

	// relógio injetável nos testes
	now func(tz string) time.Time
}

func NewBookAppointment(
	repo domain.Repository,
	auditor Auditor,
) *BookAppointment {
	return &BookAppointment{
		repo:  repo,
		audit: auditor,
		now:   timezone.NowIn,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Barbearia
	// --------------------------------------------------
	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Barbeiro pertence à casa
	// --------------------------------------------------
	if _, err := uc.repo.GetBarber(ctx, in.BarbershopID, in.BarberID); err != nil {
		return nil, httperr.ErrNotFound("barber_not_found")
	}

	// --------------------------------------------------
	// 3️⃣ Data / hora no timezone da barbearia
	// --------------------------------------------------
	loc := timezone.Location(shop.Timezone)

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		loc,
	)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date_or_time")
	}

	// --------------------------------------------------
	// 4️⃣ Antecedência: nada para hoje, só de amanhã em diante
	//     (dia calculado no fuso da casa, não no do servidor)
	// --------------------------------------------------
	now := uc.now(shop.Timezone)

	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	if !startDay.After(today) {
		return nil, httperr.ErrValidation("too_soon")
	}

	// --------------------------------------------------
	// 5️⃣ Serviço
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, in.BarbershopID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrValidation("service_not_found")
	}
	if service.DurationMin <= 0 {
		return nil, httperr.ErrValidation("invalid_service_duration")
	}

	end := start.Add(time.Duration(service.DurationMin) * time.Minute)

	// --------------------------------------------------
	// 6️⃣ Dentro do expediente fixo da casa
	// --------------------------------------------------
	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			start.Year(), start.Month(), start.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	if start.Before(parseHM(shop.OpenTime)) || end.After(parseHM(shop.CloseTime)) {
		return nil, httperr.ErrValidation("outside_business_hours")
	}

	// --------------------------------------------------
	// 7️⃣ Cliente (get or create)
	// --------------------------------------------------
	if in.ClientName == "" || in.ClientPhone == "" {
		return nil, httperr.ErrValidation("missing_client_data")
	}

	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.BarbershopID,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 8️⃣ Criação com o re-check de conflito na transação do
	//     repositório; quem assa primeiro ganha, o segundo recebe
	//     time_conflict e escolhe outro slot
	// --------------------------------------------------
	ap := &models.Appointment{
		BarbershopID: in.BarbershopID,
		BarberID:     in.BarberID,
		ClientID:     client.ID,
		ServiceID:    service.ID,
		StartTime:    start,
		EndTime:      end,
		Status:       string(domain.InitialStatus()),
		Notes:        in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 9️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       &in.BarberID,
		Action:       "appointment_booked",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}
