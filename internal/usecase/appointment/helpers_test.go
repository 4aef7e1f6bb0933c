package appointment

import (
	"context"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-queue/internal/audit"
	domain "github.com/BruksfildServices01/barber-queue/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

const (
	testShopID    = uint(1)
	testBarberID  = uint(2)
	testServiceID = uint(3)
)

// fakeRepo guarda a agenda em memória reproduzindo o re-check de conflito do
// repositório real: insert que cruza confirmado existente vira time_conflict.
type fakeRepo struct {
	mu sync.Mutex

	shops    map[uint]*models.Barbershop
	barbers  map[uint]*models.User
	services map[uint]*models.Service
	clients  map[uint]*models.Client

	appointments map[uint]*models.Appointment
	nextID       uint
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	shopID := testShopID
	return &fakeRepo{
		shops: map[uint]*models.Barbershop{
			testShopID: {
				ID:        testShopID,
				Name:      "Navalha de Ouro",
				Slug:      "navalha-de-ouro",
				Timezone:  "America/Sao_Paulo",
				OpenTime:  "09:00",
				CloseTime: "19:00",
			},
		},
		barbers: map[uint]*models.User{
			testBarberID: {
				ID:           testBarberID,
				BarbershopID: &shopID,
				Name:         "Rafael",
				Role:         "owner",
			},
		},
		services: map[uint]*models.Service{
			testServiceID: {
				ID:           testServiceID,
				BarbershopID: testShopID,
				Name:         "Corte",
				DurationMin:  30,
				Price:        50,
				Active:       true,
			},
		},
		clients:      map[uint]*models.Client{},
		appointments: map[uint]*models.Appointment{},
	}
}

func (f *fakeRepo) seedAppointment(ap models.Appointment) uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	ap.ID = f.nextID
	cp := ap
	f.appointments[ap.ID] = &cp
	return ap.ID
}

func (f *fakeRepo) GetBarbershopByID(_ context.Context, id uint) (*models.Barbershop, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	shop, ok := f.shops[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *shop
	return &cp, nil
}

func (f *fakeRepo) GetService(_ context.Context, barbershopID, serviceID uint) (*models.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.services[serviceID]
	if !ok || s.BarbershopID != barbershopID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeRepo) GetBarber(_ context.Context, barbershopID, barberID uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.barbers[barberID]
	if !ok || b.BarbershopID == nil || *b.BarbershopID != barbershopID {
		return nil, gorm.ErrRecordNotFound
	}
	if b.Role != "owner" && b.Role != "barber" {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeRepo) GetOrCreateClient(_ context.Context, barbershopID uint, name, phone, email string) (*models.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, c := range f.clients {
		if c.BarbershopID == barbershopID && c.Phone == phone {
			cp := *c
			return &cp, nil
		}
	}

	f.nextID++
	client := &models.Client{
		ID:           f.nextID,
		BarbershopID: barbershopID,
		Name:         name,
		Phone:        phone,
		Email:        email,
	}
	f.clients[client.ID] = client
	cp := *client
	return &cp, nil
}

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, other := range f.appointments {
		if other.BarberID != ap.BarberID || other.Status != "confirmed" {
			continue
		}
		if other.StartTime.Before(ap.EndTime) && other.EndTime.After(ap.StartTime) {
			return httperr.ErrConflict("time_conflict")
		}
	}

	f.nextID++
	ap.ID = f.nextID
	cp := *ap
	f.appointments[ap.ID] = &cp
	return nil
}

func (f *fakeRepo) GetAppointmentForBarber(_ context.Context, appointmentID, barberID uint) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ap, ok := f.appointments[appointmentID]
	if !ok || ap.BarberID != barberID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *ap
	return &cp, nil
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *ap
	f.appointments[ap.ID] = &cp
	return nil
}

func (f *fakeRepo) ListAppointmentsForDay(_ context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.BarberID != barberID || ap.Status != "confirmed" {
			continue
		}
		if ap.StartTime.Before(start) || !ap.StartTime.Before(end) {
			continue
		}
		out = append(out, *ap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (f *fakeRepo) ListAppointmentsForPeriod(_ context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.BarberID != barberID {
			continue
		}
		if ap.StartTime.Before(start) || !ap.StartTime.Before(end) {
			continue
		}
		out = append(out, *ap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

// --------------------------------------------------
// Capturas
// --------------------------------------------------

type captureAuditor struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *captureAuditor) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

func (a *captureAuditor) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.events))
	for _, ev := range a.events {
		out = append(out, ev.Action)
	}
	return out
}

// fixedNow congela o relógio do use case, ignorando o fuso pedido.
func fixedNow(at time.Time) func(string) time.Time {
	return func(string) time.Time { return at }
}
