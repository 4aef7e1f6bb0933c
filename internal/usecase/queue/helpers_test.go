package queue

import (
	"context"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-queue/internal/audit"
	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

const (
	testShopID    = uint(1)
	testBarberID  = uint(2)
	testServiceID = uint(3)
)

// fakeRepo guarda a fila em memória reproduzindo as escritas condicionais do
// repositório real: mesma ordenação, mesmos retornos (aplicou, erro) e mesmos
// códigos de negócio.
type fakeRepo struct {
	mu sync.Mutex

	shops    map[uint]*models.Barbershop
	barbers  map[uint]*models.User
	services map[uint]*models.Service

	entries      map[uint]*models.QueueEntry
	appointments map[uint]*models.Appointment
	charges      []models.ChargeLog
	nextID       uint

	// relógio determinístico: cada insert avança um minuto
	clock time.Time

	failCreate   error
	stalePromote bool
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	shopID := testShopID
	return &fakeRepo{
		shops: map[uint]*models.Barbershop{
			testShopID: {
				ID:           testShopID,
				Name:         "Navalha de Ouro",
				Slug:         "navalha-de-ouro",
				Timezone:     "America/Sao_Paulo",
				OpenTime:     "09:00",
				CloseTime:    "19:00",
				VIPSurcharge: 10,
			},
		},
		barbers: map[uint]*models.User{
			testBarberID: {
				ID:           testBarberID,
				BarbershopID: &shopID,
				Name:         "Rafael",
				Role:         "owner",
				IsAvailable:  true,
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
		entries:      map[uint]*models.QueueEntry{},
		appointments: map[uint]*models.Appointment{},
		clock:        time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func (f *fakeRepo) insertLocked(e *models.QueueEntry) {
	f.nextID++
	e.ID = f.nextID
	if e.CreatedAt.IsZero() {
		e.CreatedAt = f.clock
		f.clock = f.clock.Add(time.Minute)
	}
	cp := *e
	f.entries[e.ID] = &cp
}

// seedEntry insere direto no estado pedido, sem passar pelo use case.
func (f *fakeRepo) seedEntry(e models.QueueEntry) uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insertLocked(&e)
	return e.ID
}

func (f *fakeRepo) status(id uint) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.entries[id]; ok {
		return e.Status
	}
	return ""
}

func (f *fakeRepo) get(id uint) *models.QueueEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.entries[id]; ok {
		cp := *e
		return &cp
	}
	return nil
}

// --------------------------------------------------
// Barbershop / Barber / Service
// --------------------------------------------------

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

// --------------------------------------------------
// Queue entries
// --------------------------------------------------

func (f *fakeRepo) CreateEntry(_ context.Context, e *models.QueueEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate != nil {
		return f.failCreate
	}
	f.insertLocked(e)
	return nil
}

func (f *fakeRepo) GetEntry(_ context.Context, id uint) (*models.QueueEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeRepo) GetEntryForBarber(_ context.Context, id, barberID uint) (*models.QueueEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[id]
	if !ok || e.BarberID != barberID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeRepo) ListActiveForBarber(_ context.Context, barberID uint) ([]models.QueueEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.QueueEntry
	for _, e := range f.entries {
		if e.BarberID == barberID && domain.IsActive(domain.Status(e.Status)) {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsVIP != out[j].IsVIP {
			return out[i].IsVIP
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeRepo) HasActiveEntryForUser(_ context.Context, userID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.UserID != nil && *e.UserID == userID && domain.IsActive(domain.Status(e.Status)) {
			return true, nil
		}
	}
	return false, nil
}

// --------------------------------------------------
// Conditional state changes
// --------------------------------------------------

func (f *fakeRepo) PromoteUpNext(_ context.Context, barberID, promoteID uint, demoteID *uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.stalePromote {
		return false, nil
	}

	if demoteID != nil {
		d, ok := f.entries[*demoteID]
		if !ok || d.BarberID != barberID || d.Status != string(domain.StatusUpNext) {
			return false, nil
		}
	}
	p, ok := f.entries[promoteID]
	if !ok || p.BarberID != barberID || p.Status != string(domain.StatusWaiting) {
		return false, nil
	}

	if demoteID != nil {
		d := f.entries[*demoteID]
		d.Status = string(domain.StatusWaiting)
		d.Notified = false
		d.Acknowledged = false
	}
	p.Status = string(domain.StatusUpNext)
	return true, nil
}

func (f *fakeRepo) ClaimInProgress(_ context.Context, barberID, entryID uint, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var target *models.QueueEntry
	for _, e := range f.entries {
		if e.BarberID != barberID || !domain.IsActive(domain.Status(e.Status)) {
			continue
		}
		if e.Status == string(domain.StatusInProgress) {
			return httperr.ErrConflict("chair_occupied")
		}
		if e.ID == entryID {
			target = e
		}
	}
	if target == nil {
		return httperr.ErrNotFound("queue_entry_not_found")
	}

	target.Status = string(domain.StatusInProgress)
	target.CalledAt = &now
	return nil
}

func (f *fakeRepo) CompleteWithCharge(_ context.Context, entryID uint, charge *models.ChargeLog, now time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, ok := f.entries[entryID]
	if !ok || e.Status != string(domain.StatusInProgress) {
		return false, nil
	}
	e.Status = string(domain.StatusDone)
	e.CompletedAt = &now
	f.charges = append(f.charges, *charge)
	return true, nil
}

func (f *fakeRepo) CancelEntry(_ context.Context, barberID, entryID uint, now time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, ok := f.entries[entryID]
	if !ok || e.BarberID != barberID {
		return false, nil
	}
	if e.Status != string(domain.StatusWaiting) && e.Status != string(domain.StatusUpNext) {
		return false, nil
	}
	e.Status = string(domain.StatusCancelled)
	e.CancelledAt = &now
	return true, nil
}

func (f *fakeRepo) DeleteOwnedEntry(_ context.Context, entryID, userID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, ok := f.entries[entryID]
	if !ok || e.UserID == nil || *e.UserID != userID {
		return false, nil
	}
	if e.Status != string(domain.StatusWaiting) && e.Status != string(domain.StatusUpNext) {
		return false, nil
	}
	delete(f.entries, entryID)
	return true, nil
}

func (f *fakeRepo) SetAcknowledged(_ context.Context, entryID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, ok := f.entries[entryID]
	if !ok || e.Status != string(domain.StatusUpNext) {
		return false, nil
	}
	e.Acknowledged = true
	return true, nil
}

// --------------------------------------------------
// Notifications
// --------------------------------------------------

func (f *fakeRepo) ListUnnotifiedUpNext(_ context.Context, limit int) ([]models.QueueEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.QueueEntry
	for _, e := range f.entries {
		if e.Status == string(domain.StatusUpNext) && !e.Notified {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRepo) MarkNotified(_ context.Context, entryID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, ok := f.entries[entryID]
	if !ok || e.Notified {
		return false, nil
	}
	e.Notified = true
	return true, nil
}

// --------------------------------------------------
// Appointment conversion
// --------------------------------------------------

func (f *fakeRepo) ListDueUnconverted(_ context.Context, from, to time.Time) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.Status != "confirmed" || ap.Converted {
			continue
		}
		if ap.StartTime.Before(from) || ap.StartTime.After(to) {
			continue
		}
		out = append(out, *ap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (f *fakeRepo) ConvertAppointment(_ context.Context, ap *models.Appointment, entry *models.QueueEntry) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.appointments[ap.ID]
	if !ok || stored.Converted {
		return false, nil
	}
	stored.Converted = true
	f.insertLocked(entry)
	return true, nil
}

// --------------------------------------------------
// Capturas
// --------------------------------------------------

type captureNotifier struct {
	mu      sync.Mutex
	entries []models.QueueEntry
}

func (n *captureNotifier) DispatchEntries(entries []models.QueueEntry) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.entries = append(n.entries, entries...)
}

func (n *captureNotifier) ids() []uint {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]uint, 0, len(n.entries))
	for _, e := range n.entries {
		out = append(out, e.ID)
	}
	return out
}

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

func newDeps() (*fakeRepo, *EnforceUpNext, *captureNotifier, *captureAuditor) {
	repo := newFakeRepo()
	return repo, NewEnforceUpNext(repo), &captureNotifier{}, &captureAuditor{}
}

// waitingFor monta a entrada mínima de balcão em espera.
func waitingFor(name string) models.QueueEntry {
	return models.QueueEntry{
		BarbershopID: testShopID,
		BarberID:     testBarberID,
		ServiceID:    testServiceID,
		CustomerName: name,
		HeadCount:    1,
		Status:       string(domain.StatusWaiting),
		Source:       string(domain.SourceBarber),
	}
}
