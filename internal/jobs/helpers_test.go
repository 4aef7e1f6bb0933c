package jobs

import (
	"context"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/models"
	"github.com/BruksfildServices01/barber-queue/internal/notify"
)

// fakeQueueRepo cobre a interface do repositório com funções plugáveis; método
// sem função devolve o zero.
type fakeQueueRepo struct {
	getBarbershopFn      func(ctx context.Context, id uint) (*models.Barbershop, error)
	getBarberFn          func(ctx context.Context, barbershopID, barberID uint) (*models.User, error)
	getServiceFn         func(ctx context.Context, barbershopID, serviceID uint) (*models.Service, error)
	createEntryFn        func(ctx context.Context, e *models.QueueEntry) error
	getEntryFn           func(ctx context.Context, id uint) (*models.QueueEntry, error)
	getEntryForBarberFn  func(ctx context.Context, id, barberID uint) (*models.QueueEntry, error)
	listActiveFn         func(ctx context.Context, barberID uint) ([]models.QueueEntry, error)
	hasActiveForUserFn   func(ctx context.Context, userID uint) (bool, error)
	promoteUpNextFn      func(ctx context.Context, barberID, promoteID uint, demoteID *uint) (bool, error)
	claimInProgressFn    func(ctx context.Context, barberID, entryID uint, now time.Time) error
	completeWithChargeFn func(ctx context.Context, entryID uint, charge *models.ChargeLog, now time.Time) (bool, error)
	cancelEntryFn        func(ctx context.Context, barberID, entryID uint, now time.Time) (bool, error)
	deleteOwnedEntryFn   func(ctx context.Context, entryID, userID uint) (bool, error)
	setAcknowledgedFn    func(ctx context.Context, entryID uint) (bool, error)
	listUnnotifiedFn     func(ctx context.Context, limit int) ([]models.QueueEntry, error)
	markNotifiedFn       func(ctx context.Context, entryID uint) (bool, error)
	listDueFn            func(ctx context.Context, from, to time.Time) ([]models.Appointment, error)
	convertFn            func(ctx context.Context, ap *models.Appointment, entry *models.QueueEntry) (bool, error)
}

var _ domain.Repository = (*fakeQueueRepo)(nil)

func (f *fakeQueueRepo) GetBarbershopByID(ctx context.Context, id uint) (*models.Barbershop, error) {
	if f.getBarbershopFn == nil {
		return nil, nil
	}
	return f.getBarbershopFn(ctx, id)
}

func (f *fakeQueueRepo) GetBarber(ctx context.Context, barbershopID, barberID uint) (*models.User, error) {
	if f.getBarberFn == nil {
		return nil, nil
	}
	return f.getBarberFn(ctx, barbershopID, barberID)
}

func (f *fakeQueueRepo) GetService(ctx context.Context, barbershopID, serviceID uint) (*models.Service, error) {
	if f.getServiceFn == nil {
		return nil, nil
	}
	return f.getServiceFn(ctx, barbershopID, serviceID)
}

func (f *fakeQueueRepo) CreateEntry(ctx context.Context, e *models.QueueEntry) error {
	if f.createEntryFn == nil {
		return nil
	}
	return f.createEntryFn(ctx, e)
}

func (f *fakeQueueRepo) GetEntry(ctx context.Context, id uint) (*models.QueueEntry, error) {
	if f.getEntryFn == nil {
		return nil, nil
	}
	return f.getEntryFn(ctx, id)
}

func (f *fakeQueueRepo) GetEntryForBarber(ctx context.Context, id, barberID uint) (*models.QueueEntry, error) {
	if f.getEntryForBarberFn == nil {
		return nil, nil
	}
	return f.getEntryForBarberFn(ctx, id, barberID)
}

func (f *fakeQueueRepo) ListActiveForBarber(ctx context.Context, barberID uint) ([]models.QueueEntry, error) {
	if f.listActiveFn == nil {
		return nil, nil
	}
	return f.listActiveFn(ctx, barberID)
}

func (f *fakeQueueRepo) HasActiveEntryForUser(ctx context.Context, userID uint) (bool, error) {
	if f.hasActiveForUserFn == nil {
		return false, nil
	}
	return f.hasActiveForUserFn(ctx, userID)
}

func (f *fakeQueueRepo) PromoteUpNext(ctx context.Context, barberID, promoteID uint, demoteID *uint) (bool, error) {
	if f.promoteUpNextFn == nil {
		return false, nil
	}
	return f.promoteUpNextFn(ctx, barberID, promoteID, demoteID)
}

func (f *fakeQueueRepo) ClaimInProgress(ctx context.Context, barberID, entryID uint, now time.Time) error {
	if f.claimInProgressFn == nil {
		return nil
	}
	return f.claimInProgressFn(ctx, barberID, entryID, now)
}

func (f *fakeQueueRepo) CompleteWithCharge(ctx context.Context, entryID uint, charge *models.ChargeLog, now time.Time) (bool, error) {
	if f.completeWithChargeFn == nil {
		return false, nil
	}
	return f.completeWithChargeFn(ctx, entryID, charge, now)
}

func (f *fakeQueueRepo) CancelEntry(ctx context.Context, barberID, entryID uint, now time.Time) (bool, error) {
	if f.cancelEntryFn == nil {
		return false, nil
	}
	return f.cancelEntryFn(ctx, barberID, entryID, now)
}

func (f *fakeQueueRepo) DeleteOwnedEntry(ctx context.Context, entryID, userID uint) (bool, error) {
	if f.deleteOwnedEntryFn == nil {
		return false, nil
	}
	return f.deleteOwnedEntryFn(ctx, entryID, userID)
}

func (f *fakeQueueRepo) SetAcknowledged(ctx context.Context, entryID uint) (bool, error) {
	if f.setAcknowledgedFn == nil {
		return false, nil
	}
	return f.setAcknowledgedFn(ctx, entryID)
}

func (f *fakeQueueRepo) ListUnnotifiedUpNext(ctx context.Context, limit int) ([]models.QueueEntry, error) {
	if f.listUnnotifiedFn == nil {
		return nil, nil
	}
	return f.listUnnotifiedFn(ctx, limit)
}

func (f *fakeQueueRepo) MarkNotified(ctx context.Context, entryID uint) (bool, error) {
	if f.markNotifiedFn == nil {
		return false, nil
	}
	return f.markNotifiedFn(ctx, entryID)
}

func (f *fakeQueueRepo) ListDueUnconverted(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	if f.listDueFn == nil {
		return nil, nil
	}
	return f.listDueFn(ctx, from, to)
}

func (f *fakeQueueRepo) ConvertAppointment(ctx context.Context, ap *models.Appointment, entry *models.QueueEntry) (bool, error) {
	if f.convertFn == nil {
		return false, nil
	}
	return f.convertFn(ctx, ap, entry)
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

type fakeSender struct {
	sendFn func(ctx context.Context, n notify.Notification) error
}

func (f *fakeSender) Send(ctx context.Context, n notify.Notification) error {
	if f.sendFn == nil {
		return nil
	}
	return f.sendFn(ctx, n)
}
