package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

type QueueGormRepository struct {
	db *gorm.DB
}

func NewQueueGormRepository(db *gorm.DB) *QueueGormRepository {
	return &QueueGormRepository{db: db}
}

// errStale aborta a transação quando algum status mudou entre a leitura do
// motor e a escrita condicional. O chamador trata como "nada aplicado".
var errStale = errors.New("stale queue state")

// --------------------------------------------------
// Barbershop / Barber / Service
// --------------------------------------------------

func (r *QueueGormRepository) GetBarbershopByID(
	ctx context.Context,
	id uint,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *QueueGormRepository) GetBarber(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
) (*models.User, error) {

	var barber models.User
	if err := r.db.WithContext(ctx).
		Where(
			"id = ? AND barbershop_id = ? AND role IN ?",
			barberID, barbershopID, []string{"owner", "barber"},
		).
		First(&barber).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *QueueGormRepository) GetService(
	ctx context.Context,
	barbershopID uint,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", serviceID, barbershopID).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Queue entries
// --------------------------------------------------

func (r *QueueGormRepository) CreateEntry(
	ctx context.Context,
	e *models.QueueEntry,
) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *QueueGormRepository) GetEntry(
	ctx context.Context,
	id uint,
) (*models.QueueEntry, error) {

	var entry models.QueueEntry
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *QueueGormRepository) GetEntryForBarber(
	ctx context.Context,
	id uint,
	barberID uint,
) (*models.QueueEntry, error) {

	var entry models.QueueEntry
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barber_id = ?", id, barberID).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *QueueGormRepository) ListActiveForBarber(
	ctx context.Context,
	barberID uint,
) ([]models.QueueEntry, error) {

	var entries []models.QueueEntry
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND status IN ?", barberID, domain.ActiveStatuses()).
		Order("is_vip DESC, created_at ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *QueueGormRepository) HasActiveEntryForUser(
	ctx context.Context,
	userID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.QueueEntry{}).
		Where("user_id = ? AND status IN ?", userID, domain.ActiveStatuses()).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Conditional state changes
// --------------------------------------------------

func (r *QueueGormRepository) PromoteUpNext(
	ctx context.Context,
	barberID uint,
	promoteID uint,
	demoteID *uint,
) (bool, error) {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if demoteID != nil {
			res := tx.Model(&models.QueueEntry{}).
				Where(
					"id = ? AND barber_id = ? AND status = ?",
					*demoteID, barberID, string(domain.StatusUpNext),
				).
				Updates(map[string]interface{}{
					"status":       string(domain.StatusWaiting),
					"notified":     false,
					"acknowledged": false,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errStale
			}
		}

		res := tx.Model(&models.QueueEntry{}).
			Where(
				"id = ? AND barber_id = ? AND status = ?",
				promoteID, barberID, string(domain.StatusWaiting),
			).
			Update("status", string(domain.StatusUpNext))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errStale
		}
		return nil
	})

	if errors.Is(err, errStale) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *QueueGormRepository) ClaimInProgress(
	ctx context.Context,
	barberID uint,
	entryID uint,
	now time.Time,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var active []models.QueueEntry
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("barber_id = ? AND status IN ?", barberID, domain.ActiveStatuses()).
			Order("id ASC").
			Find(&active).Error; err != nil {
			return err
		}

		var target *models.QueueEntry
		for i := range active {
			if active[i].Status == string(domain.StatusInProgress) {
				return httperr.ErrConflict("chair_occupied")
			}
			if active[i].ID == entryID {
				target = &active[i]
			}
		}

		// Fora do conjunto ativo do barbeiro: não existe, é de outro barbeiro
		// ou já terminou.
		if target == nil {
			return httperr.ErrNotFound("queue_entry_not_found")
		}

		return tx.Model(&models.QueueEntry{}).
			Where("id = ?", entryID).
			Updates(map[string]interface{}{
				"status":    string(domain.StatusInProgress),
				"called_at": now,
			}).Error
	})
}

func (r *QueueGormRepository) CompleteWithCharge(
	ctx context.Context,
	entryID uint,
	charge *models.ChargeLog,
	now time.Time,
) (bool, error) {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.QueueEntry{}).
			Where("id = ? AND status = ?", entryID, string(domain.StatusInProgress)).
			Updates(map[string]interface{}{
				"status":       string(domain.StatusDone),
				"completed_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errStale
		}

		return tx.Create(charge).Error
	})

	if errors.Is(err, errStale) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *QueueGormRepository) CancelEntry(
	ctx context.Context,
	barberID uint,
	entryID uint,
	now time.Time,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.QueueEntry{}).
		Where(
			"id = ? AND barber_id = ? AND status IN ?",
			entryID, barberID,
			[]string{string(domain.StatusWaiting), string(domain.StatusUpNext)},
		).
		Updates(map[string]interface{}{
			"status":       string(domain.StatusCancelled),
			"cancelled_at": now,
		})

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *QueueGormRepository) DeleteOwnedEntry(
	ctx context.Context,
	entryID uint,
	userID uint,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Where(
			"id = ? AND user_id = ? AND status IN ?",
			entryID, userID,
			[]string{string(domain.StatusWaiting), string(domain.StatusUpNext)},
		).
		Delete(&models.QueueEntry{})

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *QueueGormRepository) SetAcknowledged(
	ctx context.Context,
	entryID uint,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.QueueEntry{}).
		Where("id = ? AND status = ?", entryID, string(domain.StatusUpNext)).
		Update("acknowledged", true)

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// --------------------------------------------------
// Notifications
// --------------------------------------------------

func (r *QueueGormRepository) ListUnnotifiedUpNext(
	ctx context.Context,
	limit int,
) ([]models.QueueEntry, error) {

	var entries []models.QueueEntry
	if err := r.db.WithContext(ctx).
		Where("status = ? AND notified = ?", string(domain.StatusUpNext), false).
		Order("created_at ASC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *QueueGormRepository) MarkNotified(
	ctx context.Context,
	entryID uint,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.QueueEntry{}).
		Where("id = ? AND notified = ?", entryID, false).
		Update("notified", true)

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// --------------------------------------------------
// Appointment conversion
// --------------------------------------------------

func (r *QueueGormRepository) ListDueUnconverted(
	ctx context.Context,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Where(
			"status = 'confirmed' AND converted = ? AND start_time >= ? AND start_time <= ?",
			false, from, to,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *QueueGormRepository) ConvertAppointment(
	ctx context.Context,
	ap *models.Appointment,
	entry *models.QueueEntry,
) (bool, error) {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Reivindica a flag primeiro: a corrida entre instâncias se resolve
		// aqui, o insert só acontece para quem ganhou.
		res := tx.Model(&models.Appointment{}).
			Where("id = ? AND converted = ?", ap.ID, false).
			Update("converted", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errStale
		}

		return tx.Create(entry).Error
	})

	if errors.Is(err, errStale) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Compile-time check
var _ domain.Repository = (*QueueGormRepository)(nil)
