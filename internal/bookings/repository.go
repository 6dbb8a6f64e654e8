package bookings

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrRecordNotFound signals a booking with no local mirror row.
var ErrRecordNotFound = errors.New("booking record not found")

// Repository persists the local booking mirror.
type Repository interface {
	Create(ctx context.Context, record *BookingRecord) error
	GetByExternalID(ctx context.Context, externalID string) (*BookingRecord, error)
	GetByAttemptID(ctx context.Context, attemptID string) (*BookingRecord, error)
	ListByUser(ctx context.Context, userID string) ([]BookingRecord, error)
	ListByStatus(ctx context.Context, status string) ([]BookingRecord, error)
	MarkCancelled(ctx context.Context, externalID string, cancelledAt time.Time) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, record *BookingRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) GetByExternalID(ctx context.Context, externalID string) (*BookingRecord, error) {
	var record BookingRecord
	err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *repository) GetByAttemptID(ctx context.Context, attemptID string) (*BookingRecord, error) {
	var record BookingRecord
	err := r.db.WithContext(ctx).Where("attempt_id = ?", attemptID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]BookingRecord, error) {
	var records []BookingRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

func (r *repository) ListByStatus(ctx context.Context, status string) ([]BookingRecord, error) {
	var records []BookingRecord
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Find(&records).Error
	return records, err
}

func (r *repository) MarkCancelled(ctx context.Context, externalID string, cancelledAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&BookingRecord{}).
		Where("external_id = ?", externalID).
		Updates(map[string]interface{}{
			"status":       StatusCancelled,
			"cancelled_at": cancelledAt,
			"updated_at":   time.Now(),
		}).Error
}
