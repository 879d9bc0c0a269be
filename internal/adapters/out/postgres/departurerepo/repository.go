package departurerepo

import (
	"context"
	"errors"

	"transit/internal/core/domain/model/departure"
	"transit/internal/core/domain/model/kernel"
	"transit/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// uniqueViolation is the postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

// GormDepartureRepository implements DepartureRepository using GORM.
type GormDepartureRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDepartureRepository creates a new GORM departure repository.
func NewGormDepartureRepository(db *gorm.DB, tracker aggregateTracker) *GormDepartureRepository {
	return &GormDepartureRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new departure to the database.
func (r *GormDepartureRepository) Add(ctx context.Context, aggregate *departure.Departure) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return asConflict(err, "general waybill number")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing departure to the database. A duplicate general
// waybill number raced in by a concurrent seal is reported as a conflict so
// the caller can retry with a fresh allocation.
func (r *GormDepartureRepository) Update(ctx context.Context, aggregate *departure.Departure) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&DepartureDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return asConflict(result.Error, "general waybill number")
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a departure by ID.
func (r *GormDepartureRepository) Get(ctx context.Context, id kernel.UUID) (*departure.Departure, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DepartureDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("departure", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes a departure row. The caller detaches member shipments and
// enforces the deletion policy before calling.
func (r *GormDepartureRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&DepartureDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("departure", id.String())
	}

	return nil
}

// asConflict maps a unique constraint violation to a retryable conflict
// error. The gorm postgres driver is pgx-based, so violations normally
// arrive as *pgconn.PgError; *pq.Error is matched as well for lib/pq
// connections.
func asConflict(err error, param string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return errs.NewConflictErrorWithCause(param, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return errs.NewConflictErrorWithCause(param, err)
	}

	return err
}
