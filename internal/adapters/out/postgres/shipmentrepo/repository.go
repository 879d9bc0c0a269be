package shipmentrepo

import (
	"context"
	"errors"

	"transit/internal/core/domain/model/kernel"
	"transit/internal/core/domain/model/shipment"
	"transit/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// uniqueViolation is the postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

// GormShipmentRepository implements ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormShipmentRepository creates a new GORM shipment repository.
func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new shipment to the database. A duplicate waybill number is
// reported as a conflict so the caller can retry with a fresh allocation.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return asConflict(err, "waybill number")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing shipment to the database.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return asConflict(result.Error, "waybill number")
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a shipment by ID.
func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByIDs retrieves the named shipments, failing wholesale when any is
// absent. The first missing ID is reported so batch operations reject cleanly.
func (r *GormShipmentRepository) GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*shipment.Shipment, error) {
	raw := make([]any, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []ShipmentDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "id IN ?", raw).Error; err != nil {
		return nil, err
	}

	found := make(map[kernel.UUID]*shipment.Shipment, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		found[aggregate.ID()] = aggregate
	}

	aggregates := make([]*shipment.Shipment, 0, len(ids))
	for _, id := range ids {
		aggregate, ok := found[id]
		if !ok {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}
		aggregates = append(aggregates, aggregate)
	}

	return aggregates, nil
}

// GetByDeparture retrieves every shipment attached to the given departure,
// cancelled members included. Results are ordered by waybill number so the
// generated document lists members deterministically.
func (r *GormShipmentRepository) GetByDeparture(
	ctx context.Context,
	departureID kernel.UUID,
) ([]*shipment.Shipment, error) {
	if err := departureID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ShipmentDTO
	err := r.db.WithContext(ctx).
		Order("waybill_number").
		Find(&dtos, "departure_id = ?", departureID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	aggregates := make([]*shipment.Shipment, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, toErr := toDomain(dto)
		if toErr != nil {
			return nil, toErr
		}
		aggregates = append(aggregates, aggregate)
	}

	return aggregates, nil
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
