package deliveryrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDeliveryRepository implements ports.DeliveryRepository using GORM.
// When created through the unit of work, db is the active transaction,
// so multi-table writes commit or roll back as one.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.ID, aggregate any)
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new aggregate: delivery row first (capturing the generated
// identity), then each leg's address and leg row, then the items. All
// writes share the repository's transaction.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewStorageError("delivery.create", err)
	}

	if err := aggregate.SetID(kernel.ID(dto.ID)); err != nil {
		return err
	}

	for _, leg := range aggregate.Legs() {
		addressDTO := addressFromDomain(leg.Address())
		if err := r.db.WithContext(ctx).Create(&addressDTO).Error; err != nil {
			return errs.NewStorageError("delivery.create", err)
		}

		legDTO := RouteLegDTO{
			DeliveryID: dto.ID,
			Ordinal:    leg.Ordinal(),
			AddressID:  addressDTO.ID,
		}
		if err := r.db.WithContext(ctx).Create(&legDTO).Error; err != nil {
			return errs.NewStorageError("delivery.create", err)
		}
	}

	for _, item := range aggregate.Items() {
		itemDTO := itemFromDomain(item, dto.ID)
		if err := r.db.WithContext(ctx).Create(&itemDTO).Error; err != nil {
			return errs.NewStorageError("delivery.create", err)
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves changes to the delivery row only. Nullable columns are
// written through a column map so a cleared driver or vehicle becomes
// NULL instead of being skipped.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"value_cents":    dto.ValueCents,
		"status":         dto.Status,
		"description":    dto.Description,
		"category":       dto.Category,
		"transport_type": dto.TransportType,
		"scheduled_time": dto.ScheduledTime,
		"completed_time": dto.CompletedTime,
		"vehicle_id":     dto.VehicleID,
		"driver_id":      dto.DriverID,
	})
	if result.Error != nil {
		return errs.NewStorageError("delivery.update", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("deliveryId", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves the full aggregate by identity.
func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.ID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("deliveryId", id.String())
		}
		return nil, errs.NewStorageError("delivery.get", err)
	}

	return r.loadAggregate(ctx, dto)
}

// GetByIdempotencyKey retrieves the aggregate created under the given key.
func (r *GormDeliveryRepository) GetByIdempotencyKey(ctx context.Context, key uuid.UUID) (*delivery.Delivery, error) {
	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "idempotency_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("idempotencyKey", key.String())
		}
		return nil, errs.NewStorageError("delivery.get", err)
	}

	return r.loadAggregate(ctx, dto)
}

// GetAll retrieves every aggregate ordered by identity.
func (r *GormDeliveryRepository) GetAll(ctx context.Context) ([]*delivery.Delivery, error) {
	return r.findAggregates(ctx, r.db.WithContext(ctx).Order("id"))
}

// GetAllPending retrieves the aggregates drivers can discover.
func (r *GormDeliveryRepository) GetAllPending(ctx context.Context) ([]*delivery.Delivery, error) {
	return r.findAggregates(ctx,
		r.db.WithContext(ctx).Where("status = ?", int(delivery.Pending)).Order("id"))
}

// GetAllByUser retrieves the aggregates the user participates in, as
// requester or driver.
func (r *GormDeliveryRepository) GetAllByUser(ctx context.Context, userID kernel.ID) ([]*delivery.Delivery, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}
	return r.findAggregates(ctx,
		r.db.WithContext(ctx).
			Where("requester_id = ? OR driver_id = ?", userID.Int64(), userID.Int64()).
			Order("id"))
}

// Delete removes the aggregate in dependency order: items, legs, the
// legs' addresses, then the delivery row. The repository's transaction
// guarantees all-or-nothing.
func (r *GormDeliveryRepository) Delete(ctx context.Context, id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	var legs []RouteLegDTO
	if err := r.db.WithContext(ctx).Find(&legs, "delivery_id = ?", id.Int64()).Error; err != nil {
		return errs.NewStorageError("delivery.delete", err)
	}

	if err := r.db.WithContext(ctx).Delete(&ItemDTO{}, "delivery_id = ?", id.Int64()).Error; err != nil {
		return errs.NewStorageError("delivery.delete", err)
	}

	if err := r.db.WithContext(ctx).Delete(&RouteLegDTO{}, "delivery_id = ?", id.Int64()).Error; err != nil {
		return errs.NewStorageError("delivery.delete", err)
	}

	addressIDs := make([]int64, 0, len(legs))
	for _, leg := range legs {
		addressIDs = append(addressIDs, leg.AddressID)
	}
	if len(addressIDs) > 0 {
		if err := r.db.WithContext(ctx).Delete(&AddressDTO{}, "id IN ?", addressIDs).Error; err != nil {
			return errs.NewStorageError("delivery.delete", err)
		}
	}

	result := r.db.WithContext(ctx).Delete(&DeliveryDTO{}, "id = ?", id.Int64())
	if result.Error != nil {
		return errs.NewStorageError("delivery.delete", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("deliveryId", id.String())
	}

	return nil
}

// Claim executes the exclusive pending -> accepted transition. The
// conditional update and its affected-row check make the status read and
// write atomic: of N racing claims exactly one row update matches.
func (r *GormDeliveryRepository) Claim(ctx context.Context, id, driverID, vehicleID kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).
		Where("id = ? AND status = ?", id.Int64(), int(delivery.Pending)).
		Updates(map[string]any{
			"status":     int(delivery.Accepted),
			"driver_id":  driverID.Int64(),
			"vehicle_id": vehicleID.Int64(),
		})
	if result.Error != nil {
		return errs.NewStorageError("delivery.claim", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.classifyClaimFailure(ctx, id, delivery.Accepted)
	}

	return nil
}

// Release executes accepted -> pending for the current holder, clearing
// driver and vehicle.
func (r *GormDeliveryRepository) Release(ctx context.Context, id, driverID kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).
		Where("id = ? AND status = ? AND driver_id = ?",
			id.Int64(), int(delivery.Accepted), driverID.Int64()).
		Updates(map[string]any{
			"status":     int(delivery.Pending),
			"driver_id":  nil,
			"vehicle_id": nil,
		})
	if result.Error != nil {
		return errs.NewStorageError("delivery.release", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.classifyHolderFailure(ctx, id, delivery.Pending)
	}

	return nil
}

// Complete executes accepted -> completed for the current holder. The
// null completion-time condition makes a retried complete a no-match,
// so the side effects of completion can never apply twice.
func (r *GormDeliveryRepository) Complete(ctx context.Context, id, driverID kernel.ID, completedAt time.Time) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).
		Where("id = ? AND status = ? AND driver_id = ? AND completed_time IS NULL",
			id.Int64(), int(delivery.Accepted), driverID.Int64()).
		Updates(map[string]any{
			"status":         int(delivery.Completed),
			"completed_time": completedAt,
		})
	if result.Error != nil {
		return errs.NewStorageError("delivery.complete", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.classifyHolderFailure(ctx, id, delivery.Completed)
	}

	return nil
}

// classifyClaimFailure explains a claim whose conditional update matched
// nothing: the row is gone, already taken, or not claimable.
func (r *GormDeliveryRepository) classifyClaimFailure(ctx context.Context, id kernel.ID, attempted delivery.Status) error {
	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("deliveryId", id.String())
		}
		return errs.NewStorageError("delivery.claim", err)
	}

	if delivery.Status(dto.Status) == delivery.Accepted {
		return delivery.ErrAlreadyClaimed
	}
	return delivery.NewInvalidTransitionError(delivery.Status(dto.Status), attempted)
}

// classifyHolderFailure explains a holder-conditional update that matched
// nothing: the row is gone, in the wrong state, or held by someone else.
func (r *GormDeliveryRepository) classifyHolderFailure(ctx context.Context, id kernel.ID, attempted delivery.Status) error {
	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("deliveryId", id.String())
		}
		return errs.NewStorageError("delivery.get", err)
	}

	if delivery.Status(dto.Status) != delivery.Accepted {
		return delivery.NewInvalidTransitionError(delivery.Status(dto.Status), attempted)
	}
	return delivery.ErrNotHolder
}

// loadAggregate resolves the legs, addresses, and items of one delivery row.
func (r *GormDeliveryRepository) loadAggregate(ctx context.Context, dto DeliveryDTO) (*delivery.Delivery, error) {
	var legs []RouteLegDTO
	if err := r.db.WithContext(ctx).
		Order("ordinal").
		Find(&legs, "delivery_id = ?", dto.ID).Error; err != nil {
		return nil, errs.NewStorageError("delivery.get", err)
	}

	addresses := make(map[int64]AddressDTO, len(legs))
	if len(legs) > 0 {
		addressIDs := make([]int64, 0, len(legs))
		for _, leg := range legs {
			addressIDs = append(addressIDs, leg.AddressID)
		}

		var addressDTOs []AddressDTO
		if err := r.db.WithContext(ctx).Find(&addressDTOs, "id IN ?", addressIDs).Error; err != nil {
			return nil, errs.NewStorageError("delivery.get", err)
		}
		for _, addressDTO := range addressDTOs {
			addresses[addressDTO.ID] = addressDTO
		}
	}

	var items []ItemDTO
	if err := r.db.WithContext(ctx).
		Order("id").
		Find(&items, "delivery_id = ?", dto.ID).Error; err != nil {
		return nil, errs.NewStorageError("delivery.get", err)
	}

	return toDomain(dto, legs, addresses, items)
}

// findAggregates loads every delivery row matched by the query and
// resolves each row's legs, addresses, and items.
func (r *GormDeliveryRepository) findAggregates(ctx context.Context, query *gorm.DB) ([]*delivery.Delivery, error) {
	var dtos []DeliveryDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, errs.NewStorageError("delivery.list", err)
	}

	aggregates := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := r.loadAggregate(ctx, dto)
		if err != nil {
			return nil, err
		}
		aggregates = append(aggregates, aggregate)
	}

	return aggregates, nil
}
