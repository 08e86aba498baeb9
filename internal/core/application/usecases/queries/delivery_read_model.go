// Package queries contains read operations in the CQRS architecture.
// Query handlers read the storage directly with raw SQL and return flat
// response structs; they never mutate state and never go through the
// aggregate.
package queries

import (
	"context"
	"database/sql"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// DeliveryResponse is the read-model projection of one delivery with its
// ordered route and declared items.
type DeliveryResponse struct {
	ID            kernel.ID
	Value         kernel.Money
	Status        delivery.Status
	Description   string
	Category      string
	TransportType string
	ScheduledTime *time.Time
	CompletedTime *time.Time
	VehicleID     *kernel.ID
	DriverID      *kernel.ID
	RequesterID   kernel.ID
	Legs          []LegResponse
	Items         []ItemResponse
}

// LegResponse is one route leg with its resolved address.
type LegResponse struct {
	Ordinal      int
	Street       string
	Number       string
	Unit         string
	Neighborhood string
	City         string
	State        string
	PostalCode   string
	Latitude     *float64
	Longitude    *float64
}

// ItemResponse is one declared package.
type ItemResponse struct {
	Name     string
	Weight   float64
	Quantity int
	Remarks  string
}

// fetchDeliveries reads delivery rows matching the given predicate and
// resolves their legs and items in two follow-up queries, keyed by
// delivery id. Results are ordered by delivery id; legs by ordinal.
//
// The three statements run inside one repeatable-read transaction so the
// legs and items are read from the same snapshot as the delivery row. A
// delete committing mid-read yields not-found, never a legless delivery.
func fetchDeliveries(ctx context.Context, db *gorm.DB, where string, args ...any) ([]DeliveryResponse, error) {
	var deliveries []DeliveryResponse

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		deliveries, txErr = fetchDeliveriesTx(ctx, tx, where, args...)
		return txErr
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return nil, err
	}

	return deliveries, nil
}

func fetchDeliveriesTx(ctx context.Context, db *gorm.DB, where string, args ...any) ([]DeliveryResponse, error) {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			id,
			value_cents,
			status,
			description,
			category,
			transport_type,
			scheduled_time,
			completed_time,
			vehicle_id,
			driver_id,
			requester_id
		FROM deliveries
		WHERE `+where+`
		ORDER BY id
	`, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deliveries := make([]DeliveryResponse, 0)
	index := make(map[int64]int)

	for rows.Next() {
		var (
			id          int64
			valueCents  int64
			status      int
			resp        DeliveryResponse
			vehicleID   *int64
			driverID    *int64
			requesterID int64
		)

		if err = rows.Scan(
			&id,
			&valueCents,
			&status,
			&resp.Description,
			&resp.Category,
			&resp.TransportType,
			&resp.ScheduledTime,
			&resp.CompletedTime,
			&vehicleID,
			&driverID,
			&requesterID,
		); err != nil {
			return nil, err
		}

		resp.ID = kernel.ID(id)
		resp.Status = delivery.Status(status)
		resp.RequesterID = kernel.ID(requesterID)
		if vehicleID != nil {
			v := kernel.ID(*vehicleID)
			resp.VehicleID = &v
		}
		if driverID != nil {
			d := kernel.ID(*driverID)
			resp.DriverID = &d
		}

		money, moneyErr := kernel.NewMoney(valueCents)
		if moneyErr != nil {
			return nil, moneyErr
		}
		resp.Value = money

		index[id] = len(deliveries)
		deliveries = append(deliveries, resp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(deliveries) == 0 {
		return deliveries, nil
	}

	ids := make([]int64, 0, len(deliveries))
	for id := range index {
		ids = append(ids, id)
	}

	if err = attachLegs(ctx, db, ids, index, deliveries); err != nil {
		return nil, err
	}
	if err = attachItems(ctx, db, ids, index, deliveries); err != nil {
		return nil, err
	}

	return deliveries, nil
}

func attachLegs(ctx context.Context, db *gorm.DB, ids []int64, index map[int64]int, deliveries []DeliveryResponse) error {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			l.delivery_id,
			l.ordinal,
			a.street,
			a.number,
			a.unit,
			a.neighborhood,
			a.city,
			a.state,
			a.postal_code,
			a.latitude,
			a.longitude
		FROM route_legs l
		JOIN addresses a ON a.id = l.address_id
		WHERE l.delivery_id IN ?
		ORDER BY l.delivery_id, l.ordinal
	`, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			deliveryID int64
			leg        LegResponse
		)

		if err = rows.Scan(
			&deliveryID,
			&leg.Ordinal,
			&leg.Street,
			&leg.Number,
			&leg.Unit,
			&leg.Neighborhood,
			&leg.City,
			&leg.State,
			&leg.PostalCode,
			&leg.Latitude,
			&leg.Longitude,
		); err != nil {
			return err
		}

		if i, ok := index[deliveryID]; ok {
			deliveries[i].Legs = append(deliveries[i].Legs, leg)
		}
	}

	return rows.Err()
}

func attachItems(ctx context.Context, db *gorm.DB, ids []int64, index map[int64]int, deliveries []DeliveryResponse) error {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			delivery_id,
			name,
			weight,
			quantity,
			remarks
		FROM delivery_items
		WHERE delivery_id IN ?
		ORDER BY delivery_id, id
	`, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			deliveryID int64
			item       ItemResponse
		)

		if err = rows.Scan(
			&deliveryID,
			&item.Name,
			&item.Weight,
			&item.Quantity,
			&item.Remarks,
		); err != nil {
			return err
		}

		if i, ok := index[deliveryID]; ok {
			deliveries[i].Items = append(deliveries[i].Items, item)
		}
	}

	return rows.Err()
}
