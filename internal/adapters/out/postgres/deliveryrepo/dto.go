// Package deliveryrepo provides data transfer objects and mapping functions
// for delivery aggregate persistence. The aggregate spans four tables
// (deliveries, route_legs, addresses, delivery_items) that are written and
// removed as one consistency unit.
package deliveryrepo

import (
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for the delivery row.
// The fare is stored as integer cents; status as the enum's integer value.
type DeliveryDTO struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	IdempotencyKey uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	ValueCents     int64
	Status         int `gorm:"index"`
	Description    string
	Category       string
	TransportType  string `gorm:"index"`
	ScheduledTime  *time.Time
	CompletedTime  *time.Time
	VehicleID      *int64 `gorm:"index"`
	DriverID       *int64 `gorm:"index"`
	RequesterID    int64  `gorm:"index"`
	CreatedAt      time.Time
}

// TableName specifies the database table name for delivery rows.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// RouteLegDTO represents one ordered stop of a delivery's route.
// (delivery_id, ordinal) is unique together.
type RouteLegDTO struct {
	ID         int64 `gorm:"primaryKey;autoIncrement"`
	DeliveryID int64 `gorm:"index;uniqueIndex:idx_route_legs_delivery_ordinal"`
	Ordinal    int   `gorm:"uniqueIndex:idx_route_legs_delivery_ordinal"`
	AddressID  int64 `gorm:"index"`
}

// TableName specifies the database table name for route legs.
func (RouteLegDTO) TableName() string {
	return "route_legs"
}

// AddressDTO represents the address row owned by exactly one route leg.
type AddressDTO struct {
	ID           int64 `gorm:"primaryKey;autoIncrement"`
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

// TableName specifies the database table name for addresses.
func (AddressDTO) TableName() string {
	return "addresses"
}

// ItemDTO represents one cargo item row of a delivery.
type ItemDTO struct {
	ID         int64 `gorm:"primaryKey;autoIncrement"`
	DeliveryID int64 `gorm:"index"`
	Name       string
	Weight     float64
	Quantity   int
	Remarks    string
}

// TableName specifies the database table name for delivery items.
func (ItemDTO) TableName() string {
	return "delivery_items"
}

// fromDomain converts the aggregate root to its delivery-row representation.
// Legs and items are mapped separately because their foreign keys depend on
// identities generated during the insert sequence.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	var vehicleID, driverID *int64
	if id := aggregate.Vehicle(); id != nil {
		raw := id.Int64()
		vehicleID = &raw
	}
	if id := aggregate.Driver(); id != nil {
		raw := id.Int64()
		driverID = &raw
	}

	return DeliveryDTO{
		ID:             aggregate.ID().Int64(),
		IdempotencyKey: aggregate.IdempotencyKey(),
		ValueCents:     aggregate.Value().Cents(),
		Status:         int(aggregate.Status()),
		Description:    aggregate.Description(),
		Category:       aggregate.Category(),
		TransportType:  aggregate.TransportType(),
		ScheduledTime:  aggregate.ScheduledTime(),
		CompletedTime:  aggregate.CompletedTime(),
		VehicleID:      vehicleID,
		DriverID:       driverID,
		RequesterID:    aggregate.Requester().Int64(),
	}
}

// addressFromDomain converts a leg's address to its row representation.
func addressFromDomain(address delivery.Address) AddressDTO {
	return AddressDTO{
		ID:           address.ID().Int64(),
		Street:       address.Street(),
		Number:       address.Number(),
		Unit:         address.Unit(),
		Neighborhood: address.Neighborhood(),
		City:         address.City(),
		State:        address.State(),
		PostalCode:   address.PostalCode(),
		Latitude:     address.Latitude(),
		Longitude:    address.Longitude(),
	}
}

// itemFromDomain converts a cargo item to its row representation.
func itemFromDomain(item delivery.Item, deliveryID int64) ItemDTO {
	return ItemDTO{
		ID:         item.ID().Int64(),
		DeliveryID: deliveryID,
		Name:       item.Name(),
		Weight:     item.Weight(),
		Quantity:   item.Quantity(),
		Remarks:    item.Remarks(),
	}
}

// toDomain reconstructs the aggregate from its rows. Legs must arrive
// paired with their resolved addresses, ordered by ordinal.
func toDomain(dto DeliveryDTO, legs []RouteLegDTO, addresses map[int64]AddressDTO, items []ItemDTO) (*delivery.Delivery, error) {
	id, err := kernel.NewID(dto.ID)
	if err != nil {
		return nil, err
	}

	value, err := kernel.NewMoney(dto.ValueCents)
	if err != nil {
		return nil, err
	}

	requesterID, err := kernel.NewID(dto.RequesterID)
	if err != nil {
		return nil, err
	}

	var vehicleID, driverID *kernel.ID
	if dto.VehicleID != nil {
		vID, vErr := kernel.NewID(*dto.VehicleID)
		if vErr != nil {
			return nil, vErr
		}
		vehicleID = &vID
	}
	if dto.DriverID != nil {
		dID, dErr := kernel.NewID(*dto.DriverID)
		if dErr != nil {
			return nil, dErr
		}
		driverID = &dID
	}

	domainLegs := make([]delivery.RouteLeg, 0, len(legs))
	for _, legDTO := range legs {
		addressDTO, ok := addresses[legDTO.AddressID]
		if !ok {
			return nil, errs.NewObjectNotFoundError("addressId", legDTO.AddressID)
		}

		addressID, aErr := kernel.NewID(addressDTO.ID)
		if aErr != nil {
			return nil, aErr
		}
		address, aErr := delivery.RestoreAddress(
			addressID,
			addressDTO.Street, addressDTO.Number, addressDTO.Unit, addressDTO.Neighborhood,
			addressDTO.City, addressDTO.State, addressDTO.PostalCode,
			addressDTO.Latitude, addressDTO.Longitude,
		)
		if aErr != nil {
			return nil, aErr
		}

		legID, lErr := kernel.NewID(legDTO.ID)
		if lErr != nil {
			return nil, lErr
		}
		leg, lErr := delivery.RestoreRouteLeg(legID, legDTO.Ordinal, address)
		if lErr != nil {
			return nil, lErr
		}
		domainLegs = append(domainLegs, leg)
	}

	domainItems := make([]delivery.Item, 0, len(items))
	for _, itemDTO := range items {
		itemID, iErr := kernel.NewID(itemDTO.ID)
		if iErr != nil {
			return nil, iErr
		}
		item, iErr := delivery.RestoreItem(itemID, itemDTO.Name, itemDTO.Weight, itemDTO.Quantity, itemDTO.Remarks)
		if iErr != nil {
			return nil, iErr
		}
		domainItems = append(domainItems, item)
	}

	return delivery.RestoreDelivery(
		id,
		dto.IdempotencyKey,
		value,
		delivery.Status(dto.Status),
		dto.Description,
		dto.Category,
		dto.TransportType,
		dto.ScheduledTime,
		dto.CompletedTime,
		vehicleID,
		driverID,
		requesterID,
		domainLegs,
		domainItems,
	)
}
