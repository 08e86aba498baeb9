package delivery

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrAddressIsNotConstructed indicates an Address that was not created
// through NewAddress or RestoreAddress.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"Address must be created via NewAddress or RestoreAddress",
)

// Address is the location of one route leg. Every field but the
// coordinates is optional free text; coordinates are required when the
// address is a route endpoint, which the aggregate enforces.
//
// An Address belongs to exactly one route leg and is never shared.
type Address struct {
	id           kernel.ID
	street       string
	number       string
	unit         string
	neighborhood string
	city         string
	state        string
	postalCode   string
	latitude     *float64
	longitude    *float64

	guard guard.ConstructorGuard
}

// NewAddress creates an address for a new route leg. The identity stays
// zero until the storage engine assigns one. Coordinates, when supplied,
// must be inside the valid latitude/longitude ranges.
func NewAddress(
	street, number, unit, neighborhood, city, state, postalCode string,
	latitude, longitude *float64,
) (Address, error) {
	if latitude != nil && (*latitude < -90 || *latitude > 90) {
		return Address{}, errs.NewValueIsOutOfRangeError("latitude", *latitude, -90, 90)
	}
	if longitude != nil && (*longitude < -180 || *longitude > 180) {
		return Address{}, errs.NewValueIsOutOfRangeError("longitude", *longitude, -180, 180)
	}

	return Address{
		street:       street,
		number:       number,
		unit:         unit,
		neighborhood: neighborhood,
		city:         city,
		state:        state,
		postalCode:   postalCode,
		latitude:     latitude,
		longitude:    longitude,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// RestoreAddress reconstructs an address from persistence.
func RestoreAddress(
	id kernel.ID,
	street, number, unit, neighborhood, city, state, postalCode string,
	latitude, longitude *float64,
) (Address, error) {
	if err := id.Validate(); err != nil {
		return Address{}, err
	}

	address, err := NewAddress(street, number, unit, neighborhood, city, state, postalCode, latitude, longitude)
	if err != nil {
		return Address{}, err
	}
	address.id = id
	return address, nil
}

// Validate ensures the address was created through a constructor.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// HasCoordinates reports whether both latitude and longitude are set.
func (a Address) HasCoordinates() bool {
	return a.latitude != nil && a.longitude != nil
}

// ID returns the address identity; zero until persisted.
func (a Address) ID() kernel.ID { return a.id }

// Street returns the street name.
func (a Address) Street() string { return a.street }

// Number returns the street number.
func (a Address) Number() string { return a.number }

// Unit returns the unit or apartment complement.
func (a Address) Unit() string { return a.unit }

// Neighborhood returns the neighborhood.
func (a Address) Neighborhood() string { return a.neighborhood }

// City returns the city.
func (a Address) City() string { return a.city }

// State returns the state.
func (a Address) State() string { return a.state }

// PostalCode returns the postal code.
func (a Address) PostalCode() string { return a.postalCode }

// Latitude returns the latitude, or nil when not supplied.
func (a Address) Latitude() *float64 { return a.latitude }

// Longitude returns the longitude, or nil when not supplied.
func (a Address) Longitude() *float64 { return a.longitude }
