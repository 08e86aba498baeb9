package services

import (
	"strings"

	"dispatch/internal/core/domain/model/delivery"
)

// DispatchMatcher decides which pending deliveries a driver's active
// vehicle can serve. The authoritative compatibility dimension is the
// transport-type tag only; callers may pre-filter on other vehicle
// capability flags, but the matcher does not.
//
// Example:
//
//	matcher := services.NewDispatchMatcher()
//	eligible := matcher.FilterEligible(pending, "moto")
//	for _, d := range eligible {
//	    // offer d to the driver
//	}
type DispatchMatcher struct{}

// NewDispatchMatcher creates a new DispatchMatcher instance.
func NewDispatchMatcher() DispatchMatcher {
	return DispatchMatcher{}
}

// Matches reports whether a vehicle of the given transport type satisfies
// the delivery's required type. An empty requirement matches any vehicle;
// otherwise the tags are compared case-insensitively.
func (m DispatchMatcher) Matches(requiredType, vehicleType string) bool {
	if requiredType == "" {
		return true
	}
	return strings.EqualFold(requiredType, vehicleType)
}

// IsEligible reports whether the delivery can be served by a vehicle of
// the given transport type. Only pending deliveries are eligible.
func (m DispatchMatcher) IsEligible(d *delivery.Delivery, vehicleType string) bool {
	if d == nil || d.Status() != delivery.Pending {
		return false
	}
	return m.Matches(d.TransportType(), vehicleType)
}

// FilterEligible returns the deliveries a vehicle of the given transport
// type can claim, preserving input order.
func (m DispatchMatcher) FilterEligible(deliveries []*delivery.Delivery, vehicleType string) []*delivery.Delivery {
	eligible := make([]*delivery.Delivery, 0, len(deliveries))
	for _, d := range deliveries {
		if m.IsEligible(d, vehicleType) {
			eligible = append(eligible, d)
		}
	}
	return eligible
}
