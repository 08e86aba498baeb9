package http

import (
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
)

// ErrorResponse is the JSON error envelope for all endpoints.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AddressRequest is one route leg address as submitted by the requester.
type AddressRequest struct {
	Street       string   `json:"street"`
	Number       string   `json:"number"`
	Unit         string   `json:"unit"`
	Neighborhood string   `json:"neighborhood"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	PostalCode   string   `json:"postalCode"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

// ItemRequest is one declared package.
type ItemRequest struct {
	Name     string  `json:"name"`
	Weight   float64 `json:"weight"`
	Quantity int     `json:"quantity"`
	Remarks  string  `json:"remarks"`
}

// SaveDeliveryRequest is the body of POST /delivery/save.
type SaveDeliveryRequest struct {
	IdempotencyKey string           `json:"idempotencyKey"`
	RequesterID    int64            `json:"requesterId"`
	Value          float64          `json:"value"`
	Description    string           `json:"description"`
	Category       string           `json:"category"`
	TransportType  string           `json:"transportType"`
	ScheduledTime  *time.Time       `json:"scheduledTime"`
	Legs           []AddressRequest `json:"legs"`
	Items          []ItemRequest    `json:"items"`
}

// UpdateDeliveryRequest is the body of POST /delivery/update. Absent
// fields keep their stored values.
type UpdateDeliveryRequest struct {
	ID            int64      `json:"id"`
	Value         *float64   `json:"value"`
	Description   *string    `json:"description"`
	Category      *string    `json:"category"`
	TransportType *string    `json:"transportType"`
	ScheduledTime *time.Time `json:"scheduledTime"`
}

// ClaimRequest is the body of POST /delivery/:id/claim.
type ClaimRequest struct {
	DriverID  int64 `json:"driverId"`
	VehicleID int64 `json:"vehicleId"`
}

// DriverRequest is the body of the release and complete endpoints.
type DriverRequest struct {
	DriverID int64 `json:"driverId"`
}

// SaveDeliveryResponse carries the identity of the stored delivery.
type SaveDeliveryResponse struct {
	ID int64 `json:"id"`
}

// AddressPayload is one route leg in responses.
type AddressPayload struct {
	Ordinal      int      `json:"ordinal"`
	Street       string   `json:"street"`
	Number       string   `json:"number"`
	Unit         string   `json:"unit,omitempty"`
	Neighborhood string   `json:"neighborhood,omitempty"`
	City         string   `json:"city"`
	State        string   `json:"state,omitempty"`
	PostalCode   string   `json:"postalCode,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
}

// ItemPayload is one declared package in responses.
type ItemPayload struct {
	Name     string  `json:"name"`
	Weight   float64 `json:"weight"`
	Quantity int     `json:"quantity"`
	Remarks  string  `json:"remarks,omitempty"`
}

// DeliveryPayload is the JSON projection of one delivery.
type DeliveryPayload struct {
	ID            int64            `json:"id"`
	Status        string           `json:"status"`
	Value         float64          `json:"value"`
	Description   string           `json:"description"`
	Category      string           `json:"category,omitempty"`
	TransportType string           `json:"transportType,omitempty"`
	ScheduledTime *time.Time       `json:"scheduledTime,omitempty"`
	CompletedTime *time.Time       `json:"completedTime,omitempty"`
	VehicleID     *int64           `json:"vehicleId,omitempty"`
	DriverID      *int64           `json:"driverId,omitempty"`
	RequesterID   int64            `json:"requesterId"`
	Legs          []AddressPayload `json:"legs"`
	Items         []ItemPayload    `json:"items"`
}

func toDeliveryPayload(resp queries.DeliveryResponse) DeliveryPayload {
	payload := DeliveryPayload{
		ID:            resp.ID.Int64(),
		Status:        resp.Status.String(),
		Value:         resp.Value.Float64(),
		Description:   resp.Description,
		Category:      resp.Category,
		TransportType: resp.TransportType,
		ScheduledTime: resp.ScheduledTime,
		CompletedTime: resp.CompletedTime,
		RequesterID:   resp.RequesterID.Int64(),
		Legs:          make([]AddressPayload, 0, len(resp.Legs)),
		Items:         make([]ItemPayload, 0, len(resp.Items)),
	}
	if resp.VehicleID != nil {
		v := resp.VehicleID.Int64()
		payload.VehicleID = &v
	}
	if resp.DriverID != nil {
		d := resp.DriverID.Int64()
		payload.DriverID = &d
	}

	for _, leg := range resp.Legs {
		payload.Legs = append(payload.Legs, AddressPayload{
			Ordinal:      leg.Ordinal,
			Street:       leg.Street,
			Number:       leg.Number,
			Unit:         leg.Unit,
			Neighborhood: leg.Neighborhood,
			City:         leg.City,
			State:        leg.State,
			PostalCode:   leg.PostalCode,
			Latitude:     leg.Latitude,
			Longitude:    leg.Longitude,
		})
	}
	for _, item := range resp.Items {
		payload.Items = append(payload.Items, ItemPayload{
			Name:     item.Name,
			Weight:   item.Weight,
			Quantity: item.Quantity,
			Remarks:  item.Remarks,
		})
	}

	return payload
}

func toDeliveryPayloads(responses []queries.DeliveryResponse) []DeliveryPayload {
	payloads := make([]DeliveryPayload, 0, len(responses))
	for _, resp := range responses {
		payloads = append(payloads, toDeliveryPayload(resp))
	}
	return payloads
}

func toLegInputs(legs []AddressRequest) []commands.LegInput {
	inputs := make([]commands.LegInput, 0, len(legs))
	for _, leg := range legs {
		inputs = append(inputs, commands.LegInput{
			Street:       leg.Street,
			Number:       leg.Number,
			Unit:         leg.Unit,
			Neighborhood: leg.Neighborhood,
			City:         leg.City,
			State:        leg.State,
			PostalCode:   leg.PostalCode,
			Latitude:     leg.Latitude,
			Longitude:    leg.Longitude,
		})
	}
	return inputs
}

func toItemInputs(items []ItemRequest) []commands.ItemInput {
	inputs := make([]commands.ItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, commands.ItemInput{
			Name:     item.Name,
			Weight:   item.Weight,
			Quantity: item.Quantity,
			Remarks:  item.Remarks,
		})
	}
	return inputs
}
