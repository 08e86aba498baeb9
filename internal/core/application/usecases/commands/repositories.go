// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence.
package commands

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// DeliveryRepoFactory provides access to the delivery repository
	// within a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// UserRepoFactory provides access to the user repository within a
	// transaction.
	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	// VehicleRepoFactory provides access to the vehicle repository within
	// a transaction.
	VehicleRepoFactory interface {
		VehicleRepository() ports.VehicleRepository
	}

	// DeliveryUoW manages transactions for delivery-only operations.
	DeliveryUoW interface {
		TxManager
		DeliveryRepoFactory
	}

	// DeliveryUoWFactory creates new delivery unit of work instances.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// UoW manages transactions that span the delivery aggregate and the
	// externally owned user and vehicle stores. Used by commands that
	// validate references or credit loyalty points alongside a status
	// write.
	UoW interface {
		TxManager
		DeliveryRepoFactory
		UserRepoFactory
		VehicleRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-store
	// operations.
	UoWFactory interface {
		Create() UoW
	}
)

// uowReferenceChecker adapts a unit of work's user and vehicle
// repositories to the domain validation gate.
type uowReferenceChecker struct {
	users    ports.UserRepository
	vehicles ports.VehicleRepository
}

func (c uowReferenceChecker) UserExists(ctx context.Context, id kernel.ID) (bool, error) {
	return c.users.Exists(ctx, id)
}

func (c uowReferenceChecker) VehicleExists(ctx context.Context, id kernel.ID) (bool, error) {
	return c.vehicles.Exists(ctx, id)
}
