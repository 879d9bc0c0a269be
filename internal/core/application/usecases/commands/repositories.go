// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"transit/internal/core/ports"
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

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// DepartureRepoFactory provides access to the departure repository within a transaction.
	DepartureRepoFactory interface {
		DepartureRepository() ports.DepartureRepository
	}

	// AllocatorFactory provides access to the sequence allocator within a
	// transaction, so derived numbers commit with the rows carrying them.
	AllocatorFactory interface {
		SequenceAllocator() ports.SequenceAllocator
	}

	// ShipmentUoW manages transactions for shipment-only operations.
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
	}

	// ShipmentUoWFactory creates new shipment unit of work instances.
	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// DepartureUoW manages transactions for departure-only operations.
	DepartureUoW interface {
		TxManager
		DepartureRepoFactory
	}

	// DepartureUoWFactory creates new departure unit of work instances.
	DepartureUoWFactory interface {
		Create() DepartureUoW
	}

	// UoW manages transactions spanning both aggregates and the sequence
	// allocator. Used by registration (number allocation + shipment insert)
	// and by the departure membership and seal operations.
	UoW interface {
		TxManager
		ShipmentRepoFactory
		DepartureRepoFactory
		AllocatorFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
