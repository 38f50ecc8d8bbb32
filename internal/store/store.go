// Package store provides trade plan persistence interfaces and implementations.
package store

import (
	"context"

	"stock-manager/internal/models"
)

// PlanStore defines the persistence contract for trade plans.
//
// Every mutating operation durably persists the change before returning:
// a caller observing success is guaranteed the change survives a fresh
// read, including across process restarts. Failures are returned as typed
// errors (errors.ErrDuplicateSymbol, errors.ErrNotFound,
// errors.ErrStorageUnavailable); no operation retries internally.
type PlanStore interface {
	// Create persists a new plan and assigns its ID.
	Create(ctx context.Context, plan *models.TradePlan) error

	// ListAll returns every stored plan in storage-defined order. An
	// empty store yields an empty slice, not an error.
	ListAll(ctx context.Context) ([]models.TradePlan, error)

	// UpdateByID replaces all fields of the plan at id. The stored ID
	// is unchanged regardless of plan.ID.
	UpdateByID(ctx context.Context, id int64, plan *models.TradePlan) error

	// DeleteByID removes the plan at id.
	DeleteByID(ctx context.Context, id int64) error

	Close() error
}

// Options controls store policy.
type Options struct {
	// UniqueSymbol rejects a create or update that would leave two
	// plans with the same symbol.
	UniqueSymbol bool
}
