// Package planner exposes the application-level operations over trade
// plans: create, list, update, delete, and metric derivation.
package planner

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	apperr "stock-manager/internal/errors"
	"stock-manager/internal/metrics"
	"stock-manager/internal/models"
	"stock-manager/internal/store"
)

// Service validates and normalizes plans before handing them to the
// store. Validation failures never reach the store.
type Service struct {
	store  store.PlanStore
	logger zerolog.Logger
}

// NewService creates a planner service on top of a PlanStore.
func NewService(st store.PlanStore, logger zerolog.Logger) *Service {
	return &Service{store: st, logger: logger}
}

// CreatePlan validates, normalizes, and persists a new plan. On success
// plan.ID holds the assigned id.
func (s *Service) CreatePlan(ctx context.Context, plan *models.TradePlan) error {
	plan.Normalize()
	if err := plan.Validate(); err != nil {
		return err
	}

	if err := s.store.Create(ctx, plan); err != nil {
		return err
	}

	s.logger.Info().
		Int64("id", plan.ID).
		Str("symbol", plan.Symbol).
		Int("shares", plan.TotalShares).
		Float64("buy_price", plan.BuyPrice).
		Msg("plan created")
	return nil
}

// ListPlans returns every stored plan.
func (s *Service) ListPlans(ctx context.Context) ([]models.TradePlan, error) {
	return s.store.ListAll(ctx)
}

// UpdatePlan validates, normalizes, and fully replaces the plan at id.
func (s *Service) UpdatePlan(ctx context.Context, id int64, plan *models.TradePlan) error {
	plan.Normalize()
	if err := plan.Validate(); err != nil {
		return err
	}

	if err := s.store.UpdateByID(ctx, id, plan); err != nil {
		return err
	}

	s.logger.Info().
		Int64("id", id).
		Str("symbol", plan.Symbol).
		Msg("plan updated")
	return nil
}

// DeletePlan removes the plan at id.
func (s *Service) DeletePlan(ctx context.Context, id int64) error {
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("id", id).Msg("plan deleted")
	return nil
}

// DeriveMetrics computes the derived dollar figures for a plan value.
func (s *Service) DeriveMetrics(plan models.TradePlan) metrics.Metrics {
	return metrics.Derive(plan)
}

// DeriveMetricsByID reads the plan at id and computes its metrics.
func (s *Service) DeriveMetricsByID(ctx context.Context, id int64) (models.TradePlan, metrics.Metrics, error) {
	plans, err := s.store.ListAll(ctx)
	if err != nil {
		return models.TradePlan{}, metrics.Metrics{}, err
	}
	for _, p := range plans {
		if p.ID == id {
			return p, metrics.Derive(p), nil
		}
	}
	return models.TradePlan{}, metrics.Metrics{}, fmt.Errorf("plan %d: %w", id, apperr.ErrNotFound)
}
