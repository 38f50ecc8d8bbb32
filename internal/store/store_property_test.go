package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"stock-manager/internal/models"
)

// Property: for any valid plan, create followed by list returns the plan
// with all fields equal (modulo the assigned id), on both backends.
func TestProperty_PlanRoundTripConsistency(t *testing.T) {
	backends := []struct {
		name string
		open func(t *testing.T) PlanStore
	}{
		{"sqlite", func(t *testing.T) PlanStore {
			s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "prop.db"), Options{})
			if err != nil {
				t.Fatalf("Failed to create sqlite store: %v", err)
			}
			return s
		}},
		{"json", func(t *testing.T) PlanStore {
			s, err := NewFileStore(filepath.Join(t.TempDir(), "prop.json"), Options{})
			if err != nil {
				t.Fatalf("Failed to create file store: %v", err)
			}
			return s
		}},
	}

	for _, backend := range backends {
		backend := backend
		t.Run(backend.name, func(t *testing.T) {
			store := backend.open(t)
			defer store.Close()

			parameters := gopter.DefaultTestParameters()
			parameters.MinSuccessfulTests = 50
			parameters.Rng.Seed(time.Now().UnixNano())

			properties := gopter.NewProperties(parameters)

			sharesGen := gen.IntRange(1, 100000)
			priceGen := gen.Float64Range(0.01, 10000.0)
			ratioGen := gen.Float64Range(0, 100)
			strategyGen := gen.OneConstOf(models.StrategyRiskBased, models.StrategyRewardBased)
			sellGen := gen.Float64Range(0, 10000.0)
			hasSellGen := gen.Bool()

			seq := 0
			properties.Property("create then list contains the created plan", prop.ForAll(
				func(shares int, price, risk, reward float64, strategy models.SellStrategy, sell float64, hasSell bool) bool {
					ctx := context.Background()
					seq++

					plan := &models.TradePlan{
						Symbol:       fmt.Sprintf("SYM%d", seq),
						TotalShares:  shares,
						BuyPrice:     price,
						RiskRatio:    risk,
						RewardRatio:  reward,
						SellStrategy: strategy,
					}
					if hasSell {
						plan.SellPrice = models.Float64Ptr(sell)
					}

					if err := store.Create(ctx, plan); err != nil {
						t.Logf("Failed to create plan: %v", err)
						return false
					}
					if plan.ID == 0 {
						t.Logf("Create did not assign an id")
						return false
					}

					plans, err := store.ListAll(ctx)
					if err != nil {
						t.Logf("Failed to list plans: %v", err)
						return false
					}

					for _, got := range plans {
						if got.ID != plan.ID {
							continue
						}
						if got.Symbol != plan.Symbol ||
							got.TotalShares != plan.TotalShares ||
							got.BuyPrice != plan.BuyPrice ||
							got.RiskRatio != plan.RiskRatio ||
							got.RewardRatio != plan.RewardRatio ||
							got.SellStrategy != plan.SellStrategy {
							t.Logf("Plan mismatch: created=%+v, listed=%+v", plan, got)
							return false
						}
						if (got.SellPrice == nil) != (plan.SellPrice == nil) {
							t.Logf("Sell price presence mismatch: created=%+v, listed=%+v", plan, got)
							return false
						}
						if got.SellPrice != nil && *got.SellPrice != *plan.SellPrice {
							t.Logf("Sell price mismatch: created=%v, listed=%v", *plan.SellPrice, *got.SellPrice)
							return false
						}
						return true
					}

					t.Logf("Created plan %d not found in listing", plan.ID)
					return false
				},
				sharesGen,
				priceGen,
				ratioGen,
				ratioGen,
				strategyGen,
				sellGen,
				hasSellGen,
			))

			properties.Property("delete removes exactly the targeted plan", prop.ForAll(
				func(shares int, price float64) bool {
					ctx := context.Background()
					seq++

					plan := &models.TradePlan{
						Symbol:       fmt.Sprintf("DEL%d", seq),
						TotalShares:  shares,
						BuyPrice:     price,
						RiskRatio:    1,
						RewardRatio:  2,
						SellStrategy: models.StrategyRewardBased,
					}
					if err := store.Create(ctx, plan); err != nil {
						t.Logf("Failed to create plan: %v", err)
						return false
					}

					before, err := store.ListAll(ctx)
					if err != nil {
						return false
					}
					if err := store.DeleteByID(ctx, plan.ID); err != nil {
						t.Logf("Failed to delete plan: %v", err)
						return false
					}
					after, err := store.ListAll(ctx)
					if err != nil {
						return false
					}

					if len(after) != len(before)-1 {
						t.Logf("Delete removed %d plans", len(before)-len(after))
						return false
					}
					for _, got := range after {
						if got.ID == plan.ID {
							t.Logf("Deleted plan %d still listed", plan.ID)
							return false
						}
					}
					return true
				},
				sharesGen,
				priceGen,
			))

			properties.TestingRun(t)
		})
	}
}
