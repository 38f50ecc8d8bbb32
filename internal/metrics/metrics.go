// Package metrics derives the dollar figures for a trade plan.
package metrics

import (
	"math"

	"stock-manager/internal/models"
)

// Metrics holds the six derived dollar figures for a trade plan. All
// values are rounded to two decimal places.
type Metrics struct {
	TotalInvestment   float64 `json:"total_investment"`
	RiskAmount        float64 `json:"risk_amount"`
	RewardAmount      float64 `json:"reward_amount"`
	StopLossPrice     float64 `json:"stop_loss_price"`
	TakeProfitPrice   float64 `json:"take_profit_price"`
	AdjustedSellPrice float64 `json:"adjusted_sell_price"`
}

// Derive computes the metrics for a plan. It is a pure function: no I/O,
// no validation, deterministic for identical inputs. Callers are expected
// to validate the plan first.
func Derive(p models.TradePlan) Metrics {
	totalInvestment := float64(p.TotalShares) * p.BuyPrice
	riskAmount := p.BuyPrice * (p.RiskRatio / 100)
	rewardAmount := p.BuyPrice * (p.RewardRatio / 100)
	stopLoss := p.BuyPrice - riskAmount
	takeProfit := p.BuyPrice + rewardAmount

	adjusted := takeProfit
	if p.SellStrategy == models.StrategyRiskBased {
		adjusted = stopLoss
	}

	return Metrics{
		TotalInvestment:   round2(totalInvestment),
		RiskAmount:        round2(riskAmount),
		RewardAmount:      round2(rewardAmount),
		StopLossPrice:     round2(stopLoss),
		TakeProfitPrice:   round2(takeProfit),
		AdjustedSellPrice: round2(adjusted),
	}
}

// round2 rounds to two decimal places, halves away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
