// Package models defines the core data types for the application.
package models

import (
	"strings"

	"github.com/go-playground/validator/v10"

	apperr "stock-manager/internal/errors"
)

// SellStrategy selects which derived price is used as the exit price.
type SellStrategy string

const (
	// StrategyRiskBased exits at the stop-loss price.
	StrategyRiskBased SellStrategy = "Risk-Based"
	// StrategyRewardBased exits at the take-profit price.
	StrategyRewardBased SellStrategy = "Reward-Based"
)

// Valid reports whether s is one of the two known strategies.
func (s SellStrategy) Valid() bool {
	return s == StrategyRiskBased || s == StrategyRewardBased
}

// TradePlan represents a recorded intent to buy a stock quantity with
// associated risk/reward thresholds. The ID is assigned by the store at
// creation time and is immutable afterwards.
type TradePlan struct {
	ID           int64        `json:"id"`
	Symbol       string       `json:"stock_symbol" validate:"required"`
	TotalShares  int          `json:"total_shares" validate:"min=1"`
	BuyPrice     float64      `json:"buy_price" validate:"gte=0.01"`
	RiskRatio    float64      `json:"risk_ratio" validate:"gte=0,lte=100"`
	RewardRatio  float64      `json:"reward_ratio" validate:"gte=0,lte=100"`
	SellStrategy SellStrategy `json:"sell_strategy" validate:"oneof=Risk-Based Reward-Based"`
	SellPrice    *float64     `json:"sell_price" validate:"omitempty,gte=0"`
}

var validate = validator.New()

// fieldMessages maps field+tag to a user-facing message.
var fieldMessages = map[string]string{
	"Symbol.required":    "stock symbol cannot be empty",
	"TotalShares.min":    "total shares must be at least 1",
	"BuyPrice.gte":       "buy price must be at least 0.01",
	"RiskRatio.gte":      "risk ratio must be between 0 and 100",
	"RiskRatio.lte":      "risk ratio must be between 0 and 100",
	"RewardRatio.gte":    "reward ratio must be between 0 and 100",
	"RewardRatio.lte":    "reward ratio must be between 0 and 100",
	"SellStrategy.oneof": "sell strategy must be Risk-Based or Reward-Based",
	"SellPrice.gte":      "sell price cannot be negative",
}

// Normalize trims and upper-cases the symbol. Called before validation so
// a whitespace-only symbol is rejected as empty.
func (p *TradePlan) Normalize() {
	p.Symbol = strings.ToUpper(strings.TrimSpace(p.Symbol))
}

// Validate checks the plan invariants and returns a *errors.ValidationError
// describing the first violated field.
func (p *TradePlan) Validate() error {
	if err := validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if apperr.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]
			if !ok {
				msg = fe.Tag()
			}
			return apperr.NewValidationError(fe.Field(), fe.Value(), msg)
		}
		return err
	}
	return nil
}

// SellPriceValue returns the optional sell price and whether it is set.
func (p *TradePlan) SellPriceValue() (float64, bool) {
	if p.SellPrice == nil {
		return 0, false
	}
	return *p.SellPrice, true
}

// Float64Ptr is a convenience for building optional sell prices.
func Float64Ptr(v float64) *float64 {
	return &v
}
