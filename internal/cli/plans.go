// Package cli provides the command-line interface for the application.
package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"stock-manager/internal/metrics"
	"stock-manager/internal/models"
)

const commandTimeout = 30 * time.Second

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Trade plan management",
		Long:  "Create, list, update, and delete trade plans and view their derived metrics.",
	}

	cmd.AddCommand(newPlanAddCmd(app))
	cmd.AddCommand(newPlanListCmd(app))
	cmd.AddCommand(newPlanUpdateCmd(app))
	cmd.AddCommand(newPlanDeleteCmd(app))
	cmd.AddCommand(newPlanMetricsCmd(app))

	return cmd
}

// addPlanFlags registers the full plan field set shared by add and update.
func addPlanFlags(cmd *cobra.Command) {
	cmd.Flags().Int("shares", 1, "Total shares (>= 1)")
	cmd.Flags().Float64("buy", 0, "Buy price in dollars (>= 0.01, required)")
	cmd.Flags().Float64("risk", 5, "Risk ratio percent (0-100)")
	cmd.Flags().Float64("reward", 10, "Reward ratio percent (0-100)")
	cmd.Flags().String("strategy", "risk", "Sell strategy: risk or reward")
	cmd.Flags().Float64("sell", 0, "Optional sell price in dollars")
}

// planFromFlags builds a plan from the shared flag set. The sell price is
// only set when the flag was passed; zero means "not provided".
func planFromFlags(cmd *cobra.Command, symbol string) *models.TradePlan {
	shares, _ := cmd.Flags().GetInt("shares")
	buy, _ := cmd.Flags().GetFloat64("buy")
	risk, _ := cmd.Flags().GetFloat64("risk")
	reward, _ := cmd.Flags().GetFloat64("reward")
	strategy, _ := cmd.Flags().GetString("strategy")

	plan := &models.TradePlan{
		Symbol:       symbol,
		TotalShares:  shares,
		BuyPrice:     buy,
		RiskRatio:    risk,
		RewardRatio:  reward,
		SellStrategy: parseStrategy(strategy),
	}

	if cmd.Flags().Changed("sell") {
		sell, _ := cmd.Flags().GetFloat64("sell")
		if sell > 0 {
			plan.SellPrice = models.Float64Ptr(sell)
		}
	}
	return plan
}

// parseStrategy accepts shorthand ("risk", "reward") as well as the full
// stored values. Anything else passes through and fails validation.
func parseStrategy(s string) models.SellStrategy {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "risk", "risk-based":
		return models.StrategyRiskBased
	case "reward", "reward-based":
		return models.StrategyRewardBased
	default:
		return models.SellStrategy(s)
	}
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid plan id %q", arg)
	}
	return id, nil
}

func newPlanAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <symbol>",
		Short: "Add a trade plan",
		Long: `Record a new trade plan with share count, buy price, risk/reward
ratios, and an exit strategy. Stop-loss and take-profit prices are derived.`,
		Example: `  stockman plan add AAPL --shares 10 --buy 150 --risk 5 --reward 10 --strategy risk
  stockman plan add MSFT --shares 25 --buy 310.40 --strategy reward --sell 350`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			svc, err := app.Service()
			if err != nil {
				output.Error("Failed to open store: %v", err)
				return err
			}

			plan := planFromFlags(cmd, args[0])
			if err := svc.CreatePlan(ctx, plan); err != nil {
				output.Error("Failed to add plan: %v", err)
				return err
			}

			m := svc.DeriveMetrics(*plan)
			if output.IsJSON() {
				return output.JSON(planWithMetrics{Plan: *plan, Metrics: m})
			}

			output.Success("✓ Trade plan created (id %d)", plan.ID)
			output.Println()
			displayPlanDetails(output, *plan, m)
			return nil
		},
	}

	addPlanFlags(cmd)
	cmd.MarkFlagRequired("buy")
	return cmd
}

func newPlanUpdateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "update <id>",
		Short:   "Update a trade plan",
		Long:    "Replace all fields of an existing trade plan. Every field flag must be provided.",
		Example: `  stockman plan update 3 --symbol AAPL --shares 20 --buy 155 --risk 4 --reward 12 --strategy reward`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			id, err := parseID(args[0])
			if err != nil {
				output.Error("%v", err)
				return err
			}

			svc, err := app.Service()
			if err != nil {
				output.Error("Failed to open store: %v", err)
				return err
			}

			symbol, _ := cmd.Flags().GetString("symbol")
			plan := planFromFlags(cmd, symbol)
			if err := svc.UpdatePlan(ctx, id, plan); err != nil {
				output.Error("Failed to update plan: %v", err)
				return err
			}

			m := svc.DeriveMetrics(*plan)
			if output.IsJSON() {
				return output.JSON(planWithMetrics{Plan: *plan, Metrics: m})
			}

			output.Success("✓ Trade plan %d updated", id)
			output.Println()
			displayPlanDetails(output, *plan, m)
			return nil
		},
	}

	cmd.Flags().String("symbol", "", "Stock symbol (required)")
	addPlanFlags(cmd)
	cmd.MarkFlagRequired("symbol")
	cmd.MarkFlagRequired("shares")
	cmd.MarkFlagRequired("buy")
	cmd.MarkFlagRequired("risk")
	cmd.MarkFlagRequired("reward")
	cmd.MarkFlagRequired("strategy")
	return cmd
}

func newPlanDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a trade plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			id, err := parseID(args[0])
			if err != nil {
				output.Error("%v", err)
				return err
			}

			svc, err := app.Service()
			if err != nil {
				output.Error("Failed to open store: %v", err)
				return err
			}

			if err := svc.DeletePlan(ctx, id); err != nil {
				output.Error("Failed to delete plan: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{"deleted": id})
			}
			output.Success("✓ Trade plan %d deleted", id)
			return nil
		},
	}
}

func newPlanListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List trade plans",
		Long:  "Display all trade plans with their derived metrics.",
		Example: `  stockman plan list
  stockman plan list --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			svc, err := app.Service()
			if err != nil {
				output.Error("Failed to open store: %v", err)
				return err
			}

			plans, err := svc.ListPlans(ctx)
			if err != nil {
				output.Error("Failed to list plans: %v", err)
				return err
			}

			if output.IsJSON() {
				rows := make([]planWithMetrics, 0, len(plans))
				for _, p := range plans {
					rows = append(rows, planWithMetrics{Plan: p, Metrics: svc.DeriveMetrics(p)})
				}
				return output.JSON(rows)
			}

			if len(plans) == 0 {
				output.Info("No trade plans found. Use 'stockman plan add' to create one.")
				return nil
			}

			output.Bold("Trade Plans")
			output.Printf("  %d plans\n\n", len(plans))

			table := NewTable(output, "ID", "Symbol", "Shares", "Buy", "Risk", "Reward", "Strategy", "Invest", "Stop-Loss", "Take-Profit", "Adj Sell")
			for _, p := range plans {
				m := svc.DeriveMetrics(p)
				table.AddRow(
					strconv.FormatInt(p.ID, 10),
					p.Symbol,
					strconv.Itoa(p.TotalShares),
					FormatUSD(p.BuyPrice),
					FormatPercent(p.RiskRatio),
					FormatPercent(p.RewardRatio),
					string(p.SellStrategy),
					FormatUSD(m.TotalInvestment),
					output.Red(FormatUSD(m.StopLossPrice)),
					output.Green(FormatUSD(m.TakeProfitPrice)),
					FormatUSD(m.AdjustedSellPrice),
				)
			}
			table.Render()
			return nil
		},
	}
}

func newPlanMetricsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics <id>",
		Short: "Show derived metrics for a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			id, err := parseID(args[0])
			if err != nil {
				output.Error("%v", err)
				return err
			}

			svc, err := app.Service()
			if err != nil {
				output.Error("Failed to open store: %v", err)
				return err
			}

			plan, m, err := svc.DeriveMetricsByID(ctx, id)
			if err != nil {
				output.Error("Failed to derive metrics: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(planWithMetrics{Plan: plan, Metrics: m})
			}

			displayPlanDetails(output, plan, m)
			return nil
		},
	}
}

// planWithMetrics is the JSON shape for plan output.
type planWithMetrics struct {
	Plan    models.TradePlan `json:"plan"`
	Metrics metrics.Metrics  `json:"metrics"`
}

func displayPlanDetails(output *Output, plan models.TradePlan, m metrics.Metrics) {
	output.Bold("%s Trade Plan (id %d)", plan.Symbol, plan.ID)
	output.Printf("  Shares:        %d\n", plan.TotalShares)
	output.Printf("  Buy Price:     %s\n", FormatUSD(plan.BuyPrice))
	output.Printf("  Risk Ratio:    %s\n", FormatPercent(plan.RiskRatio))
	output.Printf("  Reward Ratio:  %s\n", FormatPercent(plan.RewardRatio))
	output.Printf("  Strategy:      %s\n", plan.SellStrategy)
	output.Printf("  Sell Price:    %s\n", FormatOptionalUSD(plan.SellPrice))
	output.Println()

	output.Bold("Derived Metrics")
	output.Printf("  Investment:    %s\n", FormatUSD(m.TotalInvestment))
	output.Printf("  Risk Amount:   %s\n", FormatUSD(m.RiskAmount))
	output.Printf("  Reward Amount: %s\n", FormatUSD(m.RewardAmount))
	output.Printf("  Stop-Loss:     %s\n", output.Red(FormatUSD(m.StopLossPrice)))
	output.Printf("  Take-Profit:   %s\n", output.Green(FormatUSD(m.TakeProfitPrice)))
	output.Printf("  Adj Sell:      %s\n", FormatUSD(m.AdjustedSellPrice))
}
