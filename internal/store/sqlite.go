// Package store provides trade plan persistence interfaces and implementations.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mattn/go-sqlite3"

	apperr "stock-manager/internal/errors"
	"stock-manager/internal/models"
)

// SQLiteStore implements PlanStore on a single-table SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	opts Options
}

// NewSQLiteStore opens (or creates) the database at dbPath and ensures the
// schema exists. The unique-symbol policy is baked into the schema, so it
// must not change between opens of the same file.
func NewSQLiteStore(dbPath string, opts Options) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, apperr.Storage("open database", err)
	}

	s := &SQLiteStore{db: db, opts: opts}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, apperr.Storage("initialize schema", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	symbolCol := "stock_symbol TEXT NOT NULL"
	if s.opts.UniqueSymbol {
		symbolCol += " UNIQUE"
	}

	schema := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS plans (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		%s,
		total_shares INTEGER NOT NULL,
		buy_price REAL NOT NULL,
		risk_ratio REAL NOT NULL,
		reward_ratio REAL NOT NULL,
		sell_strategy TEXT NOT NULL,
		sell_price REAL
	);

	CREATE INDEX IF NOT EXISTS idx_plans_symbol ON plans(stock_symbol);
	`, symbolCol)

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Create persists a new plan and assigns its ID from the auto-increment key.
func (s *SQLiteStore) Create(ctx context.Context, plan *models.TradePlan) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO plans (stock_symbol, total_shares, buy_price, risk_ratio, reward_ratio, sell_strategy, sell_price)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, plan.Symbol, plan.TotalShares, plan.BuyPrice, plan.RiskRatio, plan.RewardRatio, plan.SellStrategy, plan.SellPrice)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create plan %q: %w", plan.Symbol, apperr.ErrDuplicateSymbol)
		}
		return apperr.Storage("insert plan", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return apperr.Storage("read inserted id", err)
	}
	plan.ID = id
	return nil
}

// ListAll returns all plans in primary-key order.
func (s *SQLiteStore) ListAll(ctx context.Context) ([]models.TradePlan, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, stock_symbol, total_shares, buy_price, risk_ratio, reward_ratio, sell_strategy, sell_price
		FROM plans
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, apperr.Storage("query plans", err)
	}
	defer rows.Close()

	plans := []models.TradePlan{}
	for rows.Next() {
		var p models.TradePlan
		if err := rows.Scan(&p.ID, &p.Symbol, &p.TotalShares, &p.BuyPrice, &p.RiskRatio, &p.RewardRatio, &p.SellStrategy, &p.SellPrice); err != nil {
			return nil, apperr.Storage("scan plan", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage("iterate plans", err)
	}
	return plans, nil
}

// UpdateByID replaces all fields of the plan at id.
func (s *SQLiteStore) UpdateByID(ctx context.Context, id int64, plan *models.TradePlan) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE plans
		SET stock_symbol = ?, total_shares = ?, buy_price = ?, risk_ratio = ?, reward_ratio = ?, sell_strategy = ?, sell_price = ?
		WHERE id = ?
	`, plan.Symbol, plan.TotalShares, plan.BuyPrice, plan.RiskRatio, plan.RewardRatio, plan.SellStrategy, plan.SellPrice, id)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update plan %d to %q: %w", id, plan.Symbol, apperr.ErrDuplicateSymbol)
		}
		return apperr.Storage("update plan", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return apperr.Storage("read affected rows", err)
	}
	if rows == 0 {
		return fmt.Errorf("update plan %d: %w", id, apperr.ErrNotFound)
	}
	plan.ID = id
	return nil
}

// DeleteByID removes the plan at id.
func (s *SQLiteStore) DeleteByID(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return apperr.Storage("delete plan", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return apperr.Storage("read affected rows", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete plan %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var serr sqlite3.Error
	if apperr.As(err, &serr) {
		return serr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			serr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
