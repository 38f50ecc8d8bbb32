package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "stock-manager/internal/errors"
	"stock-manager/internal/models"
)

func newTestSQLite(t *testing.T, opts Options) (*SQLiteStore, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	s, err := NewSQLiteStore(path, opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s, path
}

func samplePlan(symbol string) *models.TradePlan {
	return &models.TradePlan{
		Symbol:       symbol,
		TotalShares:  10,
		BuyPrice:     150.00,
		RiskRatio:    5,
		RewardRatio:  10,
		SellStrategy: models.StrategyRiskBased,
	}
}

func TestSQLiteCreateAssignsIDs(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t, Options{UniqueSymbol: true})
	ctx := context.Background()

	a := samplePlan("AAPL")
	require.NoError(t, s.Create(ctx, a))
	assert.Equal(t, int64(1), a.ID)

	b := samplePlan("MSFT")
	require.NoError(t, s.Create(ctx, b))
	assert.Equal(t, int64(2), b.ID)
}

func TestSQLiteRoundTrip(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t, Options{UniqueSymbol: true})
	ctx := context.Background()

	p := samplePlan("AAPL")
	p.SellPrice = models.Float64Ptr(160.25)
	require.NoError(t, s.Create(ctx, p))

	plans, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, *p, plans[0])
}

func TestSQLiteListAllEmpty(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t, Options{UniqueSymbol: true})

	plans, err := s.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestSQLiteListAllIdempotent(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t, Options{UniqueSymbol: true})
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, samplePlan("AAPL")))
	require.NoError(t, s.Create(ctx, samplePlan("MSFT")))

	first, err := s.ListAll(ctx)
	require.NoError(t, err)
	second, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSQLiteDuplicateSymbol(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t, Options{UniqueSymbol: true})
	ctx := context.Background()

	first := samplePlan("AAPL")
	require.NoError(t, s.Create(ctx, first))

	dup := samplePlan("AAPL")
	dup.TotalShares = 99
	err := s.Create(ctx, dup)
	require.ErrorIs(t, err, apperr.ErrDuplicateSymbol)

	// First record unchanged.
	plans, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, *first, plans[0])
}

func TestSQLiteDuplicateSymbolAllowedWithoutPolicy(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t, Options{UniqueSymbol: false})
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, samplePlan("AAPL")))
	require.NoError(t, s.Create(ctx, samplePlan("AAPL")))

	plans, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, plans, 2)
}

func TestSQLiteUpdateByID(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t, Options{UniqueSymbol: true})
	ctx := context.Background()

	p := samplePlan("AAPL")
	require.NoError(t, s.Create(ctx, p))

	upd := samplePlan("AAPL")
	upd.TotalShares = 25
	upd.BuyPrice = 155.10
	upd.SellStrategy = models.StrategyRewardBased
	require.NoError(t, s.UpdateByID(ctx, p.ID, upd))

	plans, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, p.ID, plans[0].ID)
	assert.Equal(t, 25, plans[0].TotalShares)
	assert.Equal(t, 155.10, plans[0].BuyPrice)
	assert.Equal(t, models.StrategyRewardBased, plans[0].SellStrategy)
}

func TestSQLiteUpdateKeepsOwnSymbol(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t, Options{UniqueSymbol: true})
	ctx := context.Background()

	p := samplePlan("AAPL")
	require.NoError(t, s.Create(ctx, p))

	// Re-saving the same symbol on the same row is not a duplicate.
	upd := samplePlan("AAPL")
	upd.TotalShares = 11
	assert.NoError(t, s.UpdateByID(ctx, p.ID, upd))
}

func TestSQLiteUpdateDuplicateSymbol(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t, Options{UniqueSymbol: true})
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, samplePlan("AAPL")))
	p := samplePlan("MSFT")
	require.NoError(t, s.Create(ctx, p))

	upd := samplePlan("AAPL")
	err := s.UpdateByID(ctx, p.ID, upd)
	assert.ErrorIs(t, err, apperr.ErrDuplicateSymbol)
}

func TestSQLiteUpdateNotFound(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t, Options{UniqueSymbol: true})

	err := s.UpdateByID(context.Background(), 42, samplePlan("AAPL"))
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSQLiteDeleteByID(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t, Options{UniqueSymbol: true})
	ctx := context.Background()

	p := samplePlan("AAPL")
	require.NoError(t, s.Create(ctx, p))
	require.NoError(t, s.DeleteByID(ctx, p.ID))

	plans, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestSQLiteDeleteNotFound(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t, Options{UniqueSymbol: true})
	ctx := context.Background()

	p := samplePlan("AAPL")
	require.NoError(t, s.Create(ctx, p))

	err := s.DeleteByID(ctx, 42)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// Collection unchanged.
	plans, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, plans, 1)
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	s, err := NewSQLiteStore(path, Options{UniqueSymbol: true})
	require.NoError(t, err)

	p := samplePlan("AAPL")
	p.SellPrice = models.Float64Ptr(170)
	require.NoError(t, s.Create(ctx, p))
	require.NoError(t, s.Close())

	reopened, err := NewSQLiteStore(path, Options{UniqueSymbol: true})
	require.NoError(t, err)
	defer reopened.Close()

	plans, err := reopened.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, *p, plans[0])
}
