package forecast

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/juiceshop/internal/domain/models"
	"github.com/mamadbah2/juiceshop/internal/repository/memory"
)

type fixedRandom float64

func (f fixedRandom) Float64() float64 { return float64(f) }

var may = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

func newEngine(t *testing.T, st memory.State, r RandomSource, now time.Time) (*Engine, *memory.Store) {
	t.Helper()
	store, err := memory.NewStore(st, nil)
	require.NoError(t, err)
	engine := NewEngine(store, r, time.UTC, nil)
	engine.now = func() time.Time { return now }
	return engine, store
}

func TestRunWithoutSalesUsesBaseline(t *testing.T) {
	engine, _ := newEngine(t, memory.SeedState(), fixedRandom(0.5), may)

	predictions, err := engine.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, predictions, 3)

	for _, p := range predictions {
		// 8 * 1.15
		assert.Equal(t, 9, p.PredictedQty, p.ProductID)
		assert.Equal(t, 0.5, p.Confidence)
		assert.Equal(t, commentHot, p.Comment)
	}
	assert.Equal(t, "Mango Shake", predictions[0].ProductName)
	assert.Equal(t, predictions, engine.Predictions())
}

func TestRunAveragesTrailingSales(t *testing.T) {
	st := memory.SeedState()
	for i, qty := range []int{2, 4, 6} {
		st.Sales = append(st.Sales, models.Sale{
			ProductID: "P-MANGO", Qty: qty, Total: decimal.NewFromInt(int64(qty) * 120),
			Date: may.Add(-time.Duration(i+1) * 24 * time.Hour),
		})
	}
	// outside the window
	st.Sales = append(st.Sales, models.Sale{ProductID: "P-MANGO", Qty: 100, Date: may.Add(-15 * 24 * time.Hour)})

	engine, _ := newEngine(t, st, fixedRandom(0.5), may)
	predictions, err := engine.Run(context.Background())
	require.NoError(t, err)

	// mean 4 * 1.15 = 4.6
	assert.Equal(t, 5, predictions[0].PredictedQty)
	assert.InDelta(t, 0.575, predictions[0].Confidence, 1e-9)
	assert.Equal(t, 9, predictions[1].PredictedQty)
}

func TestRunReplacesPreviousSet(t *testing.T) {
	st := memory.SeedState()
	st.Predictions = []models.Prediction{{ProductID: "P-OLD", PredictedQty: 99}}
	engine, store := newEngine(t, st, fixedRandom(0.5), may)

	_, err := engine.Run(context.Background())
	require.NoError(t, err)

	snap := store.Snapshot()
	require.Len(t, snap.Predictions, len(snap.Products))
	for _, p := range snap.Predictions {
		assert.NotEqual(t, "P-OLD", p.ProductID)
	}
}

func TestRunHonoursCancelledContext(t *testing.T) {
	engine, store := newEngine(t, memory.SeedState(), fixedRandom(0.5), may)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, store.Snapshot().Predictions)
}

func TestWeatherFactorBySeason(t *testing.T) {
	at := func(m time.Month) time.Time { return time.Date(2024, m, 15, 0, 0, 0, 0, time.UTC) }

	assert.Equal(t, 1.15, WeatherFactor(at(time.April), 0.5))
	assert.Equal(t, 1.15, WeatherFactor(at(time.July), 0.5))
	assert.Equal(t, 1.0, WeatherFactor(at(time.March), 0.5))
	assert.Equal(t, 1.0, WeatherFactor(at(time.October), 0.5))
	assert.Equal(t, 0.93, WeatherFactor(at(time.November), 0.5))
	assert.Equal(t, 0.93, WeatherFactor(at(time.February), 0.5))

	assert.Equal(t, 1.09, WeatherFactor(at(time.May), 0))
	assert.Equal(t, 0.88, WeatherFactor(at(time.January), 0))
}

func TestWeatherFactorRange(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for m := time.January; m <= time.December; m++ {
		for i := 0; i < 50; i++ {
			w := WeatherFactor(time.Date(2024, m, 1, 0, 0, 0, 0, time.UTC), r.Float64())
			assert.GreaterOrEqual(t, w, 0.80)
			assert.LessOrEqual(t, w, 1.30)
		}
	}
}

func TestConfidence(t *testing.T) {
	assert.Equal(t, 0.5, Confidence(0))
	assert.InDelta(t, 0.75, Confidence(10), 1e-9)
	assert.Equal(t, 0.95, Confidence(18))
	assert.Equal(t, 0.95, Confidence(500))
}

func TestComment(t *testing.T) {
	assert.Equal(t, commentHot, Comment(1.01))
	assert.Equal(t, commentCool, Comment(0.99))
	assert.Equal(t, commentNeutral, Comment(1))
}

func TestComputeBounds(t *testing.T) {
	st := memory.SeedState()
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 20; i++ {
		got := Compute(&st, may, r)
		require.Len(t, got, len(st.Products))
		for _, p := range got {
			assert.GreaterOrEqual(t, p.PredictedQty, 0)
			assert.GreaterOrEqual(t, p.Confidence, 0.5)
			assert.LessOrEqual(t, p.Confidence, 0.95)
		}
	}
}

func TestRunReadsSeasonInShopTimezone(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	// still July in UTC, already August in Kolkata
	lateJuly := time.Date(2024, 7, 31, 20, 0, 0, 0, time.UTC)

	engine, _ := newEngine(t, memory.SeedState(), fixedRandom(0.5), lateJuly)
	predictions, err := engine.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 9, predictions[0].PredictedQty)
	assert.Equal(t, commentHot, predictions[0].Comment)

	engine.location = kolkata
	predictions, err = engine.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, predictions[0].PredictedQty)
	assert.Equal(t, commentNeutral, predictions[0].Comment)
}
