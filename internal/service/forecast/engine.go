package forecast

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/montanaflynn/stats"
	"go.uber.org/zap"

	"github.com/mamadbah2/juiceshop/internal/domain/models"
	"github.com/mamadbah2/juiceshop/internal/repository/memory"
	"github.com/mamadbah2/juiceshop/internal/service/sales"
)

const (
	// Window is the trailing sales history considered per product.
	Window = 14 * 24 * time.Hour
	// BaselineDemand is assumed when a product has no sales in the window.
	BaselineDemand = 8.0

	minConfidence = 0.5
	maxConfidence = 0.95
	// each sale in the window adds 1/40 to the confidence
	samplesPerConfidenceUnit = 40.0

	commentHot     = "Hot day expected, higher demand"
	commentCool    = "Cooler day, lower demand"
	commentNeutral = "Neutral weather"
)

// RandomSource yields uniform values in [0, 1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// Engine runs demand forecasts and stores the latest prediction set.
type Engine struct {
	store    memory.Repository
	rnd      RandomSource
	location *time.Location
	logger   *zap.Logger
	now      func() time.Time
}

// NewEngine builds a forecast engine. A nil rnd is replaced with a time-seeded
// source; the season is read in loc (time.Local when nil).
func NewEngine(store memory.Repository, rnd RandomSource, loc *time.Location, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if loc == nil {
		loc = time.Local
	}
	return &Engine{store: store, rnd: rnd, location: loc, logger: logger, now: time.Now}
}

// Run computes one prediction per product and replaces the stored set.
func (e *Engine) Run(ctx context.Context) ([]models.Prediction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := e.now().In(e.location)
	var predictions []models.Prediction

	// rnd is only touched under the store's write lock, which serializes runs
	err := e.store.Update(func(st *memory.State) error {
		predictions = Compute(st, now, e.rnd)
		st.Predictions = append([]models.Prediction(nil), predictions...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("forecast completed", zap.Int("products", len(predictions)), zap.Time("as_of", now))
	return predictions, nil
}

// Predictions returns the result of the latest run.
func (e *Engine) Predictions() []models.Prediction {
	var out []models.Prediction
	e.store.View(func(st *memory.State) {
		out = append(out, st.Predictions...)
	})
	return out
}

// Compute derives a prediction for every product in st from the sales of the
// trailing Window before now. It draws one weather factor per product.
func Compute(st *memory.State, now time.Time, rnd RandomSource) []models.Prediction {
	cutoff := now.Add(-Window)
	out := make([]models.Prediction, 0, len(st.Products))

	for _, p := range st.Products {
		history := sales.Trailing(st, p.ID, cutoff)

		avg := BaselineDemand
		if len(history) > 0 {
			qty := make(stats.Float64Data, 0, len(history))
			for _, s := range history {
				qty = append(qty, float64(s.Qty))
			}
			if mean, err := qty.Mean(); err == nil {
				avg = mean
			}
		}

		weather := WeatherFactor(now, rnd.Float64())
		out = append(out, models.Prediction{
			ProductID:    p.ID,
			ProductName:  p.Name,
			PredictedQty: int(math.Max(0, math.Round(avg*weather))),
			Confidence:   Confidence(len(history)),
			Comment:      Comment(weather),
		})
	}

	return out
}

// WeatherFactor is a seasonal multiplier for the month of now, jittered by r
// in [0, 1) within ±5% and rounded to two decimals.
func WeatherFactor(now time.Time, r float64) float64 {
	month := int(now.Month()) - 1

	base := 1.0
	switch {
	case month >= 3 && month <= 6:
		base = 1.15
	case month >= 10 || month <= 1:
		base = 0.93
	}

	jitter := 0.95 + r*0.1
	return math.Round(base*jitter*100) / 100
}

// Confidence grows with the number of samples from 0.5 up to 0.95.
func Confidence(samples int) float64 {
	return math.Min(maxConfidence, minConfidence+float64(samples)/samplesPerConfidenceUnit)
}

// Comment describes the weather factor relative to neutral.
func Comment(weather float64) string {
	switch {
	case weather > 1:
		return commentHot
	case weather < 1:
		return commentCool
	default:
		return commentNeutral
	}
}
