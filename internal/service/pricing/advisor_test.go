package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/juiceshop/internal/domain/models"
	"github.com/mamadbah2/juiceshop/internal/repository/memory"
)

var inr = models.Currency{Symbol: "₹"}

func newAdvisor(t *testing.T, st memory.State) (*Advisor, *memory.Store) {
	t.Helper()
	store, err := memory.NewStore(st, nil)
	require.NoError(t, err)
	return NewAdvisor(store, inr, nil), store
}

func TestIngredientCostSeed(t *testing.T) {
	advisor, _ := newAdvisor(t, memory.SeedState())

	assert.Equal(t, "32.95", advisor.IngredientCost("P-MANGO").StringFixed(2))
	assert.Equal(t, "20.95", advisor.IngredientCost("P-ORANGE").StringFixed(2))
	assert.Equal(t, "8.15", advisor.IngredientCost("P-WATERMELON").StringFixed(2))
	assert.True(t, advisor.IngredientCost("P-KIWI").IsZero())
}

func TestMarginPercent(t *testing.T) {
	advisor, _ := newAdvisor(t, memory.SeedState())

	assert.InDelta(t, 264.188, advisor.MarginPercent("P-MANGO"), 0.001)
	assert.Equal(t, 0.0, advisor.MarginPercent("P-KIWI"))
}

func TestMarginZeroWhenCostZero(t *testing.T) {
	st := memory.SeedState()
	require.NoError(t, st.AddProduct(models.Product{ID: "P-AIR", Name: "Air", Price: decimal.NewFromInt(999)}))
	for i := range st.Inventory {
		st.Inventory[i].UnitCost = decimal.Zero
	}
	advisor, _ := newAdvisor(t, st)

	assert.Equal(t, 0.0, advisor.MarginPercent("P-AIR"))
	assert.Equal(t, 0.0, advisor.MarginPercent("P-MANGO"))
}

func TestApplyMarkup(t *testing.T) {
	advisor, _ := newAdvisor(t, memory.SeedState())

	p, err := advisor.ApplyDefaultMarkup("P-MANGO")
	require.NoError(t, err)
	assert.Equal(t, "42.84", p.Price.StringFixed(2))

	p, err = advisor.ApplyMarkup("P-ORANGE", 50)
	require.NoError(t, err)
	assert.Equal(t, "31.43", p.Price.StringFixed(2))

	p, err = advisor.ApplyMarkup("P-WATERMELON", -250)
	require.NoError(t, err)
	assert.True(t, p.Price.IsZero())

	_, err = advisor.ApplyMarkup("P-KIWI", 10)
	assert.ErrorIs(t, err, models.ErrProductNotFound)
}

func TestSetPrice(t *testing.T) {
	advisor, store := newAdvisor(t, memory.SeedState())

	p, err := advisor.SetPrice("P-ORANGE", decimal.RequireFromString("99.5"))
	require.NoError(t, err)
	assert.Equal(t, "99.50", p.Price.StringFixed(2))

	p, err = advisor.SetPrice("P-ORANGE", decimal.NewFromInt(-1))
	require.NoError(t, err)
	assert.True(t, p.Price.IsZero())

	_, err = advisor.SetPrice("P-KIWI", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, models.ErrProductNotFound)

	snap := store.Snapshot()
	orange, _ := snap.Product("P-ORANGE")
	assert.True(t, orange.Price.IsZero())
}

func TestSuggestionsSeed(t *testing.T) {
	advisor, _ := newAdvisor(t, memory.SeedState())

	assert.Equal(t, []string{
		"Mango Shake margin high (264%). You can run a promo.",
		"Orange Juice margin high (330%). You can run a promo.",
		"Watermelon Juice margin high (882%). You can run a promo.",
	}, advisor.Suggestions())
}

func TestSuggestionsOrderAndContent(t *testing.T) {
	st := memory.SeedState()
	cup, _ := st.InventoryItem("I-CUP")
	cup.Qty = 50
	ice, _ := st.InventoryItem("I-ICE")
	ice.Qty = 12
	require.NoError(t, st.AddInventoryItem(models.InventoryItem{ID: "I-MINT", Name: "Mint leaf", Qty: 3, UnitCost: decimal.Zero}))

	mango, _ := st.Product("P-MANGO")
	mango.Price = decimal.NewFromInt(35)
	orange, _ := st.Product("P-ORANGE")
	orange.Price = decimal.NewFromInt(30)

	st.Predictions = []models.Prediction{
		{ProductID: "P-MANGO", ProductName: "Mango Shake", PredictedQty: 9},
		{ProductID: "P-ORANGE", ProductName: "Orange Juice", PredictedQty: 12},
		{ProductID: "P-WATERMELON", ProductName: "Watermelon Juice", PredictedQty: 12},
	}

	advisor, _ := newAdvisor(t, st)
	assert.Equal(t, []string{
		"Low stock: Ice (1 cube). Consider restocking to 200.",
		"Low stock: Cup (1 pc). Consider restocking to 100.",
		"Low stock: Mint leaf. Consider restocking to 20.",
		"Mango Shake margin low (6%). Consider raising price to ₹42.84.",
		"Watermelon Juice margin high (882%). You can run a promo.",
		"Prepare more for Orange Juice: forecast 12 cups.",
		"Consider cross-selling Mango Shake: only 9 cups predicted.",
	}, advisor.Suggestions())
}

func TestSuggestionsSinglePrediction(t *testing.T) {
	st := memory.SeedState()
	st.Predictions = []models.Prediction{{ProductID: "P-MANGO", ProductName: "Mango Shake", PredictedQty: 4}}
	advisor, _ := newAdvisor(t, st)

	tips := advisor.Suggestions()
	require.GreaterOrEqual(t, len(tips), 2)
	assert.Equal(t, "Prepare more for Mango Shake: forecast 4 cups.", tips[len(tips)-2])
	assert.Equal(t, "Consider cross-selling Mango Shake: only 4 cups predicted.", tips[len(tips)-1])
}

func TestSuggestionsIdempotent(t *testing.T) {
	st := memory.SeedState()
	st.Predictions = []models.Prediction{{ProductID: "P-ORANGE", ProductName: "Orange Juice", PredictedQty: 7}}
	advisor, _ := newAdvisor(t, st)

	assert.Equal(t, advisor.Suggestions(), advisor.Suggestions())
}

func TestRestockTarget(t *testing.T) {
	assert.Equal(t, 20.0, RestockTarget(models.InventoryItem{}))
	assert.Equal(t, 20.0, RestockTarget(models.InventoryItem{ReorderLevel: models.Level(10)}))
	assert.Equal(t, 120.0, RestockTarget(models.InventoryItem{ReorderLevel: models.Level(60)}))
}

func TestMarginReport(t *testing.T) {
	advisor, _ := newAdvisor(t, memory.SeedState())

	report, err := advisor.Margin("P-MANGO")
	require.NoError(t, err)
	assert.Equal(t, "32.95", report.IngredientCost.StringFixed(2))
	assert.Equal(t, "120.00", report.Price.StringFixed(2))
	assert.InDelta(t, 264.19, report.MarginPercent, 0.01)

	_, err = advisor.Margin("P-NONE")
	assert.ErrorIs(t, err, models.ErrProductNotFound)
}

func TestSuggestionsRoundHalfMarginUp(t *testing.T) {
	st := memory.SeedState()
	watermelon, ok := st.Product("P-WATERMELON")
	require.True(t, ok)
	watermelon.Price = decimal.RequireFromString("9.16875")
	advisor, _ := newAdvisor(t, st)

	assert.InDelta(t, 12.5, advisor.MarginPercent("P-WATERMELON"), 1e-9)
	assert.Contains(t, advisor.Suggestions(), "Watermelon Juice margin low (13%). Consider raising price to ₹10.60.")
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "13", formatPercent(12.5))
	assert.Equal(t, "-13", formatPercent(-12.5))
	assert.Equal(t, "882", formatPercent(881.595))
	assert.Equal(t, "0", formatPercent(0))
}
