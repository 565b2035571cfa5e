package sales

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/juiceshop/internal/domain/models"
	"github.com/mamadbah2/juiceshop/internal/repository/memory"
)

// Ledger is the read side of the append-only sales log.
type Ledger struct {
	store    memory.Repository
	location *time.Location
	now      func() time.Time
}

// NewLedger builds a sales ledger that buckets days in loc (time.Local when nil).
func NewLedger(store memory.Repository, loc *time.Location) *Ledger {
	if loc == nil {
		loc = time.Local
	}
	return &Ledger{store: store, location: loc, now: time.Now}
}

// List returns every sale in recording order.
func (l *Ledger) List() []models.Sale {
	var out []models.Sale
	l.store.View(func(st *memory.State) {
		out = append(out, st.Sales...)
	})
	return out
}

// Now is the current instant in the ledger's location.
func (l *Ledger) Now() time.Time {
	return l.now().In(l.location)
}

// Today aggregates the sales of the current calendar day.
func (l *Ledger) Today() models.DailySummary {
	var summary models.DailySummary
	now := l.Now()
	l.store.View(func(st *memory.State) {
		summary = DailySummary(st, now)
	})
	return summary
}

// LowPerformers names up to limit products with the fewest units sold over the trailing window.
func (l *Ledger) LowPerformers(window time.Duration, limit int) []string {
	var out []string
	cutoff := l.now().Add(-window)
	l.store.View(func(st *memory.State) {
		out = LowPerformers(st, cutoff, limit)
	})
	return out
}

// Trailing returns the sales of productID dated at or after cutoff.
func Trailing(st *memory.State, productID string, cutoff time.Time) []models.Sale {
	var out []models.Sale
	for _, s := range st.Sales {
		if s.ProductID == productID && !s.Date.Before(cutoff) {
			out = append(out, s)
		}
	}
	return out
}

// SameDay reports whether t falls on the calendar day of day, in day's location.
func SameDay(t, day time.Time) bool {
	y1, m1, d1 := t.In(day.Location()).Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DailySummary totals the sales on the calendar day of day. The top product is
// the one with the most units; ties go to the product sold first that day.
func DailySummary(st *memory.State, day time.Time) models.DailySummary {
	summary := models.DailySummary{
		Date:        time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location()),
		SalesAmount: decimal.Zero,
		TopProduct:  models.NoTopProduct,
	}

	var order []string
	units := make(map[string]int)
	for _, s := range st.Sales {
		if !SameDay(s.Date, day) {
			continue
		}
		summary.SalesCount++
		summary.UnitsSold += s.Qty
		summary.SalesAmount = summary.SalesAmount.Add(s.Total)
		if _, seen := units[s.ProductID]; !seen {
			order = append(order, s.ProductID)
		}
		units[s.ProductID] += s.Qty
	}

	topID, best := "", 0
	for _, id := range order {
		if units[id] > best {
			topID, best = id, units[id]
		}
	}
	if p, ok := st.Product(topID); ok {
		summary.TopProduct = p.Name
	}

	return summary
}

// LowPerformers ranks products sold since cutoff by ascending units and
// returns up to limit names. Products with no sales in the window are not ranked.
func LowPerformers(st *memory.State, cutoff time.Time, limit int) []string {
	type tally struct {
		id    string
		units int
	}

	var tallies []tally
	index := make(map[string]int)
	for _, s := range st.Sales {
		if s.Date.Before(cutoff) {
			continue
		}
		i, seen := index[s.ProductID]
		if !seen {
			i = len(tallies)
			index[s.ProductID] = i
			tallies = append(tallies, tally{id: s.ProductID})
		}
		tallies[i].units += s.Qty
	}

	sort.SliceStable(tallies, func(i, j int) bool { return tallies[i].units < tallies[j].units })
	if limit >= 0 && len(tallies) > limit {
		tallies = tallies[:limit]
	}

	names := make([]string, 0, len(tallies))
	for _, t := range tallies {
		name := t.id
		if p, ok := st.Product(t.id); ok {
			name = p.Name
		}
		names = append(names, name)
	}
	return names
}
