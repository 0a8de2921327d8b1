package park

import (
	"testing"
	"time"

	"idlepark/internal/catalog"
	"idlepark/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testState(bal config.Balance) State {
	return NewState(bal, time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))
}

func buildAll(t *testing.T, cat *catalog.Catalog, bal config.Balance, st State, ids ...string) State {
	t.Helper()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range ids {
		next, ok := Build(cat, bal, st, i, id, now)
		require.True(t, ok, "build %s in slot %d", id, i)
		st = next
	}
	return st
}

func TestAggregateEmptyPark(t *testing.T) {
	cat := catalog.Default()
	bal := config.Default()
	st := testState(bal)

	stats := Aggregate(cat, bal, st)

	assert.Equal(t, float64(bal.StartingSlots)*bal.GuestsPerSlot, stats.MaxGuests)
	assert.Zero(t, stats.Reputation)
	assert.Zero(t, stats.TotalMaintenance)
	assert.Zero(t, stats.TargetGuests)

	// No guests means fully satisfied, not NaN.
	assert.Equal(t, 1.0, stats.EntertainmentSatisfaction)
	assert.Equal(t, 1.0, stats.HungerSatisfaction)
	assert.Equal(t, 1.0, stats.ComfortSatisfaction)
	assert.Equal(t, 1.0, stats.SafetySatisfaction)
	assert.Equal(t, 1.0, stats.OverallSatisfaction)
}

func TestAggregateSkipsUnknownBuildings(t *testing.T) {
	cat := catalog.Default()
	bal := config.Default()
	st := testState(bal)
	st.Slots = []Slot{{ID: "s1", Index: 0, BuildingID: "no_such_ride", Level: 3}}

	stats := Aggregate(cat, bal, st)
	assert.Zero(t, stats.Reputation)
	assert.Zero(t, stats.TotalMaintenance)
}

func TestSatisfactionRatiosStayInUnitInterval(t *testing.T) {
	cat := catalog.Default()
	bal := config.Default()
	st := buildAll(t, cat, bal, testState(bal), "carousel", "snack_cart", "restroom")

	for _, guests := range []float64{0, 0.5, 1, 10, 137, 10000} {
		st.Guests = guests
		stats := Aggregate(cat, bal, st)

		for name, v := range map[string]float64{
			"entertainment": stats.EntertainmentSatisfaction,
			"hunger":        stats.HungerSatisfaction,
			"comfort":       stats.ComfortSatisfaction,
			"safety":        stats.SafetySatisfaction,
			"overall":       stats.OverallSatisfaction,
		} {
			assert.GreaterOrEqual(t, v, 0.0, "%s at %f guests", name, guests)
			assert.LessOrEqual(t, v, 1.0, "%s at %f guests", name, guests)
		}
	}
}

func TestDemandIsMonotoneAndFloored(t *testing.T) {
	bal := config.Default()

	prev := 2.0
	for p := bal.TicketPriceMin; p <= bal.TicketPriceMax; p++ {
		d := Demand(bal, p)
		assert.GreaterOrEqual(t, d, bal.DemandFloor)
		assert.LessOrEqual(t, d, 1.0)
		assert.LessOrEqual(t, d, prev, "demand rose when price went up to %f", p)
		prev = d
	}

	assert.Equal(t, bal.DemandFloor, Demand(bal, 1e6))
}

func TestAggregateIsIdempotent(t *testing.T) {
	cat := catalog.Default()
	bal := config.Default()
	st := buildAll(t, cat, bal, testState(bal), "carousel", "gift_shop")
	st.Guests = 42

	first := Aggregate(cat, bal, st)
	second := Aggregate(cat, bal, st)
	assert.Equal(t, first, second)
}

func TestLevelScalingDivergesStatsFromMaintenance(t *testing.T) {
	cat := catalog.Default()
	bal := config.Default()
	st := buildAll(t, cat, bal, testState(bal), "carousel")

	base := Aggregate(cat, bal, st)
	st.Slots[0].Level = 3
	leveled := Aggregate(cat, bal, st)

	// Stats grow 10%/level, upkeep only 5%/level.
	assert.InDelta(t, base.Reputation*1.1*1.1, leveled.Reputation, 1e-9)
	assert.InDelta(t, base.TotalMaintenance*1.05*1.05, leveled.TotalMaintenance, 1e-9)
}

func TestNetIncomeComposition(t *testing.T) {
	cat := catalog.Default()
	bal := config.Default()
	st := buildAll(t, cat, bal, testState(bal), "carousel", "snack_cart")
	st.Guests = 30

	stats := Aggregate(cat, bal, st)
	assert.InDelta(t, stats.TicketIncome+stats.ShopIncome-stats.TotalMaintenance, stats.NetIncome, 1e-9)
	assert.InDelta(t, 30*stats.TotalSpendingRate, stats.ShopIncome, 1e-9)
}
