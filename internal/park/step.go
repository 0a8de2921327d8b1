package park

import (
	"math"

	"idlepark/internal/catalog"
	"idlepark/internal/config"
)

// StepOutcome reports what one tick did. The caller (the engine) owns
// feeding the resulting guest count to the milestone tracker and
// applying any rewards; the stepper itself never reaches into other
// subsystems.
type StepOutcome struct {
	Stats          Stats   `json:"stats"`
	Elapsed        float64 `json:"elapsed"`
	TicketRevenue  float64 `json:"ticket_revenue"`
	ShopRevenue    float64 `json:"shop_revenue"`
	Maintenance    float64 `json:"maintenance"`
	NetChange      float64 `json:"net_change"`
	WentBankrupt   bool    `json:"went_bankrupt"`
}

// Step advances guests and money by elapsed seconds. No-op when the
// game is over. On bankruptcy the returned state has money clamped to
// zero and GameOver set; guests and lifetime earnings are untouched on
// that terminating tick.
func Step(cat *catalog.Catalog, bal config.Balance, st State, elapsed float64) (State, StepOutcome) {
	if st.GameOver || elapsed <= 0 {
		return st, StepOutcome{Stats: Aggregate(cat, bal, st)}
	}

	stats := Aggregate(cat, bal, st)
	out := StepOutcome{Stats: stats, Elapsed: elapsed}

	guests := st.Guests

	// (a) exponential approach toward the target
	var arrived float64
	if stats.TargetGuests > guests {
		frac := math.Min(1, bal.ArrivalRate*elapsed)
		arrived = (stats.TargetGuests - guests) * frac
		guests += arrived
	}

	// (b) natural departure
	naturalLeft := guests * math.Min(1, bal.DepartureRate*elapsed)
	guests -= naturalLeft

	// (c) unhappiness-driven departure
	if stats.OverallSatisfaction < 1 {
		unhappyFrac := math.Min(1, (1-stats.OverallSatisfaction)*bal.UnhappyLeaveRate*elapsed)
		guests -= guests * unhappyFrac
	}

	// (d) clamp
	guests = math.Max(0, math.Min(guests, stats.MaxGuests))

	// Tickets are charged to newly arrived guests only. A shrinking
	// park with nobody arriving bills nothing, no matter how many
	// guests walked out this tick.
	out.TicketRevenue = arrived * st.TicketPrice
	out.ShopRevenue = guests * stats.TotalSpendingRate * elapsed
	out.Maintenance = stats.TotalMaintenance * elapsed
	out.NetChange = out.TicketRevenue + out.ShopRevenue - out.Maintenance

	newMoney := st.Money + out.NetChange
	if newMoney < 0 {
		// Fatal transition: truncated commit, nothing else applies.
		next := st.Clone()
		next.Money = 0
		next.GameOver = true
		out.WentBankrupt = true
		return next, out
	}

	next := st.Clone()
	next.Money = newMoney
	next.Guests = guests
	next.LifetimeEarnings += math.Max(0, out.NetChange)
	return next, out
}
