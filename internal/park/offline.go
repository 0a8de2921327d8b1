package park

import (
	"math"
	"time"

	"idlepark/internal/catalog"
	"idlepark/internal/config"
)

// OfflineOutcome reports the reconciliation of an offline gap. As with
// StepOutcome, milestone handling is the caller's job: Equilibrium is
// the peak candidate for the offline span.
type OfflineOutcome struct {
	Elapsed       float64 `json:"elapsed"`
	Equilibrium   float64 `json:"equilibrium"`
	EarningsDelta float64 `json:"earnings_delta"`
	WentBankrupt  bool    `json:"went_bankrupt"`
}

// Reconcile estimates the net effect of the wall-clock gap between the
// persisted state and now, without replaying per-second ticks. The
// population is assumed to have settled at an equilibrium, and income
// is a first-order linear extrapolation from that equilibrium's
// turnover and spending. Deliberately an approximation: its ticket
// formula (equilibrium x departure rate) is not the stepper's literal
// new-arrivals accounting.
func Reconcile(cat *catalog.Catalog, bal config.Balance, st State, now time.Time) (State, OfflineOutcome) {
	elapsed := now.Sub(st.LastSavedAt).Seconds()
	if st.GameOver || elapsed <= 0 {
		return st, OfflineOutcome{}
	}

	stats := Aggregate(cat, bal, st)
	out := OfflineOutcome{Elapsed: elapsed}

	// Equilibrium population: a happy park fills to its target, an
	// unhappy one stabilizes proportionally lower.
	eq := stats.TargetGuests
	if stats.OverallSatisfaction < bal.OfflineSatisfactionThreshold {
		eq = stats.TargetGuests * stats.OverallSatisfaction
	}
	eq = math.Min(eq, stats.MaxGuests)

	// Growth ceiling: a long-idle session may not instantly multiply
	// its population past the configured factor of what was persisted.
	eq = math.Min(eq, math.Max(st.Guests*bal.OfflineGrowthCeiling, st.Guests))
	eq = math.Max(0, eq)
	out.Equilibrium = eq

	turnover := eq * bal.DepartureRate
	ticketPerSecond := turnover * st.TicketPrice
	shopPerSecond := eq * stats.TotalSpendingRate
	net := ticketPerSecond + shopPerSecond - stats.TotalMaintenance

	out.EarningsDelta = net * elapsed

	newMoney := st.Money + out.EarningsDelta
	if newMoney < 0 {
		next := st.Clone()
		next.Money = 0
		next.GameOver = true
		next.LastSavedAt = now
		out.WentBankrupt = true
		return next, out
	}

	next := st.Clone()
	next.Money = newMoney
	next.Guests = eq
	next.LifetimeEarnings += math.Max(0, out.EarningsDelta)
	next.LastSavedAt = now
	return next, out
}
