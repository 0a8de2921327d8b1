package park

import (
	"math"

	"idlepark/internal/catalog"
	"idlepark/internal/config"
)

// Stats is everything derived from current state. Recomputed on
// demand, never persisted.
type Stats struct {
	MaxGuests float64 `json:"max_guests"`

	// Aggregated slot totals
	Reputation        float64 `json:"reputation"`
	RideCapacity      float64 `json:"ride_capacity"`
	HungerCapacity    float64 `json:"hunger_capacity"`
	ComfortCapacity   float64 `json:"comfort_capacity"`
	SafetyCapacity    float64 `json:"safety_capacity"`
	TotalSpendingRate float64 `json:"total_spending_rate"`
	TotalMaintenance  float64 `json:"total_maintenance"`

	// Demand and population
	DemandMultiplier float64 `json:"demand_multiplier"`
	TargetGuests     float64 `json:"target_guests"`
	CurrentGuests    float64 `json:"current_guests"`

	// Need satisfaction ratios, all in [0, 1]
	EntertainmentSatisfaction float64 `json:"entertainment_satisfaction"`
	HungerSatisfaction        float64 `json:"hunger_satisfaction"`
	ComfortSatisfaction       float64 `json:"comfort_satisfaction"`
	SafetySatisfaction        float64 `json:"safety_satisfaction"`
	OverallSatisfaction       float64 `json:"overall_satisfaction"`

	// Income rates, currency per second
	TicketIncome float64 `json:"ticket_income"`
	ShopIncome   float64 `json:"shop_income"`
	NetIncome    float64 `json:"net_income"`
}

// Demand returns the price-dependent demand multiplier in
// [DemandFloor, 1]. Monotonically non-increasing in price; the floor
// keeps demand strictly positive at any price.
func Demand(bal config.Balance, ticketPrice float64) float64 {
	d := 1 - bal.DemandSlope*ticketPrice
	if d < bal.DemandFloor {
		return bal.DemandFloor
	}
	if d > 1 {
		return 1
	}
	return d
}

// Aggregate folds the slot list into park-wide stats. Pure and
// deterministic: no side effects, no errors. Slots referencing an
// unknown building id contribute nothing.
func Aggregate(cat *catalog.Catalog, bal config.Balance, st State) Stats {
	stats := Stats{
		MaxGuests:     float64(st.UnlockedSlots) * bal.GuestsPerSlot,
		CurrentGuests: st.Guests,
	}

	for _, slot := range st.Slots {
		def, ok := cat.Building(slot.BuildingID)
		if !ok {
			continue
		}

		statMult := math.Pow(bal.StatLevelMultiplier, float64(slot.Level-1))
		maintMult := math.Pow(bal.MaintenanceLevelMultiplier, float64(slot.Level-1))

		stats.TotalMaintenance += def.MaintenanceCost * maintMult

		switch s := def.Stats.(type) {
		case catalog.RideStats:
			stats.Reputation += s.Prestige * statMult
			stats.RideCapacity += s.RideCapacity * statMult
		case catalog.ShopStats:
			stats.TotalSpendingRate += s.SpendingRate * statMult
			stats.HungerCapacity += s.HungerCapacity * statMult
		case catalog.InfrastructureStats:
			stats.ComfortCapacity += s.ComfortCapacity * statMult
			stats.SafetyCapacity += s.SafetyCapacity * statMult
		}
	}

	stats.DemandMultiplier = Demand(bal, st.TicketPrice)
	stats.TargetGuests = math.Min(stats.Reputation*stats.DemandMultiplier, stats.MaxGuests)

	stats.EntertainmentSatisfaction = needRatio(stats.RideCapacity, st.Guests)
	stats.HungerSatisfaction = needRatio(stats.HungerCapacity, st.Guests)
	stats.ComfortSatisfaction = needRatio(stats.ComfortCapacity, st.Guests)
	stats.SafetySatisfaction = needRatio(stats.SafetyCapacity, st.Guests)

	w := bal.Weights
	stats.OverallSatisfaction = w.Entertainment*stats.EntertainmentSatisfaction +
		w.Hunger*stats.HungerSatisfaction +
		w.Comfort*stats.ComfortSatisfaction +
		w.Safety*stats.SafetySatisfaction

	// Ticket income is an ambient replacement-rate proxy, not literal
	// per-guest billing.
	stats.TicketIncome = stats.Reputation * stats.DemandMultiplier * bal.ArrivalRate * st.TicketPrice
	stats.ShopIncome = st.Guests * stats.TotalSpendingRate
	stats.NetIncome = stats.TicketIncome + stats.ShopIncome - stats.TotalMaintenance

	return stats
}

// needRatio defines an empty park as fully satisfied, never NaN.
func needRatio(capacity, guests float64) float64 {
	if guests <= 0 {
		return 1
	}
	return math.Min(1, capacity/guests)
}
