package config

// SatisfactionWeights is the convex combination of the four need
// ratios; the weights must sum to 1.
type SatisfactionWeights struct {
	Entertainment float64 `json:"entertainment" yaml:"entertainment"`
	Hunger        float64 `json:"hunger" yaml:"hunger"`
	Comfort       float64 `json:"comfort" yaml:"comfort"`
	Safety        float64 `json:"safety" yaml:"safety"`
}

// Balance holds gameplay balance configuration. These are data, not
// architecture: any of them may be retuned without touching the
// simulation code.
type Balance struct {
	// Starting state
	StartingMoney float64 `json:"starting_money" yaml:"starting_money"`
	StartingSlots int     `json:"starting_slots" yaml:"starting_slots"`

	// Slots
	MaxSlots        int       `json:"max_slots" yaml:"max_slots"`
	SlotUnlockCosts []float64 `json:"slot_unlock_costs" yaml:"slot_unlock_costs"`
	GuestsPerSlot   float64   `json:"guests_per_slot" yaml:"guests_per_slot"`

	// Level scaling
	MaxLevel                   int     `json:"max_level" yaml:"max_level"`
	UpgradeCostMultiplier      float64 `json:"upgrade_cost_multiplier" yaml:"upgrade_cost_multiplier"`
	StatLevelMultiplier        float64 `json:"stat_level_multiplier" yaml:"stat_level_multiplier"`
	MaintenanceLevelMultiplier float64 `json:"maintenance_level_multiplier" yaml:"maintenance_level_multiplier"`
	DemolishRefundRate         float64 `json:"demolish_refund_rate" yaml:"demolish_refund_rate"`

	// Ticket pricing and demand
	TicketPriceMin     float64 `json:"ticket_price_min" yaml:"ticket_price_min"`
	TicketPriceMax     float64 `json:"ticket_price_max" yaml:"ticket_price_max"`
	DefaultTicketPrice float64 `json:"default_ticket_price" yaml:"default_ticket_price"`
	DemandSlope        float64 `json:"demand_slope" yaml:"demand_slope"`
	DemandFloor        float64 `json:"demand_floor" yaml:"demand_floor"`

	// Guest dynamics (per second rates)
	ArrivalRate      float64 `json:"arrival_rate" yaml:"arrival_rate"`
	DepartureRate    float64 `json:"departure_rate" yaml:"departure_rate"`
	UnhappyLeaveRate float64 `json:"unhappy_leave_rate" yaml:"unhappy_leave_rate"`

	Weights SatisfactionWeights `json:"satisfaction_weights" yaml:"satisfaction_weights"`

	// Offline reconciliation
	OfflineSatisfactionThreshold float64 `json:"offline_satisfaction_threshold" yaml:"offline_satisfaction_threshold"`
	OfflineGrowthCeiling         float64 `json:"offline_growth_ceiling" yaml:"offline_growth_ceiling"`
}

// Default returns the stock balance configuration.
func Default() Balance {
	return Balance{
		StartingMoney: 10000,
		StartingSlots: 4,

		MaxSlots: 12,
		SlotUnlockCosts: []float64{
			15000,  // slot 5
			25000,  // slot 6
			40000,  // slot 7
			60000,  // slot 8
			90000,  // slot 9
			130000, // slot 10
			180000, // slot 11
			250000, // slot 12
		},
		GuestsPerSlot: 50,

		MaxLevel:                   5,
		UpgradeCostMultiplier:      1.15,
		StatLevelMultiplier:        1.1,
		MaintenanceLevelMultiplier: 1.05,
		DemolishRefundRate:         0.5,

		TicketPriceMin:     1,
		TicketPriceMax:     100,
		DefaultTicketPrice: 10,
		DemandSlope:        0.009,
		DemandFloor:        0.1,

		ArrivalRate:      0.15,
		DepartureRate:    0.02,
		UnhappyLeaveRate: 0.25,

		Weights: SatisfactionWeights{
			Entertainment: 0.40,
			Hunger:        0.25,
			Comfort:       0.20,
			Safety:        0.15,
		},

		OfflineSatisfactionThreshold: 0.8,
		OfflineGrowthCeiling:         1.2,
	}
}

// Casual returns easier balance for casual difficulty.
func Casual() Balance {
	cfg := Default()
	cfg.StartingMoney = 25000
	cfg.UnhappyLeaveRate = 0.15
	cfg.DepartureRate = 0.015
	return cfg
}

// Hard returns harder balance for experienced players.
func Hard() Balance {
	cfg := Default()
	cfg.StartingMoney = 5000
	cfg.DemandSlope = 0.012
	cfg.UnhappyLeaveRate = 0.35
	cfg.DemolishRefundRate = 0.4
	return cfg
}

// SlotUnlockCost returns the cost of unlocking slot number `next`
// (1-based). Slots within StartingSlots are free; past the table the
// cost is unaffordable by construction (last entry repeated).
func (b Balance) SlotUnlockCost(next int) float64 {
	idx := next - b.StartingSlots - 1
	if idx < 0 {
		return 0
	}
	if idx >= len(b.SlotUnlockCosts) {
		if len(b.SlotUnlockCosts) == 0 {
			return 0
		}
		return b.SlotUnlockCosts[len(b.SlotUnlockCosts)-1]
	}
	return b.SlotUnlockCosts[idx]
}
