package catalog

// PerkEffectKind tags a perk effect variant.
type PerkEffectKind string

const (
	// EffectUnlockTier makes a building tier purchasable.
	EffectUnlockTier PerkEffectKind = "unlock_tier"
	// EffectSlotCapBonus raises the slot cap by Amount.
	EffectSlotCapBonus PerkEffectKind = "slot_cap_bonus"
)

// PerkEffect is a tagged variant; Tier is set for unlock_tier, Amount
// for slot_cap_bonus.
type PerkEffect struct {
	Kind   PerkEffectKind `json:"kind"`
	Tier   Tier           `json:"tier,omitempty"`
	Amount int            `json:"amount,omitempty"`
}

// Perk is a permanent, one-time purchase with an additive effect.
type Perk struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Icon        string     `json:"icon"`
	Description string     `json:"description"`
	Cost        float64    `json:"cost"`
	Effect      PerkEffect `json:"effect"`
}

var Perks = []Perk{
	{
		ID: "park_rank_2", Name: "Park Expansion I", Icon: "🌟",
		Description: "Unlock standard-tier attractions",
		Cost:        50000,
		Effect:      PerkEffect{Kind: EffectUnlockTier, Tier: TierStandard},
	},
	{
		ID: "park_rank_3", Name: "Park Expansion II", Icon: "✨",
		Description: "Unlock premium-tier attractions",
		Cost:        200000,
		Effect:      PerkEffect{Kind: EffectUnlockTier, Tier: TierPremium},
	},
	{
		ID: "overflow_parking", Name: "Overflow Parking", Icon: "🅿️",
		Description: "Room for two more building slots",
		Cost:        120000,
		Effect:      PerkEffect{Kind: EffectSlotCapBonus, Amount: 2},
	},
}
