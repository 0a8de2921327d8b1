package park

import (
	"math"
	"time"

	"idlepark/internal/catalog"
	"idlepark/internal/config"
)

// Operations are atomic transitions: each returns the next state and
// an ok flag. A false ok is a normal rejection (can't afford it,
// precondition unmet) and the input state is returned unchanged.

// SlotCap is the base cap plus any perk-granted bonus.
func SlotCap(cat *catalog.Catalog, bal config.Balance, st State) int {
	total := bal.MaxSlots
	for _, id := range st.Perks {
		p, ok := cat.Perk(id)
		if !ok {
			continue
		}
		if p.Effect.Kind == catalog.EffectSlotCapBonus {
			total += p.Effect.Amount
		}
	}
	return total
}

// TierUnlocked reports whether buildings of the tier may be bought.
func TierUnlocked(cat *catalog.Catalog, st State, tier catalog.Tier) bool {
	if tier == catalog.TierBasic {
		return true
	}
	for _, id := range st.Perks {
		p, ok := cat.Perk(id)
		if !ok {
			continue
		}
		if p.Effect.Kind == catalog.EffectUnlockTier && p.Effect.Tier == tier {
			return true
		}
	}
	return false
}

// UpgradeCost is baseCost x upgradeMultiplier^currentLevel, floored.
func UpgradeCost(def catalog.BuildingDefinition, bal config.Balance, currentLevel int) float64 {
	return math.Floor(def.BaseCost * math.Pow(bal.UpgradeCostMultiplier, float64(currentLevel)))
}

// DemolishRefund is the refund rate applied to the cumulative
// investment: the original cost plus every historical upgrade cost.
func DemolishRefund(def catalog.BuildingDefinition, bal config.Balance, level int) float64 {
	invested := def.BaseCost
	for l := 1; l < level; l++ {
		invested += UpgradeCost(def, bal, l)
	}
	return math.Floor(invested * bal.DemolishRefundRate)
}

// Build places a level-1 building in the slot at slotIndex.
func Build(cat *catalog.Catalog, bal config.Balance, st State, slotIndex int, buildingID string, now time.Time) (State, bool) {
	if st.GameOver {
		return st, false
	}
	if slotIndex < 0 || slotIndex >= st.UnlockedSlots {
		return st, false
	}
	if _, occupied := st.SlotAt(slotIndex); occupied {
		return st, false
	}
	def, ok := cat.Building(buildingID)
	if !ok {
		return st, false
	}
	if !TierUnlocked(cat, st, def.Tier) {
		return st, false
	}
	if def.RequiresPerk != "" && !st.HasPerk(def.RequiresPerk) {
		return st, false
	}
	if st.Money < def.BaseCost {
		return st, false
	}

	next := st.Clone()
	next.Money -= def.BaseCost
	next.Slots = append(next.Slots, Slot{
		ID:         newSlotID(slotIndex, now),
		Index:      slotIndex,
		BuildingID: buildingID,
		Level:      1,
		BuiltAt:    now,
	})
	return next, true
}

// Upgrade increments the slot's level, debiting the scaled cost.
func Upgrade(cat *catalog.Catalog, bal config.Balance, st State, slotID string) (State, bool) {
	if st.GameOver {
		return st, false
	}
	slot, ok := st.SlotByID(slotID)
	if !ok {
		return st, false
	}
	if slot.Level >= bal.MaxLevel {
		return st, false
	}
	def, ok := cat.Building(slot.BuildingID)
	if !ok {
		return st, false
	}
	cost := UpgradeCost(def, bal, slot.Level)
	if st.Money < cost {
		return st, false
	}

	next := st.Clone()
	next.Money -= cost
	for i := range next.Slots {
		if next.Slots[i].ID == slotID {
			next.Slots[i].Level++
			break
		}
	}
	return next, true
}

// Demolish removes the slot and credits the refund. Always succeeds
// when the slot exists.
func Demolish(cat *catalog.Catalog, bal config.Balance, st State, slotID string) (State, bool) {
	if st.GameOver {
		return st, false
	}
	slot, ok := st.SlotByID(slotID)
	if !ok {
		return st, false
	}

	refund := 0.0
	if def, ok := cat.Building(slot.BuildingID); ok {
		refund = DemolishRefund(def, bal, slot.Level)
	}

	next := st.Clone()
	next.Money += refund
	kept := next.Slots[:0]
	for _, sl := range next.Slots {
		if sl.ID != slotID {
			kept = append(kept, sl)
		}
	}
	next.Slots = kept
	return next, true
}

// UnlockNextSlot opens one more building position, paying the cost
// from the unlock table.
func UnlockNextSlot(cat *catalog.Catalog, bal config.Balance, st State) (State, bool) {
	if st.GameOver {
		return st, false
	}
	if st.UnlockedSlots >= SlotCap(cat, bal, st) {
		return st, false
	}
	cost := bal.SlotUnlockCost(st.UnlockedSlots + 1)
	if st.Money < cost {
		return st, false
	}

	next := st.Clone()
	next.Money -= cost
	next.UnlockedSlots++
	return next, true
}

// BuyPerk grants a permanent perk. Fails if already owned or
// unaffordable.
func BuyPerk(cat *catalog.Catalog, bal config.Balance, st State, perkID string) (State, bool) {
	if st.GameOver {
		return st, false
	}
	perk, ok := cat.Perk(perkID)
	if !ok {
		return st, false
	}
	if st.HasPerk(perkID) {
		return st, false
	}
	if st.Money < perk.Cost {
		return st, false
	}

	next := st.Clone()
	next.Money -= perk.Cost
	next.Perks = append(next.Perks, perkID)
	return next, true
}

// SetTicketPrice clamps into the configured range; always succeeds.
func SetTicketPrice(bal config.Balance, st State, price float64) State {
	next := st.Clone()
	next.TicketPrice = math.Max(bal.TicketPriceMin, math.Min(bal.TicketPriceMax, price))
	return next
}
