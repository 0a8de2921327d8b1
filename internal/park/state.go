package park

import (
	"fmt"
	"time"

	"idlepark/internal/config"
)

// Slot is a placed building instance occupying one park position.
type Slot struct {
	ID         string    `json:"id"`
	Index      int       `json:"index"`
	BuildingID string    `json:"building_id"`
	Level      int       `json:"level"`
	BuiltAt    time.Time `json:"built_at"`
}

// State is the root aggregate of the park. It is a value: the stepper,
// reconciler, and operations take a State and return a new one, so a
// rejected command leaves the caller's copy untouched.
type State struct {
	Money            float64   `json:"money"`
	TicketPrice      float64   `json:"ticket_price"`
	Slots            []Slot    `json:"slots"`
	UnlockedSlots    int       `json:"unlocked_slots"`
	Perks            []string  `json:"perks"`
	Guests           float64   `json:"guests"`
	LifetimeEarnings float64   `json:"lifetime_earnings"`
	LastSavedAt      time.Time `json:"last_saved_at"`
	StartedAt        time.Time `json:"started_at"`
	GameOver         bool      `json:"game_over"`
}

// NewState returns a fresh park at game start.
func NewState(bal config.Balance, now time.Time) State {
	return State{
		Money:         bal.StartingMoney,
		TicketPrice:   bal.DefaultTicketPrice,
		Slots:         []Slot{},
		UnlockedSlots: bal.StartingSlots,
		Perks:         []string{},
		LastSavedAt:   now,
		StartedAt:     now,
	}
}

func (s State) HasPerk(id string) bool {
	for _, p := range s.Perks {
		if p == id {
			return true
		}
	}
	return false
}

// SlotAt returns the slot occupying the given index, if any.
func (s State) SlotAt(index int) (Slot, bool) {
	for _, sl := range s.Slots {
		if sl.Index == index {
			return sl, true
		}
	}
	return Slot{}, false
}

// SlotByID returns the slot with the given id, if any.
func (s State) SlotByID(id string) (Slot, bool) {
	for _, sl := range s.Slots {
		if sl.ID == id {
			return sl, true
		}
	}
	return Slot{}, false
}

// Clone returns a deep copy so mutating transitions never alias the
// caller's slices.
func (s State) Clone() State {
	out := s
	out.Slots = make([]Slot, len(s.Slots))
	copy(out.Slots, s.Slots)
	out.Perks = make([]string, len(s.Perks))
	copy(out.Perks, s.Perks)
	return out
}

func newSlotID(index int, at time.Time) string {
	return fmt.Sprintf("slot_%d_%d", index, at.UnixNano())
}
