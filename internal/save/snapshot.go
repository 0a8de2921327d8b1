package save

import (
	"time"

	"idlepark/internal/config"
	"idlepark/internal/milestone"
	"idlepark/internal/park"
)

// SnapshotVersion is bumped whenever the save document shape changes
// in a way Normalize cannot paper over.
const SnapshotVersion = 1

// Snapshot is the full persisted game: park state plus milestone
// progress, serialized as one JSON document.
type Snapshot struct {
	Version    int                `json:"version"`
	Park       park.State         `json:"park"`
	Milestones milestone.Progress `json:"milestones"`
	SavedAt    time.Time          `json:"saved_at"`
}

// NewSnapshot captures the given state at the given instant.
func NewSnapshot(st park.State, progress milestone.Progress, now time.Time) Snapshot {
	return Snapshot{
		Version:    SnapshotVersion,
		Park:       st,
		Milestones: progress,
		SavedAt:    now,
	}
}

// Normalize fills gaps in snapshots written by older builds so loads
// never hand the engine a half-formed state. Zero-valued fields that
// a fresh game would never produce get the balance defaults.
func (s Snapshot) Normalize(bal config.Balance, now time.Time) Snapshot {
	out := s

	if out.Park.TicketPrice <= 0 {
		out.Park.TicketPrice = bal.DefaultTicketPrice
	}
	if out.Park.UnlockedSlots < bal.StartingSlots {
		out.Park.UnlockedSlots = bal.StartingSlots
	}
	if out.Park.Slots == nil {
		out.Park.Slots = []park.Slot{}
	}
	if out.Park.Perks == nil {
		out.Park.Perks = []string{}
	}
	if out.Park.LastSavedAt.IsZero() {
		out.Park.LastSavedAt = now
	}
	if out.Park.StartedAt.IsZero() {
		out.Park.StartedAt = now
	}

	if out.Milestones.Completed == nil {
		out.Milestones.Completed = []string{}
	}
	if out.Milestones.CompletedAt == nil {
		out.Milestones.CompletedAt = map[string]time.Time{}
	}

	out.Version = SnapshotVersion
	return out
}
