package telemetry

import "time"

type EventType string

const (
	EventBuildingBuilt      EventType = "building_built"
	EventBuildingUpgraded   EventType = "building_upgraded"
	EventBuildingDemolished EventType = "building_demolished"
	EventSlotUnlocked       EventType = "slot_unlocked"
	EventPerkBought         EventType = "perk_bought"
	EventMilestoneCompleted EventType = "milestone_completed"
	EventOfflineReconciled  EventType = "offline_reconciled"
	EventBankruptcy         EventType = "bankruptcy"
	EventGameReset          EventType = "game_reset"
)

type Event struct {
	ID        int       `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata"`
}

type EventMetadata map[string]interface{}
