package telemetry

import (
	"encoding/json"
	"time"
)

type Stats struct {
	Period              string            `json:"period"`
	EventCounts         map[EventType]int `json:"event_counts"`
	BuildsByBuilding    map[string]int    `json:"builds_by_building"`
	MoneySpent          float64           `json:"money_spent"`
	OfflineEarnings     float64           `json:"offline_earnings"`
	MilestonesCompleted int               `json:"milestones_completed"`
	Bankruptcies        int               `json:"bankruptcies"`
}

// CalculateStats folds events into balance-tuning statistics.
func CalculateStats(events []Event, since time.Time) (Stats, error) {
	stats := Stats{
		Period:           since.Format("2006-01-02"),
		EventCounts:      make(map[EventType]int),
		BuildsByBuilding: make(map[string]int),
	}

	for _, event := range events {
		stats.EventCounts[event.Type]++

		var metadata EventMetadata
		if err := json.Unmarshal([]byte(event.Metadata), &metadata); err != nil {
			continue
		}

		switch event.Type {
		case EventBuildingBuilt:
			if id, ok := metadata["building_id"].(string); ok {
				stats.BuildsByBuilding[id]++
			}
		case EventMilestoneCompleted:
			stats.MilestonesCompleted++
		case EventOfflineReconciled:
			if delta, ok := metadata["earnings"].(float64); ok {
				stats.OfflineEarnings += delta
			}
		case EventBankruptcy:
			stats.Bankruptcies++
		}

		switch event.Type {
		case EventBuildingBuilt, EventBuildingUpgraded, EventSlotUnlocked, EventPerkBought:
			if cost, ok := metadata["cost"].(float64); ok {
				stats.MoneySpent += cost
			}
		}
	}

	return stats, nil
}
