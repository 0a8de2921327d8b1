package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"idlepark/internal/game"
	"idlepark/internal/notify"
	"idlepark/internal/telemetry"
)

// App holds what the handlers depend on.
type App struct {
	Engine    *game.Engine
	Feed      *notify.Feed
	Hub       *Hub
	Telemetry telemetry.Repository
	Logger    *log.Logger

	BootNow time.Time
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeResult reports a command result: 409 when the engine rejected
// the command, 200 otherwise. The body is the result either way so
// clients always see their money.
func writeResult(w http.ResponseWriter, ok bool, v any) {
	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusConflict)
	}
	_ = json.NewEncoder(w).Encode(v)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return false
	}
	return true
}

func RegisterAPIRoutes(mux *http.ServeMux, rr *RouteRegistry, app *App) {
	engine := app.Engine

	Handle(mux, rr, "GET /api/state", "Current park state", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, engine.State())
	})

	Handle(mux, rr, "GET /api/stats", "Derived park statistics", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, engine.Stats())
	})

	Handle(mux, rr, "GET /api/catalog/buildings", "Building catalog", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, engine.Catalog().Buildings())
	})

	Handle(mux, rr, "GET /api/catalog/perks", "Perk catalog", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, engine.Catalog().Perks())
	})

	Handle(mux, rr, "GET /api/catalog/milestones", "Milestone catalog", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, engine.Catalog().Milestones())
	})

	Handle(mux, rr, "GET /api/milestones", "Milestone progress", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, engine.MilestoneProgress())
	})

	// Drains the unlock queue: each completion is announced once.
	Handle(mux, rr, "POST /api/milestones/ack", "Acknowledge milestone unlocks", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, engine.PendingUnlocks())
	})

	Handle(mux, rr, "POST /api/build", "Construct a building", `{"slot_index":0,"building_id":"carousel"}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			SlotIndex  int    `json:"slot_index"`
			BuildingID string `json:"building_id"`
		}
		if !decodeBody(w, r, &body) {
			return
		}
		res := engine.Build(body.SlotIndex, body.BuildingID)
		writeResult(w, res.OK, res)
	})

	Handle(mux, rr, "POST /api/upgrade", "Upgrade a built slot", `{"slot_id":"slot_0_123"}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			SlotID string `json:"slot_id"`
		}
		if !decodeBody(w, r, &body) {
			return
		}
		res := engine.Upgrade(body.SlotID)
		writeResult(w, res.OK, res)
	})

	Handle(mux, rr, "POST /api/demolish", "Demolish a built slot", `{"slot_id":"slot_0_123"}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			SlotID string `json:"slot_id"`
		}
		if !decodeBody(w, r, &body) {
			return
		}
		res := engine.Demolish(body.SlotID)
		writeResult(w, res.OK, res)
	})

	Handle(mux, rr, "POST /api/slots/unlock", "Unlock the next slot", "", func(w http.ResponseWriter, r *http.Request) {
		res := engine.UnlockNextSlot()
		writeResult(w, res.OK, res)
	})

	Handle(mux, rr, "POST /api/perks/buy", "Buy a perk", `{"perk_id":"park_rank_2"}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			PerkID string `json:"perk_id"`
		}
		if !decodeBody(w, r, &body) {
			return
		}
		res := engine.BuyPerk(body.PerkID)
		writeResult(w, res.OK, res)
	})

	Handle(mux, rr, "POST /api/ticket-price", "Set the ticket price", `{"price":15}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Price float64 `json:"price"`
		}
		if !decodeBody(w, r, &body) {
			return
		}
		writeJSON(w, engine.SetTicketPrice(body.Price))
	})

	Handle(mux, rr, "POST /api/reset", "Abandon the park and start over", "", func(w http.ResponseWriter, r *http.Request) {
		if err := engine.Reset(r.Context()); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, engine.State())
	})

	Handle(mux, rr, "GET /api/feed", "Sample a guest chatter message", "", func(w http.ResponseWriter, r *http.Request) {
		st := engine.State()
		stats := engine.Stats()
		ride := ""
		for _, slot := range st.Slots {
			if def, ok := engine.Catalog().Building(slot.BuildingID); ok {
				ride = def.Name
				break
			}
		}
		writeJSON(w, app.Feed.Sample(stats.OverallSatisfaction, st.TicketPrice, ride))
	})

	if app.Telemetry != nil {
		Handle(mux, rr, "GET /api/telemetry/stats", "Balance-tuning statistics", "", func(w http.ResponseWriter, r *http.Request) {
			since := time.Time{}
			if raw := r.URL.Query().Get("since"); raw != "" {
				parsed, err := time.Parse(time.RFC3339, raw)
				if err != nil {
					http.Error(w, "since must be RFC 3339", http.StatusBadRequest)
					return
				}
				since = parsed
			}
			events, err := app.Telemetry.GetEvents(since, nil)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			stats, err := telemetry.CalculateStats(events, since)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			writeJSON(w, stats)
		})
	}

	if app.Hub != nil {
		Handle(mux, rr, "GET /ws", "Live stats over websocket", "", func(w http.ResponseWriter, r *http.Request) {
			ServeWs(app.Hub, app.Logger, w, r)
		})
	}

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"ok":      true,
			"service": "idlepark",
			"uptime":  time.Since(app.BootNow).Round(time.Second).String(),
		})
	})
}
