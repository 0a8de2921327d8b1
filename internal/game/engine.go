package game

import (
	"context"
	"log"
	"sync"
	"time"

	"idlepark/internal/catalog"
	"idlepark/internal/config"
	"idlepark/internal/milestone"
	"idlepark/internal/park"
	"idlepark/internal/save"
	"idlepark/internal/telemetry"
)

// Options configures an Engine. Zero fields get working defaults, so
// tests can construct an engine from whatever subset they care about.
type Options struct {
	Catalog   *catalog.Catalog
	Balance   config.Balance
	Repo      save.Repository
	Clock     Clock
	Logger    *log.Logger
	Telemetry telemetry.Repository
}

// Engine is the single owner of the live game state. Every command
// takes the mutex, applies a pure transition from the park package,
// then applies milestone rewards and schedules a save. Commands never
// block on persistence.
type Engine struct {
	catalog   *catalog.Catalog
	balance   config.Balance
	repo      save.Repository
	clock     Clock
	logger    *log.Logger
	telemetry telemetry.Repository

	mu      sync.Mutex
	state   park.State
	tracker *milestone.Tracker

	saveCh chan struct{}
}

func NewEngine(opts Options) *Engine {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Balance.MaxSlots == 0 {
		opts.Balance = config.Default()
	}
	if opts.Repo == nil {
		opts.Repo = save.NewMemoryRepo()
	}
	if opts.Clock == nil {
		opts.Clock = RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	e := &Engine{
		catalog:   opts.Catalog,
		balance:   opts.Balance,
		repo:      opts.Repo,
		clock:     opts.Clock,
		logger:    opts.Logger,
		telemetry: opts.Telemetry,
		tracker:   milestone.NewTracker(opts.Catalog.Milestones()),
		saveCh:    make(chan struct{}, 1),
	}
	e.state = park.NewState(e.balance, e.clock.Now())
	return e
}

func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }
func (e *Engine) Balance() config.Balance   { return e.balance }

// State returns a deep copy of the current park state.
func (e *Engine) State() park.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// Stats computes the derived view of the current state.
func (e *Engine) Stats() park.Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return park.Aggregate(e.catalog, e.balance, e.state)
}

// scheduleSave requests an async persist. The send never blocks: a
// pending request already covers this change.
func (e *Engine) scheduleSave() {
	select {
	case e.saveCh <- struct{}{}:
	default:
	}
}

// record emits a telemetry event when a repository is configured.
// Telemetry failures never fail a command.
func (e *Engine) record(eventType telemetry.EventType, metadata telemetry.EventMetadata) {
	if e.telemetry == nil {
		return
	}
	if err := e.telemetry.RecordEvent(eventType, metadata, e.clock.Now()); err != nil {
		e.logger.Printf("telemetry: %v", err)
	}
}

// applyMilestones folds newly completed milestone rewards into the
// state. Must be called with the mutex held, after guests changed.
func (e *Engine) applyMilestones(now time.Time) ([]catalog.Milestone, float64) {
	e.tracker.UpdatePeak(e.state.Guests)
	newly := e.tracker.Check(now)
	var reward float64
	for _, m := range newly {
		if m.Reward.Kind == catalog.RewardMoney {
			reward += m.Reward.Amount
		}
	}
	if reward > 0 {
		e.state.Money += reward
		e.state.LifetimeEarnings += reward
	}
	for _, m := range newly {
		e.record(telemetry.EventMilestoneCompleted, telemetry.EventMetadata{
			"milestone_id": m.ID,
			"reward":       m.Reward.Amount,
		})
	}
	return newly, reward
}

type StepResult struct {
	Outcome     park.StepOutcome    `json:"outcome"`
	Unlocked    []catalog.Milestone `json:"unlocked,omitempty"`
	RewardMoney float64             `json:"reward_money,omitempty"`
}

// Step advances the simulation by elapsed seconds.
func (e *Engine) Step(elapsed float64) StepResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, outcome := park.Step(e.catalog, e.balance, e.state, elapsed)
	e.state = next

	// Bankruptcy is a truncated commit: nothing else applies on the
	// terminating tick, milestone rewards included. A frozen park
	// earns no rewards either until it is reset.
	if e.state.GameOver {
		if outcome.WentBankrupt {
			e.logger.Printf("park went bankrupt with %.1f guests", e.state.Guests)
			e.record(telemetry.EventBankruptcy, telemetry.EventMetadata{"guests": e.state.Guests})
			e.scheduleSave()
		}
		return StepResult{Outcome: outcome}
	}

	unlocked, reward := e.applyMilestones(e.clock.Now())
	return StepResult{Outcome: outcome, Unlocked: unlocked, RewardMoney: reward}
}

type OfflineResult struct {
	Outcome     park.OfflineOutcome `json:"outcome"`
	Unlocked    []catalog.Milestone `json:"unlocked,omitempty"`
	RewardMoney float64             `json:"reward_money,omitempty"`
}

// ReconcileOffline settles the gap between the last save and now.
func (e *Engine) ReconcileOffline() OfflineResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	next, outcome := park.Reconcile(e.catalog, e.balance, e.state, now)
	e.state = next

	var unlocked []catalog.Milestone
	var reward float64
	if !e.state.GameOver {
		unlocked, reward = e.applyMilestones(now)
	}
	if outcome.Elapsed > 0 {
		e.logger.Printf("reconciled %.0fs offline: guests=%.1f earnings=%+.2f",
			outcome.Elapsed, e.state.Guests, outcome.EarningsDelta)
		e.record(telemetry.EventOfflineReconciled, telemetry.EventMetadata{
			"elapsed":  outcome.Elapsed,
			"earnings": outcome.EarningsDelta,
		})
		if outcome.WentBankrupt {
			e.record(telemetry.EventBankruptcy, telemetry.EventMetadata{"guests": e.state.Guests})
		}
		e.scheduleSave()
	}
	return OfflineResult{Outcome: outcome, Unlocked: unlocked, RewardMoney: reward}
}

type BuildResult struct {
	OK    bool      `json:"ok"`
	Slot  park.Slot `json:"slot,omitempty"`
	Cost  float64   `json:"cost"`
	Money float64   `json:"money"`
}

func (e *Engine) Build(slotIndex int, buildingID string) BuildResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	before := e.state.Money
	next, ok := park.Build(e.catalog, e.balance, e.state, slotIndex, buildingID, e.clock.Now())
	if !ok {
		return BuildResult{Money: before}
	}
	e.state = next
	e.scheduleSave()

	slot, _ := e.state.SlotAt(slotIndex)
	e.record(telemetry.EventBuildingBuilt, telemetry.EventMetadata{
		"building_id": buildingID,
		"cost":        before - e.state.Money,
	})
	return BuildResult{OK: true, Slot: slot, Cost: before - e.state.Money, Money: e.state.Money}
}

type UpgradeResult struct {
	OK    bool    `json:"ok"`
	Level int     `json:"level,omitempty"`
	Cost  float64 `json:"cost"`
	Money float64 `json:"money"`
}

func (e *Engine) Upgrade(slotID string) UpgradeResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	before := e.state.Money
	next, ok := park.Upgrade(e.catalog, e.balance, e.state, slotID)
	if !ok {
		return UpgradeResult{Money: before}
	}
	e.state = next
	e.scheduleSave()

	slot, _ := e.state.SlotByID(slotID)
	e.record(telemetry.EventBuildingUpgraded, telemetry.EventMetadata{
		"building_id": slot.BuildingID,
		"level":       slot.Level,
		"cost":        before - e.state.Money,
	})
	return UpgradeResult{OK: true, Level: slot.Level, Cost: before - e.state.Money, Money: e.state.Money}
}

type DemolishResult struct {
	OK     bool    `json:"ok"`
	Refund float64 `json:"refund"`
	Money  float64 `json:"money"`
}

func (e *Engine) Demolish(slotID string) DemolishResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	before := e.state.Money
	next, ok := park.Demolish(e.catalog, e.balance, e.state, slotID)
	if !ok {
		return DemolishResult{Money: before}
	}
	e.state = next
	e.scheduleSave()

	e.record(telemetry.EventBuildingDemolished, telemetry.EventMetadata{
		"slot_id": slotID,
		"refund":  e.state.Money - before,
	})
	return DemolishResult{OK: true, Refund: e.state.Money - before, Money: e.state.Money}
}

type UnlockSlotResult struct {
	OK            bool    `json:"ok"`
	UnlockedSlots int     `json:"unlocked_slots"`
	Cost          float64 `json:"cost"`
	Money         float64 `json:"money"`
}

func (e *Engine) UnlockNextSlot() UnlockSlotResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	before := e.state.Money
	next, ok := park.UnlockNextSlot(e.catalog, e.balance, e.state)
	if !ok {
		return UnlockSlotResult{UnlockedSlots: e.state.UnlockedSlots, Money: before}
	}
	e.state = next
	e.scheduleSave()

	e.record(telemetry.EventSlotUnlocked, telemetry.EventMetadata{
		"unlocked_slots": e.state.UnlockedSlots,
		"cost":           before - e.state.Money,
	})
	return UnlockSlotResult{
		OK:            true,
		UnlockedSlots: e.state.UnlockedSlots,
		Cost:          before - e.state.Money,
		Money:         e.state.Money,
	}
}

type BuyPerkResult struct {
	OK    bool    `json:"ok"`
	Perk  string  `json:"perk,omitempty"`
	Cost  float64 `json:"cost"`
	Money float64 `json:"money"`
}

func (e *Engine) BuyPerk(perkID string) BuyPerkResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	before := e.state.Money
	next, ok := park.BuyPerk(e.catalog, e.balance, e.state, perkID)
	if !ok {
		return BuyPerkResult{Money: before}
	}
	e.state = next
	e.scheduleSave()

	e.record(telemetry.EventPerkBought, telemetry.EventMetadata{
		"perk_id": perkID,
		"cost":    before - e.state.Money,
	})
	return BuyPerkResult{OK: true, Perk: perkID, Cost: before - e.state.Money, Money: e.state.Money}
}

type TicketPriceResult struct {
	Price float64 `json:"price"`
}

// SetTicketPrice clamps the requested price into the allowed band.
func (e *Engine) SetTicketPrice(price float64) TicketPriceResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state = park.SetTicketPrice(e.balance, e.state, price)
	e.scheduleSave()
	return TicketPriceResult{Price: e.state.TicketPrice}
}

// PendingUnlocks drains milestone completions awaiting acknowledgment.
func (e *Engine) PendingUnlocks() []catalog.Milestone {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tracker.PendingUnlocks()
}

// MilestoneProgress returns a copy of the tracked milestone progress.
func (e *Engine) MilestoneProgress() milestone.Progress {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tracker.Progress()
}

// Load restores the saved game, if any, normalizing older saves.
// Returns false when no save exists and the fresh state stands.
func (e *Engine) Load(ctx context.Context) (bool, error) {
	snap, ok, err := e.repo.Load(ctx)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	snap = snap.Normalize(e.balance, e.clock.Now())

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = snap.Park
	e.tracker.Load(snap.Milestones)
	return true, nil
}

// SaveNow persists the current state synchronously and stamps the
// state's save time.
func (e *Engine) SaveNow(ctx context.Context) error {
	e.mu.Lock()
	now := e.clock.Now()
	e.state.LastSavedAt = now
	snap := save.NewSnapshot(e.state.Clone(), e.tracker.Progress(), now)
	e.mu.Unlock()

	return e.repo.Save(ctx, snap)
}

// Reset abandons the current game and starts over.
func (e *Engine) Reset(ctx context.Context) error {
	e.mu.Lock()
	e.state = park.NewState(e.balance, e.clock.Now())
	e.tracker.Reset()
	e.record(telemetry.EventGameReset, nil)
	e.mu.Unlock()

	if err := e.repo.Clear(ctx); err != nil {
		return err
	}
	return e.SaveNow(ctx)
}
