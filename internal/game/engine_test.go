package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idlepark/internal/catalog"
	"idlepark/internal/config"
	"idlepark/internal/milestone"
	"idlepark/internal/park"
	"idlepark/internal/save"
	"idlepark/internal/telemetry"
)

func testEngine(t *testing.T) (*Engine, *FakeClock) {
	t.Helper()
	clock := NewFakeClock(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))
	e := NewEngine(Options{Clock: clock})
	return e, clock
}

func TestNewEngineStartsFresh(t *testing.T) {
	e, clock := testEngine(t)
	st := e.State()

	assert.Equal(t, 10000.0, st.Money)
	assert.Equal(t, 4, st.UnlockedSlots)
	assert.Equal(t, 10.0, st.TicketPrice)
	assert.Empty(t, st.Slots)
	assert.Equal(t, clock.Now(), st.StartedAt)
	assert.False(t, st.GameOver)
}

func TestBuildUpgradeDemolishFlow(t *testing.T) {
	e, _ := testEngine(t)

	built := e.Build(0, "carousel")
	require.True(t, built.OK)
	assert.Equal(t, 3000.0, built.Cost)
	assert.Equal(t, 7000.0, built.Money)
	assert.Equal(t, "carousel", built.Slot.BuildingID)
	assert.Equal(t, 1, built.Slot.Level)

	up := e.Upgrade(built.Slot.ID)
	require.True(t, up.OK)
	assert.Equal(t, 2, up.Level)
	assert.Equal(t, 3450.0, up.Cost)
	assert.Equal(t, 3550.0, up.Money)

	demo := e.Demolish(built.Slot.ID)
	require.True(t, demo.OK)
	// Half of the 3000 + 3450 invested.
	assert.Equal(t, 3225.0, demo.Refund)
	assert.Equal(t, 6775.0, demo.Money)
	assert.Empty(t, e.State().Slots)
}

func TestRejectedCommandLeavesStateUntouched(t *testing.T) {
	e, _ := testEngine(t)
	before := e.State()

	res := e.Build(0, "drop_tower") // 200k, unaffordable
	assert.False(t, res.OK)
	assert.Equal(t, before.Money, res.Money)
	assert.Equal(t, before, e.State())

	assert.False(t, e.Upgrade("no_such_slot").OK)
	assert.False(t, e.Demolish("no_such_slot").OK)
	assert.False(t, e.BuyPerk("park_rank_3").OK)
	assert.Equal(t, before, e.State())
}

func TestSetTicketPriceClampsToBand(t *testing.T) {
	e, _ := testEngine(t)

	assert.Equal(t, 100.0, e.SetTicketPrice(5000).Price)
	assert.Equal(t, 1.0, e.SetTicketPrice(-3).Price)
	assert.Equal(t, 42.0, e.SetTicketPrice(42).Price)
}

func TestStepAppliesMilestoneRewardExactlyOnce(t *testing.T) {
	cat := catalog.New(
		[]catalog.BuildingDefinition{
			{
				ID: "mega", Name: "Mega", Tier: catalog.TierBasic,
				BaseCost: 1000, MaintenanceCost: 1,
				Stats: catalog.RideStats{Prestige: 400, RideCapacity: 400},
			},
		},
		catalog.Default().Milestones(),
		nil,
	)
	clock := NewFakeClock(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))
	e := NewEngine(Options{Catalog: cat, Clock: clock})
	require.True(t, e.Build(0, "mega").OK)

	var sawFirst bool
	firstCount := 0
	for i := 0; i < 120; i++ {
		before := e.State().Money
		res := e.Step(1)
		after := e.State().Money

		for _, m := range res.Unlocked {
			if m.ID == "peak_guests_100" {
				firstCount++
				sawFirst = true
				assert.Equal(t, 5000.0, res.RewardMoney)
				// Money moved by the tick's net change plus the reward.
				assert.InDelta(t, before+res.Outcome.NetChange+res.RewardMoney, after, 1e-9)
			}
		}
		if e.State().Guests >= 150 {
			break
		}
	}

	require.True(t, sawFirst, "park never crossed 100 guests")
	assert.Equal(t, 1, firstCount)

	// Further steps never re-trigger a completed milestone.
	for i := 0; i < 20; i++ {
		res := e.Step(1)
		for _, m := range res.Unlocked {
			assert.NotEqual(t, "peak_guests_100", m.ID)
		}
	}

	progress := e.MilestoneProgress()
	assert.Contains(t, progress.Completed, "peak_guests_100")
	assert.GreaterOrEqual(t, progress.PeakGuests, 100.0)
}

func TestBankruptTickGrantsNoMilestoneReward(t *testing.T) {
	// Upkeep-heavy building with no revenue: the park is insolvent on
	// the next tick even though its crowd already clears the first
	// milestone threshold.
	cat := catalog.New(
		[]catalog.BuildingDefinition{{
			ID: "money_pit", Name: "Money Pit", Tier: catalog.TierBasic,
			BaseCost: 100, MaintenanceCost: 20,
			Stats: catalog.InfrastructureStats{ComfortCapacity: 1},
		}},
		catalog.Default().Milestones(),
		nil,
	)
	repo := save.NewMemoryRepo()
	clock := NewFakeClock(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))
	e := NewEngine(Options{Catalog: cat, Repo: repo, Clock: clock})

	st := park.NewState(config.Default(), clock.Now())
	st.Slots = []park.Slot{{ID: "s0", Index: 0, BuildingID: "money_pit", Level: 1}}
	st.Money = 10
	st.Guests = 110
	require.NoError(t, repo.Save(context.Background(),
		save.NewSnapshot(st, milestone.NewProgress(), clock.Now())))
	ok, err := e.Load(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	res := e.Step(2.0)
	require.True(t, res.Outcome.WentBankrupt)
	assert.Empty(t, res.Unlocked)
	assert.Zero(t, res.RewardMoney)

	got := e.State()
	assert.True(t, got.GameOver)
	assert.Equal(t, 0.0, got.Money)
	assert.Equal(t, 0.0, got.LifetimeEarnings)
	assert.Empty(t, e.MilestoneProgress().Completed)

	// The frozen park never collects the reward afterwards either.
	after := e.Step(1)
	assert.Empty(t, after.Unlocked)
	assert.Equal(t, 0.0, e.State().Money)
}

func TestMilestoneRewardCountsTowardLifetimeEarnings(t *testing.T) {
	repo := save.NewMemoryRepo()
	clock := NewFakeClock(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))
	e := NewEngine(Options{Repo: repo, Clock: clock})

	st := park.NewState(config.Default(), clock.Now())
	st.Guests = 110
	require.NoError(t, repo.Save(context.Background(),
		save.NewSnapshot(st, milestone.NewProgress(), clock.Now())))
	ok, err := e.Load(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	res := e.Step(0)
	require.Len(t, res.Unlocked, 1)
	assert.Equal(t, 5000.0, res.RewardMoney)

	got := e.State()
	assert.Equal(t, 15000.0, got.Money)
	assert.Equal(t, 5000.0, got.LifetimeEarnings)
}

func TestPendingUnlocksDrainThroughEngine(t *testing.T) {
	repo := save.NewMemoryRepo()
	clock := NewFakeClock(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))
	e := NewEngine(Options{Repo: repo, Clock: clock})

	st := park.NewState(config.Default(), clock.Now())
	st.Guests = 300
	require.NoError(t, repo.Save(context.Background(),
		save.NewSnapshot(st, milestone.NewProgress(), clock.Now())))
	_, err := e.Load(context.Background())
	require.NoError(t, err)

	e.Step(0)
	pending := e.PendingUnlocks()
	require.Len(t, pending, 2)
	assert.Empty(t, e.PendingUnlocks())
}

func TestSaveNowStampsAndPersists(t *testing.T) {
	repo := save.NewMemoryRepo()
	clock := NewFakeClock(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))
	e := NewEngine(Options{Repo: repo, Clock: clock})
	require.True(t, e.Build(1, "snack_cart").OK)

	clock.Advance(5 * time.Minute)
	require.NoError(t, e.SaveNow(context.Background()))

	snap, ok, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, clock.Now(), snap.Park.LastSavedAt)
	assert.Equal(t, clock.Now(), snap.SavedAt)
	require.Len(t, snap.Park.Slots, 1)
	assert.Equal(t, "snack_cart", snap.Park.Slots[0].BuildingID)
}

func TestLoadNormalizesOldSave(t *testing.T) {
	repo := save.NewMemoryRepo()
	clock := NewFakeClock(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))

	// A save written before ticket pricing and perks existed.
	require.NoError(t, repo.Save(context.Background(), save.Snapshot{
		Park: park.State{Money: 7777, Guests: 12},
	}))

	e := NewEngine(Options{Repo: repo, Clock: clock})
	ok, err := e.Load(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	st := e.State()
	assert.Equal(t, 7777.0, st.Money)
	assert.Equal(t, 10.0, st.TicketPrice)
	assert.Equal(t, 4, st.UnlockedSlots)
	assert.NotNil(t, st.Perks)
}

func TestLoadWithoutSaveKeepsFreshState(t *testing.T) {
	e, _ := testEngine(t)
	ok, err := e.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 10000.0, e.State().Money)
}

func TestReconcileOfflineSettlesGap(t *testing.T) {
	repo := save.NewMemoryRepo()
	clock := NewFakeClock(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))
	e := NewEngine(Options{Repo: repo, Clock: clock})
	require.True(t, e.Build(0, "carousel").OK)
	require.True(t, e.Build(1, "snack_cart").OK)
	require.True(t, e.Build(2, "restroom").OK)
	e.Step(60) // let guests arrive before the save
	require.NoError(t, e.SaveNow(context.Background()))
	saved := e.State()
	require.Greater(t, saved.Guests, 0.0)

	clock.Advance(time.Hour)
	res := e.ReconcileOffline()

	assert.Equal(t, 3600.0, res.Outcome.Elapsed)
	st := e.State()
	assert.Equal(t, clock.Now(), st.LastSavedAt)
	assert.Equal(t, res.Outcome.Equilibrium, st.Guests)
	assert.Greater(t, st.Money, saved.Money)
}

func TestReconcileOfflineBankruptcyGrantsNoReward(t *testing.T) {
	cat := catalog.New(
		[]catalog.BuildingDefinition{{
			ID: "money_pit", Name: "Money Pit", Tier: catalog.TierBasic,
			BaseCost: 100, MaintenanceCost: 20,
			Stats: catalog.InfrastructureStats{ComfortCapacity: 1},
		}},
		catalog.Default().Milestones(),
		nil,
	)
	repo := save.NewMemoryRepo()
	clock := NewFakeClock(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))
	e := NewEngine(Options{Catalog: cat, Repo: repo, Clock: clock})

	st := park.NewState(config.Default(), clock.Now())
	st.Slots = []park.Slot{{ID: "s0", Index: 0, BuildingID: "money_pit", Level: 1}}
	st.Money = 10
	st.Guests = 110
	require.NoError(t, repo.Save(context.Background(),
		save.NewSnapshot(st, milestone.NewProgress(), clock.Now())))
	_, err := e.Load(context.Background())
	require.NoError(t, err)

	clock.Advance(time.Hour)
	res := e.ReconcileOffline()

	require.True(t, res.Outcome.WentBankrupt)
	assert.Empty(t, res.Unlocked)
	assert.Zero(t, res.RewardMoney)
	got := e.State()
	assert.True(t, got.GameOver)
	assert.Equal(t, 0.0, got.Money)
	assert.Equal(t, 0.0, got.LifetimeEarnings)
	assert.Empty(t, e.MilestoneProgress().Completed)
}

func TestResetStartsOver(t *testing.T) {
	repo := save.NewMemoryRepo()
	clock := NewFakeClock(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))
	e := NewEngine(Options{Repo: repo, Clock: clock})
	require.True(t, e.Build(0, "gift_shop").OK)
	require.NoError(t, e.SaveNow(context.Background()))

	require.NoError(t, e.Reset(context.Background()))

	st := e.State()
	assert.Equal(t, 10000.0, st.Money)
	assert.Empty(t, st.Slots)
	assert.Empty(t, e.MilestoneProgress().Completed)

	snap, ok, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, snap.Park.Slots)
}

func TestCommandsEmitTelemetry(t *testing.T) {
	events := telemetry.NewMemoryRepository()
	clock := NewFakeClock(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))
	e := NewEngine(Options{Clock: clock, Telemetry: events})

	built := e.Build(0, "carousel")
	require.True(t, built.OK)
	require.True(t, e.Upgrade(built.Slot.ID).OK)
	require.True(t, e.Demolish(built.Slot.ID).OK)
	e.Build(0, "drop_tower") // rejected, must not record

	got, err := events.GetEvents(time.Time{}, nil)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, telemetry.EventBuildingBuilt, got[0].Type)
	assert.Equal(t, telemetry.EventBuildingUpgraded, got[1].Type)
	assert.Equal(t, telemetry.EventBuildingDemolished, got[2].Type)
	assert.Equal(t, clock.Now(), got[0].Timestamp)
}

func TestRunPersistsOnShutdown(t *testing.T) {
	repo := save.NewMemoryRepo()
	e := NewEngine(Options{Repo: repo})
	require.True(t, e.Build(0, "carousel").OK)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	require.NoError(t, e.Run(ctx, 5*time.Millisecond, 20*time.Millisecond))

	snap, ok, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, snap.Park.Slots, 1)
}
