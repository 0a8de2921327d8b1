package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idlepark/internal/config"
	"idlepark/internal/game"
	"idlepark/internal/milestone"
	"idlepark/internal/notify"
	"idlepark/internal/park"
	"idlepark/internal/save"
)

type testApp struct {
	app   *App
	mux   *http.ServeMux
	clock *game.FakeClock
	repo  *save.MemoryRepo
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	clock := game.NewFakeClock(time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC))
	repo := save.NewMemoryRepo()
	engine := game.NewEngine(game.Options{Repo: repo, Clock: clock})

	app := &App{
		Engine:  engine,
		Feed:    notify.NewFeed(rand.New(rand.NewSource(7))),
		Logger:  log.Default(),
		BootNow: clock.Now(),
	}
	mux := http.NewServeMux()
	rr := &RouteRegistry{}
	RegisterAPIRoutes(mux, rr, app)
	return &testApp{app: app, mux: mux, clock: clock, repo: repo}
}

func (a *testApp) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	a.mux.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestStateEndpoint(t *testing.T) {
	a := newTestApp(t)

	rec := a.do(t, "GET", "/api/state", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	st := decode[park.State](t, rec)
	assert.Equal(t, 10000.0, st.Money)
	assert.Equal(t, 4, st.UnlockedSlots)
}

func TestBuildUpgradeDemolishOverHTTP(t *testing.T) {
	a := newTestApp(t)

	rec := a.do(t, "POST", "/api/build", map[string]any{
		"slot_index": 0, "building_id": "carousel",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	built := decode[game.BuildResult](t, rec)
	require.True(t, built.OK)
	assert.Equal(t, 7000.0, built.Money)

	// Same slot again is occupied.
	rec = a.do(t, "POST", "/api/build", map[string]any{
		"slot_index": 0, "building_id": "snack_cart",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, decode[game.BuildResult](t, rec).OK)

	rec = a.do(t, "POST", "/api/upgrade", map[string]string{"slot_id": built.Slot.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	up := decode[game.UpgradeResult](t, rec)
	assert.Equal(t, 2, up.Level)

	rec = a.do(t, "POST", "/api/demolish", map[string]string{"slot_id": built.Slot.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	demo := decode[game.DemolishResult](t, rec)
	assert.Equal(t, 3225.0, demo.Refund)
}

func TestBuildRejectsInvalidBody(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest("POST", "/api/build", bytes.NewBufferString("{nope"))
	rec := httptest.NewRecorder()
	a.mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTicketPriceClampsOverHTTP(t *testing.T) {
	a := newTestApp(t)

	rec := a.do(t, "POST", "/api/ticket-price", map[string]any{"price": 9999})
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[game.TicketPriceResult](t, rec)
	assert.Equal(t, 100.0, res.Price)
}

func TestUnlockSlotRejectedWhenUnderfunded(t *testing.T) {
	a := newTestApp(t)

	rec := a.do(t, "POST", "/api/slots/unlock", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	res := decode[game.UnlockSlotResult](t, rec)
	assert.False(t, res.OK)
	assert.Equal(t, 4, res.UnlockedSlots)
}

func TestCatalogEndpoints(t *testing.T) {
	a := newTestApp(t)

	rec := a.do(t, "GET", "/api/catalog/buildings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"carousel"`)

	rec = a.do(t, "GET", "/api/catalog/perks", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"park_rank_2"`)

	rec = a.do(t, "GET", "/api/catalog/milestones", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"peak_guests_100"`)
}

func TestMilestoneAckDrainsOnce(t *testing.T) {
	a := newTestApp(t)

	st := park.NewState(config.Default(), a.clock.Now())
	st.Guests = 120
	require.NoError(t, a.repo.Save(context.Background(),
		save.NewSnapshot(st, milestone.NewProgress(), a.clock.Now())))
	_, err := a.app.Engine.Load(context.Background())
	require.NoError(t, err)
	a.app.Engine.Step(0)

	rec := a.do(t, "POST", "/api/milestones/ack", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	first := decode[[]json.RawMessage](t, rec)
	assert.Len(t, first, 1)

	rec = a.do(t, "POST", "/api/milestones/ack", nil)
	second := decode[[]json.RawMessage](t, rec)
	assert.Empty(t, second)
}

func TestFeedEndpoint(t *testing.T) {
	a := newTestApp(t)

	rec := a.do(t, "GET", "/api/feed", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	msg := decode[notify.Message](t, rec)
	assert.NotEmpty(t, msg.Text)
	assert.NotEmpty(t, msg.Tone)
}

func TestResetOverHTTP(t *testing.T) {
	a := newTestApp(t)
	require.True(t, a.app.Engine.Build(0, "carousel").OK)

	rec := a.do(t, "POST", "/api/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	st := decode[park.State](t, rec)
	assert.Equal(t, 10000.0, st.Money)
	assert.Empty(t, st.Slots)
}

func TestHealthz(t *testing.T) {
	a := newTestApp(t)

	rec := a.do(t, "GET", "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "idlepark", body["service"])
}
