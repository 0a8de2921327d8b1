package serverapp

import (
	"errors"
	"log"
	"math/rand"
	"net/http"
	"time"

	"idlepark/internal/config"
	"idlepark/internal/game"
	"idlepark/internal/httpmw"
	"idlepark/internal/notify"
	"idlepark/internal/server"
	"idlepark/internal/telemetry"
)

type Options struct {
	Config    *config.Config
	Engine    *game.Engine
	Hub       *server.Hub
	Telemetry telemetry.Repository
	Logger    *log.Logger
}

// NewHandler assembles the full HTTP surface: API routes, the admin
// page, and the middleware chain. The engine must already be loaded;
// this only wires handlers around it.
func NewHandler(opts Options) (http.Handler, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Engine == nil {
		return nil, errors.New("engine is required")
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	mux := http.NewServeMux()
	rr := &server.RouteRegistry{}

	app := &server.App{
		Engine:    opts.Engine,
		Feed:      notify.NewFeed(rand.New(rand.NewSource(time.Now().UnixNano()))),
		Hub:       opts.Hub,
		Telemetry: opts.Telemetry,
		Logger:    opts.Logger,
		BootNow:   time.Now(),
	}

	server.RegisterAPIRoutes(mux, rr, app)
	server.RegisterAdminUI(mux, rr, opts.Config.Server.Addr)

	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		// Ready once the engine answers; a wedged engine mutex would
		// hang here and trip the probe timeout.
		_ = opts.Engine.Stats()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	return httpmw.Chain(
		mux,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
	), nil
}
