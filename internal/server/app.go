package server

import (
	"log"
	"time"

	"ThermalChase/internal/game"
	"ThermalChase/internal/matchlog"
)

// StartApp wires the hub, match log, and HTTP server. Blocks forever.
func StartApp(cfg AppConfig) {
	var sink game.EventSink
	if cfg.MatchLogDir != "" {
		lg := matchlog.New(cfg.MatchLogDir, "match")
		defer lg.Close()
		sink = lg
	}

	hub := game.NewHub(cfg.Tuning, sink)

	go func() {
		t := time.NewTicker(60 * time.Second)
		defer t.Stop()
		for range t.C {
			hub.CleanupEmptyRooms()
		}
	}()

	log.Printf("listening on %s (max %d clients/room)", cfg.Addr, cfg.Tuning.MaxPlayers)
	startServer(hub, cfg.Addr)
}
