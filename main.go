package main

import (
	"flag"
	"log"

	"ThermalChase/internal/server"
)

func main() {
	addr := flag.String("addr", "", "listen address (overrides config file)")
	worldConfig := flag.String("world-config", "configs/world.yaml", "path to the world config file")
	matchLog := flag.String("match-log", "", "directory for match event logs (overrides config file)")
	orbCountdownMs := flag.Int64("orb-countdown-ms", -1, "orb activation countdown in ms")
	reseedMs := flag.Int64("reseed-ms", -1, "thermal reseed interval in ms")
	stealCooldownMs := flag.Int64("steal-cooldown-ms", -1, "orb steal cooldown in ms")
	maxClients := flag.Int("max-clients", -1, "max clients per room")
	flag.Parse()

	cfg, err := server.LoadAppConfig(*worldConfig, server.DefaultAppConfig())
	if err != nil {
		log.Printf("world config: %v (using defaults)", err)
		cfg = server.DefaultAppConfig()
	}

	var over server.TuningOverrides
	if *addr != "" {
		over.Addr = addr
	}
	if *matchLog != "" {
		over.MatchLogDir = matchLog
	}
	if *orbCountdownMs >= 0 {
		over.OrbCountdownMs = orbCountdownMs
	}
	if *reseedMs >= 0 {
		over.ReseedIntervalMs = reseedMs
	}
	if *stealCooldownMs >= 0 {
		over.StealCooldownMs = stealCooldownMs
	}
	if *maxClients >= 0 {
		over.MaxClients = maxClients
	}
	cfg = over.Apply(cfg)

	server.StartApp(cfg)
}
