package main

import (
	"flag"
	"math"

	"DeepInvaders/internal/server"
)

func main() {
	addr := flag.String("addr", ":8080", "address to listen on (e.g., 127.0.0.1:8080)")
	configPath := flag.String("game-config", "configs/game.json", "path to simulation tuning JSON")
	debug := flag.Bool("debug", false, "enable debug logging")
	tickHz := flag.Float64("tick-hz", math.NaN(), "override simulation tick rate")
	playerSpeed := flag.Float64("player-speed", math.NaN(), "override player speed in px/s")
	bulletSpeed := flag.Float64("bullet-speed", math.NaN(), "override player bullet speed in px/s")
	enemySpeed := flag.Float64("enemy-speed", math.NaN(), "override formation sweep speed in px/s")
	enemyBulletSpeed := flag.Float64("enemy-bullet-speed", math.NaN(), "override enemy bullet speed in px/s")
	fireCooldown := flag.Int64("fire-cooldown-ms", -1, "override player fire cooldown in ms")
	enemyFireGap := flag.Int64("enemy-fire-gap-ms", -1, "override global enemy fire gap in ms")
	enemyFireChance := flag.Float64("enemy-fire-chance", math.NaN(), "override per-attempt enemy fire chance (0-1)")
	invincibleMs := flag.Int64("invincible-ms", -1, "override post-hit invincibility window in ms")
	waveDelay := flag.Int64("wave-delay-ms", -1, "override delay between waves in ms")
	roundOverGrace := flag.Int64("round-over-grace-ms", -1, "override grace window after a round ends in ms")
	flag.Parse()

	cfg := server.DefaultAppConfig()
	cfg.ConfigPath = *configPath
	cfg.Debug = *debug

	var overrides server.ParamOverrides

	if !math.IsNaN(*tickHz) {
		val := *tickHz
		overrides.TickHz = &val
	}
	if !math.IsNaN(*playerSpeed) {
		val := *playerSpeed
		overrides.PlayerSpeed = &val
	}
	if !math.IsNaN(*bulletSpeed) {
		val := *bulletSpeed
		overrides.BulletSpeed = &val
	}
	if !math.IsNaN(*enemySpeed) {
		val := *enemySpeed
		overrides.EnemySpeed = &val
	}
	if !math.IsNaN(*enemyBulletSpeed) {
		val := *enemyBulletSpeed
		overrides.EnemyBulletSpeed = &val
	}
	if *fireCooldown >= 0 {
		val := *fireCooldown
		overrides.FireCooldownMs = &val
	}
	if *enemyFireGap >= 0 {
		val := *enemyFireGap
		overrides.EnemyFireGapMs = &val
	}
	if !math.IsNaN(*enemyFireChance) {
		val := *enemyFireChance
		overrides.EnemyFireChance = &val
	}
	if *invincibleMs >= 0 {
		val := *invincibleMs
		overrides.InvincibleMs = &val
	}
	if *waveDelay >= 0 {
		val := *waveDelay
		overrides.WaveDelayMs = &val
	}
	if *roundOverGrace >= 0 {
		val := *roundOverGrace
		overrides.RoundOverGraceMs = &val
	}

	cfg.Overrides = overrides

	server.StartApp(*addr, cfg)
}
