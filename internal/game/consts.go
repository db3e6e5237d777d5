package game

const (
	TickHz           = 60.0 // server simulation rate
	ScreenW          = 800.0
	ScreenH          = 600.0
	PlayerSpeed      = 100.0 // px/s, deliberately slower than bullets
	BulletSpeed      = 400.0 // px/s
	EnemySpeed       = 35.0  // px/s, shared formation sweep
	EnemyBulletSpeed = 250.0 // px/s
	FormationSpeed   = 80.0  // px/s while flying in from spawn
	PlayerEdgeMargin = 50.0  // play field inset for players and formation
	FireCooldownMs   = 200
	EnemyFireGapMs   = 500 // global gate between any two enemy shots
	EnemyFireChance  = 0.1
	InvincibleMs     = 2000
	WaveDelayMs      = 2000
	RoundOverGraceMs = 5000
	MinTickDeltaMs   = 16.0 // dt clamp bounds, see advanceTick
	MaxTickDeltaMs   = 34.0
	StartingLives    = 3
	RoomMaxPlayers   = 4
	EnemyBottomY     = 500.0 // formed enemy past this line loses the round
	StuckEnemyFloorY = 700.0 // garbage collection thresholds for runaway enemies
	StuckEnemyCeilY  = -200.0
	BaseWaveEnemies  = 32
	MaxWaveEnemies   = 48
	BarrierHitRadius = 8.0
	PlayerHitRadius  = 20.0
	EffectDurationMs = 100
	ExplosionLifeMs  = 500
)

// Params bundles the tunables a deployment may override through the config
// file or CLI flags. Zero fields fall back to the package defaults.
type Params struct {
	TickHz           float64
	PlayerSpeed      float64
	BulletSpeed      float64
	EnemySpeed       float64
	EnemyBulletSpeed float64
	FireCooldownMs   int64
	EnemyFireGapMs   int64
	EnemyFireChance  float64
	InvincibleMs     int64
	WaveDelayMs      int64
	RoundOverGraceMs int64
}

func DefaultParams() Params {
	return Params{
		TickHz:           TickHz,
		PlayerSpeed:      PlayerSpeed,
		BulletSpeed:      BulletSpeed,
		EnemySpeed:       EnemySpeed,
		EnemyBulletSpeed: EnemyBulletSpeed,
		FireCooldownMs:   FireCooldownMs,
		EnemyFireGapMs:   EnemyFireGapMs,
		EnemyFireChance:  EnemyFireChance,
		InvincibleMs:     InvincibleMs,
		WaveDelayMs:      WaveDelayMs,
		RoundOverGraceMs: RoundOverGraceMs,
	}
}

// SanitizeParams clamps values that would break the simulation loop.
func SanitizeParams(p Params) Params {
	def := DefaultParams()
	if p.TickHz <= 0 || p.TickHz > 240 {
		p.TickHz = def.TickHz
	}
	if p.PlayerSpeed <= 0 {
		p.PlayerSpeed = def.PlayerSpeed
	}
	if p.BulletSpeed <= 0 {
		p.BulletSpeed = def.BulletSpeed
	}
	if p.EnemySpeed <= 0 {
		p.EnemySpeed = def.EnemySpeed
	}
	if p.EnemyBulletSpeed <= 0 {
		p.EnemyBulletSpeed = def.EnemyBulletSpeed
	}
	if p.FireCooldownMs <= 0 {
		p.FireCooldownMs = def.FireCooldownMs
	}
	if p.EnemyFireGapMs <= 0 {
		p.EnemyFireGapMs = def.EnemyFireGapMs
	}
	if p.EnemyFireChance <= 0 || p.EnemyFireChance > 1 {
		p.EnemyFireChance = def.EnemyFireChance
	}
	if p.InvincibleMs <= 0 {
		p.InvincibleMs = def.InvincibleMs
	}
	if p.WaveDelayMs <= 0 {
		p.WaveDelayMs = def.WaveDelayMs
	}
	if p.RoundOverGraceMs <= 0 {
		p.RoundOverGraceMs = def.RoundOverGraceMs
	}
	return p
}
