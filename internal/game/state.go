package game

// EnemyType identifies one of the four enemy tiers.
type EnemyType string

const (
	EnemyWasp        EnemyType = "wasp"
	EnemyJellyLarge  EnemyType = "jellyfish-large"
	EnemyJellyMedium EnemyType = "jellyfish-medium"
	EnemyJellyTiny   EnemyType = "jellyfish-tiny"
)

// MovePattern tags select the formed-state motion of an enemy.
type MovePattern string

const (
	PatternZigzag   MovePattern = "zigzag"
	PatternSineWave MovePattern = "sineWave"
	PatternStandard MovePattern = "standard"
	PatternSwooping MovePattern = "swooping"
)

// HitboxRadius returns the collision radius used when player bullets test
// against this enemy type.
func (t EnemyType) HitboxRadius() float64 {
	switch t {
	case EnemyWasp:
		return 25
	case EnemyJellyLarge:
		return 30
	case EnemyJellyMedium:
		return 20
	default:
		return 15
	}
}

// PlayerState is the per-round snapshot of a room member. Score and lives
// written here are mirrored back onto the Room's Player record so they
// survive round teardown.
type PlayerState struct {
	ID         string `json:"id"`
	Position   Vec2   `json:"position"`
	Lives      int    `json:"lives"`
	Score      int    `json:"score"`
	Invincible bool   `json:"invincible"`
}

type Bullet struct {
	ID       string `json:"id"`
	Position Vec2   `json:"position"`
	Velocity Vec2   `json:"velocity"`
	// PlayerID owns player bullets, EnemyID owns enemy bullets.
	PlayerID string `json:"playerId,omitempty"`
	EnemyID  string `json:"enemyId,omitempty"`
}

type Enemy struct {
	ID               string      `json:"id"`
	Type             EnemyType   `json:"type"`
	Position         Vec2        `json:"position"`
	OriginalPosition Vec2        `json:"originalPosition"`
	TargetPosition   Vec2        `json:"targetPosition"`
	Health           int         `json:"health"`
	Points           int         `json:"points"`
	MovePattern      MovePattern `json:"movePattern"`
	MoveTimer        float64     `json:"moveTimer"`
	LastShot         int64       `json:"lastShot"`
	WaveNumber       int         `json:"waveNumber"`
	FormationReached bool        `json:"formationReached"`
}

type BarrierPiece struct {
	ID         string  `json:"id"`
	Position   Vec2    `json:"position"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Durability int     `json:"durability"`
}

// HitEffect is a transient visual descriptor; the slice is cleared after
// every broadcast.
type HitEffect struct {
	ID       string `json:"id"`
	TargetID string `json:"targetId"`
	Type     string `json:"type"`
	Duration int64  `json:"duration"`
}

// Explosion descriptors decay by TimeLeft inside the update loop.
type Explosion struct {
	ID       string  `json:"id"`
	Position Vec2    `json:"position"`
	Type     string  `json:"type,omitempty"`
	TimeLeft float64 `json:"timeLeft"`
}

// Winner values for GameState.Winner.
const (
	WinnerEnemies = "enemies"
	WinnerPlayers = "players"
)

// GameState is the authoritative per-round document, serialized in full to
// every room member each tick.
type GameState struct {
	Players        []*PlayerState  `json:"players"`
	Bullets        []*Bullet       `json:"bullets"`
	EnemyBullets   []*Bullet       `json:"enemyBullets"`
	Enemies        []*Enemy        `json:"enemies"`
	Barriers       []*BarrierPiece `json:"barriers"`
	EnemyDirection float64         `json:"enemyDirection"`
	LastEnemyShot  int64           `json:"lastEnemyShot"`
	CurrentWave    int             `json:"currentWave"`
	WaveTransition bool            `json:"waveTransition"`
	GameOver       bool            `json:"gameOver"`
	Winner         string          `json:"winner,omitempty"`
	HitEffects     []HitEffect     `json:"hitEffects,omitempty"`
	Explosions     []Explosion     `json:"explosions,omitempty"`
	Timestamp      int64           `json:"timestamp"`
}

func (gs *GameState) playerByID(id string) *PlayerState {
	for _, p := range gs.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (gs *GameState) addHitEffect(targetID, kind string) {
	gs.HitEffects = append(gs.HitEffects, HitEffect{
		ID:       RandId("hit"),
		TargetID: targetID,
		Type:     kind,
		Duration: EffectDurationMs,
	})
}

func (gs *GameState) addExplosion(pos Vec2, kind string) {
	gs.Explosions = append(gs.Explosions, Explosion{
		ID:       RandId("explosion"),
		Position: pos,
		Type:     kind,
		TimeLeft: ExplosionLifeMs,
	})
}

func (gs *GameState) removeEnemy(id string) {
	for i, e := range gs.Enemies {
		if e.ID == id {
			gs.Enemies = append(gs.Enemies[:i], gs.Enemies[i+1:]...)
			return
		}
	}
}

func (gs *GameState) removeBarrier(id string) {
	for i, b := range gs.Barriers {
		if b.ID == id {
			gs.Barriers = append(gs.Barriers[:i], gs.Barriers[i+1:]...)
			return
		}
	}
}

// ClearTransientEffects drops hit effects after they have been broadcast
// once. Explosions are aged out by advanceTick instead.
func (gs *GameState) ClearTransientEffects() {
	gs.HitEffects = nil
}
