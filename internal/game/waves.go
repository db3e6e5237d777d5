package game

import (
	"fmt"
	"math"
	"math/rand"
)

// enemyArchetype holds the base stats for one enemy tier before wave scaling.
type enemyArchetype struct {
	Type            EnemyType
	Health          int
	Points          int
	MovePattern     MovePattern
	BaseProbability float64
}

var enemyArchetypes = []enemyArchetype{
	{EnemyJellyTiny, 1, 10, PatternSwooping, 0.4},
	{EnemyJellyMedium, 2, 20, PatternStandard, 0.3},
	{EnemyJellyLarge, 3, 30, PatternSineWave, 0.2},
	{EnemyWasp, 1, 50, PatternZigzag, 0.1},
}

type formation string

const (
	formationGrid    formation = "grid"
	formationDiamond formation = "diamond"
	formationColumns formation = "columns"
	formationRandom  formation = "random"
)

var formations = []formation{formationGrid, formationDiamond, formationRandom, formationColumns}

// WaveResult is returned by CheckWaveComplete when a new wave should start.
type WaveResult struct {
	WaveComplete bool
	NewEnemies   []*Enemy
	WaveNumber   int
	DelayMs      int64
}

// WaveManager produces enemy rosters per wave and guards against
// double-advancing while a transition delay is pending. It is owned by a
// single Room and relies on the room's lock for mutual exclusion.
type WaveManager struct {
	CurrentWave   int
	Transitioning bool
	DelayMs       int64
	rng           *rand.Rand
}

func NewWaveManager(rng *rand.Rand) *WaveManager {
	return &WaveManager{CurrentWave: 1, DelayMs: WaveDelayMs, rng: rng}
}

// GenerateWave builds the roster for the manager's current wave: the fixed
// classic layout for wave 1, procedural formations afterwards.
func (w *WaveManager) GenerateWave() []*Enemy {
	if w.CurrentWave == 1 {
		return w.classicWave1()
	}

	count := w.enemyCount()
	positions := w.formationPositions(w.pickFormation(), count)

	enemies := make([]*Enemy, 0, count)
	for i := 0; i < count; i++ {
		arch := w.pickArchetype()
		target := positions[i]
		enemies = append(enemies, &Enemy{
			ID:   fmt.Sprintf("%s-%d-%d", arch.Type, w.CurrentWave, i),
			Type: arch.Type,
			// Spawn above the formation slot so the fly-in is visible.
			Position:         Vec2{X: target.X, Y: target.Y - 100},
			OriginalPosition: target,
			TargetPosition:   target,
			Health:           w.scaledHealth(arch.Health),
			Points:           w.scaledPoints(arch.Points),
			MovePattern:      arch.MovePattern,
			MoveTimer:        float64(i) * 50,
			WaveNumber:       w.CurrentWave,
			FormationReached: false,
		})
	}
	return enemies
}

// classicWave1 reproduces the original four-row, 32-enemy opening layout.
// Each row spawns off-screen above its formation line.
func (w *WaveManager) classicWave1() []*Enemy {
	rows := []struct {
		arch    enemyArchetype
		spawnY  float64
		targetY float64
		stagger float64
	}{
		{enemyArchetypes[3], 20, 80, 100},   // wasps
		{enemyArchetypes[2], -10, 150, 100}, // large jellyfish
		{enemyArchetypes[1], -40, 220, 0},   // medium jellyfish
		{enemyArchetypes[0], -70, 290, 150}, // tiny jellyfish
	}

	var enemies []*Enemy
	for _, row := range rows {
		for i := 0; i < 8; i++ {
			x := 100 + float64(i)*80
			enemies = append(enemies, &Enemy{
				ID:               fmt.Sprintf("%s-1-%d", row.arch.Type, i),
				Type:             row.arch.Type,
				Position:         Vec2{X: x, Y: row.spawnY},
				OriginalPosition: Vec2{X: x, Y: row.targetY},
				TargetPosition:   Vec2{X: x, Y: row.targetY},
				Health:           row.arch.Health,
				Points:           row.arch.Points,
				MovePattern:      row.arch.MovePattern,
				MoveTimer:        float64(i) * row.stagger,
				WaveNumber:       1,
				FormationReached: false,
			})
		}
	}
	return enemies
}

// CheckWaveComplete advances to the next wave when the field is clear and no
// transition is already pending. The Transitioning guard stays set for the
// returned delay; the controller clears it when it installs the new roster.
func (w *WaveManager) CheckWaveComplete(enemiesLeft int) WaveResult {
	if enemiesLeft > 0 || w.Transitioning {
		return WaveResult{WaveComplete: false, WaveNumber: w.CurrentWave}
	}
	w.Transitioning = true
	w.CurrentWave++
	return WaveResult{
		WaveComplete: true,
		NewEnemies:   w.GenerateWave(),
		WaveNumber:   w.CurrentWave,
		DelayMs:      w.DelayMs,
	}
}

func (w *WaveManager) Reset() {
	w.CurrentWave = 1
	w.Transitioning = false
}

func (w *WaveManager) enemyCount() int {
	count := BaseWaveEnemies + int(float64(w.CurrentWave-1)*1.5)
	if count > MaxWaveEnemies {
		count = MaxWaveEnemies
	}
	return count
}

// pickArchetype samples the type table with wave-shifted weights: wasps and
// large jellyfish grow more common, tiny jellyfish rarer, clamped to
// [0.05, 0.6].
func (w *WaveManager) pickArchetype() enemyArchetype {
	weights := make([]float64, len(enemyArchetypes))
	total := 0.0
	for i, arch := range enemyArchetypes {
		p := arch.BaseProbability
		switch arch.Type {
		case EnemyWasp:
			p += float64(w.CurrentWave) * 0.02
		case EnemyJellyLarge:
			p += float64(w.CurrentWave) * 0.015
		case EnemyJellyTiny:
			p -= float64(w.CurrentWave) * 0.01
		}
		p = Clamp(p, 0.05, 0.6)
		weights[i] = p
		total += p
	}

	roll := w.rng.Float64() * total
	for i, arch := range enemyArchetypes {
		roll -= weights[i]
		if roll <= 0 {
			return arch
		}
	}
	return enemyArchetypes[0]
}

func (w *WaveManager) pickFormation() formation {
	return formations[w.rng.Intn(len(formations))]
}

func (w *WaveManager) formationPositions(f formation, count int) []Vec2 {
	const (
		startX   = 50.0
		startY   = 50.0
		spacingX = 80.0
		spacingY = 60.0
	)
	switch f {
	case formationGrid:
		return gridFormation(count, startX, startY, spacingX, spacingY)
	case formationDiamond:
		return diamondFormation(count, startX, startY, spacingX, spacingY)
	case formationColumns:
		return columnFormation(count, startX, startY, spacingX, spacingY)
	default:
		return w.randomFormation(count)
	}
}

// gridFormation keeps the classic four-row structure and centers a short
// last row.
func gridFormation(count int, startX, startY, spacingX, spacingY float64) []Vec2 {
	const rows = 4
	cols := (count + rows - 1) / rows

	positions := make([]Vec2, 0, count)
	for i := 0; i < count; i++ {
		row := i / cols
		col := i % cols
		rowEnemies := count - row*cols
		if rowEnemies > cols {
			rowEnemies = cols
		}
		rowStartX := startX + float64(cols-rowEnemies)*spacingX/2
		positions = append(positions, Vec2{
			X: rowStartX + float64(col)*spacingX,
			Y: startY + float64(row)*spacingY,
		})
	}
	return positions
}

func diamondFormation(count int, startX, startY, spacingX, spacingY float64) []Vec2 {
	rows := int(math.Ceil(math.Sqrt(float64(count))))
	center := rows / 2

	positions := make([]Vec2, 0, count)
	for i := 0; i < count; i++ {
		row := i / rows
		col := i % rows
		offset := row - center
		if offset < 0 {
			offset = -offset
		}
		positions = append(positions, Vec2{
			X: startX + float64(col)*spacingX + float64(offset)*spacingX/2,
			Y: startY + float64(row)*spacingY,
		})
	}
	return positions
}

func columnFormation(count int, startX, startY, spacingX, spacingY float64) []Vec2 {
	cols := (count + 5) / 6
	if cols > 8 {
		cols = 8
	}

	positions := make([]Vec2, 0, count)
	for i := 0; i < count; i++ {
		positions = append(positions, Vec2{
			X: startX + float64(i%cols)*spacingX,
			Y: startY + float64(i/cols)*spacingY,
		})
	}
	return positions
}

func (w *WaveManager) randomFormation(count int) []Vec2 {
	positions := make([]Vec2, 0, count)
	for i := 0; i < count; i++ {
		positions = append(positions, Vec2{
			X: 100 + w.rng.Float64()*600,
			Y: 50 + w.rng.Float64()*150,
		})
	}
	return positions
}

func (w *WaveManager) scaledHealth(base int) int {
	return base + w.CurrentWave/3
}

func (w *WaveManager) scaledPoints(base int) int {
	return int(math.Floor(float64(base) * (1 + float64(w.CurrentWave)*0.1)))
}
