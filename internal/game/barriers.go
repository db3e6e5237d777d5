package game

import (
	"fmt"
	"math/rand"
)

// barrierShape is the bitmap for one barrier wall; each set cell becomes an
// independently destructible 8px piece.
var barrierShape = [][]int{
	{0, 0, 1, 1, 1, 1, 1, 1, 1, 0, 0},
	{0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 0, 0, 0, 0, 0, 1, 1, 1},
	{1, 1, 0, 0, 0, 0, 0, 0, 0, 1, 1},
}

const (
	numBarriers      = 4
	barrierPieceSize = 8.0
	barrierY         = 450.0
)

// GenerateBarriers lays out four barrier walls evenly spaced across the
// screen. Piece durability is randomized 1..3 so walls crumble unevenly.
func GenerateBarriers(rng *rand.Rand) []*BarrierPiece {
	var barriers []*BarrierPiece
	spacing := ScreenW / (numBarriers + 1)
	for b := 1; b <= numBarriers; b++ {
		xPos := spacing * float64(b)
		for row := range barrierShape {
			for col, cell := range barrierShape[row] {
				if cell != 1 {
					continue
				}
				x := xPos + float64(col)*barrierPieceSize - float64(len(barrierShape[row]))*barrierPieceSize/2
				y := barrierY + float64(row)*barrierPieceSize
				barriers = append(barriers, &BarrierPiece{
					ID:         fmt.Sprintf("barrier-%d-%d-%d", b, row, col),
					Position:   Vec2{X: x, Y: y},
					Width:      barrierPieceSize,
					Height:     barrierPieceSize,
					Durability: rng.Intn(3) + 1,
				})
			}
		}
	}
	return barriers
}
