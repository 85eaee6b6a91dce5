package dungeon

import (
	"math/rand"

	"gridsim/internal/core/types/enums"
	"gridsim/internal/domain"
)

// Rect - Вспомогательная структура для комнаты
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.W && r.X+r.W >= other.X &&
		r.Y <= other.Y+other.H && r.Y+r.H >= other.Y
}

// OnPerimeter - клетка лежит на стене-рамке комнаты.
func (r Rect) OnPerimeter(x, y int) bool {
	inX := x >= r.X && x <= r.X+r.W
	inY := y >= r.Y && y <= r.Y+r.H
	return (inX && (y == r.Y || y == r.Y+r.H)) || (inY && (x == r.X || x == r.X+r.W))
}

// fill заливает всю карту одним типом клетки.
func fill(m *domain.Map, t enums.Terrain) {
	for y := 0; y < m.Size(); y++ {
		for x := 0; x < m.Size(); x++ {
			_ = m.SetCell(x, y, t)
		}
	}
}

func createRoom(m *domain.Map, room Rect) {
	for y := room.Y + 1; y < room.Y+room.H; y++ {
		for x := room.X + 1; x < room.X+room.W; x++ {
			_ = m.SetCell(x, y, enums.TerrainFloor)
		}
	}
}

func createHCorridor(m *domain.Map, x1, x2, y int) {
	start := min(x1, x2)
	end := max(x1, x2)
	for x := start; x <= end; x++ {
		_ = m.SetCell(x, y, enums.TerrainFloor)
	}
}

func createVCorridor(m *domain.Map, y1, y2, x int) {
	start := min(y1, y2)
	end := max(y1, y2)
	for y := start; y <= end; y++ {
		_ = m.SetCell(x, y, enums.TerrainFloor)
	}
}

// placeDoors ставит двери там, где коридор пробил рамку комнаты.
// Каждая третья (в среднем) дверь закрыта.
func placeDoors(m *domain.Map, room Rect, rng *rand.Rand) {
	for y := room.Y; y <= room.Y+room.H; y++ {
		for x := room.X; x <= room.X+room.W; x++ {
			if !room.OnPerimeter(x, y) {
				continue
			}
			if t, ok := m.Cell(x, y); !ok || t != enums.TerrainFloor {
				continue
			}
			door := enums.TerrainOpenDoor
			if rng.Intn(3) == 0 {
				door = enums.TerrainClosedDoor
			}
			_ = m.SetCell(x, y, door)
		}
	}
}

func randRange(rng *rand.Rand, min, max int) int {
	return rng.Intn(max-min+1) + min
}
