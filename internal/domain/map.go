package domain

import (
	"errors"
	"fmt"
	"strings"

	"gridsim/internal/core/types/enums"
)

var (
	ErrNegativeSize = errors.New("map size must be non-negative")
	ErrOutOfBounds  = errors.New("out of bounds")
)

// Map - статическая сетка size x size с классификацией каждой клетки.
// Создаётся один раз при старте игры и не меняет размер.
// Клетки меняются только при заселении мира и в фазе применения эффектов.
type Map struct {
	size  int
	cells []enums.Terrain // Ключ: y*size + x
}

// NewMap создаёт карту, все клетки которой "не заданы" (TerrainNone).
func NewMap(size int) (*Map, error) {
	if size < 0 {
		return nil, fmt.Errorf("new map %d: %w", size, ErrNegativeSize)
	}
	return &Map{
		size:  size,
		cells: make([]enums.Terrain, size*size),
	}, nil
}

func (m *Map) Size() int {
	return m.size
}

func (m *Map) index(cx, cy int) int {
	return cy*m.size + cx
}

// InBounds проверяет, что клетка лежит в [0,size)x[0,size).
func (m *Map) InBounds(cx, cy int) bool {
	return cx >= 0 && cx < m.size && cy >= 0 && cy < m.size
}

// Cell возвращает классификацию клетки. ok=false за пределами карты.
func (m *Map) Cell(cx, cy int) (enums.Terrain, bool) {
	if !m.InBounds(cx, cy) {
		return enums.TerrainNone, false
	}
	return m.cells[m.index(cx, cy)], true
}

// SetCell задаёт клетку. Используется загрузчиком мира и фазой применения эффектов.
func (m *Map) SetCell(cx, cy int, t enums.Terrain) error {
	if !m.InBounds(cx, cy) {
		return fmt.Errorf("set cell (%d,%d): %w", cx, cy, ErrOutOfBounds)
	}
	m.cells[m.index(cx, cy)] = t
	return nil
}

// ClassificationAt возвращает классификацию клетки под позицией.
// За пределами карты - (TerrainNone, false).
func (m *Map) ClassificationAt(pos Vec2) (enums.Terrain, bool) {
	return m.Cell(pos.Cell())
}

// ValidateMove - можно ли занять позицию.
// Выход за карту запрещён отдельной проверкой границ; внутри карты
// незаданная клетка, стена и закрытая дверь тоже запрещены.
func (m *Map) ValidateMove(pos Vec2) bool {
	t, ok := m.ClassificationAt(pos)
	if !ok {
		return false
	}
	return t.IsWalkable()
}

// Clone возвращает независимую копию карты.
func (m *Map) Clone() *Map {
	cells := make([]enums.Terrain, len(m.cells))
	copy(cells, m.cells)
	return &Map{size: m.size, cells: cells}
}

// Rows рендерит карту в ASCII-раскладку (строка на каждый y).
func (m *Map) Rows() []string {
	rows := make([]string, m.size)
	var sb strings.Builder
	for y := 0; y < m.size; y++ {
		sb.Reset()
		for x := 0; x < m.size; x++ {
			sb.WriteRune(m.cells[m.index(x, y)].Glyph())
		}
		rows[y] = sb.String()
	}
	return rows
}

// TerrainPolicy решает, во что превращается клетка после атаки по карте.
// Правила перехода - это контент, ядро только доставляет намерение до карты.
type TerrainPolicy interface {
	Transition(current enums.Terrain, strength float32) (enums.Terrain, bool)
}

// ApplyTransition применяет политику к клетке под позицией.
// Возвращает старое и новое значение; changed=false, если клетка вне карты
// или политика оставила её как есть.
func (m *Map) ApplyTransition(pos Vec2, policy TerrainPolicy, strength float32) (from, to enums.Terrain, changed bool) {
	cx, cy := pos.Cell()
	from, ok := m.Cell(cx, cy)
	if !ok || policy == nil {
		return from, from, false
	}

	to, ok = policy.Transition(from, strength)
	if !ok || to == from {
		return from, from, false
	}

	m.cells[m.index(cx, cy)] = to
	return from, to, true
}
