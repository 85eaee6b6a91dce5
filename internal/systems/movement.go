package systems

import (
	"gridsim/internal/core/types/enums"
	"gridsim/internal/domain"
)

// MovementResult - результат вычисления движения
type MovementResult struct {
	NewPos      domain.Vec2
	HasMoved    bool
	OutOfBounds bool          // Шаг за пределы карты
	Blocked     enums.Terrain // Клетка, которая не пустила (если внутри карты)
}

// CalculateMove вычисляет новую позицию. Не меняет состояние мира!
func CalculateMove(pos, step domain.Vec2, m *domain.Map) MovementResult {
	target := pos.Add(step)
	res := MovementResult{NewPos: target}

	terrain, ok := m.ClassificationAt(target)
	if !ok {
		res.OutOfBounds = true
		return res
	}
	if !m.ValidateMove(target) {
		res.Blocked = terrain
		return res
	}

	res.HasMoved = true
	return res
}

// TryMove двигает сущность, если карта разрешает.
// Это единственная мутация, которую решение делает сразу, а не через SideEffect:
// она касается только самой сущности, остальные читают позиции из снимка.
func TryMove(e *domain.Entity, step domain.Vec2, m *domain.Map) MovementResult {
	if step == (domain.Vec2{}) {
		return MovementResult{NewPos: e.Pos}
	}

	res := CalculateMove(e.Pos, step, m)
	if res.HasMoved {
		e.Pos = res.NewPos
	}
	return res
}
