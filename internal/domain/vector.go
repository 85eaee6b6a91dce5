package domain

import "math"

// Vec2 - точка/вектор на плоскости карты. Значимый тип, копируется дёшево.
type Vec2 struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
}

// V2 - короткий конструктор.
func V2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add возвращает сумму векторов (смещение позиции).
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub возвращает покомпонентную разность v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Length возвращает евклидову длину.
func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// DistanceTo возвращает расстояние до другой точки.
func (v Vec2) DistanceTo(o Vec2) float32 {
	return v.Sub(o).Length()
}

// Cell проецирует непрерывную позицию на клетку сетки (округление вниз).
// Эту же проекцию использует и запрос классификации, и проверка хода.
func (v Vec2) Cell() (int, int) {
	return int(math.Floor(float64(v.X))), int(math.Floor(float64(v.Y)))
}
