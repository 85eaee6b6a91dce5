package domain

import "fmt"

// SideEffect - отложенное намерение изменить общее состояние.
// Порождается в фазе решений, применяется в фазе применения того же тика.
// Набор вариантов закрыт: Attack и MapAttack.
type SideEffect interface {
	SourceID() EntityID
	sideEffect()
}

// Attack - уменьшить здоровье Target на Strength.
type Attack struct {
	Source   EntityID `json:"source"`
	Target   EntityID `json:"target"`
	Strength float32  `json:"strength"`
}

// MapAttack - изменить клетку карты под MapPos.
type MapAttack struct {
	Source   EntityID `json:"source"`
	MapPos   Vec2     `json:"mapPos"`
	Strength float32  `json:"strength"`
}

func (a Attack) SourceID() EntityID    { return a.Source }
func (a MapAttack) SourceID() EntityID { return a.Source }

func (Attack) sideEffect()    {}
func (MapAttack) sideEffect() {}

func (a Attack) String() string {
	return fmt.Sprintf("ATTACK %d->%d (%.2f)", a.Source.Index(), a.Target.Index(), a.Strength)
}

func (a MapAttack) String() string {
	return fmt.Sprintf("MAP_ATTACK %d->(%.2f,%.2f) (%.2f)", a.Source.Index(), a.MapPos.X, a.MapPos.Y, a.Strength)
}
