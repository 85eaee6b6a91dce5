package domain

import (
	"fmt"

	"gridsim/internal/core/types"
	"gridsim/internal/core/types/enums"
)

// EntityID - индекс сущности в пределах одного тика.
type EntityID = types.EntityID

// EntityClass - закрытый набор классов сущностей: PlayerData, MonsterData, ItemData.
// Реализовать интерфейс вне пакета нельзя (неэкспортируемый метод),
// поэтому type switch по нему покрывает все варианты.
type EntityClass interface {
	Kind() enums.EntityKind
	entityClass()
}

// Override - персональное значение параметра. Set=false означает "взять из правил игры",
// поэтому нулевое значение (стоять на месте, бить с силой 0) тоже задаётся явно.
type Override[T any] struct {
	Value T    `json:"value"`
	Set   bool `json:"set"`
}

// Use задаёт персональное значение.
func Use[T any](v T) Override[T] {
	return Override[T]{Value: v, Set: true}
}

// Or возвращает персональное значение, если оно задано, иначе fallback.
func (o Override[T]) Or(fallback T) T {
	if o.Set {
		return o.Value
	}
	return fallback
}

// PlayerData - параметры игрока. Незаданные поля берутся из правил игры.
type PlayerData struct {
	Step           Override[Vec2]    `json:"step"`
	AttackDistance Override[float32] `json:"attackDistance"`
	AttackStrength Override[float32] `json:"attackStrength"`
}

// MonsterData - зарезервировано под параметры монстров.
type MonsterData struct{}

// ItemData - зарезервировано под параметры предметов.
type ItemData struct{}

func (PlayerData) Kind() enums.EntityKind  { return enums.EntityKindPlayer }
func (MonsterData) Kind() enums.EntityKind { return enums.EntityKindMonster }
func (ItemData) Kind() enums.EntityKind    { return enums.EntityKindItem }

func (PlayerData) entityClass()  {}
func (MonsterData) entityClass() {}
func (ItemData) entityClass()    {}

// Entity - то, что двигается и обновляет себя (игроки, монстры, предметы).
// Принадлежит коллекции Game; в снимок тика попадает копией.
type Entity struct {
	Pos    Vec2        `json:"pos"`
	Health float32     `json:"health"`
	Class  EntityClass `json:"-"`
}

// Kind возвращает вид сущности (UNKNOWN для сущности без класса).
func (e Entity) Kind() enums.EntityKind {
	if e.Class == nil {
		return enums.EntityKindUnknown
	}
	return e.Class.Kind()
}

// IsDead - здоровье дошло до порога смерти (<= 0).
func (e Entity) IsDead() bool {
	return e.Health <= 0
}

func (e Entity) String() string {
	return fmt.Sprintf("%s{pos=(%.2f,%.2f) hp=%.2f}", e.Kind(), e.Pos.X, e.Pos.Y, e.Health)
}

// NewPlayer, NewMonster, NewItem - конструкторы для заселения мира.
func NewPlayer(pos Vec2, health float32) Entity {
	return Entity{Pos: pos, Health: health, Class: PlayerData{}}
}

func NewMonster(pos Vec2, health float32) Entity {
	return Entity{Pos: pos, Health: health, Class: MonsterData{}}
}

func NewItem(pos Vec2, health float32) Entity {
	return Entity{Pos: pos, Health: health, Class: ItemData{}}
}
