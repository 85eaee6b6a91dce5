package systems

import (
	"fmt"

	"gridsim/internal/core/types"
	"gridsim/internal/domain"
)

// Context передает решению состояние мира на начало тика.
//
// Snapshot и Map только для чтения. Actor - живая сущность из коллекции игры:
// через неё решение может сдвинуть себя (и только себя).
type Context struct {
	Self     domain.EntityID
	Actor    *domain.Entity
	Snapshot []domain.Entity
	Map      *domain.Map
	Rules    Rules
}

// BehaviorFunc - контракт решения для класса сущностей.
// Возвращает намерения в том порядке, в котором они должны примениться.
type BehaviorFunc func(ctx Context) []domain.SideEffect

// Behaviors - поведение для каждого класса. nil для Monster/Item означает "ничего не делать",
// nil для Player - PlayerBehavior.
type Behaviors struct {
	Player  BehaviorFunc
	Monster BehaviorFunc
	Item    BehaviorFunc
}

// DefaultBehaviors возвращает поведение по умолчанию: игрок ходит и бьёт, остальные стоят.
func DefaultBehaviors() Behaviors {
	return Behaviors{Player: PlayerBehavior}
}

// Decide выбирает поведение по классу сущности.
// Классы закрыты (domain.EntityClass), поэтому default - ошибка программиста.
func Decide(ctx Context, b Behaviors) []domain.SideEffect {
	switch ctx.Actor.Class.(type) {
	case domain.PlayerData:
		if b.Player == nil {
			return PlayerBehavior(ctx)
		}
		return b.Player(ctx)
	case domain.MonsterData:
		if b.Monster == nil {
			return nil
		}
		return b.Monster(ctx)
	case domain.ItemData:
		if b.Item == nil {
			return nil
		}
		return b.Item(ctx)
	default:
		panic(fmt.Sprintf("systems: entity %v has unhandled class %T", ctx.Self, ctx.Actor.Class))
	}
}

// PlayerBehavior - пробный шаг, затем атака всех, кто ближе дистанции атаки.
//
// Шаг применяется сразу. Дистанция считается от новой позиции игрока
// до позиций остальных в снимке; атаки идут в порядке индексов снимка.
func PlayerBehavior(ctx Context) []domain.SideEffect {
	data, _ := ctx.Actor.Class.(domain.PlayerData)
	step, attackDistance, attackStrength := ctx.Rules.forPlayer(data)

	TryMove(ctx.Actor, step, ctx.Map)

	var effects []domain.SideEffect
	self := ctx.Self.Index()
	tick := ctx.Self.Generation()

	for i := range ctx.Snapshot {
		if i == self {
			continue
		}
		if ctx.Actor.Pos.DistanceTo(ctx.Snapshot[i].Pos) < attackDistance {
			effects = append(effects, domain.Attack{
				Source:   ctx.Self,
				Target:   types.PackEntityID(tick, i),
				Strength: attackStrength,
			})
		}
	}

	return effects
}
