package engine

import (
	"fmt"

	"gridsim/internal/core/types"
	"gridsim/internal/domain"
	"gridsim/internal/systems"
	"gridsim/pkg/api"
	"gridsim/pkg/logger"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// State - состояние симуляции.
type State uint8

const (
	StateRunning State = iota
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return api.GameStateRunning
	case StateStopped:
		return api.GameStateStopped
	default:
		return "UNKNOWN"
	}
}

// Game владеет картой и коллекцией сущностей и крутит тики:
// снимок → решения → применение эффектов → удаление мёртвых → продолжать ли.
//
// Tick нельзя вызывать конкурентно с самим собой.
type Game struct {
	world    *domain.Map
	entities []domain.Entity

	rules     systems.Rules
	behaviors systems.Behaviors
	policy    domain.TerrainPolicy
	workers   int
	observer  func(TickReport)

	tick  uint32
	state State
	log   *logrus.Entry
}

// Option настраивает Game при создании.
type Option func(*Game)

func WithRules(r systems.Rules) Option {
	return func(g *Game) { g.rules = r }
}

// WithBehaviors подключает поведение классов. Хуки вызываются параллельно
// для разных сущностей, поэтому не должны трогать ничего, кроме ctx.Actor.
func WithBehaviors(b systems.Behaviors) Option {
	return func(g *Game) { g.behaviors = b }
}

func WithTerrainPolicy(p domain.TerrainPolicy) Option {
	return func(g *Game) { g.policy = p }
}

// WithWorkers задаёт число параллельных решений. <= 1 - последовательно.
func WithWorkers(n int) Option {
	return func(g *Game) { g.workers = n }
}

// WithObserver получает отчёт после каждого тика (в той же горутине, что и Tick).
func WithObserver(fn func(TickReport)) Option {
	return func(g *Game) { g.observer = fn }
}

// NewGame забирает карту и начальные сущности (срез копируется).
func NewGame(world *domain.Map, entities []domain.Entity, opts ...Option) *Game {
	g := &Game{
		world:     world,
		entities:  append([]domain.Entity(nil), entities...),
		rules:     systems.DefaultRules(),
		behaviors: systems.DefaultBehaviors(),
		policy:    systems.TransitionTable{},
		workers:   1,
		state:     StateRunning,
		log:       logger.Component("engine"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Game) Map() *domain.Map {
	return g.world
}

func (g *Game) State() State {
	return g.state
}

// TickCount - число выполненных тиков.
func (g *Game) TickCount() uint32 {
	return g.tick
}

func (g *Game) EntityCount() int {
	return len(g.entities)
}

// Entities возвращает копию текущей коллекции.
func (g *Game) Entities() []domain.Entity {
	return append([]domain.Entity(nil), g.entities...)
}

// Tick выполняет один полный цикл. Возвращает true, если симуляция продолжается.
// На остановленной игре ничего не делает.
func (g *Game) Tick() bool {
	if g.state == StateStopped {
		return false
	}

	g.tick++
	tick := g.tick

	// 1. Снимок: копия по значению, а не живое представление
	snapshot := make([]domain.Entity, len(g.entities))
	copy(snapshot, g.entities)

	// 2. Решения
	decided := g.decide(tick, snapshot)

	// 3. Применение - строго последовательно, в порядке сущностей и их эмиссии
	applied := g.apply(tick, decided)

	// 4. Удаление мёртвых. После этого все EntityID этого тика недействительны.
	reaped := g.reap()

	// 5. Продолжаем, пока живых больше одного
	if len(g.entities) <= 1 {
		g.state = StateStopped
	}

	g.log.WithFields(logrus.Fields{
		"tick":      tick,
		"effects":   len(applied),
		"reaped":    reaped,
		"survivors": len(g.entities),
		"state":     g.state.String(),
	}).Debug("Tick complete.")

	if g.observer != nil {
		g.observer(TickReport{
			Tick:      tick,
			Effects:   applied,
			Reaped:    reaped,
			Survivors: g.Entities(),
			MapRows:   g.world.Rows(),
			State:     g.state,
		})
	}

	return g.state == StateRunning
}

// Run крутит тики до остановки. maxTicks <= 0 - без ограничения.
// Возвращает число выполненных тиков.
func (g *Game) Run(maxTicks int) int {
	g.log.WithFields(logrus.Fields{
		"entities":  len(g.entities),
		"map_size":  g.world.Size(),
		"workers":   g.workers,
		"max_ticks": maxTicks,
	}).Info("Simulation started")

	n := 0
	for g.state == StateRunning && (maxTicks <= 0 || n < maxTicks) {
		g.Tick()
		n++
	}

	g.log.WithFields(logrus.Fields{
		"ticks":     n,
		"survivors": len(g.entities),
		"state":     g.state.String(),
	}).Info("Simulation finished")

	return n
}

// decide запускает решение каждой сущности. Результат i-й сущности лежит в слоте i,
// поэтому порядок не зависит от того, какая горутина закончила первой.
func (g *Game) decide(tick uint32, snapshot []domain.Entity) [][]domain.SideEffect {
	out := make([][]domain.SideEffect, len(g.entities))

	decideOne := func(i int) {
		out[i] = systems.Decide(systems.Context{
			Self:     types.PackEntityID(tick, i),
			Actor:    &g.entities[i],
			Snapshot: snapshot,
			Map:      g.world,
			Rules:    g.rules,
		}, g.behaviors)
	}

	if g.workers <= 1 || len(g.entities) < 2 {
		for i := range g.entities {
			decideOne(i)
		}
		return out
	}

	var eg errgroup.Group
	eg.SetLimit(g.workers)
	for i := range g.entities {
		i := i
		eg.Go(func() error {
			decideOne(i)
			return nil
		})
	}
	_ = eg.Wait() // decideOne не возвращает ошибок

	return out
}

func (g *Game) apply(tick uint32, decided [][]domain.SideEffect) []domain.SideEffect {
	var applied []domain.SideEffect
	for _, effects := range decided {
		for _, eff := range effects {
			g.applySideEffect(tick, eff)
			applied = append(applied, eff)
		}
	}
	return applied
}

func (g *Game) applySideEffect(tick uint32, eff domain.SideEffect) {
	switch e := eff.(type) {
	case domain.Attack:
		systems.ApplyAttack(g.entities, tick, e)
	case domain.MapAttack:
		systems.ApplyMapAttack(g.world, g.policy, tick, e)
	default:
		panic(fmt.Sprintf("engine: unhandled side effect %T", eff))
	}
}

// reap удаляет сущности с Health <= 0, сохраняя порядок выживших.
func (g *Game) reap() int {
	alive := g.entities[:0]
	for _, e := range g.entities {
		if !e.IsDead() {
			alive = append(alive, e)
		}
	}

	reaped := len(g.entities) - len(alive)
	for i := len(alive); i < len(g.entities); i++ {
		g.entities[i] = domain.Entity{}
	}
	g.entities = alive
	return reaped
}
