package engine

import (
	"reflect"
	"testing"

	"gridsim/internal/core/types"
	"gridsim/internal/core/types/enums"
	"gridsim/internal/domain"
	"gridsim/internal/systems"
	"gridsim/pkg/dungeon"
)

func TestGame_TwoPlayerDuel(t *testing.T) {
	rec := &recorder{}
	g := NewGame(floorMap(t, 4), []domain.Entity{
		domain.NewPlayer(domain.V2(0, 0), 1),
		domain.NewPlayer(domain.V2(1, 0), 1),
	}, WithObserver(rec.observe))

	// Tick 1: each attacks the other once.
	if !g.Tick() {
		t.Fatal("game stopped after first tick")
	}
	for i, e := range g.Entities() {
		if e.Health != 0.75 {
			t.Errorf("entity %d health = %v, want 0.75", i, e.Health)
		}
	}

	first := rec.reports[0]
	want := []domain.SideEffect{
		domain.Attack{Source: types.PackEntityID(1, 0), Target: types.PackEntityID(1, 1), Strength: 0.25},
		domain.Attack{Source: types.PackEntityID(1, 1), Target: types.PackEntityID(1, 0), Strength: 0.25},
	}
	if !reflect.DeepEqual(first.Effects, want) {
		t.Errorf("tick 1 effects = %v, want %v", first.Effects, want)
	}

	// Ticks 2..4: both die together in tick 4.
	if !g.Tick() || !g.Tick() {
		t.Fatal("game stopped too early")
	}
	if g.Tick() {
		t.Fatal("game should stop in tick 4")
	}

	if g.State() != StateStopped {
		t.Errorf("State() = %v, want STOPPED", g.State())
	}
	if g.EntityCount() != 0 {
		t.Errorf("survivors = %d, want 0", g.EntityCount())
	}
	if last := rec.reports[len(rec.reports)-1]; last.Reaped != 2 || last.Tick != 4 {
		t.Errorf("last report = tick %d reaped %d, want tick 4 reaped 2", last.Tick, last.Reaped)
	}
}

func TestGame_RunToCompletion(t *testing.T) {
	g := NewGame(floorMap(t, 4), []domain.Entity{
		domain.NewPlayer(domain.V2(0, 0), 1),
		domain.NewPlayer(domain.V2(1, 0), 1),
	})

	if n := g.Run(0); n != 4 {
		t.Errorf("Run() = %d ticks, want 4", n)
	}

	// Stopped game does nothing.
	if g.Tick() {
		t.Error("Tick() on a stopped game returned true")
	}
	if g.TickCount() != 4 {
		t.Errorf("TickCount() = %d, want 4", g.TickCount())
	}
}

func TestGame_RunRespectsMaxTicks(t *testing.T) {
	// Two items never interact: the game would run forever.
	g := NewGame(floorMap(t, 4), []domain.Entity{
		domain.NewItem(domain.V2(0, 0), 1),
		domain.NewItem(domain.V2(1, 0), 1),
	})

	if n := g.Run(10); n != 10 {
		t.Errorf("Run(10) = %d, want 10", n)
	}
	if g.State() != StateRunning {
		t.Errorf("State() = %v, want RUNNING", g.State())
	}
}

func TestGame_Termination(t *testing.T) {
	// Player beats a passive monster to death; the player survives alone.
	g := NewGame(floorMap(t, 8), []domain.Entity{
		domain.NewPlayer(domain.V2(1, 1), 1),
		domain.NewMonster(domain.V2(2, 1), 1),
	})

	n := g.Run(100)
	if g.State() != StateStopped {
		t.Fatalf("game did not stop after %d ticks", n)
	}
	if n != 4 {
		t.Errorf("ticks = %d, want 4", n)
	}

	survivors := g.Entities()
	if len(survivors) != 1 || survivors[0].Kind() != enums.EntityKindPlayer {
		t.Errorf("survivors = %v, want the player", survivors)
	}
}

func TestGame_ReapThreshold(t *testing.T) {
	g := NewGame(floorMap(t, 4), []domain.Entity{
		domain.NewItem(domain.V2(0, 0), 0),
		domain.NewItem(domain.V2(1, 0), 0.000001),
		domain.NewItem(domain.V2(2, 0), 1),
		domain.NewItem(domain.V2(3, 0), -1),
	})

	if !g.Tick() {
		t.Fatal("two survivors should keep the game running")
	}

	survivors := g.Entities()
	if len(survivors) != 2 {
		t.Fatalf("survivors = %v, want 2", survivors)
	}
	// Order of survivors is preserved.
	if survivors[0].Health != 0.000001 || survivors[1].Health != 1 {
		t.Errorf("survivors = %v", survivors)
	}
}

func TestGame_MoveIntoWall(t *testing.T) {
	world := floorMap(t, 10)
	_ = world.SetCell(5, 5, enums.TerrainWall)

	g := NewGame(world, []domain.Entity{
		domain.NewPlayer(domain.V2(5, 5), 1),
		domain.NewItem(domain.V2(9, 9), 1),
	})
	g.Tick()

	if pos := g.Entities()[0].Pos; pos != domain.V2(5, 5) {
		t.Errorf("player at %v, want (5,5)", pos)
	}
}

func TestGame_SnapshotIsolation(t *testing.T) {
	var seen []domain.Entity
	spy := systems.Behaviors{
		Monster: func(ctx systems.Context) []domain.SideEffect {
			seen = append([]domain.Entity(nil), ctx.Snapshot...)
			return nil
		},
	}

	start := []domain.Entity{
		domain.NewPlayer(domain.V2(1, 1), 1),
		domain.NewMonster(domain.V2(2, 1), 1),
	}
	g := NewGame(floorMap(t, 8), start, WithBehaviors(spy), WithWorkers(1))
	g.Tick()

	// The player (index 0) moved before the monster decided, but the monster saw the old state.
	if !reflect.DeepEqual(seen, start) {
		t.Errorf("monster saw %v, want pre-tick %v", seen, start)
	}
	if g.Entities()[0].Pos == start[0].Pos {
		t.Error("player did not move")
	}
	// Damage is deferred: the snapshot still had full health.
	if seen[1].Health != 1 {
		t.Errorf("snapshot health = %v, want 1", seen[1].Health)
	}
}

func TestGame_DeterministicAcrossWorkers(t *testing.T) {
	run := func(workers int) []TickReport {
		world, entities, err := dungeon.Generate(5, 11, dungeon.Population{Players: 12, Monsters: 3, Items: 2})
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		rec := &recorder{}
		g := NewGame(world, entities, WithWorkers(workers), WithObserver(rec.observe))
		g.Run(50)
		return rec.reports
	}

	sequential := run(1)
	if len(sequential) == 0 || len(sequential[0].Effects) == 0 {
		t.Fatal("scenario produced no effects; test is meaningless")
	}

	for _, workers := range []int{2, 8} {
		for attempt := 0; attempt < 3; attempt++ {
			if got := run(workers); !reflect.DeepEqual(got, sequential) {
				t.Fatalf("workers=%d attempt=%d diverged from sequential run", workers, attempt)
			}
		}
	}
}

func TestGame_MapAttackRoutedToPolicy(t *testing.T) {
	world := floorMap(t, 6)
	_ = world.SetCell(3, 3, enums.TerrainWall)

	digger := systems.Behaviors{
		Monster: func(ctx systems.Context) []domain.SideEffect {
			return []domain.SideEffect{domain.MapAttack{Source: ctx.Self, MapPos: domain.V2(3.5, 3.5), Strength: 1}}
		},
	}
	policy := systems.NewTransitionTable([]systems.TerrainTransition{
		{From: enums.TerrainWall, To: enums.TerrainFloor, MinStrength: 1},
	})

	g := NewGame(world, []domain.Entity{
		domain.NewMonster(domain.V2(1, 1), 1),
		domain.NewItem(domain.V2(5, 5), 1),
	}, WithBehaviors(digger), WithTerrainPolicy(policy))
	g.Tick()

	if got, _ := g.Map().Cell(3, 3); got != enums.TerrainFloor {
		t.Errorf("cell (3,3) = %v, want FLOOR", got)
	}
}

func TestGame_StaleIDPanics(t *testing.T) {
	stale := systems.Behaviors{
		Monster: func(ctx systems.Context) []domain.SideEffect {
			// An id remembered from "the previous tick".
			old := types.PackEntityID(ctx.Self.Generation()-1, 0)
			return []domain.SideEffect{domain.Attack{Source: ctx.Self, Target: old, Strength: 1}}
		},
	}

	g := NewGame(floorMap(t, 4), []domain.Entity{
		domain.NewItem(domain.V2(0, 0), 1),
		domain.NewMonster(domain.V2(1, 0), 1),
	}, WithBehaviors(stale))

	defer func() {
		if recover() == nil {
			t.Error("expected panic on stale entity id")
		}
	}()
	g.Tick()
}

func TestGame_InputSliceNotAliased(t *testing.T) {
	start := []domain.Entity{
		domain.NewPlayer(domain.V2(0, 0), 1),
		domain.NewPlayer(domain.V2(1, 0), 1),
	}
	g := NewGame(floorMap(t, 4), start)
	g.Tick()

	if start[0].Health != 1 || start[0].Pos != domain.V2(0, 0) {
		t.Errorf("caller's slice was mutated: %v", start[0])
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateRunning, "RUNNING"},
		{StateStopped, "STOPPED"},
		{State(9), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
