package systems

import (
	"testing"

	"gridsim/internal/core/types"
	"gridsim/internal/core/types/enums"
	"gridsim/internal/domain"
)

func TestTransitionTable(t *testing.T) {
	table := NewTransitionTable([]TerrainTransition{
		{From: enums.TerrainWall, To: enums.TerrainFloor, MinStrength: 1},
		{From: enums.TerrainClosedDoor, To: enums.TerrainOpenDoor},
	})

	tests := []struct {
		name     string
		current  enums.Terrain
		strength float32
		want     enums.Terrain
		wantOK   bool
	}{
		{"wall too weak", enums.TerrainWall, 0.5, enums.TerrainWall, false},
		{"wall broken", enums.TerrainWall, 1, enums.TerrainFloor, true},
		{"door opens with any strength", enums.TerrainClosedDoor, 0, enums.TerrainOpenDoor, true},
		{"no rule for water", enums.TerrainWater, 10, enums.TerrainWater, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := table.Transition(tt.current, tt.strength)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Transition(%v, %v) = (%v,%v), want (%v,%v)", tt.current, tt.strength, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestApplyMapAttack(t *testing.T) {
	world := floorMap(t, 5)
	_ = world.SetCell(2, 2, enums.TerrainWall)
	table := NewTransitionTable([]TerrainTransition{
		{From: enums.TerrainWall, To: enums.TerrainFloor, MinStrength: 1},
	})
	src := types.PackEntityID(1, 0)

	if ApplyMapAttack(world, table, 1, domain.MapAttack{Source: src, MapPos: domain.V2(2.5, 2.5), Strength: 0.1}) {
		t.Error("weak map attack changed terrain")
	}
	if ApplyMapAttack(world, table, 1, domain.MapAttack{Source: src, MapPos: domain.V2(-3, 2), Strength: 9}) {
		t.Error("map attack outside the grid changed terrain")
	}
	if !ApplyMapAttack(world, table, 1, domain.MapAttack{Source: src, MapPos: domain.V2(2.5, 2.5), Strength: 1}) {
		t.Fatal("strong map attack did not break the wall")
	}
	if !world.ValidateMove(domain.V2(2.5, 2.5)) {
		t.Error("broken wall cell should be walkable")
	}

	// Empty table: intent reaches the map, nothing changes.
	_ = world.SetCell(1, 1, enums.TerrainWall)
	if ApplyMapAttack(world, TransitionTable{}, 1, domain.MapAttack{Source: src, MapPos: domain.V2(1, 1), Strength: 99}) {
		t.Error("empty transition table changed terrain")
	}
}
