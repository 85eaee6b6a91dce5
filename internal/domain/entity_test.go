package domain

import (
	"testing"

	"gridsim/internal/core/types"
	"gridsim/internal/core/types/enums"
)

func TestEntity_Kind(t *testing.T) {
	tests := []struct {
		name   string
		entity Entity
		want   enums.EntityKind
	}{
		{"player", NewPlayer(V2(0, 0), 1), enums.EntityKindPlayer},
		{"monster", NewMonster(V2(0, 0), 1), enums.EntityKindMonster},
		{"item", NewItem(V2(0, 0), 1), enums.EntityKindItem},
		{"no class", Entity{}, enums.EntityKindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entity.Kind(); got != tt.want {
				t.Errorf("Kind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEntity_IsDead(t *testing.T) {
	tests := []struct {
		health float32
		want   bool
	}{
		{1, false},
		{0.000001, false},
		{0, true},
		{-0.25, true},
	}

	for _, tt := range tests {
		e := NewPlayer(V2(0, 0), tt.health)
		if got := e.IsDead(); got != tt.want {
			t.Errorf("health %v: IsDead() = %v, want %v", tt.health, got, tt.want)
		}
	}
}

func TestSideEffect_SourceID(t *testing.T) {
	src := types.PackEntityID(3, 1)
	effects := []SideEffect{
		Attack{Source: src, Target: types.PackEntityID(3, 0), Strength: 0.25},
		MapAttack{Source: src, MapPos: V2(1, 1), Strength: 1},
	}

	for _, eff := range effects {
		if eff.SourceID() != src {
			t.Errorf("%v: SourceID() = %v, want %v", eff, eff.SourceID(), src)
		}
	}
}

func TestOverride_Or(t *testing.T) {
	var unset Override[float32]
	if got := unset.Or(2); got != 2 {
		t.Errorf("unset.Or(2) = %v, want fallback 2", got)
	}
	if got := Use[float32](0).Or(2); got != 0 {
		t.Errorf("Use(0).Or(2) = %v, want explicit 0", got)
	}
	if got := Use(V2(0, 0)).Or(V2(0.1, 0)); got != (Vec2{}) {
		t.Errorf("zero step override = %v, want (0,0)", got)
	}
}
