package engine

import (
	"gridsim/internal/domain"
	"gridsim/pkg/api"
)

// TickReport - итог одного тика для наблюдателей (зрители, тесты, логи).
type TickReport struct {
	Tick      uint32
	Effects   []domain.SideEffect // В порядке применения
	Reaped    int
	Survivors []domain.Entity
	MapRows   []string
	State     State
}

// Message конвертирует отчёт в DTO для клиента.
func (r TickReport) Message() api.TickMessage {
	msg := api.TickMessage{
		Type:     api.MessageTypeTick,
		Tick:     r.Tick,
		State:    r.State.String(),
		Reaped:   r.Reaped,
		Grid:     &api.GridMeta{Size: len(r.MapRows)},
		Map:      r.MapRows,
		Effects:  make([]api.EffectView, 0, len(r.Effects)),
		Entities: make([]api.EntityView, 0, len(r.Survivors)),
	}

	for _, eff := range r.Effects {
		switch e := eff.(type) {
		case domain.Attack:
			target := e.Target.Index()
			msg.Effects = append(msg.Effects, api.EffectView{
				Kind:     api.EffectKindAttack,
				Source:   e.Source.Index(),
				Target:   &target,
				Strength: e.Strength,
			})
		case domain.MapAttack:
			msg.Effects = append(msg.Effects, api.EffectView{
				Kind:     api.EffectKindMapAttack,
				Source:   e.Source.Index(),
				MapPos:   &api.Point{X: e.MapPos.X, Y: e.MapPos.Y},
				Strength: e.Strength,
			})
		}
	}

	for i, e := range r.Survivors {
		msg.Entities = append(msg.Entities, api.EntityView{
			Index:  i,
			Kind:   e.Kind().String(),
			Pos:    api.Point{X: e.Pos.X, Y: e.Pos.Y},
			Health: e.Health,
		})
	}

	return msg
}
