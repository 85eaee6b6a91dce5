package systems

import (
	"fmt"

	"gridsim/internal/domain"
	"gridsim/pkg/logger"

	"github.com/sirupsen/logrus"
)

// ApplyAttack применяет Attack к живой коллекции сущностей текущего тика.
//
// Устаревший (из другого тика) или выходящий за коллекцию id - ошибка программиста:
// функция паникует, а не пропускает эффект.
func ApplyAttack(entities []domain.Entity, tick uint32, a domain.Attack) {
	mustResolve(entities, tick, a.Source, "source")
	target := mustResolve(entities, tick, a.Target, "target")

	hpBefore := target.Health
	target.Health -= a.Strength

	if logger.Log.IsLevelEnabled(logrus.DebugLevel) {
		logger.Log.WithFields(logrus.Fields{
			"component":   "combat_system",
			"tick":        tick,
			"source":      a.Source.Index(),
			"target":      a.Target.Index(),
			"target_kind": target.Kind().String(),
			"strength":    a.Strength,
			"hp_before":   hpBefore,
			"hp_after":    target.Health,
			"target_died": target.IsDead(),
		}).Debug("Attack resolved.")
	}
}

func mustResolve(entities []domain.Entity, tick uint32, id domain.EntityID, role string) *domain.Entity {
	if !id.IssuedAt(tick) {
		panic(fmt.Sprintf("systems: stale %s id %v applied in tick %d", role, id, tick))
	}
	idx := id.Index()
	if idx >= len(entities) {
		panic(fmt.Sprintf("systems: %s id %v out of range (%d entities)", role, id, len(entities)))
	}
	return &entities[idx]
}
