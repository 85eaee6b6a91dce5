package systems

import (
	"gridsim/internal/core/types/enums"
	"gridsim/internal/domain"
	"gridsim/pkg/logger"

	"github.com/sirupsen/logrus"
)

// TerrainTransition - одно правило: клетка From превращается в To,
// если сила атаки не меньше MinStrength.
type TerrainTransition struct {
	From        enums.Terrain `yaml:"from"`
	To          enums.Terrain `yaml:"to"`
	MinStrength float32       `yaml:"min_strength"`
}

// TransitionTable - таблица переходов, реализует domain.TerrainPolicy.
// Пустая таблица ничего не меняет.
type TransitionTable map[enums.Terrain]TerrainTransition

// NewTransitionTable собирает таблицу из списка правил. Более позднее правило для того же From побеждает.
func NewTransitionTable(rules []TerrainTransition) TransitionTable {
	table := make(TransitionTable, len(rules))
	for _, r := range rules {
		table[r.From] = r
	}
	return table
}

func (t TransitionTable) Transition(current enums.Terrain, strength float32) (enums.Terrain, bool) {
	rule, ok := t[current]
	if !ok || strength < rule.MinStrength {
		return current, false
	}
	return rule.To, true
}

// ApplyMapAttack передает намерение карте. Ядро не знает правил перехода:
// их задаёт policy. Атака мимо карты игнорируется.
func ApplyMapAttack(m *domain.Map, policy domain.TerrainPolicy, tick uint32, a domain.MapAttack) bool {
	from, to, changed := m.ApplyTransition(a.MapPos, policy, a.Strength)

	if logger.Log.IsLevelEnabled(logrus.DebugLevel) {
		logger.Log.WithFields(logrus.Fields{
			"component": "terrain_system",
			"tick":      tick,
			"source":    a.Source.Index(),
			"map_pos":   a.MapPos,
			"strength":  a.Strength,
			"from":      from.String(),
			"to":        to.String(),
			"changed":   changed,
		}).Debug("Map attack resolved.")
	}

	return changed
}
