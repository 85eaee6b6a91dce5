package systems

import "gridsim/internal/domain"

// Значения по умолчанию для поведения игрока.
// Это политика (баланс), а не часть ядра: переопределяется конфигом и PlayerData.
const (
	DefaultAttackDistance float32 = 2.0
	DefaultAttackStrength float32 = 0.25
)

// DefaultPlayerStep - пробный шаг игрока за тик.
var DefaultPlayerStep = domain.V2(0.1, 0)

// Rules - параметры поведения, общие для всей игры.
type Rules struct {
	AttackDistance float32     `yaml:"attack_distance"`
	AttackStrength float32     `yaml:"attack_strength"`
	PlayerStep     domain.Vec2 `yaml:"player_step"`
}

// DefaultRules возвращает правила по умолчанию.
func DefaultRules() Rules {
	return Rules{
		AttackDistance: DefaultAttackDistance,
		AttackStrength: DefaultAttackStrength,
		PlayerStep:     DefaultPlayerStep,
	}
}

// forPlayer накладывает персональные параметры игрока поверх общих правил.
func (r Rules) forPlayer(p domain.PlayerData) (step domain.Vec2, distance, strength float32) {
	return p.Step.Or(r.PlayerStep), p.AttackDistance.Or(r.AttackDistance), p.AttackStrength.Or(r.AttackStrength)
}
