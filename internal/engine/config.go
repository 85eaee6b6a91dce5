package engine

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"gridsim/internal/core/types/enums"
	"gridsim/internal/domain"
	"gridsim/internal/systems"
	"gridsim/pkg/dungeon"

	"gopkg.in/yaml.v3"
)

// Config хранит параметры запуска симуляции
type Config struct {
	// Seed - зерно генератора мира. Одинаковый Seed - одинаковый мир.
	Seed    int64 `yaml:"seed"`
	MapSize int   `yaml:"map_size"`

	// Workers - сколько решений считать параллельно.
	Workers int `yaml:"workers"`

	// MaxTicks - предохранитель от бесконечной симуляции (0 - без ограничения).
	MaxTicks int `yaml:"max_ticks"`

	// TickIntervalMs - пауза между тиками для хоста со зрителями. Ядро её не использует.
	TickIntervalMs int `yaml:"tick_interval_ms"`

	// Layout - готовая ASCII-карта. Если задана, генератор не используется.
	Layout []string `yaml:"layout"`

	Rules       systems.Rules               `yaml:"rules"`
	Population  dungeon.Population          `yaml:"population"`
	Transitions []systems.TerrainTransition `yaml:"transitions"`
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:     time.Now().UnixNano(),
		MapSize:  32,
		Workers:  runtime.NumCPU(),
		MaxTicks: 10000,
		Rules:    systems.DefaultRules(),
		Population: dungeon.Population{
			Players:  4,
			Monsters: 4,
			Items:    2,
			Health:   1,
		},
		Transitions: []systems.TerrainTransition{
			{From: enums.TerrainWall, To: enums.TerrainFloor, MinStrength: 1},
			{From: enums.TerrainClosedDoor, To: enums.TerrainOpenDoor},
		},
	}
}

// LoadConfig читает YAML поверх значений по умолчанию.
func LoadConfig(path string) (Config, error) {
	cfg := NewConfig()

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate проверяет значения, которые ядро не может переварить.
func (c Config) Validate() error {
	var errs []error
	if c.MapSize < 0 && len(c.Layout) == 0 {
		errs = append(errs, fmt.Errorf("map_size %d must be non-negative", c.MapSize))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers %d must be non-negative", c.Workers))
	}
	if c.MaxTicks < 0 {
		errs = append(errs, fmt.Errorf("max_ticks %d must be non-negative", c.MaxTicks))
	}
	if c.TickIntervalMs < 0 {
		errs = append(errs, fmt.Errorf("tick_interval_ms %d must be non-negative", c.TickIntervalMs))
	}
	if c.Rules.AttackDistance < 0 || c.Rules.AttackStrength < 0 {
		errs = append(errs, errors.New("rules: attack distance and strength must be non-negative"))
	}
	return errors.Join(errs...)
}

// TickInterval - пауза между тиками для хоста.
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

// Options переводит конфиг в опции Game.
func (c Config) Options() []Option {
	return []Option{
		WithRules(c.Rules),
		WithWorkers(c.Workers),
		WithTerrainPolicy(systems.NewTransitionTable(c.Transitions)),
	}
}

// BuildWorld заселяет мир: из Layout, если он задан, иначе генератором.
func (c Config) BuildWorld() (*domain.Map, []domain.Entity, error) {
	if len(c.Layout) > 0 {
		m, entities, err := dungeon.ParseLayout(c.Layout, c.Population.Health)
		if err != nil {
			return nil, nil, fmt.Errorf("layout: %w", err)
		}
		return m, entities, nil
	}
	return dungeon.Generate(c.MapSize, c.Seed, c.Population)
}

// NewGameFromConfig собирает игру целиком. Дополнительные опции применяются после конфига.
func NewGameFromConfig(c Config, extra ...Option) (*Game, error) {
	m, entities, err := c.BuildWorld()
	if err != nil {
		return nil, err
	}
	return NewGame(m, entities, append(c.Options(), extra...)...), nil
}
