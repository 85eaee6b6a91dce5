package dungeon

import (
	"errors"
	"fmt"
	"math/rand"

	"gridsim/internal/core/types/enums"
	"gridsim/internal/domain"
	"gridsim/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Константы генерации
const (
	MaxRooms = 8
	MinSize  = 4
	MaxSize  = 10
)

var ErrNoRoom = errors.New("not enough walkable cells for population")

// Population - сколько и каких сущностей заселить.
type Population struct {
	Players  int     `yaml:"players"`
	Monsters int     `yaml:"monsters"`
	Items    int     `yaml:"items"`
	Health   float32 `yaml:"health"` // Начальное здоровье, 0 - значит 1
}

func (p Population) total() int {
	return p.Players + p.Monsters + p.Items
}

func (p Population) health() float32 {
	if p.Health <= 0 {
		return 1
	}
	return p.Health
}

// Generate создает карту size x size и заселяет её.
// Результат полностью определяется seed.
func Generate(size int, seed int64, pop Population) (*domain.Map, []domain.Entity, error) {
	m, err := domain.NewMap(size)
	if err != nil {
		return nil, nil, err
	}

	rng := rand.New(rand.NewSource(seed))

	// 1. Маленькая карта - одна комната во всю площадь
	var rooms []Rect
	if size < MinSize+2 {
		fill(m, enums.TerrainFloor)
	} else {
		fill(m, enums.TerrainWall)
		rooms = carveRooms(m, rng)
	}

	// 2. Лужа в центре случайной комнаты
	if len(rooms) > 0 {
		cx, cy := rooms[rng.Intn(len(rooms))].Center()
		_ = m.SetCell(cx, cy, enums.TerrainWater)
	}

	// 3. Заселение
	entities, err := populate(m, pop, rng)
	if err != nil {
		return nil, nil, fmt.Errorf("generate (size=%d seed=%d): %w", size, seed, err)
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "dungeon_generator",
		"size":      size,
		"seed":      seed,
		"rooms":     len(rooms),
		"entities":  len(entities),
	}).Debug("World generated.")

	return m, entities, nil
}

func carveRooms(m *domain.Map, rng *rand.Rand) []Rect {
	size := m.Size()
	maxSize := min(MaxSize, size-2)

	var rooms []Rect
	for i := 0; i < MaxRooms; i++ {
		w := randRange(rng, MinSize, maxSize)
		h := randRange(rng, MinSize, maxSize)
		x := randRange(rng, 0, size-w-1)
		y := randRange(rng, 0, size-h-1)

		newRoom := Rect{X: x, Y: y, W: w, H: h}
		failed := false
		for _, other := range rooms {
			if newRoom.Intersects(other) {
				failed = true
				break
			}
		}
		if failed {
			continue
		}

		createRoom(m, newRoom)

		if len(rooms) > 0 {
			// Соединяем с предыдущей комнатой
			prevX, prevY := rooms[len(rooms)-1].Center()
			currX, currY := newRoom.Center()

			if rng.Intn(2) == 0 {
				createHCorridor(m, prevX, currX, prevY)
				createVCorridor(m, prevY, currY, currX)
			} else {
				createVCorridor(m, prevY, currY, prevX)
				createHCorridor(m, prevX, currX, currY)
			}
		}
		rooms = append(rooms, newRoom)
	}

	for _, room := range rooms {
		placeDoors(m, room, rng)
	}
	return rooms
}

// populate ставит сущности в центры случайных проходимых клеток (по одной на клетку).
// Порядок в результате: игроки, монстры, предметы.
func populate(m *domain.Map, pop Population, rng *rand.Rand) ([]domain.Entity, error) {
	var free [][2]int
	for y := 0; y < m.Size(); y++ {
		for x := 0; x < m.Size(); x++ {
			if t, _ := m.Cell(x, y); t.IsWalkable() {
				free = append(free, [2]int{x, y})
			}
		}
	}

	if pop.total() > len(free) {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrNoRoom, pop.total(), len(free))
	}

	rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })

	entities := make([]domain.Entity, 0, pop.total())
	next := func() domain.Vec2 {
		c := free[len(entities)]
		return domain.V2(float32(c[0])+0.5, float32(c[1])+0.5)
	}

	hp := pop.health()
	for i := 0; i < pop.Players; i++ {
		entities = append(entities, domain.NewPlayer(next(), hp))
	}
	for i := 0; i < pop.Monsters; i++ {
		entities = append(entities, domain.NewMonster(next(), hp))
	}
	for i := 0; i < pop.Items; i++ {
		entities = append(entities, domain.NewItem(next(), hp))
	}
	return entities, nil
}
