package dungeon

import (
	"errors"
	"fmt"

	"gridsim/internal/core/types/enums"
	"gridsim/internal/domain"
)

var (
	ErrEmptyLayout  = errors.New("layout is empty")
	ErrRaggedLayout = errors.New("layout must be square")
)

// Символы сущностей в раскладке. Клетка под сущностью - пол.
const (
	GlyphPlayer  = '@'
	GlyphMonster = 'm'
	GlyphItem    = '*'
)

// ParseLayout строит карту и сущности из ASCII-раскладки.
//
//	' ' не задано   '~' вода   '.' пол   '#' стена   '+' закрытая дверь   '/' открытая дверь
//	'@' игрок       'm' монстр '*' предмет
//
// Сущности идут в порядке чтения (строка за строкой), позиция - центр клетки.
func ParseLayout(rows []string, health float32) (*domain.Map, []domain.Entity, error) {
	if len(rows) == 0 {
		return nil, nil, ErrEmptyLayout
	}
	if health <= 0 {
		health = 1
	}

	size := len(rows)
	m, err := domain.NewMap(size)
	if err != nil {
		return nil, nil, err
	}

	var entities []domain.Entity
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != size {
			return nil, nil, fmt.Errorf("row %d has %d cells, want %d: %w", y, len(runes), size, ErrRaggedLayout)
		}

		for x, r := range runes {
			center := domain.V2(float32(x)+0.5, float32(y)+0.5)
			terrain := enums.TerrainFloor

			switch r {
			case GlyphPlayer:
				entities = append(entities, domain.NewPlayer(center, health))
			case GlyphMonster:
				entities = append(entities, domain.NewMonster(center, health))
			case GlyphItem:
				entities = append(entities, domain.NewItem(center, health))
			default:
				t, ok := enums.TerrainFromGlyph(r)
				if !ok {
					return nil, nil, fmt.Errorf("row %d col %d: unknown glyph %q", y, x, r)
				}
				terrain = t
			}

			_ = m.SetCell(x, y, terrain)
		}
	}

	return m, entities, nil
}
