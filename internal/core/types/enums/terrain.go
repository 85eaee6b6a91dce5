package enums

import "strings"

// Terrain - классификация клетки карты. Нулевое значение - "не задано".
type Terrain uint8

const (
	TerrainNone Terrain = iota
	TerrainWater
	TerrainFloor
	TerrainWall
	TerrainClosedDoor
	TerrainOpenDoor
)

var terrainToString = map[Terrain]string{
	TerrainNone:       "NONE",
	TerrainWater:      "WATER",
	TerrainFloor:      "FLOOR",
	TerrainWall:       "WALL",
	TerrainClosedDoor: "CLOSED_DOOR",
	TerrainOpenDoor:   "OPEN_DOOR",
}

var terrainStringToType = map[string]Terrain{
	"NONE":        TerrainNone,
	"WATER":       TerrainWater,
	"FLOOR":       TerrainFloor,
	"WALL":        TerrainWall,
	"CLOSED_DOOR": TerrainClosedDoor,
	"OPEN_DOOR":   TerrainOpenDoor,
}

// Символы ASCII-раскладки карты
var terrainToGlyph = map[Terrain]rune{
	TerrainNone:       ' ',
	TerrainWater:      '~',
	TerrainFloor:      '.',
	TerrainWall:       '#',
	TerrainClosedDoor: '+',
	TerrainOpenDoor:   '/',
}

var glyphToTerrain = map[rune]Terrain{
	' ': TerrainNone,
	'~': TerrainWater,
	'.': TerrainFloor,
	'#': TerrainWall,
	'+': TerrainClosedDoor,
	'/': TerrainOpenDoor,
}

// String возвращает строковое представление (для логов и конфигов)
func (t Terrain) String() string {
	if val, ok := terrainToString[t]; ok {
		return val
	}
	return "UNKNOWN"
}

// ParseTerrain конвертирует строку в Terrain. Неизвестное значение - TerrainNone.
func ParseTerrain(s string) Terrain {
	upper := strings.ToUpper(strings.TrimSpace(s))
	if val, ok := terrainStringToType[upper]; ok {
		return val
	}
	return TerrainNone
}

// IsWalkable - можно ли стоять на клетке.
// Не задано, стена и закрытая дверь - нельзя.
func (t Terrain) IsWalkable() bool {
	switch t {
	case TerrainWater, TerrainFloor, TerrainOpenDoor:
		return true
	default:
		return false
	}
}

// Glyph возвращает символ клетки в ASCII-раскладке.
func (t Terrain) Glyph() rune {
	if g, ok := terrainToGlyph[t]; ok {
		return g
	}
	return '?'
}

// TerrainFromGlyph разбирает символ раскладки. ok=false для незнакомого символа.
func TerrainFromGlyph(r rune) (Terrain, bool) {
	t, ok := glyphToTerrain[r]
	return t, ok
}

// MarshalYAML / UnmarshalYAML позволяют писать в конфиге "wall", "open_door" и т.п.
func (t Terrain) MarshalYAML() (any, error) {
	return strings.ToLower(t.String()), nil
}

func (t *Terrain) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	*t = ParseTerrain(s)
	return nil
}
