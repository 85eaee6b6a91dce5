package enums

import "strings"

// EntityKind - вид сущности. Используется в логах, DTO и при заселении мира.
// Поведение диспатчится по самому классу (domain.EntityClass), а не по этому полю.
type EntityKind uint8

const (
	EntityKindUnknown EntityKind = iota
	EntityKindPlayer
	EntityKindMonster
	EntityKindItem
)

var entityKindToString = map[EntityKind]string{
	EntityKindPlayer:  "PLAYER",
	EntityKindMonster: "MONSTER",
	EntityKindItem:    "ITEM",
}

var entityKindStringToKind = map[string]EntityKind{
	"PLAYER":  EntityKindPlayer,
	"MONSTER": EntityKindMonster,
	"ITEM":    EntityKindItem,
}

// String возвращает строковое представление (для логов и дебага)
func (e EntityKind) String() string {
	if val, ok := entityKindToString[e]; ok {
		return val
	}
	return "UNKNOWN"
}

// ParseEntityKind конвертирует строку в Enum (нужно для загрузки конфигов)
func ParseEntityKind(s string) EntityKind {
	upper := strings.ToUpper(s)
	if val, ok := entityKindStringToKind[upper]; ok {
		return val
	}
	return EntityKindUnknown
}
