package api

// --- СЕРВЕР -> ЗРИТЕЛЬ ---

// Типы сообщений
const (
	MessageTypeTick = "TICK"
)

// Состояния симуляции в TickMessage.State
const (
	GameStateRunning = "RUNNING"
	GameStateStopped = "STOPPED"
)

// Виды эффектов в EffectView.Kind
const (
	EffectKindAttack    = "ATTACK"
	EffectKindMapAttack = "MAP_ATTACK"
)

// TickMessage - снимок мира после одного тика.
// Отправляется всем зрителям после каждого тика.
type TickMessage struct {
	// Type тип сообщения. На данный момент всегда "TICK".
	Type string `json:"type"`

	// Tick номер тика, начиная с 1.
	Tick uint32 `json:"tick"`

	// State "RUNNING" или "STOPPED". После "STOPPED" сообщений больше не будет.
	State string `json:"state"`

	// Reaped сколько сущностей умерло в этом тике.
	Reaped int `json:"reaped"`

	// Grid метаданные о размере карты.
	Grid *GridMeta `json:"grid,omitempty"`

	// Map ASCII-раскладка карты, строка на каждый y.
	// Карта меняется только атаками по карте, но шлётся целиком.
	Map []string `json:"map,omitempty"`

	// Effects применённые эффекты в порядке применения.
	// Индексы source/target относятся к коллекции ДО удаления мёртвых.
	Effects []EffectView `json:"effects"`

	// Entities выжившие после тика. Index - позиция в коллекции на следующий тик.
	Entities []EntityView `json:"entities"`
}

// GridMeta содержит размер карты (она квадратная).
type GridMeta struct {
	Size int `json:"size"`
}

type Point struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// EffectView это DTO для одного применённого эффекта.
type EffectView struct {
	Kind     string  `json:"kind"`
	Source   int     `json:"source"`
	Target   *int    `json:"target,omitempty"`
	MapPos   *Point  `json:"mapPos,omitempty"`
	Strength float32 `json:"strength"`
}

// EntityView это DTO для сущности.
type EntityView struct {
	Index  int     `json:"index"`
	Kind   string  `json:"kind"` // PLAYER, MONSTER, ITEM
	Pos    Point   `json:"pos"`
	Health float32 `json:"health"`
}
