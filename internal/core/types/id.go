package types

import (
	"fmt"
	"strconv"
)

// EntityID - идентификатор сущности внутри одного тика.
//
// Это плотный индекс в текущей коллекции сущностей игры, упакованный
// вместе с номером тика, который его выдал:
//
//	[ Generation (32) | Index (32) ]
//
// Где:
//   - Generation - номер тика, в котором id был выдан
//   - Index - индекс сущности в коллекции на начало этого тика
//
// После фазы удаления мёртвых индексы сдвигаются, поэтому id нельзя
// хранить между тиками. Generation позволяет фазе применения эффектов
// громко упасть на устаревшем id вместо того, чтобы молча ударить
// не ту сущность.
type EntityID uint64

const (
	bitsIndex = 32
	bitsGen   = 32

	shiftGen = bitsIndex

	maskIndex = (1 << bitsIndex) - 1
	maskGen   = (1 << bitsGen) - 1
)

// PackEntityID собирает EntityID из номера тика и индекса.
// Проверок диапазонов нет: индекс больше 2^32 не бывает на практике.
func PackEntityID(tick uint32, index int) EntityID {
	return EntityID((uint64(tick) << shiftGen) | (uint64(index) & maskIndex))
}

// Index возвращает индекс сущности в коллекции.
func (id EntityID) Index() int {
	return int(id & maskIndex)
}

// Generation возвращает номер тика, выдавшего id.
func (id EntityID) Generation() uint32 {
	return uint32((id >> shiftGen) & maskGen)
}

// IssuedAt проверяет, что id выдан в тике tick.
func (id EntityID) IssuedAt(tick uint32) bool {
	return id.Generation() == tick
}

// String возвращает человекочитаемое представление для логов.
func (id EntityID) String() string {
	return fmt.Sprintf("[tick=%d idx=%d]", id.Generation(), id.Index())
}

// MarshalJSON сериализует EntityID строкой, чтобы JavaScript не терял точность uint64.
func (id EntityID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatUint(uint64(id), 10) + `"`), nil
}

// UnmarshalJSON принимает и строковое, и числовое представление.
func (id *EntityID) UnmarshalJSON(data []byte) error {
	s := string(data)

	if len(s) > 1 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}

	if s == "" {
		*id = 0
		return nil
	}

	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("entity id %q: %w", s, err)
	}

	*id = EntityID(v)
	return nil
}
