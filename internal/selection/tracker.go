// Package selection - состояние мультивыбора в списке админки.
// Трекер живёт на стороне клиента списка: однопоточный, реагирует только
// на события UI, никуда не персистится и сбрасывается при навигации.
package selection

import (
	"sort"

	"github.com/samber/lo"
)

// Tracker - множество выбранных ID поверх видимого списка.
// Инвариант: выбранным может быть только ID из текущего видимого списка.
type Tracker struct {
	visible  []string
	selected map[string]struct{}
}

// NewTracker создаёт трекер для переданного видимого списка
func NewTracker(visibleIDs []string) *Tracker {
	t := &Tracker{selected: make(map[string]struct{})}
	t.Reconcile(visibleIDs)
	return t
}

// Toggle переключает выбор одного ID. ID вне видимого списка игнорируется.
func (t *Tracker) Toggle(id string) {
	if !lo.Contains(t.visible, id) {
		return
	}
	if _, ok := t.selected[id]; ok {
		delete(t.selected, id)
	} else {
		t.selected[id] = struct{}{}
	}
}

// SelectAll заменяет выбор ровно на видимые сейчас ID.
// Выбор через страницы не поддерживается: чекбокс "выбрать всё" работает
// в пределах текущей страницы/фильтра.
func (t *Tracker) SelectAll(visibleIDs []string) {
	t.visible = lo.Uniq(visibleIDs)
	t.selected = make(map[string]struct{}, len(t.visible))
	for _, id := range t.visible {
		t.selected[id] = struct{}{}
	}
}

// Clear снимает выбор целиком
func (t *Tracker) Clear() {
	t.selected = make(map[string]struct{})
}

// Reconcile обновляет видимый список после перезагрузки (например, после
// успешного bulk-действия) и выбрасывает из выбора исчезнувшие ID
func (t *Tracker) Reconcile(visibleIDs []string) {
	t.visible = lo.Uniq(visibleIDs)
	for id := range t.selected {
		if !lo.Contains(t.visible, id) {
			delete(t.selected, id)
		}
	}
}

// Selected сообщает, выбран ли ID
func (t *Tracker) Selected(id string) bool {
	_, ok := t.selected[id]
	return ok
}

// IDs возвращает выбранные ID в стабильном порядке - удобно класть
// в тело bulk-запроса
func (t *Tracker) IDs() []string {
	ids := lo.Keys(t.selected)
	sort.Strings(ids)
	return ids
}

// AllSelected - выбран весь видимый список (для непустого списка)
func (t *Tracker) AllSelected() bool {
	return len(t.visible) > 0 && len(t.selected) == len(t.visible)
}

// NoneSelected - не выбрано ничего
func (t *Tracker) NoneSelected() bool {
	return len(t.selected) == 0
}
