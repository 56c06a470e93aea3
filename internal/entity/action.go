package entity

import "fmt"

// Action действие, которое выполняется над каждой ссылкой из командной строки.
// Выбирается один раз на запуск.
type Action int

const (
	// ActionCreate сократить длинную ссылку. Действие по умолчанию.
	ActionCreate Action = iota
	// ActionExpand развернуть короткую ссылку
	ActionExpand
	// ActionStats показать статистику переходов по короткой ссылке
	ActionStats
)

func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionExpand:
		return "expand"
	case ActionStats:
		return "stats"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}
