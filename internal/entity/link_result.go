package entity

// CreateResult ответ API на сокращение ссылки
type CreateResult struct {
	LongURL string
	// ID короткая ссылка
	ID string
}

// ExpandResult ответ API на разворачивание короткой ссылки
type ExpandResult struct {
	LongURL string
	ID      string
	// Status статус ссылки, например OK
	Status string
}

// StatsResult ответ API со статистикой по короткой ссылке (projection=FULL).
// Счетчики берутся из analytics.allTime.
type StatsResult struct {
	LongURL        string
	ID             string
	Status         string
	Created        string
	ShortURLClicks int64
	LongURLClicks  int64
}

// Result разобранный ответ API. Тип результата определяется действием.
type Result interface {
	Action() Action
}

func (CreateResult) Action() Action { return ActionCreate }

func (ExpandResult) Action() Action { return ActionExpand }

func (StatsResult) Action() Action { return ActionStats }
