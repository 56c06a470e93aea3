package entity

import (
	"time"

	"github.com/zaz600/go-shortener-cli/internal/pkg/random"
)

// LinkEntity сокращенная ссылка в хранилище эмулятора API
type LinkEntity struct {
	// ID идентификатор короткой ссылки без базового адреса
	ID      string    `json:"id"`
	LongURL string    `json:"long_url"`
	Created time.Time `json:"created"`
	// ShortURLClicks переходы по короткой ссылке
	ShortURLClicks int64 `json:"short_url_clicks"`
	// LongURLClicks переходы на длинную ссылку через любые короткие
	LongURLClicks int64 `json:"long_url_clicks"`
}

func NewLinkEntity(longURL string) LinkEntity {
	return LinkEntity{
		ID:      random.String(8),
		LongURL: longURL,
		Created: time.Now().UTC(),
	}
}

// Click учитывает переход по короткой ссылке
func (e *LinkEntity) Click() {
	e.ShortURLClicks++
	e.LongURLClicks++
}
