package repository

import (
	"context"
	"errors"

	"github.com/zaz600/go-shortener-cli/internal/entity"
)

var ErrLinkNotFound = errors.New("link not found")

// LinksRepository интерфейс для работы с хранилищем сокращенных ссылок эмулятора API
type LinksRepository interface {
	// Get достает по linkID из репозитория информацию по сокращенной ссылке entity.LinkEntity.
	// Если ссылки нет, возвращает ErrLinkNotFound.
	Get(ctx context.Context, linkID string) (*entity.LinkEntity, error)

	// PutIfAbsent сохраняет в хранилище длинную ссылку, если такой там еще нет.
	// Если длинная ссылка уже есть, возвращает LinkExistsError с идентификатором ее короткой ссылки.
	// Если идентификатор занят другой ссылкой, возвращает ErrLinkIDTaken и ничего не сохраняет.
	PutIfAbsent(ctx context.Context, linkEntity entity.LinkEntity) (entity.LinkEntity, error)

	// Click учитывает переход по короткой ссылке и возвращает ссылку с обновленными счетчиками
	Click(ctx context.Context, linkID string) (*entity.LinkEntity, error)

	// Count возвращает количество записей в репозитории.
	Count(ctx context.Context) (int, error)

	// Close закрывает, все, что надо закрыть
	Close(ctx context.Context) error
}
