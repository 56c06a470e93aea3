package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/zaz600/go-shortener-cli/internal/entity"
)

type InMemoryLinksRepository struct {
	mu *sync.RWMutex
	db map[string]entity.LinkEntity
	// longURLs индекс длинная ссылка -> идентификатор короткой
	longURLs map[string]string
}

func NewInMemoryLinksRepository(db map[string]entity.LinkEntity) *InMemoryLinksRepository {
	if db == nil {
		db = make(map[string]entity.LinkEntity)
	}
	longURLs := make(map[string]string, len(db))
	for id, e := range db {
		longURLs[e.LongURL] = id
	}
	return &InMemoryLinksRepository{
		mu:       &sync.RWMutex{},
		db:       db,
		longURLs: longURLs,
	}
}

func (m *InMemoryLinksRepository) Get(_ context.Context, linkID string) (*entity.LinkEntity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if e, ok := m.db[linkID]; ok {
		return &e, nil
	}
	return nil, ErrLinkNotFound
}

func (m *InMemoryLinksRepository) PutIfAbsent(_ context.Context, linkEntity entity.LinkEntity) (entity.LinkEntity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if linkID, ok := m.longURLs[linkEntity.LongURL]; ok {
		return m.db[linkID], NewLinkExistsError(linkID)
	}
	if _, ok := m.db[linkEntity.ID]; ok {
		return linkEntity, fmt.Errorf("%w: %s", ErrLinkIDTaken, linkEntity.ID)
	}
	m.db[linkEntity.ID] = linkEntity
	m.longURLs[linkEntity.LongURL] = linkEntity.ID
	return linkEntity, nil
}

func (m *InMemoryLinksRepository) Click(_ context.Context, linkID string) (*entity.LinkEntity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.db[linkID]
	if !ok {
		return nil, ErrLinkNotFound
	}
	e.Click()
	m.db[linkID] = e
	return &e, nil
}

func (m *InMemoryLinksRepository) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.db), nil
}

func (m *InMemoryLinksRepository) Close(_ context.Context) error {
	return nil
}
