// Package cache holds read-through caches for slow-changing reference data.
package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/alexanderramin/scoutline/internal/domain"
	"github.com/alexanderramin/scoutline/internal/repository"
)

const catalogKey = "catalog"

var _ repository.TaskRepo = (*TaskCatalog)(nil)

// TaskCatalog wraps a TaskRepo and memoizes the global catalog for ttl.
// Athlete-scoped reads pass straight through.
type TaskCatalog struct {
	repository.TaskRepo
	entries *expirable.LRU[string, []domain.Task]
}

// NewTaskCatalog builds a read-through catalog cache. size < 1 falls back to 1.
func NewTaskCatalog(repo repository.TaskRepo, size int, ttl time.Duration) *TaskCatalog {
	if size < 1 {
		size = 1
	}
	return &TaskCatalog{
		TaskRepo: repo,
		entries:  expirable.NewLRU[string, []domain.Task](size, nil, ttl),
	}
}

// ListCatalog serves the catalog from cache, loading it on a miss. Errors
// are not cached.
func (c *TaskCatalog) ListCatalog(ctx context.Context) ([]domain.Task, error) {
	if tasks, ok := c.entries.Get(catalogKey); ok {
		return tasks, nil
	}
	tasks, err := c.TaskRepo.ListCatalog(ctx)
	if err != nil {
		return nil, err
	}
	c.entries.Add(catalogKey, tasks)
	return tasks, nil
}

// Invalidate drops the cached catalog.
func (c *TaskCatalog) Invalidate() {
	c.entries.Purge()
}
