// Package cache holds an in-memory snapshot of the upstream reference data
// (books, users, categories). The snapshot refreshes on first use, when an
// invalidation event arrives on the bus, and on a long-interval polling
// fallback job. Re-fetching is always safe; stale reads are acceptable
// between refreshes.
package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"biblioteca-gateway/internal/client"
	"biblioteca-gateway/internal/domain"
	"biblioteca-gateway/internal/events"
	"biblioteca-gateway/internal/logger"
)

type ReferenceCache struct {
	catalog client.CatalogAPI
	users   client.UserAPI

	mu         sync.RWMutex
	books      []domain.Book
	userList   []domain.User
	categories []domain.Category
	loadedAt   time.Time
}

func NewReferenceCache(catalog client.CatalogAPI, users client.UserAPI) *ReferenceCache {
	return &ReferenceCache{catalog: catalog, users: users}
}

// Refresh fetches all three reference collections concurrently and swaps the
// snapshot atomically. On error the previous snapshot is kept.
func (c *ReferenceCache) Refresh(ctx context.Context) error {
	var (
		books      []domain.Book
		userList   []domain.User
		categories []domain.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		books, err = c.catalog.ListBooks(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		userList, err = c.users.ListUsers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = c.catalog.ListCategories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	c.mu.Lock()
	c.books = books
	c.userList = userList
	c.categories = categories
	c.loadedAt = time.Now()
	c.mu.Unlock()
	return nil
}

// Invalidate marks the snapshot stale; the next read triggers a refresh.
func (c *ReferenceCache) Invalidate() {
	c.mu.Lock()
	c.loadedAt = time.Time{}
	c.mu.Unlock()
}

func (c *ReferenceCache) loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.loadedAt.IsZero()
}

func (c *ReferenceCache) ensure(ctx context.Context) error {
	if c.loaded() {
		return nil
	}
	return c.Refresh(ctx)
}

func (c *ReferenceCache) Books(ctx context.Context) ([]domain.Book, error) {
	if err := c.ensure(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Book, len(c.books))
	copy(out, c.books)
	return out, nil
}

func (c *ReferenceCache) Users(ctx context.Context) ([]domain.User, error) {
	if err := c.ensure(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.User, len(c.userList))
	copy(out, c.userList)
	return out, nil
}

func (c *ReferenceCache) Categories(ctx context.Context) ([]domain.Category, error) {
	if err := c.ensure(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Category, len(c.categories))
	copy(out, c.categories)
	return out, nil
}

// Watch invalidates the snapshot whenever sanction counts, the loan
// collection or the catalog change, so the next read sees fresh data.
// Runs until ctx is cancelled.
func (c *ReferenceCache) Watch(ctx context.Context, bus *events.Bus) {
	sub := bus.Subscribe(events.TopicSanctionsUpdated, events.TopicLoansUpdated, events.TopicCatalogUpdated)
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-sub.C:
				logger.Debug("Reference cache invalidated", "topic", ev.Topic)
				c.Invalidate()
			}
		}
	}()
}
