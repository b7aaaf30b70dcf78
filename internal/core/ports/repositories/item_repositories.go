package repositories

import (
	"context"

	"github.com/findash/finance_dashboard_app/internal/core/domain"
)

// ItemReader defines read operations for financial items.
type ItemReader interface {
	// FindItemByID retrieves a specific item by its unique identifier.
	FindItemByID(ctx context.Context, itemID string) (*domain.Item, error)

	// ListItems retrieves every stored item.
	ListItems(ctx context.Context) ([]domain.Item, error)

	// FindItemOrder retrieves the persisted display ordering of item ids.
	FindItemOrder(ctx context.Context) ([]string, error)
}

// ItemWriter defines write operations for financial items. Every write
// persists before returning; there is no deferred flush.
type ItemWriter interface {
	// SaveItem persists a new item.
	SaveItem(ctx context.Context, item domain.Item) error

	// UpdateItem replaces an existing item, including its transaction
	// list and derived state.
	UpdateItem(ctx context.Context, item domain.Item) error

	// DeleteItem removes an item. Goals referencing it are untouched.
	DeleteItem(ctx context.Context, itemID string) error

	// SaveItemOrder replaces the persisted display ordering.
	SaveItemOrder(ctx context.Context, order []string) error

	// ReplaceItems swaps the whole collection at once (dashboard import).
	ReplaceItems(ctx context.Context, items []domain.Item) error
}

// ItemRepositoryFacade combines all item repository interfaces.
type ItemRepositoryFacade interface {
	ItemReader
	ItemWriter
}
