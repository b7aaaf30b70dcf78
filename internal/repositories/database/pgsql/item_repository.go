package pgsql

import (
	"context"
	"fmt"

	"github.com/findash/finance_dashboard_app/internal/apperrors"
	"github.com/findash/finance_dashboard_app/internal/core/domain"
	portsrepo "github.com/findash/finance_dashboard_app/internal/core/ports/repositories"
)

type itemRepository struct {
	store *Store
}

func newItemRepository(store *Store) portsrepo.ItemRepositoryFacade {
	return &itemRepository{store: store}
}

var _ portsrepo.ItemRepositoryFacade = (*itemRepository)(nil)

func (r *itemRepository) loadItems(ctx context.Context) ([]domain.Item, error) {
	var items []domain.Item
	if err := r.store.getCollection(ctx, collectionItems, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) FindItemByID(ctx context.Context, itemID string) (*domain.Item, error) {
	items, err := r.loadItems(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ItemID == itemID {
			return &items[i], nil
		}
	}
	return nil, fmt.Errorf("%w: item %s", apperrors.ErrNotFound, itemID)
}

func (r *itemRepository) ListItems(ctx context.Context) ([]domain.Item, error) {
	return r.loadItems(ctx)
}

func (r *itemRepository) FindItemOrder(ctx context.Context) ([]string, error) {
	var order []string
	if err := r.store.getCollection(ctx, collectionItemOrder, &order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *itemRepository) SaveItem(ctx context.Context, item domain.Item) error {
	items, err := r.loadItems(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ItemID == item.ItemID {
			return fmt.Errorf("%w: item %s", apperrors.ErrDuplicate, item.ItemID)
		}
	}
	return r.store.putCollection(ctx, collectionItems, append(items, item))
}

func (r *itemRepository) UpdateItem(ctx context.Context, item domain.Item) error {
	items, err := r.loadItems(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ItemID == item.ItemID {
			items[i] = item
			return r.store.putCollection(ctx, collectionItems, items)
		}
	}
	return fmt.Errorf("%w: item %s", apperrors.ErrNotFound, item.ItemID)
}

func (r *itemRepository) DeleteItem(ctx context.Context, itemID string) error {
	items, err := r.loadItems(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ItemID == itemID {
			items = append(items[:i], items[i+1:]...)
			return r.store.putCollection(ctx, collectionItems, items)
		}
	}
	return fmt.Errorf("%w: item %s", apperrors.ErrNotFound, itemID)
}

func (r *itemRepository) SaveItemOrder(ctx context.Context, order []string) error {
	if order == nil {
		order = []string{}
	}
	return r.store.putCollection(ctx, collectionItemOrder, order)
}

func (r *itemRepository) ReplaceItems(ctx context.Context, items []domain.Item) error {
	if items == nil {
		items = []domain.Item{}
	}
	return r.store.putCollection(ctx, collectionItems, items)
}
