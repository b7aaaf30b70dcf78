package jsondb

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

// cloneItem detaches the transaction slice so callers mutating their copy
// in place cannot reach the document's backing array outside the store
// lock. Derived state is replaced wholesale on write, never edited in
// place, so the remaining fields copy shallow.
func cloneItem(item domain.Item) domain.Item {
	item.Data = append([]domain.Transaction(nil), item.Data...)
	return item
}

func (r *itemRepository) FindItemByID(ctx context.Context, itemID string) (*domain.Item, error) {
	var found *domain.Item
	r.store.read(func(doc document) {
		for i := range doc.FinancialItems {
			if doc.FinancialItems[i].ItemID == itemID {
				item := cloneItem(doc.FinancialItems[i])
				found = &item
				return
			}
		}
	})
	if found == nil {
		return nil, fmt.Errorf("%w: item %s", apperrors.ErrNotFound, itemID)
	}
	return found, nil
}

func (r *itemRepository) ListItems(ctx context.Context) ([]domain.Item, error) {
	var items []domain.Item
	r.store.read(func(doc document) {
		items = make([]domain.Item, 0, len(doc.FinancialItems))
		for i := range doc.FinancialItems {
			items = append(items, cloneItem(doc.FinancialItems[i]))
		}
	})
	return items, nil
}

func (r *itemRepository) FindItemOrder(ctx context.Context) ([]string, error) {
	var order []string
	r.store.read(func(doc document) {
		order = append([]string(nil), doc.ItemOrder...)
	})
	return order, nil
}

func (r *itemRepository) SaveItem(ctx context.Context, item domain.Item) error {
	var dup bool
	err := r.store.mutate(func(doc *document) {
		for i := range doc.FinancialItems {
			if doc.FinancialItems[i].ItemID == item.ItemID {
				dup = true
				return
			}
		}
		doc.FinancialItems = append(doc.FinancialItems, cloneItem(item))
	})
	if err != nil {
		return err
	}
	if dup {
		return fmt.Errorf("%w: item %s", apperrors.ErrDuplicate, item.ItemID)
	}
	return nil
}

func (r *itemRepository) UpdateItem(ctx context.Context, item domain.Item) error {
	var found bool
	err := r.store.mutate(func(doc *document) {
		for i := range doc.FinancialItems {
			if doc.FinancialItems[i].ItemID == item.ItemID {
				doc.FinancialItems[i] = cloneItem(item)
				found = true
				return
			}
		}
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: item %s", apperrors.ErrNotFound, item.ItemID)
	}
	return nil
}

func (r *itemRepository) DeleteItem(ctx context.Context, itemID string) error {
	var found bool
	err := r.store.mutate(func(doc *document) {
		for i := range doc.FinancialItems {
			if doc.FinancialItems[i].ItemID == itemID {
				doc.FinancialItems = append(doc.FinancialItems[:i], doc.FinancialItems[i+1:]...)
				found = true
				return
			}
		}
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: item %s", apperrors.ErrNotFound, itemID)
	}
	return nil
}

func (r *itemRepository) SaveItemOrder(ctx context.Context, order []string) error {
	return r.store.mutate(func(doc *document) {
		doc.ItemOrder = append([]string(nil), order...)
	})
}

func (r *itemRepository) ReplaceItems(ctx context.Context, items []domain.Item) error {
	return r.store.mutate(func(doc *document) {
		doc.FinancialItems = make([]domain.Item, 0, len(items))
		for i := range items {
			doc.FinancialItems = append(doc.FinancialItems, cloneItem(items[i]))
		}
	})
}
