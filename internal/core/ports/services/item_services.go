package services

import (
	"context"

	"github.com/findash/finance_dashboard_app/internal/core/domain"
	"github.com/findash/finance_dashboard_app/internal/csvimport"
	"github.com/findash/finance_dashboard_app/internal/dto"
)

// ItemReaderSvc is the read-only view of the item registry that goal,
// summary and timeline services depend on.
type ItemReaderSvc interface {
	GetItem(ctx context.Context, itemID string) (*domain.Item, error)
	ListItems(ctx context.Context) ([]domain.Item, error)
}

// ItemSvcFacade is the full item registry: CRUD over items and their
// transaction lists. Every mutation of an item's data re-runs the metrics
// engine and persists the refreshed derived state before returning.
type ItemSvcFacade interface {
	ItemReaderSvc

	CreateItem(ctx context.Context, req dto.CreateItemRequest) (*domain.Item, error)
	UpdateItem(ctx context.Context, itemID string, req dto.UpdateItemRequest) (*domain.Item, error)
	DeleteItem(ctx context.Context, itemID string) error

	AddEntry(ctx context.Context, itemID string, req dto.AddEntryRequest) (*domain.Item, error)
	DeleteEntry(ctx context.Context, itemID, entryID string) (*domain.Item, error)
	ClearEntries(ctx context.Context, itemID string) (*domain.Item, error)
	// ImportEntries appends parsed CSV rows to an item's history and
	// returns the refreshed item plus the number of rows actually
	// imported; future-dated rows are skipped and excluded from the count.
	ImportEntries(ctx context.Context, itemID string, rows []csvimport.Row) (*domain.Item, int, error)

	ReorderItems(ctx context.Context, order []string) error
	ItemOrder(ctx context.Context) ([]string, error)
}
