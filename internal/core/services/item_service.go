package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/findash/finance_dashboard_app/internal/apperrors"
	"github.com/findash/finance_dashboard_app/internal/core/domain"
	"github.com/findash/finance_dashboard_app/internal/core/metrics"
	portsrepo "github.com/findash/finance_dashboard_app/internal/core/ports/repositories"
	portssvc "github.com/findash/finance_dashboard_app/internal/core/ports/services"
	"github.com/findash/finance_dashboard_app/internal/csvimport"
	"github.com/findash/finance_dashboard_app/internal/dto"
	"github.com/findash/finance_dashboard_app/internal/platform/events"
)

var (
	ErrFutureDate       = errors.New("transaction date cannot be in the future")
	ErrEmptyDescription = errors.New("transaction description is required")
)

// itemService is the item registry: CRUD over financial items and their
// transaction lists. Every mutation that touches an item's data refreshes
// the metrics bundle and the current value/balance scalar before the write
// is persisted; the refresh is unconditional, never debounced.
type itemService struct {
	BaseService
	repo portsrepo.ItemRepositoryFacade
	bus  *events.Bus
	now  func() domain.Date
}

// ItemServiceOption customizes an itemService.
type ItemServiceOption func(*itemService)

// WithItemClock pins the registry's notion of "today". Intended for tests.
func WithItemClock(now func() domain.Date) ItemServiceOption {
	return func(s *itemService) { s.now = now }
}

// NewItemService creates the item registry service.
func NewItemService(repo portsrepo.ItemRepositoryFacade, bus *events.Bus, opts ...ItemServiceOption) portssvc.ItemSvcFacade {
	s := &itemService{repo: repo, bus: bus, now: domain.Today}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.ItemSvcFacade = (*itemService)(nil)

func (s *itemService) CreateItem(ctx context.Context, req dto.CreateItemRequest) (*domain.Item, error) {
	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown item type %q", apperrors.ErrValidation, req.Type)
	}

	today := s.now()
	start := today
	if req.StartDate != nil {
		start = *req.StartDate
	}
	if start.After(today) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrFutureDate)
	}

	now := time.Now()
	item := domain.Item{
		ItemID:    uuid.NewString(),
		Type:      req.Type,
		Name:      req.Name,
		Color:     req.Color,
		IsVisible: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	seed, err := s.buildItem(ctx, &item, req, start, today)
	if err != nil {
		return nil, err
	}
	item.Data = seed
	item.SortData()

	if err := s.refreshDerived(ctx, &item); err != nil {
		return nil, err
	}
	if err := s.repo.SaveItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to save item: %w", err)
	}
	if err := s.appendToOrder(ctx, item.ItemID); err != nil {
		s.LogError(ctx, err, "Failed to append item to display order", slog.String("item_id", item.ItemID))
	}
	s.bus.Publish(events.ItemChanged{ItemID: item.ItemID})
	s.LogInfo(ctx, "Item created", slog.String("item_id", item.ItemID), slog.String("type", string(item.Type)))
	return &item, nil
}

// buildItem fills the type-specific fields and returns the seed
// transactions. Each type requires its own fields to be present and
// numeric; the returned error names the first missing one.
func (s *itemService) buildItem(ctx context.Context, item *domain.Item, req dto.CreateItemRequest, start, today domain.Date) ([]domain.Transaction, error) {
	switch req.Type {
	case domain.ItemTypeAccount:
		if req.InitialAmount == nil {
			return nil, missingField("initialAmount", req.Type)
		}
		return []domain.Transaction{seedTxn(start, *req.InitialAmount, domain.DescInitialBalance)}, nil

	case domain.ItemTypeCredit:
		if req.InitialAmount == nil {
			return nil, missingField("initialAmount", req.Type)
		}
		if req.CreditLimit == nil || !req.CreditLimit.IsPositive() {
			return nil, missingField("creditLimit", req.Type)
		}
		item.CreditLimit = req.CreditLimit
		item.InterestRate = req.InterestRate
		// The owed balance is entered positive but stored negative.
		stored, _ := metrics.ProcessCreditAmount(*req.InitialAmount, false)
		return []domain.Transaction{seedTxn(start, stored, domain.DescInitialBalance)}, nil

	case domain.ItemTypeInvestment:
		if req.InitialInvestment == nil {
			return nil, missingField("initialInvestment", req.Type)
		}
		item.InitialInvestment = req.InitialInvestment
		return []domain.Transaction{seedTxn(start, *req.InitialInvestment, domain.DescInitialInvestment)}, nil

	case domain.ItemTypeLoan:
		if req.OriginalAmount == nil {
			return nil, missingField("originalAmount", req.Type)
		}
		if req.InterestRate == nil {
			return nil, missingField("interestRate", req.Type)
		}
		item.OriginalAmount = req.OriginalAmount
		item.InterestRate = req.InterestRate
		item.PaymentAmount = req.PaymentAmount
		item.PaymentFrequency = req.PaymentFrequency
		seed := []domain.Transaction{seedTxn(start, *req.OriginalAmount, domain.DescInitialLoanAmount)}
		if req.GenerateSchedule {
			if req.PaymentAmount == nil {
				return nil, missingField("paymentAmount", req.Type)
			}
			if !req.PaymentFrequency.Valid() {
				return nil, missingField("paymentFrequency", req.Type)
			}
			seed = append(seed, metrics.GeneratePaymentSchedule(start, today, *req.PaymentAmount, req.PaymentFrequency)...)
		}
		return seed, nil

	case domain.ItemTypeAsset:
		if req.PurchasePrice == nil || !req.PurchasePrice.IsPositive() {
			return nil, missingField("purchasePrice", req.Type)
		}
		if req.PurchaseDate == nil {
			return nil, missingField("purchaseDate", req.Type)
		}
		if req.AssociatedLoanID != "" {
			loan, err := s.repo.FindItemByID(ctx, req.AssociatedLoanID)
			if err != nil {
				return nil, fmt.Errorf("%w: associated loan %q not found", apperrors.ErrValidation, req.AssociatedLoanID)
			}
			if loan.Type != domain.ItemTypeLoan {
				return nil, fmt.Errorf("%w: associated item %q is not a loan", apperrors.ErrValidation, req.AssociatedLoanID)
			}
			item.AssociatedLoanID = req.AssociatedLoanID
		}
		item.PurchasePrice = req.PurchasePrice
		item.PurchaseDate = req.PurchaseDate
		return []domain.Transaction{seedTxn(*req.PurchaseDate, *req.PurchasePrice, domain.DescAssetValueUpdate)}, nil
	}
	return nil, fmt.Errorf("%w: unknown item type %q", apperrors.ErrValidation, req.Type)
}

func seedTxn(date domain.Date, amount decimal.Decimal, description string) domain.Transaction {
	return domain.Transaction{
		TransactionID: uuid.NewString(),
		Date:          date,
		Amount:        amount,
		Description:   description,
		Kind:          domain.KindInitial,
	}
}

func missingField(field string, t domain.ItemType) error {
	return fmt.Errorf("%w: missing or invalid required field %q for %s item", apperrors.ErrValidation, field, t)
}

func (s *itemService) GetItem(ctx context.Context, itemID string) (*domain.Item, error) {
	return s.repo.FindItemByID(ctx, itemID)
}

func (s *itemService) ListItems(ctx context.Context) ([]domain.Item, error) {
	return s.repo.ListItems(ctx)
}

func (s *itemService) UpdateItem(ctx context.Context, itemID string, req dto.UpdateItemRequest) (*domain.Item, error) {
	item, err := s.repo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Color != nil {
		item.Color = *req.Color
	}
	if req.IsVisible != nil {
		item.IsVisible = *req.IsVisible
	}
	item.LastUpdatedAt = time.Now()
	if err := s.repo.UpdateItem(ctx, *item); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}
	s.bus.Publish(events.ItemChanged{ItemID: itemID})
	return item, nil
}

func (s *itemService) DeleteItem(ctx context.Context, itemID string) error {
	if err := s.repo.DeleteItem(ctx, itemID); err != nil {
		return err
	}
	if err := s.removeFromOrder(ctx, itemID); err != nil {
		s.LogError(ctx, err, "Failed to remove item from display order", slog.String("item_id", itemID))
	}
	s.bus.Publish(events.ItemDeleted{ItemID: itemID})
	s.LogInfo(ctx, "Item deleted", slog.String("item_id", itemID))
	return nil
}

func (s *itemService) AddEntry(ctx context.Context, itemID string, req dto.AddEntryRequest) (*domain.Item, error) {
	item, err := s.repo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if req.Amount == nil {
		return nil, fmt.Errorf("%w: amount is required", apperrors.ErrValidation)
	}
	if req.Date.After(s.now()) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrFutureDate)
	}

	amount := *req.Amount
	description := req.Description
	if item.Type == domain.ItemTypeAsset {
		// Asset entries are always revaluations with a fixed description
		// and a positive new value.
		if !amount.IsPositive() {
			return nil, fmt.Errorf("%w: asset value must be a positive number", apperrors.ErrValidation)
		}
		description = domain.DescAssetValueUpdate
	} else if description == "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrEmptyDescription)
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Date:          req.Date,
		Amount:        amount,
		Description:   description,
		Kind:          metrics.ClassifyKind(item.Type, description, amount),
	}
	item.Data = append(item.Data, txn)
	item.SortData()

	if err := s.persistMutated(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itemService) DeleteEntry(ctx context.Context, itemID, entryID string) (*domain.Item, error) {
	item, err := s.repo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i, txn := range item.Data {
		if txn.TransactionID == entryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: transaction %q", apperrors.ErrNotFound, entryID)
	}
	item.Data = append(item.Data[:idx], item.Data[idx+1:]...)

	if err := s.persistMutated(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itemService) ClearEntries(ctx context.Context, itemID string) (*domain.Item, error) {
	item, err := s.repo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	item.Data = nil

	if err := s.persistMutated(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itemService) ImportEntries(ctx context.Context, itemID string, rows []csvimport.Row) (*domain.Item, int, error) {
	item, err := s.repo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, 0, err
	}
	// Future-dated rows are skipped and counted like any other bad row,
	// so bulk import holds the same date invariant AddEntry enforces.
	today := s.now()
	imported := 0
	for _, row := range rows {
		if row.Date.After(today) {
			continue
		}
		item.Data = append(item.Data, domain.Transaction{
			TransactionID: uuid.NewString(),
			Date:          row.Date,
			Amount:        row.Amount,
			Description:   row.Description,
			Kind:          metrics.ClassifyKind(item.Type, row.Description, row.Amount),
		})
		imported++
	}
	item.SortData()

	if err := s.persistMutated(ctx, item); err != nil {
		return nil, 0, err
	}
	s.LogInfo(ctx, "Entries imported",
		slog.String("item_id", itemID),
		slog.Int("count", imported),
		slog.Int("skipped", len(rows)-imported))
	return item, imported, nil
}

func (s *itemService) ReorderItems(ctx context.Context, order []string) error {
	for _, id := range order {
		if _, err := s.repo.FindItemByID(ctx, id); err != nil {
			return fmt.Errorf("%w: unknown item id %q in order", apperrors.ErrValidation, id)
		}
	}
	return s.repo.SaveItemOrder(ctx, order)
}

// ItemOrder returns the persisted ordering, reconciled against the live
// collection: stale ids are dropped, unordered items appended at the end.
func (s *itemService) ItemOrder(ctx context.Context) ([]string, error) {
	order, err := s.repo.FindItemOrder(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	existing := make(map[string]bool, len(items))
	for _, item := range items {
		existing[item.ItemID] = true
	}
	reconciled := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, id := range order {
		if existing[id] && !seen[id] {
			reconciled = append(reconciled, id)
			seen[id] = true
		}
	}
	for _, item := range items {
		if !seen[item.ItemID] {
			reconciled = append(reconciled, item.ItemID)
		}
	}
	return reconciled, nil
}

// persistMutated refreshes derived state, writes the item back and
// publishes the change. Every data mutation funnels through here.
func (s *itemService) persistMutated(ctx context.Context, item *domain.Item) error {
	if err := s.refreshDerived(ctx, item); err != nil {
		return err
	}
	item.LastUpdatedAt = time.Now()
	if err := s.repo.UpdateItem(ctx, *item); err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	s.bus.Publish(events.ItemChanged{ItemID: item.ItemID})
	return nil
}

// refreshDerived reruns the metrics engine and replaces the item's bundle
// and current scalar. For assets the associated loan is resolved so equity
// can be derived; a dangling loan reference contributes nothing.
func (s *itemService) refreshDerived(ctx context.Context, item *domain.Item) error {
	opts := metrics.Options{Today: s.now()}
	if item.Type == domain.ItemTypeAsset && item.AssociatedLoanID != "" {
		loan, err := s.repo.FindItemByID(ctx, item.AssociatedLoanID)
		if err == nil && loan.Type == domain.ItemTypeLoan {
			opts.AssociatedLoan = loan
		}
	}
	result, err := metrics.Compute(*item, opts)
	if err != nil {
		return err
	}
	item.Metrics = &result.Bundle
	item.SetCurrentScalar(result.Current)
	return nil
}

func (s *itemService) appendToOrder(ctx context.Context, itemID string) error {
	order, err := s.repo.FindItemOrder(ctx)
	if err != nil {
		return err
	}
	return s.repo.SaveItemOrder(ctx, append(order, itemID))
}

func (s *itemService) removeFromOrder(ctx context.Context, itemID string) error {
	order, err := s.repo.FindItemOrder(ctx)
	if err != nil {
		return err
	}
	filtered := order[:0]
	for _, id := range order {
		if id != itemID {
			filtered = append(filtered, id)
		}
	}
	return s.repo.SaveItemOrder(ctx, filtered)
}
