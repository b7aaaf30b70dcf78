package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/findash/finance_dashboard_app/internal/apperrors"
	"github.com/findash/finance_dashboard_app/internal/core/domain"
	portssvc "github.com/findash/finance_dashboard_app/internal/core/ports/services"
	"github.com/findash/finance_dashboard_app/internal/core/services"
	"github.com/findash/finance_dashboard_app/internal/csvimport"
	"github.com/findash/finance_dashboard_app/internal/dto"
	"github.com/findash/finance_dashboard_app/internal/platform/events"
)

// --- Mock ItemRepository ---
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindItemByID(ctx context.Context, itemID string) (*domain.Item, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemRepository) ListItems(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemRepository) FindItemOrder(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockItemRepository) SaveItem(ctx context.Context, item domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) UpdateItem(ctx context.Context, item domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) DeleteItem(ctx context.Context, itemID string) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *MockItemRepository) SaveItemOrder(ctx context.Context, order []string) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockItemRepository) ReplaceItems(ctx context.Context, items []domain.Item) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

// --- Test Suite ---
type ItemServiceTestSuite struct {
	suite.Suite
	mockRepo *MockItemRepository
	bus      *events.Bus
	service  portssvc.ItemSvcFacade

	changed int
	deleted int
}

func (suite *ItemServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockItemRepository)
	suite.bus = events.NewBus()
	suite.changed = 0
	suite.deleted = 0
	suite.bus.Subscribe(events.TopicItemChanged, func(events.Event) { suite.changed++ })
	suite.bus.Subscribe(events.TopicItemDeleted, func(events.Event) { suite.deleted++ })
	suite.service = services.NewItemService(suite.mockRepo, suite.bus, services.WithItemClock(func() domain.Date {
		return domain.MustParseDate("2024-03-15")
	}))
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func datePtr(s string) *domain.Date {
	d := domain.MustParseDate(s)
	return &d
}

// accountItem builds a stored account with a seeded opening balance.
func accountItem(initial string, start string) *domain.Item {
	now := time.Now()
	item := &domain.Item{
		ItemID:    uuid.NewString(),
		Type:      domain.ItemTypeAccount,
		Name:      "Checking",
		IsVisible: true,
		Data: []domain.Transaction{{
			TransactionID: uuid.NewString(),
			Date:          domain.MustParseDate(start),
			Amount:        dec(initial),
			Description:   domain.DescInitialBalance,
			Kind:          domain.KindInitial,
		}},
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	return item
}

// --- Test Cases ---

func (suite *ItemServiceTestSuite) TestCreateItem_Account_Success() {
	ctx := context.Background()
	req := dto.CreateItemRequest{
		Type:          domain.ItemTypeAccount,
		Name:          "Checking",
		Color:         "#4caf50",
		InitialAmount: decPtr("1000"),
		StartDate:     datePtr("2024-03-01"),
	}

	suite.mockRepo.On("SaveItem", ctx, mock.MatchedBy(func(item domain.Item) bool {
		return item.Type == domain.ItemTypeAccount &&
			len(item.Data) == 1 &&
			item.Data[0].Kind == domain.KindInitial &&
			item.Data[0].Amount.Equal(dec("1000")) &&
			item.Data[0].Description == domain.DescInitialBalance &&
			item.Metrics != nil &&
			item.CurrentValue != nil && item.CurrentValue.Equal(dec("1000"))
	})).Return(nil).Once()
	suite.mockRepo.On("FindItemOrder", ctx).Return([]string{}, nil).Once()
	suite.mockRepo.On("SaveItemOrder", ctx, mock.MatchedBy(func(order []string) bool {
		return len(order) == 1
	})).Return(nil).Once()

	item, err := suite.service.CreateItem(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(item)
	suite.NotEmpty(item.ItemID)
	suite.True(item.IsVisible)
	suite.Equal("#4caf50", item.Color)
	suite.Require().NotNil(item.CurrentValue)
	suite.True(item.CurrentValue.Equal(dec("1000")))
	suite.Nil(item.CurrentBalance)
	suite.Equal(1, suite.changed)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ItemServiceTestSuite) TestCreateItem_UnknownType() {
	item, err := suite.service.CreateItem(context.Background(), dto.CreateItemRequest{
		Type: "mattress",
		Name: "Cash",
	})

	suite.Require().Error(err)
	suite.Nil(item)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ItemServiceTestSuite) TestCreateItem_FutureStartDate() {
	item, err := suite.service.CreateItem(context.Background(), dto.CreateItemRequest{
		Type:          domain.ItemTypeAccount,
		Name:          "Checking",
		InitialAmount: decPtr("100"),
		StartDate:     datePtr("2024-03-16"),
	})

	suite.Require().Error(err)
	suite.Nil(item)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrFutureDate)
}

func (suite *ItemServiceTestSuite) TestCreateItem_Credit_MissingLimit() {
	item, err := suite.service.CreateItem(context.Background(), dto.CreateItemRequest{
		Type:          domain.ItemTypeCredit,
		Name:          "Visa",
		InitialAmount: decPtr("500"),
	})

	suite.Require().Error(err)
	suite.Nil(item)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "creditLimit")
}

func (suite *ItemServiceTestSuite) TestCreateItem_Credit_StoresOwedBalanceNegative() {
	ctx := context.Background()
	req := dto.CreateItemRequest{
		Type:          domain.ItemTypeCredit,
		Name:          "Visa",
		InitialAmount: decPtr("500"),
		CreditLimit:   decPtr("2000"),
		StartDate:     datePtr("2024-03-01"),
	}

	suite.mockRepo.On("SaveItem", ctx, mock.AnythingOfType("domain.Item")).Return(nil).Once()
	suite.mockRepo.On("FindItemOrder", ctx).Return([]string{}, nil).Once()
	suite.mockRepo.On("SaveItemOrder", ctx, mock.AnythingOfType("[]string")).Return(nil).Once()

	item, err := suite.service.CreateItem(ctx, req)

	suite.Require().NoError(err)
	suite.Require().Len(item.Data, 1)
	suite.True(item.Data[0].Amount.Equal(dec("-500")), "owed balance is entered positive but stored negative")
	suite.Require().NotNil(item.CurrentBalance)
	suite.True(item.CurrentBalance.Equal(dec("500")))
	suite.Nil(item.CurrentValue)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ItemServiceTestSuite) TestCreateItem_Loan_GeneratesSchedule() {
	ctx := context.Background()
	req := dto.CreateItemRequest{
		Type:             domain.ItemTypeLoan,
		Name:             "Car Loan",
		OriginalAmount:   decPtr("10000"),
		InterestRate:     decPtr("6"),
		PaymentAmount:    decPtr("300"),
		PaymentFrequency: domain.PayMonthly,
		GenerateSchedule: true,
		StartDate:        datePtr("2024-01-15"),
	}

	suite.mockRepo.On("SaveItem", ctx, mock.AnythingOfType("domain.Item")).Return(nil).Once()
	suite.mockRepo.On("FindItemOrder", ctx).Return([]string{}, nil).Once()
	suite.mockRepo.On("SaveItemOrder", ctx, mock.AnythingOfType("[]string")).Return(nil).Once()

	item, err := suite.service.CreateItem(ctx, req)

	suite.Require().NoError(err)
	suite.Require().Len(item.Data, 3, "seed plus one backfilled payment per month")
	suite.Equal(domain.KindInitial, item.Data[0].Kind)
	suite.Equal("2024-02-15", item.Data[1].Date.String())
	suite.Equal("2024-03-15", item.Data[2].Date.String())
	suite.Equal(domain.KindPayment, item.Data[1].Kind)
	suite.Require().NotNil(item.CurrentBalance)
	suite.True(item.CurrentBalance.Equal(dec("9498.75")),
		"expected 9498.75, got %s", item.CurrentBalance)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ItemServiceTestSuite) TestCreateItem_Asset_RejectsNonLoanAssociation() {
	ctx := context.Background()
	other := accountItem("100", "2024-01-01")
	suite.mockRepo.On("FindItemByID", ctx, other.ItemID).Return(other, nil).Once()

	item, err := suite.service.CreateItem(ctx, dto.CreateItemRequest{
		Type:             domain.ItemTypeAsset,
		Name:             "House",
		PurchasePrice:    decPtr("300000"),
		PurchaseDate:     datePtr("2024-01-01"),
		AssociatedLoanID: other.ItemID,
	})

	suite.Require().Error(err)
	suite.Nil(item)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "not a loan")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ItemServiceTestSuite) TestAddEntry_Success() {
	ctx := context.Background()
	item := accountItem("1000", "2024-03-01")
	suite.mockRepo.On("FindItemByID", ctx, item.ItemID).Return(item, nil).Once()
	suite.mockRepo.On("UpdateItem", ctx, mock.AnythingOfType("domain.Item")).Return(nil).Once()

	updated, err := suite.service.AddEntry(ctx, item.ItemID, dto.AddEntryRequest{
		Date:        domain.MustParseDate("2024-03-10"),
		Amount:      decPtr("-50"),
		Description: "Groceries at the market",
	})

	suite.Require().NoError(err)
	suite.Require().Len(updated.Data, 2)
	suite.Require().NotNil(updated.CurrentValue)
	suite.True(updated.CurrentValue.Equal(dec("950")))
	suite.Equal(1, suite.changed)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ItemServiceTestSuite) TestAddEntry_FutureDate() {
	ctx := context.Background()
	item := accountItem("1000", "2024-03-01")
	suite.mockRepo.On("FindItemByID", ctx, item.ItemID).Return(item, nil).Once()

	updated, err := suite.service.AddEntry(ctx, item.ItemID, dto.AddEntryRequest{
		Date:        domain.MustParseDate("2024-03-16"),
		Amount:      decPtr("-50"),
		Description: "Groceries",
	})

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrFutureDate)
	suite.Equal(0, suite.changed)
}

func (suite *ItemServiceTestSuite) TestAddEntry_EmptyDescription() {
	ctx := context.Background()
	item := accountItem("1000", "2024-03-01")
	suite.mockRepo.On("FindItemByID", ctx, item.ItemID).Return(item, nil).Once()

	updated, err := suite.service.AddEntry(ctx, item.ItemID, dto.AddEntryRequest{
		Date:   domain.MustParseDate("2024-03-10"),
		Amount: decPtr("-50"),
	})

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, services.ErrEmptyDescription)
}

func (suite *ItemServiceTestSuite) TestAddEntry_Asset() {
	ctx := context.Background()
	now := time.Now()
	item := &domain.Item{
		ItemID:        uuid.NewString(),
		Type:          domain.ItemTypeAsset,
		Name:          "House",
		IsVisible:     true,
		PurchasePrice: decPtr("300000"),
		PurchaseDate:  datePtr("2024-01-01"),
		Data: []domain.Transaction{{
			TransactionID: uuid.NewString(),
			Date:          domain.MustParseDate("2024-01-01"),
			Amount:        dec("300000"),
			Description:   domain.DescAssetValueUpdate,
			Kind:          domain.KindInitial,
		}},
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	suite.mockRepo.On("FindItemByID", ctx, item.ItemID).Return(item, nil).Twice()
	suite.mockRepo.On("UpdateItem", ctx, mock.AnythingOfType("domain.Item")).Return(nil).Once()

	// A negative revaluation is rejected before anything is written.
	updated, err := suite.service.AddEntry(ctx, item.ItemID, dto.AddEntryRequest{
		Date:   domain.MustParseDate("2024-03-01"),
		Amount: decPtr("-1"),
	})
	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)

	// A positive one is stored as a revaluation, whatever the description.
	updated, err = suite.service.AddEntry(ctx, item.ItemID, dto.AddEntryRequest{
		Date:        domain.MustParseDate("2024-03-01"),
		Amount:      decPtr("320000"),
		Description: "ignored",
	})
	suite.Require().NoError(err)
	suite.Require().Len(updated.Data, 2)
	suite.Equal(domain.DescAssetValueUpdate, updated.Data[1].Description)
	suite.Equal(domain.KindValueUpdate, updated.Data[1].Kind)
	suite.Require().NotNil(updated.CurrentValue)
	suite.True(updated.CurrentValue.Equal(dec("320000")))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ItemServiceTestSuite) TestDeleteEntry_Success() {
	ctx := context.Background()
	item := accountItem("1000", "2024-03-01")
	extra := domain.Transaction{
		TransactionID: uuid.NewString(),
		Date:          domain.MustParseDate("2024-03-10"),
		Amount:        dec("-50"),
		Description:   "Groceries",
		Kind:          domain.KindRegular,
	}
	item.Data = append(item.Data, extra)

	suite.mockRepo.On("FindItemByID", ctx, item.ItemID).Return(item, nil).Once()
	suite.mockRepo.On("UpdateItem", ctx, mock.AnythingOfType("domain.Item")).Return(nil).Once()

	updated, err := suite.service.DeleteEntry(ctx, item.ItemID, extra.TransactionID)

	suite.Require().NoError(err)
	suite.Require().Len(updated.Data, 1)
	suite.True(updated.CurrentValue.Equal(dec("1000")))
	suite.Equal(1, suite.changed)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ItemServiceTestSuite) TestDeleteEntry_UnknownTransaction() {
	ctx := context.Background()
	item := accountItem("1000", "2024-03-01")
	suite.mockRepo.On("FindItemByID", ctx, item.ItemID).Return(item, nil).Once()

	updated, err := suite.service.DeleteEntry(ctx, item.ItemID, "nope")

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Equal(0, suite.changed)
}

func (suite *ItemServiceTestSuite) TestClearEntries() {
	ctx := context.Background()
	item := accountItem("1000", "2024-03-01")
	suite.mockRepo.On("FindItemByID", ctx, item.ItemID).Return(item, nil).Once()
	suite.mockRepo.On("UpdateItem", ctx, mock.MatchedBy(func(it domain.Item) bool {
		return len(it.Data) == 0
	})).Return(nil).Once()

	updated, err := suite.service.ClearEntries(ctx, item.ItemID)

	suite.Require().NoError(err)
	suite.Empty(updated.Data)
	suite.Require().NotNil(updated.CurrentValue)
	suite.True(updated.CurrentValue.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ItemServiceTestSuite) TestImportEntries() {
	ctx := context.Background()
	item := accountItem("1000", "2024-03-01")
	suite.mockRepo.On("FindItemByID", ctx, item.ItemID).Return(item, nil).Once()
	suite.mockRepo.On("UpdateItem", ctx, mock.AnythingOfType("domain.Item")).Return(nil).Once()

	rows := []csvimport.Row{
		{Date: domain.MustParseDate("2024-03-05"), Amount: dec("-25.50"), Description: "Coffee"},
		{Date: domain.MustParseDate("2024-03-02"), Amount: dec("200"), Description: "Refund"},
	}
	updated, imported, err := suite.service.ImportEntries(ctx, item.ItemID, rows)

	suite.Require().NoError(err)
	suite.Equal(2, imported)
	suite.Require().Len(updated.Data, 3)
	// Ascending date order is restored after the append.
	suite.Equal("2024-03-02", updated.Data[1].Date.String())
	suite.Equal("2024-03-05", updated.Data[2].Date.String())
	suite.True(updated.CurrentValue.Equal(dec("1174.50")))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ItemServiceTestSuite) TestImportEntries_SkipsFutureDatedRows() {
	ctx := context.Background()
	item := accountItem("1000", "2024-03-01")
	suite.mockRepo.On("FindItemByID", ctx, item.ItemID).Return(item, nil).Once()
	suite.mockRepo.On("UpdateItem", ctx, mock.AnythingOfType("domain.Item")).Return(nil).Once()

	// The clock is pinned to 2024-03-15; the bulk path must reject the
	// same dates AddEntry rejects instead of letting them into the
	// history and the derived scalar.
	rows := []csvimport.Row{
		{Date: domain.MustParseDate("2024-03-10"), Amount: dec("-25.50"), Description: "Coffee"},
		{Date: domain.MustParseDate("2024-03-20"), Amount: dec("-500"), Description: "Scheduled rent"},
		{Date: domain.MustParseDate("2024-03-12"), Amount: dec("200"), Description: "Refund"},
	}
	updated, imported, err := suite.service.ImportEntries(ctx, item.ItemID, rows)

	suite.Require().NoError(err)
	suite.Equal(2, imported)
	suite.Require().Len(updated.Data, 3)
	for _, txn := range updated.Data {
		suite.False(txn.Date.After(domain.MustParseDate("2024-03-15")))
	}
	suite.True(updated.CurrentValue.Equal(dec("1174.50")), "the future row must not move the current value")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ItemServiceTestSuite) TestUpdateItem_Rename() {
	ctx := context.Background()
	item := accountItem("1000", "2024-03-01")
	suite.mockRepo.On("FindItemByID", ctx, item.ItemID).Return(item, nil).Once()
	suite.mockRepo.On("UpdateItem", ctx, mock.MatchedBy(func(it domain.Item) bool {
		return it.Name == "Renamed" && !it.IsVisible
	})).Return(nil).Once()

	name := "Renamed"
	hidden := false
	updated, err := suite.service.UpdateItem(ctx, item.ItemID, dto.UpdateItemRequest{
		Name:      &name,
		IsVisible: &hidden,
	})

	suite.Require().NoError(err)
	suite.Equal("Renamed", updated.Name)
	suite.False(updated.IsVisible)
	suite.Equal(1, suite.changed)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ItemServiceTestSuite) TestDeleteItem() {
	ctx := context.Background()
	suite.mockRepo.On("DeleteItem", ctx, "item-1").Return(nil).Once()
	suite.mockRepo.On("FindItemOrder", ctx).Return([]string{"item-1", "item-2"}, nil).Once()
	suite.mockRepo.On("SaveItemOrder", ctx, []string{"item-2"}).Return(nil).Once()

	err := suite.service.DeleteItem(ctx, "item-1")

	suite.Require().NoError(err)
	suite.Equal(1, suite.deleted)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ItemServiceTestSuite) TestReorderItems_UnknownID() {
	ctx := context.Background()
	item := accountItem("1000", "2024-03-01")
	suite.mockRepo.On("FindItemByID", ctx, item.ItemID).Return(item, nil).Once()
	suite.mockRepo.On("FindItemByID", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.ReorderItems(ctx, []string{item.ItemID, "ghost"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ItemServiceTestSuite) TestItemOrder_Reconciles() {
	ctx := context.Background()
	a := accountItem("1", "2024-01-01")
	b := accountItem("2", "2024-01-01")
	c := accountItem("3", "2024-01-01")

	suite.mockRepo.On("FindItemOrder", ctx).Return([]string{b.ItemID, "stale", a.ItemID}, nil).Once()
	suite.mockRepo.On("ListItems", ctx).Return([]domain.Item{*a, *b, *c}, nil).Once()

	order, err := suite.service.ItemOrder(ctx)

	suite.Require().NoError(err)
	suite.Equal([]string{b.ItemID, a.ItemID, c.ItemID}, order)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestItemServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ItemServiceTestSuite))
}
