package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type CheckoutOrderRepoMock struct{ mock.Mock }

func (m *CheckoutOrderRepoMock) Create(ctx context.Context, order model.Order, items []model.OrderItem) (int64, error) {
	args := m.Called(ctx, order, items)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CheckoutOrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *CheckoutOrderRepoMock) ListItemsByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

func (m *CheckoutOrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	panic("not used in CheckoutUsecase tests")
}

func (m *CheckoutOrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	panic("not used in CheckoutUsecase tests")
}

func newCheckoutUsecase(pRepo *CartProductRepoMock, oRepo *CheckoutOrderRepoMock) *usecase.CheckoutUsecase {
	//検証ルールの順序も込みで本物のvalidatorを使う
	return usecase.NewCheckoutUsecase(pRepo, oRepo, validator.NewCheckoutValidator())
}

func validCheckoutInput() usecase.CheckoutInput {
	return usecase.CheckoutInput{
		Name:           "Taro Yamada",
		Email:          "taro@example.com",
		Phone:          "+81 90-1234-5678",
		Address:        "1-2-3 Chiyoda, Tokyo",
		City:           "Tokyo",
		State:          "Tokyo",
		Zip:            "100-0001",
		Country:        "Japan",
		CardNumber:     "4242 4242 4242 4242",
		CardExpiry:     "12/30",
		CardCvv:        "123",
		CardholderName: "TARO YAMADA",
	}
}

// =====================
// SubmitCheckout
// =====================

func TestCheckoutUsecase_EmptyCartRefusedUpfront(t *testing.T) {
	ctx := context.Background()

	pRepo := new(CartProductRepoMock)
	oRepo := new(CheckoutOrderRepoMock)
	uc := newCheckoutUsecase(pRepo, oRepo)

	//入力が不正でも空カートの拒否が先
	_, _, err := uc.SubmitCheckout(ctx, model.Cart{}, usecase.CheckoutInput{})
	assert.ErrorIs(t, err, usecase.ErrCartEmpty)

	//カタログにも注文にも触らない
	pRepo.AssertNotCalled(t, "FindByID")
	oRepo.AssertNotCalled(t, "Create")
}

func TestCheckoutUsecase_InvalidExpiryRejectedBeforeCatalog(t *testing.T) {
	ctx := context.Background()

	pRepo := new(CartProductRepoMock)
	oRepo := new(CheckoutOrderRepoMock)
	uc := newCheckoutUsecase(pRepo, oRepo)

	in := validCheckoutInput()
	in.CardExpiry = "13/25"

	cart := model.Cart{{ProductID: 1, Price: 1000, Quantity: 1}}

	_, out, err := uc.SubmitCheckout(ctx, cart, in)

	var ve *validator.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "card_expiry", ve.Field)
	//カートはそのまま、カタログ・注文は未アクセス
	assert.Equal(t, cart, out)
	pRepo.AssertNotCalled(t, "FindByID")
	oRepo.AssertNotCalled(t, "Create")
}

func TestCheckoutUsecase_TotalUsesCurrentCatalogPrice(t *testing.T) {
	ctx := context.Background()

	pRepo := new(CartProductRepoMock)
	oRepo := new(CheckoutOrderRepoMock)
	uc := newCheckoutUsecase(pRepo, oRepo)

	//カートのスナップショットは10だが、カタログ価格は12に変わっている
	cart := model.Cart{{ProductID: 1, Name: "Garamond", Price: 10, Quantity: 2}}
	pRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Product{ID: 1, Name: "Garamond", Price: 12}, nil)

	oRepo.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		//合計は 12×2=24（20ではない）
		return o.TotalAmount == 24 && o.Status == model.OrderStatusPending
	}), mock.MatchedBy(func(items []model.OrderItem) bool {
		return len(items) == 1 && items[0].UnitPriceSnapshot == 12 && items[0].Quantity == 2
	})).Return(int64(7), nil)

	orderID, out, err := uc.SubmitCheckout(ctx, cart, validCheckoutInput())
	assert.NoError(t, err)
	assert.Equal(t, int64(7), orderID)
	//成功したらカートはクリア
	assert.Len(t, out, 0)

	oRepo.AssertExpectations(t)
}

func TestCheckoutUsecase_QuantityFlooredToOne(t *testing.T) {
	ctx := context.Background()

	pRepo := new(CartProductRepoMock)
	oRepo := new(CheckoutOrderRepoMock)
	uc := newCheckoutUsecase(pRepo, oRepo)

	//壊れた数量（0）は1として扱う
	cart := model.Cart{{ProductID: 1, Price: 500, Quantity: 0}}
	pRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Product{ID: 1, Name: "Futura", Price: 500}, nil)

	oRepo.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.TotalAmount == 500
	}), mock.Anything).Return(int64(1), nil)

	_, _, err := uc.SubmitCheckout(ctx, cart, validCheckoutInput())
	assert.NoError(t, err)
	oRepo.AssertExpectations(t)
}

func TestCheckoutUsecase_PartialSurvivorsAbortOrder(t *testing.T) {
	ctx := context.Background()

	pRepo := new(CartProductRepoMock)
	oRepo := new(CheckoutOrderRepoMock)
	uc := newCheckoutUsecase(pRepo, oRepo)

	//Bはチェックアウト前に削除された
	cart := model.Cart{
		{ProductID: 1, Name: "Garamond", Price: 1000, Quantity: 1},
		{ProductID: 2, Name: "Futura", Price: 900, Quantity: 1},
	}
	pRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Product{ID: 1, Name: "Garamond", Price: 1000}, nil)
	pRepo.On("FindByID", mock.Anything, int64(2)).Return(model.Product{}, repo.ErrNotFound)

	_, out, err := uc.SubmitCheckout(ctx, cart, validCheckoutInput())
	assert.ErrorIs(t, err, usecase.ErrCartChangedDuringCheckout)

	//セッションカートは生存行のみに書き換え
	assert.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].ProductID)
	assert.Equal(t, int64(1), out[0].Quantity)

	//注文は作られない
	oRepo.AssertNotCalled(t, "Create")
}

func TestCheckoutUsecase_NoSurvivorsClearsCart(t *testing.T) {
	ctx := context.Background()

	pRepo := new(CartProductRepoMock)
	oRepo := new(CheckoutOrderRepoMock)
	uc := newCheckoutUsecase(pRepo, oRepo)

	cart := model.Cart{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 1},
	}
	pRepo.On("FindByID", mock.Anything, mock.Anything).Return(model.Product{}, repo.ErrNotFound)

	_, out, err := uc.SubmitCheckout(ctx, cart, validCheckoutInput())
	assert.ErrorIs(t, err, usecase.ErrEmptyCartAfterReconciliation)
	assert.Len(t, out, 0)
	oRepo.AssertNotCalled(t, "Create")
}

// =====================
// GetOrder
// =====================

func TestCheckoutUsecase_GetOrder_NotFound(t *testing.T) {
	ctx := context.Background()

	oRepo := new(CheckoutOrderRepoMock)
	uc := newCheckoutUsecase(new(CartProductRepoMock), oRepo)

	oRepo.On("FindByID", mock.Anything, int64(9)).Return(model.Order{}, repo.ErrNotFound)

	_, err := uc.GetOrder(ctx, 9)
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
}

func TestCheckoutUsecase_GetOrder_Success(t *testing.T) {
	ctx := context.Background()

	oRepo := new(CheckoutOrderRepoMock)
	uc := newCheckoutUsecase(new(CartProductRepoMock), oRepo)

	oRepo.On("FindByID", mock.Anything, int64(7)).Return(model.Order{
		ID: 7, CustomerName: "Taro Yamada", Status: model.OrderStatusPending, TotalAmount: 24,
	}, nil)
	oRepo.On("ListItemsByOrderID", mock.Anything, int64(7)).Return([]model.OrderItem{
		{ProductID: 1, ProductNameSnapshot: "Garamond", UnitPriceSnapshot: 12, Quantity: 2},
	}, nil)

	out, err := uc.GetOrder(ctx, 7)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), out.ID)
	assert.Equal(t, "PENDING", out.Status)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, int64(12), out.Items[0].Price)
}
