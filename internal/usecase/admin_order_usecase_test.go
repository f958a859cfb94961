package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type AdminOrderRepoMock struct{ mock.Mock }

func (m *AdminOrderRepoMock) Create(ctx context.Context, order model.Order, items []model.OrderItem) (int64, error) {
	panic("not used in AdminOrderUsecase tests")
}

func (m *AdminOrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *AdminOrderRepoMock) ListItemsByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

func (m *AdminOrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *AdminOrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

// =====================
// UpdateStatus
// =====================

func TestAdminOrderUsecase_ConfirmPendingOrder(t *testing.T) {
	ctx := context.Background()

	oRepo := new(AdminOrderRepoMock)
	uc := usecase.NewAdminOrderUsecase(oRepo)

	oRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Order{ID: 1, Status: model.OrderStatusPending}, nil)
	oRepo.On("UpdateStatus", mock.Anything, int64(1), model.OrderStatusConfirmed).Return(nil)

	err := uc.UpdateStatus(ctx, 10, 1, usecase.AdminUpdateOrderStatusInput{Status: "CONFIRMED"})
	assert.NoError(t, err)
	oRepo.AssertExpectations(t)
}

func TestAdminOrderUsecase_CancelPendingOrder(t *testing.T) {
	ctx := context.Background()

	oRepo := new(AdminOrderRepoMock)
	uc := usecase.NewAdminOrderUsecase(oRepo)

	oRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Order{ID: 1, Status: model.OrderStatusPending}, nil)
	oRepo.On("UpdateStatus", mock.Anything, int64(1), model.OrderStatusCancelled).Return(nil)

	err := uc.UpdateStatus(ctx, 10, 1, usecase.AdminUpdateOrderStatusInput{Status: "CANCELLED"})
	assert.NoError(t, err)
	oRepo.AssertExpectations(t)
}

func TestAdminOrderUsecase_FinalStatusIsTerminal(t *testing.T) {
	ctx := context.Background()

	oRepo := new(AdminOrderRepoMock)
	uc := usecase.NewAdminOrderUsecase(oRepo)

	//CONFIRMED済みをCANCELLEDへは変えられない
	oRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Order{ID: 1, Status: model.OrderStatusConfirmed}, nil)

	err := uc.UpdateStatus(ctx, 10, 1, usecase.AdminUpdateOrderStatusInput{Status: "CANCELLED"})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
	oRepo.AssertNotCalled(t, "UpdateStatus")
}

func TestAdminOrderUsecase_SameStatusIsNoop(t *testing.T) {
	ctx := context.Background()

	oRepo := new(AdminOrderRepoMock)
	uc := usecase.NewAdminOrderUsecase(oRepo)

	oRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Order{ID: 1, Status: model.OrderStatusConfirmed}, nil)

	//同じ値への更新は成功扱いで何もしない
	err := uc.UpdateStatus(ctx, 10, 1, usecase.AdminUpdateOrderStatusInput{Status: "CONFIRMED"})
	assert.NoError(t, err)
	oRepo.AssertNotCalled(t, "UpdateStatus")
}

func TestAdminOrderUsecase_PendingIsNotAValidTarget(t *testing.T) {
	ctx := context.Background()

	oRepo := new(AdminOrderRepoMock)
	uc := usecase.NewAdminOrderUsecase(oRepo)

	err := uc.UpdateStatus(ctx, 10, 1, usecase.AdminUpdateOrderStatusInput{Status: "PENDING"})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
	oRepo.AssertNotCalled(t, "FindByID")
}

func TestAdminOrderUsecase_UpdateStatus_OrderNotFound(t *testing.T) {
	ctx := context.Background()

	oRepo := new(AdminOrderRepoMock)
	uc := usecase.NewAdminOrderUsecase(oRepo)

	oRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Order{}, repo.ErrNotFound)

	err := uc.UpdateStatus(ctx, 10, 99, usecase.AdminUpdateOrderStatusInput{Status: "CONFIRMED"})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
}

// =====================
// List
// =====================

func TestAdminOrderUsecase_List(t *testing.T) {
	ctx := context.Background()

	oRepo := new(AdminOrderRepoMock)
	uc := usecase.NewAdminOrderUsecase(oRepo)

	f := repo.AdminOrderListFilter{Page: 1, Limit: 20}
	oRepo.On("ListAdmin", mock.Anything, f).Return([]model.Order{
		{ID: 1, Status: model.OrderStatusPending, TotalAmount: 1000},
		{ID: 2, Status: model.OrderStatusConfirmed, TotalAmount: 2400},
	}, int64(2), nil)
	oRepo.On("ListItemsByOrderID", mock.Anything, int64(1)).Return([]model.OrderItem{{ProductID: 1, Quantity: 1}}, nil)
	oRepo.On("ListItemsByOrderID", mock.Anything, int64(2)).Return([]model.OrderItem{{ProductID: 2, Quantity: 2}}, nil)

	outs, err := uc.List(ctx, f)
	assert.NoError(t, err)
	assert.Len(t, outs, 2)
	assert.Equal(t, "PENDING", outs[0].Status)
	assert.Len(t, outs[1].Items, 1)
}

func TestAdminOrderUsecase_List_InvalidPage(t *testing.T) {
	ctx := context.Background()

	uc := usecase.NewAdminOrderUsecase(new(AdminOrderRepoMock))

	_, err := uc.List(ctx, repo.AdminOrderListFilter{Page: 0, Limit: 20})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
}
