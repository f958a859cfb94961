package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type AdminOrderUsecase struct {
	orderRepo repo.OrderRepository
}

func NewAdminOrderUsecase(orderRepo repo.OrderRepository) *AdminOrderUsecase {
	return &AdminOrderUsecase{orderRepo: orderRepo}
}

type AdminUpdateOrderStatusInput struct {
	Status string
}

// 注文一覧
func (u *AdminOrderUsecase) List(ctx context.Context, f repo.AdminOrderListFilter) ([]OrderOutput, error) {
	// page/limitの最低限チェック
	if f.Page < 1 {
		return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if f.Limit < 1 || f.Limit > 100 {
		return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	orders, _, err := u.orderRepo.ListAdmin(ctx, f)
	if err != nil {
		return []OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		items, err := u.orderRepo.ListItemsByOrderID(ctx, o.ID)
		if err != nil {
			return []OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		outs = append(outs, toOrderOutput(o, items))
	}
	return outs, nil
}

// ステータス更新。
// 許される遷移は PENDING→CONFIRMED と PENDING→CANCELLED のみで、どちらも終端。
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, actorAdminUserID int64, orderID int64, in AdminUpdateOrderStatusInput) error {
	if actorAdminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus := model.OrderStatus(strings.TrimSpace(in.Status))
	switch newStatus {
	case model.OrderStatusConfirmed, model.OrderStatusCancelled:
		// OK（PENDINGへ戻すことはできない）
	default:
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	// 注文取得
	o, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// すでに同じなら何もしない（200）
	if o.Status == newStatus {
		return nil
	}
	// 終端ガード
	if o.Status != model.OrderStatusPending {
		return NewHTTPError(http.StatusBadRequest, "order status is final")
	}

	if err := u.orderRepo.UpdateStatus(ctx, orderID, newStatus); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}
