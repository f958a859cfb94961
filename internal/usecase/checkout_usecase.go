package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

var (
	//カートが空のままチェックアウトに入った
	ErrCartEmpty = errors.New("cart empty")
	//再照合の結果、有効な行が1つも残らなかった（カートは空にする）
	ErrEmptyCartAfterReconciliation = errors.New("no valid products in cart")
	//再照合で一部の行だけ落ちた（注文は作らずカートを生存行に書き換える）
	ErrCartChangedDuringCheckout = errors.New("cart changed during checkout")
)

// チェックアウトフォームの入力。決済はシミュレーションでカード情報は保存しない。
type CheckoutInput struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	City           string `json:"city"`
	State          string `json:"state"`
	Zip            string `json:"zip"`
	Country        string `json:"country"`
	CardNumber     string `json:"card_number"`
	CardExpiry     string `json:"card_expiry"`
	CardCvv        string `json:"card_cvv"`
	CardholderName string `json:"cardholder_name"`
}

// usecaseがValidatorInterfaceに依存する約束
type CheckoutValidator interface {
	ValidateCheckout(in CheckoutInput) error
}

// CheckoutUsecase はカートを注文に確定させる。
// 金額は必ずカタログを読み直して計算する（カートのスナップショット価格は使わない）。
type CheckoutUsecase struct {
	productRepo repo.ProductRepository
	orderRepo   repo.OrderRepository
	validator   CheckoutValidator
}

func NewCheckoutUsecase(
	productRepo repo.ProductRepository,
	orderRepo repo.OrderRepository,
	validator CheckoutValidator,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		productRepo: productRepo,
		orderRepo:   orderRepo,
		validator:   validator,
	}
}

type OrderItemOutput struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
}

type OrderOutput struct {
	ID           int64             `json:"id"`
	CustomerName string            `json:"customer_name"`
	Email        string            `json:"email"`
	Status       string            `json:"status"`
	TotalAmount  int64             `json:"total_amount"`
	CreatedAt    time.Time         `json:"created_at"`
	Items        []OrderItemOutput `json:"items"`
}

// SubmitCheckout はチェックアウトの本体。
// 戻り値の2つ目は「セッションに書き戻すべきカート」。
//   - 成功: 空カート（クリア）
//   - 全行消失: 空カート
//   - 一部消失: 生存行のみのカート（注文は作らない）
//   - 入力エラー: 元のカートそのまま
//
// 全行がその瞬間のカタログに対して有効なときだけ注文を作る（all-or-nothing）。
func (u *CheckoutUsecase) SubmitCheckout(ctx context.Context, cart model.Cart, in CheckoutInput) (int64, model.Cart, error) {
	//空カートは入力検証よりも前に拒否（カタログにも触らない）
	if len(cart) == 0 {
		return 0, cart, ErrCartEmpty
	}

	//フィールド検証。失敗したらカートもセッションも触らず差し戻す
	if err := u.validator.ValidateCheckout(in); err != nil {
		return 0, cart, err
	}

	//カタログを読み直して再照合＋サーバー側で金額計算
	orderItems := make([]model.OrderItem, 0, len(cart))
	survivors := make(model.Cart, 0, len(cart))
	var total int64 = 0
	removed := false

	for _, line := range cart {
		p, err := u.productRepo.FindByID(ctx, line.ProductID)
		if err == repo.ErrNotFound {
			removed = true
			continue
		}
		if err != nil {
			return 0, cart, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		qty := line.Quantity
		if qty < 1 {
			qty = 1
		}

		//価格は現在のカタログ値。スナップショットは使わない
		total += p.Price * qty
		orderItems = append(orderItems, model.OrderItem{
			ProductID:           p.ID,
			ProductNameSnapshot: p.Name,
			UnitPriceSnapshot:   p.Price,
			Quantity:            qty,
		})
		survivors = append(survivors, model.CartLine{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Category:  p.Category,
			Image:     p.Image,
			Quantity:  qty,
		})
	}

	//1行も残らなければ中止してカートを空にする
	if len(orderItems) == 0 {
		return 0, model.Cart{}, ErrEmptyCartAfterReconciliation
	}

	//一部だけ落ちた場合は注文を作らず、カートを生存行に書き換えて差し戻す
	if removed {
		return 0, survivors, ErrCartChangedDuringCheckout
	}

	now := time.Now()
	orderID, err := u.orderRepo.Create(ctx, model.Order{
		CustomerName: strings.TrimSpace(in.Name),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Status:       model.OrderStatusPending,
		TotalAmount:  total,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, orderItems)
	if err != nil {
		return 0, cart, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//成功したらカートはクリア
	return orderID, model.Cart{}, nil
}

// 注文確認ページ用
func (u *CheckoutUsecase) GetOrder(ctx context.Context, orderID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items, err := u.orderRepo.ListItemsByOrderID(ctx, orderID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toOrderOutput(o, items), nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID: it.ProductID,
			Name:      it.ProductNameSnapshot,
			Price:     it.UnitPriceSnapshot,
			Quantity:  it.Quantity,
		})
	}

	return OrderOutput{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		Email:        o.Email,
		Status:       string(o.Status),
		TotalAmount:  o.TotalAmount,
		CreatedAt:    o.CreatedAt,
		Items:        outItems,
	}
}
