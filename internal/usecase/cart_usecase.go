package usecase

import (
	"context"
	"errors"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

var (
	//追加しようとした商品がカタログに無い（行を捨てて通知する回復可能エラー）
	ErrProductNotFound = errors.New("product not found")
)

// 数量変更のaction。UIのプラス/マイナスボタンに対応。
const (
	QuantityActionAdd = "add"
	QuantityActionSub = "sub"
)

// CartUsecase はセッションカートの業務ロジックです。
// カートは値として受け取り、値として返す（セッションへの書き戻しはhandlerの仕事）。
type CartUsecase struct {
	productRepo repo.ProductRepository
}

func NewCartUsecase(productRepo repo.ProductRepository) *CartUsecase {
	return &CartUsecase{productRepo: productRepo}
}

// カート表示用のDTO。priceは追加時点のスナップショット。
type CartLineResponse struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Category  string `json:"category"`
	Image     string `json:"image"`
	Quantity  int64  `json:"quantity"`
	Subtotal  int64  `json:"subtotal"`
}

type CartResponse struct {
	Items []CartLineResponse `json:"items"`
	Total int64              `json:"total"`
	//reconcileで行が落ちたときtrue（1回だけの通知に使う）
	Trimmed bool `json:"trimmed,omitempty"`
}

// AddItem は商品をカートへ追加（同一商品は数量+1）。
// 商品が存在しなければErrProductNotFound（セッションは触らない）。
func (u *CartUsecase) AddItem(ctx context.Context, cart model.Cart, productID int64) (model.Cart, error) {
	if productID <= 0 {
		return cart, ErrProductNotFound
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return cart, ErrProductNotFound
	}
	if err != nil {
		return cart, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := cloneCart(cart)

	//既存行があれば数量加算
	if i := out.IndexOf(productID); i >= 0 {
		out[i].Quantity++
		return out, nil
	}

	//新規行は数量1＋現在の商品フィールドのスナップショット
	out = append(out, model.CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Category:  p.Category,
		Image:     p.Image,
		Quantity:  1,
	})
	return out, nil
}

// ChangeQuantity は数量を±1する。結果が0以下なら行ごと削除。
// 該当行が無ければ何もしない。
func (u *CartUsecase) ChangeQuantity(cart model.Cart, productID int64, action string) model.Cart {
	i := cart.IndexOf(productID)
	if i < 0 {
		return cart
	}

	out := cloneCart(cart)
	switch action {
	case QuantityActionAdd:
		out[i].Quantity++
	case QuantityActionSub:
		out[i].Quantity--
	default:
		return cart
	}

	//数量0以下の行は残さない
	if out[i].Quantity <= 0 {
		out = append(out[:i], out[i+1:]...)
	}
	return out
}

// RemoveItem は行を無条件に削除。無ければ何もしない。
func (u *CartUsecase) RemoveItem(cart model.Cart, productID int64) model.Cart {
	i := cart.IndexOf(productID)
	if i < 0 {
		return cart
	}
	out := cloneCart(cart)
	return append(out[:i], out[i+1:]...)
}

// Reconcile はカタログから消えた商品の行を落とす。
// 戻り値のboolは「何か落としたか」（ユーザー通知用）。
// カート表示の前とチェックアウト開始の前に必ず呼ぶ。
func (u *CartUsecase) Reconcile(ctx context.Context, cart model.Cart) (model.Cart, bool, error) {
	if len(cart) == 0 {
		return model.Cart{}, false, nil
	}

	out := make(model.Cart, 0, len(cart))
	trimmed := false

	for _, line := range cart {
		_, err := u.productRepo.FindByID(ctx, line.ProductID)
		if err == repo.ErrNotFound {
			trimmed = true
			continue
		}
		if err != nil {
			return cart, false, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = append(out, line)
	}

	return out, trimmed, nil
}

// 表示用DTOを作る。totalはスナップショット価格×数量の合計（表示専用）。
func BuildCartResponse(cart model.Cart, trimmed bool) CartResponse {
	items := make([]CartLineResponse, 0, len(cart))
	var total int64 = 0

	for _, line := range cart {
		sub := line.Price * line.Quantity
		items = append(items, CartLineResponse{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Category:  line.Category,
			Image:     line.Image,
			Quantity:  line.Quantity,
			Subtotal:  sub,
		})
		total += sub
	}

	return CartResponse{Items: items, Total: total, Trimmed: trimmed}
}

// 呼び出し元のスライスを書き換えないためのコピー
func cloneCart(cart model.Cart) model.Cart {
	out := make(model.Cart, len(cart))
	copy(out, cart)
	return out
}
