package handler

import (
	"errors"
	"net/http"
	"strconv"

	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/labstack/echo/v4"
)

// チェックアウトと注文確認のHTTP
type OrderHandler struct {
	uc    *usecase.CheckoutUsecase
	store repository.SessionCartStore
}

// DI
func NewOrderHandler(uc *usecase.CheckoutUsecase, store repository.SessionCartStore) *OrderHandler {
	return &OrderHandler{uc: uc, store: store}
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("")
	g.Use(middleware.Session())

	g.POST("/checkout", h.submitCheckout)
	g.GET("/orders/:id", h.orderConfirmation)
}

type CheckoutResponse struct {
	OrderID int64 `json:"order_id"`
}

// カート変更通知付きのエラー応答
type CartChangedResponse struct {
	Error string               `json:"error"`
	Cart  usecase.CartResponse `json:"cart"`
}

func (h *OrderHandler) submitCheckout(c echo.Context) error {
	sid, ok := middleware.SessionIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "no session"})
	}

	var in usecase.CheckoutInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	ctx := c.Request().Context()
	cart, err := h.store.Get(ctx, sid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "session store error"})
	}

	orderID, updated, err := h.uc.SubmitCheckout(ctx, cart, in)

	//空カートは即拒否（セッションもカタログも触っていない）
	if errors.Is(err, usecase.ErrCartEmpty) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cart empty"})
	}

	//フィールド検証エラー。フォームへ差し戻し、セッションは書かない
	var ve *validator.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: ve.Message, Field: ve.Field})
	}

	//全行消失。カートを空にして一覧へ戻す
	if errors.Is(err, usecase.ErrEmptyCartAfterReconciliation) {
		if err := h.store.Save(ctx, sid, updated); err != nil {
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "session store error"})
		}
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "No valid products in cart."})
	}

	//一部消失。生存行でカートを書き換えてカート画面へ戻す（注文は作っていない）
	if errors.Is(err, usecase.ErrCartChangedDuringCheckout) {
		if err := h.store.Save(ctx, sid, updated); err != nil {
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "session store error"})
		}
		return c.JSON(http.StatusConflict, CartChangedResponse{
			Error: "Some products were removed because they are no longer available.",
			Cart:  usecase.BuildCartResponse(updated, true),
		})
	}

	if err != nil {
		return writeError(c, err)
	}

	//成功。カートをクリアして確認ページへ
	if err := h.store.Save(ctx, sid, updated); err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "session store error"})
	}

	return c.JSON(http.StatusCreated, CheckoutResponse{OrderID: orderID})
}

func (h *OrderHandler) orderConfirmation(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
