package handler

import (
	"errors"
	"net/http"
	"strconv"

	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /cartのHTTP。カートの読み書きはセッションストア経由。
type CartHandler struct {
	uc    *usecase.CartUsecase
	store repository.SessionCartStore
}

// DI
func NewCartHandler(uc *usecase.CartUsecase, store repository.SessionCartStore) *CartHandler {
	return &CartHandler{uc: uc, store: store}
}

// /cart配下を登録（セッションID必須）
func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/cart")
	g.Use(middleware.Session())

	g.GET("", h.viewCart)
	g.POST("/add/:id", h.addToCart)
	g.POST("/update/:id/:action", h.updateQuantity)
	g.POST("/remove/:id", h.removeFromCart)
}

// カート表示。表示前に必ずreconcileして、消えた商品の行を落とす。
func (h *CartHandler) viewCart(c echo.Context) error {
	sid, ok := middleware.SessionIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "no session"})
	}
	ctx := c.Request().Context()

	cart, err := h.store.Get(ctx, sid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "session store error"})
	}

	cleaned, trimmed, err := h.uc.Reconcile(ctx, cart)
	if err != nil {
		return writeError(c, err)
	}

	//行が落ちたときだけ書き戻す（通知は1回きり）
	if trimmed {
		if err := h.store.Save(ctx, sid, cleaned); err != nil {
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "session store error"})
		}
	}

	return c.JSON(http.StatusOK, usecase.BuildCartResponse(cleaned, trimmed))
}

func (h *CartHandler) addToCart(c echo.Context) error {
	sid, ok := middleware.SessionIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "no session"})
	}

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	ctx := c.Request().Context()
	cart, err := h.store.Get(ctx, sid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "session store error"})
	}

	updated, err := h.uc.AddItem(ctx, cart, productID)
	if errors.Is(err, usecase.ErrProductNotFound) {
		//セッションは触らない。呼び出し側は一覧へ戻して通知する
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Product no longer available."})
	}
	if err != nil {
		return writeError(c, err)
	}

	if err := h.store.Save(ctx, sid, updated); err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "session store error"})
	}

	return c.JSON(http.StatusOK, usecase.BuildCartResponse(updated, false))
}

// プラス/マイナスボタン。actionは add / sub。
func (h *CartHandler) updateQuantity(c echo.Context) error {
	sid, ok := middleware.SessionIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "no session"})
	}

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	action := c.Param("action")
	if action != usecase.QuantityActionAdd && action != usecase.QuantityActionSub {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid action"})
	}

	ctx := c.Request().Context()
	cart, err := h.store.Get(ctx, sid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "session store error"})
	}

	updated := h.uc.ChangeQuantity(cart, productID, action)
	if err := h.store.Save(ctx, sid, updated); err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "session store error"})
	}

	return c.JSON(http.StatusOK, usecase.BuildCartResponse(updated, false))
}

func (h *CartHandler) removeFromCart(c echo.Context) error {
	sid, ok := middleware.SessionIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "no session"})
	}

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	ctx := c.Request().Context()
	cart, err := h.store.Get(ctx, sid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "session store error"})
	}

	updated := h.uc.RemoveItem(cart, productID)
	if err := h.store.Save(ctx, sid, updated); err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "session store error"})
	}

	return c.JSON(http.StatusOK, usecase.BuildCartResponse(updated, false))
}
