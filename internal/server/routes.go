package server

import (
	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
)

// すべてのルートをまとめて登録する。
func RegisterRoutes(
	e *echo.Echo,
	cfg config.Config,
	productH *handler.ProductHandler,
	cartH *handler.CartHandler,
	orderH *handler.OrderHandler,
	authH *handler.AuthHandler,
	adminProductH *handler.AdminProductHandler,
	adminOrderH *handler.AdminOrderHandler,
) {
	productH.RegisterRoutes(e)
	cartH.RegisterRoutes(e)
	orderH.RegisterRoutes(e)
	authH.RegisterRoutes(e)
	adminProductH.RegisterRoutes(e, cfg)
	adminOrderH.RegisterRoutes(e, cfg)
}
