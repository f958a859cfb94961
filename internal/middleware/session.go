package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	CtxSessionIDKey   = "session_id"
	sessionCookieName = "session_id"
	//カートの寿命と揃える
	sessionCookieTTL = 30 * time.Minute
)

// セッションIDクッキーが無ければ発行してcontextへ載せる。
// カートはこのIDをキーにストアへ保存される。
func Session() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(sessionCookieName)
			if err == nil && cookie.Value != "" {
				c.Set(CtxSessionIDKey, cookie.Value)
				return next(c)
			}

			sid := uuid.NewString()
			c.SetCookie(&http.Cookie{
				Name:     sessionCookieName,
				Value:    sid,
				Path:     "/",
				MaxAge:   int(sessionCookieTTL.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			c.Set(CtxSessionIDKey, sid)

			return next(c)
		}
	}
}

// handlerからセッションIDを取り出す
func SessionIDFromContext(c echo.Context) (string, bool) {
	v := c.Get(CtxSessionIDKey)
	sid, ok := v.(string)
	if !ok || sid == "" {
		return "", false
	}
	return sid, true
}
