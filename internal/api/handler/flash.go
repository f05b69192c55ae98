package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/firstapp/accounts/internal/core/domain"
	"github.com/firstapp/accounts/internal/core/ports"
)

// FlashCookie holds the browser's flash session id.
const FlashCookie = "flash_sid"

// Flashes binds a FlashStore to the browser session cookie.
type Flashes struct {
	store  ports.FlashStore
	secure bool
	log    zerolog.Logger
}

func NewFlashes(store ports.FlashStore, secureCookie bool, log zerolog.Logger) *Flashes {
	return &Flashes{store: store, secure: secureCookie, log: log}
}

// Add queues a message for the next rendered page of this session. Store
// failures are logged; losing a flash never fails the request.
func (f *Flashes) Add(c echo.Context, level domain.FlashLevel, message string) {
	sid := f.sessionID(c)
	if err := f.store.Push(c.Request().Context(), sid, domain.Flash{Level: level, Message: message}); err != nil {
		f.log.Warn().Err(err).Msg("flash push failed")
	}
}

// Consume returns and clears the pending messages of this session.
func (f *Flashes) Consume(c echo.Context) []domain.Flash {
	cookie, err := c.Cookie(FlashCookie)
	if err != nil || uuid.Validate(cookie.Value) != nil {
		return nil
	}
	flashes, err := f.store.Pop(c.Request().Context(), cookie.Value)
	if err != nil {
		f.log.Warn().Err(err).Msg("flash pop failed")
		return nil
	}
	return flashes
}

func (f *Flashes) sessionID(c echo.Context) string {
	if cookie, err := c.Cookie(FlashCookie); err == nil && uuid.Validate(cookie.Value) == nil {
		return cookie.Value
	}
	sid := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     FlashCookie,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		Secure:   f.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return sid
}
