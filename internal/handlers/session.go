package handlers

import (
	"bufio"
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/simitmodi/Stride-sub000/internal/middleware"
	"github.com/simitmodi/Stride-sub000/internal/services"
	"github.com/simitmodi/Stride-sub000/internal/session"
)

// SessionHandler streams session-marker updates to open clients so a device
// learns about a sign-in elsewhere without waiting for its next request.
type SessionHandler struct {
	events *services.SessionEvents
}

// NewSessionHandler constructs SessionHandler.
func NewSessionHandler(events *services.SessionEvents) *SessionHandler {
	return &SessionHandler{events: events}
}

// Watch is a server-sent-events stream of marker transitions for the
// authenticated user. The device-local marker is the one embedded in the
// bearer token; each pushed server marker runs through the guard's
// transition table and the stream ends once a foreign login is detected.
func (h *SessionHandler) Watch(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	if !h.events.Enabled() {
		return fiber.NewError(fiber.StatusServiceUnavailable, "session watch is not available")
	}

	guard := session.NewGuard(middleware.GetSessionMarker(c))

	ctx, cancel := context.WithCancel(context.Background())
	markers, closeSub, err := h.events.SubscribeMarker(ctx, user.ID.String())
	if err != nil {
		cancel()
		return fiber.NewError(fiber.StatusServiceUnavailable, "session watch is not available")
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		defer closeSub()

		fmt.Fprint(w, "event: synced\ndata: {}\n\n")
		if err := w.Flush(); err != nil {
			return
		}

		for marker := range markers {
			switch guard.Observe(marker) {
			case session.ActionSignOut:
				fmt.Fprint(w, "event: signed-in-elsewhere\ndata: {\"message\":\"you have been signed in on another device\"}\n\n")
				_ = w.Flush()
				return
			case session.ActionAdopt:
				fmt.Fprintf(w, "event: marker-adopted\ndata: {\"marker\":%q}\n\n", marker)
			default:
				fmt.Fprint(w, "event: synced\ndata: {}\n\n")
			}
			if err := w.Flush(); err != nil {
				return
			}
		}
	}))

	return nil
}
