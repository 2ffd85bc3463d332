package server

import (
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nmh2003/shopchat/internal/chat"
	"github.com/nmh2003/shopchat/internal/runtime"
	"github.com/nmh2003/shopchat/session"
)

// ChatHandler wires one chat turn: identity, session recall, classification,
// dispatch, session update.
type ChatHandler struct {
	Classifier *chat.Classifier
	Dispatcher *chat.Dispatcher
	Sessions   session.Store
	Secret     []byte
	Logger     *log.Logger
}

func (h *ChatHandler) Register(g *echo.Group) {
	g.POST("/chat", h.chat)
}

func (h *ChatHandler) chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	input := strings.TrimSpace(req.UserInput)
	if input == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_input required")
	}

	ctx := c.Request().Context()
	userID, authenticated := runtime.IdentityFromToken(req.JWTToken, h.Secret)

	// Prior context, if a recent turn exists, is handed to the classifier so
	// the model can resolve references back to it.
	var prior session.Context
	if authenticated {
		var err error
		prior, _, err = h.Sessions.Get(ctx, userID)
		if err != nil {
			h.Logger.Printf("session get for %s: %v", userID, err)
		}
	}

	result := h.Classifier.Classify(ctx, input, prior)
	out := h.Dispatcher.Dispatch(ctx, chat.Request{UserID: userID, Input: input}, result)

	if authenticated {
		err := h.Sessions.Put(ctx, userID, session.Context{
			"last_input":  input,
			"last_intent": string(out.Intent),
		})
		if err != nil {
			h.Logger.Printf("session put for %s: %v", userID, err)
		}
	}

	return c.JSON(http.StatusOK, out)
}
