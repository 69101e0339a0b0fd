package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"speakup.app/intake/common/id"
	"speakup.app/intake/common/logger"
	"speakup.app/intake/internal/conversation"
	"speakup.app/intake/internal/http/dto"
	"speakup.app/intake/internal/http/middleware"
)

const sessionCookieName = "speakup_session"

type ChatHandler struct {
	conversations *conversation.Manager
	secureCookies bool
}

func NewChatHandler(conversations *conversation.Manager, secureCookies bool) *ChatHandler {
	return &ChatHandler{conversations: conversations, secureCookies: secureCookies}
}

// Send applies one user turn to the session's conversation and returns the
// updated transcript.
func (h *ChatHandler) Send(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sid := h.sessionID(c)
	ctx = logger.WithLogFields(ctx, logger.LogFields{SessionID: logger.Ptr(sid)})

	ctrl := h.conversations.GetOrCreate(sid, middleware.UserFromContext(ctx))

	snap, err := ctrl.Submit(ctx, req.Message)
	if err != nil {
		h.renderError(c, err, snap)
		return
	}

	c.JSON(http.StatusOK, dto.FromSnapshot(snap))
}

// Get returns the session's conversation, creating it on first contact so the
// page load shows the greeting.
func (h *ChatHandler) Get(c *gin.Context) {
	ctrl := h.conversations.GetOrCreate(h.sessionID(c), middleware.UserFromContext(c.Request.Context()))
	c.JSON(http.StatusOK, dto.FromSnapshot(ctrl.Snapshot()))
}

// Retry re-attempts a submission that previously failed.
func (h *ChatHandler) Retry(c *gin.Context) {
	ctx := c.Request.Context()

	sid := h.sessionID(c)
	ctx = logger.WithLogFields(ctx, logger.LogFields{SessionID: logger.Ptr(sid)})

	ctrl, ok := h.conversations.Get(sid)
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": conversation.ErrNoPendingReport.Error()})
		return
	}

	snap, err := ctrl.RetrySubmit(ctx)
	if err != nil {
		h.renderError(c, err, snap)
		return
	}

	c.JSON(http.StatusOK, dto.FromSnapshot(snap))
}

// Delete discards the session's conversation.
func (h *ChatHandler) Delete(c *gin.Context) {
	h.conversations.Remove(h.sessionID(c))
	c.Status(http.StatusNoContent)
}

func (h *ChatHandler) renderError(c *gin.Context, err error, snap conversation.Snapshot) {
	switch {
	case errors.Is(err, conversation.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, conversation.ErrBusy), errors.Is(err, conversation.ErrNoPendingReport):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, conversation.ErrClosed):
		c.JSON(http.StatusGone, gin.H{"error": err.Error()})
	case errors.Is(err, conversation.ErrSubmitFailed):
		// The draft survives; the transcript tells the client where it stands.
		resp := dto.FromSnapshot(snap)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "conversation": resp})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process message"})
	}
}

// sessionID reads the session cookie, minting one on first contact.
func (h *ChatHandler) sessionID(c *gin.Context) string {
	if sid, err := c.Cookie(sessionCookieName); err == nil && sid != "" {
		return sid
	}

	sid := strconv.FormatInt(id.New(), 10)
	c.SetCookie(sessionCookieName, sid, 0, "/", "", h.secureCookies, true)
	return sid
}
