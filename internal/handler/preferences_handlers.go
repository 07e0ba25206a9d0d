package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storysite/internal/store"
)

// setTheme: theme=toggle|light|dark.
func (h *Handler) setTheme(c *gin.Context) {
	bundle := bundleFrom(c)
	ctx := c.Request.Context()

	var (
		theme store.Theme
		err   error
	)
	value := c.PostForm("theme")
	if value == "" || value == "toggle" {
		theme, err = bundle.Theme.Toggle(ctx)
	} else if parsed, ok := store.ParseTheme(value); ok {
		theme = parsed
		err = bundle.Theme.SetTheme(ctx, parsed)
	} else {
		h.preferenceFailed(c, http.StatusBadRequest, nil)
		return
	}
	if err != nil {
		h.preferenceFailed(c, http.StatusInternalServerError, err)
		return
	}

	preferenceChangesTotal.WithLabelValues("theme").Inc()
	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"theme": theme})
		return
	}
	c.Redirect(http.StatusSeeOther, safeRedirect(c.PostForm("redirect"), "/"))
}

// setFontSize: action=increase|decrease|reset|set, для set размер берется из size.
func (h *Handler) setFontSize(c *gin.Context) {
	fonts := bundleFrom(c).FontSize
	ctx := c.Request.Context()

	var (
		size int
		err  error
	)
	switch c.PostForm("action") {
	case "increase":
		size, err = fonts.Increase(ctx)
	case "decrease":
		size, err = fonts.Decrease(ctx)
	case "reset":
		size, err = store.DefaultFontSize, fonts.Reset(ctx)
	case "set":
		requested, convErr := strconv.Atoi(c.PostForm("size"))
		if convErr != nil {
			h.preferenceFailed(c, http.StatusBadRequest, nil)
			return
		}
		size, err = fonts.SetSize(ctx, requested)
	default:
		h.preferenceFailed(c, http.StatusBadRequest, nil)
		return
	}
	if err != nil {
		h.preferenceFailed(c, http.StatusInternalServerError, err)
		return
	}

	preferenceChangesTotal.WithLabelValues("font_size").Inc()
	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"fontSize": size})
		return
	}
	c.Redirect(http.StatusSeeOther, safeRedirect(c.PostForm("redirect"), "/"))
}

func (h *Handler) preferenceFailed(c *gin.Context, status int, err error) {
	if err != nil {
		h.logger.Error("Failed to save preference", zap.Error(err))
	}
	if wantsJSON(c) {
		c.JSON(status, gin.H{"error": msgGeneric})
		return
	}
	if err != nil {
		h.setFlash(c, "error", msgGeneric)
	}
	c.Redirect(http.StatusSeeOther, safeRedirect(c.PostForm("redirect"), "/"))
}
