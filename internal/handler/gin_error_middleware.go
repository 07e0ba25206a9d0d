package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storysite/internal/web"
)

// ErrorMiddleware логирует ошибки из c.Errors и, если ответ еще не отправлен, показывает страницу ошибки.
func (h *Handler) ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		for _, ginErr := range c.Errors {
			h.logger.Error("Handler error",
				zap.Error(ginErr.Err),
				zap.Int("type", int(ginErr.Type)),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
		}
		if c.Writer.Written() {
			return
		}
		c.HTML(http.StatusInternalServerError, "error.html", web.Page{Title: msgGeneric})
	}
}
