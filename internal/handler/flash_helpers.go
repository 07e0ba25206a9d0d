package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storysite/internal/web"
)

const (
	flashCookieName = "storysite_flash"
	flashSeparator  = "|"
	flashMaxAge     = 10 // секунд
)

// setFlash кладет подписанное сообщение в cookie до следующей страницы.
func (h *Handler) setFlash(c *gin.Context, kind, message string) {
	data, err := json.Marshal(web.Flash{Type: kind, Message: message})
	if err != nil {
		h.logger.Error("Failed to marshal flash message", zap.Error(err))
		return
	}
	value := base64.URLEncoding.EncodeToString(data) + flashSeparator + base64.URLEncoding.EncodeToString(h.sign(data))
	h.setCookie(c, flashCookieName, value, flashMaxAge)
}

// popFlash читает и сразу удаляет flash-cookie. Неподписанное или испорченное значение игнорируется.
func (h *Handler) popFlash(c *gin.Context) *web.Flash {
	raw, err := c.Cookie(flashCookieName)
	if err != nil || raw == "" {
		return nil
	}
	h.setCookie(c, flashCookieName, "", -1)

	encodedData, encodedSig, ok := strings.Cut(raw, flashSeparator)
	if !ok {
		return nil
	}
	data, err := base64.URLEncoding.DecodeString(encodedData)
	if err != nil {
		return nil
	}
	sig, err := base64.URLEncoding.DecodeString(encodedSig)
	if err != nil || !hmac.Equal(sig, h.sign(data)) {
		h.logger.Warn("Flash cookie signature mismatch")
		return nil
	}

	var flash web.Flash
	if err := json.Unmarshal(data, &flash); err != nil {
		return nil
	}
	return &flash
}

func (h *Handler) sign(data []byte) []byte {
	mac := hmac.New(sha256.New, h.secret)
	mac.Write(data)
	return mac.Sum(nil)
}
