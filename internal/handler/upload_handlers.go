package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storysite/internal/models"
)

// maxUploadSize ограничивает тело multipart-запроса.
const maxUploadSize = 10 << 20

// upload проксирует картинку в API: kind=cover или image.
func (h *Handler) upload(c *gin.Context) {
	kind := c.Param("kind")
	if kind != "cover" && kind != "image" {
		c.Redirect(http.StatusSeeOther, "/admin/dashboard")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)
	header, err := c.FormFile("file")
	if err != nil {
		h.uploadDone(c, http.StatusBadRequest, "", err)
		return
	}
	file, err := header.Open()
	if err != nil {
		h.uploadDone(c, http.StatusBadRequest, "", err)
		return
	}
	defer file.Close()

	var resp *models.UploadResponse
	if kind == "cover" {
		resp, err = h.clients.Uploads.Cover(c.Request.Context(), header.Filename, file)
	} else {
		resp, err = h.clients.Uploads.Image(c.Request.Context(), header.Filename, file)
	}
	if err != nil {
		if h.adminFailed(c, err) {
			return
		}
		h.uploadDone(c, statusFor(err), "", err)
		return
	}
	adminWritesTotal.WithLabelValues("upload", kind).Inc()
	h.logger.Info("Image uploaded", zap.String("kind", kind), zap.String("url", resp.URL))
	h.uploadDone(c, http.StatusOK, resp.URL, nil)
}

// uploadDone отвечает JSON для скриптов, а формам - flash и возврат на страницу, откуда пришли.
func (h *Handler) uploadDone(c *gin.Context, status int, imageURL string, err error) {
	if wantsJSON(c) {
		if err != nil {
			c.JSON(status, gin.H{"error": models.UserMessage(err, msgGeneric)})
			return
		}
		c.JSON(status, gin.H{"url": imageURL})
		return
	}
	if err != nil {
		h.logger.Warn("Upload failed", zap.Error(err))
		h.setFlash(c, "error", models.UserMessage(err, msgGeneric))
	} else {
		h.setFlash(c, "success", msgUploaded+imageURL)
	}
	c.Redirect(http.StatusSeeOther, refererPath(c.GetHeader("Referer"), "/admin/stories"))
}

// refererPath оставляет от Referer только путь, чтобы не уйти на чужой хост.
func refererPath(referer, fallback string) string {
	u, err := url.Parse(referer)
	if err != nil || u.Path == "" {
		return fallback
	}
	target := u.Path
	if u.RawQuery != "" {
		target += "?" + u.RawQuery
	}
	return safeRedirect(target, fallback)
}
