package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storysite/internal/models"
)

func (h *Handler) settingsPage(c *gin.Context) {
	settings, err := h.clients.Settings.GetAdmin(c.Request.Context())
	if err != nil && h.adminFailed(c, err) {
		return
	}
	p := h.adminPage(c, "Cài đặt")
	view := settingsView{}
	if err != nil {
		p.Error = models.UserMessage(err, msgConnection)
	} else if settings != nil {
		view.Settings = *settings
	}
	p.Data = view
	h.render(c, http.StatusOK, "admin_settings.html", p)
}

func (h *Handler) updateSettings(c *gin.Context) {
	settings := models.SiteSettings{
		SiteName:                  strings.TrimSpace(c.PostForm("siteName")),
		AdminHiddenLoginPath:      strings.TrimSpace(c.PostForm("adminHiddenLoginPath")),
		CopyProtectionEnabled:     c.PostForm("copyProtectionEnabled") == "true",
		ScrapingProtectionEnabled: c.PostForm("scrapingProtectionEnabled") == "true",
	}
	if logo := strings.TrimSpace(c.PostForm("logoUrl")); logo != "" {
		settings.LogoURL = &logo
	}

	p := h.adminPage(c, "Cài đặt")
	if settings.SiteName == "" {
		p.Error = msgSiteNameMissing
		p.Data = settingsView{Settings: settings}
		h.render(c, http.StatusBadRequest, "admin_settings.html", p)
		return
	}

	if _, err := h.clients.Settings.Update(c.Request.Context(), settings); err != nil {
		if h.adminFailed(c, err) {
			return
		}
		adminWritesTotal.WithLabelValues("settings", "update_error").Inc()
		p.Error = models.UserMessage(err, msgGeneric)
		p.Data = settingsView{Settings: settings}
		h.render(c, statusFor(err), "admin_settings.html", p)
		return
	}
	adminWritesTotal.WithLabelValues("settings", "update").Inc()
	h.setFlash(c, "success", msgSettingsSaved)
	c.Redirect(http.StatusSeeOther, "/admin/settings")
}
