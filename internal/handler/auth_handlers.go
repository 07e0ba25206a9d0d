package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storysite/internal/models"
)

func (h *Handler) showLoginPage(c *gin.Context) {
	if bundle := bundleFrom(c); bundle.Auth.User().IsAdmin() && !bundle.Auth.Expired(h.now()) {
		c.Redirect(http.StatusSeeOther, "/admin/dashboard")
		return
	}
	h.renderLogin(c, http.StatusOK, "", "")
}

func (h *Handler) renderLogin(c *gin.Context, status int, username, errMsg string) {
	p := h.adminPage(c, "Đăng nhập quản trị")
	p.User = nil
	p.Error = errMsg
	p.Data = loginView{Username: username}
	h.render(c, status, "admin_login.html", p)
}

func (h *Handler) handleLogin(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	if username == "" || password == "" {
		loginAttemptsTotal.WithLabelValues("invalid").Inc()
		h.renderLogin(c, http.StatusBadRequest, username, msgLoginFailed)
		return
	}

	user, err := h.clients.Auth.Login(c.Request.Context(), username, password)
	if err != nil {
		loginAttemptsTotal.WithLabelValues("failed").Inc()
		status := http.StatusUnauthorized
		if !isClientError(err) {
			status = http.StatusBadGateway
		}
		h.renderLogin(c, status, username, models.UserMessage(err, msgLoginFailed))
		return
	}
	if !user.IsAdmin() {
		loginAttemptsTotal.WithLabelValues("forbidden").Inc()
		h.logger.Warn("Non-admin login rejected", zap.String("username", username), zap.String("role", string(user.Role)))
		h.renderLogin(c, http.StatusForbidden, username, msgNotAdmin)
		return
	}

	if err := h.rotateSession(c, user); err != nil {
		h.logger.Error("Failed to persist admin session", zap.String("username", username), zap.Error(err))
		h.renderLogin(c, http.StatusInternalServerError, username, msgGeneric)
		return
	}
	loginAttemptsTotal.WithLabelValues("success").Inc()
	h.logger.Info("Admin logged in", zap.String("username", username))
	c.Redirect(http.StatusSeeOther, "/admin/dashboard")
}

func (h *Handler) handleLogout(c *gin.Context) {
	if err := h.rotateSession(c, nil); err != nil {
		h.logger.Error("Failed to end admin session", zap.Error(err))
		if clearErr := bundleFrom(c).Auth.Clear(c.Request.Context()); clearErr != nil {
			h.logger.Error("Failed to clear admin session", zap.Error(clearErr))
		}
	}
	c.Redirect(http.StatusSeeOther, h.loginPath)
}

// isClientError - бэкенд отклонил сами данные (4xx), а не упал.
func isClientError(err error) bool {
	var apiErr *models.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 400 && apiErr.StatusCode < 500
	}
	return false
}
