package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storysite/internal/models"
)

func (h *Handler) adminDonations(c *gin.Context) {
	donations, err := h.clients.Donations.AdminList(c.Request.Context())
	if err != nil && h.adminFailed(c, err) {
		return
	}
	p := h.adminPage(c, "Quản lý ủng hộ")
	if err != nil {
		p.Error = models.UserMessage(err, msgConnection)
	}
	p.Data = adminDonationsView{Donations: donations, Statuses: donationStatuses}
	h.render(c, http.StatusOK, "admin_donations.html", p)
}

func (h *Handler) updateDonationStatus(c *gin.Context) {
	id := c.Param("id")
	status := models.DonationStatus(c.PostForm("status"))
	if !status.Valid() {
		h.setFlash(c, "error", msgInvalidStatus)
		c.Redirect(http.StatusSeeOther, "/admin/donations")
		return
	}

	if _, err := h.clients.Donations.UpdateStatus(c.Request.Context(), id, status); err != nil {
		if h.adminFailed(c, err) {
			return
		}
		adminWritesTotal.WithLabelValues("donation", "status_error").Inc()
		h.setFlash(c, "error", models.UserMessage(err, msgGeneric))
	} else {
		adminWritesTotal.WithLabelValues("donation", "status").Inc()
		h.logger.Info("Donation status updated", zap.String("donation_id", id), zap.String("status", string(status)))
		h.setFlash(c, "success", msgDonationUpdated)
	}
	c.Redirect(http.StatusSeeOther, "/admin/donations")
}
