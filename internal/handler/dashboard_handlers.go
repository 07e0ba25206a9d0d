package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"storysite/internal/catalog"
	"storysite/internal/models"
	"storysite/internal/web"
)

// dashboard загружает истории, пожертвования и категории одновременно.
// Если хоть один запрос не удался, показываются пустые данные и ошибка.
func (h *Handler) dashboard(c *gin.Context) {
	var (
		stories    []models.Story
		donations  []models.Donation
		categories []models.Category
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		stories, err = h.clients.Stories.AdminList(ctx)
		return err
	})
	g.Go(func() (err error) {
		donations, err = h.clients.Donations.AdminList(ctx)
		return err
	})
	g.Go(func() (err error) {
		categories, err = h.clients.Categories.ListAdmin(ctx)
		return err
	})
	err := g.Wait()
	if err != nil && h.adminFailed(c, err) {
		return
	}

	p := h.adminPage(c, "Tổng quan")
	now := h.now()
	view := dashboardView{SyncedAt: web.FormatTime(&now)}
	if err != nil {
		h.logger.Warn("Dashboard data unavailable", zap.Error(err))
		view.Failed = true
		p.Error = models.UserMessage(err, msgConnection)
		stories, donations, categories = nil, nil, nil
	}
	view.Stats = catalog.BuildDashboard(stories, categories, donations)
	for _, s := range view.Stats.TopStories {
		if s.ViewCount > view.MaxViews {
			view.MaxViews = s.ViewCount
		}
	}
	p.Data = view
	h.render(c, http.StatusOK, "admin_dashboard.html", p)
}
