package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"storysite/internal/catalog"
	"storysite/internal/client"
	"storysite/internal/models"
)

func isNotFound(err error) bool {
	return errors.Is(err, models.ErrNotFound)
}

// loadCatalog загружает все истории и категории параллельно. Оба запроса идут через кэш.
func (h *Handler) loadCatalog(c *gin.Context) ([]models.Story, []models.Category, error) {
	var (
		stories    []models.Story
		categories []models.Category
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		stories, err = h.clients.Stories.List(ctx, client.ListParams{})
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = h.clients.Categories.List(ctx)
		return err
	})
	err := g.Wait()
	return stories, categories, err
}

func (h *Handler) home(c *gin.Context) {
	p := h.page(c, "")
	stories, categories, err := h.loadCatalog(c)
	if err != nil {
		h.logger.Warn("Home page data unavailable", zap.Error(err))
		p.Error = models.UserMessage(err, msgConnection)
	}
	view := homeView{Sections: catalog.Home(stories, categories)}
	// Данные организации не обязательны: 204 дает nil, ошибка только логируется.
	if org, err := h.clients.Seo.Organization(c.Request.Context()); err != nil {
		h.logger.Debug("Organization SEO data unavailable", zap.Error(err))
	} else {
		view.Organization = org
	}
	p.Data = view
	h.render(c, http.StatusOK, "home.html", p)
}

// filterFromQuery читает фильтры списка: q, status (несколько), category (несколько), sort.
func filterFromQuery(c *gin.Context) catalog.Filter {
	f := catalog.Filter{
		Keyword:     strings.TrimSpace(c.Query("q")),
		CategoryIDs: c.QueryArray("category"),
		Sort:        catalog.ParseSortKey(c.Query("sort")),
	}
	for _, raw := range c.QueryArray("status") {
		if s := models.StoryStatus(raw); s.Valid() {
			f.Statuses = append(f.Statuses, s)
		}
	}
	return f
}

func (h *Handler) listStories(c *gin.Context) {
	p := h.page(c, "Danh sách truyện")
	stories, categories, err := h.loadCatalog(c)
	if err != nil {
		p.Error = models.UserMessage(err, msgConnection)
	}
	filter := filterFromQuery(c)
	p.Data = storyListView{
		Stories:    catalog.Apply(stories, filter),
		Filter:     filter,
		Statuses:   models.StoryStatuses,
		Categories: categories,
		Sorts:      catalog.SortKeys,
	}
	h.render(c, http.StatusOK, "stories.html", p)
}

// loadStory загружает историю, связанные истории и SEO-данные для detail и read.
func (h *Handler) loadStory(c *gin.Context) (*storyView, *models.SeoArticle, error) {
	ctx := c.Request.Context()
	story, err := h.clients.Stories.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		return nil, nil, err
	}
	if story == nil {
		return nil, nil, models.NewAPIError(http.StatusNotFound, msgStoryNotFound)
	}

	view := &storyView{Story: story, ViewDelayMillis: h.viewDelay.Milliseconds()}
	all, categories, err := h.loadCatalog(c)
	if err != nil {
		h.logger.Warn("Related stories unavailable", zap.String("slug", story.Slug), zap.Error(err))
	} else {
		view.Related = catalog.Related(*story, all, catalog.RelatedLimit)
		view.CategoryNames = catalog.CategoryNames(*story, categories)
	}

	article, err := h.clients.Seo.Article(ctx, story.Slug)
	if err != nil {
		h.logger.Debug("SEO article unavailable", zap.String("slug", story.Slug), zap.Error(err))
		article = nil
	}
	return view, article, nil
}

func (h *Handler) storyPage(c *gin.Context, name string, read bool) {
	view, article, err := h.loadStory(c)
	if err != nil {
		h.renderError(c, statusFor(err), err, msgStoryNotFound)
		return
	}

	p := h.page(c, view.Story.Title)
	p.Description = view.Story.Description()
	if article != nil {
		if article.MetaDescription != nil && *article.MetaDescription != "" {
			p.Description = *article.MetaDescription
		}
		if article.CanonicalURL != "" {
			p.Canonical = article.CanonicalURL
		}
	}
	p.Breadcrumb = h.breadcrumb(c, view.Story, read)
	p.Data = view
	h.render(c, http.StatusOK, name, p)
}

// breadcrumb берет крошки из SEO API, а если их нет - строит простые.
func (h *Handler) breadcrumb(c *gin.Context, story *models.Story, read bool) []models.SeoBreadcrumbItem {
	pageType := "STORY"
	if read {
		pageType = "STORY_READ"
	}
	list, err := h.clients.Seo.Breadcrumb(c.Request.Context(), models.BreadcrumbQuery{PageType: pageType, RefID: story.ID})
	if err == nil && list != nil && len(list.Items) > 0 {
		return list.Items
	}

	crumbs := []catalog.Crumb{
		{Name: "Trang chủ", URL: "/"},
		{Name: "Truyện", URL: "/stories"},
		{Name: story.Title, URL: "/stories/" + story.Slug},
	}
	if read {
		crumbs = append(crumbs, catalog.Crumb{Name: "Đọc truyện", URL: "/stories/" + story.Slug + "/read"})
	}
	return catalog.SimpleBreadcrumb(crumbs...).Items
}

func (h *Handler) storyDetail(c *gin.Context) {
	h.storyPage(c, "story.html", false)
}

func (h *Handler) readStory(c *gin.Context) {
	h.storyPage(c, "read.html", true)
}

func (h *Handler) likeStory(c *gin.Context) {
	slug := c.Param("slug")
	count, err := h.clients.Stories.TrackLike(c.Request.Context(), slug)
	if wantsJSON(c) {
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": models.UserMessage(err, msgLikeFailed)})
			return
		}
		c.JSON(http.StatusOK, gin.H{"likeCount": count})
		return
	}
	if err != nil {
		h.setFlash(c, "error", models.UserMessage(err, msgLikeFailed))
	}
	c.Redirect(http.StatusSeeOther, safeRedirect(c.PostForm("redirect"), "/stories/"+slug))
}

// viewStory вызывается скриптом страницы чтения после задержки.
func (h *Handler) viewStory(c *gin.Context) {
	count, err := h.clients.Stories.TrackView(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": models.UserMessage(err, msgGeneric)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"viewCount": count})
}

func (h *Handler) categories(c *gin.Context) {
	p := h.page(c, "Thể loại")
	stories, categories, err := h.loadCatalog(c)
	if err != nil {
		p.Error = models.UserMessage(err, msgConnection)
	}
	listing := catalog.ListCategory(stories, categories, c.Query("category"))
	if listing.Selected != nil {
		p.Title = listing.Selected.Name
		p.Description = listing.Selected.Name
		if listing.Selected.Description != nil {
			p.Description = *listing.Selected.Description
		}
	}
	p.Data = categoriesView{
		Listing: listing,
		Nodes:   catalog.Flatten(catalog.Tree(categories)),
	}
	h.render(c, http.StatusOK, "categories.html", p)
}

func newDonateView() donateView {
	method := donationMethods[0]
	return donateView{
		Form:       models.DonationRequest{Amount: 50000, Currency: "VND"},
		Method:     method,
		Currencies: donationCurrencies,
		Methods:    donationMethods,
	}
}

// donatePage показывает форму. status и message приходят при возврате с платежной страницы.
func (h *Handler) donatePage(c *gin.Context) {
	view := newDonateView()
	switch status := c.Query("status"); status {
	case "success", "fail":
		view.Status = status
		view.Message = c.Query("message")
	}
	if m := strings.ToUpper(c.Query("method")); m != "" {
		view.Method = m
	}
	p := h.page(c, "Ủng hộ")
	p.Data = view
	h.render(c, http.StatusOK, "donate.html", p)
}

// donateForm разбирает форму ушедшую с /donate.
func donateForm(c *gin.Context) (models.DonationRequest, string, bool) {
	optional := func(name string) *string {
		v := strings.TrimSpace(c.PostForm(name))
		if v == "" {
			return nil
		}
		return &v
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(c.PostForm("amount")), 64)
	method := strings.ToUpper(strings.TrimSpace(c.PostForm("paymentMethod")))
	req := models.DonationRequest{
		DonorName:    strings.TrimSpace(c.PostForm("donorName")),
		Amount:       amount,
		Currency:     strings.TrimSpace(c.PostForm("currency")),
		Message:      optional("message"),
		PaymentTxnID: optional("paymentTxnId"),
	}
	if req.Currency == "" {
		req.Currency = "VND"
	}
	if method != "" {
		req.PaymentMethod = &method
	}
	valid := err == nil && amount > 0 && req.DonorName != ""
	return req, method, valid
}

func (h *Handler) donate(c *gin.Context) {
	req, method, valid := donateForm(c)
	view := newDonateView()
	view.Form = req
	if method != "" {
		view.Method = method
	}

	p := h.page(c, "Ủng hộ")
	p.Data = &view
	if !valid {
		view.Status, view.Message = "fail", msgDonationInvalid
		h.render(c, http.StatusBadRequest, "donate.html", p)
		return
	}

	ctx := c.Request.Context()
	if c.PostForm("checkout") != "" {
		resp, err := h.clients.Payments.Checkout(ctx, models.PaymentCheckoutRequest{
			DonorName:     req.DonorName,
			Amount:        req.Amount,
			Currency:      req.Currency,
			Message:       req.Message,
			PaymentMethod: method,
		})
		if err == nil && resp != nil && resp.PaymentURL != "" {
			donationsSubmittedTotal.WithLabelValues("checkout", "ok").Inc()
			h.logger.Info("Payment checkout created", zap.String("donation_id", resp.DonationID), zap.String("provider", resp.Provider))
			c.Redirect(http.StatusSeeOther, resp.PaymentURL)
			return
		}
		donationsSubmittedTotal.WithLabelValues("checkout", "error").Inc()
		message := msgCheckoutFailed
		if err != nil {
			message = models.UserMessage(err, msgCheckoutFailed)
		} else {
			h.logger.Warn("Payment checkout returned no payment URL")
		}
		view.Status, view.Message = "fail", message
		h.render(c, http.StatusOK, "donate.html", p)
		return
	}

	if _, err := h.clients.Donations.Create(ctx, req); err != nil {
		donationsSubmittedTotal.WithLabelValues("direct", "error").Inc()
		view.Status, view.Message = "fail", models.UserMessage(err, msgGeneric)
		h.render(c, http.StatusOK, "donate.html", p)
		return
	}
	donationsSubmittedTotal.WithLabelValues("direct", "ok").Inc()
	view.Status = "success"
	view.Form = newDonateView().Form
	h.render(c, http.StatusOK, "donate.html", p)
}
