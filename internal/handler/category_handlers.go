package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storysite/internal/catalog"
	"storysite/internal/models"
)

func (h *Handler) adminCategories(c *gin.Context) {
	h.renderCategories(c, http.StatusOK, c.Query("edit"), nil, "")
}

// renderCategories рисует дерево и форму. form == nil - форма заполняется из редактируемой категории.
func (h *Handler) renderCategories(c *gin.Context, status int, editID string, form *models.CategoryRequest, errMsg string) {
	categories, err := h.clients.Categories.ListAdmin(c.Request.Context())
	if err != nil && h.adminFailed(c, err) {
		return
	}
	p := h.adminPage(c, "Quản lý thể loại")
	p.Error = errMsg
	if err != nil && errMsg == "" {
		p.Error = models.UserMessage(err, msgConnection)
	}

	view := adminCategoriesView{Nodes: catalog.Flatten(catalog.Tree(categories)), EditID: editID}
	if form != nil {
		view.Form = *form
	} else if editID != "" {
		for _, cat := range categories {
			if cat.ID == editID {
				view.Form = models.CategoryRequest{Name: cat.Name, Slug: cat.Slug, Description: cat.Description, ParentID: cat.ParentID}
				break
			}
		}
	}
	p.Data = view
	h.render(c, status, "admin_categories.html", p)
}

func parseCategoryForm(c *gin.Context) models.CategoryRequest {
	optional := func(name string) *string {
		v := strings.TrimSpace(c.PostForm(name))
		if v == "" {
			return nil
		}
		return &v
	}
	return models.CategoryRequest{
		Name:        strings.TrimSpace(c.PostForm("name")),
		Slug:        strings.TrimSpace(c.PostForm("slug")),
		Description: optional("description"),
		ParentID:    optional("parentId"),
	}
}

func (h *Handler) createCategory(c *gin.Context) {
	h.saveCategory(c, "")
}

func (h *Handler) updateCategory(c *gin.Context) {
	h.saveCategory(c, c.Param("id"))
}

func (h *Handler) saveCategory(c *gin.Context, id string) {
	req := parseCategoryForm(c)
	if req.Name == "" || req.Slug == "" {
		h.renderCategories(c, http.StatusBadRequest, id, &req, msgNameSlugMissing)
		return
	}
	if id != "" && req.ParentID != nil && *req.ParentID == id {
		req.ParentID = nil
	}

	ctx := c.Request.Context()
	var err error
	kind := "create"
	if id == "" {
		_, err = h.clients.Categories.Create(ctx, req)
	} else {
		kind = "update"
		_, err = h.clients.Categories.Update(ctx, id, req)
	}
	if err != nil {
		if h.adminFailed(c, err) {
			return
		}
		adminWritesTotal.WithLabelValues("category", kind+"_error").Inc()
		h.renderCategories(c, statusFor(err), id, &req, models.UserMessage(err, msgGeneric))
		return
	}
	adminWritesTotal.WithLabelValues("category", kind).Inc()
	h.logger.Info("Category saved", zap.String("slug", req.Slug), zap.String("action", kind))
	h.setFlash(c, "success", msgCategorySaved)
	c.Redirect(http.StatusSeeOther, "/admin/categories")
}

func (h *Handler) deleteCategory(c *gin.Context) {
	id := c.Param("id")
	if err := h.clients.Categories.Remove(c.Request.Context(), id); err != nil {
		if h.adminFailed(c, err) {
			return
		}
		adminWritesTotal.WithLabelValues("category", "delete_error").Inc()
		h.setFlash(c, "error", models.UserMessage(err, msgGeneric))
	} else {
		adminWritesTotal.WithLabelValues("category", "delete").Inc()
		h.setFlash(c, "success", msgCategoryDeleted)
	}
	c.Redirect(http.StatusSeeOther, "/admin/categories")
}
