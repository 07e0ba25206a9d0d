package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storysite/internal/catalog"
	"storysite/internal/editor"
	"storysite/internal/models"
)

func (h *Handler) adminStories(c *gin.Context) {
	stories, err := h.clients.Stories.AdminList(c.Request.Context())
	if err != nil && h.adminFailed(c, err) {
		return
	}
	p := h.adminPage(c, "Quản lý truyện")
	if err != nil {
		p.Error = models.UserMessage(err, msgConnection)
	}

	keyword := strings.TrimSpace(c.Query("q"))
	if keyword != "" {
		filtered := stories[:0:0]
		for _, s := range stories {
			if catalog.MatchTitle(s.Title, keyword) {
				filtered = append(filtered, s)
			}
		}
		stories = filtered
	}
	p.Data = adminStoriesView{Stories: stories, Keyword: keyword}
	h.render(c, http.StatusOK, "admin_stories.html", p)
}

func (h *Handler) newStoryForm(c *gin.Context) {
	req := models.StoryRequest{StoryStatus: models.StoryStatusOngoing, CategoryIDs: []string{}}
	h.renderStoryForm(c, http.StatusOK, true, "/admin/stories", req, editor.New(nil), "")
}

// findStory ищет историю по id в админском списке: отдельного запроса по id у API нет.
func (h *Handler) findStory(c *gin.Context, id string) (*models.Story, error) {
	stories, err := h.clients.Stories.AdminList(c.Request.Context())
	if err != nil {
		return nil, err
	}
	for i := range stories {
		if stories[i].ID == id {
			return &stories[i], nil
		}
	}
	return nil, models.NewAPIError(http.StatusNotFound, msgStoryNotFound)
}

func (h *Handler) editStoryForm(c *gin.Context) {
	id := c.Param("id")
	story, err := h.findStory(c, id)
	if err != nil {
		if h.adminFailed(c, err) {
			return
		}
		h.setFlash(c, "error", models.UserMessage(err, msgStoryNotFound))
		c.Redirect(http.StatusSeeOther, "/admin/stories")
		return
	}
	req := models.RequestFromStory(*story)
	h.renderStoryForm(c, http.StatusOK, false, "/admin/stories/"+id, req, editor.New(req.SummarySections), "")
}

func (h *Handler) createStory(c *gin.Context) {
	h.submitStory(c, "", true)
}

func (h *Handler) updateStory(c *gin.Context) {
	h.submitStory(c, c.Param("id"), false)
}

// submitStory обрабатывает и кнопки редактора аннотации, и сохранение.
// Кнопки редактора перерисовывают форму с измененными блоками без обращения к API.
func (h *Handler) submitStory(c *gin.Context, id string, isNew bool) {
	action := "/admin/stories"
	if !isNew {
		action += "/" + id
	}

	req := parseStoryForm(c)
	e := editor.New(req.SummarySections)
	save, err := applySectionOp(e, sectionOpFromForm(c))
	if err != nil {
		h.renderStoryForm(c, http.StatusOK, isNew, action, req, e, sectionOpMessage(err))
		return
	}
	if !save {
		h.renderStoryForm(c, http.StatusOK, isNew, action, req, e, "")
		return
	}
	if req.Title == "" || req.Slug == "" {
		h.renderStoryForm(c, http.StatusBadRequest, isNew, action, req, e, msgTitleSlugMissing)
		return
	}

	body := req
	body.SummarySections = sectionsForSave(e.Sections())
	ctx := c.Request.Context()
	var (
		story *models.Story
		msg   = msgStoryUpdated
		kind  = "update"
	)
	if isNew {
		story, err = h.clients.Stories.Create(ctx, body)
		msg, kind = msgStoryCreated, "create"
	} else {
		story, err = h.clients.Stories.Update(ctx, id, body)
	}
	if err != nil {
		if h.adminFailed(c, err) {
			return
		}
		adminWritesTotal.WithLabelValues("story", kind+"_error").Inc()
		h.renderStoryForm(c, statusFor(err), isNew, action, req, e, models.UserMessage(err, msgGeneric))
		return
	}

	adminWritesTotal.WithLabelValues("story", kind).Inc()
	fields := []zap.Field{zap.String("slug", body.Slug), zap.String("action", kind)}
	if story != nil {
		fields = append(fields, zap.String("story_id", story.ID))
	}
	h.logger.Info("Story saved", fields...)
	h.setFlash(c, "success", msg)
	c.Redirect(http.StatusSeeOther, "/admin/stories")
}

func (h *Handler) deleteStory(c *gin.Context) {
	id := c.Param("id")
	if err := h.clients.Stories.Remove(c.Request.Context(), id); err != nil {
		if h.adminFailed(c, err) {
			return
		}
		adminWritesTotal.WithLabelValues("story", "delete_error").Inc()
		h.setFlash(c, "error", models.UserMessage(err, msgGeneric))
	} else {
		adminWritesTotal.WithLabelValues("story", "delete").Inc()
		h.logger.Info("Story deleted", zap.String("story_id", id))
		h.setFlash(c, "success", msgStoryDeleted)
	}
	c.Redirect(http.StatusSeeOther, "/admin/stories")
}

func (h *Handler) renderStoryForm(c *gin.Context, status int, isNew bool, action string, req models.StoryRequest, e *editor.Editor, errMsg string) {
	categories, err := h.clients.Categories.ListAdmin(c.Request.Context())
	if err != nil {
		if h.adminFailed(c, err) {
			return
		}
		h.logger.Warn("Categories unavailable for story form", zap.Error(err))
	}

	title := "Sửa truyện"
	if isNew {
		title = "Thêm truyện"
	}
	p := h.adminPage(c, title)
	p.Error = errMsg
	p.Data = storyFormView{
		IsNew:      isNew,
		Action:     action,
		Form:       req,
		Sections:   e.Sections(),
		Statuses:   models.StoryStatuses,
		Categories: categories,
	}
	h.render(c, status, "admin_story_form.html", p)
}
