package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"storysite/internal/editor"
	"storysite/internal/models"
)

const tempKeyPrefix = "temp-"

// parseStoryForm читает поля истории и блоки аннотации в порядке формы.
func parseStoryForm(c *gin.Context) models.StoryRequest {
	optional := func(name string) *string {
		v := strings.TrimSpace(c.PostForm(name))
		if v == "" {
			return nil
		}
		return &v
	}
	chapters, _ := strconv.Atoi(strings.TrimSpace(c.PostForm("totalChapters")))
	if chapters < 0 {
		chapters = 0
	}
	status := models.StoryStatus(c.PostForm("storyStatus"))
	if !status.Valid() {
		status = models.StoryStatusOngoing
	}

	req := models.StoryRequest{
		Title:            strings.TrimSpace(c.PostForm("title")),
		Slug:             strings.TrimSpace(c.PostForm("slug")),
		CoverImageURL:    optional("coverImageUrl"),
		AuthorName:       optional("authorName"),
		ShortDescription: optional("shortDescription"),
		StoryStatus:      status,
		TotalChapters:    chapters,
		Hot:              c.PostForm("hot") == "true",
		Recommended:      c.PostForm("recommended") == "true",
		CategoryIDs:      c.PostFormArray("categoryIds"),
	}
	if req.CategoryIDs == nil {
		req.CategoryIDs = []string{}
	}

	keys := c.PostFormArray("sectionKey")
	texts := c.PostFormArray("sectionText")
	images := c.PostFormArray("sectionImage")
	for i, key := range keys {
		text, image := at(texts, i), strings.TrimSpace(at(images, i))
		s := models.StorySummarySection{
			SortOrder:   i + 1,
			TextContent: &text,
			ImageURL:    &image,
		}
		if strings.HasPrefix(key, tempKeyPrefix) {
			s.TempID = key
		} else {
			s.ID = key
		}
		req.SummarySections = append(req.SummarySections, s)
	}
	return req
}

func at(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}

// sectionOp - нажатая кнопка редактора и поля, которые ей нужны.
type sectionOp struct {
	Op         string
	Paste      string
	PasteHTML  bool
	MoveActive string
	MoveOver   string
}

func sectionOpFromForm(c *gin.Context) sectionOp {
	return sectionOp{
		Op:         c.PostForm("op"),
		Paste:      c.PostForm("pasteText"),
		PasteHTML:  c.PostForm("pasteHtml") == "true",
		MoveActive: c.PostForm("moveActive"),
		MoveOver:   c.PostForm("moveOver"),
	}
}

// applySectionOp выполняет действие кнопки редактора.
// op: add, save, up:KEY, down:KEY, insert:KEY, remove:KEY, paste:KEY, move[:KEY] (на место MoveOver).
// save=true означает, что форму нужно отправить в API.
func applySectionOp(e *editor.Editor, in sectionOp) (save bool, err error) {
	action, key, _ := strings.Cut(in.Op, ":")
	switch action {
	case "", "save":
		return true, nil
	case "add":
		e.Add()
	case "up":
		err = e.MoveUp(key)
	case "down":
		err = e.MoveDown(key)
	case "move":
		if key == "" {
			key = in.MoveActive
		}
		err = e.Move(key, in.MoveOver)
	case "insert":
		_, err = e.InsertAfter(key)
	case "remove":
		err = e.Remove(key)
	case "paste":
		if in.PasteHTML {
			_, err = e.PasteHTML(key, in.Paste)
		} else {
			_, err = e.PasteText(key, in.Paste)
		}
	default:
		return false, editor.ErrSectionNotFound
	}
	return false, err
}

// sectionsForSave убирает пустые блоки и временные ключи перед отправкой в API.
func sectionsForSave(sections []models.StorySummarySection) []models.StorySummarySection {
	out := make([]models.StorySummarySection, 0, len(sections))
	for _, s := range sections {
		if strings.TrimSpace(s.Text()) == "" && s.Image() == "" {
			continue
		}
		s.TempID = ""
		if s.ImageURL != nil && *s.ImageURL == "" {
			s.ImageURL = nil
		}
		s.SortOrder = len(out) + 1
		out = append(out, s)
	}
	return out
}

func sectionOpMessage(err error) string {
	if errors.Is(err, editor.ErrLastSection) {
		return msgLastSection
	}
	return msgGeneric
}
