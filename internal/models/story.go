package models

import (
	"strconv"
	"time"
)

// StoryStatus - статус публикации истории.
type StoryStatus string

const (
	StoryStatusOngoing   StoryStatus = "ONGOING"
	StoryStatusCompleted StoryStatus = "COMPLETED"
	StoryStatusPaused    StoryStatus = "PAUSED"
	StoryStatusDropped   StoryStatus = "DROPPED"
)

// StoryStatuses перечисляет статусы в порядке показа в формах.
var StoryStatuses = []StoryStatus{
	StoryStatusOngoing,
	StoryStatusCompleted,
	StoryStatusPaused,
	StoryStatusDropped,
}

// Valid сообщает, известен ли статус.
func (s StoryStatus) Valid() bool {
	for _, known := range StoryStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Label возвращает подпись статуса для витрины.
func (s StoryStatus) Label() string {
	switch s {
	case StoryStatusOngoing:
		return "Đang ra"
	case StoryStatusCompleted:
		return "Hoàn thành"
	case StoryStatusPaused:
		return "Tạm dừng"
	case StoryStatusDropped:
		return "Ngừng"
	default:
		return string(s)
	}
}

// StorySummarySection - один блок аннотации истории (текст и/или картинка).
type StorySummarySection struct {
	ID          string  `json:"id,omitempty"`
	TempID      string  `json:"tempId,omitempty"`
	SortOrder   int     `json:"sortOrder"`
	TextContent *string `json:"textContent,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
}

// Key - стабильный ключ секции: id, затем tempId, затем sortOrder.
func (s StorySummarySection) Key() string {
	if s.ID != "" {
		return s.ID
	}
	if s.TempID != "" {
		return s.TempID
	}
	return strconv.Itoa(s.SortOrder)
}

// Text возвращает текст секции или пустую строку.
func (s StorySummarySection) Text() string {
	if s.TextContent == nil {
		return ""
	}
	return *s.TextContent
}

// Image возвращает URL картинки секции или пустую строку.
func (s StorySummarySection) Image() string {
	if s.ImageURL == nil {
		return ""
	}
	return *s.ImageURL
}

// Story - история в том виде, в каком её отдает бэкенд.
type Story struct {
	ID               string                `json:"id"`
	Slug             string                `json:"slug"`
	Title            string                `json:"title"`
	CoverImageURL    *string               `json:"coverImageUrl,omitempty"`
	AuthorName       *string               `json:"authorName,omitempty"`
	ShortDescription *string               `json:"shortDescription,omitempty"`
	StoryStatus      StoryStatus           `json:"storyStatus"`
	TotalChapters    int                   `json:"totalChapters"`
	Hot              bool                  `json:"hot"`
	Recommended      bool                  `json:"recommended"`
	ViewCount        int64                 `json:"viewCount"`
	LikeCount        int64                 `json:"likeCount"`
	CategoryIDs      []string              `json:"categoryIds"`
	SummarySections  []StorySummarySection `json:"summarySections,omitempty"`
	CreatedAt        *time.Time            `json:"createdAt,omitempty"`
	UpdatedAt        *time.Time            `json:"updatedAt,omitempty"`
	PublishedAt      *time.Time            `json:"publishedAt,omitempty"`
}

// HasCategory сообщает, входит ли история в категорию.
func (s Story) HasCategory(categoryID string) bool {
	for _, id := range s.CategoryIDs {
		if id == categoryID {
			return true
		}
	}
	return false
}

// Author возвращает автора или пустую строку.
func (s Story) Author() string {
	if s.AuthorName == nil {
		return ""
	}
	return *s.AuthorName
}

// Description возвращает краткое описание или пустую строку.
func (s Story) Description() string {
	if s.ShortDescription == nil {
		return ""
	}
	return *s.ShortDescription
}

// Cover возвращает URL обложки или пустую строку.
func (s Story) Cover() string {
	if s.CoverImageURL == nil {
		return ""
	}
	return *s.CoverImageURL
}

// StoryRequest - тело запроса создания/обновления истории.
type StoryRequest struct {
	Title            string                `json:"title"`
	Slug             string                `json:"slug"`
	CoverImageURL    *string               `json:"coverImageUrl,omitempty"`
	AuthorName       *string               `json:"authorName,omitempty"`
	ShortDescription *string               `json:"shortDescription,omitempty"`
	StoryStatus      StoryStatus           `json:"storyStatus"`
	TotalChapters    int                   `json:"totalChapters"`
	Hot              bool                  `json:"hot"`
	Recommended      bool                  `json:"recommended"`
	CategoryIDs      []string              `json:"categoryIds"`
	SummarySections  []StorySummarySection `json:"summarySections"`
}

// RequestFromStory собирает запрос на обновление из уже загруженной истории.
func RequestFromStory(s Story) StoryRequest {
	return StoryRequest{
		Title:            s.Title,
		Slug:             s.Slug,
		CoverImageURL:    s.CoverImageURL,
		AuthorName:       s.AuthorName,
		ShortDescription: s.ShortDescription,
		StoryStatus:      s.StoryStatus,
		TotalChapters:    s.TotalChapters,
		Hot:              s.Hot,
		Recommended:      s.Recommended,
		CategoryIDs:      append([]string(nil), s.CategoryIDs...),
		SummarySections:  append([]StorySummarySection(nil), s.SummarySections...),
	}
}
