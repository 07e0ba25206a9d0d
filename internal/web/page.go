package web

import "storysite/internal/models"

// Flash - одноразовое сообщение после редиректа.
type Flash struct {
	Type    string `json:"t"` // success, error, info
	Message string `json:"m"`
}

// Page - общие данные каждого шаблона. Data - данные конкретной страницы.
type Page struct {
	Title       string
	Description string
	Canonical   string
	Path        string

	Settings       models.SiteSettings
	CopyProtection bool
	Theme          string
	FontSize       int

	User      *models.AuthUser
	Admin     bool
	LoginPath string

	Flash      *Flash
	Error      string
	Breadcrumb []models.SeoBreadcrumbItem

	Data any
}

// SiteName - название сайта или значение по умолчанию.
func (p Page) SiteName() string {
	if p.Settings.SiteName == "" {
		return "StoryHub"
	}
	return p.Settings.SiteName
}

// FullTitle - заголовок вкладки.
func (p Page) FullTitle() string {
	if p.Title == "" {
		return p.SiteName()
	}
	return p.Title + " | " + p.SiteName()
}
