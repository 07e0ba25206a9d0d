package handler

import (
	"storysite/internal/catalog"
	"storysite/internal/models"
)

type homeView struct {
	Sections     catalog.HomeSections
	Organization *models.SeoOrganization
}

type storyListView struct {
	Stories    []models.Story
	Filter     catalog.Filter
	Statuses   []models.StoryStatus
	Categories []models.Category
	Sorts      []catalog.SortKey
}

// StatusSelected используется шаблоном для отметки чекбоксов.
func (v storyListView) StatusSelected(s models.StoryStatus) bool {
	for _, selected := range v.Filter.Statuses {
		if selected == s {
			return true
		}
	}
	return false
}

type storyView struct {
	Story           *models.Story
	CategoryNames   []string
	Related         []models.Story
	ViewDelayMillis int64
}

type categoriesView struct {
	Listing catalog.CategoryListing
	Nodes   []*catalog.CategoryNode
}

// IsSelected - выбрана ли категория с этим id.
func (v categoriesView) IsSelected(id string) bool {
	return v.Listing.Selected != nil && v.Listing.Selected.ID == id
}

type donateView struct {
	Form       models.DonationRequest
	Method     string
	Status     string
	Message    string
	Currencies []string
	Methods    []string
}

type loginView struct {
	Username string
}

type dashboardView struct {
	Stats    catalog.Dashboard
	MaxViews int64
	SyncedAt string
	Failed   bool
}

type adminStoriesView struct {
	Stories []models.Story
	Keyword string
}

type storyFormView struct {
	IsNew      bool
	Action     string
	Form       models.StoryRequest
	Sections   []models.StorySummarySection
	Statuses   []models.StoryStatus
	Categories []models.Category
}

type adminCategoriesView struct {
	Nodes  []*catalog.CategoryNode
	EditID string
	Form   models.CategoryRequest
}

type adminDonationsView struct {
	Donations []models.Donation
	Statuses  []models.DonationStatus
}

type settingsView struct {
	Settings models.SiteSettings
}

var (
	donationCurrencies = []string{"VND", "USD"}
	donationMethods    = []string{"MOMO", "BANK", "PAYPAL"}
	donationStatuses   = []models.DonationStatus{
		models.DonationStatusPending,
		models.DonationStatusSuccess,
		models.DonationStatusFailed,
	}
)
