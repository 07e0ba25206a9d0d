package catalog

import (
	"sort"

	"storysite/internal/models"
)

const (
	TopDonations  = 5
	TopStories    = 6
	TopCategories = 5
)

// CategoryCount - категория и число историй в ней.
type CategoryCount struct {
	Category models.Category
	Stories  int
}

// DonationTotals - суммы пожертвований по статусам.
type DonationTotals struct {
	Total   float64
	Success float64
	Pending float64
}

// Dashboard - сводка для главной страницы админки.
type Dashboard struct {
	TotalStories     int
	HotStories       int
	Recommended      int
	TotalCategories  int
	PendingDonations int
	Donations        DonationTotals
	TopDonations     []models.Donation
	TopStories       []models.Story
	TopCategories    []CategoryCount
}

// BuildDashboard считает сводку по уже загруженным спискам.
func BuildDashboard(stories []models.Story, categories []models.Category, donations []models.Donation) Dashboard {
	d := Dashboard{
		TotalStories:    len(stories),
		TotalCategories: len(categories),
	}
	for _, s := range stories {
		if s.Hot {
			d.HotStories++
		}
		if s.Recommended {
			d.Recommended++
		}
	}
	for _, dn := range donations {
		d.Donations.Total += dn.Amount
		switch dn.Status {
		case models.DonationStatusSuccess:
			d.Donations.Success += dn.Amount
		case models.DonationStatusPending:
			d.Donations.Pending += dn.Amount
			d.PendingDonations++
		}
	}

	top := append([]models.Donation(nil), donations...)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Amount > top[j].Amount })
	d.TopDonations = head(top, TopDonations)

	d.TopStories = TopViewed(stories, TopStories)

	counts := make([]CategoryCount, 0, len(categories))
	for _, c := range categories {
		n := 0
		for _, s := range stories {
			if s.HasCategory(c.ID) {
				n++
			}
		}
		counts = append(counts, CategoryCount{Category: c, Stories: n})
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Stories > counts[j].Stories })
	d.TopCategories = head(counts, TopCategories)
	return d
}
