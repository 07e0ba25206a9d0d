package catalog

import "storysite/internal/models"

// Crumb - звено хлебных крошек.
type Crumb struct {
	Name string
	URL  string
}

// SimpleBreadcrumb нумерует звенья с 1; canonicalUrl берется у последнего звена.
func SimpleBreadcrumb(items ...Crumb) models.SeoBreadcrumbList {
	list := models.SeoBreadcrumbList{Items: make([]models.SeoBreadcrumbItem, 0, len(items))}
	if len(items) > 0 {
		list.CanonicalURL = items[len(items)-1].URL
	}
	for i, item := range items {
		list.Items = append(list.Items, models.SeoBreadcrumbItem{
			Position: i + 1,
			Name:     item.Name,
			ItemURL:  item.URL,
		})
	}
	return list
}
