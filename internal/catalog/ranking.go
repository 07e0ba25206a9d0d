package catalog

import (
	"sort"

	"storysite/internal/models"
)

const (
	HomeSectionSize    = 6
	TrendingSize       = 4
	CategoryGroupLimit = 4
	RelatedLimit       = 6
)

// Related - истории с общей категорией, кроме самой истории:
// сначала рекомендованные, затем hot, затем по просмотрам, затем по названию.
func Related(current models.Story, all []models.Story, limit int) []models.Story {
	if len(current.CategoryIDs) == 0 {
		return nil
	}
	var out []models.Story
	for _, s := range all {
		if s.Slug == current.Slug {
			continue
		}
		if sharesCategory(s.CategoryIDs, current.CategoryIDs) {
			out = append(out, s)
		}
	}
	c := newCollator()
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Recommended != b.Recommended {
			return a.Recommended
		}
		if a.Hot != b.Hot {
			return a.Hot
		}
		if a.ViewCount != b.ViewCount {
			return a.ViewCount > b.ViewCount
		}
		return c.CompareString(a.Title, b.Title) < 0
	})
	return head(out, limit)
}

// SortByRecommendation: рекомендованные первыми, затем по просмотрам, затем по названию.
func SortByRecommendation(stories []models.Story) []models.Story {
	out := append([]models.Story(nil), stories...)
	c := newCollator()
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Recommended != b.Recommended {
			return a.Recommended
		}
		if a.ViewCount != b.ViewCount {
			return a.ViewCount > b.ViewCount
		}
		return c.CompareString(a.Title, b.Title) < 0
	})
	return out
}

// TopViewed - первые n историй по просмотрам.
func TopViewed(stories []models.Story, n int) []models.Story {
	out := append([]models.Story(nil), stories...)
	SortStories(out, SortViews)
	return head(out, n)
}

// Recommended - первые n рекомендованных историй в исходном порядке.
func Recommended(stories []models.Story, n int) []models.Story {
	return head(where(stories, func(s models.Story) bool { return s.Recommended }), n)
}

// Hot - первые n hot историй в исходном порядке.
func Hot(stories []models.Story, n int) []models.Story {
	return head(where(stories, func(s models.Story) bool { return s.Hot }), n)
}

// Without исключает историю со slug.
func Without(stories []models.Story, slug string) []models.Story {
	return where(stories, func(s models.Story) bool { return s.Slug != slug })
}

func where(stories []models.Story, keep func(models.Story) bool) []models.Story {
	var out []models.Story
	for _, s := range stories {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

func head[T any](items []T, n int) []T {
	if n >= 0 && len(items) > n {
		return items[:n]
	}
	return items
}
