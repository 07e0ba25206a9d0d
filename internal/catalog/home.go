package catalog

import "storysite/internal/models"

// CategoryGroup - категория и её истории на главной.
type CategoryGroup struct {
	Category models.Category
	Stories  []models.Story
}

// HomeSections - блоки главной страницы.
type HomeSections struct {
	Hot            []models.Story
	Curated        []models.Story
	Banner         []models.Story
	Trending       []models.Story
	CategoryGroups []CategoryGroup
}

// Home раскладывает истории по блокам главной.
// Баннер: рекомендованные, иначе hot, иначе первые шесть.
func Home(stories []models.Story, categories []models.Category) HomeSections {
	hot := Hot(stories, HomeSectionSize)
	curated := Recommended(stories, HomeSectionSize)

	banner := curated
	if len(banner) == 0 {
		banner = hot
	}
	if len(banner) == 0 {
		banner = head(append([]models.Story(nil), stories...), HomeSectionSize)
	}

	return HomeSections{
		Hot:            hot,
		Curated:        curated,
		Banner:         banner,
		Trending:       trending(hot, curated, stories),
		CategoryGroups: limitGroups(GroupByCategory(stories, categories), CategoryGroupLimit),
	}
}

// trending берет уникальные истории из hot, curated и всего списка, пока не наберется TrendingSize.
func trending(hot, curated, all []models.Story) []models.Story {
	seen := make(map[string]struct{}, TrendingSize)
	var out []models.Story
	for _, pool := range [][]models.Story{hot, curated, all} {
		for _, s := range pool {
			if len(out) >= TrendingSize {
				return out
			}
			if _, ok := seen[s.ID]; ok {
				continue
			}
			seen[s.ID] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

// GroupByCategory - непустые группы в порядке категорий.
func GroupByCategory(stories []models.Story, categories []models.Category) []CategoryGroup {
	if len(stories) == 0 || len(categories) == 0 {
		return nil
	}
	grouped := make(map[string][]models.Story)
	for _, s := range stories {
		for _, id := range s.CategoryIDs {
			grouped[id] = append(grouped[id], s)
		}
	}
	var out []CategoryGroup
	for _, c := range categories {
		if list := grouped[c.ID]; len(list) > 0 {
			out = append(out, CategoryGroup{Category: c, Stories: list})
		}
	}
	return out
}

// limitGroups оставляет не более limit историй суммарно по всем группам.
func limitGroups(groups []CategoryGroup, limit int) []CategoryGroup {
	var out []CategoryGroup
	remaining := limit
	for _, g := range groups {
		if remaining <= 0 {
			break
		}
		slice := head(g.Stories, remaining)
		out = append(out, CategoryGroup{Category: g.Category, Stories: slice})
		remaining -= len(slice)
	}
	return out
}

// CategoryListing - страница категорий: выбранная категория, её истории и остальные.
type CategoryListing struct {
	Selected *models.Category
	Matched  []models.Story
	Others   []models.Story
	Banner   []models.Story
}

// ListCategory строит страницу категорий для slug. Пустой или неизвестный slug - все истории в Others.
func ListCategory(stories []models.Story, categories []models.Category, slug string) CategoryListing {
	listing := CategoryListing{Banner: Home(stories, nil).Banner}
	for i := range categories {
		if slug != "" && categories[i].Slug == slug {
			c := categories[i]
			listing.Selected = &c
			break
		}
	}
	if listing.Selected == nil {
		listing.Others = SortByRecommendation(stories)
		return listing
	}
	id := listing.Selected.ID
	listing.Matched = SortByRecommendation(where(stories, func(s models.Story) bool { return s.HasCategory(id) }))
	listing.Others = SortByRecommendation(where(stories, func(s models.Story) bool { return !s.HasCategory(id) }))
	return listing
}

// CategoryNames - названия категорий истории в порядке списка категорий.
func CategoryNames(story models.Story, categories []models.Category) []string {
	var names []string
	for _, c := range categories {
		if story.HasCategory(c.ID) {
			names = append(names, c.Name)
		}
	}
	return names
}
