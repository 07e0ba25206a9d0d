package catalog

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"storysite/internal/models"
)

// SortKey - порядок списка историй.
type SortKey string

const (
	SortViews    SortKey = "views"
	SortLikes    SortKey = "likes"
	SortChapters SortKey = "chapters"
	SortTitle    SortKey = "title"
)

// SortKeys в порядке показа на странице.
var SortKeys = []SortKey{SortViews, SortLikes, SortChapters, SortTitle}

// ParseSortKey разбирает ключ; неизвестный ключ дает SortViews.
func ParseSortKey(s string) SortKey {
	for _, k := range SortKeys {
		if string(k) == s {
			return k
		}
	}
	return SortViews
}

// Label - подпись ключа сортировки.
func (k SortKey) Label() string {
	switch k {
	case SortLikes:
		return "Lượt thích"
	case SortChapters:
		return "Số chap"
	case SortTitle:
		return "Tên truyện"
	default:
		return "Lượt xem"
	}
}

// Filter - фильтры страницы списка историй.
type Filter struct {
	Keyword     string
	Statuses    []models.StoryStatus
	CategoryIDs []string
	Sort        SortKey
}

// Apply возвращает новый отфильтрованный и отсортированный список; исходный не меняется.
func Apply(stories []models.Story, f Filter) []models.Story {
	out := make([]models.Story, 0, len(stories))
	keyword := strings.TrimSpace(f.Keyword)
	for _, s := range stories {
		if keyword != "" && !MatchTitle(s.Title, keyword) {
			continue
		}
		if len(f.Statuses) > 0 && !containsStatus(f.Statuses, s.StoryStatus) {
			continue
		}
		if len(f.CategoryIDs) > 0 && !sharesCategory(s.CategoryIDs, f.CategoryIDs) {
			continue
		}
		out = append(out, s)
	}
	SortStories(out, f.Sort)
	return out
}

// SortStories сортирует на месте: счетчики по убыванию, название по вьетнамскому алфавиту.
func SortStories(stories []models.Story, key SortKey) {
	switch key {
	case SortLikes:
		sort.SliceStable(stories, func(i, j int) bool { return stories[i].LikeCount > stories[j].LikeCount })
	case SortChapters:
		sort.SliceStable(stories, func(i, j int) bool { return stories[i].TotalChapters > stories[j].TotalChapters })
	case SortTitle:
		c := newCollator()
		sort.SliceStable(stories, func(i, j int) bool {
			return c.CompareString(stories[i].Title, stories[j].Title) < 0
		})
	default:
		sort.SliceStable(stories, func(i, j int) bool { return stories[i].ViewCount > stories[j].ViewCount })
	}
}

// MatchTitle ищет keyword в title без учета регистра.
// Запрос без диакритики ("tien nghich") тоже находит "Tiên Nghịch".
func MatchTitle(title, keyword string) bool {
	t, k := strings.ToLower(title), strings.ToLower(strings.TrimSpace(keyword))
	if strings.Contains(t, k) {
		return true
	}
	return strings.Contains(fold(t), fold(k))
}

// fold убирает диакритику и заменяет đ на d.
func fold(s string) string {
	tr := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(tr, s)
	if err != nil {
		out = s
	}
	return strings.NewReplacer("đ", "d", "Đ", "D").Replace(out)
}

// newCollator создает вьетнамский коллатор. Collator не потокобезопасен, поэтому на каждый вызов свой.
func newCollator() *collate.Collator {
	return collate.New(language.Vietnamese)
}

func containsStatus(list []models.StoryStatus, s models.StoryStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func sharesCategory(ids, wanted []string) bool {
	for _, id := range ids {
		for _, w := range wanted {
			if id == w {
				return true
			}
		}
	}
	return false
}
