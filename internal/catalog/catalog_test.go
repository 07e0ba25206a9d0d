package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storysite/internal/models"
)

func story(id, title string, views int64, opts ...func(*models.Story)) models.Story {
	s := models.Story{ID: id, Slug: id, Title: title, ViewCount: views, StoryStatus: models.StoryStatusOngoing}
	for _, o := range opts {
		o(&s)
	}
	return s
}

func hot(s *models.Story)         { s.Hot = true }
func recommended(s *models.Story) { s.Recommended = true }
func cats(ids ...string) func(*models.Story) {
	return func(s *models.Story) { s.CategoryIDs = ids }
}
func status(st models.StoryStatus) func(*models.Story) {
	return func(s *models.Story) { s.StoryStatus = st }
}

func ids(stories []models.Story) []string {
	out := make([]string, 0, len(stories))
	for _, s := range stories {
		out = append(out, s.ID)
	}
	return out
}

func TestApply_KeywordStatusCategoryAndSort(t *testing.T) {
	stories := []models.Story{
		story("1", "Tiên Nghịch", 10, cats("c1")),
		story("2", "Phàm Nhân Tu Tiên", 50, cats("c2"), status(models.StoryStatusCompleted)),
		story("3", "Đấu Phá Thương Khung", 30, cats("c1", "c2")),
		story("4", "Tiên Kiếm", 5, cats("c3")),
	}

	assert.Equal(t, []string{"2", "1", "4"}, ids(Apply(stories, Filter{Keyword: "tiên"})))
	assert.Equal(t, []string{"1", "4"}, ids(Apply(stories, Filter{Keyword: "tien", Statuses: []models.StoryStatus{models.StoryStatusOngoing}})))
	assert.Equal(t, []string{"3"}, ids(Apply(stories, Filter{Keyword: "dau pha"})))
	assert.Equal(t, []string{"2", "3"}, ids(Apply(stories, Filter{CategoryIDs: []string{"c2"}})))
	assert.Equal(t, []string{"3", "1"}, ids(Apply(stories, Filter{CategoryIDs: []string{"c1"}, Sort: SortViews})))
	assert.Len(t, Apply(stories, Filter{Keyword: "   "}), 4)
}

func TestSortStories_Title_Vietnamese(t *testing.T) {
	stories := []models.Story{
		story("1", "Đạo Quân", 0),
		story("2", "Dị Thế", 0),
		story("3", "An Bình", 0),
		story("4", "Ẩn Long", 0),
	}
	SortStories(stories, SortTitle)
	// Во вьетнамском алфавите "d" идет перед "đ", а "a" перед "â".
	assert.Equal(t, []string{"3", "4", "2", "1"}, ids(stories))
}

func TestSortStories_Counters(t *testing.T) {
	a := story("a", "A", 1)
	a.LikeCount, a.TotalChapters = 9, 100
	b := story("b", "B", 2)
	b.LikeCount, b.TotalChapters = 3, 200

	list := []models.Story{a, b}
	SortStories(list, SortLikes)
	assert.Equal(t, []string{"a", "b"}, ids(list))
	SortStories(list, SortChapters)
	assert.Equal(t, []string{"b", "a"}, ids(list))
	SortStories(list, ParseSortKey("nonsense"))
	assert.Equal(t, []string{"b", "a"}, ids(list))
}

func TestRelated(t *testing.T) {
	current := story("cur", "Hiện tại", 0, cats("c1"))
	all := []models.Story{
		current,
		story("plain-high", "Z", 100, cats("c1")),
		story("hot", "Y", 1, cats("c1"), hot),
		story("rec", "X", 0, cats("c1"), recommended),
		story("other", "W", 1000, cats("c9")),
		story("plain-b", "B", 5, cats("c1")),
		story("plain-a", "A", 5, cats("c1")),
	}

	got := Related(current, all, RelatedLimit)
	assert.Equal(t, []string{"rec", "hot", "plain-high", "plain-a", "plain-b"}, ids(got))

	assert.Len(t, Related(current, all, 2), 2)
	assert.Empty(t, Related(story("x", "x", 0), all, RelatedLimit))
}

func TestHome_BannerFallbacksAndTrending(t *testing.T) {
	plain := []models.Story{story("1", "a", 0), story("2", "b", 0)}
	h := Home(plain, nil)
	assert.Equal(t, []string{"1", "2"}, ids(h.Banner))
	assert.Empty(t, h.Hot)

	withHot := []models.Story{story("1", "a", 0), story("2", "b", 0, hot)}
	assert.Equal(t, []string{"2"}, ids(Home(withHot, nil).Banner))

	mixed := []models.Story{
		story("1", "a", 0),
		story("2", "b", 0, hot),
		story("3", "c", 0, recommended),
		story("4", "d", 0, hot, recommended),
		story("5", "e", 0),
	}
	h = Home(mixed, nil)
	assert.Equal(t, []string{"3", "4"}, ids(h.Banner))
	assert.Equal(t, []string{"2", "4", "3", "1"}, ids(h.Trending))
}

func TestHome_CategoryGroupsLimitedToFourStories(t *testing.T) {
	categories := []models.Category{{ID: "c1", Name: "A"}, {ID: "c2", Name: "B"}, {ID: "c3", Name: "Empty"}}
	stories := []models.Story{
		story("1", "a", 0, cats("c1")),
		story("2", "b", 0, cats("c1")),
		story("3", "c", 0, cats("c1", "c2")),
		story("4", "d", 0, cats("c2")),
		story("5", "e", 0, cats("c2")),
	}
	groups := Home(stories, categories).CategoryGroups
	require.Len(t, groups, 2)
	assert.Equal(t, []string{"1", "2", "3"}, ids(groups[0].Stories))
	assert.Equal(t, []string{"3"}, ids(groups[1].Stories))
}

func TestListCategory(t *testing.T) {
	categories := []models.Category{{ID: "c1", Slug: "tien-hiep"}, {ID: "c2", Slug: "do-thi"}}
	stories := []models.Story{
		story("1", "a", 10, cats("c1")),
		story("2", "b", 50, cats("c1"), recommended),
		story("3", "c", 99, cats("c2")),
	}

	l := ListCategory(stories, categories, "tien-hiep")
	require.NotNil(t, l.Selected)
	assert.Equal(t, "c1", l.Selected.ID)
	assert.Equal(t, []string{"2", "1"}, ids(l.Matched))
	assert.Equal(t, []string{"3"}, ids(l.Others))

	l = ListCategory(stories, categories, "")
	assert.Nil(t, l.Selected)
	assert.Equal(t, []string{"2", "3", "1"}, ids(l.Others))
}

func TestTree(t *testing.T) {
	p := func(s string) *string { return &s }
	categories := []models.Category{
		{ID: "root", Name: "Root"},
		{ID: "child", Name: "Child", ParentID: p("root")},
		{ID: "grand", Name: "Grand", ParentID: p("child")},
		{ID: "orphan", Name: "Orphan", ParentID: p("missing")},
		{ID: "x", Name: "X", ParentID: p("y")},
		{ID: "y", Name: "Y", ParentID: p("x")},
	}
	tree := Tree(categories)
	flat := Flatten(tree)

	var names []string
	var depths []int
	for _, n := range flat {
		names = append(names, n.Category.Name)
		depths = append(depths, n.Depth)
	}
	assert.Equal(t, []string{"Root", "Child", "Grand", "Orphan", "X", "Y"}, names)
	assert.Equal(t, []int{0, 1, 2, 0, 0, 1}, depths)
}

func TestSimpleBreadcrumb(t *testing.T) {
	list := SimpleBreadcrumb(Crumb{"Trang chủ", "/"}, Crumb{"Truyện", "/stories"})
	assert.Equal(t, "/stories", list.CanonicalURL)
	require.Len(t, list.Items, 2)
	assert.Equal(t, 2, list.Items[1].Position)
	assert.Empty(t, SimpleBreadcrumb().CanonicalURL)
}

func TestBuildDashboard(t *testing.T) {
	categories := []models.Category{{ID: "c1", Name: "A"}, {ID: "c2", Name: "B"}}
	stories := []models.Story{
		story("1", "a", 5, cats("c2"), hot),
		story("2", "b", 9, cats("c2"), recommended),
		story("3", "c", 1, cats("c1", "c2")),
	}
	donations := []models.Donation{
		{ID: "d1", Amount: 100, Status: models.DonationStatusSuccess},
		{ID: "d2", Amount: 300, Status: models.DonationStatusPending},
		{ID: "d3", Amount: 50, Status: models.DonationStatusFailed},
	}

	d := BuildDashboard(stories, categories, donations)
	assert.Equal(t, 3, d.TotalStories)
	assert.Equal(t, 1, d.HotStories)
	assert.Equal(t, 1, d.Recommended)
	assert.Equal(t, 2, d.TotalCategories)
	assert.Equal(t, 1, d.PendingDonations)
	assert.Equal(t, DonationTotals{Total: 450, Success: 100, Pending: 300}, d.Donations)
	assert.Equal(t, "d2", d.TopDonations[0].ID)
	assert.Equal(t, []string{"2", "1", "3"}, ids(d.TopStories))
	assert.Equal(t, "c2", d.TopCategories[0].Category.ID)
	assert.Equal(t, 3, d.TopCategories[0].Stories)
}
