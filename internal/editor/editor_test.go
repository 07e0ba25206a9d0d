package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storysite/internal/models"
)

func strPtr(s string) *string { return &s }

func assertContiguous(t *testing.T, e *Editor) {
	t.Helper()
	for i, s := range e.Sections() {
		assert.Equal(t, i+1, s.SortOrder, "section %s", s.Key())
	}
}

func texts(e *Editor) []string {
	var out []string
	for _, s := range e.Sections() {
		out = append(out, s.Text())
	}
	return out
}

func threeSections() *Editor {
	return New([]models.StorySummarySection{
		{ID: "a", SortOrder: 1, TextContent: strPtr("A")},
		{ID: "b", SortOrder: 2, TextContent: strPtr("B")},
		{ID: "c", SortOrder: 3, TextContent: strPtr("C")},
	})
}

func TestNew_EmptyGetsOneBlankSection(t *testing.T) {
	e := New(nil)
	require.Equal(t, 1, e.Len())
	s := e.Sections()[0]
	assert.Equal(t, 1, s.SortOrder)
	assert.Equal(t, "temp-1", s.TempID)
}

func TestNew_ResequencesAndKeysKeylessSections(t *testing.T) {
	e := New([]models.StorySummarySection{
		{ID: "x", SortOrder: 5},
		{SortOrder: 9},
	})
	assertContiguous(t, e)
	assert.Equal(t, []string{"x", "temp-3"}, e.Keys())
}

func TestAdd_UsesIncreasingTempIDs(t *testing.T) {
	e := threeSections()
	k1 := e.Add()
	k2 := e.Add()
	assert.Equal(t, "temp-4", k1)
	assert.Equal(t, "temp-5", k2)
	assert.Equal(t, []string{"a", "b", "c", "temp-4", "temp-5"}, e.Keys())
	assertContiguous(t, e)
}

func TestInsertAfter(t *testing.T) {
	e := threeSections()
	key, err := e.InsertAfter("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", key, "b", "c"}, e.Keys())
	assertContiguous(t, e)

	_, err = e.InsertAfter("zzz")
	assert.ErrorIs(t, err, ErrSectionNotFound)
}

func TestRemove(t *testing.T) {
	e := threeSections()
	require.NoError(t, e.Remove("b"))
	assert.Equal(t, []string{"a", "c"}, e.Keys())
	assertContiguous(t, e)

	require.NoError(t, e.Remove("a"))
	assert.ErrorIs(t, e.Remove("c"), ErrLastSection)
	assert.Equal(t, 1, e.Len())
	assert.ErrorIs(t, e.Remove("a"), ErrSectionNotFound)
}

func TestMove_ArrayMoveSemantics(t *testing.T) {
	tests := []struct {
		name         string
		active, over string
		want         []string
	}{
		{"down", "a", "c", []string{"b", "c", "a"}},
		{"up", "c", "a", []string{"c", "a", "b"}},
		{"neighbour", "a", "b", []string{"b", "a", "c"}},
		{"same", "b", "b", []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := threeSections()
			require.NoError(t, e.Move(tt.active, tt.over))
			assert.Equal(t, tt.want, e.Keys())
			assertContiguous(t, e)
		})
	}
}

func TestMoveUpDown(t *testing.T) {
	e := threeSections()
	require.NoError(t, e.MoveUp("a"))
	assert.Equal(t, []string{"a", "b", "c"}, e.Keys())

	require.NoError(t, e.MoveDown("a"))
	assert.Equal(t, []string{"b", "a", "c"}, e.Keys())

	require.NoError(t, e.MoveDown("c"))
	require.NoError(t, e.MoveUp("c"))
	assert.Equal(t, []string{"b", "c", "a"}, e.Keys())
	assertContiguous(t, e)
}

func TestUpdateFields(t *testing.T) {
	e := threeSections()
	require.NoError(t, e.UpdateText("b", "Bee"))
	require.NoError(t, e.UpdateImage("b", "https://cdn/b.png"))
	s := e.Sections()[1]
	assert.Equal(t, "Bee", s.Text())
	assert.Equal(t, "https://cdn/b.png", s.Image())
	assert.ErrorIs(t, e.UpdateText("nope", "x"), ErrSectionNotFound)
}

func TestSectionsReturnsCopy(t *testing.T) {
	e := threeSections()
	secs := e.Sections()
	secs[0].SortOrder = 99
	assert.Equal(t, 1, e.Sections()[0].SortOrder)
}

func TestPasteText_ThreeLines(t *testing.T) {
	e := New(nil)
	key := e.Keys()[0]

	keys, err := e.PasteText(key, "Dòng một\nDòng hai\r\nDòng ba")
	require.NoError(t, err)
	assert.Len(t, keys, 3)
	assert.Equal(t, 3, e.Len())
	assert.Equal(t, []string{"Dòng một", "Dòng hai", "Dòng ba"}, texts(e))
	assertContiguous(t, e)
}

func TestPasteText_InsertsRightAfterTarget(t *testing.T) {
	e := threeSections()
	_, err := e.PasteText("a", "x\n\n  \ny")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "B", "C"}, texts(e))
	assertContiguous(t, e)
}

func TestPasteText_BlankClipboardIsNoop(t *testing.T) {
	e := threeSections()
	keys, err := e.PasteText("b", "\n \n")
	require.NoError(t, err)
	assert.Empty(t, keys)
	assert.Equal(t, []string{"A", "B", "C"}, texts(e))
}

func TestPasteHTML(t *testing.T) {
	e := New(nil)
	key := e.Keys()[0]

	html := `<p>Chương <b>một</b>
	mở đầu</p><div>Hai<br>Ba</div><img src="https://cdn/x.png"><p>  </p><script>alert(1)</script>`
	_, err := e.PasteHTML(key, html)
	require.NoError(t, err)

	secs := e.Sections()
	require.Len(t, secs, 4)
	assert.Equal(t, "Chương một mở đầu", secs[0].Text())
	assert.Equal(t, "Hai", secs[1].Text())
	assert.Equal(t, "Ba", secs[2].Text())
	assert.Equal(t, "https://cdn/x.png", secs[3].Image())
	assertContiguous(t, e)
}

func TestPasteHTML_PreKeepsLines(t *testing.T) {
	e := New(nil)
	_, err := e.PasteHTML(e.Keys()[0], "<pre>a\nb</pre>")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, texts(e))
}

func TestInvariantAcrossMixedOperations(t *testing.T) {
	e := New(nil)
	first := e.Keys()[0]
	for i := 0; i < 5; i++ {
		e.Add()
	}
	_, err := e.InsertAfter(first)
	require.NoError(t, err)
	require.NoError(t, e.Remove(e.Keys()[3]))
	keys := e.Keys()
	require.NoError(t, e.Move(keys[len(keys)-1], keys[0]))
	_, err = e.PasteText(e.Keys()[2], "1\n2\n3")
	require.NoError(t, err)
	assertContiguous(t, e)
}

func TestAdd_SkipsTempIDsPostedBackFromForm(t *testing.T) {
	e := New([]models.StorySummarySection{
		{TempID: "temp-1", TextContent: strPtr("a")},
		{TempID: "temp-3", TextContent: strPtr("b")},
	})

	key := e.Add()
	assert.NotEqual(t, "temp-3", key)
	assert.Len(t, e.Keys(), 3)
	assert.ElementsMatch(t, []string{"temp-1", "temp-3", key}, e.Keys())
}
