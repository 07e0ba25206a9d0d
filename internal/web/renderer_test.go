package web

import (
	"bytes"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storysite/internal/models"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"layout.html":   {Data: []byte(`{{define "layout"}}<title>{{.FullTitle}}</title>{{template "content" .}}{{end}}`)},
		"partials.html": {Data: []byte(`{{define "hello"}}hi {{.}}{{end}}`)},
		"a.html":        {Data: []byte(`{{define "content"}}A:{{template "hello" .Title}}{{end}}`)},
		"b.html":        {Data: []byte(`{{define "content"}}B:{{number .Data}}{{end}}`)},
	}
}

func TestRenderer_PagesDoNotShareContent(t *testing.T) {
	r, err := NewRenderer(testFS(), false, zap.NewNop())
	require.NoError(t, err)

	var a, b bytes.Buffer
	require.NoError(t, r.Render(&a, "a.html", Page{Title: "x"}))
	require.NoError(t, r.Render(&b, "b.html", Page{Data: 1234}))

	assert.Equal(t, "<title>x | StoryHub</title>A:hi x", a.String())
	assert.Contains(t, b.String(), "B:1")
	assert.NotContains(t, b.String(), "A:")
}

func TestRenderer_UnknownPage(t *testing.T) {
	r, err := NewRenderer(testFS(), false, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, r.Has("missing.html"))
	assert.Error(t, r.Render(&bytes.Buffer{}, "missing.html", Page{}))
}

func TestRenderer_DebugReloads(t *testing.T) {
	fsys := testFS()
	r, err := NewRenderer(fsys, true, zap.NewNop())
	require.NoError(t, err)

	fsys["a.html"] = &fstest.MapFile{Data: []byte(`{{define "content"}}changed{{end}}`)}
	var out bytes.Buffer
	require.NoError(t, r.Render(&out, "a.html", Page{}))
	assert.Contains(t, out.String(), "changed")
}

func TestRenderer_BrokenTemplateFails(t *testing.T) {
	fsys := testFS()
	fsys["c.html"] = &fstest.MapFile{Data: []byte(`{{define "content"}}{{.Nope`)}
	_, err := NewRenderer(fsys, false, zap.NewNop())
	assert.Error(t, err)
}

func TestRenderer_InstanceForGin(t *testing.T) {
	r, err := NewRenderer(testFS(), false, zap.NewNop())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, r.Instance("a.html", Page{Title: "t"}).Render(w))
	assert.Contains(t, w.Body.String(), "A:hi t")

	assert.Error(t, r.Instance("missing.html", nil).Render(httptest.NewRecorder()))
}

func TestEmbeddedTemplatesParse(t *testing.T) {
	r, err := NewRenderer(Templates(), false, zap.NewNop())
	require.NoError(t, err)

	for _, name := range []string{
		"home.html", "stories.html", "story.html", "read.html", "categories.html", "donate.html", "error.html",
		"admin_login.html", "admin_dashboard.html", "admin_stories.html", "admin_story_form.html",
		"admin_categories.html", "admin_donations.html", "admin_settings.html",
	} {
		assert.True(t, r.Has(name), name)
	}

	var out bytes.Buffer
	logo := "https://cdn/logo.png"
	require.NoError(t, r.Render(&out, "error.html", Page{
		Title:          "Không tìm thấy truyện",
		Settings:       models.SiteSettings{SiteName: "Truyện Hay", LogoURL: &logo},
		CopyProtection: true,
		Theme:          "dark",
		FontSize:       20,
	}))
	html := out.String()
	assert.Contains(t, html, "Không tìm thấy truyện | Truyện Hay")
	assert.Contains(t, html, `data-theme="dark"`)
	assert.Contains(t, html, "--reader-font-size: 20px")
	assert.Contains(t, html, "copy-protection.js")
}

func TestStaticAssetsEmbedded(t *testing.T) {
	for _, name := range []string{"site.css", "preferences.js", "copy-protection.js", "reader.js"} {
		_, err := Static().Open(name)
		assert.NoError(t, err, name)
	}
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "1.234.567", FormatNumber(int64(1234567)))
	assert.Equal(t, "50.000 VND", FormatMoney(50000, ""))
	assert.Equal(t, "10 USD", FormatMoney(10, "USD"))
	assert.Equal(t, "", FormatTime(nil))

	ts := time.Date(2024, 3, 5, 14, 7, 0, 0, time.Local)
	assert.Equal(t, "05/03/2024 14:07", FormatTime(&ts))
}
