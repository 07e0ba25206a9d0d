package store

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storysite/internal/models"
	"storysite/internal/storage"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin",
		"exp": exp.Unix(),
	})
	s, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestObservable_OrderAndUnsubscribe(t *testing.T) {
	var o observable[int]
	var calls []string

	a := o.Subscribe(func(v int) { calls = append(calls, "a") })
	o.Subscribe(func(v int) { calls = append(calls, "b") })
	o.Subscribe(func(v int) { calls = append(calls, "c") })

	o.notify(1)
	assert.Equal(t, []string{"a", "b", "c"}, calls)

	o.Unsubscribe(a)
	o.Unsubscribe(Subscription(999))
	calls = nil
	o.notify(2)
	assert.Equal(t, []string{"b", "c"}, calls)
}

func TestObservable_ListenerMaySubscribe(t *testing.T) {
	var o observable[int]
	o.Subscribe(func(v int) {
		o.Subscribe(func(int) {})
	})
	assert.NotPanics(t, func() { o.notify(1) })
}

func TestAuthStore_SetUserPersistsAndNotifies(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory()
	auth, err := OpenAuthStore(ctx, st, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, auth.User())

	var seen []*models.AuthUser
	auth.Subscribe(func(u *models.AuthUser) { seen = append(seen, u) })

	user := &models.AuthUser{Username: "admin", Role: models.RoleAdmin, Token: "tok"}
	require.NoError(t, auth.SetUser(ctx, user))
	assert.Equal(t, "tok", auth.Token())

	raw, ok, err := st.GetItem(ctx, AuthKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"username":"admin","role":"ADMIN","token":"tok"}`, raw)

	reopened, err := OpenAuthStore(ctx, st, nil)
	require.NoError(t, err)
	assert.Equal(t, user, reopened.User())

	require.NoError(t, auth.Clear(ctx))
	_, ok, _ = st.GetItem(ctx, AuthKey)
	assert.False(t, ok)
	assert.Empty(t, auth.Token())

	require.Len(t, seen, 2)
	assert.Equal(t, "admin", seen[0].Username)
	assert.Nil(t, seen[1])
}

func TestAuthStore_CorruptEntryIsDropped(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory()
	require.NoError(t, st.SetItem(ctx, AuthKey, "{broken"))

	auth, err := OpenAuthStore(ctx, st, nil)
	require.NoError(t, err)
	assert.Nil(t, auth.User())
	_, ok, _ := st.GetItem(ctx, AuthKey)
	assert.False(t, ok)
}

func TestAuthStore_Expired(t *testing.T) {
	ctx := context.Background()
	auth, err := OpenAuthStore(ctx, storage.NewMemory(), nil)
	require.NoError(t, err)
	now := time.Now()

	assert.False(t, auth.Expired(now))

	require.NoError(t, auth.SetUser(ctx, &models.AuthUser{Username: "a", Token: signedToken(t, now.Add(time.Hour))}))
	assert.False(t, auth.Expired(now))
	assert.True(t, auth.Expired(now.Add(2*time.Hour)))

	require.NoError(t, auth.SetUser(ctx, &models.AuthUser{Username: "a", Token: "opaque"}))
	assert.False(t, auth.Expired(now))
}

func TestThemeStore(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory()
	theme, err := OpenThemeStore(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, theme.Theme())

	var seen []Theme
	theme.Subscribe(func(v Theme) { seen = append(seen, v) })

	next, err := theme.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, next)
	raw, ok, _ := st.GetItem(ctx, ThemeKey)
	assert.True(t, ok)
	assert.Equal(t, "dark", raw)

	reopened, err := OpenThemeStore(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, reopened.Theme())

	next, err = theme.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, next)
	_, ok, _ = st.GetItem(ctx, ThemeKey)
	assert.False(t, ok)

	assert.Error(t, theme.SetTheme(ctx, Theme("sepia")))
	assert.Equal(t, []Theme{ThemeDark, ThemeLight}, seen)
}

func TestThemeStore_UnknownStoredValueFallsBackToLight(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory()
	require.NoError(t, st.SetItem(ctx, ThemeKey, "neon"))

	theme, err := OpenThemeStore(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, theme.Theme())
}

func TestFontSizeStore_ClampAndSteps(t *testing.T) {
	ctx := context.Background()
	fs, err := OpenFontSizeStore(ctx, storage.NewMemory())
	require.NoError(t, err)
	assert.Equal(t, DefaultFontSize, fs.Size())

	size, err := fs.SetSize(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, MaxFontSize, size)

	size, err = fs.Increase(ctx)
	require.NoError(t, err)
	assert.Equal(t, MaxFontSize, size)

	size, err = fs.SetSize(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, MinFontSize, size)

	size, err = fs.Decrease(ctx)
	require.NoError(t, err)
	assert.Equal(t, MinFontSize, size)

	size, err = fs.Increase(ctx)
	require.NoError(t, err)
	assert.Equal(t, MinFontSize+FontSizeStep, size)

	require.NoError(t, fs.Reset(ctx))
	assert.Equal(t, DefaultFontSize, fs.Size())
}

func TestFontSizeStore_ExpiredValueIsDefault(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	fs, err := OpenFontSizeStore(ctx, st, WithFontClock(clock), WithFontTTL(time.Hour))
	require.NoError(t, err)
	_, err = fs.SetSize(ctx, 22)
	require.NoError(t, err)

	fresh, err := OpenFontSizeStore(ctx, st, WithFontClock(func() time.Time { return now.Add(59 * time.Minute) }))
	require.NoError(t, err)
	assert.Equal(t, 22, fresh.Size())

	expired, err := OpenFontSizeStore(ctx, st, WithFontClock(func() time.Time { return now.Add(time.Hour) }))
	require.NoError(t, err)
	assert.Equal(t, DefaultFontSize, expired.Size())
	_, ok, _ := st.GetItem(ctx, FontSizeKey)
	assert.False(t, ok)
}

func TestOpenBundle(t *testing.T) {
	b, err := OpenBundle(context.Background(), storage.NewMemory(), zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, b.Auth)
	assert.Equal(t, ThemeLight, b.Theme.Theme())
	assert.Equal(t, DefaultFontSize, b.FontSize.Size())
}
