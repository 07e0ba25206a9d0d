package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"storysite/internal/models"
	"storysite/internal/session"
)

// doMultipart отправляет файл в поле "file" с cookie из jar.
func (s *HandlerSuite) doMultipart(target, fileName string, content []byte, headers ...string) *httptest.ResponseRecorder {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", fileName)
	s.Require().NoError(err)
	_, err = part.Write(content)
	s.Require().NoError(err)
	s.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	for _, c := range s.jar {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 || c.Value == "" {
			delete(s.jar, c.Name)
			continue
		}
		s.jar[c.Name] = c
	}
	return rec
}

func (s *HandlerSuite) TestUpdateDonationStatus() {
	s.login()

	rec := s.do(http.MethodPost, "/admin/donations/d1/status", url.Values{"status": {"SUCCESS"}})
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/admin/donations", rec.Header().Get("Location"))

	s.mu.Lock()
	s.Equal(models.DonationStatusSuccess, s.statusUpdates["d1"])
	s.mu.Unlock()

	rec = s.do(http.MethodGet, "/admin/donations", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), msgDonationUpdated)
}

func (s *HandlerSuite) TestUpdateDonationStatus_InvalidStatus() {
	s.login()

	rec := s.do(http.MethodPost, "/admin/donations/d1/status", url.Values{"status": {"PAID"}})
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/admin/donations", rec.Header().Get("Location"))

	s.mu.Lock()
	s.Empty(s.statusUpdates, "invalid status must not reach the API")
	s.mu.Unlock()

	rec = s.do(http.MethodGet, "/admin/donations", nil)
	s.Contains(rec.Body.String(), msgInvalidStatus)
}

func (s *HandlerSuite) TestUpdateDonationStatus_BackendFailure() {
	s.login()

	rec := s.do(http.MethodPost, "/admin/donations/d-fail/status", url.Values{"status": {"FAILED"}})
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/admin/donations", rec.Header().Get("Location"))

	rec = s.do(http.MethodGet, "/admin/donations", nil)
	s.Contains(rec.Body.String(), "Cập nhật donate thất bại")
	s.Contains(rec.Body.String(), "flash-error")
}

func (s *HandlerSuite) TestSettingsPage() {
	s.login()

	rec := s.do(http.MethodGet, "/admin/settings", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `value="Truyện Hay"`)
	s.Contains(rec.Body.String(), testLoginPage)
}

func (s *HandlerSuite) TestUpdateSettings() {
	s.login()

	rec := s.do(http.MethodPost, "/admin/settings", url.Values{
		"siteName":              {"  Truyện Mới  "},
		"logoUrl":               {"https://cdn.example/logo.png"},
		"adminHiddenLoginPath":  {testLoginPage},
		"copyProtectionEnabled": {"true"},
	})
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/admin/settings", rec.Header().Get("Location"))

	s.mu.Lock()
	saved := s.settings
	s.mu.Unlock()
	s.Equal("Truyện Mới", saved.SiteName)
	s.Require().NotNil(saved.LogoURL)
	s.Equal("https://cdn.example/logo.png", *saved.LogoURL)
	s.True(saved.CopyProtectionEnabled)
	s.False(saved.ScrapingProtectionEnabled)

	rec = s.do(http.MethodGet, "/admin/settings", nil)
	s.Contains(rec.Body.String(), msgSettingsSaved)
	s.Contains(rec.Body.String(), `value="Truyện Mới"`)
}

func (s *HandlerSuite) TestUpdateSettings_RequiresSiteName() {
	s.login()

	rec := s.do(http.MethodPost, "/admin/settings", url.Values{"siteName": {"   "}, "copyProtectionEnabled": {"true"}})
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), msgSiteNameMissing)

	s.mu.Lock()
	s.Equal("Truyện Hay", s.settings.SiteName, "settings must not be saved")
	s.mu.Unlock()
}

func (s *HandlerSuite) TestUpload_UnknownKind() {
	s.login()

	rec := s.doMultipart("/admin/uploads/avatar", "a.png", []byte("png"))
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/admin/dashboard", rec.Header().Get("Location"))

	s.mu.Lock()
	s.Empty(s.uploads)
	s.mu.Unlock()
}

func (s *HandlerSuite) TestUpload_JSON() {
	s.login()

	rec := s.doMultipart("/admin/uploads/image", "anh.png", []byte("png"), "Accept", "application/json")
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"url":"https://cdn.example/image/anh.png"}`, rec.Body.String())

	s.mu.Lock()
	s.Equal([]string{"image/anh.png"}, s.uploads)
	s.mu.Unlock()
}

func (s *HandlerSuite) TestUpload_FormRedirectsToReferer() {
	s.login()

	rec := s.doMultipart("/admin/uploads/cover", "bia.png", []byte("png"),
		"Referer", "https://evil.example/admin/stories?page=2")
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/admin/stories?page=2", rec.Header().Get("Location"), "only the referer path is kept")

	rec = s.do(http.MethodGet, "/admin/stories", nil)
	s.Contains(rec.Body.String(), msgUploaded+"https://cdn.example/cover/bia.png")
}

func (s *HandlerSuite) TestUpload_MissingFile() {
	s.login()

	rec := s.do(http.MethodPost, "/admin/uploads/cover", url.Values{}, "Accept", "application/json")
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), `"error"`)
}

func (s *HandlerSuite) TestCategories_EditPagePrefillsForm() {
	s.login()

	rec := s.do(http.MethodGet, "/admin/categories?edit=c2", nil)
	s.Equal(http.StatusOK, rec.Code)
	body := rec.Body.String()
	s.Contains(body, `action="/admin/categories/c2"`)
	s.Contains(body, `value="do-thi"`)
}

func (s *HandlerSuite) TestCreateCategory() {
	s.login()

	rec := s.do(http.MethodPost, "/admin/categories", url.Values{
		"name":     {"Huyền huyễn"},
		"slug":     {"huyen-huyen"},
		"parentId": {"c1"},
	})
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/admin/categories", rec.Header().Get("Location"))

	s.mu.Lock()
	reqs := s.categoryReqs
	s.mu.Unlock()
	s.Require().Len(reqs, 1)
	req := reqs[0]
	s.Equal("huyen-huyen", req.Slug)
	s.Require().NotNil(req.ParentID)
	s.Equal("c1", *req.ParentID)
	s.Nil(req.Description)

	rec = s.do(http.MethodGet, "/admin/categories", nil)
	s.Contains(rec.Body.String(), msgCategorySaved)
}

func (s *HandlerSuite) TestUpdateCategory_SelfParentCleared() {
	s.login()

	rec := s.do(http.MethodPost, "/admin/categories/c1", url.Values{
		"name":     {"Tiên hiệp"},
		"slug":     {"tien-hiep"},
		"parentId": {"c1"},
	})
	s.Equal(http.StatusSeeOther, rec.Code)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Require().Len(s.categoryReqs, 1)
	s.Nil(s.categoryReqs[0].ParentID)
}

func (s *HandlerSuite) TestSaveCategory_RequiresNameAndSlug() {
	s.login()

	rec := s.do(http.MethodPost, "/admin/categories", url.Values{"name": {"Ngôn tình"}, "slug": {""}})
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), msgNameSlugMissing)
	s.Contains(rec.Body.String(), `value="Ngôn tình"`, "form keeps the entered values")

	s.mu.Lock()
	s.Empty(s.categoryReqs)
	s.mu.Unlock()
}

func (s *HandlerSuite) TestDeleteCategory() {
	s.login()

	rec := s.do(http.MethodPost, "/admin/categories/c2/delete", url.Values{})
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/admin/categories", rec.Header().Get("Location"))

	s.mu.Lock()
	s.Equal([]string{"c2"}, s.deleted)
	s.mu.Unlock()

	rec = s.do(http.MethodGet, "/admin/categories", nil)
	s.Contains(rec.Body.String(), msgCategoryDeleted)
}

func (s *HandlerSuite) TestDeleteCategory_BackendFailure() {
	s.login()

	rec := s.do(http.MethodPost, "/admin/categories/c-used/delete", url.Values{})
	s.Equal(http.StatusSeeOther, rec.Code)

	rec = s.do(http.MethodGet, "/admin/categories", nil)
	s.Contains(rec.Body.String(), "Xóa thể loại thất bại")
	s.NotContains(rec.Body.String(), msgCategoryDeleted)
}

func (s *HandlerSuite) TestPreferencesSocket_BroadcastsToAllTabs() {
	s.do(http.MethodGet, "/", nil)
	cookie := s.jar[session.CookieName]
	s.Require().NotNil(cookie)

	srv := httptest.NewServer(s.router)
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/preferences"
	header := http.Header{"Cookie": {cookie.Name + "=" + cookie.Value}}

	var tabs []*websocket.Conn
	for i := 0; i < 2; i++ {
		conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
		s.Require().NoError(err)
		s.Require().Equal(http.StatusSwitchingProtocols, resp.StatusCode)
		defer conn.Close()
		tabs = append(tabs, conn)
	}

	rec := s.do(http.MethodPost, "/preferences/theme", url.Values{"theme": {"dark"}}, "Accept", "application/json")
	s.Require().Equal(http.StatusOK, rec.Code)

	for _, conn := range tabs {
		s.Require().NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
		var ev preferenceEvent
		s.Require().NoError(conn.ReadJSON(&ev))
		s.Equal("dark", string(ev.Theme))
		s.Zero(ev.FontSize)
	}
}

func (s *HandlerSuite) TestPreferencesSocket_OtherSessionNotNotified() {
	s.do(http.MethodGet, "/", nil)
	cookie := s.jar[session.CookieName]
	s.Require().NotNil(cookie)

	srv := httptest.NewServer(s.router)
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/preferences"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, http.Header{"Cookie": {cookie.Name + "=" + cookie.Value}})
	s.Require().NoError(err)
	defer conn.Close()

	// Запрос без cookie получает свою сессию и свою тему.
	other := httptest.NewRequest(http.MethodPost, "/preferences/theme", strings.NewReader(url.Values{"theme": {"dark"}}.Encode()))
	other.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	s.router.ServeHTTP(httptest.NewRecorder(), other)

	s.do(http.MethodPost, "/preferences/font-size", url.Values{"action": {"increase"}}, "Accept", "application/json")

	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
	var ev preferenceEvent
	s.Require().NoError(conn.ReadJSON(&ev))
	s.NotZero(ev.FontSize)
	s.Empty(ev.Theme)
}
