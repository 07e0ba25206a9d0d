package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storysite/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, tokens TokenSource) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(Config{BaseURL: srv.URL + "/"}, tokens, zap.NewNop())
	require.NoError(t, err)
	return c
}

func TestNew_InvalidBaseURL(t *testing.T) {
	_, err := New(Config{BaseURL: "not a url"}, nil, nil)
	assert.Error(t, err)
}

func TestSend_TokenFromContextWins(t *testing.T) {
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}, TokenSourceFunc(func() string { return "stored" }))

	_, err := c.Send(WithToken(context.Background(), "session"), Call{Path: "/api/admin/stories", Auth: true})
	require.NoError(t, err)
	assert.Equal(t, "Bearer session", got)

	_, err = c.Send(context.Background(), Call{Path: "/api/admin/stories", Auth: true})
	require.NoError(t, err)
	assert.Equal(t, "Bearer stored", got)
}

func TestSend_NoTokenOmitsHeader(t *testing.T) {
	var present bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header["Authorization"]
	}, nil)

	_, err := c.Send(context.Background(), Call{Path: "/api/admin/stories", Auth: true})
	require.NoError(t, err)
	assert.False(t, present)
}

func TestSend_PublicCallNeverSendsToken(t *testing.T) {
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
	}, TokenSourceFunc(func() string { return "stored" }))

	_, err := c.Fetch(context.Background(), "/api/categories")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSend_QueryAndJSONBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/admin/donations/d1", r.URL.Path)
		assert.Equal(t, "SUCCESS", r.URL.Query().Get("status"))
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "v", body["k"])
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"d1","status":"SUCCESS"}`))
	}, nil)

	resp, err := c.Send(context.Background(), Call{
		Method: http.MethodPut,
		Path:   "/api/admin/donations/d1",
		Query:  url.Values{"status": {"SUCCESS"}},
		Body:   map[string]string{"k": "v"},
	})
	require.NoError(t, err)
	require.True(t, resp.OK())

	d, err := DecodeJSON[models.Donation](resp)
	require.NoError(t, err)
	assert.Equal(t, models.DonationStatusSuccess, d.Status)
}

func TestSend_Multipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		f, hdr, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "cover.png", hdr.Filename)
		assert.Equal(t, "PNGDATA", string(data))
		_, _ = w.Write([]byte(`{"url":"https://cdn/cover.png"}`))
	}, nil)

	resp, err := c.Send(context.Background(), Call{
		Method: http.MethodPost,
		Path:   "/api/admin/uploads/cover",
		Files:  []File{{Param: "file", FileName: "cover.png", Reader: strings.NewReader("PNGDATA")}},
	})
	require.NoError(t, err)
	assert.True(t, resp.OK())
}

func TestSend_Non2xxIsNotTransportError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, nil)

	resp, err := c.Fetch(context.Background(), "/api/stories")
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	err = ExpectOK(resp, "Không thể tải danh sách truyện")
	assert.EqualError(t, err, "Không thể tải danh sách truyện")
}

func TestServerMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message field", `{"message":"Slug đã tồn tại"}`, "Slug đã tồn tại"},
		{"error field", `{"error":"bad"}`, "bad"},
		{"empty json", `{}`, "fallback"},
		{"plain text", "boom", "boom"},
		{"html page", "<html></html>", "fallback"},
		{"empty body", "", "fallback"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &Response{StatusCode: 400, Body: []byte(tt.body)}
			assert.Equal(t, tt.want, ServerMessage(resp, "fallback"))
		})
	}
}
