package backend

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/signage-console/internal/model"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api", WithHTTPClient(srv.Client()))
}

func TestLoginReturnsAccessToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login/", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "admin", body["username"])
		assert.Equal(t, "secret", body["password"])

		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-1", "token_type": "bearer"})
	})

	token, err := c.Login(t.Context(), "admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
}

func TestLoginWithoutTokenFails(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := c.Login(t.Context(), "admin", "secret")
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestCredentialsArePerCall(t *testing.T) {
	var seen []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := c.Agencies().List(t.Context(), Bearer("a"))
	require.NoError(t, err)
	_, err = c.Agencies().List(t.Context(), Bearer("b"))
	require.NoError(t, err)
	_, err = c.Agencies().List(t.Context(), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Bearer a", "Bearer b", ""}, seen)
}

func TestResourceRoutes(t *testing.T) {
	type call struct{ method, path string }
	var calls []call
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{r.Method, r.URL.Path})
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`[{"id":2,"title":"b"},{"id":1,"title":"a"}]`))
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	creds := Bearer("t")

	items, err := c.Contents().List(t.Context(), creds)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[0].ID, "server order is preserved")

	require.NoError(t, c.Contents().Create(t.Context(), creds, model.Content{Title: "x", Duration: 10}))
	require.NoError(t, c.Contents().Update(t.Context(), creds, 7, model.Content{ID: 7, Title: "y", Duration: 10}))
	require.NoError(t, c.Contents().Delete(t.Context(), creds, 7))
	require.NoError(t, c.SetDeviceStatus(t.Context(), creds, 3, model.DeviceMaintenance))

	assert.Equal(t, []call{
		{http.MethodGet, "/api/contents"},
		{http.MethodPost, "/api/contents"},
		{http.MethodPut, "/api/contents/7"},
		{http.MethodDelete, "/api/contents/7"},
		{http.MethodPut, "/api/devices/3/status"},
	}, calls)
}

func TestNullListIsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	})

	items, err := c.Devices().List(t.Context(), nil)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestErrorDetailExtraction(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"detail string", http.StatusBadRequest, `{"detail":"Agency not found"}`, "Agency not found"},
		{"error field", http.StatusConflict, `{"error":"already exists"}`, "already exists"},
		{"validation list", http.StatusUnprocessableEntity, `{"detail":[{"msg":"bad"}]}`, "fallback"},
		{"server error without body", http.StatusInternalServerError, ``, "fallback"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			err := c.Agencies().Delete(t.Context(), nil, 1)
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tc.status, apiErr.Status)
			assert.Equal(t, tc.want, Detail(err, "fallback"))
		})
	}
}

func TestDetailOnTransportError(t *testing.T) {
	c := New("http://127.0.0.1:1/api")
	_, err := c.Agencies().List(t.Context(), nil)
	require.Error(t, err)
	assert.Equal(t, "Erro ao carregar agências", Detail(err, "Erro ao carregar agências"))
}

func TestUploadContentSendsDeclaredType(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/contents/upload", r.URL.Path)
		assert.Equal(t, "Bearer t", r.Header.Get("Authorization"))

		file, header, err := r.FormFile(UploadField)
		require.NoError(t, err)
		defer file.Close()
		data, _ := io.ReadAll(file)

		assert.Equal(t, "clip.mp4", header.Filename)
		assert.Equal(t, "video/mp4", header.Header.Get("Content-Type"))
		assert.Equal(t, "frames", string(data))

		_, _ = w.Write([]byte(`{"url":"/uploads/clip.mp4"}`))
	})

	url, err := c.UploadContent(t.Context(), Bearer("t"), "clip.mp4", "video/mp4", strings.NewReader("frames"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/clip.mp4", url)
}

func TestUploadContentRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		_, _ = w.Write([]byte(`{"detail":"file too large"}`))
	})

	_, err := c.UploadContent(t.Context(), nil, "big.png", "image/png", strings.NewReader("x"))
	assert.Equal(t, "file too large", Detail(err, "fallback"))
}

func TestMeUsesCredentials(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Could not validate credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":1,"username":"admin","full_name":"Admin"}`))
	})

	u, err := c.Me(t.Context(), Bearer("good"))
	require.NoError(t, err)
	assert.Equal(t, "Admin", u.DisplayName())

	_, err = c.Me(t.Context(), Bearer("bad"))
	assert.True(t, IsUnauthorized(err))
}
