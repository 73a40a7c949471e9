package devapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/signage-console/internal/db"
	authapi "github.com/Nixie-Tech-LLC/signage-console/internal/http/api/auth/endpoints"
	"github.com/Nixie-Tech-LLC/signage-console/internal/model"
)

const testSecret = "supersecret"

type memStorage struct {
	mu    sync.Mutex
	saved map[string]string
}

func (m *memStorage) Save(_ context.Context, filename, contentType string, src io.Reader) (string, error) {
	raw, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saved == nil {
		m.saved = map[string]string{}
	}
	m.saved[filename] = contentType + ":" + string(raw)
	return "http://cdn.test/uploads/" + filename, nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []model.Device
}

func (r *recordingNotifier) DeviceStatus(_ context.Context, d model.Device) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, d)
	return nil
}

func (r *recordingNotifier) Close() {}

type harness struct {
	router   *gin.Engine
	store    db.Store
	storage  *memStorage
	notifier *recordingNotifier
	token    string
}

func setup(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := &harness{store: db.NewMemoryStore(), storage: &memStorage{}, notifier: &recordingNotifier{}}
	_, err := authapi.CreateAccount(context.Background(), h.store, model.User{
		Username: "admin",
		Email:    "admin@example.com",
		FullName: "Admin",
		Role:     "admin",
		IsActive: true,
	}, "admin1234")
	require.NoError(t, err)

	h.router = NewRouter(Deps{
		Store:       h.store,
		Storage:     h.storage,
		Notifier:    h.notifier,
		JWTSecret:   testSecret,
		TokenExpiry: time.Hour,
	})

	w := h.do(http.MethodPost, "/api/auth/login/", map[string]string{"username": "admin", "password": "admin1234"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var tok struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tok))
	h.token = tok.AccessToken
	return h
}

func (h *harness) do(method, path string, body any) *httptest.ResponseRecorder {
	var rdr io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func detail(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var out struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out.Detail
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (h *harness) agency(t *testing.T, name string) model.Agency {
	t.Helper()
	w := h.do(http.MethodPost, "/api/agencies", map[string]any{"name": name, "orientation": "vertical"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[model.Agency](t, w)
}

func (h *harness) content(t *testing.T, title string) model.Content {
	t.Helper()
	w := h.do(http.MethodPost, "/api/contents", map[string]any{
		"title": title, "type": "link", "url": "https://example.com", "duration": 30,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[model.Content](t, w)
}

func TestLoginAndCurrentUser(t *testing.T) {
	h := setup(t)

	w := h.do(http.MethodGet, "/api/auth/me/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[map[string]any](t, w)
	assert.Equal(t, "admin", me["username"])
	assert.NotContains(t, me, "hashed_password")

	h.token = ""
	w = h.do(http.MethodPost, "/api/auth/login/", map[string]string{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Incorrect username or password", detail(t, w))

	w = h.do(http.MethodGet, "/api/auth/me/", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
}

func TestRegister(t *testing.T) {
	h := setup(t)
	h.token = ""

	body := map[string]string{"username": "maria", "email": "maria@example.com", "full_name": "Maria", "password": "longenough"}
	w := h.do(http.MethodPost, "/api/auth/register/", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = h.do(http.MethodPost, "/api/auth/register/", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Username or email already registered", detail(t, w))

	body["username"], body["email"], body["password"] = "joao", "joao@example.com", "short"
	w = h.do(http.MethodPost, "/api/auth/register/", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "password must be at least 8", detail(t, w))
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	h := setup(t)
	h.token = "garbage"
	w := h.do(http.MethodGet, "/api/agencies", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Could not validate credentials", detail(t, w))
}

func TestAgencyCRUD(t *testing.T) {
	h := setup(t)

	a := h.agency(t, "Centro")
	assert.Equal(t, model.OrientationVertical, a.Orientation)
	assert.Equal(t, "18:00", a.HibernationStart)
	assert.Equal(t, "08:00", a.HibernationEnd)

	w := h.do(http.MethodPut, "/api/agencies/"+strconv.Itoa(a.ID), map[string]any{"name": "Centro Novo", "hibernation_start": "25:00"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(http.MethodPut, "/api/agencies/"+strconv.Itoa(a.ID), map[string]any{"name": "Centro Novo"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Centro Novo", decode[model.Agency](t, w).Name)

	w = h.do(http.MethodGet, "/api/agencies", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.Agency](t, w), 1)

	w = h.do(http.MethodDelete, "/api/agencies/"+strconv.Itoa(a.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = h.do(http.MethodGet, "/api/agencies/"+strconv.Itoa(a.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Agency not found", detail(t, w))

	w = h.do(http.MethodGet, "/api/agencies/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContentValidation(t *testing.T) {
	h := setup(t)

	w := h.do(http.MethodPost, "/api/contents", map[string]any{"title": "x", "type": "link", "url": "u", "duration": 4})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "duration must be at least 5", detail(t, w))

	w = h.do(http.MethodPost, "/api/contents", map[string]any{"title": "x", "type": "audio", "url": "u", "duration": 30})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "type must be one of: link image video", detail(t, w))

	c := h.content(t, "Promo")
	w = h.do(http.MethodDelete, "/api/contents/"+strconv.Itoa(c.ID+1), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Content not found", detail(t, w))
}

func TestScheduleReferencesAndDeleteGuards(t *testing.T) {
	h := setup(t)
	a := h.agency(t, "Centro")
	c := h.content(t, "Promo")

	schedule := map[string]any{
		"content_id": c.ID, "agency_id": a.ID, "start_time": "08:00", "end_time": "18:00",
		"days_of_week": "1,3,5", "priority": 1, "is_active": true,
	}

	bad := map[string]any{}
	for k, v := range schedule {
		bad[k] = v
	}
	bad["days_of_week"] = "1,9"
	w := h.do(http.MethodPost, "/api/schedules", bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	bad["days_of_week"], bad["priority"] = "1", 11
	w = h.do(http.MethodPost, "/api/schedules", bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "priority must be at most 10", detail(t, w))

	bad["priority"], bad["content_id"] = 1, c.ID+100
	w = h.do(http.MethodPost, "/api/schedules", bad)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Content not found", detail(t, w))

	w = h.do(http.MethodPost, "/api/schedules", schedule)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	sc := decode[model.Schedule](t, w)
	assert.Equal(t, "1,3,5", sc.DaysOfWeek)

	w = h.do(http.MethodDelete, "/api/contents/"+strconv.Itoa(c.ID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Cannot delete content with associated schedules", detail(t, w))

	w = h.do(http.MethodDelete, "/api/agencies/"+strconv.Itoa(a.ID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Cannot delete agency with associated devices or schedules", detail(t, w))

	w = h.do(http.MethodDelete, "/api/schedules/"+strconv.Itoa(sc.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = h.do(http.MethodDelete, "/api/contents/"+strconv.Itoa(c.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDevicesAndStatus(t *testing.T) {
	h := setup(t)
	a := h.agency(t, "Centro")

	device := map[string]any{"name": "TV 1", "agency_id": a.ID + 1, "ip_address": "10.0.0.5"}
	w := h.do(http.MethodPost, "/api/devices", device)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Agency not found", detail(t, w))

	device["agency_id"] = a.ID
	w = h.do(http.MethodPost, "/api/devices", device)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	d := decode[model.Device](t, w)
	assert.Equal(t, model.DeviceOffline, d.Status)
	assert.Equal(t, "1.0.0", d.Version)
	assert.Nil(t, d.MACAddress)
	assert.Nil(t, d.LastSeen)

	w = h.do(http.MethodPost, "/api/devices", map[string]any{"name": "TV 2", "agency_id": a.ID, "ip_address": "10.0.0.5"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Device with this IP address already exists", detail(t, w))

	w = h.do(http.MethodPut, "/api/devices/"+strconv.Itoa(d.ID)+"/status", map[string]string{"status": "broken"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(http.MethodPut, "/api/devices/"+strconv.Itoa(d.ID)+"/status", map[string]string{"status": "online"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[model.Device](t, w)
	assert.Equal(t, model.DeviceOnline, updated.Status)
	assert.NotNil(t, updated.LastSeen)
	assert.Equal(t, "TV 1", updated.Name)

	require.Len(t, h.notifier.sent, 1)
	assert.Equal(t, d.ID, h.notifier.sent[0].ID)

	w = h.do(http.MethodPut, "/api/devices/999/status", map[string]string{"status": "online"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Device not found", detail(t, w))
}

func upload(h *harness, filename, contentType string, body []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	if contentType != "" {
		hdr.Set("Content-Type", contentType)
	}
	part, _ := mw.CreatePart(hdr)
	_, _ = part.Write(body)
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/contents/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+h.token)
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func TestUpload(t *testing.T) {
	h := setup(t)
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)

	w := upload(h, "promo.png", "image/png", png)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "http://cdn.test/uploads/promo.png", decode[map[string]string](t, w)["url"])
	assert.Equal(t, "image/png:"+string(png), h.storage.saved["promo.png"])

	w = upload(h, "sniffed.bin", "application/octet-stream", png)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "image/png", decode[map[string]string](t, w)["content_type"])

	w = upload(h, "notes.txt", "text/plain", []byte("hello"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "File must be an image or a video", detail(t, w))

	contents, err := h.store.ListContents(context.Background())
	require.NoError(t, err)
	assert.Empty(t, contents)
}

func TestHealthz(t *testing.T) {
	h := setup(t)
	w := h.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
