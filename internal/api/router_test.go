package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hanulpark/portal/config"
	"github.com/hanulpark/portal/internal/api/handler"
	"github.com/hanulpark/portal/internal/model"
	"github.com/hanulpark/portal/internal/repository"
	"github.com/hanulpark/portal/internal/service"
	"github.com/hanulpark/portal/pkg/database"
)

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Seed(db))

	cfg := &config.Config{}
	cfg.Server.Mode = gin.TestMode
	cfg.Upload.Storage = service.StorageDB
	cfg.Upload.MaxSize = 10 << 20

	userRepo := repository.NewUserRepository(db)
	h := handler.New(
		service.NewAuthService(userRepo),
		service.NewUserService(userRepo),
		service.NewDeceasedService(repository.NewDeceasedRepository(db)),
		service.NewPhotoService(repository.NewPhotoRepository(db), nil, service.StorageDB),
		service.NewGuestbookService(repository.NewGuestbookRepository(db)),
	)
	return NewRouter(cfg, h, nil), db
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	r, _ := setupRouter(t)
	w := doJSON(r, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "Server is running", body["message"])
}

func TestLoginEndpoint(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/api/login", map[string]string{"username": "admin"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Username and password are required", decode(t, w)["message"])

	w = doJSON(r, http.MethodPost, "/api/login", map[string]string{"username": "admin", "password": "nope"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid username or password", decode(t, w)["message"])

	w = doJSON(r, http.MethodPost, "/api/login", map[string]string{"username": "admin", "password": "admin"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Login successful", body["message"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "admin", user["username"])
	assert.Nil(t, user["deceased_name"])
}

func TestRegisterDeceasedEndpoint(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/api/users/deceased", map[string]any{"userId": 1})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/users/deceased",
		map[string]any{"userId": 1, "deceasedName": "미등록"})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "등록되지 않은 고인입니다. 관리실에 문의해주세요.", decode(t, w)["message"])

	w = doJSON(r, http.MethodPost, "/api/users/deceased",
		map[string]any{"userId": 1, "deceasedName": "고인"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "고인", decode(t, w)["deceased_name"])

	// 重新登录应能看到绑定结果
	w = doJSON(r, http.MethodPost, "/api/login", map[string]string{"username": "admin", "password": "admin"})
	require.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)["user"].(map[string]any)
	assert.Equal(t, "고인", user["deceased_name"])
}

func TestDeceasedLookupEndpoint(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(r, http.MethodGet, "/api/deceased/고인", nil)
	require.Equal(t, http.StatusOK, w.Code)
	d := decode(t, w)["deceased"].(map[string]any)
	assert.Equal(t, "고인", d["name"])
	assert.Equal(t, "D-9", d["location"])

	w = doJSON(r, http.MethodGet, "/api/deceased/없음", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Deceased not found", decode(t, w)["message"])
}

func TestDeceasedImageEndpoint(t *testing.T) {
	r, db := setupRouter(t)

	d := &model.Deceased{Name: "고인2", Location: "A-1", MapImage: []byte("mapbytes"), MapImageType: "image/png"}
	require.NoError(t, db.Create(d).Error)

	w := doJSON(r, http.MethodGet, fmt.Sprintf("/api/deceased-images/%d", d.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "mapbytes", w.Body.String())

	w = doJSON(r, http.MethodGet, "/api/deceased-images/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGuestbookEndpoints(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(r, http.MethodGet, "/api/guestbook", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing deceasedName", decode(t, w)["message"])

	w = doJSON(r, http.MethodPost, "/api/guestbook",
		map[string]string{"deceasedName": "고인", "author": "방문자", "title": "추모"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "All fields are required", decode(t, w)["message"])

	w = doJSON(r, http.MethodPost, "/api/guestbook", map[string]string{
		"deceasedName": "고인", "author": "방문자", "title": "추모", "content": "편히 쉬세요",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Post created", body["message"])
	id := int64(body["id"].(float64))
	require.NotZero(t, id)

	w = doJSON(r, http.MethodGet, "/api/guestbook?deceasedName=고인", nil)
	require.Equal(t, http.StatusOK, w.Code)
	posts := decode(t, w)["posts"].([]any)
	require.Len(t, posts, 1)

	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/api/guestbook/%d", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Post deleted successfully", decode(t, w)["message"])

	// 幂等：再次删除同一 id 仍然成功
	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/api/guestbook/%d", id), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/guestbook?deceasedName=고인", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w)["posts"])
}

func TestGuestbookContentLimit(t *testing.T) {
	r, _ := setupRouter(t)
	w := doJSON(r, http.MethodPost, "/api/guestbook", map[string]string{
		"deceasedName": "고인", "author": "a", "title": "t", "content": strings.Repeat("가", 301),
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "내용은 300자를 초과할 수 없습니다.", decode(t, w)["message"])
}

func uploadPhoto(t *testing.T, r *gin.Engine, userID, slot, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		fw, err := mw.CreateFormFile("photo", filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	if userID != "" {
		require.NoError(t, mw.WriteField("userId", userID))
	}
	if slot != "" {
		require.NoError(t, mw.WriteField("slotNumber", slot))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/photos", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPhotoEndpoints(t *testing.T) {
	r, _ := setupRouter(t)

	w := uploadPhoto(t, r, "1", "", "a.png", []byte("x"))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Photo, User ID, and Slot Number are required", decode(t, w)["message"])

	w = uploadPhoto(t, r, "1", "1", "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = uploadPhoto(t, r, "1", "1", "flower.png", []byte("pngbytes"))
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Photo uploaded successfully", body["message"])
	id := int64(body["id"].(float64))

	w = doJSON(r, http.MethodGet, "/api/photos?userId=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	photos := decode(t, w)["photos"].([]any)
	require.Len(t, photos, 1)
	row := photos[0].(map[string]any)
	assert.Equal(t, fmt.Sprintf("/api/images/%d", id), row["url"])

	w = doJSON(r, http.MethodGet, fmt.Sprintf("/api/images/%d", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pngbytes", w.Body.String())

	w = doJSON(r, http.MethodGet, "/api/images/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 同槽再传：只剩最新一张
	w = uploadPhoto(t, r, "1", "1", "newer.png", []byte("newer"))
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, http.MethodGet, "/api/photos?userId=1", nil)
	photos = decode(t, w)["photos"].([]any)
	require.Len(t, photos, 1)

	w = doJSON(r, http.MethodGet, "/api/photos/slots?userId=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	slots := decode(t, w)["slots"].([]any)
	require.Len(t, slots, 3)
	first := slots[0].(map[string]any)
	assert.Equal(t, "photo", first["type"])
	second := slots[1].(map[string]any)
	assert.Equal(t, "logo", second["type"])
	assert.Nil(t, second["filename"])

	newID := int64(slots[0].(map[string]any)["id"].(float64))
	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/api/photos/%d", newID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Photo deleted successfully", decode(t, w)["message"])
}

func TestInvalidSlotRejected(t *testing.T) {
	r, _ := setupRouter(t)
	w := uploadPhoto(t, r, "1", "4", "a.png", []byte("x"))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, strings.Contains(decode(t, w)["message"].(string), "Slot number"))
}
