package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"
	"time"

	"github.com/MarinusJvRe/TrophyVault/internal/config"
	"github.com/MarinusJvRe/TrophyVault/internal/database"
	"github.com/MarinusJvRe/TrophyVault/internal/middleware"
	"github.com/MarinusJvRe/TrophyVault/internal/models"
	"github.com/MarinusJvRe/TrophyVault/internal/services"
	"github.com/MarinusJvRe/TrophyVault/internal/storage"
	"github.com/MarinusJvRe/TrophyVault/pkg/logger"
	"github.com/MarinusJvRe/TrophyVault/pkg/utils"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const testFrontendURL = "http://localhost:5173"

const testMaxImageBytes = 4 * 1024

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type testEnv struct {
	app      *fiber.App
	db       *gorm.DB
	store    *memoryStore
	identity *fakeIdentity
}

var testSetupOnce sync.Once

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	testSetupOnce.Do(func() {
		logger.Init()
		utils.ConfigureJWT("test-secret", 24)
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed opening in-memory sqlite database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed getting sql.DB from gorm: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed automigrating models: %v", err)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{FrontendURL: testFrontendURL},
		Upload: config.UploadConfig{MaxImageBytes: testMaxImageBytes},
	}
	store := newMemoryStore()
	identity := &fakeIdentity{}

	app := fiber.New(fiber.Config{BodyLimit: 2 * testMaxImageBytes})
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.CORS(cfg.Server.FrontendURL))
	app.Use(middleware.RequestLogger())
	app.Use(middleware.SecurityLogger())

	RegisterRoutes(app, Deps{DB: db, Store: store, Identity: identity, Config: cfg})

	return &testEnv{app: app, db: db, store: store, identity: identity}
}

type memoryObject struct {
	data        []byte
	contentType string
}

// memoryStore is an in-process storage.ObjectStore.
type memoryStore struct {
	mu      sync.Mutex
	objects map[string]memoryObject
	uploads int
	failPut bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: make(map[string]memoryObject)}
}

func (s *memoryStore) Upload(_ context.Context, objectName string, reader io.Reader, _ int64, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failPut {
		return errors.New("bucket unavailable")
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.objects[objectName] = memoryObject{data: data, contentType: contentType}
	s.uploads++
	return nil
}

func (s *memoryStore) Download(_ context.Context, objectName string) (io.ReadCloser, storage.ObjectInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.objects[objectName]
	if !ok {
		return nil, storage.ObjectInfo{}, storage.ErrObjectNotFound
	}
	info := storage.ObjectInfo{Size: int64(len(obj.data)), ContentType: obj.contentType}
	return io.NopCloser(bytes.NewReader(obj.data)), info, nil
}

func (s *memoryStore) Delete(_ context.Context, objectName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, objectName)
	return nil
}

func (s *memoryStore) EnsureBucket(context.Context) error { return nil }

func (s *memoryStore) count() (objects, uploads int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects), s.uploads
}

// fakeIdentity accepts the code "good-code" and rejects everything else.
type fakeIdentity struct {
	identity services.Identity
}

func (f *fakeIdentity) AuthCodeURL(state string) string {
	return "https://id.example.com/authorize?state=" + state
}

func (f *fakeIdentity) Exchange(_ context.Context, code string) (*services.Identity, error) {
	if code != "good-code" {
		return nil, errors.New("invalid grant")
	}
	identity := f.identity
	return &identity, nil
}

func createTestUser(t *testing.T, db *gorm.DB, firstName string) (*models.User, string) {
	t.Helper()

	email := firstName + "@example.com"
	user := &models.User{
		ExternalID: uuid.NewString(),
		Email:      &email,
		FirstName:  &firstName,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed creating test user: %v", err)
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		t.Fatalf("failed generating auth token: %v", err)
	}

	return user, token
}

func setRoomVisibility(t *testing.T, env *testEnv, token, visibility string) {
	t.Helper()

	resp := performJSONRequest(t, env.app, http.MethodPut, "/api/preferences", map[string]any{
		"roomVisibility": visibility,
	}, authHeaders(token))
	assertStatus(t, resp, http.StatusOK)
	resp.Body.Close()
}

func authHeaders(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func performRequest(t *testing.T, app *fiber.App, method, path string, body io.Reader, headers map[string]string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := app.Test(req, int((10 * time.Second).Milliseconds()))
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}

	return resp
}

func performJSONRequest(t *testing.T, app *fiber.App, method, path string, payload any, headers map[string]string) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	requestHeaders := map[string]string{}
	for key, value := range headers {
		requestHeaders[key] = value
	}
	if payload != nil {
		requestHeaders["Content-Type"] = "application/json"
	}

	return performRequest(t, app, method, path, body, requestHeaders)
}

// performUpload posts one file part named field with the given content type.
func performUpload(t *testing.T, app *fiber.App, path, field, filename, contentType string, data []byte, headers map[string]string) *http.Response {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	partHeader := make(textproto.MIMEHeader)
	partHeader.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	partHeader.Set("Content-Type", contentType)
	part, err := writer.CreatePart(partHeader)
	if err != nil {
		t.Fatalf("failed creating multipart part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("failed writing multipart part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed closing multipart writer: %v", err)
	}

	requestHeaders := map[string]string{"Content-Type": writer.FormDataContentType()}
	for key, value := range headers {
		requestHeaders[key] = value
	}
	return performRequest(t, app, http.MethodPost, path, &body, requestHeaders)
}

func decodeJSONMap(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed reading response body: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("failed decoding JSON response: %v body=%q", err, string(raw))
	}

	return payload
}

func dataMap(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected object data, got %+v", body["data"])
	}
	return data
}

func dataList(t *testing.T, body map[string]any) []any {
	t.Helper()
	data, ok := body["data"].([]any)
	if !ok {
		t.Fatalf("expected array data, got %+v", body["data"])
	}
	return data
}

func assertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Fatalf("expected status %d, got %d", expected, resp.StatusCode)
	}
}

func assertEnvelopeError(t *testing.T, body map[string]any, expected string) {
	t.Helper()
	if success, _ := body["success"].(bool); success {
		t.Fatalf("expected success=false, got %+v", body)
	}
	if got, _ := body["error"].(string); got != expected {
		t.Fatalf("expected error %q, got %q", expected, got)
	}
}

func assertFieldError(t *testing.T, body map[string]any, field string) {
	t.Helper()
	assertEnvelopeError(t, body, "invalid data")
	fields, _ := body["errors"].(map[string]any)
	if _, ok := fields[field]; !ok {
		t.Fatalf("expected field error for %q, got %+v", field, fields)
	}
}
