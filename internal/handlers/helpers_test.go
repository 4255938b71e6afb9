package handlers_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"DocPortal/internal/blobstore"
	"DocPortal/internal/config"
	"DocPortal/internal/handlers"
	"DocPortal/internal/middleware"
	"DocPortal/internal/model"
	"DocPortal/internal/repo"
	"DocPortal/internal/service"

	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

var handlerDBSeq atomic.Int64

// newTestRouter builds the full stack over in-memory SQLite and a disk
// artifact store, so requests exercise the real middleware chain, routing
// and cascade behavior.
func newTestRouter(t *testing.T) (http.Handler, *config.Config) {
	t.Helper()

	dsn := fmt.Sprintf("file:handlertest%d?mode=memory&cache=shared", handlerDBSeq.Add(1))
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	if err := db.AutoMigrate(&model.Container{}, &model.Requirement{}, &model.File{}); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}

	blobs, err := blobstore.NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create disk store: %v", err)
	}

	cfg := &config.Config{
		AuthSecret:      "test-secret",
		UploadDir:       blobs.Dir(),
		UploadMaxSizeMB: 1,
	}
	logger := zap.NewNop().Sugar()

	containers := repo.NewContainerRepository(db)
	requirements := repo.NewRequirementRepository(db)
	files := repo.NewFileRepository(db)

	containerSvc := service.NewContainerService(containers, requirements, logger)
	requirementSvc := service.NewRequirementService(requirements, files, blobs, logger)
	fileSvc := service.NewFileService(files, blobs, logger)

	h := handlers.NewHandler(containerSvc, requirementSvc, fileSvc, logger, cfg)
	return h.Router, cfg
}

func addAuthHeader(t *testing.T, req *http.Request, secret, email, role string) {
	t.Helper()
	token, err := middleware.BuildToken(secret, "u1", email, role)
	if err != nil {
		t.Fatalf("failed to build token: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
}

// do runs one JSON request through the router.
func do(t *testing.T, router http.Handler, method, target, body string, auth func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	if auth != nil {
		auth(req)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func asAdmin(t *testing.T, secret string) func(*http.Request) {
	return func(req *http.Request) { addAuthHeader(t, req, secret, "admin@portal.test", middleware.RoleAdmin) }
}

func asUser(t *testing.T, secret, email string) func(*http.Request) {
	return func(req *http.Request) { addAuthHeader(t, req, secret, email, middleware.RoleUser) }
}

// newUploadRequest prepares a multipart POST to the upload route.
func newUploadRequest(t *testing.T, contentType string, body *bytes.Buffer) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/files/upload", body)
	req.Header.Set("Content-Type", contentType)
	return req, httptest.NewRecorder()
}

// makeMultipart builds a multipart body from plain fields plus one optional
// file part.
func makeMultipart(t *testing.T, fields map[string]string, fileData []byte) (string, *bytes.Buffer) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		_ = w.WriteField(k, v)
	}
	if fileData != nil {
		fw, _ := w.CreateFormFile("file", "upload.bin")
		_, _ = fw.Write(fileData)
	}
	_ = w.Close()
	return w.FormDataContentType(), body
}
