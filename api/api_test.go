package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rpupo63/diaver-site-backend/auth"
	"github.com/rpupo63/diaver-site-backend/database"
	"github.com/rpupo63/diaver-site-backend/models"
	"github.com/rpupo63/diaver-site-backend/storage"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	leads chan models.Lead
}

func (f *fakeNotifier) NotifyLead(_ context.Context, lead models.Lead) error {
	f.leads <- lead
	return nil
}

type testEnv struct {
	router      http.Handler
	db          database.Database
	uploadDir   string
	frontendDir string
	notifier    *fakeNotifier
	token       string
}

type envOption func(*routerSettings)

func withOpenContent() envOption {
	return func(s *routerSettings) { s.requireAuth = false }
}

func withMaxUpload(n int64) envOption {
	return func(s *routerSettings) { s.maxUploadBytes = n }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	root := t.TempDir()
	uploadDir := filepath.Join(root, "uploads")
	frontendDir := filepath.Join(root, "frontend")
	require.NoError(t, os.MkdirAll(filepath.Join(frontendDir, "pages"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(frontendDir, "index.html"), []byte("<h1>home</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(frontendDir, "pages", "contacts.html"), []byte("<h1>contacts</h1>"), 0o644))

	files := storage.NewDiskStore(uploadDir)
	db := database.New(filepath.Join(root, "data"), files)

	issuer, err := auth.NewIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	authenticator := auth.NewAuthenticator(auth.NewCredentials("admin", "pw", ""), issuer)
	token, _, err := authenticator.Login("admin", "pw")
	require.NoError(t, err)

	settings := routerSettings{
		startupTime:     time.Now(),
		frontendDir:     frontendDir,
		maxUploadBytes:  1 << 20,
		requireAuth:     true,
		acceptedOrigins: []string{"*"},
	}
	for _, opt := range opts {
		opt(&settings)
	}

	notifier := &fakeNotifier{leads: make(chan models.Lead, 4)}
	router := newRouter(db, Dependencies{Files: files, Notifier: notifier, Authenticator: authenticator}, settings)

	return &testEnv{
		router:      router,
		db:          db,
		uploadDir:   uploadDir,
		frontendDir: frontendDir,
		notifier:    notifier,
		token:       token,
	}
}

func (e *testEnv) do(t *testing.T, method, target string, body io.Reader, contentType string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) doJSON(t *testing.T, method, target string, payload any, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	return e.do(t, method, target, body, "application/json", authed)
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// multipartBody builds a presentation form; an empty fileName omits the file part.
func multipartBody(t *testing.T, fields map[string]string, fileName string, content []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func uploadedFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
