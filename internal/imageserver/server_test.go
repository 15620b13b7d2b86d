package imageserver

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s := New(t.TempDir(), "", zaptest.NewLogger(t))
	w := do(t, s.Handler(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestPutThenGet(t *testing.T) {
	root := t.TempDir()
	h := New(root, "/art/", zaptest.NewLogger(t)).Handler()

	w := do(t, h, http.MethodHead, "/art/original/elf.jpg", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodPut, "/art/original/elf.jpg", "jpeg bytes")
	require.Equal(t, http.StatusCreated, w.Code)

	data, err := os.ReadFile(filepath.Join(root, "art", "original", "elf.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(data))

	w = do(t, h, http.MethodGet, "/art/original/elf.jpg", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jpeg bytes", w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(t, h, http.MethodHead, "/art/original/elf.jpg", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPutRejectsTraversalAndEmptyBodies(t *testing.T) {
	root := t.TempDir()
	h := New(root, "images", zaptest.NewLogger(t)).Handler()

	w := do(t, h, http.MethodPut, "/images/../../escape.txt", "x")
	assert.NotEqual(t, http.StatusCreated, w.Code)
	_, err := os.Stat(filepath.Join(filepath.Dir(root), "escape.txt"))
	assert.True(t, os.IsNotExist(err))

	w = do(t, h, http.MethodPut, "/images/empty.png", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
