package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pensaai/internal/index"
)

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(context.Context) error { return f.err }

func newHealthRouter(pinger BackendPinger, indexService *index.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewHealthHandler("pensaai", "test", time.Now(), pinger, indexService)
	router.GET("/health", h.Check)
	return router
}

func emptyIndexService(t *testing.T) *index.Service {
	t.Helper()
	return index.NewService(index.Config{PersistPath: t.TempDir(), EmbeddingModel: "fake"}, nil, nil, nil)
}

func TestHealthReportsOK(t *testing.T) {
	router := newHealthRouter(fakePinger{}, emptyIndexService(t))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		App     string `json:"app"`
		Backend struct {
			OK bool `json:"ok"`
		} `json:"backend"`
		Index struct {
			Ready bool `json:"ready"`
		} `json:"index"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "pensaai", body.App)
	assert.True(t, body.Backend.OK)
	assert.False(t, body.Index.Ready, "no snapshot loaded yet")
}

func TestHealthReportsBackendDown(t *testing.T) {
	router := newHealthRouter(fakePinger{err: errors.New("connection refused")}, emptyIndexService(t))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	var body struct {
		Backend struct {
			OK      bool   `json:"ok"`
			Message string `json:"message"`
		} `json:"backend"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Backend.OK)
	assert.Contains(t, body.Backend.Message, "connection refused")
}
