package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string, timeout time.Duration) *Client {
	return NewClient(ClientConfig{
		BaseURL:        baseURL,
		APIKey:         "test-key",
		Model:          "test-model",
		EmbeddingModel: "test-embed",
		RequestTimeout: timeout,
	})
}

func TestCompleteParsesResponse(t *testing.T) {
	var gotAuth, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "resposta educacional"}},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL, time.Second)
	out, err := client.Complete(context.Background(), []ChatMessage{{Role: "user", Content: "oi"}})

	require.NoError(t, err)
	assert.Equal(t, "resposta educacional", out)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "/chat/completions", gotPath)
}

func TestCompleteBackendErrorIsTyped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL, time.Second)
	_, err := client.Complete(context.Background(), []ChatMessage{{Role: "user", Content: "oi"}})

	require.ErrorIs(t, err, ErrBackendUnavailable)
}

func TestCompleteUnreachableBackend(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1", time.Second)
	_, err := client.Complete(context.Background(), []ChatMessage{{Role: "user", Content: "oi"}})
	require.ErrorIs(t, err, ErrBackendUnavailable)
}

func TestCompleteTimeout(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	client := newTestClient(server.URL, 50*time.Millisecond)
	_, err := client.Complete(context.Background(), []ChatMessage{{Role: "user", Content: "oi"}})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBackendTimeout)
}

func TestCompleteEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer server.Close()

	client := newTestClient(server.URL, time.Second)
	_, err := client.Complete(context.Background(), []ChatMessage{{Role: "user", Content: "oi"}})
	require.ErrorIs(t, err, ErrBackendUnavailable)
}

func TestEmbedBatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model string   `json:"model"`
			Input []string `json:"input"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-embed", req.Model)

		data := make([]map[string]interface{}, len(req.Input))
		for i := range req.Input {
			data[i] = map[string]interface{}{"embedding": []float32{float32(i), 1}}
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"data": data})
	}))
	defer server.Close()

	client := newTestClient(server.URL, time.Second)
	vectors, err := client.EmbedBatch(context.Background(), []string{"um", "dois", "três"})

	require.NoError(t, err)
	require.Len(t, vectors, 3)
	assert.Equal(t, []float32{2, 1}, vectors[2])
}

func TestEmbedRejectsEmptyInput(t *testing.T) {
	client := newTestClient("http://unused", time.Second)

	_, err := client.Embed(context.Background(), "   ")
	require.Error(t, err)

	vectors, err := client.EmbedBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, vectors)
}

func TestEmbedBatchRejectsBlankElement(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()

	client := newTestClient(server.URL, time.Second)
	_, err := client.EmbedBatch(context.Background(), []string{"conteúdo", "   ", "mais conteúdo"})

	require.Error(t, err)
	assert.Equal(t, int32(0), requests.Load(), "a blank element must fail before any request")
}

func TestEmbedBatchRejectsShortVectorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{"embedding": []float32{1, 2}},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL, time.Second)
	_, err := client.EmbedBatch(context.Background(), []string{"um", "dois"})

	require.ErrorIs(t, err, ErrBackendUnavailable)
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL, time.Second)
	require.NoError(t, client.Ping(context.Background()))
}

func TestPingBadCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server.URL, time.Second)
	require.ErrorIs(t, client.Ping(context.Background()), ErrBackendUnavailable)
}

func TestPingToleratesMissingModelsRoute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := newTestClient(server.URL, time.Second)
	require.NoError(t, client.Ping(context.Background()))
}

func TestPingServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL, time.Second)
	require.ErrorIs(t, client.Ping(context.Background()), ErrBackendUnavailable)
}
