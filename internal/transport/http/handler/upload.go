package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"pensaai/internal/store"
	"pensaai/internal/transport/http/response"
	"pensaai/internal/worker"
)

const maxUploadSize = 10 << 20 // 10 MB

type UploadHandler struct {
	store *store.DocumentStore
	index worker.Rebuilder
}

func NewUploadHandler(documentStore *store.DocumentStore, index worker.Rebuilder) *UploadHandler {
	return &UploadHandler{store: documentStore, index: index}
}

// Upload stores a PDF and kicks an asynchronous index update. The response
// is explicit that indexing is still in progress; the doc becomes
// retrievable once the serialized rebuild completes.
func (h *UploadHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "campo 'file' obrigatório")
		return
	}
	if file.Size > maxUploadSize {
		response.Error(c, http.StatusBadRequest, "arquivo muito grande (máximo 10MB)")
		return
	}

	f, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "falha ao ler o arquivo")
		return
	}
	defer f.Close()

	id, err := h.store.Save(file.Filename, f)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrUnsupportedFormat):
			response.Error(c, http.StatusBadRequest, "apenas arquivos PDF são aceitos")
		default:
			response.Error(c, http.StatusInternalServerError, "falha ao armazenar o arquivo")
		}
		return
	}

	go func() {
		if err := h.index.Rebuild(context.Background()); err != nil {
			log.Printf("upload: index rebuild failed: %v", err)
		}
	}()

	c.JSON(http.StatusOK, gin.H{
		"filename": string(id),
		"indexing": "in_progress",
	})
}
