package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pensaai/internal/app"
	"pensaai/internal/transport/http/response"
)

type ChatHandler struct {
	tutor *app.TutorService
}

type ChatRequest struct {
	Question string `json:"question"`
}

func NewChatHandler(tutor *app.TutorService) *ChatHandler {
	return &ChatHandler{tutor: tutor}
}

func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	answer, err := h.tutor.Answer(c.Request.Context(), req.Question)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrEmptyQuestion):
			response.Error(c, http.StatusBadRequest, "campo 'question' obrigatório")
		default:
			response.Error(c, http.StatusInternalServerError, "falha ao gerar resposta")
		}
		return
	}

	response.Answer(c, answer.Text)
}
