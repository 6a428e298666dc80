// Package app holds the question-answering pipeline: scope gate, retrieval,
// prompt composition, backend call, quality gate, local fallback.
package app

import (
	"context"
	"errors"
	"log"
	"strings"

	"pensaai/internal/ai"
	"pensaai/internal/model"
	"pensaai/internal/prompt"
)

var (
	ErrEmptyQuestion = errors.New("question is empty")
)

// Completer is the completion backend seam.
type Completer interface {
	Complete(ctx context.Context, messages []ai.ChatMessage) (string, error)
}

// Retriever is the knowledge-index seam.
type Retriever interface {
	Query(ctx context.Context, text string, k int) ([]model.ScoredChunk, error)
}

type TutorService struct {
	gate      *ScopeGate
	retriever Retriever
	composer  *prompt.Composer
	completer Completer

	topK            int
	minAnswerLength int
}

func NewTutorService(
	gate *ScopeGate,
	retriever Retriever,
	composer *prompt.Composer,
	completer Completer,
	topK int,
	minAnswerLength int,
) *TutorService {
	if topK <= 0 {
		topK = 4
	}
	if minAnswerLength <= 0 {
		minAnswerLength = 200
	}
	return &TutorService{
		gate:            gate,
		retriever:       retriever,
		composer:        composer,
		completer:       completer,
		topK:            topK,
		minAnswerLength: minAnswerLength,
	}
}

// Answer runs the full per-request pipeline. Only client-input violations
// surface as errors; every internal failure degrades into the local
// templated answer.
func (s *TutorService) Answer(ctx context.Context, question string) (*model.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	if s.gate.Classify(question) == OutOfScope {
		return &model.Answer{Text: RedirectMessage, Source: model.AnswerRedirect}, nil
	}

	contextChunks, err := s.retriever.Query(ctx, question, s.topK)
	if err != nil {
		// retrieval is best effort, the pipeline continues without context
		log.Printf("tutor: retrieval failed: %v", err)
		contextChunks = nil
	}

	p := s.composer.Compose(question, contextChunks)
	messages := []ai.ChatMessage{
		{Role: "system", Content: p.System},
		{Role: "user", Content: p.User},
	}

	raw, err := s.completer.Complete(ctx, messages)
	if err != nil {
		log.Printf("tutor: backend call failed, using local fallback: %v", err)
		return &model.Answer{Text: FallbackAnswer(question), Source: model.AnswerFromFallback}, nil
	}

	answer := strings.TrimSpace(raw)
	if !s.acceptable(answer) {
		log.Printf("tutor: backend answer inadequate (%d runes), using local fallback", len([]rune(answer)))
		return &model.Answer{Text: FallbackAnswer(question), Source: model.AnswerFromFallback}, nil
	}
	return &model.Answer{Text: answer, Source: model.AnswerFromModel}, nil
}

// acceptable is the quality gate: implausibly short output or output missing
// the required structural section is replaced rather than shown to a student.
func (s *TutorService) acceptable(answer string) bool {
	if len([]rune(answer)) < s.minAnswerLength {
		return false
	}
	return strings.Contains(answer, prompt.StructureMarker)
}
