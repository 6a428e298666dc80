package model

// AnswerSource records which path produced an answer.
type AnswerSource string

const (
	// AnswerFromModel means the completion backend produced the text and it
	// passed the quality gate.
	AnswerFromModel AnswerSource = "model"
	// AnswerFromFallback means the local templated generator produced the
	// text because the backend failed or its output was inadequate.
	AnswerFromFallback AnswerSource = "fallback"
	// AnswerRedirect means the scope gate rejected the question before any
	// retrieval or backend call.
	AnswerRedirect AnswerSource = "redirect"
)

// Answer is the text returned to the caller for one question. Answers are
// per-request and never persisted.
type Answer struct {
	Text   string       `json:"text"`
	Source AnswerSource `json:"source"`
}
