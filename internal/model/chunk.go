package model

// Chunk is a bounded slice of a document's extracted text plus its embedding
// vector, the unit the knowledge index stores and retrieves. Chunk IDs are
// "<document id>#<position>" so rankings have a deterministic tie-break.
type Chunk struct {
	ID         string     `json:"id"`
	DocumentID DocumentID `json:"document_id"`
	Text       string     `json:"text"`
	Embedding  []float32  `json:"embedding"`
}

// ScoredChunk is a retrieval result: a chunk and its similarity to the query.
type ScoredChunk struct {
	Chunk Chunk   `json:"chunk"`
	Score float32 `json:"score"`
}
