package index

import (
	"math"
	"sort"
	"strings"

	"pensaai/internal/model"
)

type docEntry struct {
	ContentHash string
	Chunks      []model.Chunk
}

// snapshot is an immutable index state. All fields are written before the
// snapshot is published and never mutated afterwards.
type snapshot struct {
	docs   map[model.DocumentID]docEntry
	chunks []model.Chunk // flattened in sorted DocumentID order
}

func newSnapshot() *snapshot {
	return &snapshot{docs: make(map[model.DocumentID]docEntry)}
}

func (s *snapshot) addDocument(id model.DocumentID, hash string, chunks []model.Chunk) {
	s.docs[id] = docEntry{ContentHash: hash, Chunks: chunks}
}

func (s *snapshot) setChunks(id model.DocumentID, chunks []model.Chunk) {
	entry := s.docs[id]
	entry.Chunks = chunks
	s.docs[id] = entry
}

// finalize flattens per-document chunks in sorted DocumentID order so the
// snapshot's chunk sequence is independent of arrival order.
func (s *snapshot) finalize() {
	ids := make([]model.DocumentID, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	s.chunks = s.chunks[:0]
	for _, id := range ids {
		s.chunks = append(s.chunks, s.docs[id].Chunks...)
	}
}

// search ranks every chunk against the query vector. Total order: score
// descending, chunk ID ascending on ties, so identical inputs always yield
// identical rankings.
func (s *snapshot) search(queryVec []float32, k int) []model.ScoredChunk {
	scored := make([]model.ScoredChunk, 0, len(s.chunks))
	for i := range s.chunks {
		scored = append(scored, model.ScoredChunk{
			Chunk: s.chunks[i],
			Score: cosineSimilarity(queryVec, s.chunks[i].Embedding),
		})
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Chunk.ID < scored[j].Chunk.ID
	})
	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k]
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA <= 0 || normB <= 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

// chunkText splits text into overlapping windows by rune count. Whitespace
// runs longer than the window produce blank windows; those are dropped so
// every returned chunk is embeddable.
func chunkText(text string, size, overlap int) []string {
	if size <= 0 {
		return nil
	}
	if overlap >= size {
		overlap = size / 2
	}
	var chunks []string
	runes := []rune(text)
	for i := 0; i < len(runes); {
		end := i + size
		if end > len(runes) {
			end = len(runes)
		}
		if window := string(runes[i:end]); strings.TrimSpace(window) != "" {
			chunks = append(chunks, window)
		}
		if end == len(runes) {
			break
		}
		i += size - overlap
	}
	return chunks
}
