// Package index builds and queries the retrieval structure over extracted
// document texts: chunking, embedding, cosine ranking, persistence.
package index

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log"
	"sort"
	"strconv"
	"strings"
	"sync"

	"pensaai/internal/model"
)

// Embedder produces embedding vectors via the completion backend.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// DocumentSource enumerates and opens stored raw documents.
type DocumentSource interface {
	List() ([]model.DocumentID, error)
	Open(id model.DocumentID) (io.ReadCloser, error)
}

// TextExtractor converts a raw document into plain text.
type TextExtractor func(r io.Reader) (string, error)

// Config fixes the build parameters of one index instance. Changing any of
// them invalidates persisted snapshots.
type Config struct {
	PersistPath    string
	ChunkSize      int
	ChunkOverlap   int
	EmbedBatchSize int
	EmbeddingModel string
}

func (c *Config) applyDefaults() {
	if c.ChunkSize <= 0 {
		c.ChunkSize = 256
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		c.ChunkOverlap = c.ChunkSize / 10
	}
	if c.EmbedBatchSize <= 0 {
		c.EmbedBatchSize = 10
	}
}

// Service owns the live knowledge index. Queries share the current snapshot
// under a read lock; Rebuild is the only writer and is serialized against
// itself, swapping in a fully built snapshot so readers never observe a
// partial index.
type Service struct {
	cfg      Config
	source   DocumentSource
	embedder Embedder
	extract  TextExtractor

	mu      sync.RWMutex // guards current
	current *snapshot

	rebuildMu sync.Mutex // at most one rebuild in flight
}

func NewService(cfg Config, source DocumentSource, embedder Embedder, extract TextExtractor) *Service {
	cfg.applyDefaults()
	return &Service{
		cfg:      cfg,
		source:   source,
		embedder: embedder,
		extract:  extract,
	}
}

// Rebuild re-extracts and re-indexes the whole document set plus the
// built-in baseline study material. Re-uploaded documents replace their
// previous chunks; documents whose content hash is unchanged reuse their
// existing vectors instead of re-embedding. An embedding failure leaves the
// previous snapshot (or none) in place and does not propagate.
func (s *Service) Rebuild(ctx context.Context) error {
	s.rebuildMu.Lock()
	defer s.rebuildMu.Unlock()

	prev := s.currentSnapshot()

	texts, err := s.collectTexts()
	if err != nil {
		return err
	}

	built, err := s.buildSnapshot(ctx, texts, prev)
	if err != nil {
		log.Printf("index: build failed, keeping previous state: %v", err)
		return nil
	}

	if err := s.persist(built); err != nil {
		log.Printf("index: persist failed: %v", err)
	}

	s.mu.Lock()
	s.current = built
	s.mu.Unlock()
	return nil
}

// collectTexts extracts every stored document, skipping unparseable ones,
// and appends the baseline document so the corpus is never empty.
func (s *Service) collectTexts() ([]documentText, error) {
	ids, err := s.source.List()
	if err != nil {
		return nil, err
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	texts := make([]documentText, 0, len(ids)+1)
	for _, id := range ids {
		r, err := s.source.Open(id)
		if err != nil {
			log.Printf("index: open %s failed, skipping: %v", id, err)
			continue
		}
		text, err := s.extract(r)
		r.Close()
		if err != nil {
			log.Printf("index: extract %s failed, skipping: %v", id, err)
			continue
		}
		texts = append(texts, documentText{ID: id, Text: text})
	}

	texts = append(texts, documentText{ID: baselineDocumentID, Text: baselineStudyMaterial})
	return texts, nil
}

type documentText struct {
	ID   model.DocumentID
	Text string
}

func (s *Service) buildSnapshot(ctx context.Context, texts []documentText, prev *snapshot) (*snapshot, error) {
	built := newSnapshot()

	type pending struct {
		doc    model.DocumentID
		chunks []string
	}
	var toEmbed []pending

	for _, dt := range texts {
		hash := contentHash(dt.Text)
		if prev != nil {
			if entry, ok := prev.docs[dt.ID]; ok && entry.ContentHash == hash {
				built.addDocument(dt.ID, hash, entry.Chunks)
				continue
			}
		}
		pieces := chunkText(dt.Text, s.cfg.ChunkSize, s.cfg.ChunkOverlap)
		if len(pieces) == 0 {
			continue
		}
		built.addDocument(dt.ID, hash, nil)
		toEmbed = append(toEmbed, pending{doc: dt.ID, chunks: pieces})
	}

	for _, p := range toEmbed {
		vectors, err := s.embedAll(ctx, p.chunks)
		if err != nil {
			return nil, err
		}
		chunks := make([]model.Chunk, len(p.chunks))
		for i := range p.chunks {
			chunks[i] = model.Chunk{
				ID:         chunkID(p.doc, i),
				DocumentID: p.doc,
				Text:       p.chunks[i],
				Embedding:  vectors[i],
			}
		}
		built.setChunks(p.doc, chunks)
	}

	built.finalize()
	return built, nil
}

func (s *Service) embedAll(ctx context.Context, texts []string) ([][]float32, error) {
	var vectors [][]float32
	for i := 0; i < len(texts); i += s.cfg.EmbedBatchSize {
		end := i + s.cfg.EmbedBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := s.embedder.EmbedBatch(ctx, texts[i:end])
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, batch...)
	}
	return vectors, nil
}

// Query returns at most k chunks ranked by cosine similarity, score
// descending with ties broken by chunk ID. An unavailable or empty index
// yields an empty result, never an error the caller must branch on.
func (s *Service) Query(ctx context.Context, text string, k int) ([]model.ScoredChunk, error) {
	if k <= 0 || strings.TrimSpace(text) == "" {
		return nil, nil
	}
	snap := s.currentSnapshot()
	if snap == nil || len(snap.chunks) == 0 {
		return nil, nil
	}

	queryVec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		log.Printf("index: query embedding failed, returning no context: %v", err)
		return nil, nil
	}
	return snap.search(queryVec, k), nil
}

// Status reports readiness for the health endpoint.
type Status struct {
	Ready     bool `json:"ready"`
	Documents int  `json:"documents"`
	Chunks    int  `json:"chunks"`
}

func (s *Service) Status() Status {
	snap := s.currentSnapshot()
	if snap == nil {
		return Status{}
	}
	return Status{
		Ready:     true,
		Documents: len(snap.docs),
		Chunks:    len(snap.chunks),
	}
}

// currentSnapshot returns the immutable index state, nil when unavailable.
func (s *Service) currentSnapshot() *snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func contentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func chunkID(doc model.DocumentID, position int) string {
	return string(doc) + "#" + strconv.Itoa(position)
}
