package index

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"

	"pensaai/internal/model"
)

// ErrIncompatibleIndex means the persisted snapshot cannot be loaded
// faithfully (schema or build-config mismatch, or unreadable data). Callers
// discard the file and rebuild from source documents.
var ErrIncompatibleIndex = errors.New("incompatible persisted index")

const (
	persistSchemaVersion = 1
	persistFileName      = "index.json"
)

type persistedDocument struct {
	ID          model.DocumentID `json:"id"`
	ContentHash string           `json:"content_hash"`
	Chunks      []model.Chunk    `json:"chunks"`
}

type persistedIndex struct {
	SchemaVersion  int                 `json:"schema_version"`
	EmbeddingModel string              `json:"embedding_model"`
	ChunkSize      int                 `json:"chunk_size"`
	ChunkOverlap   int                 `json:"chunk_overlap"`
	Documents      []persistedDocument `json:"documents"`
}

// persist writes the snapshot under a uuid-named temp file and renames it
// into place, so a loader never sees a partially written index.
func (s *Service) persist(snap *snapshot) error {
	if s.cfg.PersistPath == "" {
		return nil
	}
	if err := os.MkdirAll(s.cfg.PersistPath, 0o755); err != nil {
		return fmt.Errorf("create index directory failed: %w", err)
	}

	out := persistedIndex{
		SchemaVersion:  persistSchemaVersion,
		EmbeddingModel: s.cfg.EmbeddingModel,
		ChunkSize:      s.cfg.ChunkSize,
		ChunkOverlap:   s.cfg.ChunkOverlap,
	}
	ids := make([]model.DocumentID, 0, len(snap.docs))
	for id := range snap.docs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		entry := snap.docs[id]
		out.Documents = append(out.Documents, persistedDocument{
			ID:          id,
			ContentHash: entry.ContentHash,
			Chunks:      entry.Chunks,
		})
	}

	payload, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshal index snapshot failed: %w", err)
	}

	tmpPath := filepath.Join(s.cfg.PersistPath, ".snapshot-"+uuid.NewString())
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("write index snapshot failed: %w", err)
	}
	if _, err := f.Write(payload); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write index snapshot failed: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync index snapshot failed: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close index snapshot failed: %w", err)
	}
	if err := os.Rename(tmpPath, filepath.Join(s.cfg.PersistPath, persistFileName)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("publish index snapshot failed: %w", err)
	}
	return nil
}

// Load restores the last persisted snapshot. os.ErrNotExist passes through
// for a fresh deployment; anything the current build config cannot trust
// comes back as ErrIncompatibleIndex so the caller rebuilds from scratch.
func (s *Service) Load() error {
	path := filepath.Join(s.cfg.PersistPath, persistFileName)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return os.ErrNotExist
		}
		return fmt.Errorf("%w: %v", ErrIncompatibleIndex, err)
	}

	var in persistedIndex
	if err := json.Unmarshal(raw, &in); err != nil {
		return fmt.Errorf("%w: %v", ErrIncompatibleIndex, err)
	}
	if in.SchemaVersion != persistSchemaVersion {
		return fmt.Errorf("%w: schema version %d", ErrIncompatibleIndex, in.SchemaVersion)
	}
	if in.EmbeddingModel != s.cfg.EmbeddingModel ||
		in.ChunkSize != s.cfg.ChunkSize ||
		in.ChunkOverlap != s.cfg.ChunkOverlap {
		return fmt.Errorf("%w: build configuration changed", ErrIncompatibleIndex)
	}

	snap := newSnapshot()
	for _, doc := range in.Documents {
		for i := range doc.Chunks {
			if len(doc.Chunks[i].Embedding) == 0 {
				return fmt.Errorf("%w: chunk %s has no embedding", ErrIncompatibleIndex, doc.Chunks[i].ID)
			}
		}
		snap.addDocument(doc.ID, doc.ContentHash, doc.Chunks)
	}
	snap.finalize()

	s.mu.Lock()
	s.current = snap
	s.mu.Unlock()
	return nil
}

// Reset discards persisted state, used after an incompatible load.
func (s *Service) Reset() error {
	if s.cfg.PersistPath == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.cfg.PersistPath, persistFileName))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove persisted index failed: %w", err)
	}
	return nil
}
