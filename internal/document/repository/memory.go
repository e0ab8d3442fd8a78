package repository

import (
	"context"
	"sync"
	"time"

	"github.com/gogotex/docstore/internal/document"
)

// MemoryRepo keeps documents in a map for the lifetime of the value.
// Stored entries are private copies; callers only ever see clones.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*document.Document
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*document.Document)}
}

// Save upserts doc. A missing ID is generated. The created time of an
// existing entry always wins over the incoming one; for a new entry a zero
// created time is set to now. doc itself is updated with the final ID and
// created time.
func (m *MemoryRepo) Save(_ context.Context, doc *document.Document) (*document.Document, error) {
	if doc == nil {
		return nil, ErrInvalidDocument
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if doc.ID == "" {
		doc.ID = newID()
	}
	if existing, ok := m.store[doc.ID]; ok {
		doc.Created = existing.Created
	} else if doc.Created.IsZero() {
		doc.Created = time.Now().UTC()
	}
	m.store[doc.ID] = doc.Clone()
	return doc.Clone(), nil
}

func (m *MemoryRepo) Search(_ context.Context, req document.SearchRequest) ([]*document.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*document.Document, 0, len(m.store))
	for _, d := range m.store {
		if req.Matches(d) {
			out = append(out, d.Clone())
		}
	}
	document.Sort(out)
	return out, nil
}

func (m *MemoryRepo) FindByID(_ context.Context, id string) (*document.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.store[id]; ok {
		return d.Clone(), nil
	}
	return nil, nil
}

func (m *MemoryRepo) Ping(context.Context) error { return nil }

// Len returns the number of stored documents.
func (m *MemoryRepo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store)
}
