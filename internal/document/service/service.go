package service

import (
	"context"

	"github.com/gogotex/docstore/internal/document"
	"github.com/gogotex/docstore/internal/document/repository"
	"github.com/gogotex/docstore/pkg/logger"
	"github.com/gogotex/docstore/pkg/metrics"
)

// Service defines the document operations used by the handler layer.
type Service interface {
	Save(ctx context.Context, d *document.Document) (*document.Document, error)
	Search(ctx context.Context, req document.SearchRequest) ([]*document.Document, error)
	FindByID(ctx context.Context, id string) (*document.Document, error)
	Ready(ctx context.Context) error
	Backend() string
}

// New returns a Service over repo. backend labels logs and metrics.
func New(repo repository.Repository, backend string) Service {
	return &storeService{repo: repo, backend: backend}
}

// NewMemoryService returns a Service backed by the in-memory repository.
func NewMemoryService() Service {
	return New(repository.NewMemoryRepo(), "memory")
}

type storeService struct {
	repo    repository.Repository
	backend string
}

func (s *storeService) Save(ctx context.Context, d *document.Document) (*document.Document, error) {
	saved, err := s.repo.Save(ctx, d)
	if s.record("save", err) {
		return nil, err
	}
	logger.WithFields(logger.Fields{"document_id": saved.ID, "backend": s.backend}).Debug("document saved")
	return saved, nil
}

func (s *storeService) Search(ctx context.Context, req document.SearchRequest) ([]*document.Document, error) {
	out, err := s.repo.Search(ctx, req)
	if s.record("search", err) {
		return nil, err
	}
	logger.WithFields(logger.Fields{"matches": len(out), "backend": s.backend}).Debug("documents searched")
	return out, nil
}

func (s *storeService) FindByID(ctx context.Context, id string) (*document.Document, error) {
	d, err := s.repo.FindByID(ctx, id)
	if s.record("find", err) {
		return nil, err
	}
	return d, nil
}

func (s *storeService) Ready(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *storeService) Backend() string { return s.backend }

// record counts the operation and reports whether it failed.
func (s *storeService) record(op string, err error) bool {
	metrics.StoreOperations.WithLabelValues(op, s.backend).Inc()
	if err == nil {
		return false
	}
	metrics.StoreErrors.WithLabelValues(op, s.backend).Inc()
	logger.WithFields(logger.Fields{"op": op, "backend": s.backend, "error": err}).Warn("document store operation failed")
	return true
}
