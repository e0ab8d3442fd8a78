package repository

import (
	"context"
	"errors"

	"github.com/gogotex/docstore/internal/document"
	"github.com/google/uuid"
)

var (
	ErrInvalidDocument = errors.New("document is nil")
)

// Repository provides document persistence operations. FindByID returns
// (nil, nil) when no document has the given id.
type Repository interface {
	Save(ctx context.Context, doc *document.Document) (*document.Document, error)
	Search(ctx context.Context, req document.SearchRequest) ([]*document.Document, error)
	FindByID(ctx context.Context, id string) (*document.Document, error)
	Ping(ctx context.Context) error
}

func newID() string {
	return uuid.NewString()
}
