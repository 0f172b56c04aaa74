package documents

import (
	"context"
	"time"
)

// Repo defines persistence operations for documents.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	GetCurrentByOwner(ctx context.Context, ownerID string) (Document, error)
	GetByID(ctx context.Context, ownerID, documentID string) (Document, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]Document, error)
	UpdateExtraction(ctx context.Context, ownerID, documentID, extractedKey string, extractedAt time.Time) error
}
