package documents

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-ats/internal/extract"
	"resume-ats/internal/shared/metrics"
	"resume-ats/internal/shared/storage/object"
	"resume-ats/internal/shared/telemetry"
	"resume-ats/internal/shared/util"
	"resume-ats/resume/contract"
)

// Service contains business logic for documents.
type Service struct {
	Store object.ObjectStore
	Repo  Repo
	Now   func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Upload saves the file, extracts its text next to it and records the document.
// Files with no extractable text are rejected.
func (s *Service) Upload(ctx context.Context, ownerID, fileName string, r io.Reader) (Document, error) {
	if strings.TrimSpace(ownerID) == "" {
		return Document{}, contract.InvalidInputError{Field: "owner", Reason: "owner is required"}
	}
	if strings.TrimSpace(fileName) == "" {
		return Document{}, contract.InvalidInputError{Field: "file", Reason: "file name is required"}
	}

	stored, err := s.Store.Save(ctx, ownerID, fileName, r)
	if err != nil {
		return Document{}, fmt.Errorf("save upload: %w", err)
	}
	mimeType := extract.NormalizeMimeType(stored.MimeType, fileName, nil)

	text, err := extract.FromStore(ctx, s.Store, stored.Key, mimeType, fileName)
	if err != nil {
		telemetry.Warn("document.extract_failed", map[string]any{
			"owner_id":    ownerID,
			"storage_key": stored.Key,
			"mime_type":   mimeType,
			"error":       err,
		})
		return Document{}, err
	}

	return s.record(ctx, ownerID, fileName, mimeType, stored.Key, stored.Size, len(text))
}

// Ingest records a document the client uploaded straight to the object store.
// The key must sit in the owner's namespace; payloads over maxBytes are
// rejected when maxBytes is positive.
func (s *Service) Ingest(ctx context.Context, ownerID, storageKey, fileName string, maxBytes int64) (Document, error) {
	if strings.TrimSpace(ownerID) == "" {
		return Document{}, contract.InvalidInputError{Field: "owner", Reason: "owner is required"}
	}
	if strings.TrimSpace(fileName) == "" {
		return Document{}, contract.InvalidInputError{Field: "fileName", Reason: "file name is required"}
	}
	key, err := object.CleanKey(storageKey)
	if err != nil || !strings.HasPrefix(key, util.OwnerKey(ownerID)+"/") {
		return Document{}, contract.InvalidInputError{Field: "storageKey", Reason: "storage key does not belong to caller"}
	}

	body, err := s.Store.Open(ctx, key)
	if err != nil {
		return Document{}, fmt.Errorf("open upload: %w", err)
	}
	defer body.Close()

	var r io.Reader = body
	if maxBytes > 0 {
		r = io.LimitReader(body, maxBytes+1)
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read upload: %w", err)
	}
	if maxBytes > 0 && int64(len(raw)) > maxBytes {
		return Document{}, contract.InvalidInputError{Field: "file", Reason: "file exceeds upload limit"}
	}

	mimeType := extract.NormalizeMimeType(http.DetectContentType(raw), fileName, raw)
	text, err := extract.Text(ctx, raw, mimeType, fileName)
	if err != nil {
		telemetry.Warn("document.extract_failed", map[string]any{
			"owner_id":    ownerID,
			"storage_key": key,
			"mime_type":   mimeType,
			"error":       err,
		})
		return Document{}, err
	}
	if _, err := s.Store.SaveWithKey(ctx, object.ExtractedKey(key), "text/plain; charset=utf-8", strings.NewReader(text)); err != nil {
		return Document{}, fmt.Errorf("save extracted text: %w", err)
	}
	return s.record(ctx, ownerID, fileName, mimeType, key, int64(len(raw)), len(text))
}

func (s *Service) record(ctx context.Context, ownerID, fileName, mimeType, key string, size int64, textChars int) (Document, error) {
	now := s.now()
	doc := Document{
		ID:               uuid.NewString(),
		OwnerID:          ownerID,
		FileName:         fileName,
		MimeType:         mimeType,
		SizeBytes:        size,
		StorageKey:       key,
		ExtractedTextKey: object.ExtractedKey(key),
		ExtractedAt:      &now,
		CreatedAt:        now,
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, fmt.Errorf("record document: %w", err)
	}

	metrics.IncDocumentUploaded()
	telemetry.Info("document.uploaded", map[string]any{
		"document_id": doc.ID,
		"owner_id":    ownerID,
		"mime_type":   mimeType,
		"size_bytes":  size,
		"text_chars":  textChars,
	})
	return doc, nil
}

// Current returns the most recent document for an owner.
func (s *Service) Current(ctx context.Context, ownerID string) (Document, error) {
	if ownerID == "" {
		return Document{}, contract.InvalidInputError{Field: "owner", Reason: "owner is required"}
	}
	return s.Repo.GetCurrentByOwner(ctx, ownerID)
}

// Get returns one of the owner's documents.
func (s *Service) Get(ctx context.Context, ownerID, documentID string) (Document, error) {
	if ownerID == "" {
		return Document{}, contract.InvalidInputError{Field: "owner", Reason: "owner is required"}
	}
	if _, err := uuid.Parse(documentID); err != nil {
		return Document{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, ownerID, documentID)
}

// List returns the owner's documents newest first.
func (s *Service) List(ctx context.Context, ownerID string, limit, offset int) ([]Document, error) {
	if ownerID == "" {
		return nil, contract.InvalidInputError{Field: "owner", Reason: "owner is required"}
	}
	return s.Repo.ListByOwner(ctx, ownerID, limit, offset)
}

// Text returns the extracted text of a document, extracting it again when the
// derived copy was never recorded.
func (s *Service) Text(ctx context.Context, doc Document) (string, error) {
	if doc.ExtractedTextKey != "" {
		body, err := s.Store.Open(ctx, doc.ExtractedTextKey)
		if err == nil {
			defer body.Close()
			raw, err := io.ReadAll(body)
			if err != nil {
				return "", fmt.Errorf("read extracted text: %w", err)
			}
			return string(raw), nil
		}
		telemetry.Warn("document.extracted_text_missing", map[string]any{
			"document_id": doc.ID,
			"key":         doc.ExtractedTextKey,
			"error":       err,
		})
	}

	text, err := extract.FromStore(ctx, s.Store, doc.StorageKey, doc.MimeType, doc.FileName)
	if err != nil {
		return "", err
	}
	if err := s.Repo.UpdateExtraction(ctx, doc.OwnerID, doc.ID, object.ExtractedKey(doc.StorageKey), s.now()); err != nil {
		telemetry.Warn("document.update_extraction_failed", map[string]any{"document_id": doc.ID, "error": err})
	}
	return text, nil
}
