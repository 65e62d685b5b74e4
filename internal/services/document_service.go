package services

import (
	"context"
	"fmt"

	"spendly/internal/core"
	"spendly/internal/storage"
)

// DocumentService persists stored-file metadata. The file bytes live in
// an external object store; this service only tracks the reference.
type DocumentService struct {
	documents storage.DocumentStore
}

func NewDocumentService(documents storage.DocumentStore) *DocumentService {
	return &DocumentService{documents: documents}
}

func (s *DocumentService) Create(ctx context.Context, d core.Document) (core.Document, error) {
	if err := d.Validate(); err != nil {
		return core.Document{}, err
	}
	if err := s.documents.CreateDocument(ctx, &d); err != nil {
		return core.Document{}, fmt.Errorf("save document: %w", err)
	}
	return d, nil
}

func (s *DocumentService) Get(ctx context.Context, id, ownerID string) (core.Document, error) {
	d, err := s.documents.GetDocument(ctx, id)
	if err != nil {
		return core.Document{}, fmt.Errorf("load document: %w", err)
	}
	if d.OwnerID != ownerID {
		return core.Document{}, ErrNotOwner
	}
	return d, nil
}

func (s *DocumentService) List(ctx context.Context, ownerID string) ([]core.Document, error) {
	docs, err := s.documents.ListDocuments(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

func (s *DocumentService) Delete(ctx context.Context, id, ownerID string) error {
	d, err := s.documents.GetDocument(ctx, id)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	if d.OwnerID != ownerID {
		return ErrNotOwner
	}
	if err := s.documents.DeleteDocument(ctx, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}
