package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/budget-keeper/internal/validators"
	"github.com/MKhiriev/budget-keeper/models"
)

// DocumentServiceWrapper defines middleware composition for DocumentService.
// Implementations wrap an existing DocumentService to add behavior such as
// validation.
type DocumentServiceWrapper interface {
	Wrap(DocumentService) DocumentService
}

// DocumentValidationService checks identities, logical keys and bodies
// before delegating to the wrapped DocumentService.
type DocumentValidationService struct {
	inner DocumentService
}

func NewDocumentValidationService() DocumentServiceWrapper {
	return &DocumentValidationService{}
}

func (v *DocumentValidationService) ReadDocument(ctx context.Context, identity models.Identity, logicalKey string) ([]byte, error) {
	if err := checkDocumentKey(identity, logicalKey); err != nil {
		return nil, err
	}

	return v.inner.ReadDocument(ctx, identity, logicalKey)
}

func (v *DocumentValidationService) WriteDocument(ctx context.Context, identity models.Identity, logicalKey string, payload []byte) error {
	if err := checkDocumentKey(identity, logicalKey); err != nil {
		return err
	}
	if err := validators.ValidateDocumentBody(payload); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return v.inner.WriteDocument(ctx, identity, logicalKey, payload)
}

func (v *DocumentValidationService) ListDocuments(ctx context.Context, identity models.Identity, prefix string) ([]string, error) {
	if identity.UserID == "" || identity.Email == "" {
		return nil, ErrUnauthenticated
	}
	if err := validators.ValidateDocumentPrefix(prefix); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return v.inner.ListDocuments(ctx, identity, prefix)
}

func (v *DocumentValidationService) DeleteDocument(ctx context.Context, identity models.Identity, logicalKey string) error {
	if err := checkDocumentKey(identity, logicalKey); err != nil {
		return err
	}

	return v.inner.DeleteDocument(ctx, identity, logicalKey)
}

func (v *DocumentValidationService) Wrap(wrapper DocumentService) DocumentService {
	v.inner = wrapper
	return v
}

func checkDocumentKey(identity models.Identity, logicalKey string) error {
	if identity.UserID == "" || identity.Email == "" {
		return ErrUnauthenticated
	}
	if err := validators.ValidateDocumentKey(logicalKey); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}
