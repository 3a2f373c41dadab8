// internal/services/business_service.go
package services

import (
	"errors"

	"github.com/garrybad/icon-kreatif-cms/internal/catalogerr"
	"github.com/garrybad/icon-kreatif-cms/internal/models"
	"github.com/garrybad/icon-kreatif-cms/internal/repository"
)

// BusinessService reads and writes the singleton business-contact record.
type BusinessService struct {
	store repository.BusinessStore
}

func NewBusinessService(store repository.BusinessStore) *BusinessService {
	return &BusinessService{store: store}
}

// Get returns the record, or an empty one when none has been saved yet.
func (s *BusinessService) Get() (*models.BusinessDetail, error) {
	detail, err := s.store.Get()
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &models.BusinessDetail{}, nil
		}
		return nil, catalogerr.Dependency("fetch business details", err)
	}
	return detail, nil
}

func (s *BusinessService) Save(sess Session, detail *models.BusinessDetail) error {
	if err := s.store.Upsert(detail); err != nil {
		return catalogerr.Dependency("save business details", err)
	}
	return nil
}
