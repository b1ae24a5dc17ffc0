package service

import (
	"context"

	"github.com/abramin/Victus-sub005/internal/catalog"
)

type catalogService struct {
	cat *catalog.Catalog
}

// NewCatalogService exposes the training-type reference data.
func NewCatalogService(cat *catalog.Catalog) CatalogService {
	return &catalogService{cat: cat}
}

func (s *catalogService) List(context.Context) []catalog.Entry {
	return s.cat.Entries()
}
