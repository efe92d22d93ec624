package repo

import (
	"errors"
	"strings"

	"github.com/rogerio-castellano/rfid-pos/internal/models"
)

// ErrTagNotFound is returned when no product carries the requested RFID tag.
var ErrTagNotFound = errors.New("tag not found")

// ErrDuplicateTag is returned when a tag collides with an existing product.
var ErrDuplicateTag = errors.New("rfid tag already registered")

// ErrInvalidProduct is returned when a product misses a required field
// or carries a negative price.
var ErrInvalidProduct = errors.New("invalid product")

// ErrTagNotActive is returned by MarkSold when any listed tag is missing or
// already disabled; in that case no tag is transitioned.
var ErrTagNotActive = errors.New("tag is not active")

// CatalogRepository is the authoritative product catalog, indexed by RFID tag.
// Tags are unique across all products ever created, and a product moves from
// active to disabled at most once.
type CatalogRepository interface {
	Create(product models.Product) (models.Product, error)
	GetByTag(tagID string) (models.Product, error)
	GetAll() ([]models.Product, error)
	Filter(cf CatalogFilter) ([]models.Product, int, error)
	// MarkSold disables every listed tag, or none of them.
	MarkSold(tagIDs []string) error
	Delete(tagID string) error
	// ReplaceAll swaps the whole catalog, used by snapshot load and import.
	ReplaceAll(products []models.Product) error
	Clear() error
}

func validateProduct(p models.Product) error {
	if strings.TrimSpace(p.TagID) == "" ||
		strings.TrimSpace(p.Name) == "" ||
		strings.TrimSpace(p.Code) == "" {
		return ErrInvalidProduct
	}
	if p.Price < 0 {
		return ErrInvalidProduct
	}
	return nil
}
