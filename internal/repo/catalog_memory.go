package repo

import (
	"strings"
	"sync"
	"time"

	"github.com/rogerio-castellano/rfid-pos/internal/models"
)

// MemoryCatalogRepository is an in-memory implementation of CatalogRepository.
// It keeps insertion order for listings and a tag index for O(1) scans.
type MemoryCatalogRepository struct {
	mu       sync.RWMutex
	products []models.Product
	byTag    map[string]int
}

// NewMemoryCatalogRepository creates a new instance of MemoryCatalogRepository.
func NewMemoryCatalogRepository() *MemoryCatalogRepository {
	return &MemoryCatalogRepository{
		products: []models.Product{},
		byTag:    map[string]int{},
	}
}

// Create adds a new product to the catalog with an active tag.
func (r *MemoryCatalogRepository) Create(product models.Product) (models.Product, error) {
	if err := validateProduct(product); err != nil {
		return models.Product{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byTag[product.TagID]; exists {
		return models.Product{}, ErrDuplicateTag
	}

	product.Status = models.StatusActive
	if product.Category == "" {
		product.Category = "N/A"
	}
	if product.CreatedAt == "" {
		product.CreatedAt = time.Now().Format(time.RFC3339)
	}

	r.byTag[product.TagID] = len(r.products)
	r.products = append(r.products, product)
	return product, nil
}

// GetByTag retrieves a product by its RFID tag.
func (r *MemoryCatalogRepository) GetByTag(tagID string) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byTag[tagID]
	if !ok {
		return models.Product{}, ErrTagNotFound
	}
	return r.products[i], nil
}

// GetAll retrieves all products in insertion order.
func (r *MemoryCatalogRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func matchesFilter(p models.Product, cf CatalogFilter) bool {
	if cf.AvailableOnly && !p.Available() {
		return false
	}
	if cf.Category != "" && !strings.EqualFold(p.Category, cf.Category) {
		return false
	}
	return true
}

// Filter returns products matching the filter plus the total match count.
func (r *MemoryCatalogRepository) Filter(cf CatalogFilter) ([]models.Product, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var filtered []models.Product
	for _, p := range r.products {
		if matchesFilter(p, cf) {
			filtered = append(filtered, p)
		}
	}

	if cf.Offset != nil && *cf.Offset > len(filtered) {
		return []models.Product{}, len(filtered), nil
	}

	start := 0
	if cf.Offset != nil {
		start = clamp(*cf.Offset, 0, len(filtered))
	}

	end := len(filtered)
	if cf.Limit != nil && *cf.Limit > 0 {
		end = clamp(start+*cf.Limit, start, len(filtered))
	}

	return filtered[start:end], len(filtered), nil
}

// MarkSold disables every listed tag, or none of them. Each tag must exist and
// be active; the status change is never reverted afterwards.
func (r *MemoryCatalogRepository) MarkSold(tagIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, tag := range tagIDs {
		i, ok := r.byTag[tag]
		if !ok || r.products[i].Status != models.StatusActive {
			return ErrTagNotActive
		}
	}
	for _, tag := range tagIDs {
		r.products[r.byTag[tag]].Status = models.StatusDisabled
	}
	return nil
}

// Delete removes a product from the catalog.
func (r *MemoryCatalogRepository) Delete(tagID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.byTag[tagID]
	if !ok {
		return ErrTagNotFound
	}

	r.products = append(r.products[:i], r.products[i+1:]...)
	delete(r.byTag, tagID)
	for j := i; j < len(r.products); j++ {
		r.byTag[r.products[j].TagID] = j
	}
	return nil
}

// ReplaceAll swaps the whole catalog, rebuilding the tag index.
func (r *MemoryCatalogRepository) ReplaceAll(products []models.Product) error {
	byTag := make(map[string]int, len(products))
	for i, p := range products {
		if _, dup := byTag[p.TagID]; dup {
			return ErrDuplicateTag
		}
		byTag[p.TagID] = i
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = make([]models.Product, len(products))
	copy(r.products, products)
	r.byTag = byTag
	return nil
}

// Clear wipes the catalog. Only the bulk data-reset path uses this.
func (r *MemoryCatalogRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = []models.Product{}
	r.byTag = map[string]int{}
	return nil
}
