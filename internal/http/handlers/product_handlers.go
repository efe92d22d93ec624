package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	models "github.com/rogerio-castellano/rfid-pos/internal/models"
	repo "github.com/rogerio-castellano/rfid-pos/internal/repo"
)

func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateProduct(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	product := models.Product{
		TagID:     req.TagID,
		Name:      req.Name,
		Code:      req.Code,
		Price:     req.Price,
		Category:  req.Category,
		Status:    models.StatusActive,
		CreatedAt: time.Now().Format(time.RFC3339),
	}
	created, err := terminal.RegisterProduct(product)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateTag) {
			http.Error(w, "could not create product: RFID tag already registered", http.StatusConflict)
			return
		}
		http.Error(w, "could not create product", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toProductResponse(created))
}

func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := catalogRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toProductResponses(products))
}

func GetProductByTagHandler(w http.ResponseWriter, r *http.Request) {
	tagID := chi.URLParam(r, "tagID")
	if tagID == "" {
		http.Error(w, "RFID tag is required", http.StatusBadRequest)
		return
	}

	product, err := catalogRepo.GetByTag(tagID)
	if err != nil {
		if errors.Is(err, repo.ErrTagNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toProductResponse(product))
}

func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	tagID := chi.URLParam(r, "tagID")
	if tagID == "" {
		http.Error(w, "RFID tag is required", http.StatusBadRequest)
		return
	}
	if err := terminal.RemoveProduct(tagID); err != nil {
		if errors.Is(err, repo.ErrTagNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not delete product", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseIntPtr(s string) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

func FilterProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := repo.CatalogFilter{
		AvailableOnly: q.Get("available") == "true",
		Category:      q.Get("category"),
		Offset:        parseIntPtr(q.Get("offset")),
		Limit:         parseIntPtr(q.Get("limit")),
	}

	if filter.Limit != nil && *filter.Limit <= 0 {
		http.Error(w, "limit must be greater than zero", http.StatusBadRequest)
		return
	}
	if filter.Offset != nil && *filter.Offset < 0 {
		http.Error(w, "offset must be zero or positive", http.StatusBadRequest)
		return
	}

	products, total, err := catalogRepo.Filter(filter)
	if err != nil {
		http.Error(w, "could not filter products", http.StatusInternalServerError)
		return
	}

	resp := ProductsSearchResult{
		Data: toProductResponses(products),
		Meta: Meta{TotalCount: total},
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("failed to encode response: %v", err)
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// ClearDataHandler wipes catalog, transaction history, and the activity log.
// Admin only.
func ClearDataHandler(w http.ResponseWriter, r *http.Request) {
	role, err := GetRoleFromContext(r)
	if err != nil || role != "admin" {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	if err := terminal.ResetData(); err != nil {
		http.Error(w, "could not clear data", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
